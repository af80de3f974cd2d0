package config

const (
	defaultConfigPath        = "~/.config/marquee/config.toml"
	projectConfigName        = "marquee.toml"
	defaultCatalogCSV        = "data/netflix_titles.csv"
	defaultDataDir           = "~/.local/share/marquee"
	defaultExportDir         = "data"
	defaultLogDir            = "~/.local/share/marquee/logs"
	defaultNaverBaseURL      = "https://openapi.naver.com/v1/search"
	defaultNaverTimeout      = 10
	defaultNaverRPS          = 10
	defaultNaverBurst        = 5
	defaultTopK              = 5
	defaultBookDisplay       = 50
	defaultBookMinDiscount   = 20000
	defaultLogFormat         = "console"
	defaultLogLevel          = "info"
	minBookDisplay           = 10
	maxBookDisplay           = 100
	maxBookDiscountThreshold = 100000
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			CatalogCSV: defaultCatalogCSV,
			DataDir:    defaultDataDir,
			ExportDir:  defaultExportDir,
			LogDir:     defaultLogDir,
		},
		Naver: Naver{
			BaseURL:           defaultNaverBaseURL,
			TimeoutSeconds:    defaultNaverTimeout,
			RequestsPerSecond: defaultNaverRPS,
			Burst:             defaultNaverBurst,
		},
		Recommend: Recommend{
			TopK: defaultTopK,
		},
		Books: Books{
			Display:     defaultBookDisplay,
			MinDiscount: defaultBookMinDiscount,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
