package testsupport

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"
	"testing"
)

// CatalogRow is one catalog CSV row used by tests.
type CatalogRow struct {
	ShowID      string
	Type        string
	Title       string
	Director    string
	Cast        string
	Country     string
	ReleaseYear int
	Genres      string
	Description string
}

// CatalogHeader matches the columns of the streaming catalog export.
var CatalogHeader = []string{
	"show_id", "type", "title", "director", "cast", "country",
	"date_added", "release_year", "rating", "duration", "listed_in", "description",
}

// WriteCatalogCSV writes rows to path in the streaming catalog layout.
// A zero ReleaseYear is written as an empty cell.
func WriteCatalogCSV(t testing.TB, path string, rows ...CatalogRow) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(CatalogHeader); err != nil {
		t.Fatalf("write header: %v", err)
	}
	for i, row := range rows {
		showID := row.ShowID
		if showID == "" {
			showID = "s" + strconv.Itoa(i+1)
		}
		year := ""
		if row.ReleaseYear != 0 {
			year = strconv.Itoa(row.ReleaseYear)
		}
		record := []string{
			showID, row.Type, row.Title, row.Director, row.Cast, row.Country,
			"", year, "", "", row.Genres, row.Description,
		}
		if err := w.Write(record); err != nil {
			t.Fatalf("write row %d: %v", i, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		t.Fatalf("flush %s: %v", path, err)
	}
}

// SampleCatalog is a small catalog with two actors sharing titles.
func SampleCatalog() []CatalogRow {
	return []CatalogRow{
		{Type: "Movie", Title: "Ocean Heist", Cast: "Kim Ji-won, Lee Min", ReleaseYear: 2019, Genres: "Action & Adventure, Thrillers", Description: "A crew of thieves plans a daring heist on a casino vault."},
		{Type: "Movie", Title: "Vault Runners", Cast: "Lee Min", ReleaseYear: 2021, Genres: "Action & Adventure", Description: "Thieves race to crack a vault before the heist goes wrong."},
		{Type: "TV Show", Title: "Garden Diaries", Cast: "Park Seo", ReleaseYear: 2020, Genres: "Docuseries", Description: "Gardeners grow vegetables through four seasons."},
		{Type: "Movie", Title: "Quiet Harbor", Cast: "", ReleaseYear: 2018, Genres: "Dramas", Description: "A fisherman rebuilds his life in a quiet harbor town."},
		{Type: "Movie", Title: "Casino Nights", Cast: "Kim Ji-won", ReleaseYear: 2022, Genres: "Thrillers", Description: "A dealer uncovers a casino heist from the inside."},
	}
}
