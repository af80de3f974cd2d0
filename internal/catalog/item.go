package catalog

import "strings"

// NoData is the placeholder stored in Cast when the source row has no cast.
const NoData = "No Data"

// Item is one catalog row. Items are values and never change after load.
type Item struct {
	ID          int    `json:"id"`
	ShowID      string `json:"show_id,omitempty"`
	Title       string `json:"title"`
	Type        string `json:"type"`
	Genres      string `json:"listed_in"`
	Description string `json:"description"`
	ReleaseYear int    `json:"release_year"`
	Cast        string `json:"cast"`
	Director    string `json:"director,omitempty"`
	Country     string `json:"country,omitempty"`
}

// Document returns the composite text used for similarity: type, genres and
// description joined by single spaces.
func (i Item) Document() string {
	return i.Type + " " + i.Genres + " " + i.Description
}

// HasCast reports whether the row lists any cast members.
func (i Item) HasCast() bool {
	cast := strings.TrimSpace(i.Cast)
	return cast != "" && cast != NoData
}

// normalized applies the field defaults used for missing cells.
func (i Item) normalized() Item {
	i.Title = strings.TrimSpace(i.Title)
	i.Type = strings.TrimSpace(i.Type)
	i.Genres = strings.TrimSpace(i.Genres)
	i.Description = strings.TrimSpace(i.Description)
	i.Cast = strings.TrimSpace(i.Cast)
	if i.Cast == "" {
		i.Cast = NoData
	}
	i.Director = strings.TrimSpace(i.Director)
	i.Country = strings.TrimSpace(i.Country)
	if i.ReleaseYear < 0 {
		i.ReleaseYear = 0
	}
	return i
}
