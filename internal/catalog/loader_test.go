package catalog_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"marquee/internal/catalog"
	"marquee/internal/services"
)

const sampleCSV = `show_id,type,title,director,cast,country,date_added,release_year,rating,duration,listed_in,description
s1,Movie,Inception,Christopher Nolan,"Leonardo DiCaprio, Joseph Gordon-Levitt",United States,"July 1, 2020",2010,PG-13,148 min,"Action & Adventure, Sci-Fi","A thief enters dreams to plant an idea."
s2,TV Show,Kitchen Nights,,,,,2021,TV-G,1 Season,Reality TV,
s3,Movie,The Revenant,Alejandro G. Iñárritu,"Leonardo DiCaprio, Tom Hardy",United States,,2015.0,R,156 min,Dramas,"A frontiersman fights for survival."
`

func TestLoadAppliesDefaults(t *testing.T) {
	snap, err := catalog.Load(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if snap.Len() != 3 {
		t.Fatalf("expected 3 items, got %d", snap.Len())
	}

	first, ok := snap.Item(0)
	if !ok {
		t.Fatal("expected item 0")
	}
	if first.Title != "Inception" || first.ReleaseYear != 2010 || first.Genres != "Action & Adventure, Sci-Fi" {
		t.Fatalf("unexpected first item: %+v", first)
	}
	if first.Director != "Christopher Nolan" || first.ShowID != "s1" {
		t.Fatalf("unexpected optional columns: %+v", first)
	}

	second, _ := snap.Item(1)
	if second.Cast != catalog.NoData {
		t.Fatalf("expected cast placeholder, got %q", second.Cast)
	}
	if second.Description != "" {
		t.Fatalf("expected empty description, got %q", second.Description)
	}
	if second.HasCast() {
		t.Fatal("placeholder cast should not count as cast")
	}

	third, _ := snap.Item(2)
	if third.ID != 2 {
		t.Fatalf("expected stable row id 2, got %d", third.ID)
	}
	if third.ReleaseYear != 2015 {
		t.Fatalf("expected float year to parse, got %d", third.ReleaseYear)
	}
}

func TestLoadMissingColumn(t *testing.T) {
	_, err := catalog.Load(strings.NewReader("title,type,cast\nA,Movie,x\n"))
	if err == nil {
		t.Fatal("expected error for missing columns")
	}
	if !strings.Contains(err.Error(), "listed_in") {
		t.Fatalf("expected error to name the missing column, got %v", err)
	}
}

func TestLoadEmptyInput(t *testing.T) {
	if _, err := catalog.Load(strings.NewReader("")); err == nil {
		t.Fatal("expected error for empty input")
	}
}

func TestLoadFileRecordsSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "titles.csv")
	if err := os.WriteFile(path, []byte(sampleCSV), 0o644); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	snap, err := catalog.LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile returned error: %v", err)
	}
	if snap.Source() != path {
		t.Fatalf("unexpected source %q", snap.Source())
	}

	again, err := catalog.Load(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if snap.Version() != again.Version() {
		t.Fatal("equal content should produce equal versions")
	}
}

func TestSnapshotVersionChangesWithContent(t *testing.T) {
	a := catalog.NewSnapshot([]catalog.Item{{Title: "A", Description: "spy chase"}})
	b := catalog.NewSnapshot([]catalog.Item{{Title: "A", Description: "spy chases"}})
	if a.Version() == b.Version() {
		t.Fatal("expected different versions for different content")
	}
}

func TestFilterByCast(t *testing.T) {
	snap, err := catalog.Load(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	tests := []struct {
		query string
		want  []string
	}{
		{"dicaprio", []string{"Inception", "The Revenant"}},
		{"TOM HARDY", []string{"The Revenant"}},
		{"no data", nil},
		{"", nil},
		{"Meryl Streep", nil},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			got := snap.FilterByCast(tt.query)
			if len(got) != len(tt.want) {
				t.Fatalf("FilterByCast(%q) returned %d items, want %d", tt.query, len(got), len(tt.want))
			}
			for i, item := range got {
				if item.Title != tt.want[i] {
					t.Errorf("item %d = %q, want %q", i, item.Title, tt.want[i])
				}
			}
		})
	}
}

func TestResolveTitle(t *testing.T) {
	snap := catalog.NewSnapshot([]catalog.Item{
		{Title: "Dup"},
		{Title: "Other"},
		{Title: "Dup"},
	})
	item, err := snap.ResolveTitle("Dup")
	if err != nil {
		t.Fatalf("ResolveTitle returned error: %v", err)
	}
	if item.ID != 0 {
		t.Fatalf("expected first match, got id %d", item.ID)
	}

	_, err = snap.ResolveTitle("Missing")
	if !errors.Is(err, catalog.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation marker, got %v", err)
	}

	empty := catalog.NewSnapshot(nil)
	if _, err := empty.ResolveTitle("Dup"); !errors.Is(err, catalog.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty catalog, got %v", err)
	}
}

func TestSortAndUniqueTitles(t *testing.T) {
	items := []catalog.Item{
		{Title: "Old", ReleaseYear: 1999},
		{Title: "New", ReleaseYear: 2021},
		{Title: "Also New", ReleaseYear: 2021},
		{Title: "Old", ReleaseYear: 1999},
	}
	catalog.SortByReleaseYearDesc(items)
	order := []string{items[0].Title, items[1].Title, items[2].Title, items[3].Title}
	want := []string{"New", "Also New", "Old", "Old"}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("sorted order = %v, want %v", order, want)
		}
	}

	titles := catalog.UniqueTitles(items)
	if len(titles) != 3 || titles[2] != "Old" {
		t.Fatalf("UniqueTitles = %v", titles)
	}
}
