package books_test

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"testing"

	"marquee/internal/bookapi"
	"marquee/internal/books"
)

func sampleBooks() []bookapi.Book {
	return []bookapi.Book{
		{Title: "A", Author: "x", Discount: "15000", Publisher: "한빛미디어", PubDate: "20200101", Image: "a.jpg", Description: "first"},
		{Title: "B", Author: "y", Discount: "32000", Publisher: "O'Reilly Media", PubDate: "20210101"},
		{Title: "C", Author: "z", Discount: "", Publisher: "한빛아카데미"},
		{Title: "D", Author: "w", Discount: "25000", Publisher: "Manning"},
		{Title: "E", Author: "v", Discount: "25000", Publisher: "oreilly"},
		{Title: "F", Author: "u", Discount: "n/a", Publisher: "Manning"},
	}
}

func TestFilterByDiscount(t *testing.T) {
	rows := books.FilterByDiscount(sampleBooks(), 20000)
	want := []string{"B", "D", "E"}
	if len(rows) != len(want) {
		t.Fatalf("expected %d rows, got %d: %+v", len(want), len(rows), rows)
	}
	for i, title := range want {
		if rows[i].Title != title {
			t.Fatalf("row %d: expected %s, got %s", i, title, rows[i].Title)
		}
	}
	if rows[0].Discount != 32000 {
		t.Fatalf("expected parsed discount 32000, got %d", rows[0].Discount)
	}
}

func TestFilterByDiscountEmpty(t *testing.T) {
	if rows := books.FilterByDiscount(nil, 0); len(rows) != 0 {
		t.Fatalf("expected no rows, got %+v", rows)
	}
	if rows := books.FilterByDiscount(sampleBooks(), 100000); len(rows) != 0 {
		t.Fatalf("expected no rows above threshold, got %+v", rows)
	}
}

func TestFilterByDiscountKeepsHugeAndDropsNonFinite(t *testing.T) {
	list := []bookapi.Book{
		{Title: "small", Discount: "21000"},
		{Title: "huge", Discount: "1e30"},
		{Title: "nan", Discount: "NaN"},
		{Title: "inf", Discount: "+Inf"},
	}
	rows := books.FilterByDiscount(list, 20000)
	if len(rows) != 2 || rows[0].Title != "huge" || rows[1].Title != "small" {
		t.Fatalf("unexpected rows: %+v", rows)
	}
}

func TestParseDiscount(t *testing.T) {
	tests := []struct {
		in   string
		want int
		ok   bool
	}{
		{"19800", 19800, true},
		{" 500 ", 500, true},
		{"1200.7", 1200, true},
		{"", 0, false},
		{"free", 0, false},
		{"NaN", 0, false},
		{"Inf", 0, false},
		{"-infinity", 0, false},
		{"1e30", math.MaxInt, true},
		{"1e400", math.MaxInt, true},
		{"-1e30", math.MinInt, true},
		{"99999999999999999999", math.MaxInt, true},
	}
	for _, tt := range tests {
		got, ok := books.ParseDiscount(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseDiscount(%q) = %d,%v want %d,%v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestFilterByPublisher(t *testing.T) {
	tests := []struct {
		name string
		want []string
	}{
		{"한빛", []string{"A", "C"}},
		{"o'reilly", []string{"B"}},
		{"MANNING", []string{"D", "F"}},
		{"", nil},
		{"   ", nil},
		{"nobody", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := books.FilterByPublisher(sampleBooks(), tt.name)
			if len(rows) != len(tt.want) {
				t.Fatalf("expected %v, got %+v", tt.want, rows)
			}
			for i, title := range tt.want {
				if rows[i].Title != title {
					t.Fatalf("row %d: expected %s, got %s", i, title, rows[i].Title)
				}
			}
		})
	}
}

func TestPublisherProjectionOmitsImageAndDescription(t *testing.T) {
	rows := books.FilterByPublisher(sampleBooks(), "한빛미디어")
	data, err := json.Marshal(rows)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded []map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(decoded) != 1 {
		t.Fatalf("expected one row, got %d", len(decoded))
	}
	for _, key := range []string{"image", "description"} {
		if _, ok := decoded[0][key]; ok {
			t.Fatalf("projection should not contain %q", key)
		}
	}
}

func TestSaveJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "out.json")
	input := sampleBooks()[:2]
	if err := books.SaveJSON(path, input); err != nil {
		t.Fatalf("SaveJSON returned error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	var decoded []bookapi.Book
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("export is not valid JSON: %v", err)
	}
	if len(decoded) != 2 || decoded[0].Publisher != "한빛미디어" {
		t.Fatalf("unexpected export contents: %+v", decoded)
	}
	if !json.Valid(data) || data[0] != '[' {
		t.Fatalf("expected a JSON array, got %q", data[:10])
	}
}

func TestSaveJSONEmptyWritesArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.json")
	if err := books.SaveJSON(path, nil); err != nil {
		t.Fatalf("SaveJSON returned error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	if string(data) != "[]\n" {
		t.Fatalf("expected empty array, got %q", data)
	}
}

func TestDefaultExportPath(t *testing.T) {
	tests := []struct {
		dir, query, want string
	}{
		{"data", "파이썬", filepath.Join("data", "파이썬_books.json")},
		{"out", "c/c++: guide", filepath.Join("out", "c-c++- guide_books.json")},
		{"out", "  ", filepath.Join("out", "search_books.json")},
	}
	for _, tt := range tests {
		if got := books.DefaultExportPath(tt.dir, tt.query); got != tt.want {
			t.Errorf("DefaultExportPath(%q, %q) = %q, want %q", tt.dir, tt.query, got, tt.want)
		}
	}
}
