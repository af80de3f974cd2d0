package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Column names in the catalog CSV header.
const (
	ColumnShowID      = "show_id"
	ColumnTitle       = "title"
	ColumnType        = "type"
	ColumnGenres      = "listed_in"
	ColumnDescription = "description"
	ColumnReleaseYear = "release_year"
	ColumnCast        = "cast"
	ColumnDirector    = "director"
	ColumnCountry     = "country"
)

var requiredColumns = []string{
	ColumnTitle,
	ColumnType,
	ColumnGenres,
	ColumnDescription,
	ColumnReleaseYear,
	ColumnCast,
}

// LoadFile opens path and loads it as a catalog CSV.
func LoadFile(path string) (*Snapshot, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer file.Close()

	items, err := readItems(file)
	if err != nil {
		return nil, fmt.Errorf("load catalog %s: %w", path, err)
	}
	return newSnapshot(items, path), nil
}

// Load reads a catalog CSV with a header row. Missing required columns are
// reported by name. Empty cells are defaulted and an unparseable
// release_year becomes 0.
func Load(r io.Reader) (*Snapshot, error) {
	items, err := readItems(r)
	if err != nil {
		return nil, err
	}
	return NewSnapshot(items), nil
}

func readItems(r io.Reader) ([]Item, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, errors.New("catalog is missing a header row")
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	idx := headerIndex(header)
	for _, col := range requiredColumns {
		if _, ok := idx[col]; !ok {
			return nil, fmt.Errorf("missing column %s", col)
		}
	}

	var items []Item
	for line := 2; ; line++ {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", line, err)
		}
		if isBlankRow(row) {
			continue
		}
		items = append(items, Item{
			ShowID:      field(row, idx, ColumnShowID),
			Title:       field(row, idx, ColumnTitle),
			Type:        field(row, idx, ColumnType),
			Genres:      field(row, idx, ColumnGenres),
			Description: field(row, idx, ColumnDescription),
			ReleaseYear: parseYear(field(row, idx, ColumnReleaseYear)),
			Cast:        field(row, idx, ColumnCast),
			Director:    field(row, idx, ColumnDirector),
			Country:     field(row, idx, ColumnCountry),
		})
	}
	return items, nil
}

func headerIndex(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
		if _, seen := idx[name]; !seen {
			idx[name] = i
		}
	}
	return idx
}

func field(row []string, idx map[string]int, column string) string {
	i, ok := idx[column]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func parseYear(value string) int {
	if value == "" {
		return 0
	}
	if year, err := strconv.Atoi(value); err == nil {
		return year
	}
	// Some exports write years as floats ("2019.0").
	if f, err := strconv.ParseFloat(value, 64); err == nil && f >= 0 {
		return int(f)
	}
	return 0
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
