package books

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"

	"marquee/internal/bookapi"
	"marquee/internal/fileutil"
	"marquee/internal/textutil"
)

// DefaultExportPath returns {exportDir}/{query}_books.json with the query
// made safe for use as a file name.
func DefaultExportPath(exportDir, query string) string {
	name := textutil.SanitizeFileName(query)
	if name == "" {
		name = "search"
	}
	return filepath.Join(exportDir, name+"_books.json")
}

// SaveJSON writes results to path as indented UTF-8 JSON, creating parent
// directories as needed.
func SaveJSON(path string, results []bookapi.Book) error {
	if results == nil {
		results = []bookapi.Book{}
	}
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "    ")
	if err := encoder.Encode(results); err != nil {
		return fmt.Errorf("encode book results: %w", err)
	}
	if err := fileutil.WriteFileAtomic(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("save book results: %w", err)
	}
	return nil
}
