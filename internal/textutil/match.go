package textutil

import (
	"strings"

	"golang.org/x/text/cases"
)

// ContainsFold reports whether query occurs in field under Unicode case
// folding. A blank query never matches, and neither does a blank field.
func ContainsFold(field, query string) bool {
	query = strings.TrimSpace(query)
	if query == "" || field == "" {
		return false
	}
	folder := cases.Fold()
	return strings.Contains(folder.String(field), folder.String(query))
}
