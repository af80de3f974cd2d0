package catalog

import "sort"

// SortByReleaseYearDesc orders items newest first. Items from the same year
// keep their relative order.
func SortByReleaseYearDesc(items []Item) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].ReleaseYear > items[j].ReleaseYear
	})
}

// UniqueTitles returns each distinct title once, in first-seen order.
func UniqueTitles(items []Item) []string {
	seen := make(map[string]struct{}, len(items))
	titles := make([]string, 0, len(items))
	for _, item := range items {
		if _, ok := seen[item.Title]; ok {
			continue
		}
		seen[item.Title] = struct{}{}
		titles = append(titles, item.Title)
	}
	return titles
}
