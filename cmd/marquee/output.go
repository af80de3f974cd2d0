package main

import (
	"encoding/json"
	"sort"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"
)

// column describes one table column. Numeric columns are right-aligned.
type column struct {
	title   string
	numeric bool
}

// renderTable draws rows under cols in the rounded style. Short rows are
// padded with empty cells. A positive maxWidth caps the row length.
func renderTable(cols []column, rows [][]string, maxWidth int) string {
	if len(cols) == 0 {
		return ""
	}
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	if maxWidth > 0 {
		tw.SetAllowedRowLength(maxWidth)
	}

	header := make(table.Row, len(cols))
	configs := make([]table.ColumnConfig, len(cols))
	for i, col := range cols {
		header[i] = col.title
		configs[i] = table.ColumnConfig{Number: i + 1, AlignHeader: text.AlignLeft, Align: text.AlignLeft}
		if col.numeric {
			configs[i].Align = text.AlignRight
		}
	}
	tw.AppendHeader(header)
	tw.SetColumnConfigs(configs)

	for _, row := range rows {
		r := make(table.Row, len(cols))
		for i := range r {
			r[i] = ""
			if i < len(row) {
				r[i] = row[i]
			}
		}
		tw.AppendRow(r)
	}
	return tw.Render()
}

// writeJSON encodes v as indented JSON to the command's stdout. HTML
// characters in titles are written as-is.
func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
