package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"marquee/internal/catalog"
	"marquee/internal/logging"
)

func newActorsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "actors <name>",
		Short: "List the titles an actor appears in, newest first",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.TrimSpace(strings.Join(args, " "))
			runCtx, logger := ctx.commandLogger(cmd)
			snap, _, err := ctx.loadCatalog(runCtx, logger)
			if err != nil {
				return err
			}

			matches := snap.FilterByCast(name)
			catalog.SortByReleaseYearDesc(matches)
			logger.Info("actor search",
				logging.String("actor", name),
				logging.Int("matches", len(matches)),
			)

			if ctx.jsonOutput() {
				return writeJSON(cmd, matches)
			}
			out := cmd.OutOrStdout()
			if len(matches) == 0 {
				fmt.Fprintf(out, "No titles found for %q\n", name)
				return nil
			}
			fmt.Fprintf(out, "%d titles featuring %q\n", len(matches), name)
			fmt.Fprintln(out, renderItemTable(matches, terminalWidth(out)))
			return nil
		},
	}
}

func renderItemTable(items []catalog.Item, width int) string {
	rows := make([][]string, 0, len(items))
	for _, item := range items {
		rows = append(rows, []string{item.Title, item.Type, formatYear(item.ReleaseYear), item.Genres})
	}
	return renderTable([]column{{title: "Title"}, {title: "Type"}, {title: "Year", numeric: true}, {title: "Genres"}}, rows, width)
}

func formatYear(year int) string {
	if year == 0 {
		return "-"
	}
	return strconv.Itoa(year)
}
