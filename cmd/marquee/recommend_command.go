package main

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"marquee/internal/catalog"
	"marquee/internal/logging"
	"marquee/internal/recommend"
	"marquee/internal/services"
	"marquee/internal/session"
)

type recommendOutput struct {
	Reference       catalog.Item               `json:"reference"`
	Recommendations []recommend.Recommendation `json:"recommendations"`
}

func newRecommendCommand(ctx *commandContext) *cobra.Command {
	var actor string
	var title string
	var k int

	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Recommend titles similar to one of an actor's titles",
		Long: "Recommend filters the catalog by actor, resolves the chosen title and ranks\n" +
			"every other title by TF-IDF cosine similarity of type, genres and description.\n" +
			"Without --title an interactive picker is shown when stdin is a terminal.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("k") {
				k = cfg.Recommend.TopK
			}
			if k < 0 {
				return services.Wrap(services.ErrValidation, "recommend", "flags", "-k must be zero or greater", nil)
			}

			runCtx, logger := ctx.commandLogger(cmd)
			snap, _, err := ctx.loadCatalog(runCtx, logger)
			if err != nil {
				return err
			}

			actor = strings.TrimSpace(actor)
			matches := snap.FilterByCast(actor)
			if len(matches) == 0 {
				return services.Wrap(services.ErrNotFound, "recommend", "actor", fmt.Sprintf("no titles found for %q", actor), nil)
			}
			titles := catalog.UniqueTitles(matches)

			selected := strings.TrimSpace(title)
			if selected == "" {
				if !isTerminal(cmd.InOrStdin()) {
					return services.Wrap(services.ErrValidation, "recommend", "flags",
						fmt.Sprintf("--title is required when stdin is not a terminal (choices: %s)", strings.Join(titles, "; ")), nil)
				}
				selected, err = pickTitle(cmd.InOrStdin(), cmd.ErrOrStderr(), titles)
				if err != nil {
					return err
				}
			} else if !slices.Contains(titles, selected) {
				return services.Wrap(services.ErrValidation, "recommend", "flags",
					fmt.Sprintf("%q does not feature %q (choices: %s)", selected, actor, strings.Join(titles, "; ")), nil)
			}

			reference, err := snap.ResolveTitle(selected)
			if err != nil {
				return err
			}

			sess := session.New(snap, nil, session.WithLogger(logger))
			recs, err := sess.Recommend(reference.ID, k)
			if err != nil {
				return err
			}
			logger.Info("recommendations ranked",
				logging.String("reference", reference.Title),
				logging.Int("reference_id", reference.ID),
				logging.Int("k", k),
				logging.Int("returned", len(recs)),
			)

			if ctx.jsonOutput() {
				return writeJSON(cmd, recommendOutput{Reference: reference, Recommendations: recs})
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Titles similar to %q (%s, %s)\n", reference.Title, reference.Type, formatYear(reference.ReleaseYear))
			if len(recs) == 0 {
				fmt.Fprintln(out, "No other titles to compare against.")
				return nil
			}
			fmt.Fprintln(out, renderRecommendationTable(recs, terminalWidth(out)))
			return nil
		},
	}

	cmd.Flags().StringVar(&actor, "actor", "", "Actor name to filter the catalog by")
	cmd.Flags().StringVar(&title, "title", "", "Title to find similar titles for")
	cmd.Flags().IntVarP(&k, "k", "k", recommend.DefaultK, "Number of recommendations")
	_ = cmd.MarkFlagRequired("actor")
	return cmd
}

func renderRecommendationTable(recs []recommend.Recommendation, width int) string {
	rows := make([][]string, 0, len(recs))
	for i, rec := range recs {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			rec.Item.Title,
			rec.Item.Type,
			formatYear(rec.Item.ReleaseYear),
			rec.Item.Genres,
			strconv.FormatFloat(rec.Score, 'f', 3, 64),
		})
	}
	cols := []column{
		{title: "#", numeric: true},
		{title: "Title"},
		{title: "Type"},
		{title: "Year", numeric: true},
		{title: "Genres"},
		{title: "Score", numeric: true},
	}
	return renderTable(cols, rows, width)
}
