package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"marquee/internal/bookapi"
	"marquee/internal/books"
	"marquee/internal/config"
	"marquee/internal/logging"
	"marquee/internal/services"
	"marquee/internal/session"
	"marquee/internal/store"
)

// historyLimit bounds books history output.
const historyLimit = 20

func newBooksCommand(ctx *commandContext) *cobra.Command {
	booksCmd := &cobra.Command{
		Use:   "books",
		Short: "Search books and filter the latest results",
	}
	booksCmd.AddCommand(newBooksSearchCommand(ctx))
	booksCmd.AddCommand(newBooksListCommand(ctx))
	booksCmd.AddCommand(newBooksDiscountCommand(ctx))
	booksCmd.AddCommand(newBooksPublisherCommand(ctx))
	booksCmd.AddCommand(newBooksSaveCommand(ctx))
	booksCmd.AddCommand(newBooksHistoryCommand(ctx))
	booksCmd.AddCommand(newBooksClearCommand(ctx))
	return booksCmd
}

func newBookClient(cfg *config.Config, logger *slog.Logger) (*bookapi.Client, error) {
	if err := cfg.RequireNaver(); err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "books", "search", "book search credentials missing", err)
	}
	return bookapi.New(cfg.Naver.ClientID, cfg.Naver.ClientSecret, cfg.Naver.BaseURL,
		bookapi.WithTimeout(time.Duration(cfg.Naver.TimeoutSeconds)*time.Second),
		bookapi.WithRateLimit(cfg.Naver.RequestsPerSecond, cfg.Naver.Burst),
		bookapi.WithLogger(logger),
	)
}

func newBooksSearchCommand(ctx *commandContext) *cobra.Command {
	var display int

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search books and remember the results for the filter commands",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			query := strings.TrimSpace(strings.Join(args, " "))
			if !cmd.Flags().Changed("display") {
				display = cfg.Books.Display
			}
			display = bookapi.ClampDisplay(display)

			runCtx, logger := ctx.commandLogger(cmd)
			client, err := newBookClient(cfg, logger)
			if err != nil {
				return err
			}

			results, err := client.SearchBooks(runCtx, query, display)
			if err != nil {
				if errors.Is(err, services.ErrValidation) || errors.Is(err, context.Canceled) {
					return err
				}
				// The previous search stays current so the filters keep
				// working on it.
				logging.WarnWithContext(logger, "book search failed", "book_search_failed",
					logging.String("query", query),
					logging.Error(err),
					logging.String(logging.FieldErrorHint, "check naver credentials and network access"),
				)
				fmt.Fprintf(cmd.ErrOrStderr(), "Book search failed: %v\n", err)
				results = nil
			} else if err := persistSearch(runCtx, ctx, logger, query, display, results); err != nil {
				return err
			}

			if ctx.jsonOutput() {
				return writeJSON(cmd, nonNilBooks(results))
			}
			out := cmd.OutOrStdout()
			if len(results) == 0 {
				fmt.Fprintf(out, "No books found for %q\n", query)
				return nil
			}
			fmt.Fprintf(out, "%d books for %q\n", len(results), query)
			fmt.Fprintln(out, renderBookTable(results, terminalWidth(out)))
			return nil
		},
	}
	cmd.Flags().IntVar(&display, "display", bookapi.DefaultDisplay,
		fmt.Sprintf("Number of results to request (%d-%d)", bookapi.MinDisplay, bookapi.MaxDisplay))
	return cmd
}

// persistSearch caches results on a new session and records it as the
// latest search.
func persistSearch(runCtx context.Context, ctx *commandContext, logger *slog.Logger, query string, display int, results []bookapi.Book) error {
	sess := session.New(nil, nil, session.WithLogger(logger))
	sess.SetBookResults(query, results)

	st, err := ctx.openStore()
	if err != nil {
		return err
	}
	if _, err := st.SaveBookSearch(runCtx, store.BookSearch{
		SessionID: sess.ID,
		Query:     query,
		Endpoint:  "book",
		Display:   display,
		Results:   results,
	}); err != nil {
		return fmt.Errorf("save book search: %w", err)
	}
	return nil
}

// restoreSession rebuilds a session from the most recent persisted search.
func restoreSession(ctx *commandContext, cmd *cobra.Command) (*session.Session, context.Context, *slog.Logger, error) {
	runCtx, logger := ctx.commandLogger(cmd)
	st, err := ctx.openStore()
	if err != nil {
		return nil, nil, nil, err
	}
	latest, err := st.LatestBookSearch(runCtx)
	if err != nil {
		return nil, nil, nil, err
	}
	sess := session.New(nil, nil, session.WithID(latest.SessionID), session.WithLogger(logger))
	sess.SetBookResults(latest.Query, latest.Results)
	runCtx = services.WithSessionID(runCtx, sess.ID)
	return sess, runCtx, logging.WithContext(runCtx, logger), nil
}

func newBooksListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show the latest search results",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, _, _, err := restoreSession(ctx, cmd)
			if err != nil {
				return err
			}
			query, results := sess.BookResults()
			if ctx.jsonOutput() {
				return writeJSON(cmd, results)
			}
			out := cmd.OutOrStdout()
			if len(results) == 0 {
				fmt.Fprintf(out, "No books saved for %q\n", query)
				return nil
			}
			fmt.Fprintf(out, "%d books for %q\n", len(results), query)
			fmt.Fprintln(out, renderBookTable(results, terminalWidth(out)))
			return nil
		},
	}
}

func newBooksDiscountCommand(ctx *commandContext) *cobra.Command {
	var minDiscount int

	cmd := &cobra.Command{
		Use:   "discount",
		Short: "Show books with a discount price at or above a threshold",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("min") {
				minDiscount = cfg.Books.MinDiscount
			}
			if minDiscount < 0 {
				return services.Wrap(services.ErrValidation, "books", "discount", "--min must be zero or greater", nil)
			}
			sess, _, logger, err := restoreSession(ctx, cmd)
			if err != nil {
				return err
			}
			_, results := sess.BookResults()
			rows := books.FilterByDiscount(results, minDiscount)
			logger.Debug("discount filter",
				logging.Int("min_discount", minDiscount),
				logging.Int("matches", len(rows)),
			)

			if ctx.jsonOutput() {
				return writeJSON(cmd, rows)
			}
			out := cmd.OutOrStdout()
			if len(rows) == 0 {
				fmt.Fprintf(out, "No books with a discount price of %d or more\n", minDiscount)
				return nil
			}
			fmt.Fprintf(out, "Books with a discount price of %d or more\n", minDiscount)
			fmt.Fprintln(out, renderDiscountTable(rows, terminalWidth(out)))
			return nil
		},
	}
	cmd.Flags().IntVar(&minDiscount, "min", books.DefaultMinDiscount, "Minimum discount price")
	return cmd
}

func newBooksPublisherCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "publisher <name>",
		Short: "Show books whose publisher contains a name",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.TrimSpace(strings.Join(args, " "))
			sess, _, logger, err := restoreSession(ctx, cmd)
			if err != nil {
				return err
			}
			_, results := sess.BookResults()
			rows := books.FilterByPublisher(results, name)
			logger.Debug("publisher filter",
				logging.String("publisher", name),
				logging.Int("matches", len(rows)),
			)

			if ctx.jsonOutput() {
				return writeJSON(cmd, rows)
			}
			out := cmd.OutOrStdout()
			if len(rows) == 0 {
				fmt.Fprintf(out, "No books with a publisher containing %q\n", name)
				return nil
			}
			fmt.Fprintf(out, "Books with a publisher containing %q\n", name)
			fmt.Fprintln(out, renderPublisherTable(rows, terminalWidth(out)))
			return nil
		},
	}
}

func newBooksSaveCommand(ctx *commandContext) *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "save",
		Short: "Write the latest search results to a JSON file",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			sess, _, logger, err := restoreSession(ctx, cmd)
			if err != nil {
				return err
			}
			query, results := sess.BookResults()
			if len(results) == 0 {
				return services.Wrap(services.ErrNotFound, "books", "save", fmt.Sprintf("no results to save for %q", query), nil)
			}

			target := strings.TrimSpace(path)
			if target == "" {
				target = books.DefaultExportPath(cfg.Paths.ExportDir, query)
			} else if target, err = config.ExpandPath(target); err != nil {
				return fmt.Errorf("resolve export path: %w", err)
			}
			if err := books.SaveJSON(target, results); err != nil {
				return err
			}
			logger.Info("book results saved",
				logging.String("path", target),
				logging.Int("results", len(results)),
			)
			fmt.Fprintf(cmd.OutOrStdout(), "Saved %d books to %s\n", len(results), target)
			return nil
		},
	}
	cmd.Flags().StringVarP(&path, "path", "p", "", "Destination file (default {export_dir}/{query}_books.json)")
	return cmd
}

func newBooksHistoryCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "List recent book searches",
		RunE: func(cmd *cobra.Command, args []string) error {
			runCtx, _ := ctx.commandLogger(cmd)
			st, err := ctx.openStore()
			if err != nil {
				return err
			}
			searches, err := st.ListBookSearches(runCtx, historyLimit)
			if err != nil {
				return err
			}
			if ctx.jsonOutput() {
				type entry struct {
					ID        int64     `json:"id"`
					SessionID string    `json:"session_id"`
					Query     string    `json:"query"`
					Display   int       `json:"display"`
					Results   int       `json:"results"`
					CreatedAt time.Time `json:"created_at"`
				}
				entries := make([]entry, 0, len(searches))
				for _, s := range searches {
					entries = append(entries, entry{s.ID, s.SessionID, s.Query, s.Display, s.ResultCount, s.CreatedAt})
				}
				return writeJSON(cmd, entries)
			}
			out := cmd.OutOrStdout()
			if len(searches) == 0 {
				fmt.Fprintln(out, "No book searches saved")
				return nil
			}
			rows := make([][]string, 0, len(searches))
			for _, s := range searches {
				rows = append(rows, []string{
					strconv.FormatInt(s.ID, 10),
					s.Query,
					strconv.Itoa(s.ResultCount),
					s.CreatedAt.Local().Format("2006-01-02 15:04"),
				})
			}
			cols := []column{{title: "ID", numeric: true}, {title: "Query"}, {title: "Results", numeric: true}, {title: "Searched"}}
			fmt.Fprintln(out, renderTable(cols, rows, terminalWidth(out)))
			return nil
		},
	}
}

func newBooksClearCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all saved book searches",
		RunE: func(cmd *cobra.Command, args []string) error {
			runCtx, logger := ctx.commandLogger(cmd)
			st, err := ctx.openStore()
			if err != nil {
				return err
			}
			removed, err := st.ClearBookSearches(runCtx)
			if err != nil {
				return err
			}
			logger.Info("book searches cleared", logging.Int64("removed", removed))
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d book searches\n", removed)
			return nil
		},
	}
}

func nonNilBooks(list []bookapi.Book) []bookapi.Book {
	if list == nil {
		return []bookapi.Book{}
	}
	return list
}

func renderBookTable(list []bookapi.Book, width int) string {
	rows := make([][]string, 0, len(list))
	for i, book := range list {
		rows = append(rows, []string{
			strconv.Itoa(i + 1), book.Title, book.Author, book.Publisher, book.Discount, book.PubDate,
		})
	}
	cols := []column{
		{title: "#", numeric: true},
		{title: "Title"},
		{title: "Author"},
		{title: "Publisher"},
		{title: "Discount", numeric: true},
		{title: "Published"},
	}
	return renderTable(cols, rows, width)
}

func renderDiscountTable(list []books.DiscountRow, width int) string {
	rows := make([][]string, 0, len(list))
	for _, row := range list {
		rows = append(rows, []string{row.Title, row.Author, strconv.Itoa(row.Discount), row.Publisher, row.PubDate})
	}
	cols := []column{
		{title: "Title"},
		{title: "Author"},
		{title: "Discount", numeric: true},
		{title: "Publisher"},
		{title: "Published"},
	}
	return renderTable(cols, rows, width)
}

func renderPublisherTable(list []books.PublisherRow, width int) string {
	rows := make([][]string, 0, len(list))
	for _, row := range list {
		rows = append(rows, []string{row.Title, row.Author, row.Publisher, row.Discount, row.PubDate, row.ISBN})
	}
	cols := []column{
		{title: "Title"},
		{title: "Author"},
		{title: "Publisher"},
		{title: "Discount", numeric: true},
		{title: "Published"},
		{title: "ISBN"},
	}
	return renderTable(cols, rows, width)
}
