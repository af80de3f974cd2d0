package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"marquee/internal/catalog"
	"marquee/internal/config"
	"marquee/internal/fileutil"
	"marquee/internal/logging"
	"marquee/internal/store"
)

// catalogImportDir is the data directory subfolder imported CSVs are copied to.
const catalogImportDir = "catalog"

type catalogInfo struct {
	Path    string         `json:"path"`
	Origin  string         `json:"origin"`
	Rows    int            `json:"rows"`
	Version string         `json:"version"`
	Types   map[string]int `json:"types"`
	NoCast  int            `json:"no_cast"`
}

func newCatalogCommand(ctx *commandContext) *cobra.Command {
	catalogCmd := &cobra.Command{
		Use:   "catalog",
		Short: "Manage the catalog CSV",
	}
	catalogCmd.AddCommand(newCatalogImportCommand(ctx))
	catalogCmd.AddCommand(newCatalogInfoCommand(ctx))
	return catalogCmd
}

func newCatalogImportCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "import <csv>",
		Short: "Copy a catalog CSV into the data directory and make it the default",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			src, err := config.ExpandPath(strings.TrimSpace(args[0]))
			if err != nil {
				return fmt.Errorf("resolve catalog path: %w", err)
			}
			snap, err := catalog.LoadFile(src)
			if err != nil {
				return fmt.Errorf("load catalog: %w", err)
			}

			dst := filepath.Join(cfg.Paths.DataDir, catalogImportDir, filepath.Base(src))
			if filepath.Clean(src) != filepath.Clean(dst) {
				if _, err := fileutil.CopyFileVerified(src, dst); err != nil {
					return fmt.Errorf("copy catalog: %w", err)
				}
			}

			runCtx, logger := ctx.commandLogger(cmd)
			st, err := ctx.openStore()
			if err != nil {
				return err
			}
			id, err := st.RecordCatalogImport(runCtx, store.CatalogImport{
				Path:    dst,
				Version: snap.Version(),
				Rows:    snap.Len(),
			})
			if err != nil {
				return fmt.Errorf("record catalog import: %w", err)
			}
			logger.Info("catalog imported",
				logging.String("source", src),
				logging.String("path", dst),
				logging.Int("rows", snap.Len()),
				logging.Int64("import_id", id),
			)

			if ctx.jsonOutput() {
				return writeJSON(cmd, catalogInfo{
					Path:    dst,
					Origin:  catalogFromImport,
					Rows:    snap.Len(),
					Version: snap.Version(),
					Types:   countTypes(snap.Items()),
					NoCast:  countNoCast(snap.Items()),
				})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d titles from %s to %s\n", snap.Len(), src, dst)
			return nil
		},
	}
}

func newCatalogInfoCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show the active catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			runCtx, logger := ctx.commandLogger(cmd)
			snap, origin, err := ctx.loadCatalog(runCtx, logger)
			if err != nil {
				return err
			}
			items := snap.Items()
			info := catalogInfo{
				Path:    snap.Source(),
				Origin:  origin,
				Rows:    snap.Len(),
				Version: snap.Version(),
				Types:   countTypes(items),
				NoCast:  countNoCast(items),
			}
			if ctx.jsonOutput() {
				return writeJSON(cmd, info)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Catalog: %s (%s)\n", info.Path, info.Origin)
			fmt.Fprintf(out, "Titles: %d\n", info.Rows)
			fmt.Fprintf(out, "Version: %s\n", shortVersion(info.Version))
			fmt.Fprintf(out, "Without cast: %d\n", info.NoCast)
			for _, name := range sortedKeys(info.Types) {
				fmt.Fprintf(out, "  %s: %d\n", name, info.Types[name])
			}
			return nil
		},
	}
}

func countTypes(items []catalog.Item) map[string]int {
	counts := make(map[string]int)
	for _, item := range items {
		name := item.Type
		if name == "" {
			name = "unknown"
		}
		counts[name]++
	}
	return counts
}

func countNoCast(items []catalog.Item) int {
	n := 0
	for _, item := range items {
		if !item.HasCast() {
			n++
		}
	}
	return n
}

func shortVersion(version string) string {
	if len(version) > 12 {
		return version[:12]
	}
	return version
}
