package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"marquee/internal/config"
)

func newConfigCommand(ctx *commandContext) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Create or check the configuration file",
	}
	configCmd.AddCommand(newConfigInitCommand(), newConfigValidateCommand(ctx))
	return configCmd
}

// initTarget resolves where config init writes, refusing to clobber an
// existing file unless overwrite is set.
func initTarget(path string, overwrite bool) (string, error) {
	var (
		target string
		err    error
	)
	if path = strings.TrimSpace(path); path == "" {
		target, err = config.DefaultConfigPath()
	} else {
		target, err = config.ExpandPath(path)
	}
	if err != nil {
		return "", fmt.Errorf("resolve config path: %w", err)
	}
	if overwrite {
		return target, nil
	}
	switch _, statErr := os.Stat(target); {
	case statErr == nil:
		return "", fmt.Errorf("config file already exists at %s (use --overwrite to replace it)", target)
	case !errors.Is(statErr, fs.ErrNotExist):
		return "", fmt.Errorf("check config path: %w", statErr)
	}
	return target, nil
}

func newConfigInitCommand() *cobra.Command {
	var path string
	var overwrite bool

	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Write a commented sample configuration",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := initTarget(path, overwrite)
			if err != nil {
				return err
			}
			// CreateSample writes atomically and creates the parent directory.
			if err := config.CreateSample(target); err != nil {
				return fmt.Errorf("create sample config: %w", err)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Wrote sample configuration to %s\n", target)
			fmt.Fprintln(out, "Set naver.client_id and naver.client_secret (or export NAVER_CLIENT_ID and NAVER_CLIENT_SECRET) before searching books.")
			return nil
		},
	}
	cmd.Flags().StringVarP(&path, "path", "p", "", "Destination for the configuration file")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Replace an existing configuration file")
	return cmd
}

func newConfigValidateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Load the configuration and report problems",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Config path: %s\n", ctx.configPath)
			if _, err := os.Stat(ctx.configPath); err != nil {
				fmt.Fprintln(out, "Config file not found; using defaults")
			}
			fmt.Fprintf(out, "Catalog: %s\n", cfg.Paths.CatalogCSV)
			fmt.Fprintf(out, "Database: %s\n", cfg.DatabasePath())
			if cfg.RequireNaver() != nil {
				fmt.Fprintln(out, "Book search: credentials missing (books search will fail)")
			} else {
				fmt.Fprintln(out, "Book search: credentials set")
			}
			fmt.Fprintln(out, "Configuration valid")
			return nil
		},
	}
}
