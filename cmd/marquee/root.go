package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// execute runs root and then releases the store, including when the
// command failed. Cobra skips post-run hooks on error.
func execute(ctx context.Context, root *cobra.Command, state *commandContext) error {
	err := root.ExecuteContext(ctx)
	if closeErr := state.close(); closeErr != nil && err == nil {
		err = fmt.Errorf("close store: %w", closeErr)
	}
	return err
}

// newRootCommand builds the command tree and the state its commands share.
func newRootCommand() (*cobra.Command, *commandContext) {
	var configFlag string
	var catalogFlag string
	var jsonFlag bool

	ctx := newCommandContext(&configFlag, &catalogFlag, &jsonFlag)

	rootCmd := &cobra.Command{
		Use:           "marquee",
		Short:         "Browse a streaming catalog and search books from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().StringVar(&catalogFlag, "catalog", "", "Catalog CSV to use instead of the imported or configured one")
	rootCmd.PersistentFlags().BoolVar(&jsonFlag, "json", false, "Emit JSON instead of tables")

	rootCmd.AddCommand(newActorsCommand(ctx))
	rootCmd.AddCommand(newRecommendCommand(ctx))
	rootCmd.AddCommand(newCatalogCommand(ctx))
	rootCmd.AddCommand(newBooksCommand(ctx))
	rootCmd.AddCommand(newConfigCommand(ctx))

	return rootCmd, ctx
}
