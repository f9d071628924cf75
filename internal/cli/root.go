package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/jakoblorz/hyva-compat/internal/filesystem"
	"github.com/spf13/cobra"
)

// NewRootCommand creates the root command
func NewRootCommand(fs filesystem.FileSystem) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "hyva-compat [magento-root]",
		Short: "Find Magento modules that need Hyva compatibility work",
		Long: `A CLI tool that analyzes a Magento 2 installation for Hyva readiness.

Every enabled third party or custom module is located, its frontend
templates, scripts and layout files are counted, and modules without Hyva
compatibility markers are written to a CSV and JSON report.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Default to `hyva-compat analyze` when no subcommand is provided.
			return newAnalyzeCommand(fs).Run(cmd, args)
		},
	}
	addAnalyzeFlags(rootCmd.Flags())

	rootCmd.AddCommand(NewAnalyzeCommand(fs))
	rootCmd.AddCommand(NewResolveCommand(fs))

	return rootCmd
}

// Execute runs the root command
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rootCmd := NewRootCommand(filesystem.NewOSFileSystem())

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		return fmt.Errorf("command failed: %w", err)
	}

	return nil
}
