// Package cmd implements the CLI commands for semanticmd using Cobra.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var flagEnvFile string

var rootCmd = &cobra.Command{
	Use:   "semanticmd",
	Short: "semanticmd — convert HTML pages into semantic Markdown for LLMs",
	Long: `semanticmd converts web pages and HTML files into Markdown that keeps the
document's structure: headings, links, tables with spans, sectioning
elements and page metadata.

Usage:
  semanticmd convert <url|file>... [flags]`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := godotenv.Load(flagEnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("loading %s: %w", flagEnvFile, err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagEnvFile, "env_file", ".env", "Environment file with SEMANTICMD_* defaults")
}

// Execute runs the root command.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
