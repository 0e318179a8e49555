package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for cafscan.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cafscan",
		Short: "Crawl the NCSC Cyber Assessment Framework into structured output",
		Long: `cafscan crawls the NCSC Cyber Assessment Framework collection site and
serializes its objectives, principles, and contributing outcomes into a
JSON document, with an optional Markdown digest for review.

The site renders its content client-side, so cafscan drives a headless
browser by default. Rendered pages are cached in a local SQLite database
to keep repeat runs fast.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewScrapeCmd())
	cmd.AddCommand(NewCacheCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
