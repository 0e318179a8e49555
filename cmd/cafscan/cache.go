package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ncsc-tools/cafscan/internal/config"
	"github.com/ncsc-tools/cafscan/internal/database"
)

// NewCacheCmd creates the cache command with its subcommands.
func NewCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect or clear the SQLite page cache",
		Long: `Cache manages the local SQLite database of rendered page sources.

Cached pages let repeated crawls skip the headless browser. Clear the
cache when the site has changed and stale snapshots would poison a
fresh crawl.`,
	}

	cmd.PersistentFlags().String("db-dir", config.XDGDataDir(),
		"Directory holding the page cache database")

	cmd.AddCommand(newCacheStatsCmd())
	cmd.AddCommand(newCachePurgeCmd())

	return cmd
}

// newCacheStatsCmd creates the cache stats subcommand.
func newCacheStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show the number and age of cached pages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cache, err := openCache(cmd)
			if err != nil {
				return err
			}
			defer cache.Close()

			count, oldest, err := cache.Stats(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "cached pages: %d\n", count)
			if count > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "oldest fetch: %s\n", oldest.Format("2006-01-02 15:04:05"))
			}
			return nil
		},
	}
}

// newCachePurgeCmd creates the cache purge subcommand.
func newCachePurgeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "purge",
		Short: "Remove every cached page",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cache, err := openCache(cmd)
			if err != nil {
				return err
			}
			defer cache.Close()

			removed, err := cache.Purge(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "removed %d cached pages\n", removed)
			return nil
		},
	}
}

// openCache opens the page cache at the directory from the db-dir flag.
func openCache(cmd *cobra.Command) (*database.PageCache, error) {
	dbDir, err := cmd.Flags().GetString("db-dir")
	if err != nil {
		return nil, err
	}

	cache, err := database.Open(dbDir, database.DefaultOptions())
	if err != nil {
		return nil, fmt.Errorf("failed to open page cache: %w", err)
	}
	return cache, nil
}
