package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"audioheal/internal/clipcache"
)

func newCacheCommand(ctx *commandContext) *cobra.Command {
	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect and manage the synthesized clip cache",
	}

	cacheCmd.AddCommand(newCacheStatsCommand(ctx))
	cacheCmd.AddCommand(newCacheClearCommand(ctx))

	return cacheCmd
}

func newCacheStatsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show cache entry count, size, and hit totals",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := clipcache.Open(cfg.Paths.CacheDir)
			if err != nil {
				return err
			}
			defer store.Close()

			stats, err := store.Stats(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Metric", "Value"},
				[][]string{
					{"Directory", cfg.Paths.CacheDir},
					{"Entries", strconv.Itoa(stats.Entries)},
					{"Payload bytes", strconv.FormatInt(stats.TotalBytes, 10)},
					{"Hits", strconv.FormatInt(stats.TotalHits, 10)},
				},
				1,
			))
			return nil
		},
	}
}

func newCacheClearCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every cached clip",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := clipcache.Open(cfg.Paths.CacheDir)
			if err != nil {
				return err
			}
			defer store.Close()

			dropped, err := store.Clear(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d cached clip(s)\n", dropped)
			return nil
		},
	}
}
