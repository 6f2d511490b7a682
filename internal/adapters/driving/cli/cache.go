package cli

import (
	"github.com/spf13/cobra"

	"github.com/inkwell-labs/inkwell-cli/internal/adapters/driven/storage/sqlite"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect or clear the embedding cache",
}

var cacheStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show embedding cache statistics",
	RunE: func(cmd *cobra.Command, _ []string) error {
		store, err := sqlite.NewCacheStore(settings.CachePath)
		if err != nil {
			return err
		}
		defer store.Close()

		count, err := store.Count(cmd.Context())
		if err != nil {
			return err
		}
		cmd.Printf("Cache: %s\n", store.Path())
		cmd.Printf("Cached embeddings: %d\n", count)
		return nil
	},
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all cached embeddings",
	RunE: func(cmd *cobra.Command, _ []string) error {
		store, err := sqlite.NewCacheStore(settings.CachePath)
		if err != nil {
			return err
		}
		defer store.Close()

		removed, err := store.Clear(cmd.Context())
		if err != nil {
			return err
		}
		cmd.Printf("Removed %d cached embeddings\n", removed)
		return nil
	},
}

func init() {
	cacheCmd.AddCommand(cacheStatsCmd)
	cacheCmd.AddCommand(cacheClearCmd)
	rootCmd.AddCommand(cacheCmd)
}
