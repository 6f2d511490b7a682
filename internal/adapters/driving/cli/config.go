package cli

import (
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or initialise configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cmd.Printf("Config file: %s\n", settingsStore.Path())
		cmd.Printf("Similarity threshold: %.2f\n", settings.SimilarityThreshold)
		cmd.Printf("Confidence review threshold: %.2f\n", settings.ConfidenceReviewThreshold)
		cmd.Printf("Embedding backend: %s\n", settings.Embedding.Backend)
		if settings.Embedding.Model != "" {
			cmd.Printf("Embedding model: %s\n", settings.Embedding.Model)
		}
		if settings.Todoist.Token == "" {
			cmd.Println("Todoist token: (not set)")
		} else {
			cmd.Println("Todoist token: (set)")
		}
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file with the current settings",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := settingsStore.Save(settings); err != nil {
			return err
		}
		cmd.Printf("Wrote %s\n", settingsStore.Path())
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}
