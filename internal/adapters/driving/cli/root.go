// Package cli provides the cobra command tree for the inkwell binary.
package cli

import (
	"github.com/spf13/cobra"

	configfile "github.com/inkwell-labs/inkwell-cli/internal/adapters/driven/config/file"
	"github.com/inkwell-labs/inkwell-cli/internal/core/domain"
	"github.com/inkwell-labs/inkwell-cli/internal/core/ports/driven"
	"github.com/inkwell-labs/inkwell-cli/internal/logger"
)

var (
	version = "dev"

	verboseFlag   bool
	configDirFlag string

	settings      domain.Settings
	settingsStore driven.SettingsStore
)

var rootCmd = &cobra.Command{
	Use:   "inkwell",
	Short: "Turn handwritten journal pages into de-duplicated tasks",
	Long: `inkwell ingests tasks extracted from handwritten journal pages,
walks you through the low-confidence items one at a time, checks each
item against your existing task list using sentence embeddings, and
creates only the genuinely new ones.`,
	SilenceUsage:  true,
	SilenceErrors: false,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		logger.SetVerbose(verboseFlag)

		store, err := configfile.NewSettingsStore(configDirFlag)
		if err != nil {
			return err
		}
		settingsStore = store

		settings, err = store.Load()
		if err != nil {
			return err
		}
		logger.Debug("Settings loaded from %s", store.Path())
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false,
		"print pipeline details to stderr")
	rootCmd.PersistentFlags().StringVar(&configDirFlag, "config", "",
		"config directory (default ~/.inkwell)")
}

// Execute runs the root command.
func Execute(v string) error {
	version = v
	return rootCmd.Execute()
}
