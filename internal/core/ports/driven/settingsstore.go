package driven

import "github.com/inkwell-labs/inkwell-cli/internal/core/domain"

// SettingsStore loads and persists the configuration surface.
type SettingsStore interface {
	// Load reads the stored settings with defaults applied for
	// missing values.
	Load() (domain.Settings, error)

	// Save persists the settings.
	Save(settings domain.Settings) error

	// Path returns the backing file path, for display.
	Path() string
}
