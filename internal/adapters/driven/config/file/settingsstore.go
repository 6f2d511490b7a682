// Package file provides a TOML-backed settings store.
package file

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/pelletier/go-toml/v2"

	"github.com/inkwell-labs/inkwell-cli/internal/core/domain"
	"github.com/inkwell-labs/inkwell-cli/internal/core/ports/driven"
)

// Ensure SettingsStore implements the interface.
var _ driven.SettingsStore = (*SettingsStore)(nil)

// SettingsStore reads and writes settings as TOML.
// A missing file yields the defaults; zero values in the file fall back
// to the defaults field by field.
type SettingsStore struct {
	mu       sync.Mutex
	filePath string
}

// NewSettingsStore creates a settings store under configDir.
// If configDir is empty, defaults to ~/.inkwell.
func NewSettingsStore(configDir string) (*SettingsStore, error) {
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		configDir = filepath.Join(home, ".inkwell")
	}

	if err := os.MkdirAll(configDir, 0700); err != nil {
		return nil, fmt.Errorf("creating config directory: %w", err)
	}

	return &SettingsStore{filePath: filepath.Join(configDir, "config.toml")}, nil
}

// Load reads the settings file with defaults applied, then validates.
func (s *SettingsStore) Load() (domain.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	settings := domain.DefaultSettings()

	data, err := os.ReadFile(s.filePath)
	if errors.Is(err, fs.ErrNotExist) {
		return settings, nil
	}
	if err != nil {
		return domain.Settings{}, fmt.Errorf("reading %s: %w", s.filePath, err)
	}

	if err := toml.Unmarshal(data, &settings); err != nil {
		return domain.Settings{}, fmt.Errorf("parsing %s: %w", s.filePath, err)
	}

	applyDefaults(&settings)

	if err := settings.Validate(); err != nil {
		return domain.Settings{}, fmt.Errorf("validating %s: %w", s.filePath, err)
	}
	return settings, nil
}

// Save writes the settings file.
func (s *SettingsStore) Save(settings domain.Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := settings.Validate(); err != nil {
		return err
	}

	data, err := toml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("encoding settings: %w", err)
	}

	if err := os.WriteFile(s.filePath, data, 0600); err != nil {
		return fmt.Errorf("writing %s: %w", s.filePath, err)
	}
	return nil
}

// Path returns the backing file path.
func (s *SettingsStore) Path() string {
	return s.filePath
}

// applyDefaults fills zero values left by a partial settings file.
func applyDefaults(settings *domain.Settings) {
	if settings.SimilarityThreshold == 0 {
		settings.SimilarityThreshold = domain.DefaultSimilarityThreshold
	}
	if settings.ConfidenceReviewThreshold == 0 {
		settings.ConfidenceReviewThreshold = domain.DefaultConfidenceReviewThreshold
	}
	if settings.Embedding.Backend == "" {
		settings.Embedding.Backend = domain.BackendOllama
	}
}
