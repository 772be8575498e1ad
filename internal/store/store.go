package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"acordos/debt-parser/internal/logging"
	"acordos/debt-parser/internal/models"

	"gopkg.in/yaml.v3"
)

// ProfileLoader provides the heuristic profile.
type ProfileLoader interface {
	Load() (*Profile, error)
}

// ProfileStore reads and writes a YAML heuristic profile.
type ProfileStore struct {
	File   string
	logger logging.Logger
}

// NewProfileStore creates a store for the given file. An empty file name means
// the built-in profile only.
func NewProfileStore(file string, logger logging.Logger) *ProfileStore {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &ProfileStore{File: file, logger: logger}
}

// FindProfileFile looks for the profile in the usual locations.
func (s *ProfileStore) FindProfileFile(filename string) (string, error) {
	if filepath.IsAbs(filename) {
		if _, err := os.Stat(filename); err == nil {
			return filename, nil
		}
		return "", os.ErrNotExist
	}

	locations := []string{
		filename,
		filepath.Join("config", filename),
	}
	if homeDir, err := os.UserHomeDir(); err == nil {
		locations = append(locations, filepath.Join(homeDir, ".debt-parser", filename))
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location, nil
		}
	}
	return "", os.ErrNotExist
}

// Load returns the built-in profile overlaid with the profile file, if any.
// A missing file is not an error.
func (s *ProfileStore) Load() (*Profile, error) {
	profile := DefaultProfile()
	if s.File == "" {
		return profile, nil
	}

	path, err := s.FindProfileFile(s.File)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.logger.Warn("Profile file not found, using built-in profile",
				logging.F(logging.FieldFile, s.File))
			return profile, nil
		}
		return nil, fmt.Errorf("error resolving profile file: %w", err)
	}

	data, err := os.ReadFile(path) // #nosec G304 -- path comes from configuration
	if err != nil {
		return nil, fmt.Errorf("error reading profile file: %w", err)
	}
	if err := yaml.Unmarshal(data, profile); err != nil {
		return nil, fmt.Errorf("error parsing profile file %s: %w", path, err)
	}
	if profile.CondominiumScanLines <= 0 {
		profile.CondominiumScanLines = DefaultProfile().CondominiumScanLines
	}

	s.logger.Debug("Loaded heuristic profile",
		logging.F(logging.FieldFile, path),
		logging.F(logging.FieldCount, len(profile.CondominiumKeywords)))
	return profile, nil
}

// Save writes profile as YAML to the store's file, creating parent
// directories as needed.
func (s *ProfileStore) Save(profile *Profile) error {
	if s.File == "" {
		return errors.New("no profile file configured")
	}
	if err := os.MkdirAll(filepath.Dir(s.File), models.PermissionDirectory); err != nil {
		return fmt.Errorf("error creating directory: %w", err)
	}

	data, err := yaml.Marshal(profile)
	if err != nil {
		return fmt.Errorf("error marshaling profile: %w", err)
	}
	if err := os.WriteFile(s.File, data, models.PermissionReportFile); err != nil {
		return fmt.Errorf("error writing profile: %w", err)
	}

	s.logger.Info("Saved heuristic profile", logging.F(logging.FieldFile, s.File))
	return nil
}
