// Package scanner finds statement files on disk.
package scanner

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"acordos/debt-parser/internal/fileutils"
	"acordos/debt-parser/internal/logging"
)

// DefaultExtensions are the statement formats the parsers accept.
var DefaultExtensions = []string{".pdf", ".xml"}

// DocumentScanner lists statement files below files or directories.
type DocumentScanner struct {
	logger     logging.Logger
	extensions []string
}

// NewDocumentScanner creates a scanner for the given extensions, or
// DefaultExtensions when none are given.
func NewDocumentScanner(logger logging.Logger, extensions ...string) *DocumentScanner {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	if len(extensions) == 0 {
		extensions = DefaultExtensions
	}
	return &DocumentScanner{
		logger:     logger.WithField("component", "DocumentScanner"),
		extensions: extensions,
	}
}

// Scan recursively lists matching files below dir, sorted. Unreadable
// subdirectories are logged and skipped.
func (s *DocumentScanner) Scan(dir string) ([]string, error) {
	files, err := fileutils.ListFilesWithExtension(dir, func(path string, err error) {
		s.logger.WithError(err).Warn("Error walking path", logging.F("path", path))
	}, s.extensions...)
	if err != nil {
		s.logger.WithError(err).Error("Failed to scan directory", logging.F("path", dir))
		return nil, fmt.Errorf("failed to scan %s: %w", dir, err)
	}
	s.logger.Debug("Scanned directory", logging.F("path", dir), logging.F(logging.FieldCount, len(files)))
	return files, nil
}

// ScanPaths expands each path: directories are scanned recursively, files are
// kept when their extension matches. The result is sorted and deduplicated.
func (s *DocumentScanner) ScanPaths(paths []string) ([]string, error) {
	seen := make(map[string]bool)
	var out []string

	for _, p := range paths {
		absPath, err := filepath.Abs(p)
		if err != nil {
			return nil, fmt.Errorf("failed to get absolute path for %s: %w", p, err)
		}
		info, err := os.Stat(absPath)
		if err != nil {
			s.logger.WithError(err).Error("Failed to stat path", logging.F("path", absPath))
			return nil, fmt.Errorf("failed to stat path %s: %w", absPath, err)
		}

		var found []string
		if info.IsDir() {
			if found, err = s.Scan(absPath); err != nil {
				return nil, err
			}
		} else if s.matches(absPath) {
			found = []string{absPath}
		} else {
			s.logger.Debug("Skipping file with unsupported extension", logging.F(logging.FieldFile, absPath))
		}

		for _, f := range found {
			if !seen[f] {
				seen[f] = true
				out = append(out, f)
			}
		}
	}

	sort.Strings(out)
	return out, nil
}

func (s *DocumentScanner) matches(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range s.extensions {
		if strings.ToLower(e) == ext {
			return true
		}
	}
	return false
}
