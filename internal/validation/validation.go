// Package validation holds the input checks the CLI runs before handing
// anything to the parsers or the renderer.
package validation

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"acordos/debt-parser/internal/models"
	"acordos/debt-parser/internal/parsererror"
)

// IsValidPath checks if a given path exists and is accessible.
func IsValidPath(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return fmt.Errorf("path does not exist: %s", path)
	}
	if err != nil {
		return fmt.Errorf("error checking path %s: %w", path, err)
	}

	if !filepath.IsAbs(path) {
		return fmt.Errorf("path must be absolute: %s", path)
	}

	if !info.IsDir() && !info.Mode().IsRegular() {
		return fmt.Errorf("path %s is neither a file nor a directory", path)
	}

	return nil
}

// IsValidOutputFormat checks if the given agreement format is supported.
func IsValidOutputFormat(format string) error {
	switch format {
	case "pdf", "json", "xml":
		return nil
	default:
		return fmt.Errorf("unsupported output format: %s. Supported formats are 'pdf', 'json', 'xml'", format)
	}
}

// ValidateUpload checks a raw document before parsing: it must be non-empty,
// within maxBytes (when positive) and of a supported media type.
func ValidateUpload(doc models.RawDocument, maxBytes int64) error {
	if len(doc.Data) == 0 {
		return &parsererror.ValidationError{FilePath: doc.Name, Field: "data", Reason: "document is empty"}
	}
	if maxBytes > 0 && int64(len(doc.Data)) > maxBytes {
		return &parsererror.ValidationError{
			FilePath: doc.Name,
			Field:    "size",
			Reason:   fmt.Sprintf("%d bytes exceeds the %d byte limit", len(doc.Data), maxBytes),
		}
	}
	mt := models.MediaType(strings.ToLower(strings.TrimSpace(strings.SplitN(string(doc.MediaType), ";", 2)[0])))
	if !mt.IsSupported() {
		return &parsererror.UnsupportedMediaTypeError{MediaType: string(doc.MediaType)}
	}
	return nil
}

// IsValidDelimiter checks that a CSV delimiter is a single character that
// cannot be confused with quoting or line structure.
func IsValidDelimiter(delim string) error {
	r := []rune(delim)
	if len(r) != 1 {
		return fmt.Errorf("CSV delimiter must be a single character, got %q", delim)
	}
	switch r[0] {
	case '"', '\r', '\n':
		return fmt.Errorf("invalid CSV delimiter %q", delim)
	}
	return nil
}
