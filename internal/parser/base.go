package parser

import (
	"fmt"
	"os"

	"acordos/debt-parser/internal/logging"
	"acordos/debt-parser/internal/models"
)

// BaseParser provides common functionality for all parser implementations.
// Parsers embed it to inherit logger handling and file opening:
//
//	type MyParser struct {
//		BaseParser
//		// parser-specific fields
//	}
type BaseParser struct {
	logger logging.Logger
}

// NewBaseParser creates a new BaseParser instance with the provided logger.
// If logger is nil, a default logger will be used.
func NewBaseParser(logger logging.Logger) BaseParser {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}

	return BaseParser{
		logger: logger,
	}
}

// SetLogger implements the LoggerConfigurable interface.
func (b *BaseParser) SetLogger(logger logging.Logger) {
	if logger != nil {
		b.logger = logger
	}
}

// GetLogger returns the current logger instance.
func (b *BaseParser) GetLogger() logging.Logger {
	return b.logger
}

// ParseFileWith opens path and hands it to p, closing the file afterwards.
func (b *BaseParser) ParseFileWith(p Parser, path string) (*models.ParsedDocument, error) {
	file, err := os.Open(path) // #nosec G304 -- CLI tool requires user-provided file paths
	if err != nil {
		return nil, fmt.Errorf("error opening input file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			b.logger.WithError(err).Warn("Failed to close input file",
				logging.F(logging.FieldFile, path))
		}
	}()

	return p.Parse(file)
}
