package xmlparser

import (
	"fmt"
	"io"
	"os"

	"acordos/debt-parser/internal/logging"
	"acordos/debt-parser/internal/models"
	"acordos/debt-parser/internal/parser"
	"acordos/debt-parser/internal/store"
)

// Adapter implements parser.FullParser for XML debt statements.
type Adapter struct {
	parser.BaseParser
	extractor *Extractor
}

// NewAdapter creates an XML parser for a profile. It fails when one of the
// profile's XPath overrides does not compile.
func NewAdapter(logger logging.Logger, profile *store.Profile, limits Limits) (*Adapter, error) {
	extractor, err := NewExtractor(profile, limits)
	if err != nil {
		return nil, err
	}
	return &Adapter{
		BaseParser: parser.NewBaseParser(logger),
		extractor:  extractor,
	}, nil
}

// Parse reads an XML document from r and extracts the statement fields.
func (a *Adapter) Parse(r io.Reader) (*models.ParsedDocument, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("error reading XML data: %w", err)
	}
	return a.ParseBytes("", data)
}

// ParseFile parses the XML document at path. Errors carry the path.
func (a *Adapter) ParseFile(path string) (*models.ParsedDocument, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- CLI tool requires user-provided file paths
	if err != nil {
		return nil, fmt.Errorf("error opening input file: %w", err)
	}
	return a.ParseBytes(path, data)
}

// ParseBytes extracts a statement from data. name is only used in errors and
// logs.
func (a *Adapter) ParseBytes(name string, data []byte) (*models.ParsedDocument, error) {
	logger := a.GetLogger().WithField(logging.FieldParser, ParserName)

	doc, err := a.extractor.Extract(name, data, logger)
	if err != nil {
		logger.WithError(err).Info("XML statement rejected", logging.F(logging.FieldFile, name))
		return nil, err
	}

	logger.Info("XML statement parsed",
		logging.F(logging.FieldFile, name),
		logging.F(logging.FieldCount, len(doc.DebtItems)))
	return doc, nil
}

// ValidateFormat checks if a file is well-formed XML within the parser limits.
func (a *Adapter) ValidateFormat(path string) (bool, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- CLI tool requires user-provided file paths
	if err != nil {
		return false, fmt.Errorf("error opening input file: %w", err)
	}
	if _, err := BuildTree(data, a.extractor.limits); err != nil {
		a.GetLogger().WithError(err).Debug("XML validation failed",
			logging.F(logging.FieldFile, path))
		return false, nil
	}
	return true, nil
}

var _ parser.FullParser = (*Adapter)(nil)
