package pdfparser

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"acordos/debt-parser/internal/logging"
	"acordos/debt-parser/internal/models"
	"acordos/debt-parser/internal/parser"
	"acordos/debt-parser/internal/parsererror"
	"acordos/debt-parser/internal/store"
)

// Adapter implements parser.FullParser for PDF debt statements.
type Adapter struct {
	parser.BaseParser
	extractor  TextExtractor
	inspector  Inspector
	heuristics *Heuristics
	opts       Options
}

// NewAdapter creates a PDF parser with dependency injection. Nil collaborators
// fall back to the native extractor, the pdfcpu inspector and the built-in
// profile.
func NewAdapter(logger logging.Logger, extractor TextExtractor, inspector Inspector, profile *store.Profile, opts Options) *Adapter {
	if extractor == nil {
		extractor = NewNativeExtractor()
	}
	if inspector == nil {
		inspector = NewPDFInspector()
	}
	return &Adapter{
		BaseParser: parser.NewBaseParser(logger),
		extractor:  extractor,
		inspector:  inspector,
		heuristics: NewHeuristics(profile),
		opts:       opts.withDefaults(),
	}
}

// Parse reads a PDF document from r and extracts the statement fields.
func (a *Adapter) Parse(r io.Reader) (*models.ParsedDocument, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("error reading PDF data: %w", err)
	}
	return a.ParseBytes("", data)
}

// ParseFile parses the PDF at path. Errors carry the path.
func (a *Adapter) ParseFile(path string) (*models.ParsedDocument, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- CLI tool requires user-provided file paths
	if err != nil {
		return nil, fmt.Errorf("error opening input file: %w", err)
	}
	return a.ParseBytes(path, data)
}

// ParseBytes validates data with the inspector, extracts its text layer and
// runs the statement heuristics over it. name is only used in errors and logs.
func (a *Adapter) ParseBytes(name string, data []byte) (*models.ParsedDocument, error) {
	logger := a.GetLogger().WithField(logging.FieldParser, ParserName)

	pages, err := a.inspector.Inspect(data)
	if err != nil {
		snippet := data
		if len(snippet) > 16 {
			snippet = snippet[:16]
		}
		return nil, &parsererror.InvalidFormatError{
			FilePath:             name,
			ExpectedFormat:       ParserName,
			ActualContentSnippet: string(bytes.ToValidUTF8(snippet, []byte("?"))),
			Msg:                  "not a readable PDF document",
			Err:                  err,
		}
	}
	logger.Debug("PDF inspected",
		logging.F(logging.FieldFile, name),
		logging.F(logging.FieldPageCount, pages))

	text, err := a.extractor.ExtractText(data)
	if err != nil {
		return nil, &parsererror.ParseError{
			Parser: ParserName,
			Field:  "text layer",
			Value:  name,
			Err:    err,
		}
	}

	doc, err := parseText(text, name, a.heuristics, a.opts, logger)
	if err != nil {
		logger.WithError(err).Info("PDF statement rejected", logging.F(logging.FieldFile, name))
		return nil, err
	}
	doc.PageCount = pages

	logger.Info("PDF statement parsed",
		logging.F(logging.FieldFile, name),
		logging.F(logging.FieldCount, len(doc.DebtItems)))
	return doc, nil
}

// ParseText runs the heuristics over an already extracted text layer with
// this adapter's profile and bounds.
func (a *Adapter) ParseText(text string) (*models.ParsedDocument, error) {
	return parseText(text, "", a.heuristics, a.opts, a.GetLogger())
}

// ValidateFormat checks if a file is a readable PDF.
func (a *Adapter) ValidateFormat(path string) (bool, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- CLI tool requires user-provided file paths
	if err != nil {
		return false, fmt.Errorf("error opening input file: %w", err)
	}
	if _, err := a.inspector.Inspect(data); err != nil {
		a.GetLogger().WithError(err).Debug("PDF validation failed",
			logging.F(logging.FieldFile, path))
		return false, nil
	}
	return true, nil
}

var _ parser.FullParser = (*Adapter)(nil)
