// Package parser defines the document parser contracts and the media-type
// registry that dispatches raw documents to them.
package parser

import (
	"io"

	"acordos/debt-parser/internal/logging"
	"acordos/debt-parser/internal/models"
)

// Parser turns a statement byte stream into a ParsedDocument.
type Parser interface {
	// Parse reads the whole document from r. Implementations return typed
	// errors from the parsererror package (NonDigitalDocumentError,
	// UnextractableDocumentError, InvalidFormatError) for expected failures.
	Parse(r io.Reader) (*models.ParsedDocument, error)
}

// FileParser parses a document from the filesystem.
type FileParser interface {
	ParseFile(path string) (*models.ParsedDocument, error)
}

// Validator checks whether a file looks like something the parser accepts.
type Validator interface {
	ValidateFormat(path string) (bool, error)
}

// LoggerConfigurable is implemented by components whose logger can be swapped.
type LoggerConfigurable interface {
	SetLogger(logger logging.Logger)
}

// FullParser is the complete set of capabilities registered parsers expose.
type FullParser interface {
	Parser
	FileParser
	Validator
	LoggerConfigurable
}
