package parsererror

import (
	"errors"
	"fmt"
)

// Sentinels for errors.Is checks on the terminal extraction failures.
var (
	ErrNonDigital           = errors.New("document has no usable text layer")
	ErrUnextractable        = errors.New("could not identify expected fields")
	ErrUnsupportedMediaType = errors.New("unsupported media type")
)

// ParseError represents an error during parsing
type ParseError struct {
	Parser string
	Field  string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: failed to parse %s='%s': %v",
		e.Parser, e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ValidationError represents a validation failure of a file or of a named
// input field.
type ValidationError struct {
	FilePath string
	Field    string
	Reason   string
}

func (e *ValidationError) Error() string {
	switch {
	case e.FilePath != "" && e.Field != "":
		return fmt.Sprintf("validation failed for %s (%s): %s", e.FilePath, e.Field, e.Reason)
	case e.Field != "":
		return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Reason)
	default:
		return fmt.Sprintf("validation failed for %s: %s", e.FilePath, e.Reason)
	}
}

// InvalidFormatError represents an error where the input does not conform
// to the expected format for a specific parser.
type InvalidFormatError struct {
	FilePath             string
	ExpectedFormat       string
	ActualContentSnippet string // Optional: a snippet of the actual content for debugging
	Msg                  string
	Err                  error
}

func (e *InvalidFormatError) Error() string {
	if e.ActualContentSnippet != "" {
		return fmt.Sprintf("invalid format in file '%s': %s. Expected: %s. Content snippet: '%s'",
			e.FilePath, e.Msg, e.ExpectedFormat, e.ActualContentSnippet)
	}
	return fmt.Sprintf("invalid format in file '%s': %s. Expected: %s",
		e.FilePath, e.Msg, e.ExpectedFormat)
}

func (e *InvalidFormatError) Unwrap() error {
	return e.Err
}

// NonDigitalDocumentError is returned when a PDF text layer is shorter than
// the minimum threshold, which usually means the document is a scanned image.
type NonDigitalDocumentError struct {
	FilePath   string
	TextLength int
	Threshold  int
}

func (e *NonDigitalDocumentError) Error() string {
	return fmt.Sprintf("document '%s' has %d characters of text (minimum %d): the document may be a scanned image, OCR is not supported",
		e.FilePath, e.TextLength, e.Threshold)
}

func (e *NonDigitalDocumentError) Is(target error) bool {
	return target == ErrNonDigital
}

// UnextractableDocumentError is returned when the text layer or tree was read
// but neither a debtor name nor any debt item could be located.
type UnextractableDocumentError struct {
	FilePath string
	Parser   string
}

func (e *UnextractableDocumentError) Error() string {
	return fmt.Sprintf("%s: could not identify expected fields in '%s'", e.Parser, e.FilePath)
}

func (e *UnextractableDocumentError) Is(target error) bool {
	return target == ErrUnextractable
}

// UnsupportedMediaTypeError is returned by the registry for inputs that are
// neither PDF nor XML.
type UnsupportedMediaTypeError struct {
	MediaType string
}

func (e *UnsupportedMediaTypeError) Error() string {
	return fmt.Sprintf("unsupported media type '%s': expected application/pdf, text/xml or application/xml", e.MediaType)
}

func (e *UnsupportedMediaTypeError) Is(target error) bool {
	return target == ErrUnsupportedMediaType
}
