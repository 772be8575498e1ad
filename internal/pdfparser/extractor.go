package pdfparser

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Text extraction backends
const (
	BackendNative    = "native"
	BackendPdftotext = "pdftotext"
	BackendAuto      = "auto"
)

// TextExtractor turns PDF bytes into the document's text layer. This
// interface allows for dependency injection and makes the parser testable.
type TextExtractor interface {
	ExtractText(data []byte) (string, error)
}

// NewExtractor returns the extractor for a configured backend. "auto" uses
// pdftotext when it is installed and the native reader otherwise.
func NewExtractor(backend string) (TextExtractor, error) {
	switch strings.ToLower(backend) {
	case "", BackendNative:
		return NewNativeExtractor(), nil
	case BackendPdftotext:
		return NewPdftotextExtractor(), nil
	case BackendAuto:
		if _, err := exec.LookPath("pdftotext"); err == nil {
			return NewPdftotextExtractor(), nil
		}
		return NewNativeExtractor(), nil
	default:
		return nil, fmt.Errorf("unknown PDF text backend: %s", backend)
	}
}

// NativeExtractor reads the text layer in-process with ledongthuc/pdf.
type NativeExtractor struct{}

// NewNativeExtractor creates a NativeExtractor.
func NewNativeExtractor() *NativeExtractor {
	return &NativeExtractor{}
}

// ExtractText returns one line per visual text row, pages in order.
func (e *NativeExtractor) ExtractText(data []byte) (text string, err error) {
	// The reader panics on some malformed content streams.
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("error reading PDF content: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("error opening PDF: %w", err)
	}

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		for _, line := range layoutRows(page.Content().Text) {
			sb.WriteString(line)
			sb.WriteByte('\n')
		}
	}
	return sb.String(), nil
}

// PdftotextExtractor shells out to poppler's pdftotext in layout mode.
type PdftotextExtractor struct {
	Binary string
}

// NewPdftotextExtractor creates a PdftotextExtractor using pdftotext from PATH.
func NewPdftotextExtractor() *PdftotextExtractor {
	return &PdftotextExtractor{Binary: "pdftotext"}
}

// ExtractText writes data to a temporary file and runs pdftotext -layout on it.
func (e *PdftotextExtractor) ExtractText(data []byte) (string, error) {
	in, err := os.CreateTemp("", "statement-*.pdf")
	if err != nil {
		return "", fmt.Errorf("failed to create temporary PDF file: %w", err)
	}
	defer func() { _ = os.Remove(in.Name()) }()

	if _, err := in.Write(data); err != nil {
		_ = in.Close()
		return "", fmt.Errorf("failed to write temporary PDF file: %w", err)
	}
	if err := in.Close(); err != nil {
		return "", fmt.Errorf("failed to close temporary PDF file: %w", err)
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.Command(e.Binary, "-layout", "-enc", "UTF-8", in.Name(), "-") // #nosec G204 -- binary is fixed by configuration
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("error running pdftotext: %w: %s", err, strings.TrimSpace(stderr.String()))
	}
	return stdout.String(), nil
}

// MockExtractor returns fixed text for tests.
type MockExtractor struct {
	MockText string
	MockErr  error
	Calls    int
}

// NewMockExtractor creates a MockExtractor with the given result.
func NewMockExtractor(mockText string, mockErr error) *MockExtractor {
	return &MockExtractor{MockText: mockText, MockErr: mockErr}
}

// ExtractText returns the predefined text or error.
func (e *MockExtractor) ExtractText(data []byte) (string, error) {
	e.Calls++
	if e.MockErr != nil {
		return "", e.MockErr
	}
	return e.MockText, nil
}
