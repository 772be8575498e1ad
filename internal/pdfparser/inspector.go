package pdfparser

import (
	"bytes"
	"errors"
	"fmt"
	"sync"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// Inspector checks that bytes form a readable PDF and reports its page count.
type Inspector interface {
	Inspect(data []byte) (int, error)
}

var disableConfigDir sync.Once

// PDFInspector validates PDF structure with pdfcpu in relaxed mode.
type PDFInspector struct {
	conf *model.Configuration
}

// NewPDFInspector creates a PDFInspector. pdfcpu's on-disk configuration
// directory is disabled; the default configuration is used as is.
func NewPDFInspector() *PDFInspector {
	disableConfigDir.Do(api.DisableConfigDir)

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return &PDFInspector{conf: conf}
}

// Inspect returns the number of pages, or an error when pdfcpu cannot read
// the document.
func (i *PDFInspector) Inspect(data []byte) (int, error) {
	if !bytes.HasPrefix(bytes.TrimLeft(data, "\x00\t\r\n "), []byte("%PDF-")) {
		return 0, errors.New("missing %PDF- header")
	}
	pages, err := api.PageCount(bytes.NewReader(data), i.conf)
	if err != nil {
		return 0, fmt.Errorf("pdfcpu could not read document: %w", err)
	}
	return pages, nil
}

// MockInspector returns fixed results for tests.
type MockInspector struct {
	Pages int
	Err   error
}

// Inspect returns the configured page count or error.
func (m *MockInspector) Inspect(data []byte) (int, error) {
	return m.Pages, m.Err
}
