// Package report renders settlement agreements: the printable agreement draft
// (PDF) and machine-readable dumps of the same bundle (JSON, XML).
package report

import (
	"encoding/json"
	"encoding/xml"
	"fmt"
	"strings"
	"time"

	"acordos/debt-parser/internal/logging"
	"acordos/debt-parser/internal/models"
)

// Supported output formats
const (
	FormatPDF  = "pdf"
	FormatJSON = "json"
	FormatXML  = "xml"
)

// DefaultCity is printed on the place-and-date line when none is configured.
const DefaultCity = "São Paulo"

// Options tunes the rendered agreement.
type Options struct {
	// City is printed above the signature lines.
	City string
	// Now supplies the generation timestamp. Defaults to time.Now.
	Now func() time.Time
}

// Generator renders AgreementBundles.
type Generator struct {
	logger logging.Logger
	opts   Options
}

// NewGenerator creates a Generator. A nil logger falls back to the default
// logrus adapter.
func NewGenerator(logger logging.Logger, opts Options) *Generator {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	if strings.TrimSpace(opts.City) == "" {
		opts.City = DefaultCity
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Generator{
		logger: logger.WithField("component", "ReportGenerator"),
		opts:   opts,
	}
}

// GenerateReport renders the bundle in the requested format.
func (g *Generator) GenerateReport(bundle *models.AgreementBundle, format string) ([]byte, error) {
	if bundle == nil {
		return nil, fmt.Errorf("no agreement to render")
	}

	switch strings.ToLower(format) {
	case FormatPDF:
		out, err := g.renderPDF(bundle)
		if err != nil {
			g.logger.WithError(err).Error("Failed to render agreement PDF",
				logging.F(logging.FieldSimulation, bundle.Simulation.ID))
			return nil, fmt.Errorf("failed to render PDF agreement: %w", err)
		}
		g.logger.Info("Agreement rendered",
			logging.F(logging.FieldSimulation, bundle.Simulation.ID),
			logging.F(logging.FieldInstallment, len(bundle.Result.Installments)))
		return out, nil
	case FormatJSON:
		out, err := json.MarshalIndent(bundle, "", "  ")
		if err != nil {
			g.logger.WithError(err).Error("Failed to marshal agreement to JSON")
			return nil, fmt.Errorf("failed to marshal JSON report: %w", err)
		}
		return out, nil
	case FormatXML:
		out, err := xml.MarshalIndent(bundle, "", "  ")
		if err != nil {
			g.logger.WithError(err).Error("Failed to marshal agreement to XML")
			return nil, fmt.Errorf("failed to marshal XML report: %w", err)
		}
		return append([]byte(xml.Header), out...), nil
	default:
		return nil, fmt.Errorf("unsupported report format: %s", format)
	}
}
