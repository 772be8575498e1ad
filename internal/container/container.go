// Package container provides dependency injection for the debt-parser
// application. It centralizes the creation and wiring of all application
// dependencies, making them explicit and testable.
package container

import (
	"fmt"
	"sort"

	"acordos/debt-parser/internal/batch"
	"acordos/debt-parser/internal/common"
	"acordos/debt-parser/internal/config"
	"acordos/debt-parser/internal/logging"
	"acordos/debt-parser/internal/models"
	"acordos/debt-parser/internal/parser"
	"acordos/debt-parser/internal/pdfparser"
	"acordos/debt-parser/internal/report"
	"acordos/debt-parser/internal/scanner"
	"acordos/debt-parser/internal/store"
	"acordos/debt-parser/internal/xmlparser"
	"acordos/debt-parser/internal/xmlutils"
)

// ParserType defines the types of parsers available.
type ParserType string

const (
	PDF ParserType = "pdf"
	XML ParserType = "xml"
)

// Container holds all application dependencies and provides methods to access them.
// It is immutable after creation: fields are private and only reachable
// through getters.
type Container struct {
	logger     logging.Logger
	config     *config.Config
	store      *store.ProfileStore
	profile    *store.Profile
	parsers    map[ParserType]parser.FullParser
	registry   *parser.Registry
	generator  *report.Generator
	scanner    *scanner.DocumentScanner
	processor  *batch.Processor
	aggregator *batch.Aggregator
}

type options struct {
	logger    logging.Logger
	extractor pdfparser.TextExtractor
	inspector pdfparser.Inspector
	profile   store.ProfileLoader
}

// Option overrides a dependency, mainly for tests.
type Option func(*options)

// WithLogger replaces the logger built from the configuration.
func WithLogger(logger logging.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithPDFExtractor replaces the configured text extraction backend.
func WithPDFExtractor(e pdfparser.TextExtractor) Option {
	return func(o *options) { o.extractor = e }
}

// WithPDFInspector replaces the pdfcpu-backed inspector.
func WithPDFInspector(i pdfparser.Inspector) Option {
	return func(o *options) { o.inspector = i }
}

// WithProfileLoader replaces the file-backed profile store.
func WithProfileLoader(l store.ProfileLoader) Option {
	return func(o *options) { o.profile = l }
}

// NewContainer creates and wires all application dependencies.
func NewContainer(cfg *config.Config, opts ...Option) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	// Logger first as it's needed by other components
	logger := o.logger
	if logger == nil {
		base := config.ConfigureLoggingFromConfig(cfg)
		xmlutils.SetLogger(base)
		logger = logging.NewLogrusAdapterFromLogger(base)
	}

	common.SetDelimiter(cfg.Delimiter())
	common.SetLogger(logger)

	profileStore := store.NewProfileStore(cfg.Profile.File, logger)
	loader := o.profile
	if loader == nil {
		loader = profileStore
	}
	profile, err := loader.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load heuristic profile: %w", err)
	}

	extractor := o.extractor
	if extractor == nil {
		if extractor, err = pdfparser.NewExtractor(cfg.Parsers.PDF.Backend); err != nil {
			return nil, err
		}
	}

	parsers := make(map[ParserType]parser.FullParser)
	parsers[PDF] = pdfparser.NewAdapter(logger, extractor, o.inspector, profile, pdfparser.Options{
		MinTextChars: cfg.Extraction.MinTextChars,
		MaxTextBytes: cfg.Extraction.MaxTextBytes,
	})
	xmlParser, err := xmlparser.NewAdapter(logger, profile, xmlparser.Limits{
		MaxDepth: cfg.Parsers.XML.MaxDepth,
		MaxNodes: cfg.Parsers.XML.MaxNodes,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create XML parser: %w", err)
	}
	parsers[XML] = xmlParser

	registry := parser.NewRegistry(logger)
	registry.Register(parsers[PDF], models.MediaTypePDF)
	registry.Register(parsers[XML], models.MediaTypeXML, models.MediaTypeTextXML)

	c := &Container{
		logger:    logger,
		config:    cfg,
		store:     profileStore,
		profile:   profile,
		parsers:   parsers,
		registry:  registry,
		generator: report.NewGenerator(logger, report.Options{City: cfg.Render.City}),
		scanner:   scanner.NewDocumentScanner(logger),
		processor: batch.NewProcessor(registry, logger, batch.Options{
			Workers:      cfg.Batch.Workers,
			MaxFileBytes: cfg.Extraction.MaxFileBytes,
		}),
		aggregator: batch.NewAggregator(logger),
	}

	logger.Debug("Container initialized",
		logging.F("parsers_count", len(parsers)),
		logging.F("pdf_backend", cfg.Parsers.PDF.Backend))
	return c, nil
}

// GetParser returns a parser for the given type.
func (c *Container) GetParser(pt ParserType) (parser.FullParser, error) {
	p, ok := c.parsers[pt]
	if !ok {
		return nil, fmt.Errorf("unknown parser type: %s", pt)
	}
	return p, nil
}

// GetParsers returns a copy of the parser map.
func (c *Container) GetParsers() map[ParserType]parser.FullParser {
	result := make(map[ParserType]parser.FullParser, len(c.parsers))
	for k, v := range c.parsers {
		result[k] = v
	}
	return result
}

// ParserTypes lists the registered parser types, sorted.
func (c *Container) ParserTypes() []ParserType {
	types := make([]ParserType, 0, len(c.parsers))
	for k := range c.parsers {
		types = append(types, k)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}

// GetRegistry returns the media-type dispatcher.
func (c *Container) GetRegistry() *parser.Registry {
	return c.registry
}

// GetLogger returns the container's logger instance.
func (c *Container) GetLogger() logging.Logger {
	return c.logger
}

// GetConfig returns the container's configuration instance.
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetStore returns the profile store.
func (c *Container) GetStore() *store.ProfileStore {
	return c.store
}

// GetProfile returns the heuristic profile the parsers were built with.
func (c *Container) GetProfile() *store.Profile {
	return c.profile
}

// GetGenerator returns the agreement renderer.
func (c *Container) GetGenerator() *report.Generator {
	return c.generator
}

// GetScanner returns the statement file scanner.
func (c *Container) GetScanner() *scanner.DocumentScanner {
	return c.scanner
}

// GetProcessor returns the batch processor.
func (c *Container) GetProcessor() *batch.Processor {
	return c.processor
}

// GetAggregator returns the per-debtor aggregator.
func (c *Container) GetAggregator() *batch.Aggregator {
	return c.aggregator
}

// Close performs cleanup of container resources.
func (c *Container) Close() error {
	c.logger.Debug("Container closed")
	return nil
}
