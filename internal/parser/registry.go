package parser

import (
	"bytes"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"acordos/debt-parser/internal/logging"
	"acordos/debt-parser/internal/models"
	"acordos/debt-parser/internal/parsererror"
)

// Registry maps media types to parsers. It is safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	parsers map[models.MediaType]Parser
	logger  logging.Logger
}

// NewRegistry creates an empty registry.
func NewRegistry(logger logging.Logger) *Registry {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Registry{
		parsers: make(map[models.MediaType]Parser),
		logger:  logger,
	}
}

// Register binds p to each of the given media types, replacing any previous
// binding.
func (r *Registry) Register(p Parser, mediaTypes ...models.MediaType) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, mt := range mediaTypes {
		r.parsers[normalizeMediaType(mt)] = p
	}
}

// Get returns the parser bound to mediaType.
func (r *Registry) Get(mediaType models.MediaType) (Parser, error) {
	r.mu.RLock()
	p, ok := r.parsers[normalizeMediaType(mediaType)]
	r.mu.RUnlock()
	if !ok {
		return nil, &parsererror.UnsupportedMediaTypeError{MediaType: string(mediaType)}
	}
	return p, nil
}

// MediaTypes lists the registered media types in sorted order.
func (r *Registry) MediaTypes() []models.MediaType {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.MediaType, 0, len(r.parsers))
	for mt := range r.parsers {
		out = append(out, mt)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// ParseDocument dispatches doc to the parser registered for its media type.
func (r *Registry) ParseDocument(doc models.RawDocument) (*models.ParsedDocument, error) {
	p, err := r.Get(doc.MediaType)
	if err != nil {
		r.logger.Warn("Unsupported media type",
			logging.F(logging.FieldFile, doc.Name),
			logging.F(logging.FieldMediaType, string(doc.MediaType)))
		return nil, err
	}

	r.logger.Debug("Parsing document",
		logging.F(logging.FieldFile, doc.Name),
		logging.F(logging.FieldMediaType, string(doc.MediaType)),
		logging.F(logging.FieldCount, len(doc.Data)))

	parsed, err := p.Parse(bytes.NewReader(doc.Data))
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", displayName(doc.Name), err)
	}
	return parsed, nil
}

// DetectMediaType maps a file extension to a supported media type.
func DetectMediaType(path string) (models.MediaType, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return models.MediaTypePDF, nil
	case ".xml":
		return models.MediaTypeXML, nil
	default:
		ext := filepath.Ext(path)
		if ext == "" {
			ext = "(none)"
		}
		return "", &parsererror.UnsupportedMediaTypeError{MediaType: ext}
	}
}

// normalizeMediaType drops parameters such as "; charset=utf-8".
func normalizeMediaType(mt models.MediaType) models.MediaType {
	s := string(mt)
	if i := strings.IndexByte(s, ';'); i >= 0 {
		s = s[:i]
	}
	return models.MediaType(strings.ToLower(strings.TrimSpace(s)))
}

func displayName(name string) string {
	if name == "" {
		return "document"
	}
	return name
}
