package extract

import (
	"errors"
	"fmt"
)

// ErrUnsupportedType is returned when no extractor accepts a file.
var ErrUnsupportedType = errors.New("unsupported file type")

// Registry holds the available extractors in priority order.
type Registry struct {
	extractors []Extractor
}

// Global registry instance
var globalRegistry = NewRegistry()

// NewRegistry returns a registry checking PDF, then DOCX, then PPTX.
func NewRegistry() *Registry {
	return &Registry{
		extractors: []Extractor{
			NewPDFExtractor(),
			NewDOCXExtractor(),
			NewPPTXExtractor(),
		},
	}
}

// GetGlobalRegistry returns the singleton registry.
func GetGlobalRegistry() *Registry {
	return globalRegistry
}

// FindExtractor returns the first extractor that accepts the file.
func (r *Registry) FindExtractor(contentType, fileName string) (Extractor, error) {
	for _, e := range r.extractors {
		if e.CanExtract(contentType, fileName) {
			return e, nil
		}
	}
	return nil, fmt.Errorf("%w: %q (%s)", ErrUnsupportedType, fileName, contentType)
}

// Accepts reports whether any extractor handles the file.
func (r *Registry) Accepts(contentType, fileName string) bool {
	_, err := r.FindExtractor(contentType, fileName)
	return err == nil
}
