// Package extract turns uploaded documents into plain text.
package extract

import (
	"io"
	"mime"
	"path/filepath"
	"strings"
)

// MIME types accepted by the service.
const (
	MIMEPDF  = "application/pdf"
	MIMEDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	MIMEPPTX = "application/vnd.openxmlformats-officedocument.presentationml.presentation"
)

var typesByExt = map[string]string{
	".pdf":  MIMEPDF,
	".docx": MIMEDOCX,
	".pptx": MIMEPPTX,
}

// TypeByExtension returns the MIME type for an accepted file name, or "".
func TypeByExtension(fileName string) string {
	return typesByExt[strings.ToLower(filepath.Ext(fileName))]
}

// Extractor defines the interface for document text extractors.
type Extractor interface {
	// Name returns the unique name of the extractor.
	Name() string
	// CanExtract reports whether the declared type or the file name matches this format.
	CanExtract(contentType, fileName string) bool
	// Extract returns the best-effort text of the document. The result is never empty.
	Extract(r io.Reader) (string, error)
}

// matchesType checks the declared content type first and falls back to the file suffix.
func matchesType(contentType, fileName, wantType, wantExt string) bool {
	if mediaType(contentType) == wantType {
		return true
	}
	return strings.HasSuffix(strings.ToLower(fileName), wantExt)
}

func mediaType(contentType string) string {
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(contentType))
	}
	return mt
}
