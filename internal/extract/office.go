package extract

import "io"

// Placeholder texts for formats without a real parser.
const (
	DOCXPlaceholderText = "DOCX file uploaded - text extraction would require additional parsing libraries. Content processed for demo."
	PPTXPlaceholderText = "PPTX file uploaded - slide content would be extracted with proper parsing libraries. Demo content processed."
)

// PlaceholderExtractor recognizes a format and returns a fixed description
// instead of reading the file.
type PlaceholderExtractor struct {
	name     string
	mimeType string
	ext      string
	text     string
}

// NewDOCXExtractor handles Word documents.
func NewDOCXExtractor() *PlaceholderExtractor {
	return &PlaceholderExtractor{name: "docx", mimeType: MIMEDOCX, ext: ".docx", text: DOCXPlaceholderText}
}

// NewPPTXExtractor handles PowerPoint presentations.
func NewPPTXExtractor() *PlaceholderExtractor {
	return &PlaceholderExtractor{name: "pptx", mimeType: MIMEPPTX, ext: ".pptx", text: PPTXPlaceholderText}
}

func (p *PlaceholderExtractor) Name() string {
	return p.name
}

func (p *PlaceholderExtractor) CanExtract(contentType, fileName string) bool {
	return matchesType(contentType, fileName, p.mimeType, p.ext)
}

// Extract ignores the reader.
func (p *PlaceholderExtractor) Extract(_ io.Reader) (string, error) {
	return p.text, nil
}
