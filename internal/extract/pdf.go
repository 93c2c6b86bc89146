package extract

import (
	"bytes"
	"fmt"
	"io"
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	// MaxContentChars caps the text returned for a PDF.
	MaxContentChars = 10000

	// PDFFallbackText is returned when no readable run is found.
	PDFFallbackText = "PDF content detected but text extraction limited in this demo"
)

var utf8BOM = []byte("\xEF\xBB\xBF")

// textRunRegex matches runs of 10+ ASCII letters or whitespace, Unicode space separators included.
var textRunRegex = regexp.MustCompile(`[a-zA-Z\s\v\p{Zs}\x{2028}\x{2029}\x{FEFF}]{10,}`)

// PDFExtractor scrapes readable text runs out of raw PDF bytes.
// It does not parse the PDF object structure.
type PDFExtractor struct{}

// NewPDFExtractor creates a PDF extractor.
func NewPDFExtractor() *PDFExtractor {
	return &PDFExtractor{}
}

func (p *PDFExtractor) Name() string {
	return "pdf"
}

func (p *PDFExtractor) CanExtract(contentType, fileName string) bool {
	return matchesType(contentType, fileName, MIMEPDF, ".pdf")
}

func (p *PDFExtractor) Extract(r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("reading pdf: %w", err)
	}
	return ScrapeText(data), nil
}

// ScrapeText joins every readable run with single spaces and truncates the
// result to MaxContentChars characters.
func ScrapeText(data []byte) string {
	data = bytes.TrimPrefix(data, utf8BOM)
	// Invalid UTF-8 decodes to U+FFFD, which never matches a run.
	text := strings.ToValidUTF8(string(data), "�")

	matches := textRunRegex.FindAllString(text, -1)
	if len(matches) == 0 {
		return PDFFallbackText
	}

	return truncateChars(strings.Join(matches, " "), MaxContentChars)
}

func truncateChars(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	n := 0
	for i := range s {
		if n == limit {
			return s[:i]
		}
		n++
	}
	return s
}
