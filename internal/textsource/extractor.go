// Package textsource turns statement files into the plain text consumed by
// the statement parser.
package textsource

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Extractor defines the interface for extracting text from statement files.
// Production code uses FileExtractor; tests inject a MockExtractor.
type Extractor interface {
	ExtractText(path string) (string, error)
}

// FileExtractor reads plain-text statements directly and hands ".pdf" files
// to the PDF extractor.
type FileExtractor struct {
	PDF Extractor
}

// NewFileExtractor returns a FileExtractor backed by the ledongthuc/pdf reader.
func NewFileExtractor() *FileExtractor {
	return &FileExtractor{PDF: NewPDFExtractor()}
}

// ExtractText implements Extractor.
func (e *FileExtractor) ExtractText(path string) (string, error) {
	if IsPDF(path) {
		return e.PDF.ExtractText(path)
	}
	data, err := os.ReadFile(path) // #nosec G304 -- statement paths are operator-supplied
	if err != nil {
		return "", fmt.Errorf("failed to read statement text: %w", err)
	}
	return normalizeNewlines(string(data)), nil
}

// IsPDF reports whether path names a PDF file.
func IsPDF(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".pdf")
}

func normalizeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

// MockExtractor implements Extractor for testing purposes.
type MockExtractor struct {
	Texts   map[string]string
	MockErr error
}

// NewMockExtractor creates a MockExtractor keyed by file path.
func NewMockExtractor(texts map[string]string, mockErr error) *MockExtractor {
	return &MockExtractor{Texts: texts, MockErr: mockErr}
}

// ExtractText returns the predefined text for path, or the mock error.
func (e *MockExtractor) ExtractText(path string) (string, error) {
	if e.MockErr != nil {
		return "", e.MockErr
	}
	text, ok := e.Texts[path]
	if !ok {
		return "", fmt.Errorf("no mock text for %s", path)
	}
	return text, nil
}
