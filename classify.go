package skim

import (
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	pdfplumber "github.com/pyhub-apps/pdfplumber-golang"
)

// DefaultThreshold is the first-page text length (in runes, after
// trimming) above which a document classifies as digital. The value is
// a heuristic with no derivation beyond field experience; override it
// with WithThreshold if your corpus disagrees.
const DefaultThreshold = 50

// TextProbeClassifier classifies a PDF as digital or scanned by
// inspecting only the first page: substantial machine-readable text
// there is a cheap, reliable proxy for a digitally produced document.
// Classification is a pure function of first-page extractable text
// length; file metadata and later pages are ignored.
type TextProbeClassifier struct {
	threshold int
	log       *slog.Logger
}

// NewClassifier creates a TextProbeClassifier. A threshold of zero or
// less selects DefaultThreshold; a nil logger falls back to
// slog.Default().
func NewClassifier(threshold int, logger *slog.Logger) *TextProbeClassifier {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &TextProbeClassifier{threshold: threshold, log: logger}
}

// Classify inspects the document's first page. Zero pages, or any
// failure opening or reading the document, classifies as scanned: the
// OCR path is slower but works on anything, so failure falls toward the
// universally applicable side. Failures are logged as warnings, never
// raised.
func (c *TextProbeClassifier) Classify(path string) Mode {
	count, err := api.PageCountFile(path)
	if err != nil {
		c.log.Warn("classification probe failed, assuming scanned", "path", path, "error", err)
		return ModeScanned
	}
	if count == 0 {
		return ModeScanned
	}

	doc, err := pdfplumber.Open(path)
	if err != nil {
		c.log.Warn("classification open failed, assuming scanned", "path", path, "error", err)
		return ModeScanned
	}
	defer doc.Close()

	page, err := doc.GetPage(0)
	if err != nil {
		c.log.Warn("classification first-page read failed, assuming scanned", "path", path, "error", err)
		return ModeScanned
	}

	return decideMode(page.ExtractText(), c.threshold)
}

// decideMode applies the threshold rule to first-page text.
func decideMode(text string, threshold int) Mode {
	if utf8.RuneCountInString(strings.TrimSpace(text)) > threshold {
		return ModeDigital
	}
	return ModeScanned
}
