// Package textproc pulls common document fields out of extracted text
// with regular expressions.
//
// This is a best-effort layer for both digital and OCR output: each
// field has a list of patterns tried in order, and callers can supply
// their own pattern when the built-ins miss. Input is NFKC-normalized
// first so ligatures and width variants produced by OCR still match.
package textproc

import (
	"log/slog"
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var (
	datePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)Date\s*[:]?\s*(\d{1,2}[/-]\d{1,2}[/-]\d{2,4})`),
		regexp.MustCompile(`(\d{1,2}[/-]\d{1,2}[/-]\d{2,4})`),
		regexp.MustCompile(`(?i)Date\s*[:]?\s*(\d{1,2}\s+(?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]*\s+\d{4})`),
	}

	invoicePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)Invoice\s*No\.?\s*[:]?\s*([A-Z0-9-]+)`),
		regexp.MustCompile(`(?i)INV[-]?(\d+)`),
		regexp.MustCompile(`(?i)Invoice[\s\S]{0,50}?([A-Z]{2,4}[-]?\d{4,8})`),
	}

	vendorPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)Vendor\s*[:]?\s*([^\n]{5,50})`),
		regexp.MustCompile(`(?i)Supplier\s*[:]?\s*([^\n]{5,50})`),
		regexp.MustCompile(`(?i)Sold\s+To\s*[:]?\s*([^\n]{5,50})`),
	}

	totalPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)Grand\s+Total[\s\S]{0,30}?([$€£]?\s?\d{1,3}(?:,\d{3})*\.?\d{0,2})`),
		regexp.MustCompile(`(?i)Total[\s\S]{0,30}?([$€£]?\s?\d{1,3}(?:,\d{3})*\.?\d{0,2})`),
	}
)

// Processor extracts common fields from document text.
type Processor struct {
	log *slog.Logger
}

// New creates a Processor. A nil logger falls back to slog.Default().
func New(logger *slog.Logger) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{log: logger}
}

// Date extracts a document date using common date patterns.
func (p *Processor) Date(text string) (string, bool) {
	return p.firstMatch("date", text, datePatterns)
}

// InvoiceNumber extracts an invoice number using common patterns.
func (p *Processor) InvoiceNumber(text string) (string, bool) {
	return p.firstMatch("invoice number", text, invoicePatterns)
}

// VendorName extracts a vendor or supplier name.
func (p *Processor) VendorName(text string) (string, bool) {
	return p.firstMatch("vendor name", text, vendorPatterns)
}

// TotalAmount extracts a total amount, preferring a grand total when
// both appear.
func (p *Processor) TotalAmount(text string) (string, bool) {
	return p.firstMatch("total amount", text, totalPatterns)
}

// WithPattern extracts a value using a caller-supplied pattern. The
// first capture group is returned when the pattern defines one,
// otherwise the whole match. An invalid pattern reports not-found.
func (p *Processor) WithPattern(text, pattern string) (string, bool) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		p.log.Warn("invalid custom pattern", "pattern", pattern, "error", err)
		return "", false
	}
	return p.firstMatch("custom", text, []*regexp.Regexp{re})
}

// firstMatch tries patterns in order against normalized text and
// returns the first hit, trimmed.
func (p *Processor) firstMatch(field, text string, patterns []*regexp.Regexp) (string, bool) {
	text = norm.NFKC.String(text)
	for _, re := range patterns {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		value := m[0]
		if len(m) > 1 {
			value = m[1]
		}
		return strings.TrimSpace(value), true
	}
	p.log.Warn("no pattern matched", "field", field)
	return "", false
}
