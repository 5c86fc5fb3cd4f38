// Package digital extracts native text and tables from digital PDFs.
//
// A digital PDF carries an embedded text layer and drawn table geometry,
// so extraction is a direct read through the layout engine; no
// rasterization or OCR is involved. The engine (pdfplumber-golang) is
// treated as an external capability: candidate ordering and layout
// tie-breaking are whatever it reports, and this package only applies
// the cleaning rules on top.
package digital

import (
	"fmt"
	"log/slog"
	"strings"

	pdfplumber "github.com/pyhub-apps/pdfplumber-golang"
	"github.com/pyhub-apps/pdfplumber-golang/pkg/pdf"
)

// Table is one extracted table: ordered rows of ordered cells. Rows may
// be ragged; cells are never absent, only empty.
type Table [][]string

// enginePage is the slice of the engine's page contract this package
// uses. Narrow on purpose, so tests can supply fakes.
type enginePage interface {
	ExtractText(opts ...pdf.TextExtractionOption) string
	ExtractTables(opts ...pdf.TableExtractionOption) []pdf.Table
}

// Parser reads text and tables from digital PDFs.
type Parser struct {
	log  *slog.Logger
	open func(path string) (pdf.Document, error)
}

// New creates a Parser. A nil logger falls back to slog.Default().
func New(logger *slog.Logger) *Parser {
	if logger == nil {
		logger = slog.Default()
	}
	return &Parser{log: logger, open: pdfplumber.Open}
}

// Text extracts native text from every page in order. Pages yielding no
// text are skipped (and logged at zero length); surviving page texts are
// joined with single newlines. A document with no pages, or with only
// textless pages, yields the empty string.
func (p *Parser) Text(path string) (string, error) {
	doc, err := p.open(path)
	if err != nil {
		return "", fmt.Errorf("opening %s: %w", path, err)
	}
	defer doc.Close()

	pages := make([]enginePage, 0, doc.PageCount())
	for _, page := range doc.GetPages() {
		pages = append(pages, page)
	}
	return p.textFromPages(pages), nil
}

func (p *Parser) textFromPages(pages []enginePage) string {
	var parts []string
	for i, page := range pages {
		text := page.ExtractText()
		if text != "" {
			parts = append(parts, text)
		}
		p.log.Info("extracted page text", "page", i+1, "chars", len(text))
	}
	return strings.Join(parts, "\n")
}

// Tables extracts every table candidate from every page, in page order
// then in-page order, applies CleanTable to each, and returns the
// candidates that survive cleaning as one flat sequence. Page grouping
// is not exposed.
func (p *Parser) Tables(path string) ([]Table, error) {
	doc, err := p.open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer doc.Close()

	pages := make([]enginePage, 0, doc.PageCount())
	for _, page := range doc.GetPages() {
		pages = append(pages, page)
	}
	return p.tablesFromPages(pages), nil
}

func (p *Parser) tablesFromPages(pages []enginePage) []Table {
	var all []Table
	for i, page := range pages {
		for j, candidate := range page.ExtractTables() {
			cleaned := CleanTable(candidate.Rows)
			if len(cleaned) == 0 {
				continue
			}
			all = append(all, cleaned)
			p.log.Info("extracted table", "page", i+1, "table", j+1, "rows", len(cleaned))
		}
	}
	return all
}

// CleanTable normalizes a raw table candidate: absent (nil or empty)
// rows are dropped entirely; within a kept row every cell is trimmed of
// surrounding whitespace. Cell positions are preserved so columns stay
// aligned. Returns nil when no rows survive; such candidates are
// discarded by the caller.
func CleanTable(rows [][]string) Table {
	var cleaned Table
	for _, row := range rows {
		if len(row) == 0 {
			continue
		}
		cells := make([]string, len(row))
		for i, cell := range row {
			cells[i] = strings.TrimSpace(cell)
		}
		cleaned = append(cleaned, cells)
	}
	return cleaned
}
