// Package skim extracts text and tabular data from PDF documents.
//
// PDFs come in two flavors: digital files carrying an embedded text
// layer, and scanned files that are just page images. skim classifies a
// document by probing its first page for extractable text, then takes
// one of two paths:
//
//   - digital: native text and table extraction through the layout
//     engine (see the digital package)
//   - scanned: rasterize each page, binarize it, and recognize text
//     with OCR (see the raster, imaging, and ocr packages)
//
// Basic usage:
//
//	p := skim.New()
//	defer p.Close()
//
//	res := p.ExtractText("invoice.pdf")
//	fmt.Println(res.Mode, res.Text)
//
//	tr := p.ExtractTables("invoice.pdf")
//	for _, table := range tr.Tables {
//	    // rows × cells
//	}
//
// Extraction never returns an error: failures are logged and collapse
// to documented fallback values (empty text, empty table sequence, or
// OCRUnavailableText when the OCR toolchain cannot run). Callers that
// need to distinguish failure causes should watch the log output.
package skim

import (
	"image"

	"github.com/tsawler/skim/digital"
)

// Mode identifies which extraction path a call used.
type Mode string

// Extraction modes.
const (
	// ModeDigital means the document has a usable text layer and was
	// parsed natively.
	ModeDigital Mode = "digital"
	// ModeScanned means the document was treated as page images and
	// went through OCR.
	ModeScanned Mode = "scanned"
	// ModeUnknown means classification never ran (e.g. missing file).
	ModeUnknown Mode = "unknown"
)

// Table is one extracted table: ordered rows of ordered cells. Rows may
// be ragged; cells are never absent, only empty.
type Table = digital.Table

// OCRUnavailableText is returned by ExtractText when the scanned path
// cannot run: the OCR toolchain is missing or rasterization/recognition
// failed. The exact wording (typo included) is preserved for
// compatibility with consumers that match on it.
const OCRUnavailableText = "OCR Functionaliy Not Available On This Platform"

// TextResult is the outcome of one ExtractText call.
type TextResult struct {
	// Text is the extracted text; empty when nothing usable was found
	// or extraction failed.
	Text string
	// Mode is the classification this call used. Reported for
	// observability only; it carries no error semantics.
	Mode Mode
}

// TableResult is the outcome of one ExtractTables call.
type TableResult struct {
	// Tables holds surviving tables in page order then in-page order.
	// Empty for scanned documents and on any failure.
	Tables []Table
	// Mode is the classification this call used.
	Mode Mode
}

// Classifier decides which extraction path fits a document. It never
// fails: documents it cannot read classify as scanned.
type Classifier interface {
	Classify(path string) Mode
}

// DigitalParser reads native text and tables from a digital PDF.
type DigitalParser interface {
	Text(path string) (string, error)
	Tables(path string) ([]Table, error)
}

// Rasterizer renders each page of a PDF to a bitmap, in page order.
type Rasterizer interface {
	Pages(path string) ([]image.Image, error)
}

// Recognizer performs OCR on a single (binarized) page image and
// returns the raw recognized text.
type Recognizer interface {
	Recognize(img image.Image) (string, error)
	Close() error
}
