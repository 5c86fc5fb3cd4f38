package skim

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/tsawler/skim/digital"
	"github.com/tsawler/skim/imaging"
	"github.com/tsawler/skim/ocr"
	"github.com/tsawler/skim/raster"
)

// Pipeline classifies PDFs and extracts their content over the
// appropriate path. A Pipeline holds no per-document state and is safe
// for concurrent use; each call classifies independently and reports
// the mode it used in its result value.
type Pipeline struct {
	log        *slog.Logger
	classifier Classifier
	parser     DigitalParser
	rasterizer Rasterizer
	recognizer Recognizer
}

// New creates a Pipeline. Component construction happens here: the OCR
// engine in particular is resolved once, and unavailability is logged
// as a warning rather than failing construction — scanned extraction
// then degrades to OCRUnavailableText on first use.
func New(opts ...Option) *Pipeline {
	cfg := config{
		threshold: DefaultThreshold,
		dpi:       raster.DefaultDPI,
		language:  "eng",
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = slog.Default()
	}

	p := &Pipeline{
		log:        cfg.logger,
		classifier: cfg.classifier,
		parser:     cfg.parser,
		rasterizer: cfg.rasterizer,
		recognizer: cfg.recognizer,
	}
	if p.classifier == nil {
		p.classifier = NewClassifier(cfg.threshold, cfg.logger)
	}
	if p.parser == nil {
		p.parser = digital.New(cfg.logger)
	}
	if p.rasterizer == nil {
		p.rasterizer = raster.New(cfg.dpi)
	}
	if p.recognizer == nil {
		p.recognizer = newTesseractRecognizer(cfg.language, cfg.logger)
	}

	p.log.Info("extraction pipeline initialized",
		"digital", "text and tables",
		"scanned", "text only (OCR)")
	return p
}

// Close releases the OCR engine. Safe to call multiple times.
func (p *Pipeline) Close() error {
	if p.recognizer == nil {
		return nil
	}
	err := p.recognizer.Close()
	p.recognizer = nil
	return err
}

// ExtractText extracts text from the PDF at path, handling both digital
// and scanned documents. It never returns an error:
//
//   - missing file: logged, empty text, ModeUnknown
//   - digital parse failure: logged, empty text
//   - OCR toolchain failure: logged, OCRUnavailableText
//
// An empty result therefore means "no usable text", which includes both
// genuinely textless documents and absorbed failures.
func (p *Pipeline) ExtractText(path string) TextResult {
	if _, err := os.Stat(path); err != nil {
		p.log.Error("file not found", "path", path)
		return TextResult{Mode: ModeUnknown}
	}

	mode := p.classifier.Classify(path)
	p.log.Info("processing PDF", "mode", mode, "file", filepath.Base(path))

	if mode == ModeDigital {
		text, err := p.parser.Text(path)
		if err != nil {
			p.log.Error("digital text extraction failed", "path", path, "error", err)
			return TextResult{Mode: mode}
		}
		p.log.Info("digital text extraction completed", "chars", len(text))
		return TextResult{Text: text, Mode: mode}
	}

	text, err := p.scannedText(path)
	if err != nil {
		p.log.Error("OCR extraction failed", "path", path, "error", err)
		return TextResult{Text: OCRUnavailableText, Mode: mode}
	}
	p.log.Info("scanned text extraction completed", "chars", len(text))
	return TextResult{Text: text, Mode: mode}
}

// scannedText runs the rasterize → binarize → recognize chain over
// every page and joins per-page text with blank lines. A failure on any
// page fails the whole call; partial transcripts are never returned.
func (p *Pipeline) scannedText(path string) (string, error) {
	if p.recognizer == nil {
		return "", ocr.ErrOCRNotEnabled
	}

	images, err := p.rasterizer.Pages(path)
	if err != nil {
		return "", fmt.Errorf("rasterizing: %w", err)
	}

	pageTexts := make([]string, 0, len(images))
	for i, img := range images {
		bin := imaging.Binarize(img)
		raw, err := p.recognizer.Recognize(bin)
		if err != nil {
			return "", fmt.Errorf("recognizing page %d: %w", i+1, err)
		}
		text := ocr.CleanLines(raw)
		pageTexts = append(pageTexts, text)
		p.log.Info("recognized page", "page", i+1, "chars", len(text))
	}
	return strings.Join(pageTexts, "\n\n"), nil
}

// ExtractTables extracts tables from the PDF at path. Only digital
// documents yield tables; a scanned classification logs a warning and
// returns an empty result (use ExtractText for OCR text instead). It
// never returns an error: missing files and parse failures are logged
// and collapse to an empty result.
func (p *Pipeline) ExtractTables(path string) TableResult {
	if _, err := os.Stat(path); err != nil {
		p.log.Error("file not found", "path", path)
		return TableResult{Mode: ModeUnknown}
	}

	mode := p.classifier.Classify(path)
	p.log.Info("processing tables", "mode", mode, "file", filepath.Base(path))

	if mode != ModeDigital {
		p.log.Warn("table extraction unavailable for scanned documents",
			"path", path,
			"hint", "use ExtractText for OCR text")
		return TableResult{Mode: mode}
	}

	tables, err := p.parser.Tables(path)
	if err != nil {
		p.log.Error("table extraction failed", "path", path, "error", err)
		return TableResult{Mode: mode}
	}
	p.log.Info("digital table extraction completed", "tables", len(tables))
	return TableResult{Tables: tables, Mode: mode}
}
