package skim

import (
	"errors"
	"image"
	"os"
	"path/filepath"
	"testing"
)

type fakeClassifier struct {
	mode Mode
}

func (f fakeClassifier) Classify(string) Mode { return f.mode }

type fakeParser struct {
	text       string
	tables     []Table
	err        error
	textCalls  int
	tableCalls int
}

func (f *fakeParser) Text(string) (string, error) {
	f.textCalls++
	return f.text, f.err
}

func (f *fakeParser) Tables(string) ([]Table, error) {
	f.tableCalls++
	return f.tables, f.err
}

type fakeRasterizer struct {
	images []image.Image
	err    error
}

func (f *fakeRasterizer) Pages(string) ([]image.Image, error) {
	return f.images, f.err
}

type fakeRecognizer struct {
	texts  []string
	err    error
	calls  int
	closed bool
}

func (f *fakeRecognizer) Recognize(image.Image) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	text := f.texts[f.calls%len(f.texts)]
	f.calls++
	return text, nil
}

func (f *fakeRecognizer) Close() error {
	f.closed = true
	return nil
}

// tempPDF creates a file that exists on disk; its contents are never
// read because these tests inject a fake classifier.
func tempPDF(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "doc.pdf")
	if err := os.WriteFile(path, []byte("%PDF-1.4"), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func pageImages(n int) []image.Image {
	images := make([]image.Image, n)
	for i := range images {
		images[i] = image.NewGray(image.Rect(0, 0, 4, 4))
	}
	return images
}

func TestExtractTextMissingFile(t *testing.T) {
	p := New(WithLogger(discardLogger()))
	defer p.Close()

	res := p.ExtractText(filepath.Join(t.TempDir(), "missing.pdf"))
	if res.Text != "" {
		t.Errorf("expected empty text, got %q", res.Text)
	}
	if res.Mode != ModeUnknown {
		t.Errorf("expected ModeUnknown, got %v", res.Mode)
	}
}

func TestExtractTablesMissingFile(t *testing.T) {
	p := New(WithLogger(discardLogger()))
	defer p.Close()

	res := p.ExtractTables(filepath.Join(t.TempDir(), "missing.pdf"))
	if len(res.Tables) != 0 {
		t.Errorf("expected no tables, got %v", res.Tables)
	}
	if res.Mode != ModeUnknown {
		t.Errorf("expected ModeUnknown, got %v", res.Mode)
	}
}

func TestExtractTextDigital(t *testing.T) {
	parser := &fakeParser{text: "page one\npage two"}
	p := New(
		WithLogger(discardLogger()),
		WithClassifier(fakeClassifier{mode: ModeDigital}),
		WithDigitalParser(parser),
	)
	defer p.Close()

	res := p.ExtractText(tempPDF(t))
	if res.Text != "page one\npage two" {
		t.Errorf("got %q", res.Text)
	}
	if res.Mode != ModeDigital {
		t.Errorf("expected ModeDigital, got %v", res.Mode)
	}
	if parser.textCalls != 1 {
		t.Errorf("parser called %d times", parser.textCalls)
	}
}

func TestExtractTextDigitalFailure(t *testing.T) {
	parser := &fakeParser{err: errors.New("malformed xref")}
	p := New(
		WithLogger(discardLogger()),
		WithClassifier(fakeClassifier{mode: ModeDigital}),
		WithDigitalParser(parser),
	)
	defer p.Close()

	res := p.ExtractText(tempPDF(t))
	if res.Text != "" {
		t.Errorf("expected empty text on parse failure, got %q", res.Text)
	}
	if res.Mode != ModeDigital {
		t.Errorf("expected ModeDigital, got %v", res.Mode)
	}
}

func TestExtractTextScannedJoinsWithBlankLines(t *testing.T) {
	rec := &fakeRecognizer{texts: []string{"  First page \n\n artifact  ", "Second page"}}
	p := New(
		WithLogger(discardLogger()),
		WithClassifier(fakeClassifier{mode: ModeScanned}),
		WithRasterizer(&fakeRasterizer{images: pageImages(2)}),
		WithRecognizer(rec),
	)
	defer p.Close()

	res := p.ExtractText(tempPDF(t))
	want := "First page\nartifact\n\nSecond page"
	if res.Text != want {
		t.Errorf("got %q, want %q", res.Text, want)
	}
	if res.Mode != ModeScanned {
		t.Errorf("expected ModeScanned, got %v", res.Mode)
	}
	if rec.calls != 2 {
		t.Errorf("recognizer called %d times, want 2", rec.calls)
	}
}

func TestExtractTextScannedKeepsEmptyPageSlots(t *testing.T) {
	rec := &fakeRecognizer{texts: []string{"", "text"}}
	p := New(
		WithLogger(discardLogger()),
		WithClassifier(fakeClassifier{mode: ModeScanned}),
		WithRasterizer(&fakeRasterizer{images: pageImages(2)}),
		WithRecognizer(rec),
	)
	defer p.Close()

	res := p.ExtractText(tempPDF(t))
	if res.Text != "\n\ntext" {
		t.Errorf("got %q, want %q", res.Text, "\n\ntext")
	}
}

func TestExtractTextRasterizationFailure(t *testing.T) {
	p := New(
		WithLogger(discardLogger()),
		WithClassifier(fakeClassifier{mode: ModeScanned}),
		WithRasterizer(&fakeRasterizer{err: errors.New("mupdf unavailable")}),
		WithRecognizer(&fakeRecognizer{texts: []string{"unused"}}),
	)
	defer p.Close()

	res := p.ExtractText(tempPDF(t))
	if res.Text != OCRUnavailableText {
		t.Errorf("expected sentinel %q, got %q", OCRUnavailableText, res.Text)
	}
	if res.Mode != ModeScanned {
		t.Errorf("expected ModeScanned, got %v", res.Mode)
	}
}

func TestExtractTextRecognitionFailure(t *testing.T) {
	p := New(
		WithLogger(discardLogger()),
		WithClassifier(fakeClassifier{mode: ModeScanned}),
		WithRasterizer(&fakeRasterizer{images: pageImages(1)}),
		WithRecognizer(&fakeRecognizer{err: errors.New("tesseract crashed")}),
	)
	defer p.Close()

	res := p.ExtractText(tempPDF(t))
	if res.Text != OCRUnavailableText {
		t.Errorf("expected sentinel %q, got %q", OCRUnavailableText, res.Text)
	}
}

func TestExtractTextNoRecognizer(t *testing.T) {
	// Simulates a build without OCR support: construction leaves the
	// recognizer nil and scanned extraction degrades to the sentinel.
	p := &Pipeline{
		log:        discardLogger(),
		classifier: fakeClassifier{mode: ModeScanned},
		rasterizer: &fakeRasterizer{images: pageImages(1)},
	}

	res := p.ExtractText(tempPDF(t))
	if res.Text != OCRUnavailableText {
		t.Errorf("expected sentinel %q, got %q", OCRUnavailableText, res.Text)
	}
}

func TestExtractTablesDigital(t *testing.T) {
	tables := []Table{{{"h1", "h2"}, {"a", "b"}}}
	parser := &fakeParser{tables: tables}
	p := New(
		WithLogger(discardLogger()),
		WithClassifier(fakeClassifier{mode: ModeDigital}),
		WithDigitalParser(parser),
	)
	defer p.Close()

	res := p.ExtractTables(tempPDF(t))
	if len(res.Tables) != 1 || res.Tables[0][1][0] != "a" {
		t.Errorf("got %v", res.Tables)
	}
	if res.Mode != ModeDigital {
		t.Errorf("expected ModeDigital, got %v", res.Mode)
	}
}

func TestExtractTablesScannedAlwaysEmpty(t *testing.T) {
	parser := &fakeParser{tables: []Table{{{"never"}}}}
	p := New(
		WithLogger(discardLogger()),
		WithClassifier(fakeClassifier{mode: ModeScanned}),
		WithDigitalParser(parser),
	)
	defer p.Close()

	res := p.ExtractTables(tempPDF(t))
	if len(res.Tables) != 0 {
		t.Errorf("scanned documents must yield no tables, got %v", res.Tables)
	}
	if res.Mode != ModeScanned {
		t.Errorf("expected ModeScanned, got %v", res.Mode)
	}
	if parser.tableCalls != 0 {
		t.Errorf("digital parser should not run on scanned documents, called %d times", parser.tableCalls)
	}
}

func TestExtractTablesDigitalFailure(t *testing.T) {
	parser := &fakeParser{err: errors.New("bad content stream")}
	p := New(
		WithLogger(discardLogger()),
		WithClassifier(fakeClassifier{mode: ModeDigital}),
		WithDigitalParser(parser),
	)
	defer p.Close()

	res := p.ExtractTables(tempPDF(t))
	if len(res.Tables) != 0 {
		t.Errorf("expected no tables on failure, got %v", res.Tables)
	}
}

func TestCloseReleasesRecognizer(t *testing.T) {
	rec := &fakeRecognizer{texts: []string{""}}
	p := New(WithLogger(discardLogger()), WithRecognizer(rec))

	if err := p.Close(); err != nil {
		t.Errorf("Close failed: %v", err)
	}
	if !rec.closed {
		t.Error("recognizer not closed")
	}
	// Second Close must be a no-op.
	if err := p.Close(); err != nil {
		t.Errorf("second Close failed: %v", err)
	}
}

func TestModeIsPerCall(t *testing.T) {
	// Two pipelines sharing nothing: the mode in each result reflects
	// that call's classification, not pipeline state.
	digitalP := New(
		WithLogger(discardLogger()),
		WithClassifier(fakeClassifier{mode: ModeDigital}),
		WithDigitalParser(&fakeParser{text: "t"}),
	)
	defer digitalP.Close()
	scannedP := New(
		WithLogger(discardLogger()),
		WithClassifier(fakeClassifier{mode: ModeScanned}),
		WithRasterizer(&fakeRasterizer{images: pageImages(1)}),
		WithRecognizer(&fakeRecognizer{texts: []string{"s"}}),
	)
	defer scannedP.Close()

	path := tempPDF(t)
	if got := digitalP.ExtractText(path).Mode; got != ModeDigital {
		t.Errorf("got %v", got)
	}
	if got := scannedP.ExtractText(path).Mode; got != ModeScanned {
		t.Errorf("got %v", got)
	}
}
