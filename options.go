package skim

import "log/slog"

// config holds pipeline construction settings.
type config struct {
	threshold int
	dpi       float64
	language  string
	logger    *slog.Logger

	// Injected components; nil selects the default implementation.
	classifier Classifier
	parser     DigitalParser
	rasterizer Rasterizer
	recognizer Recognizer
}

// Option configures a Pipeline at construction time.
type Option func(*config)

// WithThreshold overrides the digital/scanned classification threshold
// (first-page trimmed text length in runes). Values <= 0 keep
// DefaultThreshold.
func WithThreshold(threshold int) Option {
	return func(c *config) { c.threshold = threshold }
}

// WithDPI overrides the rasterization resolution for the scanned path.
// Values <= 0 keep the raster package default (300).
func WithDPI(dpi float64) Option {
	return func(c *config) { c.dpi = dpi }
}

// WithLanguage sets the OCR recognition language(s), "+"-separated for
// multiple (e.g. "eng+fra"). Default is "eng".
func WithLanguage(lang string) Option {
	return func(c *config) { c.language = lang }
}

// WithLogger sets the structured logger used by the pipeline and its
// default components. Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) { c.logger = logger }
}

// WithClassifier replaces the default first-page text-probe classifier.
func WithClassifier(classifier Classifier) Option {
	return func(c *config) { c.classifier = classifier }
}

// WithDigitalParser replaces the default pdfplumber-backed digital
// parser. The digital layout engine is an external capability; swap it
// here if another engine fits your documents better.
func WithDigitalParser(parser DigitalParser) Option {
	return func(c *config) { c.parser = parser }
}

// WithRasterizer replaces the default MuPDF-backed page rasterizer.
// Useful for wrapping the default with timeouts, or in tests.
func WithRasterizer(rasterizer Rasterizer) Option {
	return func(c *config) { c.rasterizer = rasterizer }
}

// WithRecognizer replaces the default Tesseract recognizer. The
// pipeline takes ownership and closes it in Close.
func WithRecognizer(recognizer Recognizer) Option {
	return func(c *config) { c.recognizer = recognizer }
}
