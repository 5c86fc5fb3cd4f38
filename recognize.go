package skim

import (
	"image"
	"log/slog"

	"github.com/tsawler/skim/imaging"
	"github.com/tsawler/skim/ocr"
)

// tesseractRecognizer is the default Recognizer: it encodes the page
// image as TIFF and feeds it to Tesseract configured for a single
// uniform block of text.
type tesseractRecognizer struct {
	client *ocr.Client
}

// newTesseractRecognizer builds the default recognizer. Returns nil
// when the OCR engine is unavailable (stub build or missing Tesseract);
// the pipeline degrades to its sentinel text in that case.
func newTesseractRecognizer(language string, log *slog.Logger) Recognizer {
	client, err := ocr.New()
	if err != nil {
		log.Warn("OCR engine unavailable; scanned extraction will degrade", "error", err)
		return nil
	}
	if language != "" {
		if err := client.SetLanguage(language); err != nil {
			log.Warn("setting OCR language failed", "language", language, "error", err)
		}
	}
	if err := client.SetPageSegMode(ocr.PSM_SINGLE_BLOCK); err != nil {
		log.Warn("setting OCR page segmentation mode failed", "error", err)
	}
	return &tesseractRecognizer{client: client}
}

func (r *tesseractRecognizer) Recognize(img image.Image) (string, error) {
	data, err := imaging.EncodeTIFF(img)
	if err != nil {
		return "", err
	}
	return r.client.RecognizeImage(data)
}

func (r *tesseractRecognizer) Close() error {
	return r.client.Close()
}
