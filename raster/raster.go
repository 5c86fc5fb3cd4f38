// Package raster renders PDF pages to bitmap images.
//
// Rendering is backed by MuPDF through go-fitz, so it works on any PDF
// the viewer stack can open, including pure image scans with no text
// layer. Output images feed the imaging/ocr packages on the scanned
// extraction path.
package raster

import (
	"fmt"
	"image"

	"github.com/gen2brain/go-fitz"
)

// DefaultDPI is the render resolution used when none is configured.
// 300 DPI is the conventional floor for OCR-quality scans.
const DefaultDPI = 300

// Renderer rasterizes PDF pages at a fixed resolution.
type Renderer struct {
	dpi float64
}

// New creates a Renderer. A dpi of zero or less selects DefaultDPI.
func New(dpi float64) *Renderer {
	if dpi <= 0 {
		dpi = DefaultDPI
	}
	return &Renderer{dpi: dpi}
}

// DPI reports the configured render resolution.
func (r *Renderer) DPI() float64 { return r.dpi }

// Pages renders every page of the PDF at the configured DPI, in page
// order, one image per page. Any page that fails to render fails the
// whole call; partial results are never returned.
func (r *Renderer) Pages(path string) ([]image.Image, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s for rendering: %w", path, err)
	}
	defer doc.Close()

	images := make([]image.Image, 0, doc.NumPage())
	for i := 0; i < doc.NumPage(); i++ {
		img, err := doc.ImageDPI(i, r.dpi)
		if err != nil {
			return nil, fmt.Errorf("rendering page %d: %w", i+1, err)
		}
		images = append(images, img)
	}
	return images, nil
}
