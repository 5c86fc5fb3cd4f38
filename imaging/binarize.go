// Package imaging prepares rasterized PDF pages for OCR.
//
// Recognition quality on scanned pages depends heavily on feeding the
// engine a clean two-level image. The functions here convert a rendered
// page to grayscale, pick a global threshold with Otsu's method, and
// produce a pure black/white image. Encoding helpers turn the result
// into PNG or TIFF bytes for engines that consume encoded images.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"

	"golang.org/x/image/tiff"
)

// Grayscale converts any image to single-channel 8-bit grayscale.
func Grayscale(src image.Image) *image.Gray {
	if g, ok := src.(*image.Gray); ok {
		return g
	}
	bounds := src.Bounds()
	gray := image.NewGray(bounds)
	draw.Draw(gray, bounds, src, bounds.Min, draw.Src)
	return gray
}

// OtsuThreshold computes the global binarization threshold for a
// grayscale image using Otsu's method: it picks the level that maximizes
// the between-class variance of the foreground and background pixel
// populations. Returns 0 for an empty image.
func OtsuThreshold(gray *image.Gray) uint8 {
	var hist [256]int
	total := 0
	bounds := gray.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		row := gray.Pix[(y-bounds.Min.Y)*gray.Stride:]
		for x := 0; x < bounds.Dx(); x++ {
			hist[row[x]]++
			total++
		}
	}
	if total == 0 {
		return 0
	}

	var sum float64
	for i, n := range hist {
		sum += float64(i) * float64(n)
	}

	var sumB, wB float64
	var best float64
	var threshold uint8
	for i, n := range hist {
		wB += float64(n)
		if wB == 0 {
			continue
		}
		wF := float64(total) - wB
		if wF == 0 {
			break
		}
		sumB += float64(i) * float64(n)
		mB := sumB / wB
		mF := (sum - sumB) / wF
		between := wB * wF * (mB - mF) * (mB - mF)
		if between > best {
			best = between
			threshold = uint8(i)
		}
	}
	return threshold
}

// Binarize converts an image to a pure black/white grayscale image using
// Otsu's threshold. Pixels above the threshold become white (0xFF),
// everything else black (0x00). Deterministic for identical input.
func Binarize(src image.Image) *image.Gray {
	gray := Grayscale(src)
	threshold := OtsuThreshold(gray)

	bounds := gray.Bounds()
	out := image.NewGray(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			if gray.GrayAt(x, y).Y > threshold {
				out.SetGray(x, y, color.Gray{Y: 0xFF})
			} else {
				out.SetGray(x, y, color.Gray{Y: 0x00})
			}
		}
	}
	return out
}

// EncodePNG encodes an image as PNG bytes.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encoding PNG: %w", err)
	}
	return buf.Bytes(), nil
}

// EncodeTIFF encodes an image as deflate-compressed TIFF bytes. TIFF is
// the conventional interchange format for OCR engines.
func EncodeTIFF(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	opts := &tiff.Options{Compression: tiff.Deflate}
	if err := tiff.Encode(&buf, img, opts); err != nil {
		return nil, fmt.Errorf("encoding TIFF: %w", err)
	}
	return buf.Bytes(), nil
}
