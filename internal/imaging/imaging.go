// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package imaging provides responsive image variant generation in pure Go.
// It converts uploaded images into multiple JPEG variants optimised for
// mobile, tablet, and desktop breakpoints. Variants smaller than the
// source image are generated; larger ones are skipped to avoid upscaling.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"

	_ "image/gif" // register GIF decoder
	_ "image/png" // register PNG decoder

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // register WebP decoder
)

// maxPixels rejects decompression bombs before full decode.
const maxPixels = 50_000_000

// Variant describes a single responsive image size.
type Variant struct {
	Name    string // e.g., "thumb", "sm", "md", "lg"
	Width   int    // Target width in pixels
	Quality int    // JPEG quality 1-100
}

// DefaultVariants defines the standard breakpoints for responsive web images.
var DefaultVariants = []Variant{
	{Name: "thumb", Width: 320, Quality: 75},
	{Name: "sm", Width: 640, Quality: 80},
	{Name: "md", Width: 1024, Quality: 80},
	{Name: "lg", Width: 1920, Quality: 80},
}

// ProcessedImage holds one generated variant ready for upload.
type ProcessedImage struct {
	Name        string // Variant name (e.g., "sm")
	Width       int    // Actual output width
	Height      int    // Actual output height
	Data        []byte // JPEG-encoded image bytes
	ContentType string // Always "image/jpeg"
}

// GenerateVariants creates JPEG variants of the source image for each
// configured breakpoint. It skips variants wider than the original to
// avoid upscaling. Returns at least one variant (the smallest that fits).
func GenerateVariants(original []byte, variants []Variant) ([]ProcessedImage, error) {
	if len(variants) == 0 {
		variants = DefaultVariants
	}

	// Probe dimensions without fully decoding.
	cfg, _, err := image.DecodeConfig(bytes.NewReader(original))
	if err != nil {
		return nil, fmt.Errorf("imaging: probe failed: %w", err)
	}
	if cfg.Width*cfg.Height > maxPixels {
		return nil, fmt.Errorf("imaging: image too large: %dx%d exceeds %d pixels", cfg.Width, cfg.Height, maxPixels)
	}

	src, _, err := image.Decode(bytes.NewReader(original))
	if err != nil {
		return nil, fmt.Errorf("imaging: decode failed: %w", err)
	}

	origWidth := src.Bounds().Dx()
	origHeight := src.Bounds().Dy()

	var results []ProcessedImage

	for _, v := range variants {
		targetWidth := v.Width

		// Cap at original width to avoid upscaling.
		if origWidth <= targetWidth {
			targetWidth = origWidth
		}

		targetHeight := origHeight * targetWidth / origWidth
		if targetHeight < 1 {
			targetHeight = 1
		}

		dst := image.NewRGBA(image.Rect(0, 0, targetWidth, targetHeight))
		draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)

		var buf bytes.Buffer
		if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: v.Quality}); err != nil {
			return nil, fmt.Errorf("imaging: encode %s: %w", v.Name, err)
		}

		results = append(results, ProcessedImage{
			Name:        v.Name,
			Width:       targetWidth,
			Height:      targetHeight,
			Data:        buf.Bytes(),
			ContentType: "image/jpeg",
		})

		// If we already processed the original-width image, no point
		// generating larger variants.
		if origWidth <= v.Width {
			break
		}
	}

	return results, nil
}

// Thumbnail generates a single JPEG thumbnail constrained to maxWidth.
// Returns (nil, nil) when the source is already narrow enough.
func Thumbnail(original []byte, maxWidth, quality int) (*ProcessedImage, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(original))
	if err != nil {
		return nil, fmt.Errorf("imaging: probe failed: %w", err)
	}
	if cfg.Width*cfg.Height > maxPixels {
		return nil, fmt.Errorf("imaging: image too large: %dx%d exceeds %d pixels", cfg.Width, cfg.Height, maxPixels)
	}
	if cfg.Width <= maxWidth {
		return nil, nil
	}

	out, err := GenerateVariants(original, []Variant{{Name: "thumb", Width: maxWidth, Quality: quality}})
	if err != nil {
		return nil, err
	}
	return &out[0], nil
}
