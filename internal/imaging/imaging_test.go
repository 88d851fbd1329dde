// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
)

// testPNG encodes a solid-color PNG of the given size.
func testPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 200, G: 100, B: 50, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode test png: %v", err)
	}
	return buf.Bytes()
}

func TestGenerateVariants(t *testing.T) {
	src := testPNG(t, 2000, 1000)

	out, err := GenerateVariants(src, nil)
	if err != nil {
		t.Fatalf("GenerateVariants: %v", err)
	}
	if len(out) != len(DefaultVariants) {
		t.Fatalf("got %d variants, want %d", len(out), len(DefaultVariants))
	}

	for i, v := range DefaultVariants {
		got := out[i]
		if got.Name != v.Name {
			t.Errorf("variant %d name = %q, want %q", i, got.Name, v.Name)
		}
		if got.Width != v.Width {
			t.Errorf("variant %s width = %d, want %d", v.Name, got.Width, v.Width)
		}
		// Aspect ratio preserved: 2:1.
		if got.Height != v.Width/2 {
			t.Errorf("variant %s height = %d, want %d", v.Name, got.Height, v.Width/2)
		}
		if got.ContentType != "image/jpeg" {
			t.Errorf("variant %s content type = %q", v.Name, got.ContentType)
		}
		if len(got.Data) == 0 {
			t.Errorf("variant %s has empty data", v.Name)
		}
	}
}

func TestGenerateVariantsSkipsUpscaling(t *testing.T) {
	// 800px source: only thumb (320) and sm (640) are smaller; md caps at
	// 800 and stops the chain.
	src := testPNG(t, 800, 400)

	out, err := GenerateVariants(src, nil)
	if err != nil {
		t.Fatalf("GenerateVariants: %v", err)
	}
	if len(out) != 3 {
		t.Fatalf("got %d variants, want 3", len(out))
	}
	if out[2].Width != 800 {
		t.Errorf("capped variant width = %d, want 800", out[2].Width)
	}
}

func TestGenerateVariantsBadInput(t *testing.T) {
	if _, err := GenerateVariants([]byte("not an image"), nil); err == nil {
		t.Error("expected error for undecodable input")
	}
}

func TestThumbnail(t *testing.T) {
	src := testPNG(t, 1000, 500)

	thumb, err := Thumbnail(src, 320, 75)
	if err != nil {
		t.Fatalf("Thumbnail: %v", err)
	}
	if thumb == nil {
		t.Fatal("expected a thumbnail for wide image")
	}
	if thumb.Width != 320 || thumb.Height != 160 {
		t.Errorf("thumbnail size = %dx%d, want 320x160", thumb.Width, thumb.Height)
	}
}

func TestThumbnailSkipsSmallImages(t *testing.T) {
	src := testPNG(t, 200, 100)

	thumb, err := Thumbnail(src, 320, 75)
	if err != nil {
		t.Fatalf("Thumbnail: %v", err)
	}
	if thumb != nil {
		t.Errorf("expected nil thumbnail for small image, got %dx%d", thumb.Width, thumb.Height)
	}
}
