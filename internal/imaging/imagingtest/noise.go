// Package imagingtest builds image fixtures for tests.
package imagingtest

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/anthonynsimon/bild/noise"
)

// Noise returns a w×h image of uniform color noise. Noise does not compress,
// so even small fixtures encode to several kilobytes.
func Noise(w, h int) *image.RGBA {
	return noise.Generate(w, h, &noise.Options{NoiseFn: noise.Uniform})
}

// PNG encodes a noise image as PNG.
func PNG(t testing.TB, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, Noise(w, h)); err != nil {
		t.Fatalf("encode png fixture: %v", err)
	}
	return buf.Bytes()
}

// JPEG encodes a noise image as JPEG.
func JPEG(t testing.TB, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, Noise(w, h), &jpeg.Options{Quality: 90}); err != nil {
		t.Fatalf("encode jpeg fixture: %v", err)
	}
	return buf.Bytes()
}

// PNGBase64 returns a noise PNG as standard base64.
func PNGBase64(t testing.TB, w, h int) string {
	t.Helper()
	return base64.StdEncoding.EncodeToString(PNG(t, w, h))
}
