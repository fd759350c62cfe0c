package media

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/chai2010/webp"
)

func pngOf(t *testing.T, w, h int) *bytes.Buffer {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}
	buf := new(bytes.Buffer)
	if err := png.Encode(buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf
}

func TestToWebPResizes(t *testing.T) {
	out, err := ToWebP(pngOf(t, 400, 200), 100)
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	cfg, err := webp.DecodeConfig(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("decode webp: %v", err)
	}
	if cfg.Width != 100 || cfg.Height != 50 {
		t.Fatalf("expected 100x50, got %dx%d", cfg.Width, cfg.Height)
	}
}

func TestToWebPKeepsSmallImages(t *testing.T) {
	out, err := ToWebP(pngOf(t, 40, 30), 100)
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	cfg, err := webp.DecodeConfig(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("decode webp: %v", err)
	}
	if cfg.Width != 40 || cfg.Height != 30 {
		t.Fatalf("expected 40x30, got %dx%d", cfg.Width, cfg.Height)
	}
}

func TestToWebPRejectsNonImages(t *testing.T) {
	_, err := ToWebP(strings.NewReader("not an image"), 0)
	if !errors.Is(err, ErrUnsupportedImage) {
		t.Fatalf("expected ErrUnsupportedImage, got %v", err)
	}
}
