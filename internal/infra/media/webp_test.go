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
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 90, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png: %v", err)
	}
	return &buf
}

func TestToWebP_Downscales(t *testing.T) {
	out, err := ToWebP(pngOf(t, 1024, 256), MaxSide, WebPQuality)
	if err != nil {
		t.Fatalf("ToWebP: %v", err)
	}

	cfg, err := webp.DecodeConfig(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("decode config: %v", err)
	}
	if cfg.Width != 512 || cfg.Height != 128 {
		t.Fatalf("size = %dx%d, want 512x128", cfg.Width, cfg.Height)
	}
}

func TestToWebP_RejectsGarbage(t *testing.T) {
	_, err := ToWebP(strings.NewReader("not an image"), MaxSide, WebPQuality)
	if !errors.Is(err, ErrUnsupportedImage) {
		t.Fatalf("got %v, want ErrUnsupportedImage", err)
	}
}

func TestFit(t *testing.T) {
	tests := []struct {
		w, h, wantW, wantH int
	}{
		{100, 80, 100, 80},
		{1024, 1024, 512, 512},
		{600, 1200, 256, 512},
		{5000, 1, 512, 1},
	}
	for _, tt := range tests {
		w, h := fit(tt.w, tt.h, 512)
		if w != tt.wantW || h != tt.wantH {
			t.Fatalf("fit(%d,%d) = %dx%d, want %dx%d", tt.w, tt.h, w, h, tt.wantW, tt.wantH)
		}
	}
}
