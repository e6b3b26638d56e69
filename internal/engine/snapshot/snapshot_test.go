package snapshot

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func solid(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"png", FormatPNG, false},
		{"WEBP", FormatWebP, false},
		{"", FormatPNG, false},
		{"jpeg", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if tt.wantErr {
			if !errors.Is(err, ErrUnknownFormat) {
				t.Errorf("ParseFormat(%q) error = %v, want ErrUnknownFormat", tt.in, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, %v, want %q", tt.in, got, err, tt.want)
		}
	}
}

func TestSavePNG(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "shots")
	w := &Writer{Dir: dir, Prefix: "board"}

	src := solid(8, 4, color.NRGBA{153, 204, 51, 255})
	path, err := w.Save(src)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !strings.HasPrefix(filepath.Base(path), "board_") || filepath.Ext(path) != ".png" {
		t.Errorf("path = %s, want board_*.png", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("png.Decode: %v", err)
	}
	if img.Bounds().Dx() != 8 || img.Bounds().Dy() != 4 {
		t.Errorf("decoded size = %v, want 8x4", img.Bounds())
	}
	if got := color.NRGBAModel.Convert(img.At(3, 2)); got != (color.NRGBA{153, 204, 51, 255}) {
		t.Errorf("pixel = %v", got)
	}

	second, err := w.Save(src)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if second == path {
		t.Error("second save overwrote the first")
	}
}

func TestSaveWebPResized(t *testing.T) {
	w := &Writer{Dir: t.TempDir(), Format: FormatWebP, Width: 4, Height: 2}

	path, err := w.Save(solid(16, 8, color.NRGBA{0, 0, 0, 255}))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if filepath.Ext(path) != ".webp" {
		t.Errorf("path = %s, want .webp", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if len(data) < 12 || string(data[0:4]) != "RIFF" || string(data[8:12]) != "WEBP" {
		t.Errorf("file does not start with a WebP header")
	}
}

func TestSaveRejectsEmptyImage(t *testing.T) {
	tests := []struct {
		name string
		img  image.Image
	}{
		{"nil", nil},
		{"zero readback", FromBottomUpRGBA(nil, 0, 0)},
		{"empty bounds", image.NewNRGBA(image.Rect(0, 0, 0, 4))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := filepath.Join(t.TempDir(), "shots")
			w := &Writer{Dir: dir}
			if _, err := w.Save(tt.img); !errors.Is(err, ErrEmptyImage) {
				t.Errorf("Save() error = %v, want ErrEmptyImage", err)
			}
			if _, err := os.Stat(dir); !os.IsNotExist(err) {
				t.Errorf("output dir created for an empty image")
			}
		})
	}
}

func TestSaveRemovesFileOnEncodeError(t *testing.T) {
	dir := t.TempDir()
	w := &Writer{Dir: dir, Format: FormatWebP}

	// WebP caps each side at 16384 pixels.
	if _, err := w.Save(image.NewNRGBA(image.Rect(0, 0, 1<<14+1, 1))); err == nil {
		t.Fatal("expected encode error for oversized WebP")
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("left %d files behind after a failed encode", len(entries))
	}
}

func TestResize(t *testing.T) {
	src := solid(8, 8, color.NRGBA{255, 0, 0, 255})
	if got := Resize(src, 8, 8); got != image.Image(src) {
		t.Error("Resize to same size should return the input")
	}
	dst := Resize(src, 2, 2)
	if dst.Bounds().Dx() != 2 || dst.Bounds().Dy() != 2 {
		t.Fatalf("Resize() bounds = %v", dst.Bounds())
	}
	got := color.NRGBAModel.Convert(dst.At(1, 1)).(color.NRGBA)
	if got.R < 250 || got.G > 5 || got.B > 5 || got.A < 250 {
		t.Errorf("resized pixel = %v, want solid red", got)
	}
}

func TestFromBottomUpRGBA(t *testing.T) {
	// Two rows: bottom row red, top row blue (GL order: bottom first).
	pixels := []byte{
		255, 0, 0, 255, 255, 0, 0, 255,
		0, 0, 255, 255, 0, 0, 255, 255,
	}
	img := FromBottomUpRGBA(pixels, 2, 2)
	if img == nil {
		t.Fatal("FromBottomUpRGBA returned nil")
	}
	if got := img.NRGBAAt(0, 0); got != (color.NRGBA{0, 0, 255, 255}) {
		t.Errorf("top-left = %v, want blue", got)
	}
	if got := img.NRGBAAt(1, 1); got != (color.NRGBA{255, 0, 0, 255}) {
		t.Errorf("bottom-right = %v, want red", got)
	}

	if FromBottomUpRGBA(pixels[:4], 2, 2) != nil {
		t.Error("size mismatch should return nil")
	}
}
