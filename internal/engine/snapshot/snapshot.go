// Package snapshot writes rendered frames to image files.
package snapshot

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/HugoSmits86/nativewebp"
	"golang.org/x/image/draw"
)

// Format is an output encoding.
type Format string

const (
	FormatPNG  Format = "png"
	FormatWebP Format = "webp"
)

// Snapshot errors.
var (
	ErrUnknownFormat = errors.New("unknown snapshot format")
	ErrEmptyImage    = errors.New("empty image")
)

// ParseFormat parses "png" or "webp".
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatPNG, FormatWebP:
		return f, nil
	case "":
		return FormatPNG, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// Writer saves frames as numbered, timestamped files.
// Width and Height, when both set, resize each frame before encoding.
type Writer struct {
	Dir    string
	Prefix string
	Format Format
	Width  int
	Height int

	seq int
}

// Save encodes img and returns the file path. A failed encode leaves no
// file behind.
func (w *Writer) Save(img image.Image) (string, error) {
	if isEmpty(img) {
		return "", ErrEmptyImage
	}
	if w.Dir != "" {
		if err := os.MkdirAll(w.Dir, 0755); err != nil {
			return "", fmt.Errorf("creating output dir: %w", err)
		}
	}

	if w.Width > 0 && w.Height > 0 {
		img = Resize(img, w.Width, w.Height)
	}

	filename := w.nextFilename()
	file, err := os.Create(filename)
	if err != nil {
		return "", fmt.Errorf("creating file: %w", err)
	}
	if err := w.encode(file, img); err != nil {
		file.Close()
		os.Remove(filename)
		return "", err
	}
	if err := file.Close(); err != nil {
		os.Remove(filename)
		return "", fmt.Errorf("closing file: %w", err)
	}
	return filename, nil
}

func (w *Writer) encode(out io.Writer, img image.Image) error {
	switch w.format() {
	case FormatWebP:
		if err := nativewebp.Encode(out, img, nil); err != nil {
			return fmt.Errorf("encoding WebP: %w", err)
		}
	default:
		if err := png.Encode(out, img); err != nil {
			return fmt.Errorf("encoding PNG: %w", err)
		}
	}
	return nil
}

// isEmpty reports a missing image, including a nil *image.NRGBA from
// FromBottomUpRGBA, or one with no pixels.
func isEmpty(img image.Image) bool {
	if img == nil {
		return true
	}
	if p, ok := img.(*image.NRGBA); ok && p == nil {
		return true
	}
	return img.Bounds().Empty()
}

func (w *Writer) format() Format {
	if w.Format == "" {
		return FormatPNG
	}
	return w.Format
}

func (w *Writer) nextFilename() string {
	w.seq++
	prefix := w.Prefix
	if prefix == "" {
		prefix = "frame"
	}
	timestamp := time.Now().Format("2006-01-02_15-04-05")
	filename := fmt.Sprintf("%s_%s_%04d.%s", prefix, timestamp, w.seq, w.format())
	if w.Dir != "" {
		filename = filepath.Join(w.Dir, filename)
	}
	return filename
}

// Resize scales img to width x height with CatmullRom filtering.
// An image already at that size is returned unchanged.
func Resize(img image.Image, width, height int) image.Image {
	b := img.Bounds()
	if b.Dx() == width && b.Dy() == height {
		return img
	}
	dst := image.NewNRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// FromBottomUpRGBA converts rows read back from OpenGL, which start at the
// bottom-left, into a top-down image. It returns nil when pixels is not
// width*height*4 bytes.
func FromBottomUpRGBA(pixels []byte, width, height int) *image.NRGBA {
	if width <= 0 || height <= 0 || len(pixels) != width*height*4 {
		return nil
	}
	img := image.NewNRGBA(image.Rect(0, 0, width, height))

	rowSize := width * 4
	for y := 0; y < height; y++ {
		srcOffset := (height - 1 - y) * rowSize
		dstOffset := y * img.Stride
		copy(img.Pix[dstOffset:dstOffset+rowSize], pixels[srcOffset:srcOffset+rowSize])
	}
	return img
}
