package compose

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif" // register GIF decoder
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"

	_ "golang.org/x/image/bmp"  // register BMP decoder
	_ "golang.org/x/image/tiff" // register TIFF decoder
	_ "golang.org/x/image/webp" // register WebP decoder
)

// I/O errors.
var (
	// ErrUnsupportedFormat is returned when no registered decoder accepts the data.
	ErrUnsupportedFormat = errors.New("compose: unsupported image format")

	// ErrEmptyData is returned when image data is empty.
	ErrEmptyData = errors.New("compose: empty image data")
)

// LoadImage reads and decodes an image file. Supported formats: PNG, JPEG,
// GIF, BMP, TIFF and WebP. Failures are *RenderError values naming path.
func LoadImage(path string) (*Image, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, &RenderError{Resource: path, Err: err}
	}
	defer func() { _ = f.Close() }()

	return DecodeImage(f, path)
}

// LoadImageFromBytes decodes an in-memory image. name is used in errors.
func LoadImageFromBytes(data []byte, name string) (*Image, error) {
	if len(data) == 0 {
		return nil, &RenderError{Resource: name, Err: ErrEmptyData}
	}
	return DecodeImage(bytes.NewReader(data), name)
}

// DecodeImage decodes an image from r, auto-detecting the format.
func DecodeImage(r io.Reader, name string) (*Image, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		if errors.Is(err, image.ErrFormat) {
			err = ErrUnsupportedFormat
		}
		return nil, &RenderError{Resource: name, Err: err}
	}
	Logger().Debug("compose: decoded image", "name", name, "format", format,
		"width", img.Bounds().Dx(), "height", img.Bounds().Dy())

	return FromStdImage(img), nil
}

// SavePNG saves the image as a PNG file.
func (img *Image) SavePNG(path string) error {
	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("compose: create file: %w", err)
	}

	if err := img.EncodePNG(f); err != nil {
		_ = f.Close()
		return err
	}

	return f.Close()
}

// EncodePNG encodes the image as PNG to w.
func (img *Image) EncodePNG(w io.Writer) error {
	if err := png.Encode(w, img.rgba); err != nil {
		return fmt.Errorf("compose: encode PNG: %w", err)
	}
	return nil
}

// EncodeJPEG encodes the image as JPEG with the given quality (1-100).
// Transparency is lost.
func (img *Image) EncodeJPEG(w io.Writer, quality int) error {
	quality = min(max(quality, 1), 100)
	if err := jpeg.Encode(w, img.rgba, &jpeg.Options{Quality: quality}); err != nil {
		return fmt.Errorf("compose: encode JPEG: %w", err)
	}
	return nil
}
