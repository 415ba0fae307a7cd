package dataset

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	// Register decoders for the supported clear-image formats.
	_ "image/jpeg"
	_ "image/png"

	_ "github.com/chai2010/webp"
	_ "golang.org/x/image/bmp"
)

// IOError wraps a failure while reading or writing dataset files.
type IOError struct {
	Operation string
	Path      string
	Err       error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("dataset %s %s: %v", e.Operation, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// SupportedImageExtensions lists supported file extensions for loading.
var SupportedImageExtensions = []string{".jpg", ".jpeg", ".png", ".bmp", ".webp"}

// IsSupportedImage reports whether the path has a supported image extension.
func IsSupportedImage(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, s := range SupportedImageExtensions {
		if ext == s {
			return true
		}
	}
	return false
}

// LoadImage opens and decodes a clear source image.
func LoadImage(path string) (image.Image, error) {
	if !IsSupportedImage(path) {
		return nil, &IOError{Operation: "load", Path: path, Err: errors.New("unsupported image format")}
	}
	f, err := os.Open(path) //nolint:gosec // G304: reading a user-provided image path is expected
	if err != nil {
		return nil, &IOError{Operation: "load", Path: path, Err: err}
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			fmt.Fprintf(os.Stderr, "Error closing image file: %v\n", cerr)
		}
	}()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, &IOError{Operation: "decode", Path: path, Err: err}
	}
	return img, nil
}

// SavePNG writes an image as PNG.
func SavePNG(path string, img image.Image) error {
	f, err := os.Create(path) //nolint:gosec // G304: writing to a user-chosen output path is expected
	if err != nil {
		return &IOError{Operation: "save", Path: path, Err: err}
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return &IOError{Operation: "encode", Path: path, Err: err}
	}
	if err := f.Close(); err != nil {
		return &IOError{Operation: "save", Path: path, Err: err}
	}
	return nil
}
