package dataset

import (
	"image"
	"image/color"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSaveAndLoadImage(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.png")

	img := image.NewNRGBA(image.Rect(0, 0, 8, 6))
	for y := range 6 {
		for x := range 8 {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 30), G: uint8(y * 40), B: 128, A: 255})
		}
	}
	require.NoError(t, SavePNG(path, img))

	loaded, err := LoadImage(path)
	require.NoError(t, err)
	require.Equal(t, 8, loaded.Bounds().Dx())
	require.Equal(t, 6, loaded.Bounds().Dy())
}

func TestLoadImage_UnsupportedExtension(t *testing.T) {
	_, err := LoadImage(filepath.Join(t.TempDir(), "sample.tiff"))
	require.Error(t, err)
	var ioErr *IOError
	require.ErrorAs(t, err, &ioErr)
	require.Equal(t, "load", ioErr.Operation)
}

func TestLoadImage_Missing(t *testing.T) {
	_, err := LoadImage(filepath.Join(t.TempDir(), "missing.png"))
	require.Error(t, err)
}
