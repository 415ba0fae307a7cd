// Package testutil generates synthetic annotated text images for tests and
// for the test-data generator command.
package testutil

import (
	"image"
	"image/color"
	"image/draw"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/MeKo-Tech/smudge/internal/dataset"
	"github.com/MeKo-Tech/smudge/internal/geometry"
)

// TextImageConfig holds configuration for generating annotated text images.
type TextImageConfig struct {
	Text       string
	Width      int
	Height     int
	Background color.Color
	Foreground color.Color
	FontFace   font.Face
}

// DefaultTextImageConfig returns a sensible default: black text on a white
// page, the shape OCR training data takes.
func DefaultTextImageConfig() TextImageConfig {
	return TextImageConfig{
		Text:       "Sample Text",
		Width:      320,
		Height:     240,
		Background: color.White,
		Foreground: color.Black,
		FontFace:   basicfont.Face7x13,
	}
}

// GenerateAnnotatedText renders the configured text onto a fresh canvas and
// returns it together with per-word annotations whose corners wrap each
// rendered word tightly.
func GenerateAnnotatedText(config TextImageConfig) dataset.Annotated {
	img := image.NewNRGBA(image.Rect(0, 0, config.Width, config.Height))
	draw.Draw(img, img.Bounds(), &image.Uniform{config.Background}, image.Point{}, draw.Src)

	drawer := &font.Drawer{
		Dst:  img,
		Src:  &image.Uniform{config.Foreground},
		Face: config.FontFace,
	}

	metrics := config.FontFace.Metrics()
	ascent := metrics.Ascent.Ceil()
	descent := metrics.Descent.Ceil()
	lineHeight := metrics.Height.Ceil() + 4

	var words []dataset.Word
	y := ascent + 10
	for _, line := range strings.Split(config.Text, "\n") {
		x := 10
		for _, token := range strings.Fields(line) {
			advance := drawer.MeasureString(token).Ceil()
			if x+advance > config.Width-10 {
				break
			}

			drawer.Dot = fixed.P(x, y)
			drawer.DrawString(token)

			words = append(words, dataset.NewWord(token, wordQuad(x, y, advance, ascent, descent)))
			x += advance + drawer.MeasureString(" ").Ceil()
		}
		y += lineHeight
		if y > config.Height-descent {
			break
		}
	}

	return dataset.NewAnnotated(img, words)
}

// wordQuad returns the clockwise corner quadrilateral of a word drawn with
// its baseline origin at (x, y).
func wordQuad(x, y, advance, ascent, descent int) []geometry.Point {
	x0 := float64(x)
	y0 := float64(y - ascent)
	x1 := float64(x + advance)
	y1 := float64(y + descent)
	return []geometry.Point{
		{X: x0, Y: y0},
		{X: x1, Y: y0},
		{X: x1, Y: y1},
		{X: x0, Y: y1},
	}
}
