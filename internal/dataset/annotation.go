// Package dataset defines the annotated-image data model shared by the
// degradation pipeline and the batch driver, plus the JSON and raster I/O
// for reading clear samples and persisting degraded ones.
package dataset

import (
	"image"
	"strings"

	"github.com/MeKo-Tech/smudge/internal/geometry"
)

// Word is one annotated word: its text, the quadrilateral of its four
// corners, and the axis-aligned envelope of those corners. Box is always
// recomputed from Corners, never edited independently.
type Word struct {
	Text    string
	Corners []geometry.Point
	Box     geometry.Box
}

// NewWord builds a Word with its box set to the envelope of the corners.
func NewWord(text string, corners []geometry.Point) Word {
	return Word{
		Text:    text,
		Corners: append([]geometry.Point(nil), corners...),
		Box:     geometry.BoundingBox(corners),
	}
}

// Annotated couples an image with its word annotations. Word order is stable
// across transforms so the same index refers to the same physical word.
type Annotated struct {
	Image  image.Image
	Words  []Word
	Width  int
	Height int
}

// NewAnnotated builds an Annotated from an image and words, taking the
// canvas dimensions from the image bounds.
func NewAnnotated(img image.Image, words []Word) Annotated {
	b := img.Bounds()
	return Annotated{
		Image:  img,
		Words:  CopyWords(words),
		Width:  b.Dx(),
		Height: b.Dy(),
	}
}

// CopyWords deep-copies a word slice so stages never alias annotations.
func CopyWords(words []Word) []Word {
	out := make([]Word, len(words))
	for i, w := range words {
		out[i] = NewWord(w.Text, w.Corners)
	}
	return out
}

// TransformWords maps every word's corners through fn into a w x h canvas,
// clamps them to the canvas and recomputes each envelope. Words whose clamped
// envelope collapses to zero area are dropped (fully cropped out).
func TransformWords(words []Word, w, h int, fn func(geometry.Point) geometry.Point) []Word {
	out := make([]Word, 0, len(words))
	for _, word := range words {
		corners := make([]geometry.Point, len(word.Corners))
		for i, p := range word.Corners {
			corners[i] = geometry.ClampPoint(fn(p), w, h)
		}
		nw := NewWord(word.Text, corners)
		if nw.Box.Width() <= 0 || nw.Box.Height() <= 0 {
			continue
		}
		out = append(out, nw)
	}
	return out
}

// Text reconstructs the page text from the word annotations, one token per
// word followed by a form feed, the shape expected by the OCR validator.
func (a Annotated) Text() string {
	var sb strings.Builder
	for _, w := range a.Words {
		sb.WriteString(w.Text)
		if !strings.Contains(w.Text, "\n") {
			sb.WriteByte(' ')
		}
	}
	sb.WriteByte('\f')
	return sb.String()
}
