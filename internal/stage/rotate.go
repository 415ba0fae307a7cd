package stage

import (
	"image/color"
	"math/rand"

	"github.com/MeKo-Tech/smudge/internal/dataset"
	"github.com/MeKo-Tech/smudge/internal/geometry"
	"github.com/MeKo-Tech/smudge/internal/sampler"
	"github.com/disintegration/imaging"
)

// Rotate turns the image about its center by an angle (degrees) sampled from
// the configured range. The canvas grows to bound the rotated content (no
// cropping) and the uncovered regions are filled white, matching scanned
// paper. Word corners go through the same rotation plus the canvas offset.
type Rotate struct {
	Angle sampler.Range
}

func (s Rotate) Kind() Kind { return KindRotate }

func (s Rotate) Apply(in dataset.Annotated, rng *rand.Rand) (dataset.Annotated, error) {
	angle := s.Angle.Sample(rng)

	rotated := imaging.Rotate(in.Image, angle, color.White)
	b := rotated.Bounds()
	dstW, dstH := b.Dx(), b.Dy()

	words := dataset.TransformWords(in.Words, dstW, dstH, func(p geometry.Point) geometry.Point {
		return geometry.RotatePointCanvas(p, angle, in.Width, in.Height, dstW, dstH)
	})

	return dataset.Annotated{Image: rotated, Words: words, Width: dstW, Height: dstH}, nil
}
