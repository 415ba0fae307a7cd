package stage

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/MeKo-Tech/smudge/internal/dataset"
	"github.com/MeKo-Tech/smudge/internal/geometry"
	"github.com/MeKo-Tech/smudge/internal/sampler"
	"github.com/disintegration/imaging"
)

// resampleFilters are the interpolations drawn from at random, simulating
// the varied resampling quality of low-resolution capture.
var resampleFilters = []imaging.ResampleFilter{
	imaging.Box,
	imaging.Linear,
	imaging.CatmullRom,
}

// Resize scales the image by a single scalar factor sampled from the
// configured range and applies the same scale to every word coordinate.
type Resize struct {
	Factor sampler.Range
}

func (s Resize) Kind() Kind { return KindResize }

func (s Resize) Apply(in dataset.Annotated, rng *rand.Rand) (dataset.Annotated, error) {
	f := s.Factor.Sample(rng)
	if f <= 0 {
		return dataset.Annotated{}, fmt.Errorf("resize: non-positive factor %v", f)
	}

	newW := int(math.Round(float64(in.Width) * f))
	newH := int(math.Round(float64(in.Height) * f))
	if newW < 1 {
		newW = 1
	}
	if newH < 1 {
		newH = 1
	}

	filter := resampleFilters[rng.Intn(len(resampleFilters))]
	img := imaging.Resize(in.Image, newW, newH, filter)

	// Scale coordinates by the realized ratios so rounding of the canvas
	// size never drifts the annotations away from the pixels.
	sx := float64(newW) / float64(in.Width)
	sy := float64(newH) / float64(in.Height)
	words := dataset.TransformWords(in.Words, newW, newH, func(p geometry.Point) geometry.Point {
		return geometry.ScalePoint(p, sx, sy)
	})

	return dataset.Annotated{Image: img, Words: words, Width: newW, Height: newH}, nil
}
