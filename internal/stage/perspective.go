package stage

import (
	"math"
	"math/rand"

	"github.com/MeKo-Tech/smudge/internal/dataset"
	"github.com/MeKo-Tech/smudge/internal/geometry"
	"github.com/MeKo-Tech/smudge/internal/sampler"
)

// Perspective applies a random small-magnitude projective distortion: each
// image corner is displaced by up to Jitter (a fraction of the smaller
// canvas dimension), and the resulting homography is applied identically to
// the pixels and to every word corner. The canvas size is unchanged.
type Perspective struct {
	Jitter sampler.Range
}

func (s Perspective) Kind() Kind { return KindPerspective }

func (s Perspective) Apply(in dataset.Annotated, rng *rand.Rand) (dataset.Annotated, error) {
	maxShift := s.Jitter.Sample(rng) * math.Min(float64(in.Width), float64(in.Height))

	srcQuad := [4]geometry.Point{
		{X: 0, Y: 0},
		{X: float64(in.Width - 1), Y: 0},
		{X: float64(in.Width - 1), Y: float64(in.Height - 1)},
		{X: 0, Y: float64(in.Height - 1)},
	}
	var dstQuad [4]geometry.Point
	for i, p := range srcQuad {
		dstQuad[i] = geometry.Point{
			X: p.X + uniform(rng, -maxShift, maxShift),
			Y: p.Y + uniform(rng, -maxShift, maxShift),
		}
	}

	fwd, ok := geometry.ComputeHomography(srcQuad, dstQuad)
	if !ok {
		// Degenerate corner draw; leave the sample untouched.
		return dataset.NewAnnotated(in.Image, in.Words), nil
	}
	inv, ok := geometry.ComputeHomography(dstQuad, srcQuad)
	if !ok {
		return dataset.NewAnnotated(in.Image, in.Words), nil
	}

	img := warpInverse(in.Image, inv, in.Width, in.Height)
	words := dataset.TransformWords(in.Words, in.Width, in.Height, func(p geometry.Point) geometry.Point {
		return fwd.Apply(p)
	})

	return dataset.Annotated{Image: img, Words: words, Width: in.Width, Height: in.Height}, nil
}

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	if lo == hi {
		return lo
	}
	return lo + rng.Float64()*(hi-lo)
}
