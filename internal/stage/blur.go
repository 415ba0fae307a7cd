package stage

import (
	"math/rand"

	"github.com/MeKo-Tech/smudge/internal/dataset"
	"github.com/MeKo-Tech/smudge/internal/sampler"
)

// Gaussian blur and rank-filter sizes are picked on a step-2 grid
// (0,2,... and 1,3,...), box blur radii on a step-1 grid.
const (
	gaussianRadiusStep = 2
	boxRadiusStep      = 1
	rankSizeStep       = 2
)

// GaussianBlur convolves with a Gaussian kernel whose radius is sampled from
// the configured range.
type GaussianBlur struct {
	Radius sampler.IntRange
}

func (s GaussianBlur) Kind() Kind { return KindGaussianBlur }

func (s GaussianBlur) Apply(in dataset.Annotated, rng *rand.Rand) (dataset.Annotated, error) {
	r := s.Radius.Sample(rng, gaussianRadiusStep)
	return photometric(in, GaussianBlurImage(in.Image, r)), nil
}

// BoxBlur convolves with a uniform-weight kernel whose radius is sampled
// from the configured range.
type BoxBlur struct {
	Radius sampler.IntRange
}

func (s BoxBlur) Kind() Kind { return KindBoxBlur }

func (s BoxBlur) Apply(in dataset.Annotated, rng *rand.Rand) (dataset.Annotated, error) {
	r := s.Radius.Sample(rng, boxRadiusStep)
	return photometric(in, BoxBlurImage(in.Image, r)), nil
}

// MaxFilter dilates: each pixel becomes the neighborhood maximum over a
// window whose size is sampled from the configured range (odd sizes;
// size 1 is the identity).
type MaxFilter struct {
	Size sampler.IntRange
}

func (s MaxFilter) Kind() Kind { return KindMaxFilter }

func (s MaxFilter) Apply(in dataset.Annotated, rng *rand.Rand) (dataset.Annotated, error) {
	size := s.Size.Sample(rng, rankSizeStep)
	return photometric(in, MaxFilterImage(in.Image, size)), nil
}

// MinFilter erodes: each pixel becomes the neighborhood minimum.
type MinFilter struct {
	Size sampler.IntRange
}

func (s MinFilter) Kind() Kind { return KindMinFilter }

func (s MinFilter) Apply(in dataset.Annotated, rng *rand.Rand) (dataset.Annotated, error) {
	size := s.Size.Sample(rng, rankSizeStep)
	return photometric(in, MinFilterImage(in.Image, size)), nil
}
