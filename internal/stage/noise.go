package stage

import (
	"math/rand"

	"github.com/MeKo-Tech/smudge/internal/dataset"
	"github.com/MeKo-Tech/smudge/internal/sampler"
	"github.com/disintegration/imaging"
)

// GaussianNoise adds per-pixel zero-mean-style perturbation drawn from a
// normal distribution whose mean offset and standard deviation are sampled
// from the configured ranges. Output intensities are clamped to [0,255].
type GaussianNoise struct {
	Mean   sampler.Range
	Stddev sampler.Range
}

func (s GaussianNoise) Kind() Kind { return KindGaussianNoise }

func (s GaussianNoise) Apply(in dataset.Annotated, rng *rand.Rand) (dataset.Annotated, error) {
	mean := s.Mean.Sample(rng)
	std := s.Stddev.Sample(rng)

	out := imaging.Clone(in.Image)
	for i := 0; i < len(out.Pix); i += 4 {
		n := rng.NormFloat64()*std + mean
		for c := range 3 {
			out.Pix[i+c] = clampByte(float64(out.Pix[i+c]) + n)
		}
	}
	return photometric(in, out), nil
}

// Speckle applies multiplicative noise: pixel' = pixel * (1 + n) with n
// drawn per pixel from a normal distribution.
type Speckle struct {
	Mean   sampler.Range
	Stddev sampler.Range
}

func (s Speckle) Kind() Kind { return KindSpeckle }

func (s Speckle) Apply(in dataset.Annotated, rng *rand.Rand) (dataset.Annotated, error) {
	mean := s.Mean.Sample(rng)
	std := s.Stddev.Sample(rng)

	out := imaging.Clone(in.Image)
	for i := 0; i < len(out.Pix); i += 4 {
		n := rng.NormFloat64()*std + mean
		for c := range 3 {
			v := float64(out.Pix[i+c])
			out.Pix[i+c] = clampByte(v + v*n)
		}
	}
	return photometric(in, out), nil
}

// SaltPepper independently flips each pixel to full white or full black.
// Amount is the per-pixel flip probability; SaltVsPepper is the fraction of
// flipped pixels that become salt (white) rather than pepper (black).
type SaltPepper struct {
	Amount       sampler.Range
	SaltVsPepper sampler.Range
}

func (s SaltPepper) Kind() Kind { return KindSaltPepper }

func (s SaltPepper) Apply(in dataset.Annotated, rng *rand.Rand) (dataset.Annotated, error) {
	amount := s.Amount.Sample(rng)
	ratio := s.SaltVsPepper.Sample(rng)

	out := imaging.Clone(in.Image)
	for i := 0; i < len(out.Pix); i += 4 {
		if rng.Float64() >= amount {
			continue
		}
		var v uint8
		if rng.Float64() < ratio {
			v = 255
		}
		out.Pix[i] = v
		out.Pix[i+1] = v
		out.Pix[i+2] = v
	}
	return photometric(in, out), nil
}
