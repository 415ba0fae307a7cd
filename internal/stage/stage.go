// Package stage implements the degradation operators composed into the
// pipeline: photometric noise and filtering plus the geometric transforms
// that must stay consistent with the word annotations.
package stage

import (
	"image"
	"math/rand"

	"github.com/MeKo-Tech/smudge/internal/dataset"
)

// Kind identifies a degradation operator.
type Kind string

const (
	KindGaussianNoise Kind = "gaussian_noise"
	KindSpeckle       Kind = "speckle"
	KindSaltPepper    Kind = "salt_pepper"
	KindGaussianBlur  Kind = "gaussian_blur"
	KindBoxBlur       Kind = "box_blur"
	KindMaxFilter     Kind = "max_filter"
	KindMinFilter     Kind = "min_filter"
	KindResize        Kind = "resize"
	KindRotate        Kind = "rotate"
	KindPerspective   Kind = "perspective"
)

// Stage is one degradation operator. Apply samples its parameters from rng,
// degrades the image, and maps the word annotations into the degraded image
// space. Stages never mutate their input; the caller receives a fresh value.
type Stage interface {
	Kind() Kind
	Apply(in dataset.Annotated, rng *rand.Rand) (dataset.Annotated, error)
}

// IntroducesBorders reports whether a stage fills canvas regions with
// background pixels that have no counterpart in the source (rotation growing
// the canvas, perspective warp). The fidelity score is taken before the
// first such stage so border fill does not dominate the metric.
func IntroducesBorders(k Kind) bool {
	return k == KindRotate || k == KindPerspective
}

// photometric rebuilds an Annotated around a degraded image that kept the
// canvas geometry unchanged. Words are deep-copied, never aliased.
func photometric(in dataset.Annotated, degraded *image.NRGBA) dataset.Annotated {
	return dataset.Annotated{
		Image:  degraded,
		Words:  dataset.CopyWords(in.Words),
		Width:  in.Width,
		Height: in.Height,
	}
}

func clampByte(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
