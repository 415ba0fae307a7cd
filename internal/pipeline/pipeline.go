// Package pipeline composes degradation stages into a single run over one
// annotated image. The stage order is fixed: photometric stages (noise,
// blurs, rank filters) run first, then the geometric stages (resize,
// rotate, perspective). Disabled stages are left out of the chain entirely
// so they draw nothing from the random stream.
package pipeline

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/disintegration/imaging"

	"github.com/MeKo-Tech/smudge/internal/config"
	"github.com/MeKo-Tech/smudge/internal/dataset"
	"github.com/MeKo-Tech/smudge/internal/metrics"
	"github.com/MeKo-Tech/smudge/internal/stage"
)

// Result bundles the degraded annotated image with its fidelity score.
type Result struct {
	Degraded dataset.Annotated
	// PSNR between the source and the degraded image, measured before the
	// first border-introducing stage. +Inf when the images are identical.
	PSNR float64
}

// Pipeline applies an ordered chain of degradation stages.
type Pipeline struct {
	stages []stage.Stage
}

// New builds a pipeline from an explicit stage chain.
func New(stages ...stage.Stage) *Pipeline {
	return &Pipeline{stages: stages}
}

// FromConfig builds the canonical stage chain from the stages configuration.
// Only enabled stages are composed in.
func FromConfig(cfg config.StagesConfig) *Pipeline {
	var stages []stage.Stage
	if cfg.GaussianNoise.Enabled {
		stages = append(stages, stage.GaussianNoise{
			Mean:   cfg.GaussianNoise.Mean,
			Stddev: cfg.GaussianNoise.Stddev,
		})
	}
	if cfg.Speckle.Enabled {
		stages = append(stages, stage.Speckle{
			Mean:   cfg.Speckle.Mean,
			Stddev: cfg.Speckle.Stddev,
		})
	}
	if cfg.SaltPepper.Enabled {
		stages = append(stages, stage.SaltPepper{
			Amount:       cfg.SaltPepper.Amount,
			SaltVsPepper: cfg.SaltPepper.SaltVsPepper,
		})
	}
	if cfg.GaussianBlur.Enabled {
		stages = append(stages, stage.GaussianBlur{Radius: cfg.GaussianBlur.Radius})
	}
	if cfg.BoxBlur.Enabled {
		stages = append(stages, stage.BoxBlur{Radius: cfg.BoxBlur.Radius})
	}
	if cfg.MaxFilter.Enabled {
		stages = append(stages, stage.MaxFilter{Size: cfg.MaxFilter.Radius})
	}
	if cfg.MinFilter.Enabled {
		stages = append(stages, stage.MinFilter{Size: cfg.MinFilter.Radius})
	}
	if cfg.Resize.Enabled {
		stages = append(stages, stage.Resize{Factor: cfg.Resize.Factor})
	}
	if cfg.Rotate.Enabled {
		stages = append(stages, stage.Rotate{Angle: cfg.Rotate.AngleRange()})
	}
	if cfg.Perspective.Enabled {
		stages = append(stages, stage.Perspective{Jitter: cfg.Perspective.Jitter})
	}
	return New(stages...)
}

// Stages exposes the composed chain, in application order.
func (p *Pipeline) Stages() []stage.Stage {
	return p.stages
}

// Run applies the stage chain to one annotated image. Parameters are
// sampled from rng in stage order, one stage at a time. The fidelity score
// is taken just before the first stage that introduces border fill (rotate,
// perspective), because white borders would dominate the pixel comparison;
// with no such stage in the chain the score is taken at the end.
func (p *Pipeline) Run(in dataset.Annotated, rng *rand.Rand) (Result, error) {
	work := in
	psnr := math.Inf(1)
	scored := false

	for _, st := range p.stages {
		if !scored && stage.IntroducesBorders(st.Kind()) {
			v, err := p.score(in, work)
			if err != nil {
				return Result{}, err
			}
			psnr = v
			scored = true
		}

		out, err := st.Apply(work, rng)
		if err != nil {
			return Result{}, fmt.Errorf("stage %s: %w", st.Kind(), err)
		}
		work = out
	}

	if !scored {
		v, err := p.score(in, work)
		if err != nil {
			return Result{}, err
		}
		psnr = v
	}

	return Result{Degraded: work, PSNR: psnr}, nil
}

// score compares the working image against the source. A resized working
// image is resampled back to the source dimensions first so the comparison
// is pixel-aligned.
func (p *Pipeline) score(src, work dataset.Annotated) (float64, error) {
	img := work.Image
	if work.Width != src.Width || work.Height != src.Height {
		img = imaging.Resize(img, src.Width, src.Height, imaging.CatmullRom)
	}
	v, err := metrics.PSNR(src.Image, img)
	if err != nil {
		return 0, fmt.Errorf("scoring degraded image: %w", err)
	}
	return v, nil
}
