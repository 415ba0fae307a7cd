package config

import (
	"runtime"

	"github.com/MeKo-Tech/smudge/internal/sampler"
)

// DefaultConfig returns the configuration used when no file, flag or
// environment variable overrides a value. The stage ranges produce mild
// document-scan degradation suitable for OCR training data.
func DefaultConfig() *Config {
	return &Config{
		LogLevel: "info",
		Verbose:  false,

		ImagesDir:   "images",
		Annotations: "annotations.json",
		OutputDir:   "degraded",
		Count:       100,

		Seed:    1,
		Workers: runtime.NumCPU(),

		Stages: StagesConfig{
			GaussianNoise: GaussianNoiseConfig{
				Enabled: true,
				Mean:    sampler.NewRange(0.5, 0.9),
				Stddev:  sampler.NewRange(0.05, 0.09),
			},
			Speckle: SpeckleConfig{
				Enabled: true,
				Mean:    sampler.Fixed(0.0),
				Stddev:  sampler.Fixed(0.001),
			},
			SaltPepper: SaltPepperConfig{
				Enabled:      true,
				Amount:       sampler.NewRange(0.0, 0.02),
				SaltVsPepper: sampler.NewRange(0.0, 1.0),
			},
			GaussianBlur: RadiusStageConfig{
				Enabled: true,
				Radius:  sampler.IntRange{Min: 0, Max: 2},
			},
			BoxBlur: RadiusStageConfig{
				Enabled: true,
				Radius:  sampler.IntRange{Min: 1, Max: 2},
			},
			MaxFilter: RadiusStageConfig{
				Enabled: true,
				Radius:  sampler.IntRange{Min: 1, Max: 3},
			},
			MinFilter: RadiusStageConfig{
				Enabled: true,
				Radius:  sampler.IntRange{Min: 1, Max: 3},
			},
			Resize: ResizeConfig{
				Enabled: true,
				Factor:  sampler.NewRange(0.66, 1.5),
			},
			Rotate: RotateConfig{
				Enabled:    true,
				MaxDegrees: 5.0,
			},
			Perspective: PerspectiveConfig{
				Enabled: false,
				Jitter:  sampler.NewRange(0.0, 0.02),
			},
		},

		OCR: OCRConfig{
			Enabled:       true,
			TesseractPath: "tesseract",
			TimeoutSec:    30,
		},
	}
}
