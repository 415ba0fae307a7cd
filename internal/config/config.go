// Package config holds the smudge configuration surface: which degradation
// stages run, their parameter ranges, the random seed, OCR validation
// settings and batch output options. Loading goes through viper so values
// come from flags, environment variables or a config file.
package config

import (
	"fmt"

	"github.com/MeKo-Tech/smudge/internal/sampler"
)

// Config is the complete configuration for a degradation run.
type Config struct {
	// Global settings
	LogLevel string `mapstructure:"log_level" yaml:"log_level" json:"log_level"`
	Verbose  bool   `mapstructure:"verbose" yaml:"verbose" json:"verbose"`

	// Input dataset
	ImagesDir   string `mapstructure:"images_dir" yaml:"images_dir" json:"images_dir"`
	Annotations string `mapstructure:"annotations" yaml:"annotations" json:"annotations"`

	// Output
	OutputDir string `mapstructure:"output_dir" yaml:"output_dir" json:"output_dir"`
	Count     int    `mapstructure:"count" yaml:"count" json:"count"`

	// Reproducibility and parallelism
	Seed    int64 `mapstructure:"seed" yaml:"seed" json:"seed"`
	Workers int   `mapstructure:"workers" yaml:"workers" json:"workers"`

	// Degradation stages
	Stages StagesConfig `mapstructure:"stages" yaml:"stages" json:"stages"`

	// OCR validation
	OCR OCRConfig `mapstructure:"ocr" yaml:"ocr" json:"ocr"`
}

// StagesConfig gates and parameterizes every degradation stage. The stage
// application order is fixed by the pipeline (photometric before geometric);
// this struct only decides which stages run and with which ranges.
type StagesConfig struct {
	GaussianNoise GaussianNoiseConfig `mapstructure:"gaussian_noise" yaml:"gaussian_noise" json:"gaussian_noise"`
	Speckle       SpeckleConfig       `mapstructure:"speckle" yaml:"speckle" json:"speckle"`
	SaltPepper    SaltPepperConfig    `mapstructure:"salt_pepper" yaml:"salt_pepper" json:"salt_pepper"`
	GaussianBlur  RadiusStageConfig   `mapstructure:"gaussian_blur" yaml:"gaussian_blur" json:"gaussian_blur"`
	BoxBlur       RadiusStageConfig   `mapstructure:"box_blur" yaml:"box_blur" json:"box_blur"`
	MaxFilter     RadiusStageConfig   `mapstructure:"max_filter" yaml:"max_filter" json:"max_filter"`
	MinFilter     RadiusStageConfig   `mapstructure:"min_filter" yaml:"min_filter" json:"min_filter"`
	Resize        ResizeConfig        `mapstructure:"resize" yaml:"resize" json:"resize"`
	Rotate        RotateConfig        `mapstructure:"rotate" yaml:"rotate" json:"rotate"`
	Perspective   PerspectiveConfig   `mapstructure:"perspective" yaml:"perspective" json:"perspective"`
}

// GaussianNoiseConfig parameterizes additive Gaussian noise.
type GaussianNoiseConfig struct {
	Enabled bool          `mapstructure:"enabled" yaml:"enabled" json:"enabled"`
	Mean    sampler.Range `mapstructure:"mean" yaml:"mean" json:"mean"`
	Stddev  sampler.Range `mapstructure:"stddev" yaml:"stddev" json:"stddev"`
}

// SpeckleConfig parameterizes multiplicative speckle noise.
type SpeckleConfig struct {
	Enabled bool          `mapstructure:"enabled" yaml:"enabled" json:"enabled"`
	Mean    sampler.Range `mapstructure:"mean" yaml:"mean" json:"mean"`
	Stddev  sampler.Range `mapstructure:"stddev" yaml:"stddev" json:"stddev"`
}

// SaltPepperConfig parameterizes salt-and-pepper noise.
type SaltPepperConfig struct {
	Enabled      bool          `mapstructure:"enabled" yaml:"enabled" json:"enabled"`
	Amount       sampler.Range `mapstructure:"amount" yaml:"amount" json:"amount"`
	SaltVsPepper sampler.Range `mapstructure:"salt_vs_pepper" yaml:"salt_vs_pepper" json:"salt_vs_pepper"`
}

// RadiusStageConfig parameterizes kernel-radius stages (blurs and the
// min/max rank filters).
type RadiusStageConfig struct {
	Enabled bool             `mapstructure:"enabled" yaml:"enabled" json:"enabled"`
	Radius  sampler.IntRange `mapstructure:"radius" yaml:"radius" json:"radius"`
}

// ResizeConfig parameterizes the downscale/resize stage.
type ResizeConfig struct {
	Enabled bool          `mapstructure:"enabled" yaml:"enabled" json:"enabled"`
	Factor  sampler.Range `mapstructure:"factor" yaml:"factor" json:"factor"`
}

// RotateConfig parameterizes rotation about the image center.
type RotateConfig struct {
	Enabled bool `mapstructure:"enabled" yaml:"enabled" json:"enabled"`
	// MaxDegrees bounds the sampled angle to [-MaxDegrees, MaxDegrees].
	MaxDegrees float64 `mapstructure:"max_degrees" yaml:"max_degrees" json:"max_degrees"`
}

// AngleRange returns the sampled-angle range implied by MaxDegrees.
func (c RotateConfig) AngleRange() sampler.Range {
	return sampler.NewRange(-c.MaxDegrees, c.MaxDegrees)
}

// PerspectiveConfig parameterizes the random projective distortion.
type PerspectiveConfig struct {
	Enabled bool `mapstructure:"enabled" yaml:"enabled" json:"enabled"`
	// Jitter is the maximum corner displacement as a fraction of the
	// smaller canvas dimension.
	Jitter sampler.Range `mapstructure:"jitter" yaml:"jitter" json:"jitter"`
}

// OCRConfig controls the optional external-engine validation step.
type OCRConfig struct {
	Enabled       bool   `mapstructure:"enabled" yaml:"enabled" json:"enabled"`
	TesseractPath string `mapstructure:"tesseract_path" yaml:"tesseract_path" json:"tesseract_path"`
	TimeoutSec    int    `mapstructure:"timeout_sec" yaml:"timeout_sec" json:"timeout_sec"`
}

// Validate checks the configuration for errors that must abort before any
// job runs: inverted ranges, negative radii, bad counts.
func (c *Config) Validate() error {
	if c.Count < 0 {
		return fmt.Errorf("count must be non-negative, got %d", c.Count)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must be non-negative, got %d", c.Workers)
	}
	if c.OCR.TimeoutSec < 0 {
		return fmt.Errorf("ocr timeout must be non-negative, got %d", c.OCR.TimeoutSec)
	}
	return c.Stages.Validate()
}

// Validate checks every stage's parameter ranges.
func (s *StagesConfig) Validate() error {
	if err := s.GaussianNoise.Mean.Validate("gaussian noise mean"); err != nil {
		return err
	}
	if err := s.GaussianNoise.Stddev.ValidateNonNegative("gaussian noise stddev"); err != nil {
		return err
	}
	if err := s.Speckle.Mean.Validate("speckle mean"); err != nil {
		return err
	}
	if err := s.Speckle.Stddev.ValidateNonNegative("speckle stddev"); err != nil {
		return err
	}
	if err := s.SaltPepper.Amount.ValidateNonNegative("salt-pepper amount"); err != nil {
		return err
	}
	if err := s.SaltPepper.SaltVsPepper.Validate("salt-vs-pepper ratio"); err != nil {
		return err
	}
	if err := s.GaussianBlur.Radius.Validate("gaussian blur radius"); err != nil {
		return err
	}
	if err := s.BoxBlur.Radius.Validate("box blur radius"); err != nil {
		return err
	}
	if err := s.MaxFilter.Radius.Validate("max filter radius"); err != nil {
		return err
	}
	if err := s.MinFilter.Radius.Validate("min filter radius"); err != nil {
		return err
	}
	if err := s.Resize.Factor.Validate("resize factor"); err != nil {
		return err
	}
	if s.Resize.Enabled && s.Resize.Factor.Min <= 0 {
		return fmt.Errorf("invalid resize factor range: must be positive, got min %v", s.Resize.Factor.Min)
	}
	if s.Rotate.MaxDegrees < 0 {
		return fmt.Errorf("rotate max degrees must be non-negative, got %v", s.Rotate.MaxDegrees)
	}
	if err := s.Perspective.Jitter.ValidateNonNegative("perspective jitter"); err != nil {
		return err
	}
	return nil
}
