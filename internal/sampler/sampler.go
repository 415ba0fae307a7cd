// Package sampler draws randomized stage parameters from configured ranges.
//
// Every degradation job owns its own random stream derived from the global
// seed and the job index, so results are reproducible regardless of worker
// scheduling.
package sampler

import (
	"fmt"
	"math/rand"
)

// Range bounds a uniformly sampled float parameter.
// A degenerate range (Min == Max) pins the parameter to a fixed value.
type Range struct {
	Min float64 `mapstructure:"min" yaml:"min" json:"min"`
	Max float64 `mapstructure:"max" yaml:"max" json:"max"`
}

// NewRange constructs a Range.
func NewRange(minVal, maxVal float64) Range {
	return Range{Min: minVal, Max: maxVal}
}

// Fixed constructs a degenerate Range pinning a single value.
func Fixed(v float64) Range {
	return Range{Min: v, Max: v}
}

// Validate rejects inverted ranges.
func (r Range) Validate(name string) error {
	if r.Min > r.Max {
		return fmt.Errorf("invalid %s range: min %v > max %v", name, r.Min, r.Max)
	}
	return nil
}

// ValidateNonNegative rejects inverted ranges and negative bounds.
func (r Range) ValidateNonNegative(name string) error {
	if err := r.Validate(name); err != nil {
		return err
	}
	if r.Min < 0 {
		return fmt.Errorf("invalid %s range: must be non-negative, got min %v", name, r.Min)
	}
	return nil
}

// Sample draws a uniform value from the range.
func (r Range) Sample(rng *rand.Rand) float64 {
	if r.Min == r.Max {
		return r.Min
	}
	return r.Min + rng.Float64()*(r.Max-r.Min)
}

// IntRange bounds an integer parameter picked on a step grid:
// Min, Min+step, ... up to Max.
type IntRange struct {
	Min int `mapstructure:"min" yaml:"min" json:"min"`
	Max int `mapstructure:"max" yaml:"max" json:"max"`
}

// Validate rejects inverted ranges and negative bounds.
func (r IntRange) Validate(name string) error {
	if r.Min > r.Max {
		return fmt.Errorf("invalid %s range: min %d > max %d", name, r.Min, r.Max)
	}
	if r.Min < 0 {
		return fmt.Errorf("invalid %s range: must be non-negative, got min %d", name, r.Min)
	}
	return nil
}

// Sample picks a value uniformly from {Min, Min+step, ..., <=Max}.
// A step below 1 is treated as 1.
func (r IntRange) Sample(rng *rand.Rand, step int) int {
	if step < 1 {
		step = 1
	}
	if r.Min >= r.Max {
		return r.Min
	}
	n := (r.Max-r.Min)/step + 1
	return r.Min + step*rng.Intn(n)
}

// jobStride spreads per-job seeds across the generator state space
// (64-bit golden ratio increment).
const jobStride = 0x9E3779B97F4A7C15

// JobRand returns the deterministic random stream for one job.
// Streams for distinct job indices are independent of worker scheduling.
func JobRand(seed int64, job int) *rand.Rand {
	derived := seed + int64(job+1)*int64(jobStride&0x7FFFFFFFFFFFFFFF)
	return rand.New(rand.NewSource(derived)) //nolint:gosec // reproducibility, not cryptography
}
