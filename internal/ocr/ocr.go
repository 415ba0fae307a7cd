// Package ocr validates degraded images against an external Tesseract
// binary. Degraded text must stay recognizable; the validator recognizes a
// degraded image and reports the text so the batch driver can score it
// against the ground truth. A missing or failing engine is reported, never
// fatal.
package ocr

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/MeKo-Tech/smudge/internal/dataset"
)

// ErrEngineUnavailable reports that the configured engine binary could not
// be found or executed at all.
var ErrEngineUnavailable = errors.New("ocr engine unavailable")

// DefaultTimeout bounds a single recognition call.
const DefaultTimeout = 30 * time.Second

// Validator runs an external Tesseract binary over images.
type Validator struct {
	enginePath string
	timeout    time.Duration
}

// NewValidator builds a validator for the given engine binary path. An empty
// path falls back to "tesseract" on PATH; a non-positive timeout falls back
// to DefaultTimeout.
func NewValidator(enginePath string, timeout time.Duration) *Validator {
	if enginePath == "" {
		enginePath = "tesseract"
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Validator{enginePath: enginePath, timeout: timeout}
}

// Available reports whether the engine binary can be resolved.
func (v *Validator) Available() bool {
	_, err := exec.LookPath(v.enginePath)
	return err == nil
}

// Recognize runs the engine over the image and returns the recognized text.
// The image is written to a temporary PNG because the engine reads files,
// not pipes. Returns ErrEngineUnavailable when the binary cannot be
// resolved.
func (v *Validator) Recognize(ctx context.Context, img image.Image) (string, error) {
	if _, err := exec.LookPath(v.enginePath); err != nil {
		return "", fmt.Errorf("%w: %s", ErrEngineUnavailable, v.enginePath)
	}

	tmpDir, err := os.MkdirTemp("", "smudge-ocr-*")
	if err != nil {
		return "", fmt.Errorf("creating ocr scratch dir: %w", err)
	}
	defer func() { _ = os.RemoveAll(tmpDir) }()

	tmpPath := filepath.Join(tmpDir, "input.png")
	if err := dataset.SavePNG(tmpPath, img); err != nil {
		return "", fmt.Errorf("writing ocr input: %w", err)
	}

	runCtx, cancel := context.WithTimeout(ctx, v.timeout)
	defer cancel()

	// "stdout" makes tesseract print the recognized text instead of
	// writing an output file.
	cmd := exec.CommandContext(runCtx, v.enginePath, tmpPath, "stdout")
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if runCtx.Err() != nil {
			return "", fmt.Errorf("ocr engine timed out after %s: %w", v.timeout, runCtx.Err())
		}
		return "", fmt.Errorf("ocr engine failed: %w: %s", err, stderr.String())
	}

	return stdout.String(), nil
}
