// Package batch drives degradation over a whole dataset: it cycles the
// clear input images up to the requested sample count, runs the pipeline on
// a worker pool with a deterministic per-job random stream, optionally
// validates each degraded sample against the OCR engine, and writes the
// degraded images plus the output annotation index.
package batch

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/disintegration/imaging"

	"github.com/MeKo-Tech/smudge/internal/config"
	"github.com/MeKo-Tech/smudge/internal/dataset"
	"github.com/MeKo-Tech/smudge/internal/metrics"
	"github.com/MeKo-Tech/smudge/internal/ocr"
	"github.com/MeKo-Tech/smudge/internal/pipeline"
	"github.com/MeKo-Tech/smudge/internal/sampler"
)

// maxReportablePSNR caps the serialized fidelity score. An identical image
// pair scores +Inf, which JSON cannot carry.
const maxReportablePSNR = 100.0

// imagesSubdir is where degraded rasters go inside the output directory.
const imagesSubdir = "images"

// annotationsFile is the output index filename.
const annotationsFile = "annotations.json"

// JobError records one failed job. Failures never abort the batch.
type JobError struct {
	Job    int
	Source string
	Err    error
}

func (e JobError) Error() string {
	return fmt.Sprintf("job %d (%s): %v", e.Job, e.Source, e.Err)
}

// Summary reports what a batch run produced.
type Summary struct {
	Jobs      int
	Succeeded int
	Failed    int
	Validated int
	Errors    []JobError
	Elapsed   time.Duration
}

// Runner executes degradation batches.
type Runner struct {
	cfg       *config.Config
	pipe      *pipeline.Pipeline
	validator *ocr.Validator
	logger    *slog.Logger
}

// NewRunner builds a batch runner from a validated configuration.
func NewRunner(cfg *config.Config, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	var validator *ocr.Validator
	if cfg.OCR.Enabled {
		validator = ocr.NewValidator(cfg.OCR.TesseractPath, time.Duration(cfg.OCR.TimeoutSec)*time.Second)
	}
	return &Runner{
		cfg:       cfg,
		pipe:      pipeline.FromConfig(cfg.Stages),
		validator: validator,
		logger:    logger,
	}
}

type job struct {
	index  int
	source string
}

type jobResult struct {
	index  int
	name   string
	result dataset.Result
	err    error
}

// Run executes the batch. The input index's filenames are cycled in sorted
// order until the configured sample count is reached, so results are
// reproducible regardless of worker count.
func (r *Runner) Run(ctx context.Context) (*Summary, error) {
	start := time.Now()

	index, err := dataset.LoadIndex(r.cfg.Annotations)
	if err != nil {
		return nil, err
	}
	names := index.Names()
	if len(names) == 0 {
		return nil, fmt.Errorf("annotation index %s contains no images", r.cfg.Annotations)
	}

	if err := os.MkdirAll(filepath.Join(r.cfg.OutputDir, imagesSubdir), 0o750); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	workers := r.cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	if r.validator != nil && !r.validator.Available() {
		r.logger.Warn("ocr engine not found, skipping validation",
			"engine", r.cfg.OCR.TesseractPath)
		r.validator = nil
	}

	jobs := make(chan job, r.cfg.Count)
	results := make(chan jobResult, r.cfg.Count)

	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				select {
				case <-ctx.Done():
					return
				default:
				}
				name, res, err := r.runJob(ctx, j, index)
				results <- jobResult{index: j.index, name: name, result: res, err: err}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for i := 0; i < r.cfg.Count; i++ {
			select {
			case jobs <- job{index: i, source: names[i%len(names)]}:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	summary := &Summary{Jobs: r.cfg.Count}
	out := make(dataset.ResultIndex, r.cfg.Count)
	for res := range results {
		if res.err != nil {
			summary.Failed++
			summary.Errors = append(summary.Errors, JobError{
				Job:    res.index,
				Source: res.result.SourceImage,
				Err:    res.err,
			})
			r.logger.Warn("job failed", "job", res.index, "error", res.err)
			continue
		}
		summary.Succeeded++
		if res.result.TesseractRelativeError != nil {
			summary.Validated++
		}
		out[res.name] = res.result
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := out.Save(filepath.Join(r.cfg.OutputDir, annotationsFile)); err != nil {
		return nil, err
	}

	summary.Elapsed = time.Since(start)
	r.logger.Info("batch complete",
		"jobs", summary.Jobs,
		"succeeded", summary.Succeeded,
		"failed", summary.Failed,
		"validated", summary.Validated,
		"elapsed", summary.Elapsed)
	return summary, nil
}

// runJob degrades one sample. The random stream is derived from the global
// seed and the job index so the result does not depend on scheduling.
func (r *Runner) runJob(ctx context.Context, j job, index dataset.Index) (string, dataset.Result, error) {
	name := fmt.Sprintf("degraded_%05d.png", j.index)

	img, err := dataset.LoadImage(filepath.Join(r.cfg.ImagesDir, j.source))
	if err != nil {
		return name, dataset.Result{SourceImage: j.source}, err
	}

	annotated := dataset.NewAnnotated(img, index[j.source].ToWords())
	res, err := r.pipe.Run(annotated, sampler.JobRand(r.cfg.Seed, j.index))
	if err != nil {
		return name, dataset.Result{SourceImage: j.source}, err
	}

	gray := imaging.Grayscale(res.Degraded.Image)
	if err := dataset.SavePNG(filepath.Join(r.cfg.OutputDir, imagesSubdir, name), gray); err != nil {
		return name, dataset.Result{SourceImage: j.source}, err
	}

	result := dataset.Result{
		SourceImage: j.source,
		Width:       res.Degraded.Width,
		Height:      res.Degraded.Height,
		PSNR:        math.Min(res.PSNR, maxReportablePSNR),
		Words:       dataset.WordsJSON(res.Degraded.Words),
	}

	if r.validator != nil {
		r.validate(ctx, gray, res.Degraded, &result)
	}

	return name, result, nil
}

// validate recognizes the degraded image and scores it against the ground
// truth text. Engine failures only drop the validation fields.
func (r *Runner) validate(ctx context.Context, gray *image.NRGBA, degraded dataset.Annotated, result *dataset.Result) {
	text, err := r.validator.Recognize(ctx, gray)
	if err != nil {
		if errors.Is(err, ocr.ErrEngineUnavailable) {
			r.logger.Warn("ocr engine unavailable", "error", err)
		} else {
			r.logger.Warn("ocr validation failed", "source", result.SourceImage, "error", err)
		}
		return
	}

	result.TesseractOutput = strings.Split(text, "\n")
	relErr := metrics.RelativeEditDistance(degraded.Text(), text)
	result.TesseractRelativeError = &relErr
}
