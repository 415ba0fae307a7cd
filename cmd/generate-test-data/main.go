// Command generate-test-data renders a small clear annotated dataset that
// the degrade command can consume, for local testing without a real text
// renderer.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/MeKo-Tech/smudge/internal/dataset"
	"github.com/MeKo-Tech/smudge/internal/testutil"
)

var samplePages = []string{
	"The quick brown fox jumps over the lazy dog",
	"Pack my box with five dozen liquor jugs",
	"Sphinx of black quartz judge my vow",
	"How vexingly quick daft zebras jump",
}

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	var (
		outputDir = flag.String("output", "testdata/clear", "Output directory for the clear dataset")
		count     = flag.Int("count", len(samplePages), "Number of pages to render")
		width     = flag.Int("width", 320, "Page width in pixels")
		height    = flag.Int("height", 240, "Page height in pixels")
		help      = flag.Bool("h", false, "Show help")
	)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [OPTIONS]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Generate a clear annotated dataset for smudge testing.\n\n")
		fmt.Fprintf(os.Stderr, "OPTIONS:\n")
		flag.PrintDefaults()
	}

	flag.Parse()

	if *help {
		flag.Usage()
		return
	}

	if err := run(*outputDir, *count, *width, *height); err != nil {
		slog.Error("Test data generation failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Test data generation completed", "output", *outputDir)
}

func run(outputDir string, count, width, height int) error {
	imagesDir := filepath.Join(outputDir, "images")
	if err := os.MkdirAll(imagesDir, 0o750); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	index := make(dataset.Index, count)
	for i := range count {
		cfg := testutil.DefaultTextImageConfig()
		cfg.Text = samplePages[i%len(samplePages)]
		cfg.Width = width
		cfg.Height = height

		annotated := testutil.GenerateAnnotatedText(cfg)
		name := fmt.Sprintf("page_%03d.png", i)
		if err := dataset.SavePNG(filepath.Join(imagesDir, name), annotated.Image); err != nil {
			return err
		}

		index[name] = dataset.ImageAnnotation{
			Width:  annotated.Width,
			Height: annotated.Height,
			Words:  dataset.WordsJSON(annotated.Words),
		}
		slog.Info("Rendered page", "name", name, "words", len(annotated.Words))
	}

	data, err := json.MarshalIndent(index, "", "    ")
	if err != nil {
		return fmt.Errorf("marshal annotation index: %w", err)
	}
	if err := os.WriteFile(filepath.Join(outputDir, "annotations.json"), data, 0o600); err != nil {
		return fmt.Errorf("writing annotation index: %w", err)
	}
	return nil
}
