package cmd

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/MeKo-Tech/smudge/internal/dataset"
	"github.com/MeKo-Tech/smudge/internal/stage"
)

// blurFilters maps filter names to the image operators they apply.
var blurFilters = map[string]func(image.Image, int) *image.NRGBA{
	"gaussian": stage.GaussianBlurImage,
	"box":      stage.BoxBlurImage,
	"min":      stage.MinFilterImage,
	"max":      stage.MaxFilterImage,
	"median":   stage.MedianFilterImage,
}

// blurCmd is a directory utility applying one fixed blur filter, outside the
// randomized pipeline.
var blurCmd = &cobra.Command{
	Use:   "blur <directory>",
	Short: "Blur images in a directory with a selected filter",
	Long: `Blur applies a single filter with a fixed radius to every supported
image in a directory (or to one file with --file). Output files are written
as PNG with the filter and radius in the name.

Available filters: gaussian, box, min, max, median.

Examples:
  smudge blur scans/ --filter gaussian --radius 2
  smudge blur scans/ --file page_003.png --filter median --radius 3
  smudge blur scans/ --filter box --radius 1 --output blurred/`,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE:         runBlurCommand,
}

func runBlurCommand(cmd *cobra.Command, args []string) error {
	inputDir := args[0]
	filterName, _ := cmd.Flags().GetString("filter")
	radius, _ := cmd.Flags().GetInt("radius")
	file, _ := cmd.Flags().GetString("file")
	outputDir, _ := cmd.Flags().GetString("output")

	filter, ok := blurFilters[strings.ToLower(filterName)]
	if !ok {
		return fmt.Errorf("invalid filter %q, must be one of gaussian, box, min, max, median", filterName)
	}
	if radius <= 0 {
		return fmt.Errorf("radius must be a positive integer, got %d", radius)
	}
	if info, err := os.Stat(inputDir); err != nil || !info.IsDir() {
		return fmt.Errorf("invalid images directory: %s", inputDir)
	}

	if outputDir == "" {
		outputDir = filepath.Join(inputDir, "blurred_images")
	}
	if err := os.MkdirAll(outputDir, 0o750); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	var candidates []string
	if file != "" {
		candidates = []string{filepath.Join(inputDir, file)}
	} else {
		entries, err := os.ReadDir(inputDir)
		if err != nil {
			return fmt.Errorf("reading images directory: %w", err)
		}
		for _, e := range entries {
			if !e.IsDir() && dataset.IsSupportedImage(e.Name()) {
				candidates = append(candidates, filepath.Join(inputDir, e.Name()))
			}
		}
	}

	processed := 0
	for _, path := range candidates {
		img, err := dataset.LoadImage(path)
		if err != nil {
			return err
		}
		base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		name := fmt.Sprintf("%s_%s_r%d.png", base, strings.ToLower(filterName), radius)
		if err := dataset.SavePNG(filepath.Join(outputDir, name), filter(img, radius)); err != nil {
			return err
		}
		processed++
	}

	if processed == 0 {
		return fmt.Errorf("no images found to process in %s", inputDir)
	}
	cmd.Printf("blurred %d image(s) into %s\n", processed, outputDir)
	return nil
}

func init() {
	blurCmd.Flags().String("filter", "gaussian", "blur filter (gaussian, box, min, max, median)")
	blurCmd.Flags().IntP("radius", "r", 1, "filter radius")
	blurCmd.Flags().String("file", "", "process a single file inside the directory")
	blurCmd.Flags().StringP("output", "o", "", "output directory (default <directory>/blurred_images)")

	rootCmd.AddCommand(blurCmd)
}
