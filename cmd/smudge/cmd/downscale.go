package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/spf13/cobra"

	"github.com/MeKo-Tech/smudge/internal/dataset"
)

// resizeFilters maps interpolation names to imaging resampling filters.
var resizeFilters = map[string]imaging.ResampleFilter{
	"nearest": imaging.NearestNeighbor,
	"linear":  imaging.Linear,
	"area":    imaging.Box,
	"cubic":   imaging.CatmullRom,
}

// downscaleCmd resizes every image in a directory to a fixed target size,
// converting to grayscale on the way, for producing low-resolution variants
// of a dataset.
var downscaleCmd = &cobra.Command{
	Use:   "downscale <directory>",
	Short: "Resize images in a directory to a fixed target size",
	Long: `Downscale converts every supported image in a directory to grayscale
and resizes it to the target dimensions.

Available interpolations: nearest, linear, area, cubic.

Examples:
  smudge downscale scans/ --width 640 --height 480
  smudge downscale scans/ --width 320 --height 240 --interpolation area --output small/`,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE:         runDownscaleCommand,
}

func runDownscaleCommand(cmd *cobra.Command, args []string) error {
	imagesDir := args[0]
	width, _ := cmd.Flags().GetInt("width")
	height, _ := cmd.Flags().GetInt("height")
	interpolation, _ := cmd.Flags().GetString("interpolation")
	outputDir, _ := cmd.Flags().GetString("output")

	if width <= 0 || height <= 0 {
		return fmt.Errorf("target dimensions must be positive, got %dx%d", width, height)
	}
	filter, ok := resizeFilters[strings.ToLower(interpolation)]
	if !ok {
		return fmt.Errorf("invalid interpolation %q, must be one of nearest, linear, area, cubic", interpolation)
	}
	if info, err := os.Stat(imagesDir); err != nil || !info.IsDir() {
		return fmt.Errorf("invalid images directory: %s", imagesDir)
	}

	if outputDir == "" {
		outputDir = filepath.Join(filepath.Dir(filepath.Clean(imagesDir)), "downscaled_images")
	}
	if err := os.MkdirAll(outputDir, 0o750); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	entries, err := os.ReadDir(imagesDir)
	if err != nil {
		return fmt.Errorf("reading images directory: %w", err)
	}

	processed := 0
	for _, e := range entries {
		if e.IsDir() || !dataset.IsSupportedImage(e.Name()) {
			continue
		}
		img, err := dataset.LoadImage(filepath.Join(imagesDir, e.Name()))
		if err != nil {
			// Keep going; one unreadable file should not stop the batch.
			cmd.PrintErrf("couldn't resize %s: %v\n", e.Name(), err)
			continue
		}
		resized := imaging.Resize(imaging.Grayscale(img), width, height, filter)
		name := strings.TrimSuffix(e.Name(), filepath.Ext(e.Name())) + ".png"
		if err := dataset.SavePNG(filepath.Join(outputDir, name), resized); err != nil {
			return err
		}
		processed++
	}

	if processed == 0 {
		return fmt.Errorf("no images found to process in %s", imagesDir)
	}
	cmd.Printf("downscaled %d image(s) into %s\n", processed, outputDir)
	return nil
}

func init() {
	downscaleCmd.Flags().Int("width", 0, "target width")
	downscaleCmd.Flags().Int("height", 0, "target height")
	downscaleCmd.Flags().String("interpolation", "cubic", "resampling filter (nearest, linear, area, cubic)")
	downscaleCmd.Flags().StringP("output", "o", "", "output directory (default sibling downscaled_images/)")
	_ = downscaleCmd.MarkFlagRequired("width")
	_ = downscaleCmd.MarkFlagRequired("height")

	rootCmd.AddCommand(downscaleCmd)
}
