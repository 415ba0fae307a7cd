package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/MeKo-Tech/smudge/internal/dataset"
	"github.com/MeKo-Tech/smudge/internal/geometry"
	"github.com/MeKo-Tech/smudge/internal/stage"
)

// perspectiveCmd is a single-image utility: it maps a source quadrilateral
// onto a full output rectangle, the manual counterpart of the randomized
// perspective stage.
var perspectiveCmd = &cobra.Command{
	Use:   "perspective <image>",
	Short: "Apply a perspective transform to a single image",
	Long: `Perspective resamples an image so that a chosen source quadrilateral
fills the output rectangle. Corners are given clockwise starting at the
top-left, as four x,y pairs.

Examples:
  smudge perspective page.png --width 800 --height 600 --corners 10,10,790,20,780,580,5,590
  smudge perspective scan.jpg --width 1000 --height 1400 --corners 0,0,999,0,999,1399,0,1399 --output out/`,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE:         runPerspectiveCommand,
}

// parseCorners parses four clockwise x,y pairs from a comma-separated list.
func parseCorners(s string) ([4]geometry.Point, error) {
	var quad [4]geometry.Point
	parts := strings.Split(s, ",")
	if len(parts) != 8 {
		return quad, fmt.Errorf("corners must be 8 comma-separated values (x1,y1,...,x4,y4), got %d", len(parts))
	}
	vals := make([]float64, 8)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return quad, fmt.Errorf("invalid corner coordinate %q: %w", p, err)
		}
		vals[i] = v
	}
	for i := range 4 {
		quad[i] = geometry.Point{X: vals[2*i], Y: vals[2*i+1]}
	}
	return quad, nil
}

func runPerspectiveCommand(cmd *cobra.Command, args []string) error {
	inputPath := args[0]
	width, _ := cmd.Flags().GetInt("width")
	height, _ := cmd.Flags().GetInt("height")
	cornersSpec, _ := cmd.Flags().GetString("corners")
	outputDir, _ := cmd.Flags().GetString("output")

	if width <= 0 || height <= 0 {
		return fmt.Errorf("output dimensions must be positive, got %dx%d", width, height)
	}
	quad, err := parseCorners(cornersSpec)
	if err != nil {
		return err
	}

	img, err := dataset.LoadImage(inputPath)
	if err != nil {
		return err
	}

	warped := stage.WarpQuad(img, quad, width, height)
	if warped == nil {
		return fmt.Errorf("degenerate corner quadrilateral: %s", cornersSpec)
	}

	if outputDir == "" {
		outputDir = filepath.Join(filepath.Dir(inputPath), "perspective_transformed_images")
	}
	if err := os.MkdirAll(outputDir, 0o750); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	base := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
	outputPath := filepath.Join(outputDir, base+"_perspective.png")
	if err := dataset.SavePNG(outputPath, warped); err != nil {
		return err
	}

	cmd.Printf("wrote %s\n", outputPath)
	return nil
}

func init() {
	perspectiveCmd.Flags().Int("width", 0, "output image width")
	perspectiveCmd.Flags().Int("height", 0, "output image height")
	perspectiveCmd.Flags().String("corners", "", "source quadrilateral as x1,y1,x2,y2,x3,y3,x4,y4 (clockwise from top-left)")
	perspectiveCmd.Flags().StringP("output", "o", "", "output directory (default <input dir>/perspective_transformed_images)")
	_ = perspectiveCmd.MarkFlagRequired("width")
	_ = perspectiveCmd.MarkFlagRequired("height")
	_ = perspectiveCmd.MarkFlagRequired("corners")

	rootCmd.AddCommand(perspectiveCmd)
}
