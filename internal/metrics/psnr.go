// Package metrics computes the quality metrics attached to degraded samples:
// peak signal-to-noise ratio against the clear source and the normalized edit
// distance between OCR output and ground truth.
package metrics

import (
	"fmt"
	"image"
	"math"
)

// PSNR computes the peak signal-to-noise ratio between two same-size images
// over their RGB channels. Identical images yield +Inf, the maximum
// attainable value; higher means less distortion.
func PSNR(a, b image.Image) (float64, error) {
	ab, bb := a.Bounds(), b.Bounds()
	if ab.Dx() != bb.Dx() || ab.Dy() != bb.Dy() {
		return 0, fmt.Errorf("psnr: image sizes differ: %dx%d vs %dx%d",
			ab.Dx(), ab.Dy(), bb.Dx(), bb.Dy())
	}
	w, h := ab.Dx(), ab.Dy()
	if w == 0 || h == 0 {
		return 0, fmt.Errorf("psnr: empty image")
	}

	var sum float64
	for y := range h {
		for x := range w {
			ar, ag, abl, _ := a.At(ab.Min.X+x, ab.Min.Y+y).RGBA()
			br, bg, bbl, _ := b.At(bb.Min.X+x, bb.Min.Y+y).RGBA()
			dr := float64(ar>>8) - float64(br>>8)
			dg := float64(ag>>8) - float64(bg>>8)
			db := float64(abl>>8) - float64(bbl>>8)
			sum += dr*dr + dg*dg + db*db
		}
	}

	mse := sum / float64(3*w*h)
	if mse == 0 {
		return math.Inf(1), nil
	}
	return 10 * math.Log10(255*255/mse), nil
}
