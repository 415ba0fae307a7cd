package stage

import (
	"image"
	"image/color"

	"github.com/MeKo-Tech/smudge/internal/geometry"
)

// WarpQuad resamples src so that the quadrilateral srcQuad lands on the
// corners of a dstW x dstH rectangle, using the inverse homography with
// bilinear sampling. Samples falling outside the source are filled white.
// Returns nil when the correspondence is degenerate.
func WarpQuad(src image.Image, srcQuad [4]geometry.Point, dstW, dstH int) *image.NRGBA {
	if dstW <= 0 || dstH <= 0 {
		return nil
	}
	dstQuad := [4]geometry.Point{
		{X: 0, Y: 0},
		{X: float64(dstW - 1), Y: 0},
		{X: float64(dstW - 1), Y: float64(dstH - 1)},
		{X: 0, Y: float64(dstH - 1)},
	}
	hinv, ok := geometry.ComputeHomography(dstQuad, srcQuad)
	if !ok {
		return nil
	}
	return warpInverse(src, hinv, dstW, dstH)
}

// warpInverse renders a dstW x dstH image by mapping every destination pixel
// through hinv into the source and sampling bilinearly.
func warpInverse(src image.Image, hinv geometry.Homography, dstW, dstH int) *image.NRGBA {
	out := image.NewNRGBA(image.Rect(0, 0, dstW, dstH))
	sb := src.Bounds()
	for y := range dstH {
		for x := range dstW {
			p := hinv.Apply(geometry.Point{X: float64(x), Y: float64(y)})
			c := bilinearSample(src, p.X+float64(sb.Min.X), p.Y+float64(sb.Min.Y))
			out.Set(x, y, c)
		}
	}
	return out
}

func bilinearSample(src image.Image, x, y float64) color.Color {
	// Samples outside the source read as white paper.
	b := src.Bounds()
	if x < float64(b.Min.X) || y < float64(b.Min.Y) || x > float64(b.Max.X-1) || y > float64(b.Max.Y-1) {
		return color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	}
	x0 := int(x)
	y0 := int(y)
	x1 := x0 + 1
	y1 := y0 + 1
	if x1 >= b.Max.X {
		x1 = b.Max.X - 1
	}
	if y1 >= b.Max.Y {
		y1 = b.Max.Y - 1
	}
	fx := x - float64(x0)
	fy := y - float64(y0)
	c00 := toRGBA(src.At(x0, y0))
	c10 := toRGBA(src.At(x1, y0))
	c01 := toRGBA(src.At(x0, y1))
	c11 := toRGBA(src.At(x1, y1))
	r := lerp(lerp(c00.R, c10.R, fx), lerp(c01.R, c11.R, fx), fy)
	g := lerp(lerp(c00.G, c10.G, fx), lerp(c01.G, c11.G, fx), fy)
	bl := lerp(lerp(c00.B, c10.B, fx), lerp(c01.B, c11.B, fx), fy)
	a := lerp(lerp(c00.A, c10.A, fx), lerp(c01.A, c11.A, fx), fy)
	return color.RGBA{R: uint8(r + 0.5), G: uint8(g + 0.5), B: uint8(bl + 0.5), A: uint8(a + 0.5)}
}

type rgba struct{ R, G, B, A float64 }

func toRGBA(c color.Color) rgba {
	r, g, b, a := c.RGBA()
	return rgba{R: float64(r >> 8), G: float64(g >> 8), B: float64(b >> 8), A: float64(a >> 8)}
}

func lerp(a, b, t float64) float64 { return a + (b-a)*t }
