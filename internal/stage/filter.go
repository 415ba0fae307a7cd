package stage

import (
	"image"
	"sort"

	"github.com/disintegration/imaging"
)

// GaussianBlurImage blurs an image with a Gaussian kernel. A radius of zero
// or less returns an untouched copy.
func GaussianBlurImage(img image.Image, radius int) *image.NRGBA {
	if radius <= 0 {
		return imaging.Clone(img)
	}
	return imaging.Blur(img, float64(radius))
}

// BoxBlurImage convolves an image with a uniform-weight kernel of half-width
// radius, applied separably. A radius of zero or less returns an untouched
// copy.
func BoxBlurImage(img image.Image, radius int) *image.NRGBA {
	src := imaging.Clone(img)
	if radius <= 0 {
		return src
	}
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	tmp := image.NewNRGBA(b)
	out := image.NewNRGBA(b)

	// Horizontal pass.
	for y := range h {
		for x := range w {
			var sum [4]int
			count := 0
			for k := -radius; k <= radius; k++ {
				xx := x + k
				if xx < 0 || xx >= w {
					continue
				}
				i := y*src.Stride + xx*4
				for c := range 4 {
					sum[c] += int(src.Pix[i+c])
				}
				count++
			}
			i := y*tmp.Stride + x*4
			for c := range 4 {
				tmp.Pix[i+c] = uint8((sum[c] + count/2) / count)
			}
		}
	}

	// Vertical pass.
	for y := range h {
		for x := range w {
			var sum [4]int
			count := 0
			for k := -radius; k <= radius; k++ {
				yy := y + k
				if yy < 0 || yy >= h {
					continue
				}
				i := yy*tmp.Stride + x*4
				for c := range 4 {
					sum[c] += int(tmp.Pix[i+c])
				}
				count++
			}
			i := y*out.Stride + x*4
			for c := range 4 {
				out.Pix[i+c] = uint8((sum[c] + count/2) / count)
			}
		}
	}
	return out
}

// MaxFilterImage replaces each pixel with the channel-wise maximum over a
// size x size neighborhood. Size 1 or smaller returns an untouched copy;
// even sizes are widened to the next odd value.
func MaxFilterImage(img image.Image, size int) *image.NRGBA {
	return rankFilter(img, size, true)
}

// MinFilterImage replaces each pixel with the channel-wise minimum over a
// size x size neighborhood.
func MinFilterImage(img image.Image, size int) *image.NRGBA {
	return rankFilter(img, size, false)
}

// MedianFilterImage replaces each pixel with the channel-wise median over a
// size x size neighborhood. Used by the standalone blur utility, not by the
// randomized pipeline.
func MedianFilterImage(img image.Image, size int) *image.NRGBA {
	src := imaging.Clone(img)
	if size <= 1 {
		return src
	}
	if size%2 == 0 {
		size++
	}
	half := size / 2
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	out := image.NewNRGBA(b)

	window := make([]uint8, 0, size*size)
	for y := range h {
		for x := range w {
			for c := range 3 {
				window = window[:0]
				for ky := -half; ky <= half; ky++ {
					yy := y + ky
					if yy < 0 || yy >= h {
						continue
					}
					for kx := -half; kx <= half; kx++ {
						xx := x + kx
						if xx < 0 || xx >= w {
							continue
						}
						window = append(window, src.Pix[yy*src.Stride+xx*4+c])
					}
				}
				sort.Slice(window, func(i, j int) bool { return window[i] < window[j] })
				out.Pix[y*out.Stride+x*4+c] = window[len(window)/2]
			}
			out.Pix[y*out.Stride+x*4+3] = src.Pix[y*src.Stride+x*4+3]
		}
	}
	return out
}

func rankFilter(img image.Image, size int, takeMax bool) *image.NRGBA {
	src := imaging.Clone(img)
	if size <= 1 {
		return src
	}
	if size%2 == 0 {
		size++
	}
	half := size / 2
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	out := image.NewNRGBA(b)

	for y := range h {
		for x := range w {
			var best [3]uint8
			if !takeMax {
				best = [3]uint8{255, 255, 255}
			}
			for ky := -half; ky <= half; ky++ {
				yy := y + ky
				if yy < 0 || yy >= h {
					continue
				}
				for kx := -half; kx <= half; kx++ {
					xx := x + kx
					if xx < 0 || xx >= w {
						continue
					}
					i := yy*src.Stride + xx*4
					for c := range 3 {
						v := src.Pix[i+c]
						if takeMax {
							if v > best[c] {
								best[c] = v
							}
						} else if v < best[c] {
							best[c] = v
						}
					}
				}
			}
			i := y*out.Stride + x*4
			out.Pix[i] = best[0]
			out.Pix[i+1] = best[1]
			out.Pix[i+2] = best[2]
			out.Pix[i+3] = src.Pix[i+3]
		}
	}
	return out
}
