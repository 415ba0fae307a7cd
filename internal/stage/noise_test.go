package stage

import (
	"image"
	"image/color"
	"math/rand"
	"testing"

	"github.com/MeKo-Tech/smudge/internal/dataset"
	"github.com/MeKo-Tech/smudge/internal/geometry"
	"github.com/MeKo-Tech/smudge/internal/sampler"
	"github.com/stretchr/testify/require"
)

func testAnnotated(w, h int, v uint8) dataset.Annotated {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.SetNRGBA(x, y, color.NRGBA{R: v, G: v, B: v, A: 255})
		}
	}
	words := []dataset.Word{dataset.NewWord("word", []geometry.Point{
		{X: 10, Y: 10}, {X: 40, Y: 10}, {X: 40, Y: 20}, {X: 10, Y: 20},
	})}
	return dataset.NewAnnotated(img, words)
}

func samePixels(t *testing.T, a, b image.Image) bool {
	t.Helper()
	ab, bb := a.Bounds(), b.Bounds()
	require.Equal(t, ab.Dx(), bb.Dx())
	require.Equal(t, ab.Dy(), bb.Dy())
	for y := range ab.Dy() {
		for x := range ab.Dx() {
			ar, ag, abl, _ := a.At(ab.Min.X+x, ab.Min.Y+y).RGBA()
			br, bg, bbl, _ := b.At(bb.Min.X+x, bb.Min.Y+y).RGBA()
			if ar != br || ag != bg || abl != bbl {
				return false
			}
		}
	}
	return true
}

func TestSaltPepper_DensityZeroIsIdentity(t *testing.T) {
	in := testAnnotated(32, 32, 128)
	st := SaltPepper{Amount: sampler.Fixed(0), SaltVsPepper: sampler.Fixed(0.5)}
	out, err := st.Apply(in, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	require.True(t, samePixels(t, in.Image, out.Image))
	require.Equal(t, in.Words, out.Words)
}

func TestSaltPepper_DensityOneFlipsEveryPixel(t *testing.T) {
	in := testAnnotated(32, 32, 128)
	st := SaltPepper{Amount: sampler.Fixed(1), SaltVsPepper: sampler.NewRange(0, 1)}
	out, err := st.Apply(in, rand.New(rand.NewSource(1)))
	require.NoError(t, err)

	nrgba, ok := out.Image.(*image.NRGBA)
	require.True(t, ok)
	for i := 0; i < len(nrgba.Pix); i += 4 {
		v := nrgba.Pix[i]
		require.True(t, v == 0 || v == 255, "pixel %d not at an extreme: %d", i/4, v)
	}
}

func TestSaltPepper_RatioOneIsAllSalt(t *testing.T) {
	in := testAnnotated(16, 16, 128)
	st := SaltPepper{Amount: sampler.Fixed(1), SaltVsPepper: sampler.Fixed(1)}
	out, err := st.Apply(in, rand.New(rand.NewSource(3)))
	require.NoError(t, err)

	nrgba, ok := out.Image.(*image.NRGBA)
	require.True(t, ok)
	for i := 0; i < len(nrgba.Pix); i += 4 {
		require.Equal(t, uint8(255), nrgba.Pix[i])
	}
}

func TestGaussianNoise_PerturbsAndClamps(t *testing.T) {
	in := testAnnotated(32, 32, 250)
	st := GaussianNoise{Mean: sampler.Fixed(20), Stddev: sampler.Fixed(10)}
	out, err := st.Apply(in, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	require.False(t, samePixels(t, in.Image, out.Image))

	nrgba, ok := out.Image.(*image.NRGBA)
	require.True(t, ok)
	for i := 0; i < len(nrgba.Pix); i += 4 {
		require.LessOrEqual(t, nrgba.Pix[i], uint8(255))
	}
	// Geometry untouched
	require.Equal(t, in.Words, out.Words)
	require.Equal(t, in.Width, out.Width)
	require.Equal(t, in.Height, out.Height)
}

func TestGaussianNoise_DoesNotMutateInput(t *testing.T) {
	in := testAnnotated(8, 8, 100)
	st := GaussianNoise{Mean: sampler.Fixed(50), Stddev: sampler.Fixed(5)}
	_, err := st.Apply(in, rand.New(rand.NewSource(1)))
	require.NoError(t, err)

	nrgba, ok := in.Image.(*image.NRGBA)
	require.True(t, ok)
	for i := 0; i < len(nrgba.Pix); i += 4 {
		require.Equal(t, uint8(100), nrgba.Pix[i])
	}
}

func TestSpeckle_ZeroNoiseIsIdentity(t *testing.T) {
	in := testAnnotated(16, 16, 100)
	st := Speckle{Mean: sampler.Fixed(0), Stddev: sampler.Fixed(0)}
	out, err := st.Apply(in, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	require.True(t, samePixels(t, in.Image, out.Image))
}

func TestSpeckle_ScalesWithIntensity(t *testing.T) {
	// Multiplicative noise leaves black pixels black.
	in := testAnnotated(16, 16, 0)
	st := Speckle{Mean: sampler.Fixed(0), Stddev: sampler.Fixed(0.5)}
	out, err := st.Apply(in, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	require.True(t, samePixels(t, in.Image, out.Image))
}
