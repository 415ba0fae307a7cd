package pipeline

import (
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/MeKo-Tech/smudge/internal/config"
	"github.com/MeKo-Tech/smudge/internal/dataset"
	"github.com/MeKo-Tech/smudge/internal/geometry"
	"github.com/MeKo-Tech/smudge/internal/sampler"
	"github.com/MeKo-Tech/smudge/internal/stage"
)

func testInput(w, h int) dataset.Annotated {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := uint8(200)
			if x > w/4 && x < 3*w/4 && y > h/4 && y < 3*h/4 {
				v = 30
			}
			img.SetNRGBA(x, y, color.NRGBA{R: v, G: v, B: v, A: 255})
		}
	}
	word := dataset.NewWord("sample", []geometry.Point{
		{X: 10, Y: 10}, {X: 40, Y: 10}, {X: 40, Y: 20}, {X: 10, Y: 20},
	})
	return dataset.NewAnnotated(img, []dataset.Word{word})
}

func TestRun_EmptyPipelineIsIdentity(t *testing.T) {
	in := testInput(50, 50)

	res, err := New().Run(in, sampler.JobRand(1, 0))
	require.NoError(t, err)
	require.Equal(t, in.Width, res.Degraded.Width)
	require.Equal(t, in.Height, res.Degraded.Height)
	require.Len(t, res.Degraded.Words, 1)
	require.True(t, math.IsInf(res.PSNR, 1))
}

func TestRun_NoisyPipelineScoresFinite(t *testing.T) {
	in := testInput(50, 50)
	p := New(stage.GaussianNoise{
		Mean:   sampler.Fixed(20),
		Stddev: sampler.Fixed(10),
	})

	res, err := p.Run(in, sampler.JobRand(1, 0))
	require.NoError(t, err)
	require.False(t, math.IsInf(res.PSNR, 1))
	require.Positive(t, res.PSNR)
}

func TestRun_ScoresBeforeBorderStages(t *testing.T) {
	in := testInput(50, 50)
	p := New(stage.Rotate{Angle: sampler.Fixed(30)})

	res, err := p.Run(in, sampler.JobRand(1, 0))
	require.NoError(t, err)
	// Rotation adds white borders, but the score is taken before it, when
	// the working image is still pristine.
	require.True(t, math.IsInf(res.PSNR, 1))
	require.Greater(t, res.Degraded.Width, in.Width)
}

func TestRun_ResizeScoredAfterResampleBack(t *testing.T) {
	in := testInput(60, 60)
	p := New(stage.Resize{Factor: sampler.Fixed(0.5)})

	res, err := p.Run(in, sampler.JobRand(1, 0))
	require.NoError(t, err)
	require.Equal(t, 30, res.Degraded.Width)
	// Downscale then cubic upsample loses detail, so the score is finite.
	require.False(t, math.IsInf(res.PSNR, 1))
	require.Positive(t, res.PSNR)
}

func TestRun_MoreNoiseScoresLower(t *testing.T) {
	in := testInput(50, 50)
	mild := New(stage.GaussianNoise{Mean: sampler.Fixed(5), Stddev: sampler.Fixed(2)})
	harsh := New(stage.GaussianNoise{Mean: sampler.Fixed(60), Stddev: sampler.Fixed(20)})

	mildRes, err := mild.Run(in, sampler.JobRand(1, 0))
	require.NoError(t, err)
	harshRes, err := harsh.Run(in, sampler.JobRand(1, 0))
	require.NoError(t, err)
	require.Greater(t, mildRes.PSNR, harshRes.PSNR)
}

func TestRun_DeterministicForSameStream(t *testing.T) {
	in := testInput(50, 50)
	p := FromConfig(config.DefaultConfig().Stages)

	a, err := p.Run(in, sampler.JobRand(7, 3))
	require.NoError(t, err)
	b, err := p.Run(in, sampler.JobRand(7, 3))
	require.NoError(t, err)

	require.Equal(t, a.Degraded.Width, b.Degraded.Width)
	require.Equal(t, a.Degraded.Height, b.Degraded.Height)
	require.InDelta(t, a.PSNR, b.PSNR, 1e-12)
	require.Equal(t, a.Degraded.Words, b.Degraded.Words)
}

func TestRun_ErrorNamesFailingStage(t *testing.T) {
	in := testInput(50, 50)
	p := New(stage.Resize{Factor: sampler.Fixed(-1)})

	_, err := p.Run(in, sampler.JobRand(1, 0))
	require.Error(t, err)
	require.Contains(t, err.Error(), "stage resize")
}

func TestFromConfig_CanonicalOrder(t *testing.T) {
	cfg := config.DefaultConfig().Stages
	cfg.Perspective.Enabled = true

	p := FromConfig(cfg)
	kinds := make([]stage.Kind, 0, len(p.Stages()))
	for _, st := range p.Stages() {
		kinds = append(kinds, st.Kind())
	}
	require.Equal(t, []stage.Kind{
		stage.KindGaussianNoise,
		stage.KindSpeckle,
		stage.KindSaltPepper,
		stage.KindGaussianBlur,
		stage.KindBoxBlur,
		stage.KindMaxFilter,
		stage.KindMinFilter,
		stage.KindResize,
		stage.KindRotate,
		stage.KindPerspective,
	}, kinds)
}

func TestFromConfig_DisabledStagesLeftOut(t *testing.T) {
	cfg := config.StagesConfig{}
	require.Empty(t, FromConfig(cfg).Stages())

	cfg.Rotate = config.RotateConfig{Enabled: true, MaxDegrees: 5}
	p := FromConfig(cfg)
	require.Len(t, p.Stages(), 1)
	require.Equal(t, stage.KindRotate, p.Stages()[0].Kind())
}

func TestFromConfig_DisabledStageConsumesNoSamples(t *testing.T) {
	in := testInput(50, 50)

	onlyRotate := config.StagesConfig{
		Rotate: config.RotateConfig{Enabled: true, MaxDegrees: 5},
	}
	withDisabledNoise := onlyRotate
	withDisabledNoise.GaussianNoise = config.GaussianNoiseConfig{
		Enabled: false,
		Mean:    sampler.NewRange(0.5, 0.9),
		Stddev:  sampler.NewRange(0.05, 0.09),
	}

	a, err := FromConfig(onlyRotate).Run(in, sampler.JobRand(11, 2))
	require.NoError(t, err)
	b, err := FromConfig(withDisabledNoise).Run(in, sampler.JobRand(11, 2))
	require.NoError(t, err)

	// The rotation angle draw must be unaffected by the disabled stage.
	require.Equal(t, a.Degraded.Width, b.Degraded.Width)
	require.Equal(t, a.Degraded.Height, b.Degraded.Height)
	require.Equal(t, a.Degraded.Words, b.Degraded.Words)
}

func TestRun_DoesNotMutateInput(t *testing.T) {
	in := testInput(50, 50)
	wantCorners := append([]geometry.Point(nil), in.Words[0].Corners...)

	_, err := FromConfig(config.DefaultConfig().Stages).Run(in, sampler.JobRand(1, 0))
	require.NoError(t, err)
	require.Equal(t, wantCorners, in.Words[0].Corners)
	require.Equal(t, 50, in.Width)
}
