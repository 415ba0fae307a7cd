package testutil

import (
	"image"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateAnnotatedText_WordsMatchText(t *testing.T) {
	cfg := DefaultTextImageConfig()
	cfg.Text = "the quick brown fox"

	annotated := GenerateAnnotatedText(cfg)
	require.Equal(t, cfg.Width, annotated.Width)
	require.Equal(t, cfg.Height, annotated.Height)
	require.Len(t, annotated.Words, 4)
	require.Equal(t, "the", annotated.Words[0].Text)
	require.Equal(t, "fox", annotated.Words[3].Text)
}

func TestGenerateAnnotatedText_CornersInsideCanvas(t *testing.T) {
	annotated := GenerateAnnotatedText(DefaultTextImageConfig())
	for _, w := range annotated.Words {
		require.Len(t, w.Corners, 4)
		for _, p := range w.Corners {
			require.GreaterOrEqual(t, p.X, 0.0)
			require.GreaterOrEqual(t, p.Y, 0.0)
			require.Less(t, p.X, float64(annotated.Width))
			require.Less(t, p.Y, float64(annotated.Height))
		}
		require.Positive(t, w.Box.Width())
		require.Positive(t, w.Box.Height())
	}
}

func TestGenerateAnnotatedText_DrawsInk(t *testing.T) {
	annotated := GenerateAnnotatedText(DefaultTextImageConfig())
	nrgba, ok := annotated.Image.(*image.NRGBA)
	require.True(t, ok)

	dark := 0
	for i := 0; i < len(nrgba.Pix); i += 4 {
		if nrgba.Pix[i] < 128 {
			dark++
		}
	}
	require.Positive(t, dark)
}
