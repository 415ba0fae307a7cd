package cmd

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetRootCommand(t *testing.T) {
	root := GetRootCommand()
	require.NotNil(t, root)
	require.Equal(t, "smudge", root.Use)

	names := make(map[string]bool)
	for _, c := range root.Commands() {
		names[c.Name()] = true
	}
	require.True(t, names["degrade"])
	require.True(t, names["perspective"])
	require.True(t, names["blur"])
	require.True(t, names["downscale"])
}

func TestParseCorners(t *testing.T) {
	quad, err := parseCorners("0,0, 100,5, 95,80, 2,78")
	require.NoError(t, err)
	require.InDelta(t, 100.0, quad[1].X, 1e-9)
	require.InDelta(t, 78.0, quad[3].Y, 1e-9)

	_, err = parseCorners("1,2,3")
	require.Error(t, err)

	_, err = parseCorners("a,0,0,0,0,0,0,0")
	require.Error(t, err)
}

func TestBlurFilters_Complete(t *testing.T) {
	for _, name := range []string{"gaussian", "box", "min", "max", "median"} {
		require.Contains(t, blurFilters, name)
	}
}
