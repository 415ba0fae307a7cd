package geometry

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func unitSquare() [4]Point {
	return [4]Point{{0, 0}, {100, 0}, {100, 100}, {0, 100}}
}

func TestComputeHomography_Identity(t *testing.T) {
	sq := unitSquare()
	h, ok := ComputeHomography(sq, sq)
	require.True(t, ok)
	for _, p := range []Point{{0, 0}, {50, 50}, {13, 87}, {100, 100}} {
		q := h.Apply(p)
		require.InDelta(t, p.X, q.X, 1e-6)
		require.InDelta(t, p.Y, q.Y, 1e-6)
	}
}

func TestComputeHomography_Translation(t *testing.T) {
	src := unitSquare()
	dst := [4]Point{{10, 5}, {110, 5}, {110, 105}, {10, 105}}
	h, ok := ComputeHomography(src, dst)
	require.True(t, ok)
	q := h.Apply(Point{X: 30, Y: 40})
	require.InDelta(t, 40.0, q.X, 1e-6)
	require.InDelta(t, 45.0, q.Y, 1e-6)
}

func TestComputeHomography_MapsCorrespondences(t *testing.T) {
	src := unitSquare()
	dst := [4]Point{{3, 2}, {97, 8}, {104, 95}, {-4, 102}}
	h, ok := ComputeHomography(src, dst)
	require.True(t, ok)
	for i := range 4 {
		q := h.Apply(src[i])
		require.InDelta(t, dst[i].X, q.X, 1e-6)
		require.InDelta(t, dst[i].Y, q.Y, 1e-6)
	}
}

func TestComputeHomography_RoundTripWithInverse(t *testing.T) {
	src := unitSquare()
	dst := [4]Point{{5, -3}, {95, 4}, {102, 98}, {1, 92}}
	fwd, ok := ComputeHomography(src, dst)
	require.True(t, ok)
	inv, ok := ComputeHomography(dst, src)
	require.True(t, ok)
	p := Point{X: 42, Y: 67}
	q := inv.Apply(fwd.Apply(p))
	require.InDelta(t, p.X, q.X, 1e-6)
	require.InDelta(t, p.Y, q.Y, 1e-6)
}

func TestComputeHomography_Degenerate(t *testing.T) {
	// All source points collinear: no valid projective map.
	src := [4]Point{{0, 0}, {1, 1}, {2, 2}, {3, 3}}
	_, ok := ComputeHomography(src, unitSquare())
	require.False(t, ok)
}

func TestIdentity(t *testing.T) {
	h := Identity()
	p := Point{X: 7, Y: 9}
	require.Equal(t, p, h.Apply(p))
}
