package geometry

import (
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// genPoint generates a random point within a generous canvas.
func genPoint() gopter.Gen {
	return gopter.CombineGens(
		gen.Float64Range(-500, 500),
		gen.Float64Range(-500, 500),
	).Map(func(vals []interface{}) Point {
		x, ok := vals[0].(float64)
		if !ok {
			panic("expected float64")
		}
		y, ok := vals[1].(float64)
		if !ok {
			panic("expected float64")
		}
		return Point{X: x, Y: y}
	})
}

func TestRotatePoint_RoundTripProperty(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("rotation by angle then -angle is identity", prop.ForAll(
		func(p Point, angle float64) bool {
			center := Point{X: 50, Y: 50}
			q := RotatePoint(RotatePoint(p, angle, center), -angle, center)
			return math.Abs(q.X-p.X) < 1e-6 && math.Abs(q.Y-p.Y) < 1e-6
		},
		genPoint(),
		gen.Float64Range(-360, 360),
	))

	properties.Property("rotation preserves distance to center", prop.ForAll(
		func(p Point, angle float64) bool {
			center := Point{X: -10, Y: 25}
			q := RotatePoint(p, angle, center)
			before := math.Hypot(p.X-center.X, p.Y-center.Y)
			after := math.Hypot(q.X-center.X, q.Y-center.Y)
			return math.Abs(before-after) < 1e-6
		},
		genPoint(),
		gen.Float64Range(-360, 360),
	))

	properties.TestingRun(t)
}

func TestBoundingBox_ContainsAllPointsProperty(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("envelope contains every input point", prop.ForAll(
		func(pts []Point) bool {
			if len(pts) == 0 {
				return true
			}
			b := BoundingBox(pts)
			for _, p := range pts {
				if p.X < b.MinX || p.X > b.MaxX || p.Y < b.MinY || p.Y > b.MaxY {
					return false
				}
			}
			return true
		},
		gen.SliceOf(genPoint()),
	))

	properties.TestingRun(t)
}
