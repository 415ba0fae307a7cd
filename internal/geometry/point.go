package geometry

import "math"

// Point represents a 2D coordinate in float space.
type Point struct {
	X float64
	Y float64
}

// Box represents an axis-aligned bounding box in float coordinates.
type Box struct {
	MinX float64
	MinY float64
	MaxX float64
	MaxY float64
}

// NewBox constructs a Box from min/max coordinates ensuring ordering.
func NewBox(x1, y1, x2, y2 float64) Box {
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	return Box{MinX: x1, MinY: y1, MaxX: x2, MaxY: y2}
}

// Width returns the box width.
func (b Box) Width() float64 { return b.MaxX - b.MinX }

// Height returns the box height.
func (b Box) Height() float64 { return b.MaxY - b.MinY }

// Area returns the box area.
func (b Box) Area() float64 { return b.Width() * b.Height() }

// BoundingBox returns the axis-aligned envelope for a set of points.
func BoundingBox(pts []Point) Box {
	if len(pts) == 0 {
		return Box{}
	}
	minX, minY := pts[0].X, pts[0].Y
	maxX, maxY := pts[0].X, pts[0].Y
	for _, p := range pts[1:] {
		if p.X < minX {
			minX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}
	return Box{MinX: minX, MinY: minY, MaxX: maxX, MaxY: maxY}
}

// ScalePoint scales a point by sx, sy.
func ScalePoint(p Point, sx, sy float64) Point {
	return Point{X: p.X * sx, Y: p.Y * sy}
}

// ScalePoints returns a scaled copy of points.
func ScalePoints(pts []Point, sx, sy float64) []Point {
	out := make([]Point, len(pts))
	for i, p := range pts {
		out[i] = ScalePoint(p, sx, sy)
	}
	return out
}

// RotatePoint rotates a point around a center by the given angle in degrees.
// Positive angles rotate counter-clockwise in display orientation, matching
// the resampling direction of imaging.Rotate.
func RotatePoint(p Point, angleDeg float64, center Point) Point {
	theta := angleDeg * math.Pi / 180
	sin, cos := math.Sincos(theta)
	dx := p.X - center.X
	dy := p.Y - center.Y
	return Point{
		X: dx*cos + dy*sin + center.X,
		Y: -dx*sin + dy*cos + center.Y,
	}
}

// RotatePointCanvas rotates a point about the source image center and shifts
// it into the grown destination canvas, so it lands on the same content pixel
// the image rotation moved there. Uses the pixel-center convention of the
// image resampler (center at size/2 - 0.5).
func RotatePointCanvas(p Point, angleDeg float64, srcW, srcH, dstW, dstH int) Point {
	srcC := Point{X: float64(srcW)/2 - 0.5, Y: float64(srcH)/2 - 0.5}
	dstC := Point{X: float64(dstW)/2 - 0.5, Y: float64(dstH)/2 - 0.5}
	q := RotatePoint(p, angleDeg, srcC)
	return Point{X: q.X + dstC.X - srcC.X, Y: q.Y + dstC.Y - srcC.Y}
}

// ClampPoint clamps a point into the half-open canvas [0,w) x [0,h).
func ClampPoint(p Point, w, h int) Point {
	return Point{
		X: clampFloat(p.X, 0, float64(w-1)),
		Y: clampFloat(p.Y, 0, float64(h-1)),
	}
}

// ClampPoints clamps every point into the canvas bounds.
func ClampPoints(pts []Point, w, h int) []Point {
	out := make([]Point, len(pts))
	for i, p := range pts {
		out[i] = ClampPoint(p, w, h)
	}
	return out
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
