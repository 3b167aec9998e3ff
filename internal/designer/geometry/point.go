package geometry

import "math"

// DefaultGridSize is the snapping grid in world units.
const DefaultGridSize = 35.0

// ============================================================
// Point
// ============================================================

// Point is a position in world units (or screen pixels, depending on context).
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

func (p Point) Scale(k float64) Point {
	return Point{X: p.X * k, Y: p.Y * k}
}

func (p Point) Dot(q Point) float64 {
	return p.X*q.X + p.Y*q.Y
}

// Cross returns the z component of p × q.
func (p Point) Cross(q Point) float64 {
	return p.X*q.Y - p.Y*q.X
}

func (p Point) Len() float64 {
	return math.Hypot(p.X, p.Y)
}

// Unit returns p scaled to length 1. The zero vector stays zero.
func (p Point) Unit() Point {
	l := p.Len()
	if l == 0 {
		return Point{}
	}
	return Point{X: p.X / l, Y: p.Y / l}
}

// Eq reports whether p and q are within tol of each other on both axes.
func (p Point) Eq(q Point, tol float64) bool {
	return math.Abs(p.X-q.X) <= tol && math.Abs(p.Y-q.Y) <= tol
}

// ============================================================
// Scalar helpers
// ============================================================

// SnapToGrid rounds v to the nearest multiple of grid.
func SnapToGrid(v, grid float64) float64 {
	if grid <= 0 {
		return v
	}
	return math.Round(v/grid) * grid
}

func SnapPoint(p Point, grid float64) Point {
	return Point{X: SnapToGrid(p.X, grid), Y: SnapToGrid(p.Y, grid)}
}

func Distance(a, b Point) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}

func Midpoint(a, b Point) Point {
	return Point{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}
}

func Clamp(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

func Radians(deg float64) float64 {
	return deg * math.Pi / 180
}

func Degrees(rad float64) float64 {
	return rad * 180 / math.Pi
}

// AngleAt returns the angle in degrees between p2→p1 and p2→p3.
// A zero-length arm yields 180.
func AngleAt(p1, p2, p3 Point) float64 {
	v1 := p1.Sub(p2)
	v2 := p3.Sub(p2)
	l1, l2 := v1.Len(), v2.Len()
	if l1 == 0 || l2 == 0 {
		return 180
	}
	cos := Clamp(v1.Dot(v2)/(l1*l2), -1, 1)
	return Degrees(math.Acos(cos))
}

// LeftNormal returns the unit normal on the left-hand side of travel from a to b
// in screen orientation (y grows downward).
func LeftNormal(a, b Point) Point {
	d := b.Sub(a).Unit()
	return Point{X: d.Y, Y: -d.X}
}

// ============================================================
// Rotation
// ============================================================

// RotateAbout rotates p around pivot by rad radians.
func RotateAbout(p, pivot Point, rad float64) Point {
	sin, cos := math.Sincos(rad)
	dx := p.X - pivot.X
	dy := p.Y - pivot.Y
	return Point{
		X: pivot.X + dx*cos - dy*sin,
		Y: pivot.Y + dx*sin + dy*cos,
	}
}

// RotateAll returns a rotated copy of points. The input is not modified.
func RotateAll(points []Point, pivot Point, rad float64) []Point {
	out := make([]Point, len(points))
	for i, p := range points {
		out[i] = RotateAbout(p, pivot, rad)
	}
	return out
}

func Translate(points []Point, delta Point) []Point {
	out := make([]Point, len(points))
	for i, p := range points {
		out[i] = p.Add(delta)
	}
	return out
}
