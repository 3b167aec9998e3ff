package geometry

import "math"

// parallelEpsilon guards the segment intersection denominator.
const parallelEpsilon = 1e-9

// ============================================================
// Rect
// ============================================================

// Rect is an axis-aligned rectangle anchored at its top-left corner.
type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"width"`
	H float64 `json:"height"`
}

// RectAround builds a rectangle of size w×h centred on c.
func RectAround(c Point, w, h float64) Rect {
	return Rect{X: c.X - w/2, Y: c.Y - h/2, W: w, H: h}
}

func (r Rect) Max() Point {
	return Point{X: r.X + r.W, Y: r.Y + r.H}
}

func (r Rect) Center() Point {
	return Point{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.X+r.W &&
		p.Y >= r.Y && p.Y <= r.Y+r.H
}

// Intersects reports whether two rectangles share interior area.
func (r Rect) Intersects(o Rect) bool {
	return r.X < o.X+o.W && o.X < r.X+r.W &&
		r.Y < o.Y+o.H && o.Y < r.Y+r.H
}

func (r Rect) Expand(margin float64) Rect {
	return Rect{X: r.X - margin, Y: r.Y - margin, W: r.W + 2*margin, H: r.H + 2*margin}
}

// Edges returns the four sides clockwise from the top.
func (r Rect) Edges() [4][2]Point {
	tl := Point{X: r.X, Y: r.Y}
	tr := Point{X: r.X + r.W, Y: r.Y}
	br := Point{X: r.X + r.W, Y: r.Y + r.H}
	bl := Point{X: r.X, Y: r.Y + r.H}
	return [4][2]Point{{tl, tr}, {tr, br}, {br, bl}, {bl, tl}}
}

// ============================================================
// Circle
// ============================================================

type Circle struct {
	Center Point   `json:"center"`
	Radius float64 `json:"radius"`
}

func (c Circle) Contains(p Point) bool {
	return Distance(c.Center, p) <= c.Radius
}

// CircleIntersectsRect clamps the centre onto the rectangle and compares the
// distance to the radius.
func CircleIntersectsRect(c Circle, r Rect) bool {
	closest := Point{
		X: Clamp(c.Center.X, r.X, r.X+r.W),
		Y: Clamp(c.Center.Y, r.Y, r.Y+r.H),
	}
	return Distance(c.Center, closest) < c.Radius
}

// ============================================================
// Segments
// ============================================================

// SegmentsIntersect tests p1-p2 against p3-p4. Near-parallel pairs never intersect.
func SegmentsIntersect(p1, p2, p3, p4 Point) bool {
	d := (p4.Y-p3.Y)*(p2.X-p1.X) - (p4.X-p3.X)*(p2.Y-p1.Y)
	if math.Abs(d) < parallelEpsilon {
		return false
	}
	ua := ((p4.X-p3.X)*(p1.Y-p3.Y) - (p4.Y-p3.Y)*(p1.X-p3.X)) / d
	ub := ((p2.X-p1.X)*(p1.Y-p3.Y) - (p2.Y-p1.Y)*(p1.X-p3.X)) / d
	return ua >= 0 && ua <= 1 && ub >= 0 && ub <= 1
}

// SegmentIntersectsRect checks endpoint containment first, then every edge.
func SegmentIntersectsRect(a, b Point, r Rect) bool {
	if r.Contains(a) || r.Contains(b) {
		return true
	}
	for _, e := range r.Edges() {
		if SegmentsIntersect(a, b, e[0], e[1]) {
			return true
		}
	}
	return false
}
