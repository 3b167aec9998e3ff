package geometry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tol = 1e-9

func TestSnapToGridIsIdempotent(t *testing.T) {
	for _, x := range []float64{-1000.4, -52.5, -17.4, 0, 0.1, 17.5, 34.99, 35, 52.49, 1234.5678, 1e6 + 0.3} {
		once := SnapToGrid(x, DefaultGridSize)
		assert.Equal(t, once, SnapToGrid(once, DefaultGridSize), "x=%v", x)
		assert.InDelta(t, 0, math.Mod(once, DefaultGridSize), tol, "x=%v", x)
	}
	assert.Equal(t, 12.3, SnapToGrid(12.3, 0), "zero grid leaves value alone")
}

func TestAngleAt(t *testing.T) {
	o := Point{X: 100, Y: 0}
	assert.InDelta(t, 90, AngleAt(Point{}, o, Point{X: 100, Y: 100}), tol)
	assert.InDelta(t, 180, AngleAt(Point{}, o, Point{X: 200, Y: 0}), tol)
	assert.InDelta(t, 45, AngleAt(Point{}, o, Point{X: 0, Y: 100}), tol)
	assert.Equal(t, 180.0, AngleAt(o, o, Point{X: 1, Y: 1}), "degenerate arm")
}

func TestGirthIsRigidInvariant(t *testing.T) {
	pts := []Point{{0, 0}, {100, 0}, {100, 100}, {35, 140}}
	want := PathLength(pts)

	for _, deg := range []float64{0, 13, 30, 90, 181, -47} {
		rotated := RotateAll(pts, Point{X: 17, Y: -4}, Radians(deg))
		assert.InDelta(t, want, PathLength(rotated), 1e-6, "deg=%v", deg)
	}
	moved := Translate(pts, Point{X: -350, Y: 72.5})
	assert.InDelta(t, want, PathLength(moved), 1e-9)
	assert.Equal(t, Girth(pts), Girth(moved))
}

func TestGirthScenario(t *testing.T) {
	pts := []Point{{0, 0}, {100, 0}, {100, 100}}
	assert.Equal(t, 200, Girth(pts))
}

func TestPointAlong(t *testing.T) {
	pts := []Point{{0, 0}, {100, 0}, {100, 100}}

	p, seg := PointAlong(pts, 150)
	assert.True(t, p.Eq(Point{X: 100, Y: 50}, tol), "got %+v", p)
	assert.Equal(t, 2, seg)

	mid, seg := GirthMidpoint(pts)
	assert.True(t, mid.Eq(Point{X: 100, Y: 0}, tol), "got %+v", mid)
	assert.Equal(t, 1, seg)

	end, _ := PointAlong(pts, 1e9)
	assert.Equal(t, pts[2], end)
}

func TestViewportRoundTrip(t *testing.T) {
	v := Viewport{Zoom: 2.5, Pan: Point{X: 40, Y: -12}}
	w := Point{X: 123.4, Y: -56.7}
	assert.True(t, v.ScreenToWorld(v.WorldToScreen(w)).Eq(w, tol))
}

func TestViewportZoomAtKeepsAnchor(t *testing.T) {
	v := NewViewport()
	anchor := Point{X: 300, Y: 200}
	before := v.ScreenToWorld(anchor)

	v.ZoomAt(anchor, 2)
	assert.Equal(t, 2.0, v.Zoom)
	assert.True(t, v.ScreenToWorld(anchor).Eq(before, tol))

	v.ZoomAt(anchor, 100)
	assert.Equal(t, MaxZoom, v.Zoom, "zoom clamps high")
	assert.True(t, v.ScreenToWorld(anchor).Eq(before, 1e-6))

	v.ZoomAt(anchor, 1e-6)
	assert.Equal(t, MinZoom, v.Zoom, "zoom clamps low")
}

func TestRectIntersectsIsSymmetric(t *testing.T) {
	rects := []Rect{
		{X: 0, Y: 0, W: 10, H: 10},
		{X: 5, Y: 5, W: 10, H: 10},
		{X: 10, Y: 0, W: 5, H: 5},
		{X: -3, Y: 2, W: 2, H: 50},
		{X: 2, Y: 2, W: 1, H: 1},
	}
	for i, a := range rects {
		for j, b := range rects {
			assert.Equal(t, a.Intersects(b), b.Intersects(a), "pair %d,%d", i, j)
		}
	}
	assert.True(t, rects[0].Intersects(rects[1]))
	assert.False(t, rects[0].Intersects(rects[2]), "touching edges do not overlap")
	assert.True(t, rects[0].Intersects(rects[4]), "containment overlaps")
}

func TestSegmentIntersectsRect(t *testing.T) {
	r := Rect{X: 10, Y: 10, W: 10, H: 10}

	assert.True(t, SegmentIntersectsRect(Point{0, 15}, Point{30, 15}, r), "crosses through")
	assert.True(t, SegmentIntersectsRect(Point{12, 12}, Point{50, 50}, r), "endpoint inside")
	assert.False(t, SegmentIntersectsRect(Point{0, 0}, Point{30, 0}, r), "passes above")
	assert.False(t, SegmentIntersectsRect(Point{0, 25}, Point{5, 30}, r))
}

func TestSegmentsIntersectParallel(t *testing.T) {
	assert.False(t, SegmentsIntersect(Point{0, 0}, Point{10, 0}, Point{0, 1}, Point{10, 1}))
	assert.True(t, SegmentsIntersect(Point{0, 0}, Point{10, 10}, Point{0, 10}, Point{10, 0}))
}

func TestCircleIntersectsRect(t *testing.T) {
	r := Rect{X: 0, Y: 0, W: 10, H: 10}
	assert.True(t, CircleIntersectsRect(Circle{Center: Point{15, 5}, Radius: 6}, r))
	assert.False(t, CircleIntersectsRect(Circle{Center: Point{15, 15}, Radius: 6}, r))
	assert.True(t, CircleIntersectsRect(Circle{Center: Point{5, 5}, Radius: 1}, r), "centre inside")
}

func TestBoundsAndCentroid(t *testing.T) {
	pts := []Point{{0, 0}, {100, 0}, {100, 100}}
	b := Bounds(pts)
	require.Equal(t, Rect{X: 0, Y: 0, W: 100, H: 100}, b)
	c := Centroid(pts)
	assert.InDelta(t, 200.0/3, c.X, tol)
	assert.InDelta(t, 100.0/3, c.Y, tol)
}
