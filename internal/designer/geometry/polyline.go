package geometry

import "math"

// ============================================================
// Polyline measurements
// ============================================================

// PathLength is the sum of all segment lengths.
func PathLength(points []Point) float64 {
	var total float64
	for i := 1; i < len(points); i++ {
		total += Distance(points[i-1], points[i])
	}
	return total
}

// Girth is the developed length of the polyline rounded to whole units.
func Girth(points []Point) int {
	return int(math.Round(PathLength(points)))
}

// Centroid is the mean of all points.
func Centroid(points []Point) Point {
	if len(points) == 0 {
		return Point{}
	}
	var sx, sy float64
	for _, p := range points {
		sx += p.X
		sy += p.Y
	}
	n := float64(len(points))
	return Point{X: sx / n, Y: sy / n}
}

// PointAlong walks the polyline from the first point and returns the point
// reached after dist units together with the index i of the segment
// points[i-1]→points[i] it lies on. Distances past the end clamp to the last point.
func PointAlong(points []Point, dist float64) (Point, int) {
	switch len(points) {
	case 0:
		return Point{}, 0
	case 1:
		return points[0], 0
	}

	remaining := math.Max(dist, 0)
	for i := 1; i < len(points); i++ {
		segLen := Distance(points[i-1], points[i])
		if segLen == 0 {
			continue
		}
		if remaining <= segLen {
			t := remaining / segLen
			d := points[i].Sub(points[i-1])
			return points[i-1].Add(d.Scale(t)), i
		}
		remaining -= segLen
	}
	return points[len(points)-1], len(points) - 1
}

// GirthMidpoint is the point halfway along the developed length.
func GirthMidpoint(points []Point) (Point, int) {
	return PointAlong(points, PathLength(points)/2)
}

// Bounds returns the axis-aligned bounding box of points.
func Bounds(points []Point) Rect {
	if len(points) == 0 {
		return Rect{}
	}
	minX, minY := math.MaxFloat64, math.MaxFloat64
	maxX, maxY := -math.MaxFloat64, -math.MaxFloat64
	for _, p := range points {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	return Rect{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}
