package editor

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"flashing-designer/internal/designer/geometry"
)

var (
	ErrInvalidDimension  = errors.New("dimension must be a positive number")
	ErrInvalidAngle      = errors.New("angle must be between 1 and 179 degrees")
	ErrNotNumeric        = errors.New("value is not a number")
	ErrDegenerateSegment = errors.New("segment has zero length")
	ErrIndexOutOfRange   = errors.New("index out of range")
	ErrDuplicatePoint    = errors.New("point repeats the previous point")
	ErrRotationInactive  = errors.New("no rotation in progress")
)

// Angle limits for a fold.
const (
	MinAngle = 1.0
	MaxAngle = 179.0
)

// AngleTolerance is the default slack Validate allows, in degrees.
const AngleTolerance = 1e-6

// ============================================================
// Shape
// ============================================================

// Shape pairs the point buffer with the canonical angle map. Every method
// except replaceRigid keeps angles[v] equal to the geometric angle at v.
type Shape struct {
	points []geometry.Point
	angles map[int]float64
}

// NewShape copies points and derives the angle map from them.
func NewShape(points []geometry.Point) *Shape {
	s := &Shape{
		points: append([]geometry.Point(nil), points...),
		angles: make(map[int]float64),
	}
	for v := 1; v < len(s.points)-1; v++ {
		s.angles[v] = s.geometricAngle(v)
	}
	return s
}

func (s *Shape) Len() int {
	return len(s.points)
}

// Points returns a copy of the point buffer.
func (s *Shape) Points() []geometry.Point {
	return append([]geometry.Point(nil), s.points...)
}

func (s *Shape) Point(i int) geometry.Point {
	return s.points[i]
}

// Angle returns the canonical angle stored for vertex v.
func (s *Shape) Angle(v int) (float64, bool) {
	a, ok := s.angles[v]
	return a, ok
}

// Angles returns a copy of the canonical angle map.
func (s *Shape) Angles() map[int]float64 {
	out := make(map[int]float64, len(s.angles))
	for k, v := range s.angles {
		out[k] = v
	}
	return out
}

// SegmentLength returns |points[i] - points[i-1]|.
func (s *Shape) SegmentLength(i int) (float64, error) {
	if i < 1 || i >= len(s.points) {
		return 0, fmt.Errorf("segment %d: %w", i, ErrIndexOutOfRange)
	}
	return geometry.Distance(s.points[i-1], s.points[i]), nil
}

// Append adds p and records the angle of the vertex it completes.
func (s *Shape) Append(p geometry.Point) error {
	if n := len(s.points); n > 0 && s.points[n-1] == p {
		return ErrDuplicatePoint
	}
	s.points = append(s.points, p)
	if n := len(s.points); n >= 3 {
		s.angles[n-2] = s.geometricAngle(n - 2)
	}
	return nil
}

// SetDimension resizes segment i to length and translates every point from i
// onward by the same delta, so all downstream lengths and angles survive.
func (s *Shape) SetDimension(i int, length float64) error {
	if math.IsNaN(length) || math.IsInf(length, 0) || length <= 0 {
		return ErrInvalidDimension
	}
	if i < 1 || i >= len(s.points) {
		return fmt.Errorf("segment %d: %w", i, ErrIndexOutOfRange)
	}

	seg := s.points[i].Sub(s.points[i-1])
	if seg.Len() == 0 {
		return ErrDegenerateSegment
	}

	target := s.points[i-1].Add(seg.Unit().Scale(length))
	delta := target.Sub(s.points[i])
	for j := i; j < len(s.points); j++ {
		s.points[j] = s.points[j].Add(delta)
	}
	return nil
}

// SetAngle re-poses the chain after vertex v so the fold at v measures deg,
// keeping the turn direction. Points after v rotate rigidly about points[v].
func (s *Shape) SetAngle(v int, deg float64) error {
	if math.IsNaN(deg) || deg < MinAngle || deg > MaxAngle {
		return ErrInvalidAngle
	}
	if v < 1 || v >= len(s.points)-1 {
		return fmt.Errorf("vertex %d: %w", v, ErrIndexOutOfRange)
	}

	pivot := s.points[v]
	in := s.points[v-1].Sub(pivot)
	out := s.points[v+1].Sub(pivot)
	if in.Len() == 0 || out.Len() == 0 {
		return ErrDegenerateSegment
	}

	sign := 1.0
	if in.Cross(out) < 0 {
		sign = -1
	}

	current := math.Atan2(out.Y, out.X)
	target := math.Atan2(in.Y, in.X) + sign*geometry.Radians(deg)
	delta := target - current

	for j := v + 1; j < len(s.points); j++ {
		s.points[j] = geometry.RotateAbout(s.points[j], pivot, delta)
	}
	s.angles[v] = deg
	return nil
}

// Pop removes the last point and forgets the angle of the vertex that is no
// longer interior.
func (s *Shape) Pop() (geometry.Point, bool) {
	n := len(s.points)
	if n == 0 {
		return geometry.Point{}, false
	}
	last := s.points[n-1]
	s.points = s.points[:n-1]
	for v := range s.angles {
		if v >= n-2 {
			delete(s.angles, v)
		}
	}
	return last, true
}

func (s *Shape) Reset() {
	s.points = nil
	s.angles = make(map[int]float64)
}

// replaceRigid swaps in new coordinates without touching the angle map. It is
// only valid for rigid motions of the whole shape.
func (s *Shape) replaceRigid(points []geometry.Point) {
	copy(s.points, points)
}

// Validate checks that every stored angle matches the geometry within tol and
// that no entry refers to a non-interior vertex.
func (s *Shape) Validate(tol float64) error {
	keys := make([]int, 0, len(s.angles))
	for v := range s.angles {
		keys = append(keys, v)
	}
	sort.Ints(keys)

	for _, v := range keys {
		if v < 1 || v >= len(s.points)-1 {
			return fmt.Errorf("angle entry for vertex %d of %d points is not interior", v, len(s.points))
		}
		got := s.geometricAngle(v)
		if math.Abs(got-s.angles[v]) > tol {
			return fmt.Errorf("vertex %d: stored angle %.6f, geometry %.6f", v, s.angles[v], got)
		}
	}
	for v := 1; v < len(s.points)-1; v++ {
		if _, ok := s.angles[v]; !ok {
			return fmt.Errorf("vertex %d has no stored angle", v)
		}
	}
	return nil
}

func (s *Shape) geometricAngle(v int) float64 {
	return geometry.AngleAt(s.points[v-1], s.points[v], s.points[v+1])
}
