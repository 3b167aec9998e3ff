package labels

import (
	"flashing-designer/internal/designer/geometry"
)

// ============================================================
// Overlap detection
// ============================================================

// Overlaps reports whether two labels' boxes intersect. It is symmetric.
func Overlaps(a, b LabelInfo) bool {
	return a.Bounds().Intersects(b.Bounds())
}

// FlagOverlaps marks every label that touches another label, a hit circle or
// a profile segment. Nothing is moved.
func (f *Frame) FlagOverlaps() {
	for i := range f.Labels {
		f.Labels[i].Overlapping = f.collides(i, f.Labels[i].Bounds())
	}
}

// collides tests r (the box of label skip, possibly at a trial position)
// against everything else on screen.
func (f *Frame) collides(skip int, r geometry.Rect) bool {
	for j, other := range f.Labels {
		if j != skip && r.Intersects(other.Bounds()) {
			return true
		}
	}
	for _, c := range f.circles() {
		if geometry.CircleIntersectsRect(c.Circle, r) {
			return true
		}
	}
	for i := 1; i < len(f.Screen); i++ {
		if geometry.SegmentIntersectsRect(f.Screen[i-1], f.Screen[i], r) {
			return true
		}
	}
	return false
}

func (f *Frame) circles() []HitCircle {
	out := make([]HitCircle, 0, len(f.Points)+len(f.ColorSides)+len(f.Folds))
	out = append(out, f.Points...)
	out = append(out, f.ColorSides...)
	return append(out, f.Folds...)
}

// Overlapping returns the labels currently flagged for repositioning.
func (f *Frame) Overlapping() []LabelInfo {
	var out []LabelInfo
	for _, l := range f.Labels {
		if l.Overlapping {
			out = append(out, l)
		}
	}
	return out
}
