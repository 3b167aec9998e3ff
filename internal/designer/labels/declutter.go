package labels

import (
	"flashing-designer/internal/designer/geometry"
)

// declutterRings is how many label-heights outward candidates are tried.
const declutterRings = 3

var declutterDirections = []geometry.Point{
	{X: 0, Y: -1}, {X: 0, Y: 1}, {X: 1, Y: 0}, {X: -1, Y: 0},
	{X: 1, Y: -1}, {X: -1, Y: -1}, {X: 1, Y: 1}, {X: -1, Y: 1},
}

// Declutter pushes colliding labels to the first nearby position that is
// clear of every other label, circle and segment. Labels with no clear
// candidate stay where they are. It is not part of the default render path.
func Declutter(f *Frame) {
	for i := range f.Labels {
		l := &f.Labels[i]
		if !f.collides(i, l.Bounds()) {
			continue
		}
		origin := geometry.Point{X: l.X, Y: l.Y}
		if pos, ok := f.clearSpot(i, origin, l.Width, l.Height); ok {
			l.X, l.Y = pos.X, pos.Y
		}
	}
}

func (f *Frame) clearSpot(i int, origin geometry.Point, w, h float64) (geometry.Point, bool) {
	for ring := 1; ring <= declutterRings; ring++ {
		for _, d := range declutterDirections {
			pos := origin.Add(geometry.Point{X: d.X * w * float64(ring), Y: d.Y * h * float64(ring)})
			if !f.collides(i, geometry.RectAround(pos, w, h)) {
				return pos, true
			}
		}
	}
	return geometry.Point{}, false
}
