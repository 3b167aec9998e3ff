package cutlist

import (
	"fmt"
	"math"

	"flashing-designer/internal/designer/geometry"
	"flashing-designer/internal/designer/models"
)

// LayoutFill is the share of the drawing area a profile may occupy.
const LayoutFill = 0.7

type LayoutOptions struct {
	HeaderHeight float64
	LabelGap     float64
	ArrowOffset  float64
	ArrowLength  float64
	FoldLength   float64
}

func DefaultLayoutOptions() LayoutOptions {
	return LayoutOptions{
		HeaderHeight: 36,
		LabelGap:     12,
		ArrowOffset:  28,
		ArrowLength:  20,
		FoldLength:   10,
	}
}

type SegmentLabel struct {
	Index  int            `json:"index"`
	At     geometry.Point `json:"at"`
	Length float64        `json:"length"`
	Text   string         `json:"text"`
}

// Arrow marks the coated face. Circle is where the toggle sat in the editor;
// the arrow points from it toward the girth midpoint.
type Arrow struct {
	Circle geometry.Point   `json:"circle"`
	From   geometry.Point   `json:"from"`
	To     geometry.Point   `json:"to"`
	Side   models.ColorSide `json:"side"`
}

type FoldMarker struct {
	AtStart bool            `json:"atStart"`
	From    geometry.Point  `json:"from"`
	To      geometry.Point  `json:"to"`
	Type    models.FoldType `json:"type"`
	Length  float64         `json:"length"`
}

// CardLayout is the card-space geometry of one fabrication card.
type CardLayout struct {
	Card     geometry.Rect    `json:"card"`
	Area     geometry.Rect    `json:"area"`
	Scale    float64          `json:"scale"`
	Points   []geometry.Point `json:"points"`
	Segments []SegmentLabel   `json:"segments"`
	Arrow    *Arrow           `json:"arrow,omitempty"`
	Folds    []FoldMarker     `json:"folds"`
	Header   []string         `json:"header"`
}

// ============================================================
// Layout
// ============================================================

// LayoutCard fits the entry's profile into card below the header. The profile
// keeps its aspect ratio, fills at most LayoutFill of the drawing area and is
// centred in it.
func LayoutCard(e Entry, card geometry.Rect, opts LayoutOptions) CardLayout {
	p := e.Profile
	area := geometry.Rect{X: card.X, Y: card.Y + opts.HeaderHeight, W: card.W, H: card.H - opts.HeaderHeight}
	if area.H < 0 {
		area.H = 0
	}

	l := CardLayout{Card: card, Area: area, Header: header(e)}
	if len(p.Points) == 0 {
		return l
	}

	b := geometry.Bounds(p.Points)
	l.Scale = fitScale(area.W, area.H, b.W, b.H)

	from, to := b.Center(), area.Center()
	l.Points = make([]geometry.Point, len(p.Points))
	for i, pt := range p.Points {
		l.Points[i] = to.Add(pt.Sub(from).Scale(l.Scale))
	}

	for i := 1; i < len(l.Points); i++ {
		a, c := l.Points[i-1], l.Points[i]
		length := geometry.Distance(p.Points[i-1], p.Points[i])
		l.Segments = append(l.Segments, SegmentLabel{
			Index:  i,
			At:     geometry.Midpoint(a, c).Add(geometry.LeftNormal(a, c).Scale(opts.LabelGap)),
			Length: length,
			Text:   fmt.Sprintf("%.0f", length),
		})
	}

	if len(l.Points) >= 2 {
		l.Arrow = colorArrow(l.Points, p.ColorSide, opts)
		l.Folds = foldMarkers(l.Points, p, opts)
	}
	return l
}

// fitScale handles profiles that are flat in one axis (or a single point).
func fitScale(aw, ah, pw, ph float64) float64 {
	switch {
	case pw <= 0 && ph <= 0:
		return 1
	case pw <= 0:
		return ah / ph * LayoutFill
	case ph <= 0:
		return aw / pw * LayoutFill
	}
	return math.Min(aw/pw, ah/ph) * LayoutFill
}

func colorArrow(pts []geometry.Point, side models.ColorSide, opts LayoutOptions) *Arrow {
	if side == models.ColorSideNone {
		return nil
	}
	mid, seg := geometry.GirthMidpoint(pts)
	n := geometry.LeftNormal(pts[seg-1], pts[seg])
	if side == models.ColorSideRight {
		n = n.Scale(-1)
	}
	circle := mid.Add(n.Scale(opts.ArrowOffset))
	return &Arrow{
		Circle: circle,
		From:   circle,
		To:     circle.Sub(n.Scale(opts.ArrowLength)),
		Side:   side,
	}
}

func foldMarkers(pts []geometry.Point, p models.Profile, opts LayoutOptions) []FoldMarker {
	var out []FoldMarker
	n := len(pts)
	ends := []struct {
		fold    *models.EndFold
		at      geometry.Point
		normal  geometry.Point
		atStart bool
	}{
		{p.StartFold, pts[0], geometry.LeftNormal(pts[0], pts[1]), true},
		{p.EndFold, pts[n-1], geometry.LeftNormal(pts[n-2], pts[n-1]), false},
	}
	for _, end := range ends {
		if !end.fold.Active() {
			continue
		}
		dir := end.normal
		if end.fold.Direction == models.FoldDown {
			dir = dir.Scale(-1)
		}
		out = append(out, FoldMarker{
			AtStart: end.atStart,
			From:    end.at,
			To:      end.at.Add(dir.Scale(opts.FoldLength)),
			Type:    end.fold.Type,
			Length:  end.fold.Length,
		})
	}
	return out
}

func header(e Entry) []string {
	p := e.Profile
	title := fmt.Sprintf("#%d", e.Index+1)
	if p.Material != "" {
		title += "  " + p.Material
	}
	if p.Thickness > 0 {
		title += fmt.Sprintf(" %.2fmm", p.Thickness)
	}
	return []string{
		title,
		fmt.Sprintf("%d x %.0fmm  girth %d  folds %d", p.Quantity, p.LengthMm, e.Girth, e.Folds),
	}
}
