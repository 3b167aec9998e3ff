package render

import (
	"fmt"
	"io"
	"math"

	"flashing-designer/internal/designer/cutlist"
	"flashing-designer/internal/designer/geometry"

	svg "github.com/ajstarks/svgo"
)

// Styles shared by the SVG cards.
const (
	cardStyle    = "fill:white;stroke:#333;stroke-width:1"
	profileStyle = "fill:none;stroke:black;stroke-width:2;stroke-linejoin:round"
	labelStyle   = "text-anchor:middle;dominant-baseline:middle;font-family:monospace;font-size:11px;fill:#333"
	headerStyle  = "font-family:monospace;font-size:12px;fill:black"
	arrowStyle   = "stroke:#c0392b;stroke-width:1.5"
	foldStyle    = "stroke:#2c3e50;stroke-width:1.5;stroke-dasharray:3,2"
	footerStyle  = "text-anchor:end;font-family:monospace;font-size:10px;fill:#666"
)

// arrowHead is the length of arrow tips in output units.
const arrowHead = 7.0

// SVGCard writes one fabrication card as a standalone SVG document.
func SVGCard(w io.Writer, card cutlist.Card) error {
	r := card.Layout.Card
	canvas := svg.New(w)
	canvas.Start(ix(r.W), ix(r.H))
	drawCardSVG(canvas, card, geometry.Point{X: -r.X, Y: -r.Y})
	canvas.End()
	return nil
}

// SVGSheet writes a full page of cards.
func SVGSheet(w io.Writer, page cutlist.Page, spec cutlist.PageSpec) error {
	canvas := svg.New(w)
	canvas.Start(ix(spec.Width), ix(spec.Height))
	canvas.Title(fmt.Sprintf("Fabrication sheet %d", page.Number))
	for _, c := range page.Cards {
		drawCardSVG(canvas, c, geometry.Point{})
	}
	canvas.Text(ix(spec.Width-spec.Margin), ix(spec.Height-spec.Margin/2), fmt.Sprintf("Page %d", page.Number), footerStyle)
	canvas.End()
	return nil
}

func drawCardSVG(canvas *svg.SVG, card cutlist.Card, origin geometry.Point) {
	l := card.Layout
	at := func(p geometry.Point) (int, int) {
		q := p.Add(origin)
		return ix(q.X), ix(q.Y)
	}

	x, y := at(geometry.Point{X: l.Card.X, Y: l.Card.Y})
	canvas.Rect(x, y, ix(l.Card.W), ix(l.Card.H), cardStyle)
	for i, line := range l.Header {
		canvas.Text(x+8, y+16+i*14, line, headerStyle)
	}

	if len(l.Points) > 1 {
		xs := make([]int, len(l.Points))
		ys := make([]int, len(l.Points))
		for i, p := range l.Points {
			xs[i], ys[i] = at(p)
		}
		canvas.Polyline(xs, ys, profileStyle)
	} else if len(l.Points) == 1 {
		cx, cy := at(l.Points[0])
		canvas.Circle(cx, cy, 2, "fill:black")
	}

	for _, s := range l.Segments {
		tx, ty := at(s.At)
		canvas.Text(tx, ty, s.Text, labelStyle)
	}

	for _, f := range l.Folds {
		x1, y1 := at(f.From)
		x2, y2 := at(f.To)
		canvas.Line(x1, y1, x2, y2, foldStyle)
		canvas.Text(x2, y2-4, string(f.Type), labelStyle)
	}

	if a := l.Arrow; a != nil {
		cx, cy := at(a.Circle)
		canvas.Circle(cx, cy, 5, "fill:none;"+arrowStyle)
		x1, y1 := at(a.From)
		x2, y2 := at(a.To)
		canvas.Line(x1, y1, x2, y2, arrowStyle)
		hx, hy := arrowTip(a.From.Add(origin), a.To.Add(origin))
		canvas.Polygon(hx, hy, "fill:#c0392b")
	}
}

// arrowTip returns the triangle at the "to" end of from→to.
func arrowTip(from, to geometry.Point) ([]int, []int) {
	d := to.Sub(from).Unit()
	n := geometry.Point{X: -d.Y, Y: d.X}
	base := to.Sub(d.Scale(arrowHead))
	b1 := base.Add(n.Scale(arrowHead / 2))
	b2 := base.Sub(n.Scale(arrowHead / 2))
	return []int{ix(to.X), ix(b1.X), ix(b2.X)}, []int{ix(to.Y), ix(b1.Y), ix(b2.Y)}
}

func ix(v float64) int {
	return int(math.Round(v))
}
