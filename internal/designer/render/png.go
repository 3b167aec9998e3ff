package render

import (
	"fmt"
	"image/color"
	"io"
	"sync"

	"flashing-designer/internal/designer/cutlist"
	"flashing-designer/internal/designer/geometry"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
)

var (
	monoOnce sync.Once
	monoFont *truetype.Font
	monoErr  error
)

func loadMono() (*truetype.Font, error) {
	monoOnce.Do(func() {
		monoFont, monoErr = truetype.Parse(gomono.TTF)
	})
	return monoFont, monoErr
}

func monoFace(size float64) (font.Face, error) {
	f, err := loadMono()
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}
	return truetype.NewFace(f, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	}), nil
}

var (
	arrowColor = color.RGBA{R: 0xc0, G: 0x39, B: 0x2b, A: 0xff}
	foldColor  = color.RGBA{R: 0x2c, G: 0x3e, B: 0x50, A: 0xff}
)

// PNGCard rasterises one card at the given pixel density multiplier.
func PNGCard(w io.Writer, card cutlist.Card, density float64) error {
	if density <= 0 {
		density = 1
	}
	l := card.Layout
	width, height := ix(l.Card.W*density), ix(l.Card.H*density)
	if width <= 0 || height <= 0 {
		return fmt.Errorf("card has no area: %vx%v", l.Card.W, l.Card.H)
	}

	dc := gg.NewContext(width, height)
	dc.SetColor(color.White)
	dc.Clear()
	dc.Scale(density, density)
	dc.Translate(-l.Card.X, -l.Card.Y)

	header, err := monoFace(12)
	if err != nil {
		return err
	}
	small, err := monoFace(10)
	if err != nil {
		return err
	}

	dc.SetColor(color.Black)
	dc.SetLineWidth(1)
	dc.DrawRectangle(l.Card.X+0.5, l.Card.Y+0.5, l.Card.W-1, l.Card.H-1)
	dc.Stroke()

	dc.SetFontFace(header)
	for i, line := range l.Header {
		dc.DrawString(line, l.Card.X+8, l.Card.Y+16+float64(i)*14)
	}

	if len(l.Points) > 1 {
		dc.SetLineWidth(2)
		dc.SetLineJoinRound()
		dc.MoveTo(l.Points[0].X, l.Points[0].Y)
		for _, p := range l.Points[1:] {
			dc.LineTo(p.X, p.Y)
		}
		dc.Stroke()
	}

	dc.SetFontFace(small)
	for _, s := range l.Segments {
		dc.DrawStringAnchored(s.Text, s.At.X, s.At.Y, 0.5, 0.5)
	}

	dc.SetColor(foldColor)
	dc.SetLineWidth(1.5)
	dc.SetDash(3, 2)
	for _, f := range l.Folds {
		dc.DrawLine(f.From.X, f.From.Y, f.To.X, f.To.Y)
		dc.Stroke()
		dc.DrawStringAnchored(string(f.Type), f.To.X, f.To.Y-4, 0.5, 1)
	}
	dc.SetDash()

	if a := l.Arrow; a != nil {
		dc.SetColor(arrowColor)
		dc.DrawCircle(a.Circle.X, a.Circle.Y, 5)
		dc.Stroke()
		dc.DrawLine(a.From.X, a.From.Y, a.To.X, a.To.Y)
		dc.Stroke()
		drawArrowPNG(dc, a.From, a.To)
	}

	return dc.EncodePNG(w)
}

func drawArrowPNG(dc *gg.Context, from, to geometry.Point) {
	d := to.Sub(from).Unit()
	if d.Len() == 0 {
		return
	}
	n := geometry.Point{X: -d.Y, Y: d.X}
	base := to.Sub(d.Scale(arrowHead))
	b1 := base.Add(n.Scale(arrowHead / 2))
	b2 := base.Sub(n.Scale(arrowHead / 2))

	dc.MoveTo(to.X, to.Y)
	dc.LineTo(b1.X, b1.Y)
	dc.LineTo(b2.X, b2.Y)
	dc.ClosePath()
	dc.Fill()
}
