package cutlist

import (
	"flashing-designer/internal/designer/geometry"
)

// PageSpec describes the fabrication sheet grid in output units.
type PageSpec struct {
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
	Margin  float64 `json:"margin"`
	Gutter  float64 `json:"gutter"`
	Columns int     `json:"columns"`
	Rows    int     `json:"rows"`
}

// DefaultPageSpec is A4 landscape at 96 dpi with a 3x2 card grid.
func DefaultPageSpec() PageSpec {
	return PageSpec{Width: 1123, Height: 794, Margin: 40, Gutter: 16, Columns: 3, Rows: 2}
}

// PerPage is the number of cards a page holds.
func (s PageSpec) PerPage() int {
	return max(1, s.Columns) * max(1, s.Rows)
}

// CardRect returns the rectangle of slot k on a page, filled row by row.
func (s PageSpec) CardRect(k int) geometry.Rect {
	cols, rows := max(1, s.Columns), max(1, s.Rows)
	w := (s.Width - 2*s.Margin - float64(cols-1)*s.Gutter) / float64(cols)
	h := (s.Height - 2*s.Margin - float64(rows-1)*s.Gutter) / float64(rows)
	col, row := k%cols, (k/cols)%rows
	return geometry.Rect{
		X: s.Margin + float64(col)*(w+s.Gutter),
		Y: s.Margin + float64(row)*(h+s.Gutter),
		W: w,
		H: h,
	}
}

type Card struct {
	Entry  Entry      `json:"entry"`
	Layout CardLayout `json:"layout"`
}

type Page struct {
	Number int    `json:"number"`
	Cards  []Card `json:"cards"`
}

// Paginate lays the list out card by card in cutting-list order.
func Paginate(list List, spec PageSpec, opts LayoutOptions) []Page {
	per := spec.PerPage()
	var pages []Page
	for i, e := range list.Entries {
		slot := i % per
		if slot == 0 {
			pages = append(pages, Page{Number: len(pages) + 1})
		}
		pg := &pages[len(pages)-1]
		pg.Cards = append(pg.Cards, Card{Entry: e, Layout: LayoutCard(e, spec.CardRect(slot), opts)})
	}
	return pages
}
