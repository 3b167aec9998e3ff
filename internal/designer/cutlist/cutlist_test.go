package cutlist

import (
	"testing"

	"flashing-designer/internal/designer/geometry"
	"flashing-designer/internal/designer/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pt(x, y float64) geometry.Point {
	return geometry.Point{X: x, Y: y}
}

func profile(material string, qty int, lengthMm float64, pts ...geometry.Point) models.Profile {
	return models.Profile{Material: material, Quantity: qty, LengthMm: lengthMm, Points: pts}
}

// straight returns a single segment of the given girth.
func straight(material string, girth float64) models.Profile {
	return profile(material, 1, 1000, pt(0, 0), pt(girth, 0))
}

func TestMeasure(t *testing.T) {
	m := Measure(profile("Colorbond", 2, 3000, pt(0, 0), pt(100, 0), pt(100, 100)))

	assert.Equal(t, 200, m.Girth)
	assert.Equal(t, 1, m.Folds)
	assert.InDelta(t, 6, m.LinearMetres, 1e-9)
	assert.InDelta(t, 1.2, m.AreaM2, 1e-9)
}

func TestMeasureShortProfiles(t *testing.T) {
	assert.Equal(t, 0, Measure(profile("", 1, 0)).Folds)
	assert.Equal(t, 0, Measure(profile("", 1, 0, pt(0, 0))).Folds)
	assert.Equal(t, 0, Measure(straight("", 50)).Folds)
}

func TestBuildSortsByMaterialThenGirth(t *testing.T) {
	list := Build([]models.Profile{
		straight("Zinc", 100),
		straight("Colorbond", 300),
		straight("Colorbond", 200),
		straight("Colorbond", 200),
	})

	var got []int
	for _, e := range list.Entries {
		got = append(got, e.Index)
	}
	assert.Equal(t, []int{2, 3, 1, 0}, got, "equal keys keep drawing order")
	assert.Equal(t, 200, list.Entries[0].Girth)
}

func TestBuildTotals(t *testing.T) {
	list := Build([]models.Profile{
		profile("Zinc", 3, 2000, pt(0, 0), pt(100, 0), pt(100, 100)),
		profile("Colorbond", 2, 1000, pt(0, 0), pt(500, 0)),
	})

	assert.Equal(t, 2, list.Totals.Profiles)
	assert.Equal(t, 5, list.Totals.Pieces)
	assert.Equal(t, 3, list.Totals.Folds)
	assert.InDelta(t, 8, list.Totals.LinearMetres, 1e-9)
	assert.InDelta(t, 1.2+1.0, list.Totals.AreaM2, 1e-9)

	require.Len(t, list.Materials, 2)
	assert.Equal(t, "Colorbond", list.Materials[0].Material)
	assert.Equal(t, 2, list.Materials[0].Pieces)
	assert.Equal(t, "Zinc", list.Materials[1].Material)
	assert.InDelta(t, 6, list.Materials[1].LinearMetres, 1e-9)
}

func TestLayoutCardScalesAndCentres(t *testing.T) {
	e := Build([]models.Profile{profile("Zinc", 1, 1000, pt(0, 0), pt(100, 0), pt(100, 50))}).Entries[0]
	card := geometry.Rect{X: 0, Y: 0, W: 236, H: 136}
	l := LayoutCard(e, card, DefaultLayoutOptions())

	assert.InDelta(t, 1.4, l.Scale, 1e-9)
	require.Len(t, l.Points, 3)
	assert.True(t, l.Points[0].Eq(pt(48, 51), 1e-9))
	assert.True(t, l.Points[2].Eq(pt(188, 121), 1e-9))

	b := geometry.Bounds(l.Points)
	assert.True(t, b.Center().Eq(l.Area.Center(), 1e-9))

	require.Len(t, l.Segments, 2)
	assert.Equal(t, "100", l.Segments[0].Text)
	assert.Equal(t, "50", l.Segments[1].Text)
	assert.True(t, l.Segments[0].At.Eq(pt(118, 51-12), 1e-9))
	assert.Len(t, l.Header, 2)
}

func TestLayoutCardFlatProfile(t *testing.T) {
	e := Entry{Profile: straight("", 100)}
	l := LayoutCard(e, geometry.Rect{W: 236, H: 136}, DefaultLayoutOptions())

	assert.InDelta(t, 2.36*LayoutFill, l.Scale, 1e-9)

	e = Entry{Profile: profile("", 1, 0, pt(5, 5))}
	l = LayoutCard(e, geometry.Rect{W: 236, H: 136}, DefaultLayoutOptions())
	assert.Equal(t, 1.0, l.Scale)
	assert.True(t, l.Points[0].Eq(l.Area.Center(), 1e-9))
}

func TestColorArrowFlipsForRight(t *testing.T) {
	p := straight("", 100)
	p.ColorSide = models.ColorSideLeft
	left := LayoutCard(Entry{Profile: p}, geometry.Rect{W: 236, H: 136}, DefaultLayoutOptions())

	p.ColorSide = models.ColorSideRight
	right := LayoutCard(Entry{Profile: p}, geometry.Rect{W: 236, H: 136}, DefaultLayoutOptions())

	require.NotNil(t, left.Arrow)
	require.NotNil(t, right.Arrow)
	mid := left.Area.Center()
	assert.Less(t, left.Arrow.From.Y, mid.Y)
	assert.Greater(t, right.Arrow.From.Y, mid.Y)
	assert.Less(t, geometry.Distance(left.Arrow.To, mid), geometry.Distance(left.Arrow.From, mid), "arrow points at the midpoint")

	p.ColorSide = models.ColorSideNone
	assert.Nil(t, LayoutCard(Entry{Profile: p}, geometry.Rect{W: 236, H: 136}, DefaultLayoutOptions()).Arrow)
}

func TestFoldMarkers(t *testing.T) {
	p := straight("", 100)
	p.StartFold = &models.EndFold{Type: models.FoldHook, Direction: models.FoldDown, Length: 10}
	p.EndFold = &models.EndFold{Type: models.FoldNone}
	l := LayoutCard(Entry{Profile: p}, geometry.Rect{W: 236, H: 136}, DefaultLayoutOptions())

	require.Len(t, l.Folds, 1)
	f := l.Folds[0]
	assert.True(t, f.AtStart)
	assert.Equal(t, models.FoldHook, f.Type)
	assert.Greater(t, f.To.Y, f.From.Y, "down folds point to the right-hand side")
}

func TestPaginate(t *testing.T) {
	var ps []models.Profile
	for i := 0; i < 7; i++ {
		ps = append(ps, straight("Zinc", float64(100+i)))
	}
	spec := DefaultPageSpec()
	pages := Paginate(Build(ps), spec, DefaultLayoutOptions())

	require.Len(t, pages, 2)
	assert.Len(t, pages[0].Cards, 6)
	assert.Len(t, pages[1].Cards, 1)
	assert.Equal(t, 2, pages[1].Number)
	assert.Equal(t, 6, pages[1].Cards[0].Entry.Index)

	r := spec.CardRect(4)
	w := (spec.Width - 2*spec.Margin - 2*spec.Gutter) / 3
	h := (spec.Height - 2*spec.Margin - spec.Gutter) / 2
	assert.InDelta(t, spec.Margin+w+spec.Gutter, r.X, 1e-9)
	assert.InDelta(t, spec.Margin+h+spec.Gutter, r.Y, 1e-9)
	assert.Equal(t, pages[0].Cards[4].Layout.Card, r)
}
