package labels

import (
	"flashing-designer/internal/designer/geometry"
	"flashing-designer/internal/designer/models"
)

type LabelType string

const (
	Dimension LabelType = "dimension"
	Angle     LabelType = "angle"
)

// LabelInfo is a derived, screen-space marker. X and Y are its centre.
type LabelInfo struct {
	Type        LabelType `json:"type"`
	Index       int       `json:"index"`
	X           float64   `json:"x"`
	Y           float64   `json:"y"`
	Width       float64   `json:"width"`
	Height      float64   `json:"height"`
	Value       float64   `json:"value"`
	Text        string    `json:"text"`
	Overlapping bool      `json:"overlapping"`
}

// Key matches the profile's label offset keys.
func (l LabelInfo) Key() string {
	if l.Type == Angle {
		return models.AngleKey(l.Index)
	}
	return models.DimensionKey(l.Index)
}

func (l LabelInfo) Bounds() geometry.Rect {
	return geometry.RectAround(geometry.Point{X: l.X, Y: l.Y}, l.Width, l.Height)
}

type CircleKind string

const (
	PointCircle     CircleKind = "point"
	ColorSideCircle CircleKind = "color-side"
	FoldCircle      CircleKind = "fold"
)

// HitCircle is a fixed-radius affordance in screen space.
type HitCircle struct {
	geometry.Circle
	Kind    CircleKind       `json:"kind"`
	Index   int              `json:"index"`
	Side    models.ColorSide `json:"side,omitempty"`
	AtStart bool             `json:"atStart,omitempty"`
}

type CommentBox struct {
	ID     string        `json:"id"`
	Bounds geometry.Rect `json:"bounds"`
}

// Options tune label placement. Gaps are world units, radii and offsets pixels.
type Options struct {
	DimensionGap    float64
	AngleGap        float64
	PadX            float64
	PadY            float64
	PointRadius     float64
	ToggleRadius    float64
	ColorSideOffset float64
	FoldOffset      float64
	AutoDeclutter   bool
}

func DefaultOptions() Options {
	return Options{
		DimensionGap:    20,
		AngleGap:        25,
		PadX:            6,
		PadY:            4,
		PointRadius:     6,
		ToggleRadius:    12,
		ColorSideOffset: 45,
		FoldOffset:      28,
	}
}

// Drag is a label drag in progress, in world units.
type Drag struct {
	Key    string
	Offset geometry.Point
}

// Input is everything a frame is derived from.
type Input struct {
	Profile models.Profile
	Angles  map[int]float64
	View    geometry.Viewport
	Drag    *Drag
}

// Frame is the per-render derived view of one profile.
type Frame struct {
	View       geometry.Viewport `json:"view"`
	Screen     []geometry.Point  `json:"screen"`
	Midpoint   *geometry.Point   `json:"midpoint,omitempty"`
	Labels     []LabelInfo       `json:"labels"`
	Points     []HitCircle       `json:"points"`
	ColorSides []HitCircle       `json:"colorSides"`
	Folds      []HitCircle       `json:"folds"`
	Comments   []CommentBox      `json:"comments"`
}

// ============================================================
// Build
// ============================================================

// Build derives labels, hit circles and overlap flags for one render pass.
func Build(in Input, opts Options) *Frame {
	pts := in.Profile.Points
	f := &Frame{
		View:   in.View,
		Screen: make([]geometry.Point, len(pts)),
	}
	for i, p := range pts {
		f.Screen[i] = in.View.WorldToScreen(p)
		f.Points = append(f.Points, HitCircle{
			Circle: geometry.Circle{Center: f.Screen[i], Radius: opts.PointRadius},
			Kind:   PointCircle,
			Index:  i,
		})
	}

	for i := 1; i < len(pts); i++ {
		f.Labels = append(f.Labels, dimensionLabel(in, opts, i))
	}
	for v := 1; v < len(pts)-1; v++ {
		f.Labels = append(f.Labels, angleLabel(in, opts, v))
	}

	if len(pts) >= 2 {
		f.addColorSides(opts)
		f.addFolds(in.Profile, opts)
	}

	for _, c := range in.Profile.Comments {
		tl := in.View.WorldToScreen(geometry.Point{X: c.X, Y: c.Y})
		f.Comments = append(f.Comments, CommentBox{
			ID:     c.ID,
			Bounds: geometry.Rect{X: tl.X, Y: tl.Y, W: c.Width * in.View.Zoom, H: c.Height * in.View.Zoom},
		})
	}

	if opts.AutoDeclutter {
		Declutter(f)
	}
	f.FlagOverlaps()
	return f
}

func dimensionLabel(in Input, opts Options, i int) LabelInfo {
	a, b := in.Profile.Points[i-1], in.Profile.Points[i]
	length := geometry.Distance(a, b)
	anchor := geometry.Midpoint(a, b).Add(geometry.LeftNormal(a, b).Scale(opts.DimensionGap))

	l := LabelInfo{Type: Dimension, Index: i, Value: length, Text: formatLength(length)}
	return place(in, opts, l, anchor)
}

func angleLabel(in Input, opts Options, v int) LabelInfo {
	p := in.Profile.Points
	value, ok := in.Angles[v]
	if !ok {
		value = geometry.AngleAt(p[v-1], p[v], p[v+1])
	}
	anchor := p[v].Add(geometry.Point{Y: opts.AngleGap})

	l := LabelInfo{Type: Angle, Index: v, Value: value, Text: formatAngle(value)}
	return place(in, opts, l, anchor)
}

// place applies the stored (or live) offset and sizes the label to its text.
func place(in Input, opts Options, l LabelInfo, anchor geometry.Point) LabelInfo {
	key := l.Key()
	if in.Drag != nil && in.Drag.Key == key {
		anchor = anchor.Add(in.Drag.Offset)
	} else if off, ok := in.Profile.LabelOffsets[key]; ok {
		anchor = anchor.Add(off)
	}
	c := in.View.WorldToScreen(anchor)
	l.X, l.Y = c.X, c.Y
	l.Width, l.Height = textSize(l.Text, opts.PadX, opts.PadY)
	return l
}

func (f *Frame) addColorSides(opts Options) {
	mid, seg := geometry.GirthMidpoint(f.Screen)
	f.Midpoint = &mid
	n := geometry.LeftNormal(f.Screen[seg-1], f.Screen[seg])

	f.ColorSides = []HitCircle{
		{
			Circle: geometry.Circle{Center: mid.Add(n.Scale(opts.ColorSideOffset)), Radius: opts.ToggleRadius},
			Kind:   ColorSideCircle,
			Side:   models.ColorSideLeft,
		},
		{
			Circle: geometry.Circle{Center: mid.Sub(n.Scale(opts.ColorSideOffset)), Radius: opts.ToggleRadius},
			Kind:   ColorSideCircle,
			Index:  1,
			Side:   models.ColorSideRight,
		},
	}
}

func (f *Frame) addFolds(p models.Profile, opts Options) {
	n := len(f.Screen)
	start := geometry.LeftNormal(f.Screen[0], f.Screen[1])
	end := geometry.LeftNormal(f.Screen[n-2], f.Screen[n-1])

	if p.StartFold != nil && p.StartFold.Direction == models.FoldDown {
		start = start.Scale(-1)
	}
	if p.EndFold != nil && p.EndFold.Direction == models.FoldDown {
		end = end.Scale(-1)
	}

	f.Folds = []HitCircle{
		{
			Circle:  geometry.Circle{Center: f.Screen[0].Add(start.Scale(opts.FoldOffset)), Radius: opts.ToggleRadius},
			Kind:    FoldCircle,
			AtStart: true,
		},
		{
			Circle: geometry.Circle{Center: f.Screen[n-1].Add(end.Scale(opts.FoldOffset)), Radius: opts.ToggleRadius},
			Kind:   FoldCircle,
			Index:  n - 1,
		},
	}
}

// Label looks up a derived label by its offset key.
func (f *Frame) Label(key string) (LabelInfo, bool) {
	for _, l := range f.Labels {
		if l.Key() == key {
			return l, true
		}
	}
	return LabelInfo{}, false
}
