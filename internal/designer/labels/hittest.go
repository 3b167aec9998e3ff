package labels

import (
	"flashing-designer/internal/designer/geometry"
	"flashing-designer/internal/designer/models"
)

type HitKind int

const (
	HitNone HitKind = iota
	HitColorSide
	HitFold
	HitLabel
	HitComment
)

func (k HitKind) String() string {
	switch k {
	case HitColorSide:
		return "color-side"
	case HitFold:
		return "fold"
	case HitLabel:
		return "label"
	case HitComment:
		return "comment"
	}
	return "none"
}

// Hit describes what lies under an input position.
type Hit struct {
	Kind      HitKind
	Side      models.ColorSide
	AtStart   bool
	Label     LabelInfo
	CommentID string
}

// HitTest resolves a screen position. Small affordances win over labels,
// labels over comments, and anything else falls through to point placement.
func (f *Frame) HitTest(screen geometry.Point) Hit {
	for _, c := range f.ColorSides {
		if c.Contains(screen) {
			return Hit{Kind: HitColorSide, Side: c.Side}
		}
	}
	for _, c := range f.Folds {
		if c.Contains(screen) {
			return Hit{Kind: HitFold, AtStart: c.AtStart}
		}
	}
	for i := len(f.Labels) - 1; i >= 0; i-- {
		if f.Labels[i].Bounds().Contains(screen) {
			return Hit{Kind: HitLabel, Label: f.Labels[i]}
		}
	}
	for i := len(f.Comments) - 1; i >= 0; i-- {
		if f.Comments[i].Bounds.Contains(screen) {
			return Hit{Kind: HitComment, CommentID: f.Comments[i].ID}
		}
	}
	return Hit{Kind: HitNone}
}

// HitTestWorld resolves a world position through the frame's view.
func (f *Frame) HitTestWorld(world geometry.Point) Hit {
	return f.HitTest(f.View.WorldToScreen(world))
}
