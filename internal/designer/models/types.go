package models

import (
	"fmt"

	"flashing-designer/internal/designer/geometry"
)

// ============================================================
// End folds & colour side
// ============================================================

type ColorSide string

const (
	ColorSideNone  ColorSide = ""
	ColorSideLeft  ColorSide = "left"
	ColorSideRight ColorSide = "right"
)

type FoldType string

const (
	FoldNone      FoldType = "none"
	FoldCrush     FoldType = "crush"
	FoldOpenCrush FoldType = "open_crush"
	FoldHook      FoldType = "hook"
	FoldBreak     FoldType = "break"
)

// FoldCycle is the order a fold toggle walks through.
var FoldCycle = []FoldType{FoldNone, FoldCrush, FoldOpenCrush, FoldHook, FoldBreak}

// Next returns the fold type after t in FoldCycle.
func (t FoldType) Next() FoldType {
	for i, ft := range FoldCycle {
		if ft == t {
			return FoldCycle[(i+1)%len(FoldCycle)]
		}
	}
	return FoldCrush
}

type FoldDirection string

const (
	FoldUp   FoldDirection = "up"
	FoldDown FoldDirection = "down"
)

type EndFold struct {
	Type      FoldType      `json:"type"`
	Length    float64       `json:"length"`
	Direction FoldDirection `json:"direction"`
}

// Active reports whether the fold is anything other than none.
func (f *EndFold) Active() bool {
	return f != nil && f.Type != "" && f.Type != FoldNone
}

// ============================================================
// Comments
// ============================================================

type CommentBubble struct {
	ID     string  `json:"id"`
	Text   string  `json:"text"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

func (c CommentBubble) Bounds() geometry.Rect {
	return geometry.Rect{X: c.X, Y: c.Y, W: c.Width, H: c.Height}
}

// ============================================================
// Profile
// ============================================================

// Profile is one flashing cross-section. Points are in world units.
type Profile struct {
	ID           string                    `json:"id,omitempty"`
	OrderID      string                    `json:"orderId,omitempty"`
	Position     int                       `json:"position"`
	Points       []geometry.Point          `json:"points"`
	Material     string                    `json:"material"`
	Thickness    float64                   `json:"thickness"`
	Quantity     int                       `json:"quantity"`
	LengthMm     float64                   `json:"lengthMm"`
	ColorSide    ColorSide                 `json:"colorSide,omitempty"`
	StartFold    *EndFold                  `json:"startFold,omitempty"`
	EndFold      *EndFold                  `json:"endFold,omitempty"`
	LabelOffsets map[string]geometry.Point `json:"labelOffsets,omitempty"`
	Comments     []CommentBubble           `json:"comments,omitempty"`
	CreatedAt    string                    `json:"createdAt,omitempty"`
	UpdatedAt    string                    `json:"updatedAt,omitempty"`
}

// Complete reports whether the profile has at least one segment.
func (p Profile) Complete() bool {
	return len(p.Points) >= 2
}

// Clone returns a deep copy so callers can mutate freely.
func (p Profile) Clone() Profile {
	out := p
	out.Points = append([]geometry.Point(nil), p.Points...)
	if p.StartFold != nil {
		f := *p.StartFold
		out.StartFold = &f
	}
	if p.EndFold != nil {
		f := *p.EndFold
		out.EndFold = &f
	}
	if p.LabelOffsets != nil {
		out.LabelOffsets = make(map[string]geometry.Point, len(p.LabelOffsets))
		for k, v := range p.LabelOffsets {
			out.LabelOffsets[k] = v
		}
	}
	out.Comments = append([]CommentBubble(nil), p.Comments...)
	return out
}

// DimensionKey is the label offset key of segment points[i-1]→points[i].
func DimensionKey(i int) string {
	return fmt.Sprintf("dimension-%d", i)
}

// AngleKey is the label offset key of interior vertex v.
func AngleKey(v int) string {
	return fmt.Sprintf("angle-%d", v)
}

// ============================================================
// Order
// ============================================================

type OrderStatus string

const (
	OrderDraft     OrderStatus = "draft"
	OrderSubmitted OrderStatus = "submitted"
)

type Order struct {
	ID        string      `json:"id"`
	Status    OrderStatus `json:"status"`
	Reference string      `json:"reference"`
	CreatedAt string      `json:"createdAt"`
}
