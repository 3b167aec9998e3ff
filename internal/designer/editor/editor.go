package editor

import (
	"strconv"
	"strings"

	"flashing-designer/internal/designer/geometry"
	"flashing-designer/internal/designer/models"

	"github.com/google/uuid"
)

// Default comment bubble size in world units.
const (
	commentWidth  = 140.0
	commentHeight = 48.0
)

// ============================================================
// Editor
// ============================================================

// Editor is the single "current profile" slot: the shape being drawn, its
// fabrication metadata and the transient view. It is not safe for concurrent use.
type Editor struct {
	meta     models.Profile
	shape    *Shape
	View     geometry.Viewport
	Grid     float64
	rotation *rotation
}

// New starts an empty profile.
func New(grid float64) *Editor {
	if grid <= 0 {
		grid = geometry.DefaultGridSize
	}
	return &Editor{
		meta:  models.Profile{Quantity: 1},
		shape: NewShape(nil),
		View:  geometry.NewViewport(),
		Grid:  grid,
	}
}

// Load replaces the slot with p. The angle map is rebuilt from the points.
func Load(p models.Profile, grid float64) *Editor {
	e := New(grid)
	e.meta = p.Clone()
	e.shape = NewShape(p.Points)
	e.meta.Points = nil
	return e
}

// Profile returns a copy of the edited profile including the live points.
func (e *Editor) Profile() models.Profile {
	p := e.meta.Clone()
	p.Points = e.shape.Points()
	return p
}

// Shape exposes the geometry buffer for read access.
func (e *Editor) Shape() *Shape {
	return e.shape
}

// ============================================================
// Point placement
// ============================================================

// AddPoint appends the grid-snapped world position.
func (e *Editor) AddPoint(world geometry.Point) error {
	e.settleRotation()
	return e.shape.Append(geometry.SnapPoint(world, e.Grid))
}

// AddScreenPoint converts a screen position through the view before placing it.
func (e *Editor) AddScreenPoint(screen geometry.Point) error {
	return e.AddPoint(e.View.ScreenToWorld(screen))
}

// Undo removes the last point along with the labels that referred to it.
func (e *Editor) Undo() bool {
	e.settleRotation()
	n := e.shape.Len()
	if _, ok := e.shape.Pop(); !ok {
		return false
	}
	if e.meta.LabelOffsets != nil {
		delete(e.meta.LabelOffsets, models.DimensionKey(n-1))
		delete(e.meta.LabelOffsets, models.AngleKey(n-2))
	}
	return true
}

// Clear empties the shape and restores the default view.
func (e *Editor) Clear() {
	e.rotation = nil
	e.shape.Reset()
	e.meta.LabelOffsets = nil
	e.View.Reset()
}

// ============================================================
// Dimension & angle edits
// ============================================================

func (e *Editor) EditDimension(i int, length float64) error {
	e.settleRotation()
	return e.shape.SetDimension(i, length)
}

// EditDimensionText parses dialog input before applying it.
func (e *Editor) EditDimensionText(i int, text string) error {
	length, err := ParseDimension(text)
	if err != nil {
		return err
	}
	return e.EditDimension(i, length)
}

func (e *Editor) EditAngle(v int, deg float64) error {
	e.settleRotation()
	return e.shape.SetAngle(v, deg)
}

func (e *Editor) EditAngleText(v int, text string) error {
	deg, err := ParseAngle(text)
	if err != nil {
		return err
	}
	return e.EditAngle(v, deg)
}

// ParseDimension validates a segment length typed by the user.
func ParseDimension(text string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil {
		return 0, ErrNotNumeric
	}
	if v <= 0 {
		return 0, ErrInvalidDimension
	}
	return v, nil
}

// ParseAngle validates a fold angle typed by the user.
func ParseAngle(text string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil {
		return 0, ErrNotNumeric
	}
	if v < MinAngle || v > MaxAngle {
		return 0, ErrInvalidAngle
	}
	return v, nil
}

// ============================================================
// Metadata, labels & comments
// ============================================================

// SetMeta updates fabrication metadata. Non-positive numbers are ignored.
func (e *Editor) SetMeta(material string, thickness float64, quantity int, lengthMm float64) {
	if material != "" {
		e.meta.Material = material
	}
	if thickness > 0 {
		e.meta.Thickness = thickness
	}
	if quantity > 0 {
		e.meta.Quantity = quantity
	}
	if lengthMm > 0 {
		e.meta.LengthMm = lengthMm
	}
}

// ToggleColorSide sets side, or clears it when side is already selected.
func (e *Editor) ToggleColorSide(side models.ColorSide) {
	if e.meta.ColorSide == side {
		e.meta.ColorSide = models.ColorSideNone
		return
	}
	e.meta.ColorSide = side
}

// CycleFold advances the fold treatment at the start (or end) of the profile.
func (e *Editor) CycleFold(atStart bool) models.EndFold {
	slot := &e.meta.EndFold
	if atStart {
		slot = &e.meta.StartFold
	}
	if *slot == nil {
		*slot = &models.EndFold{Type: models.FoldNone, Direction: models.FoldUp}
	}
	(*slot).Type = (*slot).Type.Next()
	return **slot
}

// SetFold replaces the fold treatment at one end.
func (e *Editor) SetFold(atStart bool, fold models.EndFold) {
	f := fold
	if atStart {
		e.meta.StartFold = &f
		return
	}
	e.meta.EndFold = &f
}

// ShiftLabel adds a world-space correction to a label's stored offset.
func (e *Editor) ShiftLabel(key string, delta geometry.Point) {
	if e.meta.LabelOffsets == nil {
		e.meta.LabelOffsets = make(map[string]geometry.Point)
	}
	e.meta.LabelOffsets[key] = e.meta.LabelOffsets[key].Add(delta)
}

// AddComment drops a new bubble with its top-left corner at world.
func (e *Editor) AddComment(text string, world geometry.Point) models.CommentBubble {
	c := models.CommentBubble{
		ID:     uuid.NewString(),
		Text:   text,
		X:      world.X,
		Y:      world.Y,
		Width:  commentWidth,
		Height: commentHeight,
	}
	e.meta.Comments = append(e.meta.Comments, c)
	return c
}

// MoveComment shifts a bubble by a world-space delta.
func (e *Editor) MoveComment(id string, delta geometry.Point) bool {
	for i := range e.meta.Comments {
		if e.meta.Comments[i].ID == id {
			e.meta.Comments[i].X += delta.X
			e.meta.Comments[i].Y += delta.Y
			return true
		}
	}
	return false
}

func (e *Editor) SetCommentText(id, text string) bool {
	for i := range e.meta.Comments {
		if e.meta.Comments[i].ID == id {
			e.meta.Comments[i].Text = text
			return true
		}
	}
	return false
}

// Validate checks the angle map against the geometry.
func (e *Editor) Validate() error {
	return e.shape.Validate(AngleTolerance)
}
