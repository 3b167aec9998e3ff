package canvas

import (
	"errors"

	"flashing-designer/internal/designer/editor"
	"flashing-designer/internal/designer/geometry"
	"flashing-designer/internal/designer/gesture"
	"flashing-designer/internal/designer/labels"
	"flashing-designer/internal/designer/models"
)

type Outcome string

const (
	OutcomeNone             Outcome = "none"
	OutcomePointAdded       Outcome = "point-added"
	OutcomeColorSideToggled Outcome = "color-side-toggled"
	OutcomeFoldCycled       Outcome = "fold-cycled"
	OutcomeEditRequested    Outcome = "edit-requested"
	OutcomeLabelMoved       Outcome = "label-moved"
	OutcomeCommentMoved     Outcome = "comment-moved"
)

// EditRequest describes the dialog a tap on a label or comment opens.
type EditRequest struct {
	Kind  string  `json:"kind"`
	Key   string  `json:"key"`
	Index int     `json:"index,omitempty"`
	Value float64 `json:"value,omitempty"`
	Text  string  `json:"text,omitempty"`
}

// Result reports what an input did to the profile.
type Result struct {
	Outcome Outcome         `json:"outcome"`
	Edit    *EditRequest    `json:"edit,omitempty"`
	Fold    *models.EndFold `json:"fold,omitempty"`
}

// ============================================================
// Canvas
// ============================================================

// Canvas routes pointer and touch input to the editor. It is not safe for
// concurrent use.
type Canvas struct {
	ed       *editor.Editor
	opts     labels.Options
	gestures *gesture.Machine
	frames   *FrameScheduler
}

func New(ed *editor.Editor, opts labels.Options) *Canvas {
	c := &Canvas{ed: ed, opts: opts}
	c.gestures = gesture.NewMachine(&ed.View, c.probe, gesture.DefaultConfig())
	return c
}

func (c *Canvas) Editor() *editor.Editor {
	return c.ed
}

func (c *Canvas) GestureState() gesture.State {
	return c.gestures.State()
}

// SetScheduler attaches a redraw throttle that every input pokes.
func (c *Canvas) SetScheduler(s *FrameScheduler) {
	c.frames = s
}

// Frame derives the current labels and hit circles, including any label or
// comment drag still being staged.
func (c *Canvas) Frame() *labels.Frame {
	in := labels.Input{
		Profile: c.ed.Profile(),
		Angles:  c.ed.Shape().Angles(),
		View:    c.ed.View,
	}
	if d := c.gestures.Drag(); d != nil {
		off := d.Offset(c.ed.View.Zoom)
		switch d.Target.Kind {
		case gesture.TargetLabel:
			in.Drag = &labels.Drag{Key: d.Target.Key, Offset: in.Profile.LabelOffsets[d.Target.Key].Add(off)}
		case gesture.TargetComment:
			for i := range in.Profile.Comments {
				if in.Profile.Comments[i].ID == d.Target.Key {
					in.Profile.Comments[i].X += off.X
					in.Profile.Comments[i].Y += off.Y
				}
			}
		}
	}
	return labels.Build(in, c.opts)
}

// Click handles a mouse click or resolved tap at a screen position.
func (c *Canvas) Click(screen geometry.Point) (Result, error) {
	defer c.requestFrame()

	h := c.Frame().HitTest(screen)
	switch h.Kind {
	case labels.HitColorSide:
		c.ed.ToggleColorSide(h.Side)
		return Result{Outcome: OutcomeColorSideToggled}, nil
	case labels.HitFold:
		fold := c.ed.CycleFold(h.AtStart)
		return Result{Outcome: OutcomeFoldCycled, Fold: &fold}, nil
	case labels.HitLabel:
		return Result{Outcome: OutcomeEditRequested, Edit: labelEdit(h.Label)}, nil
	case labels.HitComment:
		return c.commentEdit(h.CommentID), nil
	}

	err := c.ed.AddScreenPoint(screen)
	if errors.Is(err, editor.ErrDuplicatePoint) {
		return Result{Outcome: OutcomeNone}, nil
	}
	if err != nil {
		return Result{Outcome: OutcomeNone}, err
	}
	return Result{Outcome: OutcomePointAdded}, nil
}

// HandleTouch feeds one touch event through the gesture machine.
func (c *Canvas) HandleTouch(ev gesture.Event) (Result, error) {
	defer c.requestFrame()

	switch a := c.gestures.Handle(ev).(type) {
	case gesture.Tap:
		return c.Click(a.Screen)
	case gesture.DragCommitted:
		if a.Target.Kind == gesture.TargetComment {
			c.ed.MoveComment(a.Target.Key, a.Offset)
			return Result{Outcome: OutcomeCommentMoved}, nil
		}
		if _, ok := c.Frame().Label(a.Target.Key); !ok {
			return Result{Outcome: OutcomeNone}, nil
		}
		c.ed.ShiftLabel(a.Target.Key, a.Offset)
		return Result{Outcome: OutcomeLabelMoved}, nil
	case gesture.EditRequested:
		if a.Target.Kind == gesture.TargetComment {
			return c.commentEdit(a.Target.Key), nil
		}
		if l, ok := c.Frame().Label(a.Target.Key); ok {
			return Result{Outcome: OutcomeEditRequested, Edit: labelEdit(l)}, nil
		}
	}
	return Result{Outcome: OutcomeNone}, nil
}

// probe picks drag targets for the gesture machine.
func (c *Canvas) probe(screen geometry.Point) (gesture.Target, bool) {
	h := c.Frame().HitTest(screen)
	switch h.Kind {
	case labels.HitLabel:
		return gesture.Target{Kind: gesture.TargetLabel, Key: h.Label.Key()}, true
	case labels.HitComment:
		return gesture.Target{Kind: gesture.TargetComment, Key: h.CommentID}, true
	}
	return gesture.Target{}, false
}

func (c *Canvas) commentEdit(id string) Result {
	for _, cm := range c.ed.Profile().Comments {
		if cm.ID == id {
			return Result{
				Outcome: OutcomeEditRequested,
				Edit:    &EditRequest{Kind: "comment", Key: id, Text: cm.Text},
			}
		}
	}
	return Result{Outcome: OutcomeNone}
}

func labelEdit(l labels.LabelInfo) *EditRequest {
	return &EditRequest{Kind: string(l.Type), Key: l.Key(), Index: l.Index, Value: l.Value, Text: l.Text}
}

func (c *Canvas) requestFrame() {
	if c.frames != nil {
		c.frames.Request()
	}
}
