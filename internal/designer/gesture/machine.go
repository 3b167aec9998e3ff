package gesture

import (
	"math"
	"time"

	"flashing-designer/internal/designer/geometry"
)

// Defaults for Config.
const (
	DefaultTapSlop        = 8.0 // pixels
	DefaultPinchThreshold = 0.05
	DefaultCooldown       = 300 * time.Millisecond
)

type State int

const (
	Idle State = iota
	PendingTap
	PanningOneFinger
	PanningTwoFinger
	Pinching
	DraggingLabel
)

func (s State) String() string {
	switch s {
	case PendingTap:
		return "pending-tap"
	case PanningOneFinger:
		return "panning-one-finger"
	case PanningTwoFinger:
		return "panning-two-finger"
	case Pinching:
		return "pinching"
	case DraggingLabel:
		return "dragging-label"
	}
	return "idle"
}

// ============================================================
// Events
// ============================================================

type EventKind int

const (
	TouchStart EventKind = iota
	TouchMove
	TouchEnd
	TouchCancel
)

type Touch struct {
	ID int     `json:"id"`
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
}

func (t Touch) Point() geometry.Point {
	return geometry.Point{X: t.X, Y: t.Y}
}

// Event carries the touches still on screen after the change, in screen pixels.
type Event struct {
	Kind    EventKind
	Touches []Touch
	At      time.Time
}

// ============================================================
// Targets and actions
// ============================================================

type TargetKind string

const (
	TargetLabel   TargetKind = "label"
	TargetComment TargetKind = "comment"
)

// Target is a draggable object found under a touch.
type Target struct {
	Kind TargetKind `json:"kind"`
	Key  string     `json:"key"`
}

// Probe reports the draggable target under a screen position, if any.
type Probe func(screen geometry.Point) (Target, bool)

// Action is the outcome of a finished gesture.
type Action interface {
	action()
}

type Tap struct {
	Screen geometry.Point
}

// DragCommitted carries the total drag in world units.
type DragCommitted struct {
	Target Target
	Offset geometry.Point
}

// EditRequested is a press on a target that never moved.
type EditRequested struct {
	Target Target
}

func (Tap) action()           {}
func (DragCommitted) action() {}
func (EditRequested) action() {}

// Dragging is the staging payload of a label drag. Start and Live are screen
// positions; nothing reaches the profile until the drag commits.
type Dragging struct {
	Target Target
	Start  geometry.Point
	Live   geometry.Point
	Moved  bool
}

// Offset converts the live displacement into world units.
func (d Dragging) Offset(zoom float64) geometry.Point {
	if zoom == 0 {
		zoom = 1
	}
	return d.Live.Sub(d.Start).Scale(1 / zoom)
}

// ============================================================
// Machine
// ============================================================

type Config struct {
	TapSlop        float64
	PinchThreshold float64
	Cooldown       time.Duration
}

func DefaultConfig() Config {
	return Config{
		TapSlop:        DefaultTapSlop,
		PinchThreshold: DefaultPinchThreshold,
		Cooldown:       DefaultCooldown,
	}
}

type twoFinger struct {
	startDist   float64
	startZoom   float64
	anchorWorld geometry.Point
}

// Machine classifies touch sequences. Pan and zoom are applied to the view
// directly; everything else is reported as an Action.
type Machine struct {
	cfg   Config
	view  *geometry.Viewport
	probe Probe

	state     State
	start     geometry.Point
	last      geometry.Point
	two       twoFinger
	drag      *Dragging
	lingering bool
	cooldown  time.Time
}

func NewMachine(view *geometry.Viewport, probe Probe, cfg Config) *Machine {
	return &Machine{cfg: cfg, view: view, probe: probe}
}

func (m *Machine) State() State {
	return m.state
}

// Drag returns the staged label drag, or nil.
func (m *Machine) Drag() *Dragging {
	if m.drag == nil {
		return nil
	}
	d := *m.drag
	return &d
}

// Reset drops any gesture in progress.
func (m *Machine) Reset() {
	m.state = Idle
	m.drag = nil
	m.lingering = false
}

// Handle advances the machine by one event. The returned action is nil for
// events that do not finish a gesture.
func (m *Machine) Handle(ev Event) Action {
	if ev.Kind == TouchCancel {
		m.Reset()
		return nil
	}
	if m.lingering {
		if len(ev.Touches) == 0 {
			m.Reset()
		}
		return nil
	}

	switch ev.Kind {
	case TouchStart:
		m.touchStart(ev)
	case TouchMove:
		m.touchMove(ev)
	case TouchEnd:
		return m.touchEnd(ev)
	}
	return nil
}

func (m *Machine) touchStart(ev Event) {
	if len(ev.Touches) >= 2 {
		m.drag = nil
		m.beginTwoFinger(ev.Touches[0].Point(), ev.Touches[1].Point())
		return
	}
	if len(ev.Touches) != 1 || m.state != Idle {
		return
	}

	p := ev.Touches[0].Point()
	if m.probe != nil {
		if target, ok := m.probe(p); ok {
			m.drag = &Dragging{Target: target, Start: p, Live: p}
			m.state = DraggingLabel
			return
		}
	}
	m.start, m.last = p, p
	m.state = PendingTap
}

func (m *Machine) beginTwoFinger(a, b geometry.Point) {
	mid := geometry.Midpoint(a, b)
	m.two = twoFinger{
		startDist:   geometry.Distance(a, b),
		startZoom:   m.view.Zoom,
		anchorWorld: m.view.ScreenToWorld(mid),
	}
	m.state = PanningTwoFinger
}

func (m *Machine) touchMove(ev Event) {
	switch m.state {
	case PendingTap:
		if len(ev.Touches) == 0 {
			return
		}
		p := ev.Touches[0].Point()
		if geometry.Distance(p, m.start) > m.cfg.TapSlop {
			m.state = PanningOneFinger
			m.panTo(p)
		}
	case PanningOneFinger:
		if len(ev.Touches) > 0 {
			m.panTo(ev.Touches[0].Point())
		}
	case PanningTwoFinger, Pinching:
		if len(ev.Touches) >= 2 {
			m.moveTwoFinger(ev.Touches[0].Point(), ev.Touches[1].Point())
		}
	case DraggingLabel:
		if len(ev.Touches) == 0 {
			return
		}
		m.drag.Live = ev.Touches[0].Point()
		if geometry.Distance(m.drag.Live, m.drag.Start) > m.cfg.TapSlop {
			m.drag.Moved = true
		}
	}
}

func (m *Machine) panTo(p geometry.Point) {
	d := p.Sub(m.last)
	m.view.PanBy(d.X, d.Y)
	m.last = p
}

// moveTwoFinger applies pan and zoom together: the world point under the
// starting midpoint stays under the current midpoint.
func (m *Machine) moveTwoFinger(a, b geometry.Point) {
	scale := 1.0
	if m.two.startDist > 0 {
		scale = geometry.Distance(a, b) / m.two.startDist
	}
	m.view.SetZoom(m.two.startZoom * scale)
	m.view.Anchor(m.two.anchorWorld, geometry.Midpoint(a, b))

	if math.Abs(scale-1) > m.cfg.PinchThreshold {
		m.state = Pinching
	}
}

func (m *Machine) touchEnd(ev Event) Action {
	switch m.state {
	case PendingTap:
		m.state = Idle
		if ev.At.Before(m.cooldown) {
			return nil
		}
		return Tap{Screen: m.start}
	case PanningOneFinger:
		m.state = Idle
		m.cooldown = ev.At.Add(m.cfg.Cooldown)
	case PanningTwoFinger, Pinching:
		m.state = Idle
		m.cooldown = ev.At.Add(m.cfg.Cooldown)
		m.lingering = len(ev.Touches) > 0
	case DraggingLabel:
		d := m.drag
		m.drag = nil
		m.state = Idle
		if !d.Moved {
			return EditRequested{Target: d.Target}
		}
		return DragCommitted{Target: d.Target, Offset: d.Offset(m.view.Zoom)}
	}
	return nil
}
