package geometry

// Zoom limits of the editor view.
const (
	MinZoom = 0.25
	MaxZoom = 4.0
)

// Viewport maps world units to screen pixels: screen = world*Zoom + Pan.
type Viewport struct {
	Zoom float64 `json:"zoom"`
	Pan  Point   `json:"pan"`
}

// NewViewport returns the default view (zoom 1, no pan).
func NewViewport() Viewport {
	return Viewport{Zoom: 1}
}

func (v Viewport) WorldToScreen(p Point) Point {
	return Point{X: p.X*v.Zoom + v.Pan.X, Y: p.Y*v.Zoom + v.Pan.Y}
}

func (v Viewport) ScreenToWorld(p Point) Point {
	z := v.zoom()
	return Point{X: (p.X - v.Pan.X) / z, Y: (p.Y - v.Pan.Y) / z}
}

// PanBy shifts the view by a screen-pixel delta.
func (v *Viewport) PanBy(dx, dy float64) {
	v.Pan.X += dx
	v.Pan.Y += dy
}

// SetZoom clamps z into [MinZoom, MaxZoom].
func (v *Viewport) SetZoom(z float64) {
	v.Zoom = Clamp(z, MinZoom, MaxZoom)
}

// ZoomAt multiplies the zoom by factor while keeping the world point under
// the screen anchor stationary.
func (v *Viewport) ZoomAt(anchor Point, factor float64) {
	world := v.ScreenToWorld(anchor)
	v.SetZoom(v.zoom() * factor)
	v.Anchor(world, anchor)
}

// Anchor sets the pan so that world lands on screen.
func (v *Viewport) Anchor(world, screen Point) {
	v.Pan = Point{X: screen.X - world.X*v.Zoom, Y: screen.Y - world.Y*v.Zoom}
}

func (v *Viewport) Reset() {
	*v = NewViewport()
}

func (v Viewport) zoom() float64 {
	if v.Zoom == 0 {
		return 1
	}
	return v.Zoom
}
