package editor

import (
	"flashing-designer/internal/designer/geometry"
)

// RotationDegreesPerPixel converts horizontal drag distance to rotation.
const RotationDegreesPerPixel = 0.5

type rotation struct {
	start  []geometry.Point
	pivot  geometry.Point
	degree float64
}

// ============================================================
// Whole-profile rotation
// ============================================================

// BeginRotation snapshots the points and their centroid. Subsequent updates
// always rotate the snapshot, never the live points.
func (e *Editor) BeginRotation() {
	pts := e.shape.Points()
	e.rotation = &rotation{
		start: pts,
		pivot: geometry.Centroid(pts),
	}
}

func (e *Editor) Rotating() bool {
	return e.rotation != nil
}

// UpdateRotation applies dx pixels of drag since the gesture started.
func (e *Editor) UpdateRotation(dx float64) error {
	if e.rotation == nil {
		return ErrRotationInactive
	}
	e.rotation.degree = dx * RotationDegreesPerPixel
	rad := geometry.Radians(e.rotation.degree)
	e.shape.replaceRigid(geometry.RotateAll(e.rotation.start, e.rotation.pivot, rad))
	return nil
}

// EndRotation keeps the rotated points exactly as they are, without snapping.
func (e *Editor) EndRotation() (float64, error) {
	if e.rotation == nil {
		return 0, ErrRotationInactive
	}
	deg := e.rotation.degree
	e.rotation = nil
	return deg, nil
}

// CancelRotation restores the snapshot taken by BeginRotation.
func (e *Editor) CancelRotation() error {
	if e.rotation == nil {
		return ErrRotationInactive
	}
	e.shape.replaceRigid(e.rotation.start)
	e.rotation = nil
	return nil
}

// RotateBy turns the whole profile about its centroid in one step.
func (e *Editor) RotateBy(deg float64) {
	e.settleRotation()
	pts := e.shape.Points()
	e.shape.replaceRigid(geometry.RotateAll(pts, geometry.Centroid(pts), geometry.Radians(deg)))
}

// settleRotation commits a dangling rotation before any other edit.
func (e *Editor) settleRotation() {
	e.rotation = nil
}
