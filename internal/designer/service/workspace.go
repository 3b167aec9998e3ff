package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"flashing-designer/internal/designer/canvas"
	"flashing-designer/internal/designer/cutlist"
	"flashing-designer/internal/designer/editor"
	"flashing-designer/internal/designer/geometry"
	"flashing-designer/internal/designer/labels"
	"flashing-designer/internal/designer/models"

	"github.com/gofiber/fiber/v3/log"
)

var (
	ErrIncompleteProfile = errors.New("profile needs at least two points")
	ErrProfileNotFound   = errors.New("profile not in order")
	ErrSaveFailed        = errors.New("save failed")
	ErrDeleteFailed      = errors.New("delete failed")
	ErrLoadFailed        = errors.New("load failed")
)

// ProfileStore persists the profiles of an order.
type ProfileStore interface {
	ListProfiles(ctx context.Context, orderID string) ([]models.Profile, error)
	CreateProfile(ctx context.Context, orderID string, p models.Profile) (models.Profile, error)
	UpdateProfile(ctx context.Context, id string, p models.Profile) (models.Profile, error)
	DeleteProfile(ctx context.Context, id string) error
}

// OrderStore is the order lifecycle collaborator.
type OrderStore interface {
	EnsureDraftOrder(ctx context.Context) (models.Order, error)
	ListOrders(ctx context.Context) ([]models.Order, error)
}

type Store interface {
	ProfileStore
	OrderStore
}

// State is a serialisable snapshot of a workspace.
type State struct {
	OrderID   string           `json:"orderId"`
	EditingID string           `json:"editingId,omitempty"`
	Profile   models.Profile   `json:"profile"`
	Angles    map[int]float64  `json:"angles"`
	Frame     *labels.Frame    `json:"frame"`
	Profiles  []models.Profile `json:"profiles"`
	LastError string           `json:"lastError,omitempty"`
}

// ============================================================
// Workspace
// ============================================================

// Workspace is one client's view of an order: the profile list and the single
// "currently edited" slot. All methods are safe for concurrent use.
//
// The label frame is derived in the background by a FrameScheduler after
// each burst of edits; State flushes a pending derivation before reading it.
type Workspace struct {
	mu        sync.Mutex
	store     ProfileStore
	orderID   string
	grid      float64
	opts      labels.Options
	canvas    *canvas.Canvas
	frames    *canvas.FrameScheduler
	frame     *labels.Frame
	dirty     bool
	profiles  []models.Profile
	editingID string
	lastErr   error
}

func NewWorkspace(store ProfileStore, orderID string, grid float64, opts labels.Options) *Workspace {
	w := &Workspace{store: store, orderID: orderID, grid: grid, opts: opts}
	w.frames = canvas.NewFrameScheduler(canvas.DefaultFrameDelay, w.redraw)
	w.setCanvas(canvas.New(editor.New(grid), opts))
	return w
}

// Close drops any scheduled frame derivation.
func (w *Workspace) Close() {
	w.frames.Stop()
}

func (w *Workspace) OrderID() string {
	return w.orderID
}

// Load refreshes the profile list. On failure the previous list is kept and
// the error is recorded.
func (w *Workspace) Load(ctx context.Context) error {
	profiles, err := w.store.ListProfiles(ctx, w.orderID)

	w.mu.Lock()
	defer w.mu.Unlock()
	if err != nil {
		log.Warnf("[DESIGNER] list profiles of %s: %v", w.orderID, err)
		w.lastErr = err
		return fmt.Errorf("%w: %w", ErrLoadFailed, err)
	}
	w.profiles = profiles
	w.lastErr = nil
	return nil
}

// WithCanvas runs fn against the edited slot while holding the workspace lock.
func (w *Workspace) WithCanvas(fn func(c *canvas.Canvas) error) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	err := fn(w.canvas)
	w.invalidate()
	return err
}

func (w *Workspace) Profiles() []models.Profile {
	w.mu.Lock()
	defer w.mu.Unlock()
	return slices.Clone(w.profiles)
}

func (w *Workspace) LastError() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.lastErr
}

func (w *Workspace) State() State {
	w.frames.Flush()

	w.mu.Lock()
	defer w.mu.Unlock()

	s := State{
		OrderID:   w.orderID,
		EditingID: w.editingID,
		Profile:   w.canvas.Editor().Profile(),
		Angles:    w.canvas.Editor().Shape().Angles(),
		Frame:     w.currentFrame(),
		Profiles:  slices.Clone(w.profiles),
	}
	if w.lastErr != nil {
		s.LastError = w.lastErr.Error()
	}
	return s
}

// Cutlist builds the cutting list of the profiles committed so far.
func (w *Workspace) Cutlist() cutlist.List {
	return cutlist.Build(w.Profiles())
}

// ============================================================
// Slot lifecycle
// ============================================================

// Done commits the edited profile: a new one is created and appended, a
// loaded one is updated in place. The slot then starts a fresh profile. When
// the store fails the slot keeps its contents.
func (w *Workspace) Done(ctx context.Context) (models.Profile, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	p := w.canvas.Editor().Profile()
	if !p.Complete() {
		return models.Profile{}, ErrIncompleteProfile
	}

	var (
		saved models.Profile
		err   error
	)
	if w.editingID != "" {
		saved, err = w.store.UpdateProfile(ctx, w.editingID, p)
	} else {
		saved, err = w.store.CreateProfile(ctx, w.orderID, p)
	}
	if err != nil {
		log.Errorf("[DESIGNER] save profile: %v", err)
		w.lastErr = err
		return models.Profile{}, fmt.Errorf("%w: %w", ErrSaveFailed, err)
	}

	if i := w.indexOf(saved.ID); i >= 0 {
		w.profiles[i] = saved
	} else {
		w.profiles = append(w.profiles, saved)
	}
	log.Infof("[DESIGNER] saved profile %s (order %s, %d points)", saved.ID, w.orderID, len(saved.Points))

	w.resetSlot()
	return saved, nil
}

// Edit loads a committed profile into the slot, replacing whatever was there.
func (w *Workspace) Edit(id string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	i := w.indexOf(id)
	if i < 0 {
		return ErrProfileNotFound
	}
	w.setCanvas(canvas.New(editor.Load(w.profiles[i], w.grid), w.opts))
	w.editingID = id
	return nil
}

// New discards the slot and starts an empty profile.
func (w *Workspace) New() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.resetSlot()
}

// Import replaces the slot's points, keeping its metadata.
func (w *Workspace) Import(points []geometry.Point) {
	w.mu.Lock()
	defer w.mu.Unlock()

	p := w.canvas.Editor().Profile()
	p.Points = points
	p.LabelOffsets = nil
	w.setCanvas(canvas.New(editor.Load(p, w.grid), w.opts))
}

// Delete removes the profile from the list straight away and restores it at
// the same position if the store refuses.
func (w *Workspace) Delete(ctx context.Context, id string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	i := w.indexOf(id)
	if i < 0 {
		return ErrProfileNotFound
	}
	removed := w.profiles[i]
	w.profiles = slices.Delete(w.profiles, i, i+1)

	if err := w.store.DeleteProfile(ctx, id); err != nil {
		log.Errorf("[DESIGNER] delete profile %s: %v", id, err)
		w.profiles = slices.Insert(w.profiles, i, removed)
		w.lastErr = err
		return fmt.Errorf("%w: %w", ErrDeleteFailed, err)
	}

	if w.editingID == id {
		w.resetSlot()
	}
	log.Infof("[DESIGNER] deleted profile %s", id)
	return nil
}

func (w *Workspace) resetSlot() {
	w.setCanvas(canvas.New(editor.New(w.grid), w.opts))
	w.editingID = ""
}

// ============================================================
// Frame derivation
// ============================================================

// setCanvas swaps the slot's canvas. Callers hold w.mu.
func (w *Workspace) setCanvas(c *canvas.Canvas) {
	c.SetScheduler(w.frames)
	w.canvas = c
	w.invalidate()
}

// invalidate marks the frame stale and schedules a derivation. Callers hold w.mu.
func (w *Workspace) invalidate() {
	w.dirty = true
	w.frames.Request()
}

// redraw runs on the scheduler's timer.
func (w *Workspace) redraw() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.currentFrame()
}

// currentFrame returns the cached frame, deriving it when stale. Callers hold w.mu.
func (w *Workspace) currentFrame() *labels.Frame {
	if w.dirty || w.frame == nil {
		w.frame = w.canvas.Frame()
		w.dirty = false
	}
	return w.frame
}

func (w *Workspace) indexOf(id string) int {
	return slices.IndexFunc(w.profiles, func(p models.Profile) bool { return p.ID == id })
}
