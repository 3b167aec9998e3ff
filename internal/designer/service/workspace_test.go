package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"flashing-designer/internal/designer/canvas"
	"flashing-designer/internal/designer/geometry"
	"flashing-designer/internal/designer/labels"
	"flashing-designer/internal/designer/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errBoom = errors.New("boom")

// fakeStore keeps profiles in memory and fails on demand.
type fakeStore struct {
	profiles   []models.Profile
	seq        int
	failList   bool
	failSave   bool
	failDelete bool
}

func (s *fakeStore) EnsureDraftOrder(context.Context) (models.Order, error) {
	return models.Order{ID: "order-1", Status: models.OrderDraft}, nil
}

func (s *fakeStore) ListOrders(context.Context) ([]models.Order, error) {
	return []models.Order{{ID: "order-1", Status: models.OrderDraft}}, nil
}

func (s *fakeStore) ListProfiles(_ context.Context, orderID string) ([]models.Profile, error) {
	if s.failList {
		return nil, errBoom
	}
	var out []models.Profile
	for _, p := range s.profiles {
		if p.OrderID == orderID {
			out = append(out, p.Clone())
		}
	}
	return out, nil
}

func (s *fakeStore) CreateProfile(_ context.Context, orderID string, p models.Profile) (models.Profile, error) {
	if s.failSave {
		return models.Profile{}, errBoom
	}
	s.seq++
	p.ID = fmt.Sprintf("p%d", s.seq)
	p.OrderID = orderID
	s.profiles = append(s.profiles, p.Clone())
	return p, nil
}

func (s *fakeStore) UpdateProfile(_ context.Context, id string, p models.Profile) (models.Profile, error) {
	if s.failSave {
		return models.Profile{}, errBoom
	}
	for i := range s.profiles {
		if s.profiles[i].ID == id {
			p.ID, p.OrderID = id, s.profiles[i].OrderID
			s.profiles[i] = p.Clone()
			return p, nil
		}
	}
	return models.Profile{}, errors.New("not found")
}

func (s *fakeStore) DeleteProfile(_ context.Context, id string) error {
	if s.failDelete {
		return errBoom
	}
	for i := range s.profiles {
		if s.profiles[i].ID == id {
			s.profiles = append(s.profiles[:i], s.profiles[i+1:]...)
			return nil
		}
	}
	return errors.New("not found")
}

func newWorkspace(store *fakeStore) *Workspace {
	return NewWorkspace(store, "order-1", 1, labels.DefaultOptions())
}

func draw(t *testing.T, w *Workspace, pts ...geometry.Point) {
	t.Helper()
	require.NoError(t, w.WithCanvas(func(c *canvas.Canvas) error {
		for _, p := range pts {
			if err := c.Editor().AddPoint(p); err != nil {
				return err
			}
		}
		return nil
	}))
}

func TestDoneAppendsAndResetsSlot(t *testing.T) {
	store := &fakeStore{}
	w := newWorkspace(store)
	draw(t, w, geometry.Point{X: 0, Y: 0}, geometry.Point{X: 100, Y: 0})

	saved, err := w.Done(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "p1", saved.ID)

	st := w.State()
	assert.Len(t, st.Profiles, 1)
	assert.Empty(t, st.Profile.Points, "slot starts fresh")
	assert.Empty(t, st.EditingID)
}

func TestDoneRejectsIncompleteProfile(t *testing.T) {
	w := newWorkspace(&fakeStore{})
	draw(t, w, geometry.Point{X: 0, Y: 0})

	_, err := w.Done(context.Background())
	assert.ErrorIs(t, err, ErrIncompleteProfile)
}

func TestSaveFailureKeepsSlot(t *testing.T) {
	store := &fakeStore{failSave: true}
	w := newWorkspace(store)
	draw(t, w, geometry.Point{X: 0, Y: 0}, geometry.Point{X: 100, Y: 0})

	_, err := w.Done(context.Background())
	assert.ErrorIs(t, err, ErrSaveFailed)
	assert.ErrorIs(t, err, errBoom)

	st := w.State()
	assert.Len(t, st.Profile.Points, 2)
	assert.Empty(t, st.Profiles)
	assert.Equal(t, "boom", st.LastError)
}

func TestEditUpdatesInPlace(t *testing.T) {
	ctx := context.Background()
	store := &fakeStore{}
	w := newWorkspace(store)
	for i := 0; i < 3; i++ {
		draw(t, w, geometry.Point{X: 0, Y: 0}, geometry.Point{X: float64(100 + i), Y: 0})
		_, err := w.Done(ctx)
		require.NoError(t, err)
	}

	require.NoError(t, w.Edit("p2"))
	require.NoError(t, w.WithCanvas(func(c *canvas.Canvas) error {
		return c.Editor().EditDimension(1, 250)
	}))
	_, err := w.Done(ctx)
	require.NoError(t, err)

	ps := w.Profiles()
	require.Len(t, ps, 3)
	assert.Equal(t, "p2", ps[1].ID)
	assert.Equal(t, 250, geometry.Girth(ps[1].Points))
	assert.Equal(t, 3, len(store.profiles), "no new profile created")

	assert.ErrorIs(t, w.Edit("missing"), ErrProfileNotFound)
}

func TestDeleteFailureRestoresPosition(t *testing.T) {
	ctx := context.Background()
	store := &fakeStore{}
	w := newWorkspace(store)
	for i := 0; i < 3; i++ {
		draw(t, w, geometry.Point{X: 0, Y: 0}, geometry.Point{X: float64(100 + i), Y: 0})
		_, err := w.Done(ctx)
		require.NoError(t, err)
	}

	store.failDelete = true
	err := w.Delete(ctx, "p2")
	assert.ErrorIs(t, err, ErrDeleteFailed)

	var ids []string
	for _, p := range w.Profiles() {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []string{"p1", "p2", "p3"}, ids)

	store.failDelete = false
	require.NoError(t, w.Delete(ctx, "p2"))
	assert.Len(t, w.Profiles(), 2)
}

func TestDeletingEditedProfileResetsSlot(t *testing.T) {
	ctx := context.Background()
	w := newWorkspace(&fakeStore{})
	draw(t, w, geometry.Point{X: 0, Y: 0}, geometry.Point{X: 100, Y: 0})
	_, err := w.Done(ctx)
	require.NoError(t, err)

	require.NoError(t, w.Edit("p1"))
	require.NoError(t, w.Delete(ctx, "p1"))

	st := w.State()
	assert.Empty(t, st.EditingID)
	assert.Empty(t, st.Profile.Points)
}

func TestLoadFailureKeepsStaleList(t *testing.T) {
	ctx := context.Background()
	store := &fakeStore{}
	w := newWorkspace(store)
	draw(t, w, geometry.Point{X: 0, Y: 0}, geometry.Point{X: 100, Y: 0})
	_, err := w.Done(ctx)
	require.NoError(t, err)

	store.failList = true
	assert.ErrorIs(t, w.Load(ctx), ErrLoadFailed)
	assert.Len(t, w.Profiles(), 1)
	assert.ErrorIs(t, w.LastError(), errBoom)

	store.failList = false
	require.NoError(t, w.Load(ctx))
	assert.NoError(t, w.LastError())
}

func TestImportKeepsMetadata(t *testing.T) {
	w := newWorkspace(&fakeStore{})
	require.NoError(t, w.WithCanvas(func(c *canvas.Canvas) error {
		c.Editor().SetMeta("Zinc", 0.7, 4, 1800)
		return nil
	}))

	w.Import([]geometry.Point{{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 100, Y: 100}})

	st := w.State()
	assert.Equal(t, "Zinc", st.Profile.Material)
	assert.Len(t, st.Profile.Points, 3)
	assert.InDelta(t, 90, st.Angles[1], 1e-9)
}

func TestCutlistUsesCommittedProfiles(t *testing.T) {
	ctx := context.Background()
	w := newWorkspace(&fakeStore{})
	draw(t, w, geometry.Point{X: 0, Y: 0}, geometry.Point{X: 100, Y: 0}, geometry.Point{X: 100, Y: 100})
	_, err := w.Done(ctx)
	require.NoError(t, err)
	draw(t, w, geometry.Point{X: 0, Y: 0}, geometry.Point{X: 50, Y: 0})

	list := w.Cutlist()
	require.Len(t, list.Entries, 1)
	assert.Equal(t, 200, list.Entries[0].Girth)
}

func TestFrameIsDerivedInBackground(t *testing.T) {
	w := newWorkspace(&fakeStore{})
	draw(t, w, geometry.Point{X: 0, Y: 0}, geometry.Point{X: 100, Y: 0})

	require.Eventually(t, func() bool { return !w.frames.Pending() }, time.Second, 5*time.Millisecond)

	w.mu.Lock()
	dirty, frame := w.dirty, w.frame
	w.mu.Unlock()
	assert.False(t, dirty)
	require.NotNil(t, frame)
	_, ok := frame.Label("dimension-1")
	assert.True(t, ok)
}

func TestStateFlushesPendingFrame(t *testing.T) {
	w := newWorkspace(&fakeStore{})
	draw(t, w, geometry.Point{X: 0, Y: 0}, geometry.Point{X: 100, Y: 0})
	require.NoError(t, w.WithCanvas(func(c *canvas.Canvas) error {
		return c.Editor().EditDimension(1, 250)
	}))

	l, ok := w.State().Frame.Label("dimension-1")
	require.True(t, ok)
	assert.InDelta(t, 250, l.Value, 1e-9)
	assert.False(t, w.frames.Pending())

	w.New()
	assert.Empty(t, w.State().Frame.Labels, "a fresh slot gets a fresh frame")
}

func TestCloseStopsFrameDerivation(t *testing.T) {
	w := newWorkspace(&fakeStore{})
	draw(t, w, geometry.Point{X: 0, Y: 0}, geometry.Point{X: 100, Y: 0})
	w.Close()
	assert.False(t, w.frames.Pending())
}

func TestSessionManager(t *testing.T) {
	m := NewSessionManager(&fakeStore{}, 35, labels.DefaultOptions())

	token, ws, err := m.Issue(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "order-1", ws.OrderID())

	got, ok := m.Resolve(token)
	require.True(t, ok)
	assert.Same(t, ws, got)

	assert.True(t, m.Close(token))
	_, ok = m.Resolve(token)
	assert.False(t, ok)
	assert.False(t, m.Close(token))
}
