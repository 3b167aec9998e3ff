package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"flashing-designer/internal/designer/geometry"
	"flashing-designer/internal/designer/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepo(t *testing.T) *Repository {
	t.Helper()
	db, err := OpenSQLite(filepath.Join(t.TempDir(), "db", "designer.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	r := New(db)
	clock := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	r.now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}
	require.NoError(t, r.Init(context.Background()))
	return r
}

func sample() models.Profile {
	return models.Profile{
		Points:       []geometry.Point{{X: 0, Y: 0}, {X: 105, Y: 0}, {X: 105, Y: 70}},
		Material:     "Colorbond",
		Thickness:    0.55,
		Quantity:     2,
		LengthMm:     2400,
		ColorSide:    models.ColorSideLeft,
		StartFold:    &models.EndFold{Type: models.FoldHook, Length: 10, Direction: models.FoldUp},
		LabelOffsets: map[string]geometry.Point{"dimension-1": {X: 3, Y: -4}},
		Comments:     []models.CommentBubble{{ID: "c1", Text: "seal", X: 10, Y: 10, Width: 140, Height: 48}},
	}
}

func TestInitIsRepeatable(t *testing.T) {
	r := newRepo(t)
	require.NoError(t, r.Init(context.Background()))
	require.NoError(t, r.Ping(context.Background()))
}

func TestEnsureDraftOrderReusesDraft(t *testing.T) {
	ctx := context.Background()
	r := newRepo(t)

	a, err := r.EnsureDraftOrder(ctx)
	require.NoError(t, err)
	b, err := r.EnsureDraftOrder(ctx)
	require.NoError(t, err)
	assert.Equal(t, a.ID, b.ID)
	assert.Equal(t, models.OrderDraft, b.Status)

	orders, err := r.ListOrders(ctx)
	require.NoError(t, err)
	assert.Len(t, orders, 1)
}

func TestProfileRoundTrip(t *testing.T) {
	ctx := context.Background()
	r := newRepo(t)
	order, err := r.EnsureDraftOrder(ctx)
	require.NoError(t, err)

	created, err := r.CreateProfile(ctx, order.ID, sample())
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, 0, created.Position)

	got, err := r.GetProfile(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)
	assert.Equal(t, models.FoldHook, got.StartFold.Type)
	assert.Equal(t, geometry.Point{X: 3, Y: -4}, got.LabelOffsets["dimension-1"])

	second, err := r.CreateProfile(ctx, order.ID, sample())
	require.NoError(t, err)
	assert.Equal(t, 1, second.Position)

	list, err := r.ListProfiles(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, created.ID, list[0].ID)
	assert.Equal(t, second.ID, list[1].ID)
}

func TestUpdateProfileKeepsIdentity(t *testing.T) {
	ctx := context.Background()
	r := newRepo(t)
	order, _ := r.EnsureDraftOrder(ctx)
	created, err := r.CreateProfile(ctx, order.ID, sample())
	require.NoError(t, err)

	edit := created.Clone()
	edit.Quantity = 5
	edit.Position = 99
	updated, err := r.UpdateProfile(ctx, created.ID, edit)
	require.NoError(t, err)

	assert.Equal(t, 5, updated.Quantity)
	assert.Equal(t, created.Position, updated.Position)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	assert.NotEqual(t, created.UpdatedAt, updated.UpdatedAt)

	_, err = r.UpdateProfile(ctx, "missing", edit)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteProfile(t *testing.T) {
	ctx := context.Background()
	r := newRepo(t)
	order, _ := r.EnsureDraftOrder(ctx)
	created, _ := r.CreateProfile(ctx, order.ID, sample())

	require.NoError(t, r.DeleteProfile(ctx, created.ID))
	_, err := r.GetProfile(ctx, created.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, r.DeleteProfile(ctx, created.ID), ErrNotFound)
}

func TestCreateProfileUnknownOrder(t *testing.T) {
	r := newRepo(t)
	_, err := r.CreateProfile(context.Background(), "nope", sample())
	assert.ErrorIs(t, err, ErrNotFound)
}
