package service

import (
	"context"
	"sync"

	"flashing-designer/internal/designer/labels"

	"github.com/gofiber/fiber/v3/log"
	"github.com/google/uuid"
)

// ============================================================
// Session Manager
// ============================================================

type SessionManager struct {
	mu       sync.Mutex
	store    Store
	grid     float64
	opts     labels.Options
	sessions map[string]*Workspace // token -> workspace
}

func NewSessionManager(store Store, grid float64, opts labels.Options) *SessionManager {
	return &SessionManager{
		store:    store,
		grid:     grid,
		opts:     opts,
		sessions: make(map[string]*Workspace),
	}
}

// Issue opens a workspace on the current draft order. A failed list load is
// not fatal: the workspace starts empty and reports the error in its state.
func (m *SessionManager) Issue(ctx context.Context) (string, *Workspace, error) {
	order, err := m.store.EnsureDraftOrder(ctx)
	if err != nil {
		return "", nil, err
	}

	ws := NewWorkspace(m.store, order.ID, m.grid, m.opts)
	_ = ws.Load(ctx)

	m.mu.Lock()
	defer m.mu.Unlock()

	token := uuid.NewString()
	m.sessions[token] = ws
	log.Infof("[DESIGNER] session opened on order %s", order.ID)
	return token, ws, nil
}

func (m *SessionManager) Resolve(token string) (*Workspace, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ws, ok := m.sessions[token]
	return ws, ok
}

func (m *SessionManager) Close(token string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	ws, ok := m.sessions[token]
	if !ok {
		return false
	}
	ws.Close()
	delete(m.sessions, token)
	return true
}
