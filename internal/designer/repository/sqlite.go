package repository

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"flashing-designer/internal/designer/models"

	"github.com/google/uuid"
	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

var ErrNotFound = errors.New("not found")

//go:embed migrations/*.sql
var migrations embed.FS

// ============================================================
// SQLite Repository
// ============================================================

type Repository struct {
	db  *sql.DB
	now func() time.Time
}

func New(db *sql.DB) *Repository {
	return &Repository{db: db, now: time.Now}
}

// Init applies the bundled migrations in file name order.
func (r *Repository) Init(ctx context.Context) error {
	if err := r.runMigrations(ctx); err != nil {
		return fmt.Errorf("migrations: %w", err)
	}
	return nil
}

func (r *Repository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func (r *Repository) timestamp() string {
	return r.now().UTC().Format(time.RFC3339Nano)
}

// ============================================================
// Orders
// ============================================================

// EnsureDraftOrder returns the newest draft order, creating one if none exists.
func (r *Repository) EnsureDraftOrder(ctx context.Context) (models.Order, error) {
	row := r.db.QueryRowContext(ctx, `
        SELECT id, status, reference, created_at
        FROM orders
        WHERE status = ?
        ORDER BY created_at DESC
        LIMIT 1
    `, models.OrderDraft)

	o, err := scanOrder(row)
	if err == nil {
		return o, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return models.Order{}, err
	}

	o = models.Order{ID: uuid.NewString(), Status: models.OrderDraft, CreatedAt: r.timestamp()}
	_, err = r.db.ExecContext(ctx, `
        INSERT INTO orders (id, status, reference, created_at)
        VALUES (?, ?, ?, ?)
    `, o.ID, o.Status, o.Reference, o.CreatedAt)
	if err != nil {
		return models.Order{}, fmt.Errorf("create draft order: %w", err)
	}
	return o, nil
}

func (r *Repository) GetOrder(ctx context.Context, id string) (models.Order, error) {
	row := r.db.QueryRowContext(ctx, `
        SELECT id, status, reference, created_at
        FROM orders
        WHERE id = ?
    `, id)
	return scanOrder(row)
}

func (r *Repository) ListOrders(ctx context.Context) ([]models.Order, error) {
	rows, err := r.db.QueryContext(ctx, `
        SELECT id, status, reference, created_at
        FROM orders
        ORDER BY created_at DESC
    `)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var out []models.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanOrder(s scanner) (models.Order, error) {
	var o models.Order
	if err := s.Scan(&o.ID, &o.Status, &o.Reference, &o.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Order{}, ErrNotFound
		}
		return models.Order{}, err
	}
	return o, nil
}

// ============================================================
// Profiles
// ============================================================

func (r *Repository) ListProfiles(ctx context.Context, orderID string) ([]models.Profile, error) {
	rows, err := r.db.QueryContext(ctx, `
        SELECT id, order_id, position, data, created_at, updated_at
        FROM profiles
        WHERE order_id = ?
        ORDER BY position, created_at
    `, orderID)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	defer rows.Close()

	var out []models.Profile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *Repository) GetProfile(ctx context.Context, id string) (models.Profile, error) {
	row := r.db.QueryRowContext(ctx, `
        SELECT id, order_id, position, data, created_at, updated_at
        FROM profiles
        WHERE id = ?
    `, id)
	return scanProfile(row)
}

// CreateProfile stores p at the end of the order's drawing sequence.
func (r *Repository) CreateProfile(ctx context.Context, orderID string, p models.Profile) (models.Profile, error) {
	if _, err := r.GetOrder(ctx, orderID); err != nil {
		return models.Profile{}, fmt.Errorf("order %s: %w", orderID, err)
	}

	var next int
	err := r.db.QueryRowContext(ctx, `
        SELECT COALESCE(MAX(position), -1) + 1 FROM profiles WHERE order_id = ?
    `, orderID).Scan(&next)
	if err != nil {
		return models.Profile{}, fmt.Errorf("next position: %w", err)
	}

	p = p.Clone()
	p.ID = uuid.NewString()
	p.OrderID = orderID
	p.Position = next
	p.CreatedAt = r.timestamp()
	p.UpdatedAt = p.CreatedAt

	data, err := json.Marshal(p)
	if err != nil {
		return models.Profile{}, fmt.Errorf("encode profile: %w", err)
	}
	_, err = r.db.ExecContext(ctx, `
        INSERT INTO profiles (id, order_id, position, data, created_at, updated_at)
        VALUES (?, ?, ?, ?, ?, ?)
    `, p.ID, p.OrderID, p.Position, string(data), p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return models.Profile{}, fmt.Errorf("insert profile: %w", err)
	}
	return p, nil
}

// UpdateProfile replaces the stored document. Order, position and creation
// time are kept from the existing row.
func (r *Repository) UpdateProfile(ctx context.Context, id string, p models.Profile) (models.Profile, error) {
	cur, err := r.GetProfile(ctx, id)
	if err != nil {
		return models.Profile{}, err
	}

	p = p.Clone()
	p.ID = cur.ID
	p.OrderID = cur.OrderID
	p.Position = cur.Position
	p.CreatedAt = cur.CreatedAt
	p.UpdatedAt = r.timestamp()

	data, err := json.Marshal(p)
	if err != nil {
		return models.Profile{}, fmt.Errorf("encode profile: %w", err)
	}
	_, err = r.db.ExecContext(ctx, `
        UPDATE profiles SET data = ?, updated_at = ? WHERE id = ?
    `, string(data), p.UpdatedAt, id)
	if err != nil {
		return models.Profile{}, fmt.Errorf("update profile: %w", err)
	}
	return p, nil
}

func (r *Repository) DeleteProfile(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM profiles WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func scanProfile(s scanner) (models.Profile, error) {
	var (
		id, orderID, data, created, updated string
		position                            int
	)
	if err := s.Scan(&id, &orderID, &position, &data, &created, &updated); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Profile{}, ErrNotFound
		}
		return models.Profile{}, err
	}

	var p models.Profile
	if err := json.Unmarshal([]byte(data), &p); err != nil {
		return models.Profile{}, fmt.Errorf("decode profile %s: %w", id, err)
	}
	p.ID = id
	p.OrderID = orderID
	p.Position = position
	p.CreatedAt = created
	p.UpdatedAt = updated
	return p, nil
}

// ============================================================
// Migrations
// ============================================================

func (r *Repository) runMigrations(ctx context.Context) error {
	names, err := fs.Glob(migrations, "migrations/*.sql")
	if err != nil {
		return err
	}
	sort.Strings(names)

	for _, name := range names {
		data, err := migrations.ReadFile(name)
		if err != nil {
			return fmt.Errorf("read migration: %w", err)
		}
		if _, err := r.db.ExecContext(ctx, string(data)); err != nil {
			return fmt.Errorf("apply migration %s: %w", filepath.Base(name), err)
		}
	}
	return nil
}

// OpenSQLite opens (creating if needed) the database file at dbPath.
func OpenSQLite(dbPath string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("mkdir db dir: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?cache=shared&mode=rwc&_pragma=busy_timeout=5000", dbPath)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	return db, nil
}
