package devserver

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/cristianoliveira/portal-notify/internal/domain"
)

// DefaultPageSize applies when a list request has a page but no limit.
const DefaultPageSize = 20

// Repository stores notifications in a local SQLite database.
type Repository struct {
	db  *sqlx.DB
	now func() time.Time
}

type notificationRow struct {
	ID          string `db:"id"`
	Type        string `db:"type"`
	Department  string `db:"department"`
	Title       string `db:"title"`
	Message     string `db:"message"`
	Read        bool   `db:"read"`
	Priority    string `db:"priority"`
	CreatedAtMS int64  `db:"created_at_ms"`
}

func (r notificationRow) toDomain() domain.Notification {
	return domain.Notification{
		ID:         r.ID,
		Type:       domain.Type(r.Type),
		Department: domain.Department(r.Department),
		Title:      r.Title,
		Message:    r.Message,
		Read:       r.Read,
		Priority:   domain.Priority(r.Priority),
		CreatedAt:  time.UnixMilli(r.CreatedAtMS).UTC(),
	}
}

func rowsToDomain(rows []notificationRow) []domain.Notification {
	out := make([]domain.Notification, len(rows))
	for i, r := range rows {
		out[i] = r.toDomain()
	}
	return out
}

// OpenRepository opens (or creates) the database at dbPath, enables WAL
// mode and runs pending migrations. Use ":memory:" for a throwaway store.
func OpenRepository(dbPath string) (*Repository, error) {
	db, err := sqlx.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}
	// A single connection keeps ":memory:" databases alive and serializes
	// writers.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	r := &Repository{db: db, now: time.Now}
	if err := r.runMigrations(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return r, nil
}

// Close closes the underlying database connection.
func (r *Repository) Close() error {
	return r.db.Close()
}

func (r *Repository) runMigrations() error {
	currentVersion := 0

	var tableCount int
	err := r.db.Get(&tableCount,
		"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'")
	if err != nil {
		return fmt.Errorf("checking schema_version table: %w", err)
	}
	if tableCount > 0 {
		if err := r.db.Get(&currentVersion, "SELECT COALESCE(MAX(version), 0) FROM schema_version"); err != nil {
			return fmt.Errorf("reading schema version: %w", err)
		}
	}

	for _, m := range migrations {
		if m.version <= currentVersion {
			continue
		}
		if _, err := r.db.Exec(m.sql); err != nil {
			return fmt.Errorf("applying migration v%d: %w", m.version, err)
		}
	}
	return nil
}

// List returns notifications newest first, filtered and paged by query.
func (r *Repository) List(ctx context.Context, query domain.ListQuery) ([]domain.Notification, error) {
	var (
		where []string
		args  []any
	)
	if query.Type != "" {
		where = append(where, "type = ?")
		args = append(args, query.Type.String())
	}
	if query.UnreadOnly {
		where = append(where, "read = 0")
	}

	sqlQuery := "SELECT * FROM notifications"
	if len(where) > 0 {
		sqlQuery += " WHERE " + strings.Join(where, " AND ")
	}
	sqlQuery += " ORDER BY created_at_ms DESC, id"

	limit := query.Limit
	if limit <= 0 && query.Page > 0 {
		limit = DefaultPageSize
	}
	if limit > 0 {
		page := max(query.Page, 1)
		sqlQuery += " LIMIT ? OFFSET ?"
		args = append(args, limit, (page-1)*limit)
	}

	var rows []notificationRow
	if err := r.db.SelectContext(ctx, &rows, sqlQuery, args...); err != nil {
		return nil, fmt.Errorf("listing notifications: %w", err)
	}
	return rowsToDomain(rows), nil
}

// ListByDepartment returns every notification for d, newest first.
func (r *Repository) ListByDepartment(ctx context.Context, d domain.Department) ([]domain.Notification, error) {
	var rows []notificationRow
	err := r.db.SelectContext(ctx, &rows,
		"SELECT * FROM notifications WHERE department = ? ORDER BY created_at_ms DESC, id", d.String())
	if err != nil {
		return nil, fmt.Errorf("listing notifications for department %s: %w", d, err)
	}
	return rowsToDomain(rows), nil
}

// Get returns one notification or domain.ErrNotificationNotFound.
func (r *Repository) Get(ctx context.Context, id string) (domain.Notification, error) {
	var row notificationRow
	err := r.db.GetContext(ctx, &row, "SELECT * FROM notifications WHERE id = ?", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Notification{}, fmt.Errorf("notification %s: %w", id, domain.ErrNotificationNotFound)
		}
		return domain.Notification{}, fmt.Errorf("getting notification %s: %w", id, err)
	}
	return row.toDomain(), nil
}

// UnreadCount returns the number of unread notifications.
func (r *Repository) UnreadCount(ctx context.Context) (int, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, "SELECT COUNT(*) FROM notifications WHERE read = 0"); err != nil {
		return 0, fmt.Errorf("counting unread notifications: %w", err)
	}
	return n, nil
}

// Count returns the number of stored notifications.
func (r *Repository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, "SELECT COUNT(*) FROM notifications"); err != nil {
		return 0, fmt.Errorf("counting notifications: %w", err)
	}
	return n, nil
}

// MarkRead sets read on id. Marking an already-read entry succeeds.
func (r *Repository) MarkRead(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "UPDATE notifications SET read = 1 WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("marking notification %s read: %w", id, err)
	}
	return requireAffected(res, id)
}

// MarkAllRead sets read on every entry and returns how many changed.
func (r *Repository) MarkAllRead(ctx context.Context) (int, error) {
	res, err := r.db.ExecContext(ctx, "UPDATE notifications SET read = 1 WHERE read = 0")
	if err != nil {
		return 0, fmt.Errorf("marking all notifications read: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("checking rows affected: %w", err)
	}
	return int(n), nil
}

// Delete removes id.
func (r *Repository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM notifications WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting notification %s: %w", id, err)
	}
	return requireAffected(res, id)
}

// Create stores n. An empty ID gets a UUID and a zero CreatedAt gets the
// current time.
func (r *Repository) Create(ctx context.Context, n domain.Notification) (domain.Notification, error) {
	if n.ID == "" {
		n.ID = uuid.New().String()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = r.now().UTC()
	}
	if n.Priority == "" {
		n.Priority = domain.PriorityMedium
	}
	if err := n.Validate(); err != nil {
		return domain.Notification{}, err
	}
	if err := r.insert(ctx, r.db, n); err != nil {
		return domain.Notification{}, err
	}
	return n, nil
}

// Seed inserts list when the table is empty and reports how many rows were
// written.
func (r *Repository) Seed(ctx context.Context, list []domain.Notification) (int, error) {
	count, err := r.Count(ctx)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		return 0, nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	for _, n := range list {
		if err := r.insert(ctx, tx, n); err != nil {
			return 0, err
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing seed: %w", err)
	}
	return len(list), nil
}

func (r *Repository) insert(ctx context.Context, exec sqlx.ExecerContext, n domain.Notification) error {
	_, err := exec.ExecContext(ctx, `
		INSERT INTO notifications (
			id, type, department, title, message, read, priority, created_at_ms
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		n.ID, n.Type.String(), n.Department.String(), n.Title, n.Message,
		n.Read, n.Priority.String(), n.CreatedAt.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("inserting notification %s: %w", n.ID, err)
	}
	return nil
}

func requireAffected(res sql.Result, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("notification %s: %w", id, domain.ErrNotificationNotFound)
	}
	return nil
}
