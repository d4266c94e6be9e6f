package event

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"campusattend/internal/store"
)

// Event lifecycle states. Admins may also set free-form closure reasons, so
// status is stored as text.
const (
	StatusActive = "active"
	StatusClosed = "closed"
)

// Event is a scheduled happening students attend.
type Event struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Date        string    `json:"date"`
	StartTime   string    `json:"start_time"`
	EndTime     string    `json:"end_time"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

// Repository persists events.
type Repository struct {
	db *store.DB
}

// NewRepository creates a repo.
func NewRepository(db *store.DB) *Repository {
	return &Repository{db: db}
}

const eventColumns = `id, name, description, date, start_time, end_time, status, created_at`

func scanEvent(row interface{ Scan(...any) error }) (*Event, error) {
	var e Event
	err := row.Scan(&e.ID, &e.Name, &e.Description, &e.Date, &e.StartTime, &e.EndTime, &e.Status, &e.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// Insert writes a new event row.
func (r *Repository) Insert(ctx context.Context, e Event) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO events (`+eventColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, e.ID, e.Name, e.Description, e.Date, e.StartTime, e.EndTime, e.Status, e.CreatedAt)
	return err
}

// GetByID returns the event or nil when absent.
func (r *Repository) GetByID(ctx context.Context, id string) (*Event, error) {
	e, err := scanEvent(r.db.QueryRowContext(ctx, `SELECT `+eventColumns+` FROM events WHERE id = ?`, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return e, nil
}

// List returns all events, most recent date first. Dates and times are
// normalized text, so lexicographic order is chronological.
func (r *Repository) List(ctx context.Context) ([]Event, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+eventColumns+` FROM events ORDER BY date DESC, start_time DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var res []Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, *e)
	}
	return res, rows.Err()
}

// Patch carries the optional fields of an event update. Nil means leave
// untouched.
type Patch struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Date        *string `json:"date"`
	StartTime   *string `json:"start_time"`
	EndTime     *string `json:"end_time"`
	Status      *string `json:"status"`
}

func (p Patch) empty() bool {
	return p.Name == nil && p.Description == nil && p.Date == nil &&
		p.StartTime == nil && p.EndTime == nil && p.Status == nil
}

// ApplyPatch updates only the provided fields.
func (r *Repository) ApplyPatch(ctx context.Context, id string, p Patch) error {
	sets := []string{}
	args := []any{}
	for col, val := range map[string]*string{
		"name":        p.Name,
		"description": p.Description,
		"date":        p.Date,
		"start_time":  p.StartTime,
		"end_time":    p.EndTime,
		"status":      p.Status,
	} {
		if val != nil {
			sets = append(sets, col+" = ?")
			args = append(args, *val)
		}
	}
	if len(sets) == 0 {
		return nil
	}
	args = append(args, id)
	_, err := r.db.ExecContext(ctx, `UPDATE events SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...)
	return err
}

// DeleteCascade removes the event's attendance records and then the event,
// atomically.
func (r *Repository) DeleteCascade(ctx context.Context, id string) error {
	tx, err := r.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	if _, err := tx.ExecContext(ctx, `DELETE FROM attendance WHERE event_id = ?`, id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM events WHERE id = ?`, id); err != nil {
		return err
	}
	return tx.Commit()
}
