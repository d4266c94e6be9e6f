package attendance

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"campusattend/internal/store"
)

// Record is one student marked present at one event. Name and photo are
// snapshots taken at mark time; later profile edits never propagate here.
type Record struct {
	ID           string    `json:"id"`
	EventID      string    `json:"event_id"`
	StudentID    string    `json:"student_id"`
	StudentName  string    `json:"student_name"`
	StudentPhoto *string   `json:"student_photo"`
	Timestamp    time.Time `json:"timestamp"`
}

// Repository persists attendance records.
type Repository struct {
	db *store.DB
}

// NewRepository creates a repo.
func NewRepository(db *store.DB) *Repository {
	return &Repository{db: db}
}

const recordColumns = `id, event_id, student_id, student_name, student_photo, timestamp`

// studentSnapshot is what Mark copies out of the users row.
type studentSnapshot struct {
	FirstName    string
	LastName     string
	ProfilePhoto *string
	Status       string
}

// MarkTx groups the reads and the insert of a single mark operation so they
// share one transaction.
type MarkTx struct {
	tx  *store.Tx
	ctx context.Context
}

// BeginMark opens the marking transaction.
func (r *Repository) BeginMark(ctx context.Context) (*MarkTx, error) {
	tx, err := r.db.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	return &MarkTx{tx: tx, ctx: ctx}, nil
}

func (m *MarkTx) Close() { _ = m.tx.Rollback() }

// RecordExists reports whether the (event, student) pair is already marked.
func (m *MarkTx) RecordExists(eventID, studentID string) (bool, error) {
	var id string
	err := m.tx.QueryRowContext(m.ctx,
		`SELECT id FROM attendance WHERE event_id = ? AND student_id = ?`, eventID, studentID).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Student loads the snapshot fields for the user, or nil when absent.
func (m *MarkTx) Student(userID string) (*studentSnapshot, error) {
	var s studentSnapshot
	err := m.tx.QueryRowContext(m.ctx,
		`SELECT first_name, last_name, profile_photo, status FROM users WHERE id = ?`, userID).
		Scan(&s.FirstName, &s.LastName, &s.ProfilePhoto, &s.Status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

// EventExists reports whether the event id resolves.
func (m *MarkTx) EventExists(eventID string) (bool, error) {
	var id string
	err := m.tx.QueryRowContext(m.ctx, `SELECT id FROM events WHERE id = ?`, eventID).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Insert writes the record and commits the transaction.
func (m *MarkTx) Insert(rec Record) error {
	_, err := m.tx.ExecContext(m.ctx, `
		INSERT INTO attendance (`+recordColumns+`)
		VALUES (?, ?, ?, ?, ?, ?)
	`, rec.ID, rec.EventID, rec.StudentID, rec.StudentName, rec.StudentPhoto, rec.Timestamp)
	if err != nil {
		return err
	}
	return m.tx.Commit()
}

// Delete removes a record by id. Deleting an absent record is a no-op.
func (r *Repository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM attendance WHERE id = ?`, id)
	return err
}

// List returns records newest first. eventID takes precedence over
// studentID when both are given.
func (r *Repository) List(ctx context.Context, eventID, studentID string) ([]Record, error) {
	query := `SELECT ` + recordColumns + ` FROM attendance`
	args := []any{}
	switch {
	case eventID != "":
		query += ` WHERE event_id = ?`
		args = append(args, eventID)
	case studentID != "":
		query += ` WHERE student_id = ?`
		args = append(args, studentID)
	}
	query += ` ORDER BY timestamp DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var res []Record
	for rows.Next() {
		var rec Record
		if err := rows.Scan(&rec.ID, &rec.EventID, &rec.StudentID, &rec.StudentName, &rec.StudentPhoto, &rec.Timestamp); err != nil {
			return nil, err
		}
		res = append(res, rec)
	}
	return res, rows.Err()
}
