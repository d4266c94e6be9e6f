package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// migrations is the schema in portable SQL. The unique index on
// (event_id, student_id) is the store-level guarantee that at most one
// attendance record exists per pair even under concurrent marking.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            TEXT PRIMARY KEY,
		student_id    TEXT UNIQUE,
		first_name    TEXT NOT NULL,
		last_name     TEXT NOT NULL,
		email         TEXT UNIQUE NOT NULL,
		password_hash TEXT NOT NULL,
		role          TEXT NOT NULL DEFAULT 'student',
		status        TEXT NOT NULL DEFAULT 'pending',
		profile_photo TEXT,
		qr_code       TEXT,
		created_at    TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS events (
		id          TEXT PRIMARY KEY,
		name        TEXT NOT NULL,
		description TEXT NOT NULL,
		date        TEXT NOT NULL,
		start_time  TEXT NOT NULL,
		end_time    TEXT NOT NULL,
		status      TEXT NOT NULL DEFAULT 'active',
		created_at  TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS attendance (
		id            TEXT PRIMARY KEY,
		event_id      TEXT NOT NULL,
		student_id    TEXT NOT NULL,
		student_name  TEXT NOT NULL,
		student_photo TEXT,
		timestamp     TIMESTAMP NOT NULL
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_attendance_event_student
		ON attendance (event_id, student_id)`,
}

// Migrate applies the schema. Statements are idempotent.
func (d *DB) Migrate(ctx context.Context) error {
	for _, stmt := range migrations {
		if _, err := d.Client.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// SeedAdmin creates the bootstrap admin account when no user with the given
// email exists. The password is stored bcrypt-hashed like every other
// credential.
func (d *DB) SeedAdmin(ctx context.Context, email, password string) error {
	email = strings.ToLower(email)
	var id string
	err := d.QueryRowContext(ctx, `SELECT id FROM users WHERE email = ?`, email).Scan(&id)
	if err == nil {
		return nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	_, err = d.ExecContext(ctx, `
		INSERT INTO users (id, first_name, last_name, email, password_hash, role, status, created_at)
		VALUES (?, ?, ?, ?, ?, 'admin', 'verified', ?)
	`, uuid.NewString(), "Admin", "User", email, string(hash), time.Now().UTC())
	return err
}
