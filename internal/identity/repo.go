package identity

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"campusattend/internal/store"
)

// Roles and verification states a user can hold.
const (
	RoleStudent = "student"
	RoleAdmin   = "admin"

	StatusPending  = "pending"
	StatusVerified = "verified"
	StatusRejected = "rejected"
)

// User is the stored account row. PasswordHash never leaves this package.
type User struct {
	ID           string
	StudentID    *string
	FirstName    string
	LastName     string
	Email        string
	PasswordHash string
	Role         string
	Status       string
	ProfilePhoto *string
	QRCode       *string
	CreatedAt    time.Time
}

// Public is the projection returned to clients.
type Public struct {
	ID           string    `json:"id"`
	StudentID    *string   `json:"student_id"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Email        string    `json:"email"`
	Role         string    `json:"role"`
	Status       string    `json:"status"`
	ProfilePhoto *string   `json:"profile_photo"`
	QRCode       *string   `json:"qr_code"`
	CreatedAt    time.Time `json:"created_at"`
}

// Public returns the client-safe projection of u.
func (u *User) Public() Public {
	return Public{
		ID:           u.ID,
		StudentID:    u.StudentID,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Email:        u.Email,
		Role:         u.Role,
		Status:       u.Status,
		ProfilePhoto: u.ProfilePhoto,
		QRCode:       u.QRCode,
		CreatedAt:    u.CreatedAt,
	}
}

// Repository persists users.
type Repository struct {
	db *store.DB
}

// NewRepository creates a repo.
func NewRepository(db *store.DB) *Repository {
	return &Repository{db: db}
}

const userColumns = `id, student_id, first_name, last_name, email, password_hash, role, status, profile_photo, qr_code, created_at`

func scanUser(row interface{ Scan(...any) error }) (*User, error) {
	var u User
	err := row.Scan(&u.ID, &u.StudentID, &u.FirstName, &u.LastName, &u.Email,
		&u.PasswordHash, &u.Role, &u.Status, &u.ProfilePhoto, &u.QRCode, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Insert writes a new user row.
func (r *Repository) Insert(ctx context.Context, u User) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (`+userColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, u.ID, u.StudentID, u.FirstName, u.LastName, u.Email,
		u.PasswordHash, u.Role, u.Status, u.ProfilePhoto, u.QRCode, u.CreatedAt)
	return err
}

// GetByID returns the user or nil when absent.
func (r *Repository) GetByID(ctx context.Context, id string) (*User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return u, nil
}

// GetByEmail matches case-insensitively; emails are stored lowercased.
func (r *Repository) GetByEmail(ctx context.Context, email string) (*User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = ?`, strings.ToLower(email)))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return u, nil
}

// GetByStudentID returns the user holding the campus student id, or nil.
func (r *Repository) GetByStudentID(ctx context.Context, studentID string) (*User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE student_id = ?`, studentID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return u, nil
}

// List returns all users, newest first.
func (r *Repository) List(ctx context.Context) ([]User, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var res []User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, *u)
	}
	return res, rows.Err()
}

// Patch carries the optional fields of a profile update. Nil means leave
// untouched.
type Patch struct {
	FirstName    *string `json:"first_name"`
	LastName     *string `json:"last_name"`
	Email        *string `json:"email"`
	Password     *string `json:"password"`
	ProfilePhoto *string `json:"profile_photo"`
}

// ApplyPatch updates only the provided fields. passwordHash is the already
// hashed replacement, or nil to keep the current one.
func (r *Repository) ApplyPatch(ctx context.Context, id string, p Patch, passwordHash *string) error {
	sets := []string{}
	args := []any{}
	if p.FirstName != nil {
		sets = append(sets, "first_name = ?")
		args = append(args, *p.FirstName)
	}
	if p.LastName != nil {
		sets = append(sets, "last_name = ?")
		args = append(args, *p.LastName)
	}
	if p.Email != nil {
		sets = append(sets, "email = ?")
		args = append(args, strings.ToLower(*p.Email))
	}
	if passwordHash != nil {
		sets = append(sets, "password_hash = ?")
		args = append(args, *passwordHash)
	}
	if p.ProfilePhoto != nil {
		sets = append(sets, "profile_photo = ?")
		args = append(args, *p.ProfilePhoto)
	}
	if len(sets) == 0 {
		return nil
	}
	args = append(args, id)
	_, err := r.db.ExecContext(ctx, `UPDATE users SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...)
	return err
}

// SetVerified marks the user verified and stores the issued credential.
func (r *Repository) SetVerified(ctx context.Context, id, qrCode string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE users SET status = ?, qr_code = ? WHERE id = ?`, StatusVerified, qrCode, id)
	return err
}

// SetRole updates the user's role.
func (r *Repository) SetRole(ctx context.Context, id, role string) error {
	_, err := r.db.ExecContext(ctx, `UPDATE users SET role = ? WHERE id = ?`, role, id)
	return err
}

// DeleteCascade removes the user's attendance records and then the user,
// atomically.
func (r *Repository) DeleteCascade(ctx context.Context, id string) error {
	tx, err := r.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	if _, err := tx.ExecContext(ctx, `DELETE FROM attendance WHERE student_id = ?`, id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id); err != nil {
		return err
	}
	return tx.Commit()
}
