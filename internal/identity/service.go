package identity

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"campusattend/internal/apperr"
	"campusattend/internal/store"
)

// MinPasswordLen is the shortest accepted password.
const MinPasswordLen = 6

// Service owns the user lifecycle: registration, login, verification, role
// changes and deletion.
type Service struct {
	repo *Repository
}

// NewService creates a service backed by a repository.
func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// RegisterInput holds the fields required to create a student account.
type RegisterInput struct {
	StudentID string `json:"student_id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// Register creates a pending student account.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*Public, error) {
	for field, val := range map[string]string{
		"student_id": in.StudentID,
		"first_name": in.FirstName,
		"last_name":  in.LastName,
		"email":      in.Email,
		"password":   in.Password,
	} {
		if val == "" {
			return nil, apperr.Validation("Missing required field: %s", field)
		}
	}
	if len(in.Password) < MinPasswordLen {
		return nil, apperr.Validation("Password must be at least %d characters", MinPasswordLen)
	}

	if existing, err := s.repo.GetByEmail(ctx, in.Email); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, apperr.Conflict("Email already registered")
	}
	if existing, err := s.repo.GetByStudentID(ctx, in.StudentID); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, apperr.Conflict("Student ID already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	sid := in.StudentID
	u := User{
		ID:           uuid.NewString(),
		StudentID:    &sid,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Email:        strings.ToLower(in.Email),
		PasswordHash: string(hash),
		Role:         RoleStudent,
		Status:       StatusPending,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.repo.Insert(ctx, u); err != nil {
		// Concurrent registration with the same email or student id loses
		// against the unique constraints.
		if store.IsUniqueViolation(err) {
			return nil, apperr.Conflict("Email or Student ID already registered")
		}
		return nil, err
	}
	pub := u.Public()
	return &pub, nil
}

// Login checks credentials and returns the public projection. Password
// comparison goes through bcrypt, which is constant-time on the hash.
func (s *Service) Login(ctx context.Context, email, password string) (*Public, error) {
	if email == "" || password == "" {
		return nil, apperr.Validation("Email and password required")
	}
	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if u == nil || bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, apperr.Auth("Invalid credentials")
	}
	pub := u.Public()
	return &pub, nil
}

// Get returns a user's public projection.
func (s *Service) Get(ctx context.Context, id string) (*Public, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, apperr.NotFound("User not found")
	}
	pub := u.Public()
	return &pub, nil
}

// List returns all users, newest first.
func (s *Service) List(ctx context.Context) ([]Public, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	res := make([]Public, 0, len(users))
	for i := range users {
		res = append(res, users[i].Public())
	}
	return res, nil
}

// Update applies a profile patch. Only provided fields change.
func (s *Service) Update(ctx context.Context, id string, p Patch) error {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if u == nil {
		return apperr.NotFound("User not found")
	}
	if p.Email != nil {
		other, err := s.repo.GetByEmail(ctx, *p.Email)
		if err != nil {
			return err
		}
		if other != nil && other.ID != id {
			return apperr.Conflict("Email already registered")
		}
	}
	// A too-short password is skipped rather than rejected, matching the
	// profile form's save-what-you-can behavior.
	var passwordHash *string
	if p.Password != nil && len(*p.Password) >= MinPasswordLen {
		hash, err := bcrypt.GenerateFromPassword([]byte(*p.Password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		h := string(hash)
		passwordHash = &h
	}
	if passwordHash == nil && p.FirstName == nil && p.LastName == nil && p.Email == nil && p.ProfilePhoto == nil {
		return apperr.Validation("No fields to update")
	}
	if err := s.repo.ApplyPatch(ctx, id, p, passwordHash); err != nil {
		if store.IsUniqueViolation(err) {
			return apperr.Conflict("Email already registered")
		}
		return err
	}
	return nil
}

// Verify marks the user verified and stores the scannable credential issued
// by the admin. Credential uniqueness across users is not enforced.
func (s *Service) Verify(ctx context.Context, id, qrCode string) error {
	if qrCode == "" {
		return apperr.Validation("QR code required")
	}
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if u == nil {
		return apperr.NotFound("User not found")
	}
	return s.repo.SetVerified(ctx, id, qrCode)
}

// SetRole changes a user's role.
func (s *Service) SetRole(ctx context.Context, id, role string) error {
	if role != RoleStudent && role != RoleAdmin {
		return apperr.Validation("Invalid role")
	}
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if u == nil {
		return apperr.NotFound("User not found")
	}
	return s.repo.SetRole(ctx, id, role)
}

// Delete removes the user and every attendance record naming them.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.DeleteCascade(ctx, id)
}
