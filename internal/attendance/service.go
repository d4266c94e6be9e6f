package attendance

import (
	"context"
	"time"

	"github.com/google/uuid"

	"campusattend/internal/apperr"
	"campusattend/internal/identity"
	"campusattend/internal/store"
)

// Service is the attendance recorder. Marking moves an (event, student)
// pair from unmarked to marked; unmarking returns it.
type Service struct {
	repo *Repository
}

// NewService creates a service backed by a repository.
func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// Mark records the student as present at the event. The existence checks
// and the insert share one serializable transaction, and the store carries
// a unique (event_id, student_id) index, so concurrent marks cannot
// produce a second record.
func (s *Service) Mark(ctx context.Context, eventID, studentID string) (*Record, error) {
	if eventID == "" || studentID == "" {
		return nil, apperr.Validation("Event ID and Student ID required")
	}

	m, err := s.repo.BeginMark(ctx)
	if err != nil {
		return nil, err
	}
	defer m.Close()

	exists, err := m.RecordExists(eventID, studentID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperr.Conflict("Attendance already marked")
	}

	student, err := m.Student(studentID)
	if err != nil {
		return nil, err
	}
	if student == nil || student.Status != identity.StatusVerified {
		return nil, apperr.NotFound("Student not found or not verified")
	}

	ok, err := m.EventExists(eventID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.NotFound("Event not found")
	}

	rec := Record{
		ID:           uuid.NewString(),
		EventID:      eventID,
		StudentID:    studentID,
		StudentName:  student.FirstName + " " + student.LastName,
		StudentPhoto: student.ProfilePhoto,
		Timestamp:    time.Now().UTC(),
	}
	if err := m.Insert(rec); err != nil {
		// A concurrent mark that slipped past the pre-check loses against
		// the unique index and reports the same conflict.
		if store.IsUniqueViolation(err) {
			return nil, apperr.Conflict("Attendance already marked")
		}
		return nil, err
	}
	return &rec, nil
}

// Unmark deletes the record by id. Deleting an absent record succeeds
// silently.
func (s *Service) Unmark(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// List returns records filtered by event or student, newest first. The
// event filter wins when both are supplied.
func (s *Service) List(ctx context.Context, eventID, studentID string) ([]Record, error) {
	return s.repo.List(ctx, eventID, studentID)
}
