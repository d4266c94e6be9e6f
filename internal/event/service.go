package event

import (
	"context"
	"time"

	"github.com/google/uuid"

	"campusattend/internal/apperr"
)

// Wire formats for event scheduling fields.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// Service owns the event lifecycle.
type Service struct {
	repo *Repository
}

// NewService creates a service backed by a repository.
func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// CreateInput holds the fields required to create an event.
type CreateInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Date        string `json:"date"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
}

// Create validates and stores a new active event.
func (s *Service) Create(ctx context.Context, in CreateInput) (*Event, error) {
	for field, val := range map[string]string{
		"name":        in.Name,
		"description": in.Description,
		"date":        in.Date,
		"start_time":  in.StartTime,
		"end_time":    in.EndTime,
	} {
		if val == "" {
			return nil, apperr.Validation("Missing required field: %s", field)
		}
	}
	if err := checkSchedule(in.Date, in.StartTime, in.EndTime); err != nil {
		return nil, err
	}
	e := Event{
		ID:          uuid.NewString(),
		Name:        in.Name,
		Description: in.Description,
		Date:        in.Date,
		StartTime:   in.StartTime,
		EndTime:     in.EndTime,
		Status:      StatusActive,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.repo.Insert(ctx, e); err != nil {
		return nil, err
	}
	return &e, nil
}

// Get returns an event by id.
func (s *Service) Get(ctx context.Context, id string) (*Event, error) {
	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, apperr.NotFound("Event not found")
	}
	return e, nil
}

// List returns all events, most recent first.
func (s *Service) List(ctx context.Context) ([]Event, error) {
	return s.repo.List(ctx)
}

// Update applies a partial update. Unspecified fields are left untouched.
func (s *Service) Update(ctx context.Context, id string, p Patch) error {
	if p.empty() {
		return apperr.Validation("No fields to update")
	}
	var date, start, end string
	if p.Date != nil {
		date = *p.Date
	}
	if p.StartTime != nil {
		start = *p.StartTime
	}
	if p.EndTime != nil {
		end = *p.EndTime
	}
	if err := checkSchedule(date, start, end); err != nil {
		return err
	}
	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if e == nil {
		return apperr.NotFound("Event not found")
	}
	return s.repo.ApplyPatch(ctx, id, p)
}

// Delete removes the event and every attendance record referencing it.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.DeleteCascade(ctx, id)
}

// checkSchedule validates whichever scheduling fields are non-empty. The
// normalized layouts keep lexicographic ordering chronological.
func checkSchedule(date, start, end string) error {
	if date != "" {
		if _, err := time.Parse(DateLayout, date); err != nil {
			return apperr.Validation("date must be formatted %s", DateLayout)
		}
	}
	if start != "" {
		if _, err := time.Parse(TimeLayout, start); err != nil {
			return apperr.Validation("start_time must be formatted %s", TimeLayout)
		}
	}
	if end != "" {
		if _, err := time.Parse(TimeLayout, end); err != nil {
			return apperr.Validation("end_time must be formatted %s", TimeLayout)
		}
	}
	return nil
}
