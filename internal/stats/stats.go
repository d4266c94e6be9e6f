// Package stats derives the dashboard counts. Every snapshot is computed
// fresh from the store; nothing is cached.
package stats

import (
	"context"

	"campusattend/internal/store"
)

// Snapshot is the admin dashboard summary.
type Snapshot struct {
	TotalStudents    int `json:"total_students"`
	PendingStudents  int `json:"pending_students"`
	VerifiedStudents int `json:"verified_students"`
	TotalEvents      int `json:"total_events"`
	TotalAttendance  int `json:"total_attendance"`
}

// Service computes snapshots.
type Service struct {
	db *store.DB
}

// NewService creates the aggregator.
func NewService(db *store.DB) *Service {
	return &Service{db: db}
}

// Snapshot runs the five aggregate queries.
func (s *Service) Snapshot(ctx context.Context) (*Snapshot, error) {
	var snap Snapshot
	counts := []struct {
		query string
		dst   *int
	}{
		{`SELECT COUNT(*) FROM users WHERE role = 'student'`, &snap.TotalStudents},
		{`SELECT COUNT(*) FROM users WHERE role = 'student' AND status = 'pending'`, &snap.PendingStudents},
		{`SELECT COUNT(*) FROM users WHERE role = 'student' AND status = 'verified'`, &snap.VerifiedStudents},
		{`SELECT COUNT(*) FROM events`, &snap.TotalEvents},
		{`SELECT COUNT(*) FROM attendance`, &snap.TotalAttendance},
	}
	for _, c := range counts {
		if err := s.db.QueryRowContext(ctx, c.query).Scan(c.dst); err != nil {
			return nil, err
		}
	}
	return &snap, nil
}
