package stats

import (
	"context"
	"testing"

	"campusattend/internal/attendance"
	"campusattend/internal/event"
	"campusattend/internal/identity"
	"campusattend/internal/testutil"
)

func TestSnapshot(t *testing.T) {
	db := testutil.OpenTestDB(t, "stats_snapshot")
	ctx := context.Background()

	users := identity.NewService(identity.NewRepository(db))
	events := event.NewService(event.NewRepository(db))
	recorder := attendance.NewService(attendance.NewRepository(db))
	svc := NewService(db)

	if err := db.SeedAdmin(ctx, "admin@x.com", "admin-secret"); err != nil {
		t.Fatalf("seed admin: %v", err)
	}

	snap, err := svc.Snapshot(ctx)
	if err != nil {
		t.Fatalf("empty snapshot: %v", err)
	}
	// The seeded admin is not a student.
	if snap.TotalStudents != 0 || snap.TotalEvents != 0 || snap.TotalAttendance != 0 {
		t.Fatalf("empty store should count zero: %+v", snap)
	}

	verified, err := users.Register(ctx, identity.RegisterInput{
		StudentID: "S1", FirstName: "A", LastName: "B", Email: "a@x.com", Password: "secret1",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := users.Register(ctx, identity.RegisterInput{
		StudentID: "S2", FirstName: "C", LastName: "D", Email: "b@x.com", Password: "secret1",
	}); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := users.Verify(ctx, verified.ID, "QR1"); err != nil {
		t.Fatalf("verify: %v", err)
	}

	e, err := events.Create(ctx, event.CreateInput{
		Name: "Orientation", Description: "d", Date: "2026-09-10", StartTime: "10:00", EndTime: "12:00",
	})
	if err != nil {
		t.Fatalf("create event: %v", err)
	}
	if _, err := recorder.Mark(ctx, e.ID, verified.ID); err != nil {
		t.Fatalf("mark: %v", err)
	}

	snap, err = svc.Snapshot(ctx)
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	want := Snapshot{TotalStudents: 2, PendingStudents: 1, VerifiedStudents: 1, TotalEvents: 1, TotalAttendance: 1}
	if *snap != want {
		t.Fatalf("snapshot = %+v, want %+v", *snap, want)
	}
}
