package event

import (
	"context"
	"testing"

	"campusattend/internal/apperr"
	"campusattend/internal/testutil"
)

func newTestService(t *testing.T, name string) *Service {
	t.Helper()
	return NewService(NewRepository(testutil.OpenTestDB(t, name)))
}

func createInput(name, date, start string) CreateInput {
	return CreateInput{
		Name:        name,
		Description: "desc",
		Date:        date,
		StartTime:   start,
		EndTime:     "18:00",
	}
}

func TestCreateValidation(t *testing.T) {
	svc := newTestService(t, "event_create_validation")
	ctx := context.Background()

	in := createInput("Orientation", "2026-09-10", "10:00")
	in.Description = ""
	if _, err := svc.Create(ctx, in); apperr.KindOf(err) != apperr.KindValidation {
		t.Fatalf("expected validation error for empty field, got %v", err)
	}

	if _, err := svc.Create(ctx, createInput("X", "10/09/2026", "10:00")); apperr.KindOf(err) != apperr.KindValidation {
		t.Fatalf("expected validation error for bad date, got %v", err)
	}
	if _, err := svc.Create(ctx, createInput("X", "2026-09-10", "10am")); apperr.KindOf(err) != apperr.KindValidation {
		t.Fatalf("expected validation error for bad time, got %v", err)
	}

	e, err := svc.Create(ctx, createInput("Orientation", "2026-09-10", "10:00"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if e.Status != StatusActive {
		t.Fatalf("new event should be active, got %s", e.Status)
	}
}

func TestListOrder(t *testing.T) {
	svc := newTestService(t, "event_list_order")
	ctx := context.Background()

	for _, in := range []CreateInput{
		createInput("early", "2026-09-10", "09:00"),
		createInput("latest", "2026-09-11", "08:00"),
		createInput("late", "2026-09-10", "15:00"),
	} {
		if _, err := svc.Create(ctx, in); err != nil {
			t.Fatalf("create %s: %v", in.Name, err)
		}
	}

	events, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	var names []string
	for _, e := range events {
		names = append(names, e.Name)
	}
	want := []string{"latest", "late", "early"}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("order wrong: got %v want %v", names, want)
		}
	}
}

func TestUpdatePatchSemantics(t *testing.T) {
	svc := newTestService(t, "event_update")
	ctx := context.Background()

	e, err := svc.Create(ctx, createInput("Orientation", "2026-09-10", "10:00"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := svc.Update(ctx, e.ID, Patch{}); apperr.KindOf(err) != apperr.KindValidation {
		t.Fatalf("expected validation error for empty patch, got %v", err)
	}

	name := "Welcome Day"
	if err := svc.Update(ctx, "missing", Patch{Name: &name}); apperr.KindOf(err) != apperr.KindNotFound {
		t.Fatalf("expected not found for unknown event, got %v", err)
	}

	badDate := "next tuesday"
	if err := svc.Update(ctx, e.ID, Patch{Date: &badDate}); apperr.KindOf(err) != apperr.KindValidation {
		t.Fatalf("expected validation error for bad date, got %v", err)
	}

	status := StatusClosed
	if err := svc.Update(ctx, e.ID, Patch{Name: &name, Status: &status}); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, err := svc.Get(ctx, e.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "Welcome Day" || got.Status != StatusClosed {
		t.Fatalf("patch not applied: %+v", got)
	}
	if got.Date != "2026-09-10" || got.StartTime != "10:00" {
		t.Fatalf("patch touched unspecified fields: %+v", got)
	}
}

func TestDelete(t *testing.T) {
	svc := newTestService(t, "event_delete")
	ctx := context.Background()

	e, err := svc.Create(ctx, createInput("Orientation", "2026-09-10", "10:00"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := svc.Delete(ctx, e.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.Get(ctx, e.ID); apperr.KindOf(err) != apperr.KindNotFound {
		t.Fatalf("expected not found after delete, got %v", err)
	}
}
