// Package testutil holds helpers shared by package tests.
package testutil

import (
	"context"
	"testing"

	"campusattend/internal/store"
)

// OpenTestDB opens an in-memory SQLite database with the schema applied.
// The shared cache keeps the database alive across connections under the
// given name, so each test should pick a distinct one.
func OpenTestDB(t *testing.T, name string) *store.DB {
	t.Helper()
	d, err := store.Open("sqlite3", "file:"+name+"?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })
	if err := d.Migrate(context.Background()); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return d
}
