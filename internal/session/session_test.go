package session

import (
	"context"
	"testing"
	"time"
)

func TestMemoryLifecycle(t *testing.T) {
	m := NewMemory(time.Hour)
	ctx := context.Background()

	token, err := m.Create(ctx, "user-1", "student")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if token == "" {
		t.Fatal("empty token")
	}

	s, err := m.Get(ctx, token)
	if err != nil || s == nil {
		t.Fatalf("get: %v %+v", err, s)
	}
	if s.UserID != "user-1" || s.Role != "student" {
		t.Fatalf("wrong session: %+v", s)
	}

	if s, err := m.Get(ctx, "unknown"); err != nil || s != nil {
		t.Fatalf("unknown token should return nil, got %v %+v", err, s)
	}

	if err := m.Delete(ctx, token); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if s, _ := m.Get(ctx, token); s != nil {
		t.Fatal("session survived delete")
	}
	if err := m.Delete(ctx, token); err != nil {
		t.Fatalf("double delete should succeed: %v", err)
	}
}

func TestMemoryExpiry(t *testing.T) {
	m := NewMemory(10 * time.Millisecond)
	ctx := context.Background()

	token, err := m.Create(ctx, "user-1", "student")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	time.Sleep(20 * time.Millisecond)
	if s, err := m.Get(ctx, token); err != nil || s != nil {
		t.Fatalf("expired session should be gone, got %v %+v", err, s)
	}
}

func TestMemoryTokensAreUnique(t *testing.T) {
	m := NewMemory(time.Hour)
	ctx := context.Background()

	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		token, err := m.Create(ctx, "user", "student")
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		if seen[token] {
			t.Fatal("token collision")
		}
		seen[token] = true
	}
}
