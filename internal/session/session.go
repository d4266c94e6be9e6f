// Package session implements the server-side session store. The client only
// ever holds an opaque token; user id and role live here with a fixed TTL.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Session identifies a logged-in principal.
type Session struct {
	UserID    string    `json:"user_id"`
	Role      string    `json:"role"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Store is the abstraction over different backends.
type Store interface {
	Create(ctx context.Context, userID, role string) (string, error)
	Get(ctx context.Context, token string) (*Session, error)
	Delete(ctx context.Context, token string) error
}

// Memory is a process-local store for dev and tests.
type Memory struct {
	ttl time.Duration

	mu       sync.Mutex
	sessions map[string]Session
}

// NewMemory creates an in-memory store with the given session lifetime.
func NewMemory(ttl time.Duration) *Memory {
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &Memory{ttl: ttl, sessions: make(map[string]Session)}
}

// Create stores a new session and returns its opaque token.
func (m *Memory) Create(_ context.Context, userID, role string) (string, error) {
	token := uuid.NewString()
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sweepLocked()
	m.sessions[token] = Session{UserID: userID, Role: role, ExpiresAt: time.Now().Add(m.ttl)}
	return token, nil
}

// Get returns the session for token, or nil when absent or expired.
func (m *Memory) Get(_ context.Context, token string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[token]
	if !ok {
		return nil, nil
	}
	if time.Now().After(s.ExpiresAt) {
		delete(m.sessions, token)
		return nil, nil
	}
	return &s, nil
}

// Delete removes the session; deleting an unknown token is not an error.
func (m *Memory) Delete(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, token)
	return nil
}

// sweepLocked drops expired sessions so the map does not grow unbounded.
func (m *Memory) sweepLocked() {
	now := time.Now()
	for token, s := range m.sessions {
		if now.After(s.ExpiresAt) {
			delete(m.sessions, token)
		}
	}
}

// RedisStore keeps sessions in redis with a TTL, for multi-process deploys.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
	prefix string
}

// NewRedisStore creates a redis-backed store.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &RedisStore{client: client, ttl: ttl, prefix: "campusattend:session:"}
}

// Create stores a new session under a fresh token.
func (r *RedisStore) Create(ctx context.Context, userID, role string) (string, error) {
	token := uuid.NewString()
	s := Session{UserID: userID, Role: role, ExpiresAt: time.Now().Add(r.ttl)}
	raw, err := json.Marshal(s)
	if err != nil {
		return "", err
	}
	if err := r.client.Set(ctx, r.prefix+token, raw, r.ttl).Err(); err != nil {
		return "", err
	}
	return token, nil
}

// Get returns the session for token, or nil when absent.
func (r *RedisStore) Get(ctx context.Context, token string) (*Session, error) {
	raw, err := r.client.Get(ctx, r.prefix+token).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	var s Session
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// Delete removes the session.
func (r *RedisStore) Delete(ctx context.Context, token string) error {
	return r.client.Del(ctx, r.prefix+token).Err()
}
