package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"storefront-service/models"

	"github.com/redis/go-redis/v9"
)

var (
	// ErrSessionNotFound is returned when no state exists for a session id.
	ErrSessionNotFound = errors.New("session not found")
	// ErrSessionCorrupt is returned when stored state cannot be decoded.
	ErrSessionCorrupt = errors.New("session state corrupt")
)

// SessionRepository persists shopper session state.
type SessionRepository interface {
	GetSession(ctx context.Context, id string) (*models.SessionState, error)
	SaveSession(ctx context.Context, state *models.SessionState) error
	DeleteSession(ctx context.Context, id string) error
}

// RedisSessionRepository stores each session as one JSON value that expires
// ttl after the last write.
type RedisSessionRepository struct {
	client *redis.Client
	ttl    time.Duration
	now    func() time.Time
}

func NewRedisSessionRepository(client *redis.Client, ttl time.Duration) *RedisSessionRepository {
	return &RedisSessionRepository{client: client, ttl: ttl, now: time.Now}
}

func (r *RedisSessionRepository) getKey(id string) string {
	return fmt.Sprintf("storefront:session:%s", id)
}

func (r *RedisSessionRepository) GetSession(ctx context.Context, id string) (*models.SessionState, error) {
	data, err := r.client.Get(ctx, r.getKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get session %s: %w", id, err)
	}

	var state models.SessionState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("%w: session %s: %w", ErrSessionCorrupt, id, err)
	}
	return &state, nil
}

func (r *RedisSessionRepository) SaveSession(ctx context.Context, state *models.SessionState) error {
	state.UpdatedAt = r.now().UTC()

	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode session %s: %w", state.ID, err)
	}
	if err := r.client.Set(ctx, r.getKey(state.ID), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("save session %s: %w", state.ID, err)
	}
	return nil
}

func (r *RedisSessionRepository) DeleteSession(ctx context.Context, id string) error {
	return r.client.Del(ctx, r.getKey(id)).Err()
}

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

// MemorySessionRepository keeps sessions in process. Values are stored
// encoded so callers never share state with the repository.
type MemorySessionRepository struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

func NewMemorySessionRepository(ttl time.Duration) *MemorySessionRepository {
	return &MemorySessionRepository{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (r *MemorySessionRepository) GetSession(_ context.Context, id string) (*models.SessionState, error) {
	r.mu.Lock()
	entry, ok := r.entries[id]
	if ok && r.ttl > 0 && !r.now().Before(entry.expiresAt) {
		delete(r.entries, id)
		ok = false
	}
	r.mu.Unlock()
	if !ok {
		return nil, ErrSessionNotFound
	}

	var state models.SessionState
	if err := json.Unmarshal(entry.data, &state); err != nil {
		return nil, fmt.Errorf("%w: session %s: %w", ErrSessionCorrupt, id, err)
	}
	return &state, nil
}

func (r *MemorySessionRepository) SaveSession(_ context.Context, state *models.SessionState) error {
	now := r.now()
	state.UpdatedAt = now.UTC()

	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode session %s: %w", state.ID, err)
	}

	r.mu.Lock()
	r.entries[state.ID] = memoryEntry{data: data, expiresAt: now.Add(r.ttl)}
	r.mu.Unlock()
	return nil
}

func (r *MemorySessionRepository) DeleteSession(_ context.Context, id string) error {
	r.mu.Lock()
	delete(r.entries, id)
	r.mu.Unlock()
	return nil
}

// Sweep drops expired sessions and reports how many were removed.
func (r *MemorySessionRepository) Sweep() int {
	if r.ttl <= 0 {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	now := r.now()
	for id, e := range r.entries {
		if !now.Before(e.expiresAt) {
			delete(r.entries, id)
			removed++
		}
	}
	return removed
}
