package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/noah-isme/care-record-api/internal/dto"
	"github.com/noah-isme/care-record-api/internal/recordform"
	appErrors "github.com/noah-isme/care-record-api/pkg/errors"
)

const sessionKeyPrefix = "care:session:"

// FormSession is the persisted state of one open form.
type FormSession struct {
	ID        string              `json:"id"`
	OpenedBy  string              `json:"opened_by,omitempty"`
	Selection dto.Selection       `json:"selection"`
	Machine   recordform.Snapshot `json:"machine"`
	UpdatedAt time.Time           `json:"updated_at"`
}

// SessionStore persists form sessions between requests.
type SessionStore interface {
	Get(ctx context.Context, id string) (*FormSession, error)
	Save(ctx context.Context, session *FormSession) error
	Delete(ctx context.Context, id string) error
}

// RedisSessionRepository keeps form sessions in Redis so every API instance sees them.
type RedisSessionRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisSessionRepository constructs a Redis-backed session store.
func NewRedisSessionRepository(client *redis.Client, ttl time.Duration) *RedisSessionRepository {
	return &RedisSessionRepository{client: client, ttl: ttl}
}

// Get loads a session. It returns ErrSessionNotFound when absent or expired.
func (r *RedisSessionRepository) Get(ctx context.Context, id string) (*FormSession, error) {
	raw, err := r.client.Get(ctx, sessionKeyPrefix+id).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, appErrors.ErrSessionNotFound
		}
		return nil, fmt.Errorf("redis get session %s: %w", id, err)
	}
	var session FormSession
	if err := json.Unmarshal(raw, &session); err != nil {
		return nil, fmt.Errorf("decode session %s: %w", id, err)
	}
	return &session, nil
}

// Save stores the session and refreshes its TTL.
func (r *RedisSessionRepository) Save(ctx context.Context, session *FormSession) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encode session %s: %w", session.ID, err)
	}
	if err := r.client.Set(ctx, sessionKeyPrefix+session.ID, payload, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set session %s: %w", session.ID, err)
	}
	return nil
}

// Delete removes a session.
func (r *RedisSessionRepository) Delete(ctx context.Context, id string) error {
	if err := r.client.Del(ctx, sessionKeyPrefix+id).Err(); err != nil {
		return fmt.Errorf("redis delete session %s: %w", id, err)
	}
	return nil
}

// MemorySessionRepository keeps form sessions in process memory.
type MemorySessionRepository struct {
	mu       sync.Mutex
	ttl      time.Duration
	now      func() time.Time
	sessions map[string]memorySession
}

type memorySession struct {
	payload   []byte
	expiresAt time.Time
}

// NewMemorySessionRepository constructs an in-memory session store. A zero ttl never expires.
func NewMemorySessionRepository(ttl time.Duration) *MemorySessionRepository {
	return &MemorySessionRepository{ttl: ttl, now: time.Now, sessions: make(map[string]memorySession)}
}

// Get loads a session. It returns ErrSessionNotFound when absent or expired.
func (r *MemorySessionRepository) Get(ctx context.Context, id string) (*FormSession, error) {
	r.mu.Lock()
	entry, ok := r.sessions[id]
	if ok && r.ttl > 0 && r.now().After(entry.expiresAt) {
		delete(r.sessions, id)
		ok = false
	}
	r.mu.Unlock()
	if !ok {
		return nil, appErrors.ErrSessionNotFound
	}
	var session FormSession
	if err := json.Unmarshal(entry.payload, &session); err != nil {
		return nil, fmt.Errorf("decode session %s: %w", id, err)
	}
	return &session, nil
}

// Save stores a copy of the session and evicts expired ones.
func (r *MemorySessionRepository) Save(ctx context.Context, session *FormSession) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encode session %s: %w", session.ID, err)
	}
	now := r.now()
	r.mu.Lock()
	r.sweepLocked(now)
	r.sessions[session.ID] = memorySession{payload: payload, expiresAt: now.Add(r.ttl)}
	r.mu.Unlock()
	return nil
}

// sweepLocked drops expired sessions that were never read again. Caller holds r.mu.
func (r *MemorySessionRepository) sweepLocked(now time.Time) {
	if r.ttl <= 0 {
		return
	}
	for id, entry := range r.sessions {
		if now.After(entry.expiresAt) {
			delete(r.sessions, id)
		}
	}
}

// Delete removes a session.
func (r *MemorySessionRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	delete(r.sessions, id)
	r.mu.Unlock()
	return nil
}
