package intake

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// ErrSessionNotFound is returned by Load when no session exists for the ID.
var ErrSessionNotFound = errors.New("intake: session not found")

// SessionStore persists per-session state between turns.
type SessionStore interface {
	Load(ctx context.Context, sessionID string) (*SessionState, error)
	Save(ctx context.Context, state *SessionState) error
}

// MemorySessionStore keeps sessions in process memory. The default backend;
// good for a single instance since the spec requires no durable layout.
type MemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*SessionState
}

// NewMemorySessionStore creates an empty in-memory store.
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{sessions: make(map[string]*SessionState)}
}

// Load returns the stored session or ErrSessionNotFound.
func (s *MemorySessionStore) Load(_ context.Context, sessionID string) (*SessionState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	state, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return state, nil
}

// Save stores the session keyed by its ID.
func (s *MemorySessionStore) Save(_ context.Context, state *SessionState) error {
	if state == nil || state.ID == "" {
		return fmt.Errorf("intake: cannot save session without an ID")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[state.ID] = state
	return nil
}

// RedisSessionStore keeps sessions in redis as JSON with a TTL, so multiple
// API instances can share session state.
type RedisSessionStore struct {
	redis  *redis.Client
	ttl    time.Duration
	tracer trace.Tracer
}

// NewRedisSessionStore creates a redis-backed session store.
func NewRedisSessionStore(client *redis.Client, ttl time.Duration) *RedisSessionStore {
	if client == nil {
		panic("intake: redis client cannot be nil")
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &RedisSessionStore{
		redis:  client,
		ttl:    ttl,
		tracer: otel.Tracer("psychbot.internal.intake.sessions"),
	}
}

func sessionKey(id string) string {
	return fmt.Sprintf("session:%s", id)
}

// Load fetches and decodes the session, or returns ErrSessionNotFound.
func (s *RedisSessionStore) Load(ctx context.Context, sessionID string) (*SessionState, error) {
	ctx, span := s.tracer.Start(ctx, "intake.load_session")
	defer span.End()

	data, err := s.redis.Get(ctx, sessionKey(sessionID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrSessionNotFound
		}
		span.RecordError(err)
		return nil, fmt.Errorf("intake: failed to load session: %w", err)
	}

	var state SessionState
	if err := json.Unmarshal(data, &state); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("intake: failed to decode session: %w", err)
	}
	if state.Record == nil {
		state.Record = BookingRecord{}
	}
	return &state, nil
}

// Save encodes and persists the session, refreshing its TTL.
func (s *RedisSessionStore) Save(ctx context.Context, state *SessionState) error {
	ctx, span := s.tracer.Start(ctx, "intake.save_session")
	defer span.End()

	if state == nil || state.ID == "" {
		return fmt.Errorf("intake: cannot save session without an ID")
	}
	data, err := json.Marshal(state)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("intake: failed to marshal session: %w", err)
	}
	if err := s.redis.Set(ctx, sessionKey(state.ID), data, s.ttl).Err(); err != nil {
		span.RecordError(err)
		return fmt.Errorf("intake: failed to persist session: %w", err)
	}
	return nil
}
