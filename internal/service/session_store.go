package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

const sessionKeyPrefix = "smartsetup:session:"

// RedisSessionStore keeps smart-setup sessions in Redis with a TTL
type RedisSessionStore struct {
	client *redis.Client
}

// NewRedisSessionStore creates a new RedisSessionStore instance
func NewRedisSessionStore(client *redis.Client) *RedisSessionStore {
	return &RedisSessionStore{client: client}
}

// Save stores a session
func (s *RedisSessionStore) Save(ctx context.Context, id string, session *SetupSession, ttl time.Duration) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	if err := s.client.Set(ctx, sessionKeyPrefix+id, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// Load retrieves a session; expired or unknown sessions return ErrNotFound
func (s *RedisSessionStore) Load(ctx context.Context, id string) (*SetupSession, error) {
	data, err := s.client.Get(ctx, sessionKeyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("smart-setup session: %w", ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	var session SetupSession
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return &session, nil
}

// Delete removes a session
func (s *RedisSessionStore) Delete(ctx context.Context, id string) error {
	return s.client.Del(ctx, sessionKeyPrefix+id).Err()
}

type memoryEntry struct {
	data    []byte
	expires time.Time
}

// MemorySessionStore is the in-process store used when Redis is not available
type MemorySessionStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

// NewMemorySessionStore creates a new MemorySessionStore instance
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{entries: map[string]memoryEntry{}, now: time.Now}
}

// Save stores a copy of the session
func (s *MemorySessionStore) Save(_ context.Context, id string, session *SetupSession, ttl time.Duration) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gc()
	s.entries[id] = memoryEntry{data: data, expires: s.now().Add(ttl)}
	return nil
}

// Load retrieves a session that has not expired
func (s *MemorySessionStore) Load(_ context.Context, id string) (*SetupSession, error) {
	s.mu.Lock()
	entry, ok := s.entries[id]
	if ok && !s.now().Before(entry.expires) {
		delete(s.entries, id)
		ok = false
	}
	s.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("smart-setup session: %w", ErrNotFound)
	}
	var session SetupSession
	if err := json.Unmarshal(entry.data, &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return &session, nil
}

// Delete removes a session
func (s *MemorySessionStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	delete(s.entries, id)
	s.mu.Unlock()
	return nil
}

// gc drops expired entries; callers hold mu
func (s *MemorySessionStore) gc() {
	now := s.now()
	for id, e := range s.entries {
		if !now.Before(e.expires) {
			delete(s.entries, id)
		}
	}
}
