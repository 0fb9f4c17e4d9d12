package session

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

// ActivityStore keeps the last-activity instant of each session.
type ActivityStore interface {
	// LastActivity returns nil when nothing was recorded for sessionID.
	LastActivity(ctx context.Context, sessionID string) (*time.Time, error)
	Touch(ctx context.Context, sessionID string, at time.Time) error
	Forget(ctx context.Context, sessionID string) error
}

const activityPrefix = "session:activity:"

// RedisActivityStore shares activity between instances. Keys expire after
// ttl so abandoned sessions do not accumulate.
type RedisActivityStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisActivityStore(client *redis.Client, ttl time.Duration) *RedisActivityStore {
	return &RedisActivityStore{client: client, ttl: ttl}
}

func (s *RedisActivityStore) LastActivity(ctx context.Context, sessionID string) (*time.Time, error) {
	v, err := s.client.Get(ctx, activityPrefix+sessionID).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	ms, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		// Unreadable bookkeeping counts as none.
		return nil, nil
	}
	t := time.UnixMilli(ms)
	return &t, nil
}

func (s *RedisActivityStore) Touch(ctx context.Context, sessionID string, at time.Time) error {
	return s.client.Set(ctx, activityPrefix+sessionID, at.UnixMilli(), s.ttl).Err()
}

func (s *RedisActivityStore) Forget(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, activityPrefix+sessionID).Err()
}

// MemoryActivityStore is the single-instance ActivityStore.
type MemoryActivityStore struct {
	mu   sync.Mutex
	last map[string]time.Time
}

func NewMemoryActivityStore() *MemoryActivityStore {
	return &MemoryActivityStore{last: make(map[string]time.Time)}
}

func (s *MemoryActivityStore) LastActivity(_ context.Context, sessionID string) (*time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.last[sessionID]
	if !ok {
		return nil, nil
	}
	return &t, nil
}

func (s *MemoryActivityStore) Touch(_ context.Context, sessionID string, at time.Time) error {
	s.mu.Lock()
	s.last[sessionID] = at
	s.mu.Unlock()
	return nil
}

func (s *MemoryActivityStore) Forget(_ context.Context, sessionID string) error {
	s.mu.Lock()
	delete(s.last, sessionID)
	s.mu.Unlock()
	return nil
}
