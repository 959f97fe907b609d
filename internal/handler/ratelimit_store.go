package handler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// RateLimitResult is the outcome of recording one request.
type RateLimitResult struct {
	Allowed   bool
	Remaining int
	ResetAt   time.Time
}

// RateLimitStore counts requests per key.
type RateLimitStore interface {
	// Hit records one request for key and reports whether it fits within
	// limit requests per window.
	Hit(ctx context.Context, key string, limit int, window time.Duration) (RateLimitResult, error)
}

// ---------------------------------------------------------------------------
// MemoryStore
// ---------------------------------------------------------------------------

// MemoryStore is a per-process sliding-window store.
type MemoryStore struct {
	mu      sync.Mutex
	clients map[string]*clientWindow
	now     func() time.Time
	done    chan struct{}
	once    sync.Once
}

type clientWindow struct {
	timestamps []time.Time
	window     time.Duration
}

// NewMemoryStore creates a MemoryStore and starts a goroutine that drops
// idle clients every cleanupInterval. Stop it with Close.
func NewMemoryStore(cleanupInterval time.Duration) *MemoryStore {
	s := &MemoryStore{
		clients: make(map[string]*clientWindow),
		now:     time.Now,
		done:    make(chan struct{}),
	}
	go s.cleanupLoop(cleanupInterval)
	return s
}

// Close stops the cleanup goroutine.
func (s *MemoryStore) Close() {
	s.once.Do(func() { close(s.done) })
}

func (s *MemoryStore) Hit(_ context.Context, key string, limit int, window time.Duration) (RateLimitResult, error) {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	cw, ok := s.clients[key]
	if !ok {
		cw = &clientWindow{}
		s.clients[key] = cw
	}
	cw.window = window
	cw.prune(now.Add(-window))

	if len(cw.timestamps) >= limit {
		return RateLimitResult{
			Allowed:   false,
			Remaining: 0,
			ResetAt:   cw.timestamps[0].Add(window),
		}, nil
	}

	cw.timestamps = append(cw.timestamps, now)
	return RateLimitResult{
		Allowed:   true,
		Remaining: limit - len(cw.timestamps),
		ResetAt:   cw.timestamps[0].Add(window),
	}, nil
}

// prune drops timestamps at or before windowStart; in-place filter on the
// shared backing array.
func (cw *clientWindow) prune(windowStart time.Time) {
	valid := cw.timestamps[:0]
	for _, ts := range cw.timestamps {
		if ts.After(windowStart) {
			valid = append(valid, ts)
		}
	}
	cw.timestamps = valid
}

func (s *MemoryStore) cleanupLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			s.sweep()
		}
	}
}

func (s *MemoryStore) sweep() {
	now := s.now()
	s.mu.Lock()
	defer s.mu.Unlock()
	for key, cw := range s.clients {
		cw.prune(now.Add(-cw.window))
		if len(cw.timestamps) == 0 {
			delete(s.clients, key)
		}
	}
}

// ---------------------------------------------------------------------------
// RedisStore
// ---------------------------------------------------------------------------

// hitScript increments the key's counter, starts the window on the first hit
// and returns the count with the remaining window in milliseconds.
var hitScript = redis.NewScript(`
local count = redis.call('INCR', KEYS[1])
if count == 1 then
  redis.call('PEXPIRE', KEYS[1], ARGV[1])
end
local ttl = redis.call('PTTL', KEYS[1])
if ttl < 0 then
  redis.call('PEXPIRE', KEYS[1], ARGV[1])
  ttl = tonumber(ARGV[1])
end
return {count, ttl}
`)

// RedisStore is a fixed-window store shared by every replica of the service.
type RedisStore struct {
	client redis.Scripter
	prefix string
}

// NewRedisStore creates a RedisStore. Keys are written as prefix + client key.
func NewRedisStore(client redis.Scripter, prefix string) *RedisStore {
	return &RedisStore{client: client, prefix: prefix}
}

func (s *RedisStore) Hit(ctx context.Context, key string, limit int, window time.Duration) (RateLimitResult, error) {
	vals, err := hitScript.Run(ctx, s.client, []string{s.prefix + key}, window.Milliseconds()).Int64Slice()
	if err != nil {
		return RateLimitResult{}, fmt.Errorf("rate limit hit %s: %w", key, err)
	}
	if len(vals) != 2 {
		return RateLimitResult{}, fmt.Errorf("rate limit hit %s: unexpected reply %v", key, vals)
	}

	count, ttl := int(vals[0]), time.Duration(vals[1])*time.Millisecond
	return RateLimitResult{
		Allowed:   count <= limit,
		Remaining: limit - count,
		ResetAt:   time.Now().Add(ttl),
	}, nil
}
