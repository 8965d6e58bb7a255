package repositories

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// IdempotencyStore remembers which campaign an Idempotency-Key produced.
type IdempotencyStore interface {
	Get(ctx context.Context, key string) (campaignID string, ok bool, err error)
	Put(ctx context.Context, key, campaignID string) error
}

type idempotencyEntry struct {
	campaignID string
	expiresAt  time.Time
}

// MemoryIdempotencyRepo keeps keys in process memory. Used when Redis is
// not configured.
type MemoryIdempotencyRepo struct {
	ttl     time.Duration
	now     func() time.Time
	mu      sync.Mutex
	entries map[string]idempotencyEntry
}

func NewMemoryIdempotencyRepo(ttl time.Duration) *MemoryIdempotencyRepo {
	return &MemoryIdempotencyRepo{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]idempotencyEntry),
	}
}

func (r *MemoryIdempotencyRepo) Get(_ context.Context, key string) (string, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[key]
	if !ok {
		return "", false, nil
	}
	if !r.now().Before(e.expiresAt) {
		delete(r.entries, key)
		return "", false, nil
	}
	return e.campaignID, true, nil
}

func (r *MemoryIdempotencyRepo) Put(_ context.Context, key, campaignID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	for k, e := range r.entries {
		if !now.Before(e.expiresAt) {
			delete(r.entries, k)
		}
	}
	r.entries[key] = idempotencyEntry{campaignID: campaignID, expiresAt: now.Add(r.ttl)}
	return nil
}

type RedisIdempotencyRepo struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisIdempotencyRepo(client *redis.Client, ttl time.Duration) *RedisIdempotencyRepo {
	return &RedisIdempotencyRepo{client: client, ttl: ttl}
}

func idempotencyKey(key string) string {
	return "idem:" + key
}

func (r *RedisIdempotencyRepo) Get(ctx context.Context, key string) (string, bool, error) {
	id, err := r.client.Get(ctx, idempotencyKey(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return id, true, nil
}

func (r *RedisIdempotencyRepo) Put(ctx context.Context, key, campaignID string) error {
	return r.client.Set(ctx, idempotencyKey(key), campaignID, r.ttl).Err()
}
