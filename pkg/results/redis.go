package results

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/redis/go-redis/v9"
)

// Redis is a result store backed by Redis. Results are JSON-encoded and
// expire through Redis key TTLs.
type Redis struct {
	client redis.UniversalClient
	opts   *redisOptions
}

// NewRedis creates a Redis-backed result store.
// The client should be obtained from pkg/redis.Open.
//
// Example:
//
//	client, err := redis.Open(ctx, redis.Config{URL: os.Getenv("REDIS_URL")})
//	s := results.NewRedis(client, results.WithRedisTTL(30*time.Minute))
func NewRedis(client redis.UniversalClient, opts ...RedisOption) *Redis {
	o := defaultRedisOptions()
	for _, opt := range opts {
		opt(o)
	}
	return &Redis{client: client, opts: o}
}

// Save stores r under r.ID with the configured TTL.
func (s *Redis) Save(ctx context.Context, r Result) error {
	if r.ID == "" {
		return ErrEmptyID
	}

	data, err := json.Marshal(r)
	if err != nil {
		return errors.Join(ErrMarshal, err)
	}

	// Redis treats 0 as no expiration.
	return s.client.Set(ctx, s.key(r.ID), data, max(s.opts.ttl, 0)).Err()
}

// Get returns the result for id.
// Returns ErrNotFound if the key does not exist.
func (s *Redis) Get(ctx context.Context, id string) (Result, error) {
	data, err := s.client.Get(ctx, s.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return Result{}, ErrNotFound
		}
		return Result{}, err
	}

	var r Result
	if err := json.Unmarshal(data, &r); err != nil {
		return Result{}, errors.Join(ErrUnmarshal, err)
	}
	return r, nil
}

// Delete removes the result for id.
func (s *Redis) Delete(ctx context.Context, id string) error {
	return s.client.Del(ctx, s.key(id)).Err()
}

// Close is a no-op. The client lifecycle is managed by the caller
// (see pkg/redis.Shutdown).
func (s *Redis) Close() error {
	return nil
}

func (s *Redis) key(id string) string {
	if s.opts.prefix == "" {
		return id
	}
	return s.opts.prefix + ":" + id
}

var _ Store = (*Redis)(nil)
