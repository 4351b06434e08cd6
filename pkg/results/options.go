package results

import "time"

const (
	defaultTTL             = time.Hour
	defaultCleanupInterval = time.Minute
	defaultMaxEntries      = 10000
)

// MemoryOption configures the in-memory store.
type MemoryOption func(*memoryOptions)

type memoryOptions struct {
	now             func() time.Time
	ttl             time.Duration
	cleanupInterval time.Duration
	maxEntries      int
}

func defaultMemoryOptions() *memoryOptions {
	return &memoryOptions{
		now:             time.Now,
		ttl:             defaultTTL,
		cleanupInterval: defaultCleanupInterval,
		maxEntries:      defaultMaxEntries,
	}
}

// WithTTL sets how long a result is kept. Non-positive keeps results
// until evicted.
// Default: 1 hour.
func WithTTL(d time.Duration) MemoryOption {
	return func(o *memoryOptions) {
		o.ttl = d
	}
}

// WithCleanupInterval sets how often the janitor removes expired results.
// Zero disables the janitor; expired results are still hidden on read.
// Default: 1 minute.
func WithCleanupInterval(d time.Duration) MemoryOption {
	return func(o *memoryOptions) {
		o.cleanupInterval = d
	}
}

// WithMaxEntries caps the number of stored results. The least recently
// used result is evicted first. Zero means unlimited.
// Default: 10000.
func WithMaxEntries(n int) MemoryOption {
	return func(o *memoryOptions) {
		o.maxEntries = n
	}
}

// WithMemoryClock sets the time source used for expiry.
// Default: time.Now.
func WithMemoryClock(now func() time.Time) MemoryOption {
	return func(o *memoryOptions) {
		if now != nil {
			o.now = now
		}
	}
}

// RedisOption configures the Redis store.
type RedisOption func(*redisOptions)

type redisOptions struct {
	prefix string
	ttl    time.Duration
}

func defaultRedisOptions() *redisOptions {
	return &redisOptions{
		prefix: "cookiecheck:results",
		ttl:    defaultTTL,
	}
}

// WithRedisTTL sets how long a result is kept in Redis. Non-positive
// stores results without expiration.
// Default: 1 hour.
func WithRedisTTL(d time.Duration) RedisOption {
	return func(o *redisOptions) {
		o.ttl = d
	}
}

// WithPrefix sets the key prefix. Keys are stored as "{prefix}:{id}".
// Default: "cookiecheck:results".
func WithPrefix(prefix string) RedisOption {
	return func(o *redisOptions) {
		o.prefix = prefix
	}
}
