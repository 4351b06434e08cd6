package redis

import (
	"context"
	"errors"
	"io"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/cookiecheck/pkg/health"
)

// Pinger is the part of a Redis client the readiness check needs.
// redis.UniversalClient satisfies it.
type Pinger interface {
	Ping(ctx context.Context) *redis.StatusCmd
}

// Healthcheck returns a readiness check that pings the client.
//
//	checks := health.Checks{"redis": redis.Healthcheck(client)}
func Healthcheck(client Pinger) health.CheckFunc {
	return func(ctx context.Context) error {
		if client == nil {
			return ErrHealthcheckFailed
		}
		if err := client.Ping(ctx).Err(); err != nil {
			return errors.Join(ErrHealthcheckFailed, err)
		}
		return nil
	}
}

// Shutdown adapts client.Close to a shutdown hook.
//
//	app.Run(addr, cookiecheck.ShutdownHook(redis.Shutdown(client)))
func Shutdown(client io.Closer) func(context.Context) error {
	return func(context.Context) error {
		if client == nil {
			return nil
		}
		return client.Close()
	}
}
