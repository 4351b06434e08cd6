// Package redis opens and manages the Redis client used by the Redis
// result store.
//
// It wraps [github.com/redis/go-redis/v9] with pool settings read from the
// environment, retry on startup, a readiness check and a shutdown hook.
//
//	client, err := redis.Open(ctx, cfg.Redis)
//	if err != nil {
//	    return err
//	}
//
//	app := cookiecheck.New(cookiecheck.Config{
//	    Store:           results.NewRedis(client),
//	    ReadinessChecks: map[string]health.CheckFunc{"redis": redis.Healthcheck(client)},
//	})
//	err = app.Run(addr, cookiecheck.ShutdownHook(redis.Shutdown(client)))
//
// Only redis:// and rediss:// (TLS) URLs are accepted.
package redis
