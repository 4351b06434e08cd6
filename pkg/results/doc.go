// Package results stores the outcome of third-party cookie checks so an
// embedding page or a backend can fetch it after the check frame has
// reported.
//
// Two implementations share the [Store] interface:
//
//   - [Memory]: map plus LRU list with TTL expiration and a janitor
//     goroutine, for single-instance deployments and tests.
//   - [Redis]: JSON values under "{prefix}:{id}" with Redis TTLs, for
//     deployments with several instances behind a load balancer.
//
// Both return [ErrNotFound] once a result has expired:
//
//	s := results.NewMemory(results.WithTTL(time.Hour))
//	defer s.Close()
//
//	_ = s.Save(ctx, results.Result{ID: id, Received: true, CheckedAt: time.Now()})
//	r, err := s.Get(ctx, id)
//	if errors.Is(err, results.ErrNotFound) {
//	    // expired or never reported
//	}
package results
