// Package health provides HTTP handlers for liveness and readiness probes.
//
// [LivenessHandler] always answers OK while the process runs.
// [ReadinessHandler] runs named [Checks] in parallel with a shared timeout
// and answers 503 if any of them fails.
//
//	checks := health.Checks{"redis": redis.Healthcheck(client)}
//	r.Get("/health/ready", health.ReadinessHandler(checks, health.WithTimeout(2*time.Second)))
//
// Responses are plain text unless the client asks for JSON through the
// Accept header or ?format=json.
package health
