// Package logger provides structured logging with context extraction and Sentry integration.
//
// It extends log/slog with automatic context-based attribute injection and
// optional Sentry error reporting.
//
// # Basic Usage
//
// Build a logger from environment-driven configuration:
//
//	log := logger.New(logger.Config{Level: "debug", Format: "text"}, requestIDExtractor)
//	log.InfoContext(ctx, "third-party cookie check", slog.Bool("received", true))
//
// An invalid level or format falls back to JSON at info level.
//
// # Context Extractors
//
// A ContextExtractor pulls a request-scoped attribute out of the context on
// every log call:
//
//	type ContextExtractor func(ctx context.Context) (slog.Attr, bool)
//
// Return false to skip the attribute for that record. Wrap any handler with
// Decorate to apply extractors to it.
//
// # Sentry Integration
//
//	log := logger.NewWithSentry(cfg, logger.SentryConfig{
//		DSN:         os.Getenv("SENTRY_DSN"),
//		Environment: "production",
//	}, extractors...)
//
// Errors create Sentry issues and warnings are stored as logs. With an empty
// DSN the logger writes to stdout only, so the same code path works locally.
//
// Use NewNope where a logger is required but output is unwanted.
package logger
