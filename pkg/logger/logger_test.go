package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/cookiecheck/pkg/logger"
)

type ctxKey struct{}

func extractor(ctx context.Context) (slog.Attr, bool) {
	if v, ok := ctx.Value(ctxKey{}).(string); ok {
		return slog.String("check_id", v), true
	}
	return slog.Attr{}, false
}

func TestNewHandler(t *testing.T) {
	t.Parallel()

	t.Run("json with level filter", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		h, err := logger.NewHandler(logger.Config{Level: "warn", Format: "json"}, &buf)
		require.NoError(t, err)

		log := slog.New(h)
		log.Info("dropped")
		log.Warn("kept")

		var rec map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
		assert.Equal(t, "kept", rec["msg"])
	})

	t.Run("text format", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		h, err := logger.NewHandler(logger.Config{Format: "TEXT"}, &buf)
		require.NoError(t, err)

		slog.New(h).Info("hello", "received", false)
		assert.True(t, strings.Contains(buf.String(), "received=false"))
	})

	t.Run("bad level", func(t *testing.T) {
		t.Parallel()

		_, err := logger.NewHandler(logger.Config{Level: "loud"}, &bytes.Buffer{})
		require.Error(t, err)
	})

	t.Run("bad format", func(t *testing.T) {
		t.Parallel()

		_, err := logger.NewHandler(logger.Config{Format: "xml"}, &bytes.Buffer{})
		require.ErrorIs(t, err, logger.ErrUnknownFormat)
	})
}

func TestDecorate(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	h := logger.Decorate(slog.NewJSONHandler(&buf, nil), extractor, nil)
	log := slog.New(h).With("component", "checker")

	ctx := context.WithValue(context.Background(), ctxKey{}, "c-1")
	log.InfoContext(ctx, "with id")
	log.Info("without id")

	dec := json.NewDecoder(&buf)

	var first, second map[string]any
	require.NoError(t, dec.Decode(&first))
	require.NoError(t, dec.Decode(&second))

	assert.Equal(t, "c-1", first["check_id"])
	assert.Equal(t, "checker", first["component"])
	assert.NotContains(t, second, "check_id")
}

func TestNewWithSentryWithoutDSN(t *testing.T) {
	t.Parallel()

	log := logger.NewWithSentry(logger.Config{}, logger.SentryConfig{})
	require.NotNil(t, log)
	assert.True(t, log.Enabled(context.Background(), slog.LevelInfo))
}

func TestNewNope(t *testing.T) {
	t.Parallel()

	log := logger.NewNope()
	require.NotNil(t, log)
	log.Error("discarded")
}
