package logger

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingHandler struct {
	slog.Handler
	err error
}

func (h failingHandler) Handle(context.Context, slog.Record) error { return h.err }

func TestFanout(t *testing.T) {
	t.Parallel()

	t.Run("delivers to every enabled handler", func(t *testing.T) {
		t.Parallel()

		var info, warn bytes.Buffer
		f := fanout{
			slog.NewTextHandler(&info, &slog.HandlerOptions{Level: slog.LevelInfo}),
			slog.NewTextHandler(&warn, &slog.HandlerOptions{Level: slog.LevelWarn}),
		}
		log := slog.New(f).With("check_id", "c-1")

		log.Info("probe done")
		assert.Contains(t, info.String(), "check_id=c-1")
		assert.Empty(t, warn.String())

		log.Warn("store slow")
		assert.Contains(t, warn.String(), "store slow")
	})

	t.Run("joins handler errors", func(t *testing.T) {
		t.Parallel()

		boom := errors.New("boom")
		var buf bytes.Buffer
		f := fanout{
			failingHandler{Handler: slog.NewTextHandler(io.Discard, nil), err: boom},
			slog.NewTextHandler(&buf, nil),
		}

		rec := slog.NewRecord(time.Now(), slog.LevelInfo, "received", 0)
		err := f.Handle(context.Background(), rec)
		require.ErrorIs(t, err, boom)
		assert.Contains(t, buf.String(), "received")
	})

	t.Run("disabled when no handler accepts the level", func(t *testing.T) {
		t.Parallel()

		f := fanout{slog.NewTextHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelError})}
		assert.False(t, f.Enabled(context.Background(), slog.LevelWarn))
	})
}

func TestDecorateWithoutExtractors(t *testing.T) {
	t.Parallel()

	h := slog.NewTextHandler(&bytes.Buffer{}, nil)
	assert.Equal(t, slog.Handler(h), Decorate(h, nil))
}
