package internal_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/cookiecheck/internal"
)

func TestIsHTTPError(t *testing.T) {
	t.Parallel()

	t.Run("direct HTTPError", func(t *testing.T) {
		t.Parallel()
		err := internal.NewHTTPError(http.StatusNotFound, "not found")
		require.True(t, internal.IsHTTPError(err))
	})

	t.Run("wrapped HTTPError", func(t *testing.T) {
		t.Parallel()
		err := fmt.Errorf("handler failed: %w", internal.ErrBadRequest("bad request"))
		require.True(t, internal.IsHTTPError(err))
	})

	t.Run("unrelated error", func(t *testing.T) {
		t.Parallel()
		require.False(t, internal.IsHTTPError(errors.New("something went wrong")))
	})

	t.Run("nil error", func(t *testing.T) {
		t.Parallel()
		require.False(t, internal.IsHTTPError(nil))
	})
}

func TestAsHTTPError(t *testing.T) {
	t.Parallel()

	t.Run("wrapped HTTPError preserves fields", func(t *testing.T) {
		t.Parallel()
		cause := errors.New("store down")
		err := fmt.Errorf("middleware: %w", internal.ErrServiceUnavailable("try later",
			internal.WithErrorCode("store_unavailable"),
			internal.WithError(cause),
		))

		got := internal.AsHTTPError(err)
		require.NotNil(t, got)
		assert.Equal(t, http.StatusServiceUnavailable, got.Code)
		assert.Equal(t, "try later", got.Message)
		assert.Equal(t, "store_unavailable", got.ErrorCode)
		assert.ErrorIs(t, got, cause)
	})

	t.Run("unrelated error returns nil", func(t *testing.T) {
		t.Parallel()
		require.Nil(t, internal.AsHTTPError(errors.New("plain error")))
	})
}

func TestNewHTTPError_EmptyMessage(t *testing.T) {
	t.Parallel()

	err := internal.ErrNotFound("")
	assert.Equal(t, "Not Found", err.Message)
	assert.Equal(t, http.StatusNotFound, err.StatusCode())
}

func TestDefaultErrorHandler(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"http error keeps status", internal.ErrBadRequest("missing id"), http.StatusBadRequest, "missing id"},
		{"wrapped http error", fmt.Errorf("x: %w", internal.ErrNotFound("gone")), http.StatusNotFound, "gone"},
		{"plain error hides details", errors.New("db password wrong"), http.StatusInternalServerError, "Internal Server Error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			app := internal.New(internal.WithHandlers(handlerFunc(func(r internal.Router) {
				r.GET("/", func(internal.Context) error { return tt.err })
			})))

			rec := httptest.NewRecorder()
			app.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

			require.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))

			var body map[string]any
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantMsg, body["message"])
			assert.EqualValues(t, tt.wantStatus, body["status"])
		})
	}
}
