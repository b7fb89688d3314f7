package controllers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"kanzie/internal/delivery/http/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePinger struct{ err error }

func (f fakePinger) PingContext(context.Context) error { return f.err }

func TestHealthController(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		ctrl := NewHealthController(testLogger, fakePinger{})
		rr := httptest.NewRecorder()
		ctrl.Health(rr, httptest.NewRequest(http.MethodGet, "http://test/health", nil))

		require.Equal(t, http.StatusOK, rr.Code)
		var got HealthResponse
		decodeData(t, rr, &got)
		assert.Equal(t, "ok", got.Status)
	})

	t.Run("database down", func(t *testing.T) {
		ctrl := NewHealthController(testLogger, fakePinger{err: errors.New("dial tcp: refused")})
		rr := httptest.NewRecorder()
		ctrl.Health(rr, httptest.NewRequest(http.MethodGet, "http://test/health", nil))

		require.Equal(t, http.StatusServiceUnavailable, rr.Code)
		envelope := decodeData(t, rr, nil)
		require.NotNil(t, envelope.Error)
		assert.Equal(t, helpers.ErrCodeUnavailable, envelope.Error.Code)
	})
}
