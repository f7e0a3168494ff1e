package handlers

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orris-inc/memberhub/internal/interfaces/http/handlers/testutil"
)

type stubPinger struct {
	err error
}

func (p *stubPinger) PingContext(ctx context.Context) error {
	return p.err
}

func TestHealthHandler_HealthCheck(t *testing.T) {
	t.Run("up", func(t *testing.T) {
		h := NewHealthHandler(&stubPinger{}, testutil.NewMockLogger())

		c, w := testutil.NewTestContext(http.MethodGet, "/health", nil)
		h.HealthCheck(c)

		assert.Equal(t, http.StatusOK, w.Code)
		var resp testutil.APIResponse
		require.NoError(t, testutil.ParseResponse(w, &resp))
		var got HealthResponse
		require.NoError(t, json.Unmarshal(resp.Data, &got))
		assert.Equal(t, "ok", got.Status)
		assert.Equal(t, "up", got.Database)
	})

	t.Run("database down", func(t *testing.T) {
		h := NewHealthHandler(&stubPinger{err: stderrors.New("connection refused")}, testutil.NewMockLogger())

		c, w := testutil.NewTestContext(http.MethodGet, "/health", nil)
		h.HealthCheck(c)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		var resp testutil.APIResponse
		require.NoError(t, testutil.ParseResponse(w, &resp))
		assert.False(t, resp.Success)
		var got HealthResponse
		require.NoError(t, json.Unmarshal(resp.Data, &got))
		assert.Equal(t, "down", got.Database)
	})
}
