package middleware

import (
	"context"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orris-inc/memberhub/internal/domain/operator"
	"github.com/orris-inc/memberhub/internal/infrastructure/auth"
	"github.com/orris-inc/memberhub/internal/infrastructure/cache"
	"github.com/orris-inc/memberhub/internal/infrastructure/ratelimit"
	"github.com/orris-inc/memberhub/internal/interfaces/http/handlers/testutil"
	"github.com/orris-inc/memberhub/internal/shared/constants"
	"github.com/orris-inc/memberhub/internal/shared/utils"
)

func newEngine(handlers ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	chain := append(handlers, func(c *gin.Context) {
		id, _ := utils.GetOperatorID(c)
		c.JSON(http.StatusOK, gin.H{
			"operator":   id,
			"role":       utils.GetOperatorRole(c),
			"request_id": utils.GetRequestID(c),
		})
	})
	r.Any("/test", chain...)
	return r
}

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// =====================================================================
// RequireAuth
// =====================================================================

type authFixture struct {
	jwt      *auth.JWTService
	sessions *cache.MemorySessionStore
	op       *operator.Operator
	engine   *gin.Engine
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	op, err := operator.NewOperator("cashier01", "前台", "hash", operator.RoleStaff, time.Now().UTC())
	require.NoError(t, err)
	require.NoError(t, op.SetID(3))

	f := &authFixture{
		jwt:      auth.NewJWTService("test-secret", 30),
		sessions: cache.NewMemorySessionStore(),
		op:       op,
	}
	m := NewAuthMiddleware(f.jwt, f.sessions, testutil.NewMockLogger())
	f.engine = newEngine(m.RequireAuth())
	return f
}

func (f *authFixture) login(t *testing.T, sessionID string) string {
	t.Helper()
	token, _, err := f.jwt.Generate(f.op, sessionID)
	require.NoError(t, err)
	require.NoError(t, f.sessions.Save(context.Background(), sessionID, &operator.Session{
		OperatorID: f.op.ID(),
		Account:    f.op.Account(),
		Name:       f.op.Name(),
		Role:       f.op.Role(),
	}, time.Hour))
	return token
}

func bearer(token string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set(constants.HeaderAuthorization, "Bearer "+token)
	return req
}

func TestRequireAuth_ValidSession(t *testing.T) {
	f := newAuthFixture(t)
	token := f.login(t, "sess-1")

	w := serve(f.engine, bearer(token))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"operator":3`)
	assert.Contains(t, w.Body.String(), `"role":"staff"`)
}

func TestRequireAuth_Rejects(t *testing.T) {
	f := newAuthFixture(t)

	t.Run("missing header", func(t *testing.T) {
		w := serve(f.engine, httptest.NewRequest(http.MethodGet, "/test", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("wrong scheme", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set(constants.HeaderAuthorization, "Basic abc")
		w := serve(f.engine, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		w := serve(f.engine, bearer("not.a.jwt"))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("session revoked", func(t *testing.T) {
		token := f.login(t, "sess-2")
		require.NoError(t, f.sessions.Delete(context.Background(), "sess-2"))

		w := serve(f.engine, bearer(token))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "session expired")
	})

	t.Run("session of another operator", func(t *testing.T) {
		token, _, err := f.jwt.Generate(f.op, "sess-3")
		require.NoError(t, err)
		require.NoError(t, f.sessions.Save(context.Background(), "sess-3", &operator.Session{OperatorID: 99}, time.Hour))

		w := serve(f.engine, bearer(token))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

// =====================================================================
// RequirePermission
// =====================================================================

type fakeEnforcer struct {
	allow map[string]bool
	err   error
}

func (e *fakeEnforcer) Enforce(role, resource, action string) (bool, error) {
	if e.err != nil {
		return false, e.err
	}
	return e.allow[role+":"+resource+":"+action], nil
}

func withOperator(id uint, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(constants.ContextKeyOperatorID, id)
		c.Set(constants.ContextKeyOperatorRole, role)
		c.Next()
	}
}

func TestRequirePermission(t *testing.T) {
	enf := &fakeEnforcer{allow: map[string]bool{"staff:recharge:create": true}}
	m := NewPermissionMiddleware(enf, testutil.NewMockLogger())

	t.Run("allowed", func(t *testing.T) {
		r := newEngine(withOperator(3, "staff"), m.RequirePermission("recharge", "create"))
		w := serve(r, httptest.NewRequest(http.MethodGet, "/test", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("denied", func(t *testing.T) {
		r := newEngine(withOperator(3, "staff"), m.RequirePermission("recharge", "delete"))
		w := serve(r, httptest.NewRequest(http.MethodGet, "/test", nil))
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("unauthenticated", func(t *testing.T) {
		r := newEngine(m.RequirePermission("recharge", "create"))
		w := serve(r, httptest.NewRequest(http.MethodGet, "/test", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("enforcer failure", func(t *testing.T) {
		broken := NewPermissionMiddleware(&fakeEnforcer{err: stderrors.New("db down")}, testutil.NewMockLogger())
		r := newEngine(withOperator(3, "staff"), broken.RequirePermission("recharge", "create"))
		w := serve(r, httptest.NewRequest(http.MethodGet, "/test", nil))
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

// =====================================================================
// RequestID / CORS
// =====================================================================

func TestRequestID(t *testing.T) {
	r := newEngine(RequestID())

	t.Run("generated", func(t *testing.T) {
		w := serve(r, httptest.NewRequest(http.MethodGet, "/test", nil))
		id := w.Header().Get(constants.HeaderXRequestID)
		assert.Len(t, id, 36)
		assert.Contains(t, w.Body.String(), id)
	})

	t.Run("propagated", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set(constants.HeaderXRequestID, "abc-123")
		w := serve(r, req)
		assert.Equal(t, "abc-123", w.Header().Get(constants.HeaderXRequestID))
	})
}

func TestCORS(t *testing.T) {
	r := newEngine(CORS([]string{"https://pos.example.com"}))

	t.Run("whitelisted origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set("Origin", "https://pos.example.com")
		w := serve(r, req)
		assert.Equal(t, "https://pos.example.com", w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("unknown origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set("Origin", "https://evil.example.com")
		w := serve(r, req)
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("preflight", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/test", nil)
		req.Header.Set("Origin", "https://pos.example.com")
		w := serve(r, req)
		assert.Equal(t, http.StatusNoContent, w.Code)
	})
}

// =====================================================================
// RateLimiter
// =====================================================================

type failingLimiter struct{}

func (failingLimiter) Allow(ctx context.Context, key string, config ratelimit.RateLimitConfig) (bool, error) {
	return false, stderrors.New("redis unavailable")
}

func (failingLimiter) Reset(ctx context.Context, key string) error { return nil }

func TestRateLimiter(t *testing.T) {
	t.Run("blocks after limit", func(t *testing.T) {
		rl := NewRateLimiter(ratelimit.NewMemoryRateLimiter(), "login", ratelimit.RateLimitConfig{RequestsPerMinute: 2}, testutil.NewMockLogger())
		r := newEngine(rl.Limit())

		for i := 0; i < 2; i++ {
			w := serve(r, httptest.NewRequest(http.MethodPost, "/test", nil))
			require.Equal(t, http.StatusOK, w.Code)
		}
		w := serve(r, httptest.NewRequest(http.MethodPost, "/test", nil))
		assert.Equal(t, http.StatusTooManyRequests, w.Code)
	})

	t.Run("fails open", func(t *testing.T) {
		rl := NewRateLimiter(failingLimiter{}, "login", ratelimit.RateLimitConfig{RequestsPerMinute: 1}, testutil.NewMockLogger())
		r := newEngine(rl.Limit())

		w := serve(r, httptest.NewRequest(http.MethodPost, "/test", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})
}
