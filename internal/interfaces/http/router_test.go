package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	operatorUsecases "github.com/orris-inc/memberhub/internal/application/operator/usecases"
	"github.com/orris-inc/memberhub/internal/infrastructure/auth"
	"github.com/orris-inc/memberhub/internal/infrastructure/config"
	"github.com/orris-inc/memberhub/internal/infrastructure/database/testdb"
	"github.com/orris-inc/memberhub/internal/infrastructure/repository"
	sharedConfig "github.com/orris-inc/memberhub/internal/shared/config"
	"github.com/orris-inc/memberhub/internal/shared/logger"
)

func testConfig() *config.Config {
	return &config.Config{
		Server: sharedConfig.ServerConfig{AllowedOrigins: []string{"*"}},
		Auth: sharedConfig.AuthConfig{
			JWT:               sharedConfig.JWTConfig{Secret: "router-test", AccessExpMinutes: 30},
			BcryptCost:        4,
			SessionTTLSeconds: 600,
			RateLimitPerMin:   100,
		},
		Events:     sharedConfig.EventsConfig{Driver: "none"},
		Accounting: sharedConfig.AccountingConfig{DefaultValidityDays: 365, ReconcileBatchSize: 50},
	}
}

type testServer struct {
	t      *testing.T
	router *Router
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testdb.Open(t)
	cfg := testConfig()
	log := logger.NewNopLogger()

	r, err := NewRouter(context.Background(), db, cfg, log)
	require.NoError(t, err)
	t.Cleanup(func() { r.Container.Shutdown() })

	create := operatorUsecases.NewCreateOperatorUseCase(
		repository.NewOperatorRepository(db, log),
		auth.NewBcryptPasswordHasher(cfg.Auth.BcryptCost),
		log,
	)
	for _, op := range []operatorUsecases.CreateOperatorCommand{
		{Account: "boss", Name: "店长", Password: "boss-pass", Role: "admin"},
		{Account: "cashier", Name: "前台", Password: "cashier-pass", Role: "staff"},
	} {
		_, err := create.Execute(context.Background(), op)
		require.NoError(t, err)
	}

	return &testServer{t: t, router: r}
}

func (s *testServer) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	s.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.GetEngine().ServeHTTP(w, req)
	return w
}

func (s *testServer) login(account, password string) string {
	s.t.Helper()
	w := s.do(http.MethodPost, "/auth/login", "", map[string]string{"account": account, "password": password})
	require.Equal(s.t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Data struct {
			AccessToken string `json:"accessToken"`
		} `json:"data"`
	}
	require.NoError(s.t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(s.t, resp.Data.AccessToken)
	return resp.Data.AccessToken
}

func TestRouter_Health(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodGet, "/health", "", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestRouter_AuthFlow(t *testing.T) {
	s := newTestServer(t)

	t.Run("wrong password", func(t *testing.T) {
		w := s.do(http.MethodPost, "/auth/login", "", map[string]string{"account": "boss", "password": "nope"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("protected route needs token", func(t *testing.T) {
		w := s.do(http.MethodGet, "/members", "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("logout revokes session", func(t *testing.T) {
		token := s.login("boss", "boss-pass")

		w := s.do(http.MethodPost, "/auth/logout", token, nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		w = s.do(http.MethodGet, "/members", token, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestRouter_MemberPermissions(t *testing.T) {
	s := newTestServer(t)
	staff := s.login("cashier", "cashier-pass")
	admin := s.login("boss", "boss-pass")

	w := s.do(http.MethodPost, "/members", staff, map[string]interface{}{
		"name":  "张三",
		"phone": "13800138000",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created struct {
		Data struct {
			ID uint `json:"id"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.NotZero(t, created.Data.ID)

	w = s.do(http.MethodGet, "/members", staff, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list struct {
		Data struct {
			Total int64 `json:"total"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Equal(t, int64(1), list.Data.Total)

	path := "/members/" + jsonNumber(created.Data.ID)

	w = s.do(http.MethodDelete, path, staff, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.do(http.MethodDelete, path, admin, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestRouter_ReconcileRequiresAdmin(t *testing.T) {
	s := newTestServer(t)
	staff := s.login("cashier", "cashier-pass")
	admin := s.login("boss", "boss-pass")

	w := s.do(http.MethodPost, "/consumptions/reset-all-recharge-times", staff, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.do(http.MethodPost, "/consumptions/reset-all-recharge-times", admin, nil)
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func jsonNumber(v uint) string {
	b, _ := json.Marshal(v)
	return string(b)
}
