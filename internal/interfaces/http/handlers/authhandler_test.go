package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	operatordto "github.com/orris-inc/memberhub/internal/application/operator/dto"
	operatorUsecases "github.com/orris-inc/memberhub/internal/application/operator/usecases"
	"github.com/orris-inc/memberhub/internal/interfaces/http/handlers/testutil"
	"github.com/orris-inc/memberhub/internal/shared/errors"
)

type mockLoginUC struct {
	result *operatordto.LoginResultDTO
	err    error
	cmd    operatorUsecases.LoginCommand
}

func (m *mockLoginUC) Execute(ctx context.Context, cmd operatorUsecases.LoginCommand) (*operatordto.LoginResultDTO, error) {
	m.cmd = cmd
	return m.result, m.err
}

type mockLogoutUC struct {
	err       error
	sessionID string
}

func (m *mockLogoutUC) Execute(ctx context.Context, sessionID string) error {
	m.sessionID = sessionID
	return m.err
}

func newTestAuthHandler() (*AuthHandler, *mockLoginUC, *mockLogoutUC) {
	login := &mockLoginUC{}
	logout := &mockLogoutUC{}
	return NewAuthHandler(login, logout, testutil.NewMockLogger()), login, logout
}

func TestAuthHandler_Login(t *testing.T) {
	h, login, _ := newTestAuthHandler()
	login.result = &operatordto.LoginResultDTO{
		AccessToken: "token",
		ExpiresIn:   3600,
		Operator:    &operatordto.OperatorDTO{ID: 1, Account: "admin", Role: "admin"},
	}

	c, w := testutil.NewTestContext(http.MethodPost, "/auth/login", map[string]interface{}{
		"account":  "admin",
		"password": "secret123",
	})

	h.Login(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "admin", login.cmd.Account)
	assert.Equal(t, "secret123", login.cmd.Password)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	var got operatordto.LoginResultDTO
	require.NoError(t, json.Unmarshal(resp.Data, &got))
	assert.Equal(t, "token", got.AccessToken)
	assert.Equal(t, int64(3600), got.ExpiresIn)
}

func TestAuthHandler_Login_MissingPassword(t *testing.T) {
	h, _, _ := newTestAuthHandler()

	c, w := testutil.NewTestContext(http.MethodPost, "/auth/login", map[string]interface{}{
		"account": "admin",
	})

	h.Login(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthHandler_Login_BadCredentials(t *testing.T) {
	h, login, _ := newTestAuthHandler()
	login.err = errors.NewUnauthorizedError("invalid account or password")

	c, w := testutil.NewTestContext(http.MethodPost, "/auth/login", map[string]interface{}{
		"account":  "admin",
		"password": "wrong",
	})

	h.Login(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_Logout(t *testing.T) {
	t.Run("drops session", func(t *testing.T) {
		h, _, logout := newTestAuthHandler()

		c, w := testutil.NewTestContext(http.MethodPost, "/auth/logout", nil)
		testutil.SetAuthContext(c, 1, "admin")

		h.Logout(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "test-session-id", logout.sessionID)
	})

	t.Run("no session", func(t *testing.T) {
		h, _, logout := newTestAuthHandler()

		c, w := testutil.NewTestContext(http.MethodPost, "/auth/logout", nil)

		h.Logout(c)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Empty(t, logout.sessionID)
	})
}
