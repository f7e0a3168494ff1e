package utils

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orris-inc/memberhub/internal/shared/errors"
)

func newContext() (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	return c, w
}

func TestErrorResponseWithError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantType string
	}{
		{"invalid state", errors.NewInvalidStateError("余额不足"), http.StatusBadRequest, "invalid_state"},
		{"not found", errors.NewNotFoundError("充值记录 ID 9 不存在"), http.StatusNotFound, "not_found"},
		{"wrapped app error", fmt.Errorf("ctx: %w", errors.NewConflictError("手机号已存在")), http.StatusConflict, "conflict"},
		{"json syntax", &json.SyntaxError{}, http.StatusBadRequest, "validation_error"},
		{"opaque", fmt.Errorf("dial tcp: refused"), http.StatusInternalServerError, "internal_error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newContext()
			ErrorResponseWithError(c, tt.err)

			assert.Equal(t, tt.wantCode, w.Code)
			var resp APIResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.False(t, resp.Success)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.wantType, resp.Error.Type)
		})
	}
}

func TestErrorResponseWithError_HidesInternalDetails(t *testing.T) {
	c, w := newContext()
	ErrorResponseWithError(c, fmt.Errorf("password=secret"))
	assert.NotContains(t, w.Body.String(), "secret")
}

func TestListSuccessResponse(t *testing.T) {
	c, w := newContext()
	ListSuccessResponse(c, []int{1, 2, 3}, 21, 2, 10)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Data ListResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(21), resp.Data.Total)
	assert.Equal(t, 3, resp.Data.TotalPages)
}

func TestValidatePagination(t *testing.T) {
	assert.Equal(t, Pagination{Page: 1, PageSize: 10}, ValidatePagination(0, 0))
	assert.Equal(t, Pagination{Page: 3, PageSize: 100}, ValidatePagination(3, 1000))
	assert.Equal(t, 1, TotalPages(0, 10))
}
