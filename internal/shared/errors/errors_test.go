package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Constructors(t *testing.T) {
	tests := []struct {
		name     string
		err      *AppError
		wantType ErrorType
		wantCode int
	}{
		{"validation", NewValidationError("bad input"), ErrorTypeValidation, http.StatusBadRequest},
		{"not found", NewNotFoundError("missing"), ErrorTypeNotFound, http.StatusNotFound},
		{"conflict", NewConflictError("dup"), ErrorTypeConflict, http.StatusConflict},
		{"invalid state", NewInvalidStateError("余额不足"), ErrorTypeInvalidState, http.StatusBadRequest},
		{"unauthorized", NewUnauthorizedError("who"), ErrorTypeUnauthorized, http.StatusUnauthorized},
		{"forbidden", NewForbiddenError("no"), ErrorTypeForbidden, http.StatusForbidden},
		{"internal", NewInternalError("boom"), ErrorTypeInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantType, tt.err.Type)
			assert.Equal(t, tt.wantCode, tt.err.Code)
		})
	}
}

func TestAppError_ErrorString(t *testing.T) {
	assert.Equal(t, "not_found: missing", NewNotFoundError("missing").Error())
	assert.Equal(t, "validation_error: bad (field x)", NewValidationError("bad", "field x").Error())
}

func TestTypeChecks_ThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("use case failed: %w", NewInvalidStateError("剩余次数不足"))

	assert.True(t, IsAppError(wrapped))
	assert.True(t, IsInvalidStateError(wrapped))
	assert.False(t, IsNotFoundError(wrapped))
	assert.Equal(t, "剩余次数不足", GetAppError(wrapped).Message)
}

func TestIsDuplicateError(t *testing.T) {
	assert.False(t, IsDuplicateError(nil))
	assert.True(t, IsDuplicateError(fmt.Errorf("Error 1062: Duplicate entry '138' for key 'phone'")))
	assert.True(t, IsDuplicateError(fmt.Errorf("ERROR: duplicate key value violates unique constraint")))
	assert.True(t, IsDuplicateError(fmt.Errorf("UNIQUE constraint failed: members.phone")))
	assert.False(t, IsDuplicateError(fmt.Errorf("connection refused")))
}
