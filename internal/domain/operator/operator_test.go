package operator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orris-inc/memberhub/internal/shared/errors"
)

func TestNewOperator(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	op, err := NewOperator(" admin ", "", "hash", "", now)
	require.NoError(t, err)
	assert.Equal(t, "admin", op.Account())
	assert.Equal(t, "admin", op.Name())
	assert.Equal(t, RoleStaff, op.Role())
	assert.True(t, op.IsActive())

	op.RecordLogin(now.Add(time.Minute))
	require.NotNil(t, op.LastLoginAt())

	_, err = NewOperator("", "n", "hash", RoleAdmin, now)
	assert.True(t, errors.IsValidationError(err))
	_, err = NewOperator("a", "n", "", RoleAdmin, now)
	assert.True(t, errors.IsValidationError(err))
}

func TestParseRole(t *testing.T) {
	r, err := ParseRole("admin")
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, r)

	_, err = ParseRole("root")
	assert.Error(t, err)
}
