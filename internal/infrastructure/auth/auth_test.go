package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orris-inc/memberhub/internal/domain/operator"
)

func newTestOperator(t *testing.T) *operator.Operator {
	t.Helper()
	op, err := operator.NewOperator("cashier01", "前台", "hash", operator.RoleStaff, time.Now().UTC())
	require.NoError(t, err)
	require.NoError(t, op.SetID(3))
	return op
}

func TestJWTService_GenerateAndVerify(t *testing.T) {
	svc := NewJWTService("secret", 30)
	op := newTestOperator(t)

	token, exp, err := svc.Generate(op, "sess-1")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(30*time.Minute), exp, time.Minute)

	claims, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, uint(3), claims.OperatorID)
	assert.Equal(t, "cashier01", claims.Account)
	assert.Equal(t, operator.RoleStaff, claims.Role)
	assert.Equal(t, "sess-1", claims.ID)
}

func TestJWTService_RejectsForeignAndExpiredTokens(t *testing.T) {
	op := newTestOperator(t)

	token, _, err := NewJWTService("other-secret", 30).Generate(op, "s")
	require.NoError(t, err)
	_, err = NewJWTService("secret", 30).Verify(token)
	assert.Error(t, err)

	svc := NewJWTService("secret", 1)
	token, _, err = svc.Generate(op, "s")
	require.NoError(t, err)
	svc.clock = func() time.Time { return time.Now().Add(2 * time.Hour) }
	_, err = svc.Verify(token)
	assert.Error(t, err)

	_, err = svc.Verify("not-a-token")
	assert.Error(t, err)
}

func TestBcryptPasswordHasher(t *testing.T) {
	h := NewBcryptPasswordHasher(4)

	hash, err := h.Hash("p@ssw0rd")
	require.NoError(t, err)
	assert.NoError(t, h.Verify("p@ssw0rd", hash))
	assert.ErrorIs(t, h.Verify("wrong", hash), ErrPasswordMismatch)
	assert.ErrorIs(t, h.Verify("p@ssw0rd", "garbage"), ErrPasswordMismatch)

	assert.False(t, h.NeedsRehash(hash))
	assert.True(t, NewBcryptPasswordHasher(5).NeedsRehash(hash))

	_, err = h.Hash("")
	assert.Error(t, err)
}
