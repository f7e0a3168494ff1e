package permission

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orris-inc/memberhub/internal/infrastructure/database"
	"github.com/orris-inc/memberhub/internal/shared/config"
	"github.com/orris-inc/memberhub/internal/shared/logger"
)

func newTestEnforcer(t *testing.T) *Enforcer {
	t.Helper()
	db, err := database.Open(&config.DatabaseConfig{Driver: "sqlite", Path: ":memory:"})
	require.NoError(t, err)

	e, err := NewEnforcer(db, logger.NewNopLogger())
	require.NoError(t, err)
	require.NoError(t, InitAccountingPermissions(e, logger.NewNopLogger()))
	return e
}

func TestDefaultPolicies(t *testing.T) {
	e := newTestEnforcer(t)

	cases := []struct {
		role, resource, action string
		allowed                bool
	}{
		{"staff", ResourceMember, ActionRead, true},
		{"staff", ResourceRecharge, ActionCreate, true},
		{"staff", ResourceConsumption, ActionCreate, true},
		{"staff", ResourcePack, ActionCreate, false},
		{"staff", ResourceRecharge, ActionUpdate, false},
		{"staff", ResourceConsumption, ActionDelete, false},
		{"staff", ResourceConsumption, ActionReconcile, false},
		{"admin", ResourceConsumption, ActionReconcile, true},
		{"admin", ResourcePack, ActionDelete, true},
		{"guest", ResourceMember, ActionRead, false},
	}
	for _, tc := range cases {
		allowed, err := e.Enforce(tc.role, tc.resource, tc.action)
		require.NoError(t, err)
		assert.Equal(t, tc.allowed, allowed, "%s %s %s", tc.role, tc.resource, tc.action)
	}
}

func TestInitAccountingPermissions_Idempotent(t *testing.T) {
	e := newTestEnforcer(t)
	require.NoError(t, InitAccountingPermissions(e, logger.NewNopLogger()))
	require.NoError(t, e.LoadPolicy())

	allowed, err := e.Enforce("staff", ResourceStats, ActionRead)
	require.NoError(t, err)
	assert.True(t, allowed)

	require.NoError(t, e.RemovePolicy("staff", ResourceStats, ActionRead))
	allowed, err = e.Enforce("staff", ResourceStats, ActionRead)
	require.NoError(t, err)
	assert.False(t, allowed)
}
