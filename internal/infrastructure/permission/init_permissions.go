package permission

import (
	"fmt"

	"github.com/orris-inc/memberhub/internal/shared/logger"
)

const (
	ResourceMember      = "member"
	ResourcePack        = "pack"
	ResourceRecharge    = "recharge"
	ResourceConsumption = "consumption"
	ResourceStats       = "stats"

	ActionCreate    = "create"
	ActionRead      = "read"
	ActionUpdate    = "update"
	ActionDelete    = "delete"
	ActionReconcile = "reconcile"
)

// DefaultPolicies lets staff read everything and create members, recharges
// and consumptions. Admins may do everything.
func DefaultPolicies() [][]string {
	return [][]string{
		{"admin", "*", "*"},

		{"staff", ResourceMember, ActionRead},
		{"staff", ResourcePack, ActionRead},
		{"staff", ResourceRecharge, ActionRead},
		{"staff", ResourceConsumption, ActionRead},
		{"staff", ResourceStats, ActionRead},

		{"staff", ResourceMember, ActionCreate},
		{"staff", ResourceRecharge, ActionCreate},
		{"staff", ResourceConsumption, ActionCreate},
	}
}

// InitAccountingPermissions seeds the default policies. Existing rows are
// left alone, so it is safe to run on every start.
func InitAccountingPermissions(e *Enforcer, log logger.Interface) error {
	for _, policy := range DefaultPolicies() {
		if err := e.AddPolicy(policy[0], policy[1], policy[2]); err != nil {
			log.Errorw("failed to add permission policy",
				"error", err,
				"role", policy[0],
				"resource", policy[1],
				"action", policy[2])
			return fmt.Errorf("failed to add policy [%s, %s, %s]: %w",
				policy[0], policy[1], policy[2], err)
		}
	}

	log.Info("accounting permissions initialized successfully")
	return nil
}
