package valueobjects

import (
	"fmt"
	"time"

	"github.com/orris-inc/memberhub/internal/shared/biztime"
)

type RechargeState string

const (
	StateActive    RechargeState = "active"
	StateCompleted RechargeState = "completed"
	StateExpired   RechargeState = "expired"
	StateDisabled  RechargeState = "disabled"
)

// legacy values written by older clients
const (
	legacyStateValid = "valid"
	legacyStateUsed  = "used"
)

var ValidStates = map[RechargeState]bool{
	StateActive:    true,
	StateCompleted: true,
	StateExpired:   true,
	StateDisabled:  true,
}

func (s RechargeState) String() string {
	return string(s)
}

func (s RechargeState) IsDisabled() bool {
	return s == StateDisabled
}

// ParseRechargeState accepts canonical values and the legacy valid/used pair.
// An empty value reads as active.
func ParseRechargeState(raw string) (RechargeState, error) {
	switch raw {
	case "", legacyStateValid:
		return StateActive, nil
	case legacyStateUsed:
		return StateCompleted, nil
	}
	s := RechargeState(raw)
	if !ValidStates[s] {
		return "", fmt.Errorf("invalid recharge state: %s", raw)
	}
	return s, nil
}

// DeriveRechargeState computes the lifecycle state from stored dates and
// counters. disabled is never overridden. Expiry is checked before times
// exhaustion, so a record that is both reports expired.
func DeriveRechargeState(state RechargeState, endDate *time.Time, remainingTimes *int, now time.Time) RechargeState {
	if state == StateDisabled {
		return StateDisabled
	}
	if endDate != nil && EndDatePassed(*endDate, now) {
		return StateExpired
	}
	if remainingTimes != nil && *remainingTimes <= 0 {
		return StateCompleted
	}
	return StateActive
}

// EndDatePassed reports whether the business day of now is after endDate.
// endDate is a calendar date stored as UTC midnight and stays valid for its
// whole business day.
func EndDatePassed(endDate, now time.Time) bool {
	return endDate.Before(biztime.BusinessDate(now))
}

// RechargeType marks whether a recharge was bought through a pack.
type RechargeType string

const (
	TypePackage RechargeType = "package"
	TypeBalance RechargeType = "balance"
)

func ParseRechargeType(raw string) (RechargeType, error) {
	switch RechargeType(raw) {
	case TypePackage, TypeBalance:
		return RechargeType(raw), nil
	}
	return "", fmt.Errorf("invalid recharge type: %s", raw)
}
