package valueobjects

import "fmt"

type ConsumptionState string

const (
	StatePending   ConsumptionState = "pending"
	StateValid     ConsumptionState = "valid"
	StateCompleted ConsumptionState = "completed"
	StateCancelled ConsumptionState = "cancelled"
)

var ValidStates = map[ConsumptionState]bool{
	StatePending:   true,
	StateValid:     true,
	StateCompleted: true,
	StateCancelled: true,
}

// legacyStates maps values written by older clients onto the canonical set.
var legacyStates = map[string]ConsumptionState{
	"":         StateValid,
	"1":        StateValid,
	"2":        StateCompleted,
	"used":     StateCompleted,
	"disabled": StateCancelled,
	"expired":  StateCancelled,
}

func (s ConsumptionState) String() string {
	return string(s)
}

// CountsTowardUsage reports whether a consumption in this state consumes one
// use of its recharge.
func (s ConsumptionState) CountsTowardUsage() bool {
	return s == StateValid || s == StateCompleted
}

// UsageStates lists the states that count toward usage, for query filters.
func UsageStates() []ConsumptionState {
	return []ConsumptionState{StateValid, StateCompleted}
}

// ParseConsumptionState accepts canonical and legacy values.
func ParseConsumptionState(raw string) (ConsumptionState, error) {
	if s, ok := legacyStates[raw]; ok {
		return s, nil
	}
	s := ConsumptionState(raw)
	if !ValidStates[s] {
		return "", fmt.Errorf("invalid consumption state: %s", raw)
	}
	return s, nil
}
