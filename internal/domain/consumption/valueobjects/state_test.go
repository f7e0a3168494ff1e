package valueobjects

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseConsumptionState(t *testing.T) {
	tests := []struct {
		raw  string
		want ConsumptionState
	}{
		{"", StateValid},
		{"1", StateValid},
		{"2", StateCompleted},
		{"used", StateCompleted},
		{"disabled", StateCancelled},
		{"expired", StateCancelled},
		{"pending", StatePending},
		{"valid", StateValid},
		{"completed", StateCompleted},
		{"cancelled", StateCancelled},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseConsumptionState(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseConsumptionState("3")
	assert.Error(t, err)
}

func TestCountsTowardUsage(t *testing.T) {
	assert.True(t, StateValid.CountsTowardUsage())
	assert.True(t, StateCompleted.CountsTowardUsage())
	assert.False(t, StatePending.CountsTowardUsage())
	assert.False(t, StateCancelled.CountsTowardUsage())

	for _, s := range UsageStates() {
		assert.True(t, s.CountsTowardUsage())
	}
}
