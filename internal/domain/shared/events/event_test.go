package events

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountingEventJSON(t *testing.T) {
	at := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	recharge := uint(3)
	data, err := json.Marshal(NewConsumptionCreated(9, &recharge, nil, at))
	require.NoError(t, err)

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, EventTypeConsumptionCreated, got["type"])
	assert.EqualValues(t, 9, got["consumptionId"])
	assert.EqualValues(t, 3, got["rechargeId"])
	assert.NotContains(t, got, "memberId")
}

func TestNopPublisher(t *testing.T) {
	var p EventPublisher = NopPublisher{}
	assert.NoError(t, p.Publish(t.Context(), NewRechargeCountersReset(1, time.Now())))
}
