package events

import (
	"context"
	"time"
)

// Event types
const (
	EventTypeRechargeCreated       = "recharge.created"
	EventTypeConsumptionCreated    = "consumption.created"
	EventTypeRechargeCountersReset = "recharge.counters_reset"
)

// AccountingEvent is published after an accounting write commits.
type AccountingEvent struct {
	Type          string    `json:"type"`
	RechargeID    *uint     `json:"rechargeId,omitempty"`
	ConsumptionID *uint     `json:"consumptionId,omitempty"`
	MemberID      *uint     `json:"memberId,omitempty"`
	OccurredAt    time.Time `json:"occurredAt"`
}

func NewRechargeCreated(rechargeID, memberID uint, at time.Time) AccountingEvent {
	return AccountingEvent{
		Type:       EventTypeRechargeCreated,
		RechargeID: &rechargeID,
		MemberID:   &memberID,
		OccurredAt: at,
	}
}

func NewConsumptionCreated(consumptionID uint, rechargeID, memberID *uint, at time.Time) AccountingEvent {
	return AccountingEvent{
		Type:          EventTypeConsumptionCreated,
		ConsumptionID: &consumptionID,
		RechargeID:    rechargeID,
		MemberID:      memberID,
		OccurredAt:    at,
	}
}

func NewRechargeCountersReset(rechargeID uint, at time.Time) AccountingEvent {
	return AccountingEvent{
		Type:       EventTypeRechargeCountersReset,
		RechargeID: &rechargeID,
		OccurredAt: at,
	}
}

// EventPublisher delivers accounting events to downstream consumers.
type EventPublisher interface {
	Publish(ctx context.Context, event AccountingEvent) error
}

// NopPublisher drops every event.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, AccountingEvent) error { return nil }
