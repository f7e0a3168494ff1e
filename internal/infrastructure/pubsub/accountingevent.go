package pubsub

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/orris-inc/memberhub/internal/domain/shared/events"
	"github.com/orris-inc/memberhub/internal/shared/logger"
)

// AccountingEventHandler is called for every event received by Subscribe.
type AccountingEventHandler func(ctx context.Context, event events.AccountingEvent)

// RedisAccountingEventBus publishes accounting events on a Redis pub/sub
// channel.
type RedisAccountingEventBus struct {
	client  *redis.Client
	channel string
	logger  logger.Interface
}

var _ events.EventPublisher = (*RedisAccountingEventBus)(nil)

func NewRedisAccountingEventBus(client *redis.Client, channel string, logger logger.Interface) *RedisAccountingEventBus {
	return &RedisAccountingEventBus{
		client:  client,
		channel: channel,
		logger:  logger,
	}
}

func (b *RedisAccountingEventBus) Publish(ctx context.Context, event events.AccountingEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if err := b.client.Publish(ctx, b.channel, data).Err(); err != nil {
		b.logger.Errorw("failed to publish accounting event",
			"type", event.Type,
			"channel", b.channel,
			"error", err,
		)
		return fmt.Errorf("failed to publish event: %w", err)
	}

	b.logger.Debugw("accounting event published", "type", event.Type, "channel", b.channel)
	return nil
}

// Subscribe blocks until ctx is done, calling handler for each event.
func (b *RedisAccountingEventBus) Subscribe(ctx context.Context, handler AccountingEventHandler) error {
	sub := b.client.Subscribe(ctx, b.channel)
	defer sub.Close()

	if _, err := sub.Receive(ctx); err != nil {
		return fmt.Errorf("failed to subscribe to channel: %w", err)
	}

	b.logger.Infow("subscribed to accounting events", "channel", b.channel)

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case msg, ok := <-ch:
			if !ok {
				b.logger.Warnw("accounting event channel closed")
				return nil
			}

			var event events.AccountingEvent
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				b.logger.Warnw("failed to unmarshal accounting event",
					"payload", msg.Payload,
					"error", err,
				)
				continue
			}
			handler(ctx, event)
		}
	}
}
