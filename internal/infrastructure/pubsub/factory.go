package pubsub

import (
	"fmt"
	"io"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/orris-inc/memberhub/internal/domain/shared/events"
	"github.com/orris-inc/memberhub/internal/shared/config"
	"github.com/orris-inc/memberhub/internal/shared/logger"
)

const defaultRedisChannel = "memberhub:accounting"

// NewEventPublisher builds the publisher selected by cfg.Driver. The returned
// closer drains pending events, releases broker connections and is never nil.
func NewEventPublisher(cfg *config.EventsConfig, redisClient *redis.Client, log logger.Interface) (events.EventPublisher, io.Closer, error) {
	switch strings.ToLower(cfg.Driver) {
	case "", "none":
		return events.NopPublisher{}, nopCloser{}, nil

	case "redis":
		if redisClient == nil {
			return nil, nil, fmt.Errorf("events driver redis requires redis to be enabled")
		}
		channel := cfg.RedisChannel
		if channel == "" {
			channel = defaultRedisChannel
		}
		async := NewAsyncPublisher(NewRedisAccountingEventBus(redisClient, channel, log), nil, log)
		return async, async, nil

	case "amqp":
		exchange := cfg.Exchange
		if exchange == "" {
			exchange = "memberhub.accounting"
		}
		pub, err := NewAMQPPublisher(cfg.AMQPURL, exchange, log)
		if err != nil {
			return nil, nil, err
		}
		async := NewAsyncPublisher(pub, pub, log)
		return async, async, nil

	default:
		return nil, nil, fmt.Errorf("unsupported events driver: %s", cfg.Driver)
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
