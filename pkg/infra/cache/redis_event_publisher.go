package cache

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/NeuralTrust/SpamShield/pkg/infra/cache/channel"
	"github.com/NeuralTrust/SpamShield/pkg/infra/cache/event"
)

type redisEventPublisher struct {
	cache   Client
	channel channel.Channel
}

// NewRedisEventPublisher publishes events wrapped in a RedisMessage envelope on ch.
func NewRedisEventPublisher(cache Client, ch channel.Channel) EventPublisher {
	return &redisEventPublisher{
		cache:   cache,
		channel: ch,
	}
}

func (p *redisEventPublisher) Publish(ctx context.Context, ev event.Event) error {
	raw, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("encode %s: %w", ev.Type(), err)
	}
	data, err := json.Marshal(RedisMessage{Type: ev.Type(), Event: raw})
	if err != nil {
		return fmt.Errorf("encode envelope: %w", err)
	}
	if err := p.cache.RedisClient().Publish(ctx, string(p.channel), data).Err(); err != nil {
		return fmt.Errorf("publish %s on %s: %w", ev.Type(), p.channel, err)
	}
	return nil
}
