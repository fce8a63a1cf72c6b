package cache

import (
	"context"
	"encoding/json"

	"github.com/NeuralTrust/SpamShield/pkg/infra/cache/channel"
)

// eventHandler decodes a raw event payload and hands it to one subscriber.
type eventHandler func(ctx context.Context, raw json.RawMessage) error

type EventListener interface {
	Listen(ctx context.Context, channels ...channel.Channel)
	HandleMessage(ctx context.Context, payload string) error
	register(eventType string, handler eventHandler)
}
