package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/NeuralTrust/SpamShield/pkg/infra/cache/channel"
	"github.com/NeuralTrust/SpamShield/pkg/infra/cache/event"
	"github.com/sirupsen/logrus"
)

const (
	minReconnectDelay = 500 * time.Millisecond
	maxReconnectDelay = 30 * time.Second
)

var ErrUnknownEvent = errors.New("unknown event type")

type redisEventListener struct {
	logger   *logrus.Logger
	cache    Client
	mu       sync.RWMutex
	handlers map[string][]eventHandler
}

func NewRedisEventListener(logger *logrus.Logger, cache Client) EventListener {
	return &redisEventListener{
		logger:   logger,
		cache:    cache,
		handlers: make(map[string][]eventHandler),
	}
}

// RegisterEventSubscriber routes events whose Type() matches T to subscriber.
func RegisterEventSubscriber[T event.Event](l EventListener, subscriber EventSubscriber[T]) {
	var zero T
	l.register(zero.Type(), func(ctx context.Context, raw json.RawMessage) error {
		var ev T
		if err := json.Unmarshal(raw, &ev); err != nil {
			return fmt.Errorf("decode %s: %w", zero.Type(), err)
		}
		return subscriber.OnEvent(ctx, ev)
	})
}

func (r *redisEventListener) register(eventType string, handler eventHandler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[eventType] = append(r.handlers[eventType], handler)
}

// Listen subscribes to channels until ctx is done, reconnecting with
// exponential backoff when the subscription drops.
func (r *redisEventListener) Listen(ctx context.Context, channels ...channel.Channel) {
	names := make([]string, 0, len(channels))
	for _, ch := range channels {
		names = append(names, string(ch))
	}

	delay := minReconnectDelay
	for {
		received := r.consume(ctx, names)
		if ctx.Err() != nil {
			r.logger.Info("redis pubsub listener shutting down")
			return
		}
		if received {
			delay = minReconnectDelay
		}

		r.logger.WithField("retry_in", delay.String()).Warn("redis pubsub disconnected, reconnecting")
		select {
		case <-ctx.Done():
			return
		case <-time.After(delay):
		}
		delay *= 2
		if delay > maxReconnectDelay {
			delay = maxReconnectDelay
		}
	}
}

// consume reports whether at least one message arrived before the subscription ended.
func (r *redisEventListener) consume(ctx context.Context, names []string) bool {
	pubSub := r.cache.RedisClient().Subscribe(ctx, names...)
	defer func() { _ = pubSub.Close() }()

	if _, err := pubSub.Receive(ctx); err != nil {
		r.logger.WithError(err).Error("redis pubsub subscribe failed")
		return false
	}
	r.logger.WithField("channels", names).Debug("redis pubsub connected")

	stop := context.AfterFunc(ctx, func() { _ = pubSub.Close() })
	defer stop()

	received := false
	for msg := range pubSub.Channel() {
		received = true
		if err := r.HandleMessage(ctx, msg.Payload); err != nil {
			r.logger.WithError(err).WithField("channel", msg.Channel).Error("failed to handle redis event")
		}
	}
	return received
}

// HandleMessage decodes one published envelope and runs every subscriber
// registered for its type. Subscriber errors are joined.
func (r *redisEventListener) HandleMessage(ctx context.Context, payload string) error {
	var envelope RedisMessage
	if err := json.Unmarshal([]byte(payload), &envelope); err != nil {
		return fmt.Errorf("decode redis message: %w", err)
	}

	r.mu.RLock()
	handlers := r.handlers[envelope.Type]
	r.mu.RUnlock()
	if len(handlers) == 0 {
		return fmt.Errorf("%w: %s", ErrUnknownEvent, envelope.Type)
	}

	var errs []error
	for _, handle := range handlers {
		if err := handle(ctx, envelope.Event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
