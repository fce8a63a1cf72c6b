package subscriber

import (
	"context"

	infraCache "github.com/NeuralTrust/SpamShield/pkg/infra/cache"
	"github.com/NeuralTrust/SpamShield/pkg/infra/cache/event"
	"github.com/sirupsen/logrus"
)

type SettingsChangedEventSubscriber struct {
	logger      *logrus.Logger
	memoryCache *infraCache.TTLMap
}

func NewSettingsChangedEventSubscriber(
	logger *logrus.Logger,
	memoryCache *infraCache.TTLMap,
) infraCache.EventSubscriber[event.SettingsChangedEvent] {
	return &SettingsChangedEventSubscriber{
		logger:      logger,
		memoryCache: memoryCache,
	}
}

func (s SettingsChangedEventSubscriber) OnEvent(_ context.Context, evt event.SettingsChangedEvent) error {
	s.logger.WithField("name", evt.Name).Debug("invalidating settings memory cache")
	if s.memoryCache == nil {
		return nil
	}
	if evt.Name == "" {
		s.memoryCache.Clear()
		return nil
	}
	s.memoryCache.Delete(evt.Name)
	return nil
}
