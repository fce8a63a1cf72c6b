package cache

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync/atomic"
	"time"

	"github.com/NeuralTrust/SpamShield/pkg/domain/settings"
	"github.com/NeuralTrust/SpamShield/pkg/infra/cache/event"
	"github.com/sirupsen/logrus"
)

// Cached values carry a presence prefix so a missing setting is cached too.
const (
	presentPrefix = "1:"
	missingMarker = "0:"
)

// ReadFillTTL caps how long a value copied into redis by a read may live.
// A read racing a write on another instance can only leave a stale copy for
// this long.
const ReadFillTTL = 30 * time.Second

type settingsStore struct {
	logger      *logrus.Logger
	next        settings.Store
	cache       Client
	memoryCache *TTLMap
	publisher   EventPublisher
	ttl         time.Duration
	// generation is bumped by every write; a read only fills the caches if
	// no write started or finished while it was reading next.
	generation atomic.Uint64
}

// NewSettingsStore reads through a process-local TTL map and redis before
// hitting next. Writes drop the cached copies before and after writing to
// next; when a publisher is given, other instances are told to drop their
// local copy.
func NewSettingsStore(
	logger *logrus.Logger,
	next settings.Store,
	c Client,
	publisher EventPublisher,
	ttl time.Duration,
) settings.Store {
	memoryCache := c.CreateTTLMap(SettingsTTLName, ttl)
	return &settingsStore{
		logger:      logger,
		next:        next,
		cache:       c,
		memoryCache: memoryCache,
		publisher:   publisher,
		ttl:         ttl,
	}
}

func (s *settingsStore) Get(ctx context.Context, name string) (string, error) {
	if cached, ok := s.memoryCache.Get(name); ok {
		if raw, ok := cached.(string); ok {
			return decode(raw)
		}
	}

	raw, err := s.cache.Get(ctx, settingKey(name))
	switch {
	case err == nil:
		s.memoryCache.Set(name, raw)
		return decode(raw)
	case !errors.Is(err, ErrCacheMiss):
		s.logger.WithError(err).Warn("distributed cache read setting failure")
	}

	gen := s.generation.Load()
	value, err := s.next.Get(ctx, name)
	if err != nil && !errors.Is(err, settings.ErrSettingNotFound) {
		return "", err
	}
	if s.generation.Load() != gen {
		return value, err
	}
	raw = encode(value, err == nil)
	s.memoryCache.Set(name, raw)
	if cacheErr := s.cache.Set(ctx, settingKey(name), raw, s.fillTTL()); cacheErr != nil {
		s.logger.WithError(cacheErr).Warn("failed to save setting to distributed cache")
	}
	return value, err
}

func (s *settingsStore) Set(ctx context.Context, name, value string) error {
	return s.write(ctx, []string{name}, func() error {
		return s.next.Set(ctx, name, value)
	})
}

func (s *settingsStore) SetMany(ctx context.Context, values map[string]string) error {
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)
	return s.write(ctx, names, func() error {
		return s.next.SetMany(ctx, values)
	})
}

func (s *settingsStore) Delete(ctx context.Context, name string) error {
	return s.write(ctx, []string{name}, func() error {
		return s.next.Delete(ctx, name)
	})
}

func (s *settingsStore) write(ctx context.Context, names []string, fn func() error) error {
	s.generation.Add(1)
	defer s.generation.Add(1)

	for _, name := range names {
		s.drop(ctx, name)
	}
	if err := fn(); err != nil {
		return err
	}
	var errs []error
	for _, name := range names {
		if err := s.invalidate(ctx, name); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// drop clears both layers ahead of a write; a failure here is retried by
// invalidate once the write is done.
func (s *settingsStore) drop(ctx context.Context, name string) {
	s.memoryCache.Delete(name)
	if err := s.cache.Delete(ctx, settingKey(name)); err != nil {
		s.logger.WithError(err).WithField("setting", name).Warn("failed to drop cached setting before write")
	}
}

func (s *settingsStore) invalidate(ctx context.Context, name string) error {
	s.memoryCache.Delete(name)
	if err := s.cache.Delete(ctx, settingKey(name)); err != nil {
		return fmt.Errorf("failed to invalidate cached setting %s: %w", name, err)
	}
	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, event.SettingsChangedEvent{Name: name}); err != nil {
			s.logger.WithError(err).Warn("failed to publish settings change")
		}
	}
	return nil
}

func (s *settingsStore) fillTTL() time.Duration {
	if s.ttl > 0 && s.ttl < ReadFillTTL {
		return s.ttl
	}
	return ReadFillTTL
}

func settingKey(name string) string {
	return fmt.Sprintf(SettingKeyPattern, name)
}

func encode(value string, present bool) string {
	if !present {
		return missingMarker
	}
	return presentPrefix + value
}

func decode(raw string) (string, error) {
	if value, ok := strings.CutPrefix(raw, presentPrefix); ok {
		return value, nil
	}
	return "", settings.ErrSettingNotFound
}
