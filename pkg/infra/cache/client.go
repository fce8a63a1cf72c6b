package cache

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

const (
	SettingKeyPattern = "settings:%s"

	SettingsTTLName = "settings"

	defaultOperationTimeout = 2 * time.Second
	pingTimeout             = 5 * time.Second
)

// ErrCacheMiss is returned by Get when the key does not exist.
var ErrCacheMiss = errors.New("cache miss")

//go:generate mockery --name=Client --dir=. --output=./mocks --filename=client_mock.go --case=underscore --with-expecter
type Client interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, expiration time.Duration) error
	Delete(ctx context.Context, key string) error
	RedisClient() *redis.Client
	CreateTTLMap(name string, ttl time.Duration) *TTLMap
	GetTTLMap(name string) *TTLMap
}

type Config struct {
	Host     string
	Port     int
	Password string
	DB       int
	TLS      bool
}

func (c Config) options() *redis.Options {
	options := &redis.Options{
		Addr:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Password: c.Password,
		DB:       c.DB,
	}
	if c.TLS {
		options.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	return options
}

type client struct {
	redisClient *redis.Client
	opTimeout   time.Duration

	mu      sync.Mutex
	ttlMaps map[string]*TTLMap
}

// NewClient connects to redis and fails when the server does not answer a ping.
func NewClient(config Config, logger *logrus.Logger) (Client, error) {
	redisClient := redis.NewClient(config.options())
	fields := logrus.Fields{"host": config.Host, "port": config.Port, "tls": config.TLS}

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.WithFields(fields).WithError(err).Error("failed to connect to redis")
		_ = redisClient.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	logger.WithFields(fields).Info("redis connected successfully")

	return NewClientFromRedis(redisClient), nil
}

// NewClientFromRedis wraps an already configured redis client without pinging it.
func NewClientFromRedis(redisClient *redis.Client) Client {
	return &client{
		redisClient: redisClient,
		opTimeout:   defaultOperationTimeout,
		ttlMaps:     make(map[string]*TTLMap),
	}
}

func (c *client) Get(ctx context.Context, key string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.opTimeout)
	defer cancel()
	value, err := c.redisClient.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrCacheMiss
	}
	return value, err
}

func (c *client) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, c.opTimeout)
	defer cancel()
	return c.redisClient.Set(ctx, key, value, expiration).Err()
}

func (c *client) Delete(ctx context.Context, key string) error {
	ctx, cancel := context.WithTimeout(ctx, c.opTimeout)
	defer cancel()
	return c.redisClient.Del(ctx, key).Err()
}

func (c *client) RedisClient() *redis.Client {
	return c.redisClient
}

// CreateTTLMap returns the map registered under name, creating it on first use.
func (c *client) CreateTTLMap(name string, ttl time.Duration) *TTLMap {
	c.mu.Lock()
	defer c.mu.Unlock()
	if existing, ok := c.ttlMaps[name]; ok {
		return existing
	}
	m := NewTTLMap(ttl)
	c.ttlMaps[name] = m
	return m
}

func (c *client) GetTTLMap(name string) *TTLMap {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ttlMaps[name]
}
