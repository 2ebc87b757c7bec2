package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// Config represents configuration for the Redis connection
type Config struct {
	Host     string
	Port     int
	Password string
	DB       int
	Timeout  time.Duration
}

// NewConfig creates a Redis configuration with defaults
func NewConfig(host string, port int, password string, db int) *Config {
	return &Config{
		Host:     host,
		Port:     port,
		Password: password,
		DB:       db,
		Timeout:  5 * time.Second,
	}
}

// Cache handles interactions with the Redis server
type Cache struct {
	client *redis.Client
}

// Connect creates a new Redis client and verifies the connection
func Connect(config *Config) (*Cache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", config.Host, config.Port),
		Password: config.Password,
		DB:       config.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), config.Timeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return &Cache{client: client}, nil
}

// Close closes the Redis client
func (c *Cache) Close() error {
	return c.client.Close()
}

// Get returns the string value stored under key. It returns redis.Nil
// (wrapped) when the key does not exist.
func (c *Cache) Get(ctx context.Context, key string) (string, error) {
	val, err := c.client.Get(ctx, key).Result()
	if err != nil {
		return "", fmt.Errorf("failed to get key %s: %w", key, err)
	}
	return val, nil
}

// Set stores a string value under key with an optional TTL (0 means no expiry)
func (c *Cache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if err := c.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set key %s: %w", key, err)
	}
	return nil
}

// Exists reports whether the key is present
func (c *Cache) Exists(ctx context.Context, key string) (bool, error) {
	n, err := c.client.Exists(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check key %s: %w", key, err)
	}
	return n > 0, nil
}

// IsNotFound reports whether err means the key was absent
func IsNotFound(err error) bool {
	return errors.Is(err, redis.Nil)
}
