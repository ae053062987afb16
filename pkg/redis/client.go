package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrNotInitialized is returned by the helpers when Init has not
// succeeded. Callers that tolerate a missing redis treat it like any
// other redis error.
var ErrNotInitialized = errors.New("redis: client not initialized")

var client *redis.Client

// Init initializes the Redis client
func Init(url, password string) error {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return err
	}

	if password != "" {
		opts.Password = password
	}

	client = redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return err
	}

	return nil
}

// SetClient sets the Redis client (used for testing)
func SetClient(c *redis.Client) {
	client = c
}

// GetClient returns the Redis client
func GetClient() *redis.Client {
	return client
}

// Set stores a key-value pair with expiration
func Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	if client == nil {
		return ErrNotInitialized
	}
	return client.Set(ctx, key, value, expiration).Err()
}

// Get retrieves a value by key
func Get(ctx context.Context, key string) (string, error) {
	if client == nil {
		return "", ErrNotInitialized
	}
	return client.Get(ctx, key).Result()
}

// Del removes a key
func Del(ctx context.Context, key string) error {
	if client == nil {
		return ErrNotInitialized
	}
	return client.Del(ctx, key).Err()
}

// Publish sends a message on a channel
func Publish(ctx context.Context, channel string, payload interface{}) error {
	if client == nil {
		return ErrNotInitialized
	}
	return client.Publish(ctx, channel, payload).Err()
}

// Subscribe subscribes to a channel. Returns nil when the client is
// not initialized.
func Subscribe(ctx context.Context, channel string) *redis.PubSub {
	if client == nil {
		return nil
	}
	return client.Subscribe(ctx, channel)
}
