package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrSessionNotFound is returned when a token has no session entry, either
// because it never existed or because its TTL expired.
var ErrSessionNotFound = errors.New("session not found")

// Cache wraps the Redis client used for session tokens. Keys have the form
// auth_<token> and hold the owning user's id.
type Cache struct {
	client *redis.Client
}

func Connect(ctx context.Context, addr string) (*Cache, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	return &Cache{client: client}, nil
}

func (c *Cache) Close() error {
	return c.client.Close()
}

func (c *Cache) IsAlive(ctx context.Context) bool {
	return c.client.Ping(ctx).Err() == nil
}

func (c *Cache) SaveSession(ctx context.Context, token, userID string, ttl time.Duration) error {
	if err := c.client.Set(ctx, sessionKey(token), userID, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}
	return nil
}

func (c *Cache) UserIDByToken(ctx context.Context, token string) (string, error) {
	userID, err := c.client.Get(ctx, sessionKey(token)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrSessionNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to read session: %w", err)
	}
	return userID, nil
}

func (c *Cache) DeleteSession(ctx context.Context, token string) error {
	if err := c.client.Del(ctx, sessionKey(token)).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

func sessionKey(token string) string {
	return "auth_" + token
}
