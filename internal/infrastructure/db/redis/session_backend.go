package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/matchme/matchme-web/internal/core/ports"
)

const keyPrefix = "session:"

// SessionBackend stores client-context values in Redis.
// Key format: session:<client_id>:<key>
type SessionBackend struct {
	client *redis.Client
	ttl    time.Duration
}

var _ ports.SessionBackend = (*SessionBackend)(nil)

// NewSessionBackend wraps client. A zero ttl keeps values until overwritten.
func NewSessionBackend(client *redis.Client, ttl time.Duration) *SessionBackend {
	return &SessionBackend{client: client, ttl: ttl}
}

func (b *SessionBackend) Load(ctx context.Context, key string) (string, bool, error) {
	v, err := b.client.Get(ctx, keyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis load: %w", err)
	}
	return v, true, nil
}

func (b *SessionBackend) Save(ctx context.Context, key, value string) error {
	if err := b.client.Set(ctx, keyPrefix+key, value, b.ttl).Err(); err != nil {
		return fmt.Errorf("redis save: %w", err)
	}
	return nil
}

func (b *SessionBackend) Ping(ctx context.Context) error {
	return b.client.Ping(ctx).Err()
}
