package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// DefaultRedisKey names the key holding the document when none is configured.
const DefaultRedisKey = "users"

// RedisMedium keeps the document under a single Redis string key.
type RedisMedium struct {
	client redis.Cmdable
	key    string
}

func NewRedisMedium(client redis.Cmdable, key string) *RedisMedium {
	if key == "" {
		key = DefaultRedisKey
	}
	return &RedisMedium{client: client, key: key}
}

func (m *RedisMedium) String() string { return "redis key " + m.key }

func (m *RedisMedium) Read(ctx context.Context) ([]byte, error) {
	data, err := m.client.Get(ctx, m.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotExist
	}
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", m.key, err)
	}
	return data, nil
}

func (m *RedisMedium) Write(ctx context.Context, data []byte) error {
	if err := m.client.Set(ctx, m.key, data, 0).Err(); err != nil {
		return fmt.Errorf("set %s: %w", m.key, err)
	}
	return nil
}

var _ Medium = (*RedisMedium)(nil)
