// pkg/auth/store_redis.go
package auth

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/redis/go-redis/v9"
)

const redisTokenKey = "hrbridge:tokenset"

// RedisStore shares the token set between gateway replicas. No TTL is set:
// an expired set still carries the refresh token needed for the next exchange.
type RedisStore struct {
	cli *redis.Client
	key string
}

func NewRedisStore(cli *redis.Client) *RedisStore {
	return &RedisStore{cli: cli, key: redisTokenKey}
}

func (s *RedisStore) Load(ctx context.Context) (*TokenSet, error) {
	b, err := s.cli.Get(ctx, s.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	var ts TokenSet
	if err := json.Unmarshal(b, &ts); err != nil {
		return nil, err
	}
	return &ts, nil
}

func (s *RedisStore) Save(ctx context.Context, ts *TokenSet) error {
	b, err := json.Marshal(ts)
	if err != nil {
		return err
	}
	return s.cli.Set(ctx, s.key, b, 0).Err()
}
