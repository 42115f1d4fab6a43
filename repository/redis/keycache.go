package redis

import (
	"context"
	"encoding/json"
	"time"

	redislib "github.com/redis/go-redis/v9"

	"github.com/taskflow/backend/repository"
)

type keyCache struct {
	client *redislib.Client
	key    string
	ttl    time.Duration
}

// NewKeyCache creates a Redis-backed cache for the identity provider's
// signing certificates. The whole kid->PEM map is stored as one JSON value
// with a TTL so a stale set ages out on its own.
func NewKeyCache(client *redislib.Client, ttl time.Duration) repository.SigningKeyCache {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &keyCache{
		client: client,
		key:    "google:signing_keys",
		ttl:    ttl,
	}
}

func (c *keyCache) Get(ctx context.Context) (map[string]string, error) {
	result, err := c.client.Get(ctx, c.key).Result()
	if err != nil {
		if err == redislib.Nil {
			return nil, repository.ErrKeysNotCached
		}
		return nil, err
	}

	var keys map[string]string
	if err := json.Unmarshal([]byte(result), &keys); err != nil {
		return nil, err
	}
	return keys, nil
}

func (c *keyCache) Put(ctx context.Context, keys map[string]string) error {
	if len(keys) == 0 {
		return nil
	}
	payload, err := json.Marshal(keys)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key, payload, c.ttl).Err()
}
