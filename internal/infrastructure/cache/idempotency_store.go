package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	idempotencyKeyPrefix = "syncworks:idempotency:"
	idempotencyPending   = "pending"
)

// RecordedResponse is the reply stored for an idempotency key
type RecordedResponse struct {
	Status      int    `json:"status"`
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
}

// RedisIdempotencyStore shares idempotency keys between API instances.
// A key is first claimed with a pending marker and later replaced by the
// recorded response.
type RedisIdempotencyStore struct {
	client redis.UniversalClient
}

// NewRedisIdempotencyStore wraps an existing client. The caller keeps
// ownership of the client.
func NewRedisIdempotencyStore(client redis.UniversalClient) *RedisIdempotencyStore {
	return &RedisIdempotencyStore{client: client}
}

// Begin claims key. It returns acquired=true when the caller should run the
// request, the recorded response when one exists, and neither while another
// request holds the key.
func (s *RedisIdempotencyStore) Begin(ctx context.Context, key string, ttl time.Duration) (*RecordedResponse, bool, error) {
	redisKey := idempotencyKeyPrefix + key

	ok, err := s.client.SetNX(ctx, redisKey, idempotencyPending, ttl).Result()
	if err != nil {
		return nil, false, fmt.Errorf("failed to claim idempotency key: %w", err)
	}
	if ok {
		return nil, true, nil
	}

	data, err := s.client.Get(ctx, redisKey).Bytes()
	if errors.Is(err, redis.Nil) {
		// expired between SETNX and GET
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read idempotency key: %w", err)
	}
	if string(data) == idempotencyPending {
		return nil, false, nil
	}

	var resp RecordedResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, false, fmt.Errorf("failed to decode recorded response: %w", err)
	}
	return &resp, false, nil
}

// Complete stores the response for a claimed key
func (s *RedisIdempotencyStore) Complete(ctx context.Context, key string, resp RecordedResponse, ttl time.Duration) error {
	data, err := json.Marshal(resp)
	if err != nil {
		return fmt.Errorf("failed to encode recorded response: %w", err)
	}
	if err := s.client.Set(ctx, idempotencyKeyPrefix+key, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store recorded response: %w", err)
	}
	return nil
}

// Release drops a claim so the client may retry
func (s *RedisIdempotencyStore) Release(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, idempotencyKeyPrefix+key).Err(); err != nil {
		return fmt.Errorf("failed to release idempotency key: %w", err)
	}
	return nil
}
