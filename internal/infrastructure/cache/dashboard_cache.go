package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	dashboardKeyPrefix   = "syncworks:dashboard:"
	defaultScanBatchSize = 100
)

// RedisDashboardCache stores JSON encoded dashboard payloads per company
type RedisDashboardCache struct {
	client redis.UniversalClient
	logger *zap.Logger
}

// NewRedisDashboardCache wraps an existing client. The caller keeps
// ownership of the client.
func NewRedisDashboardCache(client redis.UniversalClient, logger *zap.Logger) *RedisDashboardCache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisDashboardCache{client: client, logger: logger.Named("dashboard_cache")}
}

func dashboardKey(companyID uuid.UUID, key string) string {
	return dashboardKeyPrefix + companyID.String() + ":" + key
}

// Get decodes the cached value into dest. A miss returns false, nil.
func (c *RedisDashboardCache) Get(ctx context.Context, companyID uuid.UUID, key string, dest any) (bool, error) {
	cacheKey := dashboardKey(companyID, key)

	data, err := c.client.Get(ctx, cacheKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read dashboard cache: %w", err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		c.logger.Warn("Dropping corrupt dashboard cache entry",
			zap.String("key", cacheKey),
			zap.Error(err))
		_ = c.client.Del(ctx, cacheKey)
		return false, nil
	}
	return true, nil
}

func (c *RedisDashboardCache) Set(ctx context.Context, companyID uuid.UUID, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode dashboard cache entry: %w", err)
	}
	if err := c.client.Set(ctx, dashboardKey(companyID, key), data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to write dashboard cache: %w", err)
	}
	return nil
}

// InvalidateCompany drops every cached dashboard of a company. SCAN keeps
// Redis responsive on large keyspaces.
func (c *RedisDashboardCache) InvalidateCompany(ctx context.Context, companyID uuid.UUID) error {
	pattern := dashboardKeyPrefix + companyID.String() + ":*"
	var (
		cursor  uint64
		deleted int64
	)
	for {
		keys, next, err := c.client.Scan(ctx, cursor, pattern, defaultScanBatchSize).Result()
		if err != nil {
			return fmt.Errorf("failed to scan dashboard cache: %w", err)
		}
		if len(keys) > 0 {
			n, err := c.client.Del(ctx, keys...).Result()
			if err != nil {
				return fmt.Errorf("failed to invalidate dashboard cache: %w", err)
			}
			deleted += n
		}
		cursor = next
		if cursor == 0 {
			break
		}
	}

	c.logger.Debug("Invalidated dashboard cache",
		zap.String("company_id", companyID.String()),
		zap.Int64("deleted", deleted))
	return nil
}
