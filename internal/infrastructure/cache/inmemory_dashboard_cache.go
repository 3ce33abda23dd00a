package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

// InMemoryDashboardCache is the single-instance fallback used when Redis is
// disabled. Values are stored JSON encoded so callers get copies.
type InMemoryDashboardCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	now     func() time.Time
}

func NewInMemoryDashboardCache() *InMemoryDashboardCache {
	return &InMemoryDashboardCache{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

func (c *InMemoryDashboardCache) Get(_ context.Context, companyID uuid.UUID, key string, dest any) (bool, error) {
	c.mu.RLock()
	entry, ok := c.entries[dashboardKey(companyID, key)]
	c.mu.RUnlock()
	if !ok || c.now().After(entry.expiresAt) {
		return false, nil
	}
	if err := json.Unmarshal(entry.data, dest); err != nil {
		return false, fmt.Errorf("failed to decode dashboard cache entry: %w", err)
	}
	return true, nil
}

func (c *InMemoryDashboardCache) Set(_ context.Context, companyID uuid.UUID, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode dashboard cache entry: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.evictExpiredLocked()
	c.entries[dashboardKey(companyID, key)] = memoryEntry{data: data, expiresAt: c.now().Add(ttl)}
	return nil
}

func (c *InMemoryDashboardCache) InvalidateCompany(_ context.Context, companyID uuid.UUID) error {
	prefix := dashboardKeyPrefix + companyID.String() + ":"

	c.mu.Lock()
	defer c.mu.Unlock()
	for k := range c.entries {
		if strings.HasPrefix(k, prefix) {
			delete(c.entries, k)
		}
	}
	return nil
}

// Len returns the number of live entries
func (c *InMemoryDashboardCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	now := c.now()
	n := 0
	for _, e := range c.entries {
		if !now.After(e.expiresAt) {
			n++
		}
	}
	return n
}

func (c *InMemoryDashboardCache) evictExpiredLocked() {
	now := c.now()
	for k, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, k)
		}
	}
}
