package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jellydator/ttlcache/v3"
)

// memoryCache keeps JSON encoded values in process. It backs local runs
// without Redis; values do not survive a restart.
type memoryCache struct {
	items *ttlcache.Cache[string, []byte]
}

// NewMemoryCache starts the expiry loop; Close stops it.
func NewMemoryCache(defaultTTL time.Duration) Cache {
	items := ttlcache.New[string, []byte](ttlcache.WithTTL[string, []byte](defaultTTL))

	go items.Start()

	return &memoryCache{items: items}
}

// Get extends a hit by the TTL the entry was stored with when ttl is positive.
func (m *memoryCache) Get(_ context.Context, key string, value any, ttl time.Duration) (bool, error) {
	var item *ttlcache.Item[string, []byte]
	if ttl > 0 {
		item = m.items.Get(key)
	} else {
		item = m.items.Get(key, ttlcache.WithDisableTouchOnHit[string, []byte]())
	}

	if item == nil {
		return false, nil
	}

	if err := json.Unmarshal(item.Value(), value); err != nil {
		return false, fmt.Errorf("failed to unmarshal cache data for key %s: %w: %w", key, ErrCorrupt, err)
	}

	return true, nil
}

func (m *memoryCache) Set(_ context.Context, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value for key %s: %w", key, err)
	}

	if ttl <= 0 {
		ttl = ttlcache.DefaultTTL
	}

	m.items.Set(key, data, ttl)

	return nil
}

func (m *memoryCache) Delete(_ context.Context, key string) error {
	m.items.Delete(key)
	return nil
}

func (m *memoryCache) Close() error {
	m.items.Stop()
	return nil
}
