package cart

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aaravmahajanofficial/swag-catalog/internal/api/middleware"
	"github.com/aaravmahajanofficial/swag-catalog/internal/cache"
	"github.com/aaravmahajanofficial/swag-catalog/internal/models"
)

// CacheStorage keeps one cart snapshot as a JSON array under a single key.
// Reads and writes both restart the key's TTL, so a cart expires once it has
// been left alone for ttl. An empty cart is stored as no key at all.
type CacheStorage struct {
	cache cache.Cache
	key   string
	ttl   time.Duration
}

func NewCacheStorage(c cache.Cache, sessionID string, ttl time.Duration) *CacheStorage {
	return &CacheStorage{
		cache: c,
		key:   cache.Key(cache.CartKeyPrefix, sessionID),
		ttl:   ttl,
	}
}

func (s *CacheStorage) Load(ctx context.Context) ([]models.CartItem, error) {
	logger := middleware.LoggerFromContext(ctx)

	var items []models.CartItem

	found, err := s.cache.Get(ctx, s.key, &items, s.ttl)
	if err != nil {
		if errors.Is(err, cache.ErrCorrupt) {
			logger.Warn("Discarding unreadable cart snapshot", slog.String("key", s.key), slog.String("error", err.Error()))
			return []models.CartItem{}, nil
		}

		return nil, fmt.Errorf("failed to read cart snapshot: %w", err)
	}

	if !found || items == nil {
		return []models.CartItem{}, nil
	}

	return items, nil
}

func (s *CacheStorage) Save(ctx context.Context, items []models.CartItem) error {
	if len(items) == 0 {
		if err := s.cache.Delete(ctx, s.key); err != nil {
			return fmt.Errorf("failed to drop cart snapshot: %w", err)
		}
		return nil
	}

	if err := s.cache.Set(ctx, s.key, items, s.ttl); err != nil {
		return fmt.Errorf("failed to write cart snapshot: %w", err)
	}

	return nil
}

// NewCacheStorageFactory binds a cache to the Registry's per-session storage.
func NewCacheStorageFactory(c cache.Cache, ttl time.Duration) StorageFactory {
	return func(sessionID string) Storage {
		return NewCacheStorage(c, sessionID, ttl)
	}
}
