package dataset

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"

	"hotel_map/internal/adapters/observability"
	"hotel_map/internal/domain"
)

// Cache holds every dataset loaded during the process lifetime, keyed by the
// resolved locator. Entries are never invalidated; failed loads are not stored.
type Cache struct {
	resolve func(locator string) (Source, error)

	mu     sync.RWMutex
	loaded map[string]domain.Dataset
	group  singleflight.Group
}

func NewCache(resolve func(locator string) (Source, error)) *Cache {
	return &Cache{resolve: resolve, loaded: make(map[string]domain.Dataset)}
}

// Get returns the dataset for locator, loading it on first access.
// Concurrent first accesses share a single load.
func (c *Cache) Get(ctx context.Context, locator string) (domain.Dataset, error) {
	src, err := c.resolve(locator)
	if err != nil {
		return domain.Dataset{}, err
	}
	key := src.Key()

	if ds, ok := c.lookup(key); ok {
		observability.ObserveCache("dataset", "hit")
		return ds, nil
	}

	v, err, _ := c.group.Do(key, func() (any, error) {
		if ds, ok := c.lookup(key); ok {
			return ds, nil
		}
		observability.ObserveCache("dataset", "miss")

		start := time.Now()
		ds, err := src.Load(ctx)
		observability.ObserveDatasetLoad(src.Kind(), resultLabel(err), ds.Len(), time.Since(start))
		if err != nil {
			return domain.Dataset{}, err
		}

		c.mu.Lock()
		c.loaded[key] = ds
		c.mu.Unlock()
		observability.ObserveCache("dataset", "set")
		log.Info().Str("source", key).Int("rows", ds.Len()).Dur("took", time.Since(start)).Msg("dataset loaded")
		return ds, nil
	})
	if err != nil {
		return domain.Dataset{}, err
	}
	return v.(domain.Dataset), nil
}

func (c *Cache) lookup(key string) (domain.Dataset, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	ds, ok := c.loaded[key]
	return ds, ok
}

func resultLabel(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrParse):
		return "parse"
	case errors.Is(err, domain.ErrUnreadable):
		return "io"
	default:
		return "error"
	}
}
