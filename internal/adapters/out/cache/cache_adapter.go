package cache

import (
	"context"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/suchimauz/specialist-triage-booking/internal/config"
	"github.com/suchimauz/specialist-triage-booking/internal/core/domain"
	"github.com/suchimauz/specialist-triage-booking/internal/core/ports/out"
)

type slotsKey struct {
	doctor string
	date   string
}

// CacheAdapter keeps computed free-slot lists per doctor and date.
// Entries are derived from the mirror and dropped wholesale on every reload.
type CacheAdapter struct {
	slotsCache *lru.Cache[slotsKey, []domain.Slot]
	mu         sync.RWMutex
	logger     out.LoggerPort
}

func NewCacheAdapter(cfg *config.Config, logger out.LoggerPort) (*CacheAdapter, error) {
	slotsCache, err := lru.New[slotsKey, []domain.Slot](cfg.Cache.SlotsSize)
	if err != nil {
		logger.Error("cache.slots.init.failed", out.LogFields{
			"error": err.Error(),
			"size":  cfg.Cache.SlotsSize,
		})
		return nil, err
	}

	return &CacheAdapter{
		slotsCache: slotsCache,
		logger:     logger.WithModule("CacheAdapter"),
	}, nil
}

func (c *CacheAdapter) GetSlots(ctx context.Context, doctor, date string) ([]domain.Slot, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	slots, exists := c.slotsCache.Get(slotsKey{doctor: doctor, date: date})
	if !exists {
		c.logger.Debug("cache.slots.get.miss", out.LogFields{
			"doctor": doctor,
			"date":   date,
		})
		return nil, false
	}

	c.logger.Debug("cache.slots.get.hit", out.LogFields{
		"doctor":     doctor,
		"date":       date,
		"slotsCount": len(slots),
	})
	// Копия, чтобы вызывающий не испортил кэш
	return append([]domain.Slot(nil), slots...), true
}

func (c *CacheAdapter) StoreSlots(ctx context.Context, doctor, date string, slots []domain.Slot) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.logger.Debug("cache.slots.store", out.LogFields{
		"doctor":     doctor,
		"date":       date,
		"slotsCount": len(slots),
	})

	c.slotsCache.Add(slotsKey{doctor: doctor, date: date}, append([]domain.Slot(nil), slots...))
}

func (c *CacheAdapter) InvalidateAllSlotsCache(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.logger.Debug("cache.slots.purge", out.LogFields{
		"entries": c.slotsCache.Len(),
	})
	c.slotsCache.Purge()
}
