package cache

import (
	"context"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/yusched/schedule-generator/internal/config"
	"github.com/yusched/schedule-generator/internal/core/domain"
	"github.com/yusched/schedule-generator/internal/core/ports/out"
)

// CatalogCacheAdapter - ограниченный LRU-кэш снимков каталога по терму.
// Снимки иммутабельны, поэтому раздаются без копирования.
type CatalogCacheAdapter struct {
	cache  *lru.Cache[string, *domain.Catalog]
	mu     sync.RWMutex
	logger out.LoggerPort
}

func NewCatalogCacheAdapter(cfg *config.Config, logger out.LoggerPort) (*CatalogCacheAdapter, error) {
	if !cfg.Cache.Enabled {
		logger.Info("cache.disabled", out.LogFields{
			"message": "Cache is disabled",
		})
		return nil, nil
	}

	cache, err := lru.New[string, *domain.Catalog](cfg.Cache.Size)
	if err != nil {
		logger.Error("cache.init.failed", out.LogFields{
			"error": err.Error(),
			"size":  cfg.Cache.Size,
		})
		return nil, err
	}

	return &CatalogCacheAdapter{
		cache:  cache,
		logger: logger.WithModule("CatalogCacheAdapter"),
	}, nil
}

func (c *CatalogCacheAdapter) GetCatalog(ctx context.Context, term string) (*domain.Catalog, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	catalog, exists := c.cache.Get(term)
	if !exists {
		c.logger.Debug("cache.catalog.get.miss", out.LogFields{
			"term": term,
		})
		return nil, false
	}

	c.logger.Debug("cache.catalog.get.hit", out.LogFields{
		"term":    term,
		"courses": len(catalog.Courses),
	})
	return catalog, true
}

func (c *CatalogCacheAdapter) StoreCatalog(ctx context.Context, term string, catalog *domain.Catalog) {
	if catalog == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.logger.Debug("cache.catalog.store", out.LogFields{
		"term":    term,
		"courses": len(catalog.Courses),
	})

	c.cache.Add(term, catalog)
}

func (c *CatalogCacheAdapter) InvalidateCatalog(ctx context.Context, term string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.logger.Debug("cache.catalog.invalidate", out.LogFields{
		"term": term,
	})

	c.cache.Remove(term)
}
