package cache

import (
	"context"
	"fmt"
	"testing"

	"github.com/yusched/schedule-generator/internal/config"
	"github.com/yusched/schedule-generator/internal/core/domain"
	"github.com/yusched/schedule-generator/internal/core/ports/out"
)

type nopLogger struct{}

func (nopLogger) Debug(string, out.LogFields)               {}
func (nopLogger) Info(string, out.LogFields)                {}
func (nopLogger) Warn(string, out.LogFields)                {}
func (nopLogger) Error(string, out.LogFields)               {}
func (l nopLogger) WithFields(out.LogFields) out.LoggerPort { return l }
func (l nopLogger) WithModule(string) out.LoggerPort        { return l }

func newAdapter(t *testing.T, size int) *CatalogCacheAdapter {
	t.Helper()
	cfg := &config.Config{}
	cfg.Cache.Enabled = true
	cfg.Cache.Size = size

	adapter, err := NewCatalogCacheAdapter(cfg, nopLogger{})
	if err != nil {
		t.Fatalf("NewCatalogCacheAdapter: %v", err)
	}
	return adapter
}

func TestCacheStoreGetInvalidate(t *testing.T) {
	adapter := newAdapter(t, 8)
	ctx := context.Background()
	catalog := &domain.Catalog{Term: "2024-2025 Spring"}

	if _, exists := adapter.GetCatalog(ctx, "2024-2025 Spring"); exists {
		t.Fatal("empty cache must miss")
	}

	adapter.StoreCatalog(ctx, "2024-2025 Spring", catalog)
	got, exists := adapter.GetCatalog(ctx, "2024-2025 Spring")
	if !exists || got != catalog {
		t.Fatalf("expected stored catalog back, got %v (exists=%v)", got, exists)
	}

	adapter.InvalidateCatalog(ctx, "2024-2025 Spring")
	if _, exists := adapter.GetCatalog(ctx, "2024-2025 Spring"); exists {
		t.Fatal("invalidated term must miss")
	}
}

func TestCacheIgnoresNilCatalog(t *testing.T) {
	adapter := newAdapter(t, 8)
	ctx := context.Background()

	adapter.StoreCatalog(ctx, "2024-2025 Spring", nil)
	if _, exists := adapter.GetCatalog(ctx, "2024-2025 Spring"); exists {
		t.Fatal("nil catalog must not be cached")
	}
}

func TestCacheEvictsOldestBeyondSize(t *testing.T) {
	adapter := newAdapter(t, 2)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		term := fmt.Sprintf("term-%d", i)
		adapter.StoreCatalog(ctx, term, &domain.Catalog{Term: term})
	}

	if _, exists := adapter.GetCatalog(ctx, "term-0"); exists {
		t.Fatal("oldest entry must be evicted")
	}
	for _, term := range []string{"term-1", "term-2"} {
		if _, exists := adapter.GetCatalog(ctx, term); !exists {
			t.Fatalf("%s must survive eviction", term)
		}
	}
}

func TestCacheDisabledReturnsNil(t *testing.T) {
	cfg := &config.Config{}
	cfg.Cache.Enabled = false

	adapter, err := NewCatalogCacheAdapter(cfg, nopLogger{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if adapter != nil {
		t.Fatal("disabled cache must yield nil adapter")
	}
}
