package out

import (
	"context"

	"github.com/yusched/schedule-generator/internal/core/domain"
)

type CachePort interface {
	// Кэширование каталога по имени терма
	GetCatalog(ctx context.Context, term string) (*domain.Catalog, bool)
	StoreCatalog(ctx context.Context, term string, catalog *domain.Catalog)
	InvalidateCatalog(ctx context.Context, term string)
}
