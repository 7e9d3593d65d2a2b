package out

import (
	"context"
	"errors"

	"github.com/yusched/schedule-generator/internal/core/domain"
)

// ErrCatalogNotFound - нет данных ни для запрошенного терма, ни для fallback
var ErrCatalogNotFound = errors.New("catalog not found")

type CatalogPort interface {
	// Список доступных термов, свежие первыми
	ListTerms(ctx context.Context) ([]string, error)

	// Разрешение имени терма: пустая строка или отсутствующий терм
	// заменяются самым свежим доступным
	ResolveTerm(ctx context.Context, term string) (string, error)

	// Сырые данные терма с диска
	LoadTermData(ctx context.Context, term string) (domain.RawTermData, error)
}
