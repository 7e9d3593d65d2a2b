package schedule_generator_service

import (
	"context"
	"fmt"

	"github.com/yusched/schedule-generator/internal/config"
	"github.com/yusched/schedule-generator/internal/core/domain"
	"github.com/yusched/schedule-generator/internal/core/ports/out"
)

// ScheduleGeneratorService - чистый движок генерации расписаний поверх
// иммутабельных снимков каталога. Все состояние запроса локально,
// сервис безопасен для конкурентных вызовов.
type ScheduleGeneratorService struct {
	catalogPort out.CatalogPort
	cachePort   out.CachePort
	logger      out.LoggerPort
	cfg         *config.Config
}

func NewScheduleGeneratorService(
	catalogPort out.CatalogPort,
	cachePort out.CachePort,
	cfg *config.Config,
	logger out.LoggerPort,
) *ScheduleGeneratorService {
	return &ScheduleGeneratorService{
		catalogPort: catalogPort,
		cachePort:   cachePort,
		cfg:         cfg,
		logger:      logger.WithModule("ScheduleGeneratorService"),
	}
}

func (s *ScheduleGeneratorService) ListTerms(ctx context.Context) ([]string, error) {
	return s.catalogPort.ListTerms(ctx)
}

func (s *ScheduleGeneratorService) ListCourses(ctx context.Context, term string) (map[string][]string, error) {
	catalog, err := s.getCatalog(ctx, term)
	if err != nil {
		return nil, err
	}
	return catalog.CoursesByPrefix(), nil
}

func (s *ScheduleGeneratorService) ListSections(ctx context.Context, term string) (map[string][]string, error) {
	catalog, err := s.getCatalog(ctx, term)
	if err != nil {
		return nil, err
	}
	return catalog.EligibleSectionIDs(), nil
}

func (s *ScheduleGeneratorService) GenerateSchedules(ctx context.Context, term string, selections []domain.CourseSelection, blocked []domain.BlockedSlot) (*domain.GenerateResult, error) {
	s.logger.Info("schedules.generate.started", out.LogFields{
		"term":    term,
		"courses": len(selections),
		"blocked": len(blocked),
	})

	catalog, err := s.getCatalog(ctx, term)
	if err != nil {
		s.logger.Error("schedules.generate.catalog.fetch_failed", out.LogFields{
			"term":  term,
			"error": err.Error(),
		})
		return nil, fmt.Errorf("schedules.generate.catalog.fetch_failed: %w", err)
	}

	result := generate(catalog, selections, blocked)

	warnings := safeWarnings(func() []string {
		return buildWarnings(result, selections, blocked)
	}, func(err error) {
		s.logger.Error("schedules.generate.diagnostics.failed", out.LogFields{
			"term":  catalog.Term,
			"error": err.Error(),
		})
	})

	s.logger.Info("schedules.generate.finished", out.LogFields{
		"term":      catalog.Term,
		"schedules": len(result.schedules),
		"excluded":  len(result.exclusions),
		"conflicts": len(result.conflicts),
	})

	return &domain.GenerateResult{
		Term:       catalog.Term,
		Schedules:  result.schedules,
		Warnings:   warnings,
		Exclusions: result.exclusions,
	}, nil
}

func (s *ScheduleGeneratorService) InvalidateTerm(ctx context.Context, term string) error {
	if s.cachePort == nil || !s.cfg.Cache.Enabled {
		return nil
	}

	s.cachePort.InvalidateCatalog(ctx, term)
	s.logger.Info("catalog.cache.invalidated", out.LogFields{
		"term": term,
	})
	return nil
}

// getCatalog разрешает имя терма, отдает кэшированный снимок или строит
// новый из сырых данных. Конкурентные промахи по одному терму могут
// нормализовать дважды, последний Store побеждает.
func (s *ScheduleGeneratorService) getCatalog(ctx context.Context, term string) (*domain.Catalog, error) {
	resolved, err := s.catalogPort.ResolveTerm(ctx, term)
	if err != nil {
		return nil, err
	}

	// Проверяем кэш только если он включен
	if s.cachePort != nil && s.cfg.Cache.Enabled {
		if catalog, exists := s.cachePort.GetCatalog(ctx, resolved); exists {
			s.logger.Debug("catalog.cache.hit", out.LogFields{
				"term": resolved,
			})
			return catalog, nil
		}
	}

	s.logger.Debug("catalog.cache.miss", out.LogFields{
		"term": resolved,
	})

	raw, err := s.catalogPort.LoadTermData(ctx, resolved)
	if err != nil {
		return nil, err
	}

	catalog := BuildCatalog(resolved, raw)

	// Сохраняем в кэш только если он включен
	if s.cachePort != nil && s.cfg.Cache.Enabled {
		s.cachePort.StoreCatalog(ctx, resolved, catalog)
	}

	return catalog, nil
}
