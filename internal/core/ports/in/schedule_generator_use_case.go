package in

import (
	"context"

	"github.com/yusched/schedule-generator/internal/core/domain"
)

type ScheduleGeneratorUseCase interface {
	// Список доступных термов, свежие первыми
	ListTerms(ctx context.Context) ([]string, error)

	// Коды курсов терма, сгруппированные по префиксу
	ListCourses(ctx context.Context, term string) (map[string][]string, error)

	// Идентификаторы пригодных секций терма по курсам
	ListSections(ctx context.Context, term string) (map[string][]string, error)

	// Генерация всех бесконфликтных расписаний для выбранных курсов
	GenerateSchedules(ctx context.Context, term string, selections []domain.CourseSelection, blocked []domain.BlockedSlot) (*domain.GenerateResult, error)

	// Сброс кэшированного каталога при обновлении данных терма
	InvalidateTerm(ctx context.Context, term string) error
}
