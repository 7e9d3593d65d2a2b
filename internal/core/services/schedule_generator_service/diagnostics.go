package schedule_generator_service

import (
	"fmt"
	"sort"
	"strings"

	"github.com/yusched/schedule-generator/internal/core/domain"
	"github.com/yusched/schedule-generator/internal/core/json_types"
)

// Сколько пересечений показываем пользователю, остальные сворачиваем в счетчик
const maxConflictWarnings = 3

// blockedHits перечисляет все пары (занятие, заблокированный интервал),
// которые пересекаются, по всем секциям курса
func blockedHits(sections []domain.Section, blocked []domain.BlockedSlot) []domain.BlockedHit {
	hits := make([]domain.BlockedHit, 0)
	for _, section := range sections {
		for _, session := range section.Sessions {
			for _, slot := range blocked {
				if !session.OverlapsSlot(slot) {
					continue
				}
				hits = append(hits, domain.BlockedHit{
					Section:   section.ID,
					Day:       slot.Day,
					Slot:      slot.Slot,
					Session:   session.Range(),
					Classroom: session.Classroom,
				})
			}
		}
	}
	return hits
}

// formatSlotsByDay сворачивает интервалы в строку вида
// "Monday: 09:00-10:00, 10:00-11:00; Tuesday: ...", дни в каноническом порядке
func formatSlotsByDay(slotsByDay map[domain.Weekday][]json_types.SlotRange) string {
	parts := make([]string, 0, len(slotsByDay))
	for _, day := range domain.WeekOrder {
		slots := slotsByDay[day]
		if len(slots) == 0 {
			continue
		}

		unique := make(map[string]struct{}, len(slots))
		labels := make([]string, 0, len(slots))
		for _, slot := range slots {
			label := slot.String()
			if _, dup := unique[label]; dup {
				continue
			}
			unique[label] = struct{}{}
			labels = append(labels, label)
		}
		sort.Strings(labels)

		parts = append(parts, fmt.Sprintf("%s: %s", day, strings.Join(labels, ", ")))
	}
	return strings.Join(parts, "; ")
}

func renderExclusionWarning(exclusion domain.CourseExclusion, eligible []domain.Section, blocked []domain.BlockedSlot) string {
	if exclusion.Cause == domain.ExclusionNoSections {
		return fmt.Sprintf("%s: No section data is available for this term. Please check if the course is offered or try another term.", exclusion.Course)
	}

	hits := blockedHits(eligible, blocked)
	if len(hits) == 0 {
		return fmt.Sprintf("%s: All sections conflict with your blocked hours. Try unblocking some hours or choose a different course.", exclusion.Course)
	}

	slotsByDay := make(map[domain.Weekday][]json_types.SlotRange)
	for _, hit := range hits {
		slotsByDay[hit.Day] = append(slotsByDay[hit.Day], hit.Slot)
	}

	return fmt.Sprintf("%s: All sections conflict with your blocked hours on: %s. Please unblock these hours to include this course.",
		exclusion.Course, formatSlotsByDay(slotsByDay))
}

func renderConflictWarnings(conflicts []domain.ConflictPair) []string {
	warnings := make([]string, 0, maxConflictWarnings+2)

	shown := conflicts
	if len(shown) > maxConflictWarnings {
		shown = shown[:maxConflictWarnings]
	}
	for _, pair := range shown {
		warnings = append(warnings, fmt.Sprintf("Conflict on %s: %s (Section %s, %s) overlaps with %s (Section %s, %s)",
			pair.Day, pair.CourseA, pair.SectionA, pair.TimeA, pair.CourseB, pair.SectionB, pair.TimeB))
	}
	if suppressed := len(conflicts) - maxConflictWarnings; suppressed > 0 {
		warnings = append(warnings, fmt.Sprintf("... and %d more conflicts", suppressed))
	}

	warnings = append(warnings, "No valid schedule could be generated due to course time conflicts. Try selecting different course sections or fewer courses.")
	return warnings
}

// buildWarnings превращает результат перебора в сообщения для пользователя.
// Вызывается только когда расписаний нет; при успешной генерации молчит.
func buildWarnings(result searchResult, selections []domain.CourseSelection, blocked []domain.BlockedSlot) []string {
	if len(result.schedules) > 0 || len(selections) == 0 {
		return nil
	}

	warnings := make([]string, 0)

	for _, exclusion := range result.exclusions {
		warnings = append(warnings, renderExclusionWarning(exclusion, result.eligible[exclusion.Course], blocked))
	}

	// Все выбранные курсы выбыли - одно сводное сообщение
	if len(result.exclusions) == len(selections) {
		if len(blocked) > 0 {
			slotsByDay := make(map[domain.Weekday][]json_types.SlotRange)
			for _, slot := range blocked {
				slotsByDay[slot.Day] = append(slotsByDay[slot.Day], slot.Slot)
			}
			warnings = append(warnings, fmt.Sprintf("All selected courses were excluded due to conflicts with your blocked hours. Currently blocked: %s. Try unblocking these hours or selecting different courses.",
				formatSlotsByDay(slotsByDay)))
		} else {
			warnings = append(warnings, "All selected courses were excluded. Please review your course selection or try a different term.")
		}
		return warnings
	}

	if len(result.exclusions) > 0 {
		return warnings
	}

	switch {
	case len(result.conflicts) > 0:
		warnings = append(warnings, renderConflictWarnings(result.conflicts)...)
	case len(blocked) > 0:
		warnings = append(warnings, "No valid schedule could be generated due to conflicts with your blocked hours. Try unblocking some hours or selecting different courses.")
	default:
		warnings = append(warnings, "No valid schedule could be generated. Try selecting different course combinations.")
	}

	return warnings
}

// safeWarnings: диагностика не должна ронять запрос, при сбое деградируем
// до общего сообщения
func safeWarnings(build func() []string, onFailure func(error)) (warnings []string) {
	defer func() {
		if r := recover(); r != nil {
			if onFailure != nil {
				onFailure(fmt.Errorf("diagnostics failed: %v", r))
			}
			warnings = []string{"No valid schedule could be generated. Try selecting different course combinations."}
		}
	}()

	return build()
}
