package schedule_generator_service

import (
	"sort"

	"github.com/yusched/schedule-generator/internal/core/domain"
)

// candidateSet - выжившие после фильтрации секции одного выбранного курса
type candidateSet struct {
	course   string
	sections []domain.Section
}

// searchResult - внутренний результат перебора, до рендеринга предупреждений
type searchResult struct {
	schedules  []domain.Schedule
	exclusions []domain.CourseExclusion
	// Секции до фильтрации по заблокированным часам, для диагностики
	eligible map[string][]domain.Section
	// Дедуплицированные пересечения занятий разных курсов в порядке обнаружения
	conflicts []domain.ConflictPair
}

// resolveCandidates возвращает секции-кандидаты выбора: при закрепленной
// секции - ровно одну подходящую, иначе все пригодные секции курса.
// Неизвестный курс и несуществующая секция дают пустой список.
func resolveCandidates(catalog *domain.Catalog, selection domain.CourseSelection) []domain.Section {
	sections, ok := catalog.Sections(selection.Course)
	if !ok {
		return nil
	}

	if selection.Section == "" {
		return sections
	}

	for _, section := range sections {
		if section.ID == selection.Section {
			return []domain.Section{section}
		}
	}
	return nil
}

// sectionBlocked: секция выбывает целиком, если хотя бы одно ее занятие
// пересекается с хотя бы одним заблокированным интервалом
func sectionBlocked(section domain.Section, blocked []domain.BlockedSlot) bool {
	for _, session := range section.Sessions {
		for _, slot := range blocked {
			if session.OverlapsSlot(slot) {
				return true
			}
		}
	}
	return false
}

// generate перебирает декартово произведение секций-кандидатов по курсам.
// Стоимость растет как произведение числа секций на курс; ограничение
// количества курсов и секций - политика вызывающей границы.
func generate(catalog *domain.Catalog, selections []domain.CourseSelection, blocked []domain.BlockedSlot) searchResult {
	result := searchResult{
		schedules: make([]domain.Schedule, 0),
		eligible:  make(map[string][]domain.Section, len(selections)),
	}

	candidates := make([]candidateSet, 0, len(selections))
	for _, selection := range selections {
		eligible := resolveCandidates(catalog, selection)
		result.eligible[selection.Course] = eligible

		if len(eligible) == 0 {
			result.exclusions = append(result.exclusions, domain.CourseExclusion{
				Course: selection.Course,
				Cause:  domain.ExclusionNoSections,
			})
			continue
		}

		filtered := make([]domain.Section, 0, len(eligible))
		for _, section := range eligible {
			if !sectionBlocked(section, blocked) {
				filtered = append(filtered, section)
			}
		}

		if len(filtered) == 0 {
			result.exclusions = append(result.exclusions, domain.CourseExclusion{
				Course: selection.Course,
				Cause:  domain.ExclusionAllBlocked,
			})
			continue
		}

		candidates = append(candidates, candidateSet{course: selection.Course, sections: filtered})
	}

	// Расписание должно покрыть каждый запрошенный курс, иначе не покрывает ничего
	if len(result.exclusions) > 0 || len(candidates) == 0 {
		return result
	}

	seen := make(map[domain.ConflictPair]struct{})
	indexes := make([]int, len(candidates))

	for {
		combination := make([]domain.Section, len(candidates))
		for i, idx := range indexes {
			combination[i] = candidates[i].sections[idx]
		}

		if combinationFits(combination) {
			entries := make([]domain.ScheduleEntry, len(combination))
			for i, section := range combination {
				entries[i] = domain.ScheduleEntry{
					Course:   section.Course,
					Section:  section.ID,
					Sessions: section.Sessions,
				}
			}
			result.schedules = append(result.schedules, domain.Schedule{Sections: entries})
		} else {
			collectConflicts(combination, seen, &result.conflicts)
		}

		// Одометр: последняя позиция крутится быстрее, порядок выбора - старший
		pos := len(indexes) - 1
		for pos >= 0 {
			indexes[pos]++
			if indexes[pos] < len(candidates[pos].sections) {
				break
			}
			indexes[pos] = 0
			pos--
		}
		if pos < 0 {
			break
		}
	}

	return result
}

type timedSession struct {
	session domain.Session
	section domain.Section
}

// combinationFits проверяет отсутствие пересечений во всей комбинации:
// группировка по дню, сортировка по началу, сравнение соседей
func combinationFits(combination []domain.Section) bool {
	byDay := make(map[domain.Weekday][]domain.Session)
	for _, section := range combination {
		for _, session := range section.Sessions {
			byDay[session.Day] = append(byDay[session.Day], session)
		}
	}

	for _, daySessions := range byDay {
		// Занятия нулевой длины не пересекаются ни с чем
		sessions := daySessions[:0]
		for _, session := range daySessions {
			if session.Start < session.End {
				sessions = append(sessions, session)
			}
		}

		sort.Slice(sessions, func(i, j int) bool {
			return sessions[i].Start < sessions[j].Start
		})

		for i := 1; i < len(sessions); i++ {
			if sessions[i].Start < sessions[i-1].End {
				return false
			}
			if sessions[i].End < sessions[i-1].End {
				sessions[i].End = sessions[i-1].End
			}
		}
	}

	return true
}

// collectConflicts находит все попарные пересечения занятий разных курсов
// в отвергнутой комбинации. Пары упорядочены по началу занятия и
// дедуплицируются по значению.
func collectConflicts(combination []domain.Section, seen map[domain.ConflictPair]struct{}, conflicts *[]domain.ConflictPair) {
	byDay := make(map[domain.Weekday][]timedSession)
	for _, section := range combination {
		for _, session := range section.Sessions {
			byDay[session.Day] = append(byDay[session.Day], timedSession{session: session, section: section})
		}
	}

	for _, day := range domain.WeekOrder {
		sessions := byDay[day]
		sort.SliceStable(sessions, func(i, j int) bool {
			return sessions[i].session.Start < sessions[j].session.Start
		})

		for i := 0; i < len(sessions); i++ {
			for j := i + 1; j < len(sessions); j++ {
				first, second := sessions[i], sessions[j]
				if first.section.Course == second.section.Course {
					continue
				}
				if !first.session.Overlaps(second.session) {
					continue
				}

				pair := domain.ConflictPair{
					CourseA:  first.section.Course,
					SectionA: first.section.ID,
					TimeA:    first.session.Range(),
					CourseB:  second.section.Course,
					SectionB: second.section.ID,
					TimeB:    second.session.Range(),
					Day:      day,
				}
				if _, dup := seen[pair]; dup {
					continue
				}
				seen[pair] = struct{}{}
				*conflicts = append(*conflicts, pair)
			}
		}
	}
}
