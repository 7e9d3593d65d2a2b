package schedule_generator_service

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/yusched/schedule-generator/internal/core/domain"
	"github.com/yusched/schedule-generator/internal/core/json_types"
)

// Известные написания дней недели после сворачивания регистра и диакритики
var dayNames = map[string]domain.Weekday{
	"pazartesi": domain.WeekdayMonday,
	"sali":      domain.WeekdayTuesday,
	"carsamba":  domain.WeekdayWednesday,
	"persembe":  domain.WeekdayThursday,
	"cuma":      domain.WeekdayFriday,
	"cumartesi": domain.WeekdaySaturday,
	"pazar":     domain.WeekdaySunday,

	"monday":    domain.WeekdayMonday,
	"tuesday":   domain.WeekdayTuesday,
	"wednesday": domain.WeekdayWednesday,
	"thursday":  domain.WeekdayThursday,
	"friday":    domain.WeekdayFriday,
	"saturday":  domain.WeekdaySaturday,
	"sunday":    domain.WeekdaySunday,
}

// Убирает комбинируемые диакритические знаки после NFD-разложения
var foldTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

func foldDayName(raw string) string {
	// Турецкий регистр: İ -> i, I -> ı
	lower := strings.ToLowerSpecial(unicode.TurkishCase, strings.TrimSpace(raw))

	folded, _, err := transform.String(foldTransformer, lower)
	if err != nil {
		folded = lower
	}

	// Точечная ı не раскладывается через NFD
	return strings.ReplaceAll(folded, "ı", "i")
}

// NormalizeDay переводит известные написания дня недели в каноническое
// английское. Неизвестный ввод проходит как есть, это не ошибка.
func NormalizeDay(raw string) domain.Weekday {
	if day, ok := dayNames[foldDayName(raw)]; ok {
		return day
	}
	return domain.Weekday(raw)
}

// BuildCatalog группирует занятия по (курс, секция) и оставляет только
// секции, у которых каждое занятие полностью заполнено. Секции с пустым
// или нечитаемым днем/временем молча исключаются. Курс с нулем пригодных
// секций остается в каталоге с пустым списком.
func BuildCatalog(term string, raw domain.RawTermData) *domain.Catalog {
	courses := make(map[string][]domain.Section, len(raw))

	for course, rawSessions := range raw {
		sectionOrder := make([]string, 0)
		sectionSessions := make(map[string][]domain.Session)
		incomplete := make(map[string]bool)

		for _, rs := range rawSessions {
			if _, seen := sectionSessions[rs.Section]; !seen && !incomplete[rs.Section] {
				sectionOrder = append(sectionOrder, rs.Section)
			}

			session, ok := normalizeSession(rs)
			if !ok {
				incomplete[rs.Section] = true
				continue
			}
			sectionSessions[rs.Section] = append(sectionSessions[rs.Section], session)
		}

		sections := make([]domain.Section, 0, len(sectionOrder))
		for _, id := range sectionOrder {
			if incomplete[id] {
				continue
			}
			sections = append(sections, domain.Section{
				Course:   course,
				ID:       id,
				Sessions: sectionSessions[id],
			})
		}

		courses[course] = sections
	}

	return &domain.Catalog{Term: term, Courses: courses}
}

func normalizeSession(rs domain.RawSession) (domain.Session, bool) {
	if rs.Day == nil || rs.StartTime == nil || rs.EndTime == nil {
		return domain.Session{}, false
	}

	start, err := json_types.ParseClock(*rs.StartTime)
	if err != nil {
		return domain.Session{}, false
	}
	end, err := json_types.ParseClock(*rs.EndTime)
	if err != nil {
		return domain.Session{}, false
	}

	classroom := ""
	if rs.Classroom != nil {
		classroom = *rs.Classroom
	}

	return domain.Session{
		Day:       NormalizeDay(*rs.Day),
		Start:     start,
		End:       end,
		Classroom: classroom,
	}, true
}
