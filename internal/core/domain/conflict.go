package domain

import (
	"github.com/yusched/schedule-generator/internal/core/json_types"
)

type ExclusionCause string

const (
	// В каталоге нет пригодных секций курса, либо курс неизвестен,
	// либо закрепленная секция не существует
	ExclusionNoSections ExclusionCause = "no_sections"
	// Пригодные секции есть, но все пересекаются с заблокированными часами
	ExclusionAllBlocked ExclusionCause = "all_blocked"
)

// CourseExclusion - курс, выбывший из генерации, с причиной
type CourseExclusion struct {
	Course string         `json:"course"`
	Cause  ExclusionCause `json:"cause"`
}

// ConflictPair описывает одно пересечение занятий двух разных курсов,
// из-за которого отвергнута комбинация. Сравнивается по значению,
// первой идет секция с более ранним началом.
type ConflictPair struct {
	CourseA  string
	SectionA string
	TimeA    json_types.SlotRange
	CourseB  string
	SectionB string
	TimeB    json_types.SlotRange
	Day      Weekday
}

// BlockedHit - одно пересечение занятия секции с заблокированным интервалом
type BlockedHit struct {
	Section   string
	Day       Weekday
	Slot      json_types.SlotRange
	Session   json_types.SlotRange
	Classroom string
}
