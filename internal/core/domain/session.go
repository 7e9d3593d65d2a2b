package domain

import (
	"github.com/yusched/schedule-generator/internal/core/json_types"
)

type Weekday string

const (
	WeekdayMonday    Weekday = "Monday"
	WeekdayTuesday   Weekday = "Tuesday"
	WeekdayWednesday Weekday = "Wednesday"
	WeekdayThursday  Weekday = "Thursday"
	WeekdayFriday    Weekday = "Friday"
	WeekdaySaturday  Weekday = "Saturday"
	WeekdaySunday    Weekday = "Sunday"
)

// Канонический порядок дней недели для детерминированного вывода
var WeekOrder = []Weekday{
	WeekdayMonday,
	WeekdayTuesday,
	WeekdayWednesday,
	WeekdayThursday,
	WeekdayFriday,
	WeekdaySaturday,
	WeekdaySunday,
}

// Session - одно еженедельное занятие: день, интервал времени, аудитория
type Session struct {
	Day       Weekday              `json:"day"`
	Start     json_types.ClockTime `json:"start"`
	End       json_types.ClockTime `json:"end"`
	Classroom string               `json:"classroom,omitempty"`
}

// Overlaps проверяет пересечение двух занятий: один день и полуоткрытые
// интервалы пересекаются. Занятие нулевой длины ни с чем не пересекается.
func (s Session) Overlaps(other Session) bool {
	return s.Day == other.Day && s.Start < other.End && other.Start < s.End
}

// OverlapsSlot проверяет пересечение занятия с заблокированным интервалом
func (s Session) OverlapsSlot(blocked BlockedSlot) bool {
	return s.Day == blocked.Day && s.Start < blocked.Slot.End && blocked.Slot.Start < s.End
}

func (s Session) Range() json_types.SlotRange {
	return json_types.SlotRange{Start: s.Start, End: s.End}
}
