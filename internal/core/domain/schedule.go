package domain

import (
	"encoding/json"
	"errors"

	"github.com/yusched/schedule-generator/internal/core/json_types"
)

// CourseSelection - выбор пользователя: курс и опционально закрепленная секция
type CourseSelection struct {
	Course  string `json:"course"`
	Section string `json:"section,omitempty"`
}

// UnmarshalJSON принимает как строку с кодом курса, так и объект
// {"course": ..., "section": ...}
func (s *CourseSelection) UnmarshalJSON(data []byte) error {
	var course string
	if err := json.Unmarshal(data, &course); err == nil {
		*s = CourseSelection{Course: course}
		return nil
	}

	var obj struct {
		Course  string `json:"course"`
		Section string `json:"section"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	if obj.Course == "" {
		return errors.New("course entry must have a 'course' field")
	}

	*s = CourseSelection{Course: obj.Course, Section: obj.Section}
	return nil
}

// BlockedSlot - интервал времени, который пользователь просит обходить
type BlockedSlot struct {
	Day  Weekday              `json:"day" binding:"required"`
	Slot json_types.SlotRange `json:"slot" binding:"required"`
}

// ScheduleEntry - одна секция выбранного курса внутри готового расписания
type ScheduleEntry struct {
	Course   string    `json:"course"`
	Section  string    `json:"section"`
	Sessions []Session `json:"sessions"`
}

// Schedule - бесконфликтное назначение ровно одной секции на каждый курс
type Schedule struct {
	Sections []ScheduleEntry `json:"sections"`
}

// GenerateResult - результат генерации для одного запроса
type GenerateResult struct {
	Term       string            `json:"term"`
	Schedules  []Schedule        `json:"schedules"`
	Warnings   []string          `json:"warnings"`
	Exclusions []CourseExclusion `json:"-"`
}
