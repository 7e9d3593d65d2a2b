package domain

import (
	"sort"
	"strings"
)

// RawSession - запись занятия из файла терма, как она лежит на диске.
// Поля nullable: секция с неполной записью не попадает в каталог.
type RawSession struct {
	Day       *string `json:"Day"`
	StartTime *string `json:"Start Time"`
	EndTime   *string `json:"End Time"`
	Section   string  `json:"Section"`
	Classroom *string `json:"Classroom"`
}

// RawTermData - сырые данные одного терма: код курса -> занятия
type RawTermData map[string][]RawSession

// Section - конкретное предложение курса, состоит из одного и более занятий
type Section struct {
	Course   string    `json:"course"`
	ID       string    `json:"section"`
	Sessions []Session `json:"sessions"`
}

// Catalog - иммутабельный снимок данных одного терма.
// Courses содержит все коды курсов из исходных данных, в том числе
// с пустым списком секций (отличимо от неизвестного курса).
type Catalog struct {
	Term    string
	Courses map[string][]Section
}

// Sections возвращает пригодные секции курса. Второй результат ложь,
// если курса вообще нет в данных терма.
func (c *Catalog) Sections(course string) ([]Section, bool) {
	sections, ok := c.Courses[course]
	return sections, ok
}

// CoursesByPrefix группирует коды курсов по токену до первого пробела
func (c *Catalog) CoursesByPrefix() map[string][]string {
	grouped := make(map[string][]string)
	for course := range c.Courses {
		prefix := course
		if idx := strings.IndexByte(course, ' '); idx > 0 {
			prefix = course[:idx]
		}
		grouped[prefix] = append(grouped[prefix], course)
	}

	for prefix := range grouped {
		sort.Strings(grouped[prefix])
	}

	return grouped
}

// EligibleSectionIDs возвращает идентификаторы пригодных секций по курсам
func (c *Catalog) EligibleSectionIDs() map[string][]string {
	result := make(map[string][]string)
	for course, sections := range c.Courses {
		ids := make([]string, 0, len(sections))
		for _, section := range sections {
			ids = append(ids, section.ID)
		}
		result[course] = ids
	}
	return result
}
