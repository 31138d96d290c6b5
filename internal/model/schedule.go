package model

import (
	"strings"
	"time"

	"github.com/alfredjeanlab/cafedash/internal/tableview"
)

// Weekday is a day name as sent by the API ("MONDAY").
type Weekday string

const (
	Monday    Weekday = "MONDAY"
	Tuesday   Weekday = "TUESDAY"
	Wednesday Weekday = "WEDNESDAY"
	Thursday  Weekday = "THURSDAY"
	Friday    Weekday = "FRIDAY"
	Saturday  Weekday = "SATURDAY"
	Sunday    Weekday = "SUNDAY"
)

// Weekdays lists the days in calendar order, Monday first.
var Weekdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// Rank returns 1 for Monday through 7 for Sunday, and 8 for unknown values.
func (d Weekday) Rank() int {
	up := Weekday(strings.ToUpper(strings.TrimSpace(string(d))))
	for i, w := range Weekdays {
		if w == up {
			return i + 1
		}
	}
	return len(Weekdays) + 1
}

// IsValid reports whether d is a known day name.
func (d Weekday) IsValid() bool { return d.Rank() <= len(Weekdays) }

// WeekdayRank is a tableview rank function for weekday fields.
func WeekdayRank(v any) int {
	s, _ := v.(string)
	return Weekday(s).Rank()
}

// TaskStatus is the lifecycle state of a task template or slot.
type TaskStatus string

const (
	TaskActive   TaskStatus = "ACTIVE"
	TaskInactive TaskStatus = "INACTIVE"
)

// TaskTemplate is a reusable staff task definition.
type TaskTemplate struct {
	ID               ID         `json:"id"`
	Title            string     `json:"title"`
	Description      string     `json:"description,omitempty"`
	TaskType         string     `json:"task_type,omitempty"`
	WorkType         string     `json:"work_type,omitempty"`
	EstimatedMinutes int        `json:"estimated_minutes"`
	IsPublic         bool       `json:"is_public"`
	Status           TaskStatus `json:"status"`
}

func (t TaskTemplate) Record() tableview.Record { return toRecord(t) }

// TaskTemplateInput is the body for creating or replacing a task template.
type TaskTemplateInput struct {
	Title            string     `json:"title"`
	Description      string     `json:"description,omitempty"`
	TaskType         string     `json:"task_type,omitempty"`
	WorkType         string     `json:"work_type,omitempty"`
	EstimatedMinutes int        `json:"estimated_minutes"`
	IsPublic         bool       `json:"is_public"`
	Status           TaskStatus `json:"status,omitempty"`
}

// Slot is a recurring weekly time window for a task.
type Slot struct {
	ID          ID         `json:"id"`
	TaskID      ID         `json:"task_id"`
	TaskTitle   string     `json:"task_title,omitempty"`
	DayOfWeek   Weekday    `json:"day_of_week"`
	StartTime   string     `json:"start_time"`
	EndTime     string     `json:"end_time"`
	Area        string     `json:"area,omitempty"`
	MaxCapacity int        `json:"max_capacity"`
	Status      TaskStatus `json:"status"`
}

func (s Slot) Record() tableview.Record { return toRecord(s) }

// SlotInput is the body for creating or replacing a slot.
type SlotInput struct {
	TaskID      ID         `json:"task_id"`
	DayOfWeek   Weekday    `json:"day_of_week"`
	StartTime   string     `json:"start_time"`
	EndTime     string     `json:"end_time"`
	Area        string     `json:"area,omitempty"`
	MaxCapacity int        `json:"max_capacity"`
	Status      TaskStatus `json:"status,omitempty"`
}

// clockLayout is the HH:MM format used for slot and shift times.
const clockLayout = "15:04"

// parseClock parses "HH:MM" or "HH:MM:SS".
func parseClock(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{clockLayout, "15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
