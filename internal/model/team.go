package model

import (
	"strings"

	"github.com/alfredjeanlab/cafedash/internal/tableview"
)

// TeamMember is a staff member as listed inside a team.
type TeamMember struct {
	ID       ID     `json:"id"`
	FullName string `json:"full_name"`
	Email    string `json:"email,omitempty"`
	Role     Role   `json:"role"`
}

// Team groups staff who share shifts and work areas.
type Team struct {
	ID          ID           `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	LeaderName  string       `json:"leader_name,omitempty"`
	WorkType    string       `json:"work_type,omitempty"`
	Members     []TeamMember `json:"members,omitempty"`
}

func (t Team) Record() tableview.Record {
	r := toRecord(t)
	r["member_count"] = len(t.Members)
	return r
}

// Shift is a recurring working period.
type Shift struct {
	ID             ID        `json:"id"`
	Name           string    `json:"name"`
	StartTime      string    `json:"start_time"`
	EndTime        string    `json:"end_time"`
	ApplicableDays []Weekday `json:"applicable_days,omitempty"`
	TeamID         ID        `json:"team_id,omitempty"`
	TeamName       string    `json:"team_name,omitempty"`
}

func (s Shift) Record() tableview.Record {
	r := toRecord(s)
	days := make([]string, len(s.ApplicableDays))
	for i, d := range s.ApplicableDays {
		days[i] = string(d)
	}
	r["days"] = strings.Join(days, ",")
	r["first_day"] = ""
	if first := s.firstDay(); first != "" {
		r["first_day"] = string(first)
	}
	return r
}

// firstDay returns the earliest applicable day in calendar order.
func (s Shift) firstDay() Weekday {
	var best Weekday
	for _, d := range s.ApplicableDays {
		if best == "" || d.Rank() < best.Rank() {
			best = d
		}
	}
	return best
}
