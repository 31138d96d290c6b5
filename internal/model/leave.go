package model

import (
	"time"

	"github.com/alfredjeanlab/cafedash/internal/tableview"
)

// LeaveStatus is the review state of a leave request.
type LeaveStatus string

const (
	LeavePending   LeaveStatus = "PENDING"
	LeaveApproved  LeaveStatus = "APPROVED"
	LeaveRejected  LeaveStatus = "REJECTED"
	LeaveCancelled LeaveStatus = "CANCELLED"
)

// IsValid checks whether the status is a known value.
func (s LeaveStatus) IsValid() bool {
	switch s {
	case LeavePending, LeaveApproved, LeaveRejected, LeaveCancelled:
		return true
	}
	return false
}

// IsFinal reports whether the request can no longer change state.
func (s LeaveStatus) IsFinal() bool {
	return s == LeaveApproved || s == LeaveRejected || s == LeaveCancelled
}

// LeaveType categorises a leave request.
type LeaveType string

const (
	LeaveAnnual    LeaveType = "ANNUAL"
	LeaveSick      LeaveType = "SICK"
	LeavePersonal  LeaveType = "PERSONAL"
	LeaveEmergency LeaveType = "EMERGENCY"
	LeaveUnpaid    LeaveType = "UNPAID"
)

// IsValid checks whether the leave type is a known value.
func (t LeaveType) IsValid() bool {
	switch t {
	case LeaveAnnual, LeaveSick, LeavePersonal, LeaveEmergency, LeaveUnpaid:
		return true
	}
	return false
}

// dateLayout is the calendar date format used by leave requests.
const dateLayout = "2006-01-02"

// LeaveRequest is a staff request for time off.
type LeaveRequest struct {
	ID            ID          `json:"id"`
	EmployeeID    ID          `json:"employee_id"`
	EmployeeName  string      `json:"employee_name,omitempty"`
	LeaveType     LeaveType   `json:"leave_type"`
	StartDate     string      `json:"start_date"`
	EndDate       string      `json:"end_date"`
	Reason        string      `json:"reason"`
	Status        LeaveStatus `json:"status"`
	ReviewerID    ID          `json:"reviewer_id,omitempty"`
	ReviewerNotes string      `json:"reviewer_notes,omitempty"`
	CreatedAt     *time.Time  `json:"created_at,omitempty"`
}

// Days returns the inclusive number of calendar days covered, or 0 when the
// dates cannot be parsed.
func (l LeaveRequest) Days() int {
	start, err1 := time.Parse(dateLayout, l.StartDate)
	end, err2 := time.Parse(dateLayout, l.EndDate)
	if err1 != nil || err2 != nil || end.Before(start) {
		return 0
	}
	return int(end.Sub(start).Hours()/24) + 1
}

func (l LeaveRequest) Record() tableview.Record {
	r := toRecord(l)
	r["days"] = l.Days()
	return r
}

// LeaveRequestInput is the body of POST /leave-requests.
type LeaveRequestInput struct {
	LeaveType LeaveType `json:"leave_type"`
	StartDate string    `json:"start_date"`
	EndDate   string    `json:"end_date"`
	Reason    string    `json:"reason"`
}

// LeaveReview is the body for approving or rejecting a leave request.
type LeaveReview struct {
	Notes string `json:"reviewer_notes,omitempty"`
}
