package model

import (
	"fmt"
	"net/mail"
	"strings"
	"time"
	"unicode"
)

// ValidationError holds a list of field-level validation errors.
type ValidationError struct {
	Errors []FieldError
}

// FieldError represents a single validation failure on a named field.
type FieldError struct {
	Field   string
	Message string
}

// Error formats the validation error as a semicolon-separated list of field messages.
func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Errors))
	for i, fe := range e.Errors {
		parts[i] = fe.Field + ": " + fe.Message
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// HasErrors reports whether the validation error contains any field errors.
func (e *ValidationError) HasErrors() bool {
	return len(e.Errors) > 0
}

func (e *ValidationError) add(field, format string, args ...any) {
	e.Errors = append(e.Errors, FieldError{Field: field, Message: fmt.Sprintf(format, args...)})
}

func (e *ValidationError) result() error {
	if e.HasErrors() {
		return e
	}
	return nil
}

func (e *ValidationError) required(field, value string) bool {
	if strings.TrimSpace(value) == "" {
		e.add(field, "is required")
		return false
	}
	return true
}

func (e *ValidationError) maxLen(field, value string, n int) {
	if len([]rune(strings.TrimSpace(value))) > n {
		e.add(field, "must be %d characters or fewer", n)
	}
}

func (e *ValidationError) email(field, value string) {
	if !e.required(field, value) {
		return
	}
	addr, err := mail.ParseAddress(strings.TrimSpace(value))
	if err != nil || addr.Address != strings.TrimSpace(value) {
		e.add(field, "is not a valid email address")
	}
}

// phone accepts 10 or 11 digits, optionally prefixed with "+".
func (e *ValidationError) phone(field, value string) {
	v := strings.TrimPrefix(strings.TrimSpace(value), "+")
	if v == "" {
		e.add(field, "is required")
		return
	}
	for _, r := range v {
		if !unicode.IsDigit(r) {
			e.add(field, "must contain digits only")
			return
		}
	}
	if len(v) < 10 || len(v) > 11 {
		e.add(field, "must be 10 or 11 digits")
	}
}

const minPasswordLen = 6

func (e *ValidationError) password(field, value, confirm, confirmField string) {
	if len(value) < minPasswordLen {
		e.add(field, "must be at least %d characters", minPasswordLen)
	}
	if value != confirm {
		e.add(confirmField, "does not match")
	}
}

// ValidateLogin checks the login form.
func ValidateLogin(r *LoginRequest) error {
	var ve ValidationError
	ve.required("email", r.Email)
	ve.required("password", r.Password)
	return ve.result()
}

// ValidateRegister checks the registration form, including the password
// confirmation that is never sent to the server.
func ValidateRegister(r *RegisterRequest) error {
	var ve ValidationError
	if ve.required("full_name", r.FullName) {
		ve.maxLen("full_name", r.FullName, 100)
	}
	ve.email("email", r.Email)
	ve.phone("phone", r.Phone)
	ve.password("password", r.Password, r.ConfirmPassword, "confirm_password")
	return ve.result()
}

// ValidateProfileUpdate checks only the fields being changed.
func ValidateProfileUpdate(r *UpdateProfileRequest) error {
	var ve ValidationError
	if r.FullName != nil && ve.required("full_name", *r.FullName) {
		ve.maxLen("full_name", *r.FullName, 100)
	}
	if r.Phone != nil {
		ve.phone("phone", *r.Phone)
	}
	if r.Address != nil {
		ve.maxLen("address", *r.Address, 255)
	}
	return ve.result()
}

// ValidateChangePassword checks a password change.
func ValidateChangePassword(r *ChangePasswordRequest) error {
	var ve ValidationError
	ve.required("current_password", r.CurrentPassword)
	ve.password("new_password", r.NewPassword, r.ConfirmPassword, "confirm_password")
	if r.CurrentPassword != "" && r.CurrentPassword == r.NewPassword {
		ve.add("new_password", "must differ from the current password")
	}
	return ve.result()
}

// ValidateVaccineType checks a vaccine type form.
func ValidateVaccineType(v *VaccineTypeInput) error {
	var ve ValidationError
	if ve.required("name", v.Name) {
		ve.maxLen("name", v.Name, 100)
	}
	ve.required("species_id", string(v.SpeciesID))
	if v.IntervalMonths < 0 || v.IntervalMonths > 120 {
		ve.add("interval_months", "must be between 0 and 120, got %d", v.IntervalMonths)
	}
	return ve.result()
}

// ValidateBreed checks a breed form.
func ValidateBreed(b *BreedInput) error {
	var ve ValidationError
	if ve.required("name", b.Name) {
		ve.maxLen("name", b.Name, 100)
	}
	ve.required("species_id", string(b.SpeciesID))
	return ve.result()
}

// ValidatePet checks a pet form.
func ValidatePet(p *PetInput) error {
	var ve ValidationError
	if ve.required("name", p.Name) {
		ve.maxLen("name", p.Name, 100)
	}
	ve.required("species_id", string(p.SpeciesID))
	if p.Age < 0 {
		ve.add("age", "must not be negative")
	}
	if p.Weight < 0 {
		ve.add("weight", "must not be negative")
	}
	if p.Gender != "" && p.Gender != GenderMale && p.Gender != GenderFemale {
		ve.add("gender", "invalid value %q", p.Gender)
	}
	if p.ArrivalDate != "" {
		if _, err := time.Parse(dateLayout, p.ArrivalDate); err != nil {
			ve.add("arrival_date", "must be a YYYY-MM-DD date")
		}
	}
	return ve.result()
}

// ValidateTaskTemplate checks a task template form.
func ValidateTaskTemplate(t *TaskTemplateInput) error {
	var ve ValidationError
	if ve.required("title", t.Title) {
		ve.maxLen("title", t.Title, 200)
	}
	if t.EstimatedMinutes <= 0 {
		ve.add("estimated_minutes", "must be greater than 0")
	}
	if t.Status != "" && t.Status != TaskActive && t.Status != TaskInactive {
		ve.add("status", "invalid value %q", t.Status)
	}
	return ve.result()
}

// ValidateSlot checks a slot form: known weekday, HH:MM times with end after
// start, and a positive capacity.
func ValidateSlot(s *SlotInput) error {
	var ve ValidationError
	ve.required("task_id", string(s.TaskID))
	if !s.DayOfWeek.IsValid() {
		ve.add("day_of_week", "invalid value %q", s.DayOfWeek)
	}
	start, okStart := parseClock(s.StartTime)
	end, okEnd := parseClock(s.EndTime)
	if !okStart {
		ve.add("start_time", "must be HH:MM")
	}
	if !okEnd {
		ve.add("end_time", "must be HH:MM")
	}
	if okStart && okEnd && !end.After(start) {
		ve.add("end_time", "must be after start_time")
	}
	if s.MaxCapacity < 1 {
		ve.add("max_capacity", "must be at least 1")
	}
	return ve.result()
}

// ValidateLeaveRequest checks a leave request form. today is the local
// calendar date used to reject requests that start in the past.
func ValidateLeaveRequest(l *LeaveRequestInput, today time.Time) error {
	var ve ValidationError
	if !l.LeaveType.IsValid() {
		ve.add("leave_type", "invalid value %q", l.LeaveType)
	}
	start, errStart := time.Parse(dateLayout, l.StartDate)
	end, errEnd := time.Parse(dateLayout, l.EndDate)
	if errStart != nil {
		ve.add("start_date", "must be a YYYY-MM-DD date")
	}
	if errEnd != nil {
		ve.add("end_date", "must be a YYYY-MM-DD date")
	}
	if errStart == nil && errEnd == nil && end.Before(start) {
		ve.add("end_date", "must not be before start_date")
	}
	if errStart == nil {
		y, m, d := today.Date()
		if start.Before(time.Date(y, m, d, 0, 0, 0, 0, time.UTC)) {
			ve.add("start_date", "must not be in the past")
		}
	}
	if ve.required("reason", l.Reason) {
		ve.maxLen("reason", l.Reason, 500)
	}
	return ve.result()
}

// ValidateRejection checks the reviewer notes required when rejecting a
// leave request.
func ValidateRejection(notes string) error {
	v := &ValidationError{}
	if v.required("reviewer_notes", notes) {
		v.maxLen("reviewer_notes", notes, 500)
	}
	return v.result()
}
