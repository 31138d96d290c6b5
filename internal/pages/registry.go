package pages

import (
	"context"
	"sort"

	"github.com/alfredjeanlab/cafedash/internal/client"
	"github.com/alfredjeanlab/cafedash/internal/events"
	"github.com/alfredjeanlab/cafedash/internal/model"
	"github.com/alfredjeanlab/cafedash/internal/tableview"
)

func fetch[T model.Recordable](ctx context.Context, list func(context.Context, client.ListOptions) (*client.ListResult[T], error), maxPages int) ([]tableview.Record, error) {
	items, err := client.FetchAll[T](ctx, list, client.ListOptions{}, maxPages)
	if err != nil {
		return nil, err
	}
	return model.Records(items), nil
}

func options[T ~string](vals ...T) []string {
	out := make([]string, len(vals))
	for i, v := range vals {
		out[i] = string(v)
	}
	return out
}

var (
	managers = []model.Role{model.RoleAdmin, model.RoleManager}
	staff    = []model.Role{model.RoleAdmin, model.RoleManager, model.RoleStaff}

	leaveStatuses = options(model.LeavePending, model.LeaveApproved, model.LeaveRejected, model.LeaveCancelled)
	leaveTypes    = options(model.LeaveAnnual, model.LeaveSick, model.LeavePersonal, model.LeaveEmergency, model.LeaveUnpaid)
	taskStatuses  = options(model.TaskActive, model.TaskInactive)
	weekdays      = options(model.Weekdays...)
	booleans      = []string{"true", "false"}

	weekdayRank = map[string]func(any) int{"day_of_week": model.WeekdayRank, "first_day": model.WeekdayRank}
)

var leaveColumns = []Column{
	{Field: "id", Title: "ID"},
	{Field: "employee_name", Title: "EMPLOYEE", Width: 24},
	{Field: "leave_type", Title: "TYPE"},
	{Field: "start_date", Title: "FROM"},
	{Field: "end_date", Title: "TO"},
	{Field: "days", Title: "DAYS"},
	{Field: "status", Title: "STATUS", Status: true},
	{Field: "reason", Title: "REASON", Width: 40},
}

var leaveFilters = []FilterDef{
	{Param: "status", Field: "status", Options: leaveStatuses},
	{Param: "type", Field: "leave_type", Options: leaveTypes},
	{Param: "employee", Field: "employee_name", Kind: FilterContains},
	{Param: "from", Field: "start_date", Kind: FilterMin},
	{Param: "to", Field: "end_date", Kind: FilterMax},
}

var registry = []*Page{
	{
		Name:         "leave-requests",
		Title:        "Leave requests",
		Resource:     events.ResourceLeaveRequest,
		Columns:      leaveColumns,
		SearchFields: []string{"employee_name", "reason"},
		Filters:      leaveFilters,
		DefaultSort:  "-created_at,-start_date",
		CounterField: "status",
		Roles:        managers,
		Fetch: func(ctx context.Context, c client.CafeClient, max int) ([]tableview.Record, error) {
			return fetch(ctx, c.ListLeaveRequests, max)
		},
	},
	{
		Name:         "my-leave-requests",
		Title:        "My leave requests",
		Resource:     events.ResourceLeaveRequest,
		Columns:      leaveColumns,
		SearchFields: []string{"reason", "reviewer_notes"},
		Filters:      leaveFilters,
		DefaultSort:  "-created_at,-start_date",
		CounterField: "status",
		Roles:        staff,
		Fetch: func(ctx context.Context, c client.CafeClient, max int) ([]tableview.Record, error) {
			return fetch(ctx, c.ListMyLeaveRequests, max)
		},
	},
	{
		Name:     "vaccine-types",
		Title:    "Vaccine types",
		Resource: events.ResourceVaccineType,
		Columns: []Column{
			{Field: "id", Title: "ID"},
			{Field: "name", Title: "NAME", Width: 30},
			{Field: "species.name", Title: "SPECIES"},
			{Field: "interval_months", Title: "INTERVAL (MO)"},
			{Field: "is_required", Title: "REQUIRED"},
		},
		SearchFields: []string{"name", "description", "species.name"},
		Filters: []FilterDef{
			{Param: "species", Field: "species.name"},
			{Param: "required", Field: "is_required", Options: booleans},
		},
		DefaultSort:  "name",
		CounterField: "species.name",
		Roles:        staff,
		Fetch: func(ctx context.Context, c client.CafeClient, max int) ([]tableview.Record, error) {
			return fetch(ctx, c.ListVaccineTypes, max)
		},
	},
	{
		Name:     "breeds",
		Title:    "Breeds",
		Resource: events.ResourceBreed,
		Columns: []Column{
			{Field: "id", Title: "ID"},
			{Field: "name", Title: "NAME", Width: 30},
			{Field: "species.name", Title: "SPECIES"},
			{Field: "is_active", Title: "ACTIVE"},
			{Field: "description", Title: "DESCRIPTION", Width: 40},
		},
		SearchFields: []string{"name", "description", "species.name"},
		Filters: []FilterDef{
			{Param: "species", Field: "species.name"},
			{Param: "active", Field: "is_active", Options: booleans},
		},
		DefaultSort:  "name",
		CounterField: "species.name",
		Roles:        staff,
		Fetch: func(ctx context.Context, c client.CafeClient, max int) ([]tableview.Record, error) {
			return fetch(ctx, c.ListBreeds, max)
		},
	},
	{
		Name:     "pets",
		Title:    "Pets",
		Resource: events.ResourcePet,
		Columns: []Column{
			{Field: "id", Title: "ID"},
			{Field: "name", Title: "NAME", Width: 24},
			{Field: "species.name", Title: "SPECIES"},
			{Field: "breed.name", Title: "BREED"},
			{Field: "age", Title: "AGE"},
			{Field: "gender", Title: "GENDER"},
			{Field: "health_status", Title: "HEALTH", Status: true},
		},
		SearchFields: []string{"name", "color", "species.name", "breed.name", "notes"},
		Filters: []FilterDef{
			{Param: "species", Field: "species.name"},
			{Param: "breed", Field: "breed.name"},
			{Param: "gender", Field: "gender", Options: options(model.GenderMale, model.GenderFemale)},
			{Param: "health", Field: "health_status", Options: options(model.HealthHealthy, model.HealthSick, model.HealthRecovering, model.HealthQuarantine)},
			{Param: "min_age", Field: "age", Kind: FilterMin},
			{Param: "max_age", Field: "age", Kind: FilterMax},
		},
		DefaultSort:  "name",
		CounterField: "health_status",
		Roles:        staff,
		Fetch: func(ctx context.Context, c client.CafeClient, max int) ([]tableview.Record, error) {
			return fetch(ctx, c.ListPets, max)
		},
	},
	{
		Name:     "tasks",
		Title:    "Task templates",
		Resource: events.ResourceTaskTemplate,
		Columns: []Column{
			{Field: "id", Title: "ID"},
			{Field: "title", Title: "TITLE", Width: 36},
			{Field: "task_type", Title: "TYPE"},
			{Field: "work_type", Title: "WORK"},
			{Field: "estimated_minutes", Title: "MINUTES"},
			{Field: "is_public", Title: "PUBLIC"},
			{Field: "status", Title: "STATUS", Status: true},
		},
		SearchFields: []string{"title", "description"},
		Filters: []FilterDef{
			{Param: "status", Field: "status", Options: taskStatuses},
			{Param: "type", Field: "task_type"},
			{Param: "work", Field: "work_type"},
			{Param: "public", Field: "is_public", Options: booleans},
		},
		DefaultSort:  "title",
		CounterField: "status",
		Roles:        staff,
		Fetch: func(ctx context.Context, c client.CafeClient, max int) ([]tableview.Record, error) {
			return fetch(ctx, c.ListTaskTemplates, max)
		},
	},
	{
		Name:     "slots",
		Title:    "Slots",
		Resource: events.ResourceSlot,
		Columns: []Column{
			{Field: "id", Title: "ID"},
			{Field: "task_title", Title: "TASK", Width: 30},
			{Field: "day_of_week", Title: "DAY"},
			{Field: "start_time", Title: "START"},
			{Field: "end_time", Title: "END"},
			{Field: "area", Title: "AREA"},
			{Field: "max_capacity", Title: "CAPACITY"},
			{Field: "status", Title: "STATUS", Status: true},
		},
		SearchFields: []string{"task_title", "area"},
		Filters: []FilterDef{
			{Param: "day", Field: "day_of_week", Options: weekdays},
			{Param: "status", Field: "status", Options: taskStatuses},
			{Param: "area", Field: "area", Kind: FilterContains},
			{Param: "task", Field: "task_id"},
		},
		DefaultSort:  "day_of_week,start_time",
		Ranks:        weekdayRank,
		CounterField: "day_of_week",
		Roles:        staff,
		Fetch: func(ctx context.Context, c client.CafeClient, max int) ([]tableview.Record, error) {
			return fetch(ctx, c.ListSlots, max)
		},
	},
	{
		Name:     "shifts",
		Title:    "Shifts",
		Resource: events.ResourceShift,
		Columns: []Column{
			{Field: "id", Title: "ID"},
			{Field: "name", Title: "NAME", Width: 24},
			{Field: "start_time", Title: "START"},
			{Field: "end_time", Title: "END"},
			{Field: "days", Title: "DAYS", Width: 40},
			{Field: "team_name", Title: "TEAM"},
		},
		SearchFields: []string{"name", "team_name"},
		Filters: []FilterDef{
			{Param: "team", Field: "team_name"},
			{Param: "day", Field: "days", Kind: FilterContains, Options: weekdays},
		},
		DefaultSort:  "first_day,start_time",
		Ranks:        weekdayRank,
		CounterField: "team_name",
		Roles:        staff,
		Fetch: func(ctx context.Context, c client.CafeClient, max int) ([]tableview.Record, error) {
			return fetch(ctx, c.ListShifts, max)
		},
	},
	{
		Name:     "teams",
		Title:    "Teams",
		Resource: events.ResourceTeam,
		Columns: []Column{
			{Field: "id", Title: "ID"},
			{Field: "name", Title: "NAME", Width: 24},
			{Field: "leader_name", Title: "LEADER"},
			{Field: "work_type", Title: "WORK"},
			{Field: "member_count", Title: "MEMBERS"},
		},
		SearchFields: []string{"name", "leader_name", "description"},
		Filters: []FilterDef{
			{Param: "work", Field: "work_type"},
		},
		DefaultSort:  "name",
		CounterField: "work_type",
		Roles:        staff,
		Fetch: func(ctx context.Context, c client.CafeClient, max int) ([]tableview.Record, error) {
			return fetch(ctx, c.ListTeams, max)
		},
	},
}

// Lookup returns the page registered under name.
func Lookup(name string) (*Page, bool) {
	for _, p := range registry {
		if p.Name == name {
			return p, true
		}
	}
	return nil, false
}

// All returns every registered page in registration order.
func All() []*Page {
	out := make([]*Page, len(registry))
	copy(out, registry)
	return out
}

// Names returns the registered page names, sorted.
func Names() []string {
	names := make([]string, len(registry))
	for i, p := range registry {
		names[i] = p.Name
	}
	sort.Strings(names)
	return names
}
