// Package pages defines the dashboard's list pages: which API collection
// each one shows, its columns, search fields, filters, default order and
// counter field. Open turns a page and a Query into a live tableview.View.
package pages

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/alfredjeanlab/cafedash/internal/client"
	"github.com/alfredjeanlab/cafedash/internal/model"
	"github.com/alfredjeanlab/cafedash/internal/tableview"
)

// Column is one displayed field.
type Column struct {
	Field  string
	Title  string
	Width  int  // truncate display beyond this many runes; 0 = no limit
	Status bool // render with status colors
}

// FilterKind says how a filter parameter is matched against its field.
type FilterKind int

const (
	FilterEquals   FilterKind = iota // case-insensitive equality
	FilterContains                   // case-insensitive substring
	FilterMin                        // field >= value
	FilterMax                        // field <= value
)

// FilterDef maps a query parameter onto a record field.
type FilterDef struct {
	Param   string
	Field   string
	Kind    FilterKind
	Options []string // allowed values, for help and validation; nil = free text
}

func (f FilterDef) condition(value string) (tableview.Condition, error) {
	if len(f.Options) > 0 && !containsFold(f.Options, value) {
		return nil, fmt.Errorf("invalid value %q for filter %q (want one of %s)", value, f.Param, strings.Join(f.Options, ", "))
	}
	switch f.Kind {
	case FilterContains:
		return tableview.Contains{Field: f.Field, Substr: value}, nil
	case FilterMin:
		return tableview.Range{Field: f.Field, Min: value}, nil
	case FilterMax:
		return tableview.Range{Field: f.Field, Max: value}, nil
	}
	return tableview.Equals{Field: f.Field, Value: value}, nil
}

// FetchFunc loads every record a page shows, following server pagination
// up to maxPages.
type FetchFunc func(ctx context.Context, c client.CafeClient, maxPages int) ([]tableview.Record, error)

// Page describes one list page.
type Page struct {
	Name         string
	Title        string
	Resource     string // events resource whose changes refresh this page
	Columns      []Column
	SearchFields []string
	Filters      []FilterDef
	DefaultSort  string
	Ranks        map[string]func(any) int // custom orderings by field
	CounterField string
	Roles        []model.Role // nil = any signed-in user
	Fetch        FetchFunc
}

// Allowed reports whether role may open the page. An unknown (empty) role
// is allowed and left to the API to judge.
func (p *Page) Allowed(role model.Role) bool {
	if len(p.Roles) == 0 || role == "" {
		return true
	}
	for _, r := range p.Roles {
		if strings.EqualFold(string(r), string(role)) {
			return true
		}
	}
	return false
}

// UnknownFilterError is returned for a filter parameter the page does not
// define.
type UnknownFilterError struct {
	Page  string
	Param string
}

func (e *UnknownFilterError) Error() string {
	return fmt.Sprintf("page %q has no filter %q", e.Page, e.Param)
}

// Filter returns the definition for param.
func (p *Page) Filter(param string) (FilterDef, bool) {
	for _, f := range p.Filters {
		if f.Param == param {
			return f, true
		}
	}
	return FilterDef{}, false
}

// BuildFilter turns the search text and filter parameters of q into a
// FilterSpec. Empty values are ignored.
func (p *Page) BuildFilter(q Query) (tableview.FilterSpec, error) {
	var conds []tableview.Condition
	if s := strings.TrimSpace(q.Search); s != "" {
		conds = append(conds, tableview.Search{Fields: p.SearchFields, Text: s})
	}
	params := make([]string, 0, len(q.Filters))
	for k := range q.Filters {
		params = append(params, k)
	}
	sort.Strings(params)
	for _, param := range params {
		value := strings.TrimSpace(q.Filters[param])
		if value == "" {
			continue
		}
		def, ok := p.Filter(param)
		if !ok {
			return tableview.FilterSpec{}, &UnknownFilterError{Page: p.Name, Param: param}
		}
		cond, err := def.condition(value)
		if err != nil {
			return tableview.FilterSpec{}, err
		}
		conds = append(conds, cond)
	}
	return tableview.Where(conds...), nil
}

// SortSpec parses expr (or the page default when expr is empty) and attaches
// the page's custom ranks.
func (p *Page) SortSpec(expr string) tableview.SortSpec {
	if strings.TrimSpace(expr) == "" {
		expr = p.DefaultSort
	}
	spec := tableview.ParseSort(expr)
	for field, rank := range p.Ranks {
		spec = spec.WithRank(field, rank)
	}
	return spec
}

// Query is the user's view state for a page: search text, filters, sort
// expression and a 1-based page number.
type Query struct {
	Search   string
	Filters  map[string]string
	Sort     string
	Page     int
	PageSize int
}

// FilterPrefix marks filter parameters in URL query strings ("f.status").
const FilterPrefix = "f."

// ParseQuery reads a Query from URL parameters: search, sort, page,
// page_size and f.<param>. Missing or out-of-range page numbers are left for
// the view to clamp; non-numeric ones are rejected.
func ParseQuery(v url.Values, defaultPageSize int) (Query, error) {
	q := Query{
		Search:   v.Get("search"),
		Sort:     v.Get("sort"),
		Page:     1,
		PageSize: defaultPageSize,
		Filters:  map[string]string{},
	}
	if s := v.Get("page"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return Query{}, fmt.Errorf("invalid page %q", s)
		}
		q.Page = n
	}
	if s := v.Get("page_size"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return Query{}, fmt.Errorf("invalid page_size %q", s)
		}
		q.PageSize = n
	}
	for key, vals := range v {
		if strings.HasPrefix(key, FilterPrefix) && len(vals) > 0 {
			q.Filters[strings.TrimPrefix(key, FilterPrefix)] = vals[0]
		}
	}
	return q, nil
}

// ParseFilterArgs parses repeated "key=value" CLI arguments.
func ParseFilterArgs(args []string) (map[string]string, error) {
	out := make(map[string]string, len(args))
	for _, a := range args {
		k, v, ok := strings.Cut(a, "=")
		k = strings.TrimSpace(k)
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid filter %q (want key=value)", a)
		}
		out[k] = strings.TrimSpace(v)
	}
	return out, nil
}

// Values encodes q as URL parameters, the inverse of ParseQuery.
func (q Query) Values() url.Values {
	v := url.Values{}
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	if q.Sort != "" {
		v.Set("sort", q.Sort)
	}
	if q.Page > 1 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.PageSize > 0 {
		v.Set("page_size", strconv.Itoa(q.PageSize))
	}
	for k, val := range q.Filters {
		if val != "" {
			v.Set(FilterPrefix+k, val)
		}
	}
	return v
}

// String returns the canonical encoded form of q.
func (q Query) String() string { return q.Values().Encode() }

func containsFold(list []string, s string) bool {
	for _, v := range list {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}
