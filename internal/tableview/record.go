// Package tableview implements an in-memory tabular data view: a record
// collection with a composable filter, a stable multi-key sort and a page
// window, recomputed synchronously on every state change.
package tableview

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Record is one row of remote data keyed by field name. Nested objects are
// map[string]any and can be addressed with dotted field paths ("species.name").
type Record map[string]any

// Get returns the value at field, following dotted paths through nested
// records. The second result is false when any segment is missing.
func (r Record) Get(field string) (any, bool) {
	if r == nil {
		return nil, false
	}
	if v, ok := r[field]; ok {
		return v, true
	}
	head, rest, found := strings.Cut(field, ".")
	if !found {
		return nil, false
	}
	switch child := r[head].(type) {
	case Record:
		return child.Get(rest)
	case map[string]any:
		return Record(child).Get(rest)
	}
	return nil, false
}

// String returns the display form of field, or "" when it is absent.
func (r Record) String(field string) string {
	v, ok := r.Get(field)
	if !ok {
		return ""
	}
	return toString(v)
}

// Compare orders two field values. Numbers compare numerically, times and
// date strings chronologically, and everything else as case-insensitive
// strings. nil sorts before any non-nil value.
func Compare(a, b any) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}
	if fa, ok := toFloat(a); ok {
		if fb, ok := toFloat(b); ok {
			return cmpOrdered(fa, fb)
		}
	}
	if ta, ok := toTime(a); ok {
		if tb, ok := toTime(b); ok {
			return ta.Compare(tb)
		}
	}
	return strings.Compare(strings.ToLower(toString(a)), strings.ToLower(toString(b)))
}

func cmpOrdered(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	case string:
		// "NaN" and "Inf" are names here, not numbers.
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

// dateLayouts are tried in order when a string value is compared as a time.
var dateLayouts = []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"}

func toTime(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, true
	case *time.Time:
		if t == nil {
			return time.Time{}, false
		}
		return *t, true
	case string:
		s := strings.TrimSpace(t)
		for _, layout := range dateLayouts {
			if parsed, err := time.Parse(layout, s); err == nil {
				return parsed, true
			}
		}
	}
	return time.Time{}, false
}

func toString(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case fmt.Stringer:
		return s.String()
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case time.Time:
		return s.Format(time.RFC3339)
	}
	return fmt.Sprint(v)
}
