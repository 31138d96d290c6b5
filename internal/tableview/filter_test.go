package tableview

import (
	"testing"
	"time"
)

func TestConditions(t *testing.T) {
	rec := Record{
		"name":       "Golden Retriever",
		"age":        3,
		"weight":     "12.5",
		"status":     "APPROVED",
		"start_date": "2025-03-10",
		"species":    map[string]any{"id": 1, "name": "Dog"},
	}

	for _, tc := range []struct {
		name string
		cond Condition
		want bool
	}{
		{"EqualsString", Equals{Field: "status", Value: "APPROVED"}, true},
		{"EqualsIgnoresCase", Equals{Field: "status", Value: "approved"}, true},
		{"EqualsNumber", Equals{Field: "age", Value: 3.0}, true},
		{"EqualsNumericString", Equals{Field: "age", Value: "3"}, true},
		{"EqualsMismatch", Equals{Field: "status", Value: "PENDING"}, false},
		{"EqualsMissingField", Equals{Field: "nope", Value: "x"}, false},
		{"EqualsMissingFieldNil", Equals{Field: "nope", Value: nil}, true},
		{"EqualsNested", Equals{Field: "species.name", Value: "dog"}, true},
		{"OneOfHit", OneOf{Field: "status", Values: []any{"PENDING", "APPROVED"}}, true},
		{"OneOfMiss", OneOf{Field: "status", Values: []any{"PENDING"}}, false},
		{"OneOfEmpty", OneOf{Field: "status"}, true},
		{"ContainsCaseInsensitive", Contains{Field: "name", Substr: "RETRIEVER"}, true},
		{"ContainsMiss", Contains{Field: "name", Substr: "poodle"}, false},
		{"ContainsBlank", Contains{Field: "name", Substr: "  "}, true},
		{"SearchAnyField", Search{Fields: []string{"status", "species.name"}, Text: "do"}, true},
		{"SearchMiss", Search{Fields: []string{"status"}, Text: "do"}, false},
		{"RangeNumeric", Range{Field: "age", Min: 1, Max: 5}, true},
		{"RangeNumericString", Range{Field: "weight", Min: 10, Max: 13}, true},
		{"RangeBelow", Range{Field: "age", Min: 4}, false},
		{"RangeAbove", Range{Field: "age", Max: 2}, false},
		{"RangeInclusive", Range{Field: "age", Min: 3, Max: 3}, true},
		{"RangeOpen", Range{Field: "missing"}, true},
		{"RangeMissingField", Range{Field: "missing", Min: 1}, false},
		{"RangeDate", Range{Field: "start_date", Min: "2025-03-01", Max: time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)}, true},
		{"RangeDateOutside", Range{Field: "start_date", Min: "2025-04-01"}, false},
		{"Func", Func(func(r Record) bool { return r.String("name") != "" }), true},
	} {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.cond.Match(rec); got != tc.want {
				t.Errorf("Match() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestFilterSpec_Empty(t *testing.T) {
	var f FilterSpec
	if !f.IsEmpty() {
		t.Error("zero FilterSpec is not empty")
	}
	for _, r := range []Record{nil, {}, {"a": 1}} {
		if !f.Match(r) {
			t.Errorf("empty FilterSpec rejected %v", r)
		}
	}
}

func TestFilterSpec_AndIsConjunction(t *testing.T) {
	f := Where(Equals{Field: "status", Value: "PENDING"}, nil)
	if len(f.Conditions) != 1 {
		t.Fatalf("Where kept nil condition: %d conditions", len(f.Conditions))
	}
	g := f.And(Range{Field: "age", Min: 2})
	if len(f.Conditions) != 1 {
		t.Error("And modified the receiver")
	}

	for _, tc := range []struct {
		rec  Record
		want bool
	}{
		{Record{"status": "PENDING", "age": 5}, true},
		{Record{"status": "PENDING", "age": 1}, false},
		{Record{"status": "APPROVED", "age": 5}, false},
	} {
		if got := g.Match(tc.rec); got != tc.want {
			t.Errorf("Match(%v) = %v, want %v", tc.rec, got, tc.want)
		}
	}
}

func TestFilterSpec_ApplyKeepsOrder(t *testing.T) {
	src := []Record{{"id": 3, "k": "a"}, {"id": 1, "k": "b"}, {"id": 2, "k": "a"}}
	got := Where(Equals{Field: "k", Value: "a"}).Apply(src)
	if len(got) != 2 || got[0]["id"] != 3 || got[1]["id"] != 2 {
		t.Errorf("Apply = %v", got)
	}
}

func TestCompare(t *testing.T) {
	for _, tc := range []struct {
		a, b any
		want int
	}{
		{nil, nil, 0},
		{nil, 1, -1},
		{1, nil, 1},
		{2, 10, -1},
		{"2", "10", -1},
		{int64(5), 5.0, 0},
		{"apple", "Banana", -1},
		{"08:00", "10:00", -1},
		{"2025-01-02", "2024-12-31", 1},
		{"2025-01-02T10:00:00Z", "2025-01-02T09:00:00Z", 1},
		{"Nan", "Infinity", 1},
		{"Infinity", "Max", -1},
		{"Max", "Nan", -1},
		{"inf", "Inf", 0},
	} {
		if got := Compare(tc.a, tc.b); got != tc.want {
			t.Errorf("Compare(%v, %v) = %d, want %d", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestRecord_Get(t *testing.T) {
	r := Record{
		"a":   1,
		"b.c": "literal",
		"n":   Record{"x": map[string]any{"y": "deep"}},
	}
	for _, tc := range []struct {
		field  string
		want   any
		wantOK bool
	}{
		{"a", 1, true},
		{"b.c", "literal", true},
		{"n.x.y", "deep", true},
		{"n.z", nil, false},
		{"a.b", nil, false},
		{"missing", nil, false},
	} {
		got, ok := r.Get(tc.field)
		if ok != tc.wantOK || got != tc.want {
			t.Errorf("Get(%q) = (%v, %v), want (%v, %v)", tc.field, got, ok, tc.want, tc.wantOK)
		}
	}
}
