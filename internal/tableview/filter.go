package tableview

import "strings"

// Condition is a single field-level predicate over a record.
type Condition interface {
	Match(r Record) bool
}

// FilterSpec is the conjunction of its conditions. An empty FilterSpec
// matches every record.
type FilterSpec struct {
	Conditions []Condition
}

// Where builds a FilterSpec from conditions, skipping nil entries.
func Where(conds ...Condition) FilterSpec {
	var f FilterSpec
	for _, c := range conds {
		if c != nil {
			f.Conditions = append(f.Conditions, c)
		}
	}
	return f
}

// And returns a copy of f with the extra conditions appended.
func (f FilterSpec) And(conds ...Condition) FilterSpec {
	out := FilterSpec{Conditions: append([]Condition(nil), f.Conditions...)}
	for _, c := range conds {
		if c != nil {
			out.Conditions = append(out.Conditions, c)
		}
	}
	return out
}

// IsEmpty reports whether f has no conditions.
func (f FilterSpec) IsEmpty() bool { return len(f.Conditions) == 0 }

// Match reports whether r satisfies every condition in f.
func (f FilterSpec) Match(r Record) bool {
	for _, c := range f.Conditions {
		if !c.Match(r) {
			return false
		}
	}
	return true
}

// Apply returns the records matching f in their original order. The input
// slice is not modified.
func (f FilterSpec) Apply(records []Record) []Record {
	out := make([]Record, 0, len(records))
	for _, r := range records {
		if f.Match(r) {
			out = append(out, r)
		}
	}
	return out
}

// Equals matches records whose field compares equal to Value. String
// comparison is case-insensitive, as it is for dropdown selections.
type Equals struct {
	Field string
	Value any
}

func (c Equals) Match(r Record) bool {
	v, ok := r.Get(c.Field)
	if !ok {
		return c.Value == nil
	}
	return Compare(v, c.Value) == 0
}

// OneOf matches records whose field equals any of Values. An empty Values
// list matches everything.
type OneOf struct {
	Field  string
	Values []any
}

func (c OneOf) Match(r Record) bool {
	if len(c.Values) == 0 {
		return true
	}
	v, _ := r.Get(c.Field)
	for _, want := range c.Values {
		if Compare(v, want) == 0 {
			return true
		}
	}
	return false
}

// Contains matches records whose field contains Substr, ignoring case.
type Contains struct {
	Field  string
	Substr string
}

func (c Contains) Match(r Record) bool {
	needle := strings.ToLower(strings.TrimSpace(c.Substr))
	if needle == "" {
		return true
	}
	return strings.Contains(strings.ToLower(r.String(c.Field)), needle)
}

// Search matches records where any of Fields contains Text, ignoring case.
// It backs the free-text search box on list pages.
type Search struct {
	Fields []string
	Text   string
}

func (c Search) Match(r Record) bool {
	needle := strings.ToLower(strings.TrimSpace(c.Text))
	if needle == "" {
		return true
	}
	for _, f := range c.Fields {
		if strings.Contains(strings.ToLower(r.String(f)), needle) {
			return true
		}
	}
	return false
}

// Range matches records whose field lies within [Min, Max]. A nil bound is
// open. Numeric and date values are both supported through Compare. A record
// without the field never matches a bounded range.
type Range struct {
	Field string
	Min   any
	Max   any
}

func (c Range) Match(r Record) bool {
	if c.Min == nil && c.Max == nil {
		return true
	}
	v, ok := r.Get(c.Field)
	if !ok || v == nil {
		return false
	}
	if c.Min != nil && Compare(v, c.Min) < 0 {
		return false
	}
	if c.Max != nil && Compare(v, c.Max) > 0 {
		return false
	}
	return true
}

// Func adapts an arbitrary predicate to a Condition.
type Func func(r Record) bool

func (f Func) Match(r Record) bool { return f(r) }
