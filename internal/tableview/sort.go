package tableview

import (
	"sort"
	"strings"
)

// Direction is a sort direction.
type Direction int

const (
	Asc Direction = iota
	Desc
)

func (d Direction) String() string {
	if d == Desc {
		return "desc"
	}
	return "asc"
}

// SortKey orders records by one field. When Rank is set, values are compared
// by their rank instead of their natural order (e.g. weekday order).
type SortKey struct {
	Field     string
	Direction Direction
	Rank      func(v any) int
}

// SortSpec orders records by its keys in sequence. An empty SortSpec keeps
// the source order.
type SortSpec struct {
	Keys []SortKey
}

// SortBy builds a SortSpec from keys.
func SortBy(keys ...SortKey) SortSpec { return SortSpec{Keys: keys} }

// IsEmpty reports whether s has no keys.
func (s SortSpec) IsEmpty() bool { return len(s.Keys) == 0 }

// ParseSort parses a comma-separated key list such as "day,-start_time".
// A leading "-" means descending.
func ParseSort(expr string) SortSpec {
	var s SortSpec
	for _, part := range strings.Split(expr, ",") {
		part = strings.TrimSpace(part)
		if part == "" || part == "-" {
			continue
		}
		key := SortKey{Field: part}
		if strings.HasPrefix(part, "-") {
			key.Field = part[1:]
			key.Direction = Desc
		}
		s.Keys = append(s.Keys, key)
	}
	return s
}

// String renders s back into ParseSort syntax.
func (s SortSpec) String() string {
	parts := make([]string, len(s.Keys))
	for i, k := range s.Keys {
		if k.Direction == Desc {
			parts[i] = "-" + k.Field
		} else {
			parts[i] = k.Field
		}
	}
	return strings.Join(parts, ",")
}

// WithRank attaches rank to every key on field.
func (s SortSpec) WithRank(field string, rank func(any) int) SortSpec {
	out := SortSpec{Keys: append([]SortKey(nil), s.Keys...)}
	for i := range out.Keys {
		if out.Keys[i].Field == field {
			out.Keys[i].Rank = rank
		}
	}
	return out
}

func (s SortSpec) compare(a, b Record) int {
	for _, k := range s.Keys {
		av, _ := a.Get(k.Field)
		bv, _ := b.Get(k.Field)
		var c int
		if k.Rank != nil {
			c = cmpInt(k.Rank(av), k.Rank(bv))
		} else {
			c = Compare(av, bv)
		}
		if c == 0 {
			continue
		}
		if k.Direction == Desc {
			return -c
		}
		return c
	}
	return 0
}

// Apply returns a stably sorted copy of records. Records with equal keys
// keep their relative source order.
func (s SortSpec) Apply(records []Record) []Record {
	out := append([]Record(nil), records...)
	if s.IsEmpty() {
		return out
	}
	sort.SliceStable(out, func(i, j int) bool {
		return s.compare(out[i], out[j]) < 0
	})
	return out
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
