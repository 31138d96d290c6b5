package tableview

import "sort"

// View holds a record collection together with the current filter, sort and
// page window. Every read is a pure function of that state. Misuse such as an
// out-of-range page or a zero page size is clamped, never reported.
//
// A View is not safe for concurrent use.
type View struct {
	source []Record
	filter FilterSpec
	sort   SortSpec
	window PageWindow

	subs    map[int]func(PageResult)
	nextSub int
}

// New creates an empty view with the given page size.
func New(pageSize int) *View {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	return &View{window: PageWindow{PageSize: pageSize}}
}

// SetSource replaces the backing collection. If the current page would be
// out of range after filtering, the page index resets to 0.
func (v *View) SetSource(records []Record) {
	v.source = append([]Record(nil), records...)
	pages := TotalPages(v.filteredCount(), v.window.PageSize)
	if v.window.PageIndex >= pages {
		v.window.PageIndex = 0
	}
	v.notify()
}

// SetFilter replaces the filter and returns to the first page.
func (v *View) SetFilter(f FilterSpec) {
	v.filter = f
	v.window.PageIndex = 0
	v.notify()
}

// SetSort replaces the sort order. The page index is preserved.
func (v *View) SetSort(s SortSpec) {
	v.sort = s
	v.notify()
}

// SetPage moves to index, clamped to the valid page range.
func (v *View) SetPage(index int) {
	pages := TotalPages(v.filteredCount(), v.window.PageSize)
	v.window.PageIndex = ClampPage(index, pages)
	v.notify()
}

// SetPageSize changes the page size (minimum 1) and returns to the first page.
func (v *View) SetPageSize(size int) {
	if size < 1 {
		size = 1
	}
	v.window.PageSize = size
	v.window.PageIndex = 0
	v.notify()
}

// Window returns the current page window.
func (v *View) Window() PageWindow { return v.window }

// Filter returns the current filter.
func (v *View) Filter() FilterSpec { return v.filter }

// Sort returns the current sort order.
func (v *View) Sort() SortSpec { return v.sort }

// Len returns the size of the unfiltered source collection.
func (v *View) Len() int { return len(v.source) }

// Filtered returns the full filtered and sorted collection, unpaged.
func (v *View) Filtered() []Record {
	return v.sort.Apply(v.filter.Apply(v.source))
}

// Page returns the current page: filter, then sort, then slice.
func (v *View) Page() PageResult {
	return Paginate(v.Filtered(), v.window)
}

// CountBy counts filtered records per display value of field. Records
// missing the field are counted under "".
func (v *View) CountBy(field string) map[string]int {
	counts := make(map[string]int)
	for _, r := range v.source {
		if v.filter.Match(r) {
			counts[r.String(field)]++
		}
	}
	return counts
}

// Count is one entry of SortedCounts.
type Count struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// SortedCounts returns CountBy(field) ordered by value, for stable output.
func (v *View) SortedCounts(field string) []Count {
	m := v.CountBy(field)
	out := make([]Count, 0, len(m))
	for k, n := range m {
		out = append(out, Count{Value: k, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Value < out[j].Value })
	return out
}

// Subscribe registers fn to receive the new page after every state change.
// Calling the returned function removes the subscription.
func (v *View) Subscribe(fn func(PageResult)) (cancel func()) {
	if v.subs == nil {
		v.subs = make(map[int]func(PageResult))
	}
	id := v.nextSub
	v.nextSub++
	v.subs[id] = fn
	return func() { delete(v.subs, id) }
}

func (v *View) notify() {
	if len(v.subs) == 0 {
		return
	}
	page := v.Page()
	ids := make([]int, 0, len(v.subs))
	for id := range v.subs {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		if fn, ok := v.subs[id]; ok {
			fn(page)
		}
	}
}

func (v *View) filteredCount() int {
	if v.filter.IsEmpty() {
		return len(v.source)
	}
	n := 0
	for _, r := range v.source {
		if v.filter.Match(r) {
			n++
		}
	}
	return n
}
