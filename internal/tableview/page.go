package tableview

// DefaultPageSize is used when a view is created with a non-positive size.
const DefaultPageSize = 10

// PageWindow is the requested slice of the filtered, sorted collection.
type PageWindow struct {
	PageIndex int `json:"page_index"`
	PageSize  int `json:"page_size"`
}

// PageResult is one materialized page plus pagination metadata.
type PageResult struct {
	Items           []Record `json:"items"`
	TotalItemsCount int      `json:"total_items_count"`
	TotalPagesCount int      `json:"total_pages_count"`
	PageIndex       int      `json:"page_index"`
	PageSize        int      `json:"page_size"`
	HasNext         bool     `json:"has_next"`
	HasPrevious     bool     `json:"has_previous"`
}

// TotalPages returns ceil(total/size), or 0 when total is 0.
func TotalPages(total, size int) int {
	if size < 1 {
		size = 1
	}
	if total <= 0 {
		return 0
	}
	return (total-1)/size + 1
}

// ClampPage limits index to [0, totalPages-1], or 0 when there are no pages.
func ClampPage(index, totalPages int) int {
	if index >= totalPages {
		index = totalPages - 1
	}
	if index < 0 {
		index = 0
	}
	return index
}

// Paginate slices records according to w. The window is clamped first, so
// an out-of-range index yields the nearest valid page rather than nothing.
func Paginate(records []Record, w PageWindow) PageResult {
	if w.PageSize < 1 {
		w.PageSize = 1
	}
	total := len(records)
	pages := TotalPages(total, w.PageSize)
	w.PageIndex = ClampPage(w.PageIndex, pages)

	start := w.PageIndex * w.PageSize
	end := total
	if w.PageSize < total-start {
		end = start + w.PageSize
	}
	items := []Record{}
	if start < end {
		items = append(items, records[start:end]...)
	}
	return PageResult{
		Items:           items,
		TotalItemsCount: total,
		TotalPagesCount: pages,
		PageIndex:       w.PageIndex,
		PageSize:        w.PageSize,
		HasNext:         w.PageIndex+1 < pages,
		HasPrevious:     w.PageIndex > 0,
	}
}
