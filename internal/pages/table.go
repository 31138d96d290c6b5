package pages

import (
	"context"
	"fmt"
	"time"

	"github.com/alfredjeanlab/cafedash/internal/client"
	"github.com/alfredjeanlab/cafedash/internal/export"
	"github.com/alfredjeanlab/cafedash/internal/tableview"
)

// Table is an opened page: the fetched records held in a tableview.View
// configured from a Query.
type Table struct {
	Page  *Page
	Query Query
	View  *tableview.View

	client   client.CafeClient
	maxPages int
}

// Open fetches the page's records and builds a view with q's filter, sort,
// page size and page number applied. Out-of-range page numbers are clamped.
func Open(ctx context.Context, c client.CafeClient, p *Page, q Query, maxPages int) (*Table, error) {
	filter, err := p.BuildFilter(q)
	if err != nil {
		return nil, err
	}
	records, err := p.Fetch(ctx, c, maxPages)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", p.Name, err)
	}

	v := tableview.New(q.PageSize)
	v.SetSource(records)
	v.SetFilter(filter)
	v.SetSort(p.SortSpec(q.Sort))
	v.SetPage(q.Page - 1)

	return &Table{Page: p, Query: q, View: v, client: c, maxPages: maxPages}, nil
}

// Refresh re-fetches the records into the existing view. Filter, sort and
// page stay as they are unless the page no longer exists.
func (t *Table) Refresh(ctx context.Context) error {
	records, err := t.Page.Fetch(ctx, t.client, t.maxPages)
	if err != nil {
		return fmt.Errorf("refreshing %s: %w", t.Page.Name, err)
	}
	t.View.SetSource(records)
	return nil
}

// Result returns the current page of records.
func (t *Table) Result() tableview.PageResult { return t.View.Page() }

// Counts returns the counter-field tally over the filtered records, or nil
// when the page has no counter.
func (t *Table) Counts() []tableview.Count {
	if t.Page.CounterField == "" {
		return nil
	}
	return t.View.SortedCounts(t.Page.CounterField)
}

// Snapshot captures every filtered, sorted record (not just the current
// page) for export.
func (t *Table) Snapshot(id string, at time.Time) *export.Snapshot {
	q := t.Query
	q.Page, q.PageSize = 0, 0
	return &export.Snapshot{
		ID:      id,
		Page:    t.Page.Name,
		Query:   q.String(),
		Records: t.View.Filtered(),
		TakenAt: at,
	}
}
