package tableview

import (
	"fmt"
	"math"
	"reflect"
	"testing"
)

func numbered(n int) []Record {
	out := make([]Record, n)
	for i := range out {
		status := "PENDING"
		if i%3 == 0 {
			status = "APPROVED"
		}
		out[i] = Record{"id": i + 1, "name": fmt.Sprintf("Pet %02d", i+1), "status": status}
	}
	return out
}

func ids(items []Record) []int {
	out := make([]int, len(items))
	for i, r := range items {
		out[i] = r["id"].(int)
	}
	return out
}

func TestView_TwentyFiveRecordsThreePages(t *testing.T) {
	v := New(10)
	v.SetSource(numbered(25))

	page := v.Page()
	if page.TotalPagesCount != 3 {
		t.Fatalf("TotalPagesCount = %d, want 3", page.TotalPagesCount)
	}
	if page.TotalItemsCount != 25 {
		t.Errorf("TotalItemsCount = %d, want 25", page.TotalItemsCount)
	}

	v.SetPage(2)
	page = v.Page()
	if len(page.Items) != 5 {
		t.Errorf("len(Items) = %d, want 5", len(page.Items))
	}
	if page.HasNext {
		t.Error("HasNext = true, want false")
	}
	if !page.HasPrevious {
		t.Error("HasPrevious = false, want true")
	}
	if got := ids(page.Items); !reflect.DeepEqual(got, []int{21, 22, 23, 24, 25}) {
		t.Errorf("ids = %v", got)
	}
}

func TestView_FilterExcludesEverything(t *testing.T) {
	v := New(10)
	v.SetSource(numbered(12))
	v.SetFilter(Where(Equals{Field: "status", Value: "REJECTED"}))

	page := v.Page()
	if page.Items == nil || len(page.Items) != 0 {
		t.Errorf("Items = %#v, want empty non-nil slice", page.Items)
	}
	if page.TotalItemsCount != 0 {
		t.Errorf("TotalItemsCount = %d, want 0", page.TotalItemsCount)
	}
	if page.TotalPagesCount != 0 {
		t.Errorf("TotalPagesCount = %d, want 0", page.TotalPagesCount)
	}
	if page.HasNext || page.HasPrevious {
		t.Errorf("HasNext=%v HasPrevious=%v, want both false", page.HasNext, page.HasPrevious)
	}
}

func TestView_SumOfPagesEqualsFilteredCount(t *testing.T) {
	filters := []FilterSpec{
		{},
		Where(Equals{Field: "status", Value: "approved"}),
		Where(Contains{Field: "name", Substr: "1"}),
		Where(Equals{Field: "status", Value: "none"}),
	}
	for _, n := range []int{0, 1, 9, 10, 11, 37} {
		for _, size := range []int{1, 3, 10, 50} {
			for fi, f := range filters {
				v := New(size)
				v.SetSource(numbered(n))
				v.SetFilter(f)
				want := len(f.Apply(numbered(n)))

				first := v.Page()
				sum := 0
				for p := 0; p < first.TotalPagesCount; p++ {
					v.SetPage(p)
					page := v.Page()
					if len(page.Items) > size {
						t.Fatalf("n=%d size=%d filter=%d: page %d has %d items", n, size, fi, p, len(page.Items))
					}
					sum += len(page.Items)
				}
				if sum != want {
					t.Errorf("n=%d size=%d filter=%d: sum of pages = %d, want %d", n, size, fi, sum, want)
				}
			}
		}
	}
}

func TestView_FilterIdempotent(t *testing.T) {
	f := Where(Contains{Field: "name", Substr: "pet 1"})

	once := New(4)
	once.SetSource(numbered(30))
	once.SetFilter(f)

	twice := New(4)
	twice.SetSource(f.Apply(numbered(30)))
	twice.SetFilter(f)

	if !reflect.DeepEqual(once.Page(), twice.Page()) {
		t.Errorf("applying filter twice changed the result:\n once=%+v\ntwice=%+v", once.Page(), twice.Page())
	}
}

func TestView_SetPageClamps(t *testing.T) {
	v := New(10)
	v.SetSource(numbered(25))

	for _, tc := range []struct {
		index int
		want  int
	}{
		{-5, 0},
		{0, 0},
		{2, 2},
		{3, 2},
		{100, 2},
	} {
		v.SetPage(tc.index)
		if got := v.Page().PageIndex; got != tc.want {
			t.Errorf("SetPage(%d): PageIndex = %d, want %d", tc.index, got, tc.want)
		}
	}

	empty := New(10)
	empty.SetPage(4)
	if got := empty.Page().PageIndex; got != 0 {
		t.Errorf("SetPage on empty view: PageIndex = %d, want 0", got)
	}
}

func TestView_SetPageSize(t *testing.T) {
	v := New(10)
	v.SetSource(numbered(25))
	v.SetPage(2)

	v.SetPageSize(7)
	page := v.Page()
	if page.PageIndex != 0 {
		t.Errorf("PageIndex = %d after SetPageSize, want 0", page.PageIndex)
	}
	if len(page.Items) != 7 {
		t.Errorf("len(Items) = %d, want 7", len(page.Items))
	}
	if page.TotalPagesCount != 4 {
		t.Errorf("TotalPagesCount = %d, want 4", page.TotalPagesCount)
	}

	for _, size := range []int{0, -3} {
		v.SetPageSize(size)
		if got := v.Window().PageSize; got != 1 {
			t.Errorf("SetPageSize(%d): PageSize = %d, want 1", size, got)
		}
		if n := len(v.Page().Items); n > 1 {
			t.Errorf("SetPageSize(%d): %d items on page", size, n)
		}
	}
}

func TestView_SetFilterResetsPage(t *testing.T) {
	v := New(5)
	v.SetSource(numbered(25))
	v.SetPage(3)
	v.SetFilter(Where(Equals{Field: "status", Value: "PENDING"}))
	if got := v.Window().PageIndex; got != 0 {
		t.Errorf("PageIndex = %d after SetFilter, want 0", got)
	}
}

func TestView_SetSortPreservesPage(t *testing.T) {
	v := New(5)
	v.SetSource(numbered(25))
	v.SetPage(3)
	v.SetSort(ParseSort("-id"))
	page := v.Page()
	if page.PageIndex != 3 {
		t.Errorf("PageIndex = %d after SetSort, want 3", page.PageIndex)
	}
	if got := ids(page.Items); !reflect.DeepEqual(got, []int{10, 9, 8, 7, 6}) {
		t.Errorf("ids = %v, want [10 9 8 7 6]", got)
	}
}

func TestView_SetSourceResetsOutOfRangePage(t *testing.T) {
	v := New(10)
	v.SetSource(numbered(25))
	v.SetPage(2)

	v.SetSource(numbered(40))
	if got := v.Window().PageIndex; got != 2 {
		t.Errorf("PageIndex = %d after growing source, want 2", got)
	}

	v.SetSource(numbered(8))
	if got := v.Window().PageIndex; got != 0 {
		t.Errorf("PageIndex = %d after shrinking source, want 0", got)
	}
}

func TestView_SetSourceCopiesInput(t *testing.T) {
	src := numbered(3)
	v := New(10)
	v.SetSource(src)
	src[0] = Record{"id": 99}
	if got := v.Page().Items[0]["id"]; got != 1 {
		t.Errorf("first id = %v, want 1", got)
	}
}

func TestView_PageIsPure(t *testing.T) {
	v := New(3)
	v.SetSource(numbered(10))
	v.SetSort(ParseSort("-name"))
	v.SetPage(1)
	a := v.Page()
	b := v.Page()
	if !reflect.DeepEqual(a, b) {
		t.Error("consecutive Page() calls differ")
	}
	if v.Window().PageIndex != 1 {
		t.Errorf("Page() changed the window: %+v", v.Window())
	}
}

func TestView_CountByUsesFilteredNotPaged(t *testing.T) {
	v := New(2)
	v.SetSource(numbered(9))
	v.SetFilter(Where(Range{Field: "id", Min: 4}))

	counts := v.CountBy("status")
	// ids 4..9: 4 and 7 are APPROVED, the rest PENDING.
	if counts["APPROVED"] != 2 || counts["PENDING"] != 4 {
		t.Errorf("counts = %v, want APPROVED=2 PENDING=4", counts)
	}

	sorted := v.SortedCounts("status")
	want := []Count{{Value: "APPROVED", Count: 2}, {Value: "PENDING", Count: 4}}
	if !reflect.DeepEqual(sorted, want) {
		t.Errorf("SortedCounts = %v, want %v", sorted, want)
	}
}

func TestView_Subscribe(t *testing.T) {
	v := New(10)
	var got []int
	cancel := v.Subscribe(func(p PageResult) {
		got = append(got, p.TotalItemsCount)
	})

	v.SetSource(numbered(25))
	v.SetFilter(Where(Equals{Field: "status", Value: "APPROVED"}))
	cancel()
	v.SetFilter(FilterSpec{})

	if !reflect.DeepEqual(got, []int{25, 9}) {
		t.Errorf("notifications = %v, want [25 9]", got)
	}
}

func TestNew_DefaultPageSize(t *testing.T) {
	if got := New(0).Window().PageSize; got != DefaultPageSize {
		t.Errorf("PageSize = %d, want %d", got, DefaultPageSize)
	}
}

func TestView_HugePageSize(t *testing.T) {
	v := New(10)
	v.SetSource(numbered(25))
	v.SetPageSize(math.MaxInt)

	got := v.Page()
	if len(got.Items) != 25 || got.TotalItemsCount != 25 {
		t.Fatalf("items = %d, total = %d, want 25/25", len(got.Items), got.TotalItemsCount)
	}
	if got.TotalPagesCount != 1 {
		t.Errorf("TotalPagesCount = %d, want 1", got.TotalPagesCount)
	}
	if got.HasNext || got.HasPrevious {
		t.Errorf("HasNext/HasPrevious = %v/%v, want false/false", got.HasNext, got.HasPrevious)
	}
}
