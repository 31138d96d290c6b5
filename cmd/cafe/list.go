package main

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/alfredjeanlab/cafedash/internal/model"
	"github.com/alfredjeanlab/cafedash/internal/pages"
)

// addQueryFlags registers the view-state flags shared by the page commands.
func addQueryFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("search", "q", "", "free-text search")
	cmd.Flags().StringArrayP("filter", "f", nil, "filter as key=value (repeatable, see 'cafe list <page> --help')")
	cmd.Flags().StringP("sort", "s", "", "sort keys, e.g. \"-start_date,employee_name\" (default: page order)")
	cmd.Flags().IntP("page", "p", 1, "page number (1-based, clamped to the last page)")
	cmd.Flags().Int("page-size", 0, "rows per page (default from CAFE_PAGE_SIZE)")
}

func queryFromFlags(cmd *cobra.Command) (pages.Query, error) {
	q := pages.Query{}
	q.Search, _ = cmd.Flags().GetString("search")
	q.Sort, _ = cmd.Flags().GetString("sort")
	q.Page, _ = cmd.Flags().GetInt("page")
	q.PageSize, _ = cmd.Flags().GetInt("page-size")
	if q.PageSize == 0 {
		q.PageSize = cfg.PageSize
	}
	raw, _ := cmd.Flags().GetStringArray("filter")
	filters, err := pages.ParseFilterArgs(raw)
	if err != nil {
		return q, err
	}
	q.Filters = filters
	return q, nil
}

// lookupPage resolves name and checks the signed-in role may open it.
func lookupPage(name string) (*pages.Page, error) {
	p, ok := pages.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("unknown page %q (one of: %s)", name, strings.Join(pages.Names(), ", "))
	}
	if !p.Allowed(model.Role(sess.Role)) {
		return nil, fmt.Errorf("page %q requires one of the roles %v", name, p.Roles)
	}
	return p, nil
}

func openPage(ctx context.Context, cmd *cobra.Command, name string) (*pages.Table, error) {
	p, err := lookupPage(name)
	if err != nil {
		return nil, err
	}
	q, err := queryFromFlags(cmd)
	if err != nil {
		return nil, err
	}
	return pages.Open(ctx, cafeClient, p, q, cfg.MaxPages)
}

func pageHelp() string {
	var b strings.Builder
	b.WriteString("Pages and their filters:\n")
	for _, p := range pages.All() {
		params := make([]string, len(p.Filters))
		for i, f := range p.Filters {
			params[i] = f.Param
		}
		fmt.Fprintf(&b, "  %-18s %s\n", p.Name, strings.Join(params, ", "))
	}
	return b.String()
}

var listCmd = &cobra.Command{
	Use:     "list <page>",
	Short:   "Show one page of a list view",
	GroupID: "pages",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tbl, err := openPage(context.Background(), cmd, args[0])
		if err != nil {
			return err
		}
		res := tbl.Result()
		if jsonOutput {
			return printJSON(res)
		}
		printPageTable(os.Stdout, tbl.Page, res)
		return nil
	},
}

var statusCmd = &cobra.Command{
	Use:     "status [page]",
	Short:   "Show counter totals for one page, or a summary of every page",
	GroupID: "pages",
	Args:    cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 1 {
			tbl, err := openPage(context.Background(), cmd, args[0])
			if err != nil {
				return err
			}
			counts := tbl.Counts()
			if jsonOutput {
				return printJSON(counts)
			}
			return printCounts(os.Stdout, tbl.Page.CounterField, counts)
		}
		return printSummary(context.Background())
	},
}

type pageSummary struct {
	Page   string         `json:"page"`
	Total  int            `json:"total"`
	Counts map[string]int `json:"counts,omitempty"`
	Error  string         `json:"error,omitempty"`
}

// printSummary loads every page the user may open concurrently and prints
// one line per page.
func printSummary(ctx context.Context) error {
	var visible []*pages.Page
	for _, p := range pages.All() {
		if p.Allowed(model.Role(sess.Role)) {
			visible = append(visible, p)
		}
	}

	summaries := make([]pageSummary, len(visible))
	var wg sync.WaitGroup
	for i, p := range visible {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s := pageSummary{Page: p.Name}
			tbl, err := pages.Open(ctx, cafeClient, p, pages.Query{Page: 1, PageSize: cfg.PageSize}, cfg.MaxPages)
			if err != nil {
				s.Error = describeError(err)
			} else {
				s.Total = tbl.Result().TotalItemsCount
				if p.CounterField != "" {
					s.Counts = tbl.View.CountBy(p.CounterField)
				}
			}
			summaries[i] = s
		}()
	}
	wg.Wait()

	if jsonOutput {
		return printJSON(summaries)
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PAGE\tTOTAL\tBREAKDOWN")
	for _, s := range summaries {
		if s.Error != "" {
			fmt.Fprintf(w, "%s\t-\t%s\n", s.Page, s.Error)
			continue
		}
		fmt.Fprintf(w, "%s\t%d\t%s\n", s.Page, s.Total, breakdown(s.Counts))
	}
	return w.Flush()
}

// breakdown renders counts as "A=2 B=1", ordered by value.
func breakdown(counts map[string]int) string {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		label := k
		if label == "" {
			label = "(none)"
		}
		parts[i] = fmt.Sprintf("%s=%d", label, counts[k])
	}
	return strings.Join(parts, " ")
}

func init() {
	addQueryFlags(listCmd)
	listCmd.Long = "Show one page of a list view.\n\n" + pageHelp()
	addQueryFlags(statusCmd)
}
