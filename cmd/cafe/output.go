package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"unicode/utf8"

	"github.com/alfredjeanlab/cafedash/internal/client"
	"github.com/alfredjeanlab/cafedash/internal/pages"
	"github.com/alfredjeanlab/cafedash/internal/tableview"
	"github.com/alfredjeanlab/cafedash/internal/ui"
)

// describeError returns the user-facing text for err. Remote and validation
// failures are localized; local errors keep their own message.
func describeError(err error) string {
	if msg := client.Localize(err); msg != client.MsgUnknown {
		return msg
	}
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		return client.MsgUnknown
	}
	return err.Error()
}

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

// truncate shortens s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	if n <= 0 || utf8.RuneCountInString(s) <= n {
		return s
	}
	if n <= 3 {
		return string([]rune(s)[:n])
	}
	return string([]rune(s)[:n-3]) + "..."
}

// printPageTable writes res as an aligned table using the page's columns.
// Widths are measured before coloring so escape codes do not skew them.
func printPageTable(w io.Writer, p *pages.Page, res tableview.PageResult) {
	cols := p.Columns
	cells := make([][]string, len(res.Items))
	widths := make([]int, len(cols))
	for i, c := range cols {
		widths[i] = utf8.RuneCountInString(c.Title)
	}
	for r, rec := range res.Items {
		row := make([]string, len(cols))
		for i, c := range cols {
			row[i] = truncate(strings.ReplaceAll(rec.String(c.Field), "\n", " "), c.Width)
			widths[i] = max(widths[i], utf8.RuneCountInString(row[i]))
		}
		cells[r] = row
	}

	line := func(values []string, style func(i int, s string) string) {
		var b strings.Builder
		for i, v := range values {
			pad := ""
			if i < len(values)-1 {
				pad = strings.Repeat(" ", widths[i]-utf8.RuneCountInString(v)+2)
			}
			b.WriteString(style(i, v))
			b.WriteString(pad)
		}
		fmt.Fprintln(w, strings.TrimRight(b.String(), " "))
	}

	titles := make([]string, len(cols))
	for i, c := range cols {
		titles[i] = c.Title
	}
	line(titles, func(_ int, s string) string { return ui.RenderHeader(s) })
	for _, row := range cells {
		line(row, func(i int, s string) string {
			if cols[i].Status {
				return ui.RenderStatus(s)
			}
			return s
		})
	}
	if len(res.Items) == 0 {
		fmt.Fprintln(w, ui.RenderMuted("(no matching records)"))
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, ui.RenderMuted(pageFooter(res)))
}

// pageFooter renders "page 2/3 · 25 items". An empty result reads
// "page 0/0 · 0 items".
func pageFooter(res tableview.PageResult) string {
	current := res.PageIndex + 1
	if res.TotalPagesCount == 0 {
		current = 0
	}
	noun := "items"
	if res.TotalItemsCount == 1 {
		noun = "item"
	}
	return fmt.Sprintf("page %d/%d · %d %s", current, res.TotalPagesCount, res.TotalItemsCount, noun)
}

// printCounts writes counter tallies and their total.
func printCounts(w io.Writer, field string, counts []tableview.Count) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "%s\tCOUNT\n", strings.ToUpper(field))
	total := 0
	for _, c := range counts {
		v := c.Value
		if v == "" {
			v = "(none)"
		}
		fmt.Fprintf(tw, "%s\t%d\n", v, c.Count)
		total += c.Count
	}
	fmt.Fprintf(tw, "total\t%d\n", total)
	return tw.Flush()
}
