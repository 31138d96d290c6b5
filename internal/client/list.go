package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
)

// DefaultFetchLimit is the page size FetchAll asks the server for.
const DefaultFetchLimit = 100

// ListOptions are the server-side list parameters. Filters are passed
// through as query parameters verbatim.
type ListOptions struct {
	Page    int // 1-based; 0 omits the parameter
	Limit   int
	Search  string
	Filters map[string]string
}

func (o ListOptions) values() url.Values {
	q := url.Values{}
	if o.Page > 0 {
		q.Set("page", strconv.Itoa(o.Page))
	}
	if o.Limit > 0 {
		q.Set("limit", strconv.Itoa(o.Limit))
	}
	if o.Search != "" {
		q.Set("search", o.Search)
	}
	for k, v := range o.Filters {
		if v != "" {
			q.Set(k, v)
		}
	}
	return q
}

// Pagination is the paging block some list endpoints return next to data.
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// ListResult is a normalised list response. Pagination is nil when the
// server answered with a bare array.
type ListResult[T any] struct {
	Items      []T
	Pagination *Pagination
}

// decodeList accepts either a bare JSON array or an envelope of the form
// {"data": [...], "pagination": {...}} and returns the items in both cases.
func decodeList[T any](raw []byte) (*ListResult[T], error) {
	raw = bytes.TrimSpace(raw)
	res := &ListResult[T]{Items: []T{}}
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return res, nil
	}

	if raw[0] == '[' {
		if err := json.Unmarshal(raw, &res.Items); err != nil {
			return nil, fmt.Errorf("decoding list: %w", err)
		}
		return res, nil
	}

	var env struct {
		Data       json.RawMessage `json:"data"`
		Pagination *Pagination     `json:"pagination"`
	}
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("decoding list envelope: %w", err)
	}
	res.Pagination = env.Pagination
	data := bytes.TrimSpace(env.Data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return res, nil
	}
	if data[0] != '[' {
		return nil, fmt.Errorf("decoding list: data is not an array")
	}
	if err := json.Unmarshal(data, &res.Items); err != nil {
		return nil, fmt.Errorf("decoding list: %w", err)
	}
	return res, nil
}

// ListFunc fetches one server page.
type ListFunc[T any] func(ctx context.Context, opts ListOptions) (*ListResult[T], error)

// FetchAll follows pagination until every page has been read, the server
// stops reporting pagination, or maxPages pages have been fetched
// (maxPages <= 0 means no cap). Filters and search in base are kept.
// Stopping at the cap with pages left is logged as a warning.
func FetchAll[T any](ctx context.Context, list ListFunc[T], base ListOptions, maxPages int) ([]T, error) {
	if base.Limit <= 0 {
		base.Limit = DefaultFetchLimit
	}
	all := []T{}
	for page := 1; maxPages <= 0 || page <= maxPages; page++ {
		opts := base
		opts.Page = page
		res, err := list(ctx, opts)
		if err != nil {
			return nil, fmt.Errorf("fetching page %d: %w", page, err)
		}
		all = append(all, res.Items...)
		if res.Pagination == nil || page >= res.Pagination.TotalPages || len(res.Items) == 0 {
			break
		}
		if page == maxPages {
			slog.Warn("list truncated at page cap",
				"max_pages", maxPages,
				"fetched", len(all),
				"total", res.Pagination.Total,
				"total_pages", res.Pagination.TotalPages)
		}
	}
	return all, nil
}
