package client

import (
	"context"

	"github.com/alfredjeanlab/cafedash/internal/model"
)

func (c *HTTPClient) ListTeams(ctx context.Context, opts ListOptions) (*ListResult[model.Team], error) {
	return list[model.Team](ctx, c, "/teams", opts)
}

func (c *HTTPClient) ListShifts(ctx context.Context, opts ListOptions) (*ListResult[model.Shift], error) {
	return list[model.Shift](ctx, c, "/shifts", opts)
}
