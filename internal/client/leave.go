package client

import (
	"context"
	"net/http"

	"github.com/alfredjeanlab/cafedash/internal/model"
)

func (c *HTTPClient) ListLeaveRequests(ctx context.Context, opts ListOptions) (*ListResult[model.LeaveRequest], error) {
	return list[model.LeaveRequest](ctx, c, "/leave-requests", opts)
}

func (c *HTTPClient) ListMyLeaveRequests(ctx context.Context, opts ListOptions) (*ListResult[model.LeaveRequest], error) {
	return list[model.LeaveRequest](ctx, c, "/leave-requests/my", opts)
}

func (c *HTTPClient) CreateLeaveRequest(ctx context.Context, in *model.LeaveRequestInput) (*model.LeaveRequest, error) {
	if err := model.ValidateLeaveRequest(in, c.now()); err != nil {
		return nil, err
	}
	var l model.LeaveRequest
	if err := c.doJSON(ctx, http.MethodPost, "/leave-requests", nil, in, &l); err != nil {
		return nil, err
	}
	return &l, nil
}

func (c *HTTPClient) ApproveLeaveRequest(ctx context.Context, id model.ID, notes string) (*model.LeaveRequest, error) {
	return c.reviewLeave(ctx, id, "approve", &model.LeaveReview{Notes: notes})
}

// RejectLeaveRequest requires notes so the employee learns why.
func (c *HTTPClient) RejectLeaveRequest(ctx context.Context, id model.ID, notes string) (*model.LeaveRequest, error) {
	if err := model.ValidateRejection(notes); err != nil {
		return nil, err
	}
	return c.reviewLeave(ctx, id, "reject", &model.LeaveReview{Notes: notes})
}

func (c *HTTPClient) CancelLeaveRequest(ctx context.Context, id model.ID) (*model.LeaveRequest, error) {
	return c.reviewLeave(ctx, id, "cancel", nil)
}

func (c *HTTPClient) reviewLeave(ctx context.Context, id model.ID, action string, body any) (*model.LeaveRequest, error) {
	var l model.LeaveRequest
	if err := c.doJSON(ctx, http.MethodPut, idPath("/leave-requests", id)+"/"+action, nil, body, &l); err != nil {
		return nil, err
	}
	return &l, nil
}
