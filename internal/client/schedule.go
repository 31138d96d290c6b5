package client

import (
	"context"
	"net/http"

	"github.com/alfredjeanlab/cafedash/internal/model"
)

// --- Task templates ---

func (c *HTTPClient) ListTaskTemplates(ctx context.Context, opts ListOptions) (*ListResult[model.TaskTemplate], error) {
	return list[model.TaskTemplate](ctx, c, "/task-templates", opts)
}

func (c *HTTPClient) CreateTaskTemplate(ctx context.Context, in *model.TaskTemplateInput) (*model.TaskTemplate, error) {
	if err := model.ValidateTaskTemplate(in); err != nil {
		return nil, err
	}
	var t model.TaskTemplate
	if err := c.doJSON(ctx, http.MethodPost, "/task-templates", nil, in, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (c *HTTPClient) UpdateTaskTemplate(ctx context.Context, id model.ID, in *model.TaskTemplateInput) (*model.TaskTemplate, error) {
	if err := model.ValidateTaskTemplate(in); err != nil {
		return nil, err
	}
	var t model.TaskTemplate
	if err := c.doJSON(ctx, http.MethodPut, idPath("/task-templates", id), nil, in, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (c *HTTPClient) DeleteTaskTemplate(ctx context.Context, id model.ID) error {
	return c.doJSON(ctx, http.MethodDelete, idPath("/task-templates", id), nil, nil, nil)
}

// --- Slots ---

func (c *HTTPClient) ListSlots(ctx context.Context, opts ListOptions) (*ListResult[model.Slot], error) {
	return list[model.Slot](ctx, c, "/slots", opts)
}

func (c *HTTPClient) CreateSlot(ctx context.Context, in *model.SlotInput) (*model.Slot, error) {
	if err := model.ValidateSlot(in); err != nil {
		return nil, err
	}
	var s model.Slot
	if err := c.doJSON(ctx, http.MethodPost, "/slots", nil, in, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (c *HTTPClient) UpdateSlot(ctx context.Context, id model.ID, in *model.SlotInput) (*model.Slot, error) {
	if err := model.ValidateSlot(in); err != nil {
		return nil, err
	}
	var s model.Slot
	if err := c.doJSON(ctx, http.MethodPut, idPath("/slots", id), nil, in, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (c *HTTPClient) DeleteSlot(ctx context.Context, id model.ID) error {
	return c.doJSON(ctx, http.MethodDelete, idPath("/slots", id), nil, nil, nil)
}
