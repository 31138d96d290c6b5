package client

import (
	"context"
	"net/http"

	"github.com/alfredjeanlab/cafedash/internal/model"
)

func (c *HTTPClient) ListPets(ctx context.Context, opts ListOptions) (*ListResult[model.Pet], error) {
	return list[model.Pet](ctx, c, "/pets", opts)
}

func (c *HTTPClient) GetPet(ctx context.Context, id model.ID) (*model.Pet, error) {
	var pet model.Pet
	if err := c.doJSON(ctx, http.MethodGet, idPath("/pets", id), nil, nil, &pet); err != nil {
		return nil, err
	}
	return &pet, nil
}

func (c *HTTPClient) CreatePet(ctx context.Context, in *model.PetInput) (*model.Pet, error) {
	if err := model.ValidatePet(in); err != nil {
		return nil, err
	}
	var pet model.Pet
	if err := c.doJSON(ctx, http.MethodPost, "/pets", nil, in, &pet); err != nil {
		return nil, err
	}
	return &pet, nil
}

func (c *HTTPClient) UpdatePet(ctx context.Context, id model.ID, in *model.PetInput) (*model.Pet, error) {
	if err := model.ValidatePet(in); err != nil {
		return nil, err
	}
	var pet model.Pet
	if err := c.doJSON(ctx, http.MethodPut, idPath("/pets", id), nil, in, &pet); err != nil {
		return nil, err
	}
	return &pet, nil
}

func (c *HTTPClient) DeletePet(ctx context.Context, id model.ID) error {
	return c.doJSON(ctx, http.MethodDelete, idPath("/pets", id), nil, nil, nil)
}
