package client

import (
	"context"
	"net/http"

	"github.com/alfredjeanlab/cafedash/internal/model"
)

// --- Species ---

func (c *HTTPClient) ListSpecies(ctx context.Context) ([]model.Species, error) {
	res, err := list[model.Species](ctx, c, "/species", ListOptions{})
	if err != nil {
		return nil, err
	}
	return res.Items, nil
}

// --- Breeds ---

func (c *HTTPClient) ListBreeds(ctx context.Context, opts ListOptions) (*ListResult[model.Breed], error) {
	return list[model.Breed](ctx, c, "/breeds", opts)
}

func (c *HTTPClient) CreateBreed(ctx context.Context, in *model.BreedInput) (*model.Breed, error) {
	if err := model.ValidateBreed(in); err != nil {
		return nil, err
	}
	var b model.Breed
	if err := c.doJSON(ctx, http.MethodPost, "/breeds", nil, in, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

func (c *HTTPClient) UpdateBreed(ctx context.Context, id model.ID, in *model.BreedInput) (*model.Breed, error) {
	if err := model.ValidateBreed(in); err != nil {
		return nil, err
	}
	var b model.Breed
	if err := c.doJSON(ctx, http.MethodPut, idPath("/breeds", id), nil, in, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

func (c *HTTPClient) DeleteBreed(ctx context.Context, id model.ID) error {
	return c.doJSON(ctx, http.MethodDelete, idPath("/breeds", id), nil, nil, nil)
}

// --- Vaccine types ---

func (c *HTTPClient) ListVaccineTypes(ctx context.Context, opts ListOptions) (*ListResult[model.VaccineType], error) {
	return list[model.VaccineType](ctx, c, "/vaccine-types", opts)
}

func (c *HTTPClient) CreateVaccineType(ctx context.Context, in *model.VaccineTypeInput) (*model.VaccineType, error) {
	if err := model.ValidateVaccineType(in); err != nil {
		return nil, err
	}
	var v model.VaccineType
	if err := c.doJSON(ctx, http.MethodPost, "/vaccine-types", nil, in, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

func (c *HTTPClient) UpdateVaccineType(ctx context.Context, id model.ID, in *model.VaccineTypeInput) (*model.VaccineType, error) {
	if err := model.ValidateVaccineType(in); err != nil {
		return nil, err
	}
	var v model.VaccineType
	if err := c.doJSON(ctx, http.MethodPut, idPath("/vaccine-types", id), nil, in, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

func (c *HTTPClient) DeleteVaccineType(ctx context.Context, id model.ID) error {
	return c.doJSON(ctx, http.MethodDelete, idPath("/vaccine-types", id), nil, nil, nil)
}
