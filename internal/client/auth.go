package client

import (
	"context"
	"net/http"

	"github.com/alfredjeanlab/cafedash/internal/model"
)

func (c *HTTPClient) Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error) {
	if err := model.ValidateLogin(req); err != nil {
		return nil, err
	}
	var resp model.LoginResponse
	if err := c.doJSON(ctx, http.MethodPost, "/auth/login", nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) Register(ctx context.Context, req *model.RegisterRequest) (*model.User, error) {
	if err := model.ValidateRegister(req); err != nil {
		return nil, err
	}
	var user model.User
	if err := c.doJSON(ctx, http.MethodPost, "/auth/register", nil, req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *HTTPClient) Me(ctx context.Context) (*model.User, error) {
	var user model.User
	if err := c.doJSON(ctx, http.MethodGet, "/auth/me", nil, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *HTTPClient) UpdateProfile(ctx context.Context, req *model.UpdateProfileRequest) (*model.User, error) {
	if err := model.ValidateProfileUpdate(req); err != nil {
		return nil, err
	}
	var user model.User
	if err := c.doJSON(ctx, http.MethodPut, "/auth/profile", nil, req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *HTTPClient) ChangePassword(ctx context.Context, req *model.ChangePasswordRequest) error {
	if err := model.ValidateChangePassword(req); err != nil {
		return err
	}
	return c.doJSON(ctx, http.MethodPut, "/auth/password", nil, req, nil)
}
