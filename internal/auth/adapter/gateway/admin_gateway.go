// Package gateway adapts the backend REST client to the auth module's ports.
package gateway

import (
	"context"

	"betogether-admin/internal/auth/domain/model"
	"betogether-admin/internal/auth/domain/repository"
	"betogether-admin/internal/backend"
	"betogether-admin/internal/backend/config"
	apperrors "betogether-admin/internal/shared/errors"
)

type loginResponse struct {
	backend.Status
	Token string             `json:"token"`
	Admin model.AdminProfile `json:"admin"`
}

// AdminGateway calls the backend's login and password reset endpoints.
type AdminGateway struct {
	client *backend.Client
}

// NewAdminGateway creates a gateway over client.
func NewAdminGateway(client *backend.Client) *AdminGateway {
	return &AdminGateway{client: client}
}

var _ repository.AdminGateway = (*AdminGateway)(nil)

// Login posts the credentials to /auth/login. A response that reports success
// without a token is treated as a failed login.
func (g *AdminGateway) Login(ctx context.Context, email, password string) (string, model.AdminProfile, error) {
	var resp loginResponse
	err := g.client.Anonymous().Do(ctx, backend.Post("/auth/login", map[string]string{
		"email":    email,
		"password": password,
	}), &resp)
	if err != nil {
		return "", model.AdminProfile{}, err
	}
	if resp.Token == "" {
		return "", model.AdminProfile{}, apperrors.NewServerError(resp.ServerMessage(), 200)
	}
	if resp.Admin.Email == "" {
		resp.Admin.Email = email
	}
	return resp.Token, resp.Admin, nil
}

// ResetPassword posts to the public forgot-password endpoint.
func (g *AdminGateway) ResetPassword(ctx context.Context, req repository.ResetPassword) (string, error) {
	var resp backend.Ack
	if err := g.client.Anonymous().Do(ctx, backend.Post("/forgot-password", req).On(config.BaseAuth), &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}
