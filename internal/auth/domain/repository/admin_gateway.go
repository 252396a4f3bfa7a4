package repository

import (
	"context"

	"betogether-admin/internal/auth/domain/model"
)

// AdminGateway is the backend's authentication API.
type AdminGateway interface {
	// Login exchanges credentials for a bearer token and the admin's profile.
	Login(ctx context.Context, email, password string) (string, model.AdminProfile, error)
	// ResetPassword completes the emailed reset link flow and returns the
	// backend's confirmation message.
	ResetPassword(ctx context.Context, req ResetPassword) (string, error)
}

// ResetPassword is the body of the forgot-password call.
type ResetPassword struct {
	Email           string `json:"email"`
	Token           string `json:"token"`
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
}
