package model

import (
	"strings"

	"betogether-admin/internal/shared/validation"
)

// Profile is the logged-in administrator's contact data plus the support contact
// shown to marketplace users.
type Profile struct {
	Mobile string `json:"mobile"`
	Email  string `json:"email"`
	SupportInfo
}

// SupportInfo is the support contact published to marketplace users.
type SupportInfo struct {
	SupportPhone string `json:"supportPhone"`
	SupportEmail string `json:"supportEmail"`
	SupportTime  string `json:"supportTime"`
}

// PasswordChange is the change-password form.
type PasswordChange struct {
	OldPassword string `json:"oldPassword" validate:"notblank" message:"Old password is required"`
	NewPassword string `json:"newPassword" validate:"adminpassword" message:"Password must be 8+ chars, include uppercase, number & special character"`
}

// Validate checks the new password against the admin policy.
func (in PasswordChange) Validate() error {
	return validation.Default().Struct(in)
}

// PasswordStrength is the meter shown next to the new password field.
type PasswordStrength struct {
	Score int    `json:"score"`
	Label string `json:"label"`
}

// MeasurePassword scores password.
func MeasurePassword(password string) PasswordStrength {
	score := validation.PasswordStrength(password)
	return PasswordStrength{Score: score, Label: validation.StrengthLabel(score)}
}

// Trimmed returns the support info with surrounding whitespace removed.
func (s SupportInfo) Trimmed() SupportInfo {
	return SupportInfo{
		SupportPhone: strings.TrimSpace(s.SupportPhone),
		SupportEmail: strings.TrimSpace(s.SupportEmail),
		SupportTime:  strings.TrimSpace(s.SupportTime),
	}
}
