package usecase

import (
	"context"
	"strings"

	authmodel "betogether-admin/internal/auth/domain/model"
	"betogether-admin/internal/backend"
	"betogether-admin/internal/console/domain/model"
	apperrors "betogether-admin/internal/shared/errors"
	"betogether-admin/internal/shared/validation"
)

const (
	MsgProfileLoadFailed   = "Failed to load profile"
	MsgMobileRequired      = "Mobile number is required"
	MsgMobileUpdated       = "Mobile number updated"
	MsgMobileUpdateFailed  = "Mobile update failed"
	MsgEmailRequired       = "Email is required"
	MsgOTPSent             = "OTP sent to email"
	MsgOTPSendFailed       = "Failed to send OTP"
	MsgOTPRequired         = "OTP is required"
	MsgEmailUpdated        = "Email updated successfully"
	MsgInvalidOTP          = "Invalid OTP"
	MsgPasswordUpdated     = "Password updated. Logging out..."
	MsgPasswordUpdateFail  = "Password update failed"
	MsgSupportUpdated      = "Support info updated"
	MsgSupportUpdateFailed = "Failed to update support info"
	MsgInvalidSupportEmail = "Support email must be a valid email address"
)

// Profile loads the administrator's contact data and the support contact.
func (uc *ConsoleUsecase) Profile(ctx context.Context, s *authmodel.Session) (*model.Profile, error) {
	api, err := uc.caller(s)
	if err != nil {
		return nil, err
	}
	var out backend.DataResponse[model.Profile]
	if err := api.Do(ctx, backend.Get("/profile"), &out); err != nil {
		return nil, fail(err, MsgProfileLoadFailed)
	}
	return &out.Data, nil
}

func (uc *ConsoleUsecase) UpdateMobile(ctx context.Context, s *authmodel.Session, mobile string) (*ActionResult, error) {
	mobile = strings.TrimSpace(mobile)
	if mobile == "" {
		return nil, fail(apperrors.NewValidationError(MsgMobileRequired), MsgMobileUpdateFailed)
	}
	return uc.profileAction(ctx, s, backend.Put("/profile/update-mobile", map[string]string{"mobile": mobile}),
		MsgMobileUpdated, MsgMobileUpdateFailed)
}

// SendEmailOTP starts an email change by mailing a one-time code to the new address.
func (uc *ConsoleUsecase) SendEmailOTP(ctx context.Context, s *authmodel.Session, email string) (*ActionResult, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, fail(apperrors.NewValidationError(MsgEmailRequired), MsgOTPSendFailed)
	}
	return uc.profileAction(ctx, s, backend.Post("/profile/email/send-otp", map[string]string{"email": email}),
		MsgOTPSent, MsgOTPSendFailed)
}

// VerifyEmailOTP completes an email change.
func (uc *ConsoleUsecase) VerifyEmailOTP(ctx context.Context, s *authmodel.Session, otp string) (*ActionResult, error) {
	otp = strings.TrimSpace(otp)
	if otp == "" {
		return nil, fail(apperrors.NewValidationError(MsgOTPRequired), MsgInvalidOTP)
	}
	return uc.profileAction(ctx, s, backend.Post("/profile/email/verify-otp", map[string]string{"otp": otp}),
		MsgEmailUpdated, MsgInvalidOTP)
}

// ChangePassword updates the password and ends the session on success.
func (uc *ConsoleUsecase) ChangePassword(ctx context.Context, s *authmodel.Session, in model.PasswordChange) (*ActionResult, error) {
	if err := in.Validate(); err != nil {
		return nil, fail(err, MsgPasswordUpdateFail)
	}
	result, err := uc.profileAction(ctx, s, backend.Put("/profile/update-password", in),
		MsgPasswordUpdated, MsgPasswordUpdateFail)
	if err != nil {
		return nil, err
	}
	if uc.sessions != nil {
		if err := uc.sessions.Logout(ctx, s.ID); err != nil {
			uc.logger.WithContext(ctx).Warnf("failed to end session after password change: %v", err)
		}
	}
	uc.EndSession(s.ID)
	result.SessionEnded = true
	result.Redirect = "/login"
	return result, nil
}

// UpdateSupport publishes the support contact.
func (uc *ConsoleUsecase) UpdateSupport(ctx context.Context, s *authmodel.Session, in model.SupportInfo) (*ActionResult, error) {
	in = in.Trimmed()
	if in.SupportEmail != "" {
		if err := validation.Default().Var(in.SupportEmail, "email"); err != nil {
			return nil, fail(apperrors.NewValidationError(MsgInvalidSupportEmail).WithCause(err), MsgSupportUpdateFailed)
		}
	}
	return uc.profileAction(ctx, s, backend.Put("/profile/support", in), MsgSupportUpdated, MsgSupportUpdateFailed)
}

// MeasurePassword scores a candidate password for the strength meter.
func (uc *ConsoleUsecase) MeasurePassword(password string) model.PasswordStrength {
	return model.MeasurePassword(password)
}

func (uc *ConsoleUsecase) profileAction(ctx context.Context, s *authmodel.Session, req backend.Request, done, failed string) (*ActionResult, error) {
	api, err := uc.caller(s)
	if err != nil {
		return nil, err
	}
	if err := api.Do(ctx, req, &backend.Ack{}); err != nil {
		return nil, fail(err, failed)
	}
	return &ActionResult{Notification: model.Success(done)}, nil
}
