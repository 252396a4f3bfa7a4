package usecase

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"betogether-admin/internal/auth/config"
	"betogether-admin/internal/auth/domain/model"
	"betogether-admin/internal/auth/domain/repository"
	apperrors "betogether-admin/internal/shared/errors"
	"betogether-admin/internal/shared/logger"
	"betogether-admin/internal/shared/validation"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

// Messages shown on the login and reset password screens.
const (
	MsgLoginFailed        = "Login failed"
	MsgFillAllFields      = "Please fill in all fields"
	MsgInvalidResetLink   = "Invalid or expired reset link"
	MsgAllFieldsRequired  = "All fields are required"
	MsgPasswordsMismatch  = "Passwords do not match"
	MsgPasswordTooShort   = "Password must be at least 8 characters long"
	MsgResetSucceeded     = "Password reset successful. You can now login."
	MsgResetFailed        = "Something went wrong"
	MsgResetNetworkFailed = "Server error. Please try again later."
)

const (
	minResetPasswordLength = 8
	defaultLoginTimeout    = 30 * time.Second
)

// AuthUsecaseInterface defines the contract for console authentication.
type AuthUsecaseInterface interface {
	Login(ctx context.Context, req LoginRequest) (*LoginResult, error)
	Resolve(ctx context.Context, cookieValue string) (*model.Session, error)
	Logout(ctx context.Context, sessionID string) error
	ResetPassword(ctx context.Context, req ResetPasswordRequest) (string, error)
}

// LoginRequest represents the login form.
type LoginRequest struct {
	Email    string `json:"email" form:"email" validate:"notblank" message:"Please fill in all fields"`
	Password string `json:"password" form:"password" validate:"notblank" message:"Please fill in all fields"`
}

// LoginResult is what a successful login hands back to the transport layer.
type LoginResult struct {
	Session  *model.Session     `json:"-"`
	Cookie   string             `json:"-"`
	Admin    model.AdminProfile `json:"admin"`
	Redirect string             `json:"redirect"`
}

// ResetPasswordRequest is the reset form plus the email and token from the link.
type ResetPasswordRequest struct {
	Email           string `json:"email" query:"email"`
	Token           string `json:"token" query:"token"`
	NewPassword     string `json:"newPassword" form:"newPassword"`
	ConfirmPassword string `json:"confirmPassword" form:"confirmPassword"`
}

// SessionEndHook is notified after a session is destroyed.
type SessionEndHook func(sessionID string)

// AuthUsecase implements login, session resolution and password reset against
// the backend.
type AuthUsecase struct {
	gateway   repository.AdminGateway
	store     repository.SessionStore
	signer    repository.CookieSigner
	config    *config.Config
	validator *validation.Validator
	logger    logger.Logger
	now       func() time.Time

	logins singleflight.Group

	hooksMu sync.RWMutex
	hooks   []SessionEndHook
}

// NewAuthUsecase creates a new instance of AuthUsecase.
func NewAuthUsecase(
	gateway repository.AdminGateway,
	store repository.SessionStore,
	signer repository.CookieSigner,
	cfg *config.Config,
	log logger.Logger,
) *AuthUsecase {
	if log == nil {
		log = logger.NewLogger()
	}
	return &AuthUsecase{
		gateway:   gateway,
		store:     store,
		signer:    signer,
		config:    cfg,
		validator: validation.Default(),
		logger:    log.WithComponent("auth"),
		now:       time.Now,
	}
}

// OnSessionEnd registers fn to run whenever a session is destroyed.
func (uc *AuthUsecase) OnSessionEnd(fn SessionEndHook) {
	uc.hooksMu.Lock()
	uc.hooks = append(uc.hooks, fn)
	uc.hooksMu.Unlock()
}

// Login validates the form, exchanges the credentials for a backend token and
// opens a session. Identical submissions that overlap share one backend call and
// one session.
func (uc *AuthUsecase) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	req.Email = strings.TrimSpace(req.Email)
	if err := uc.validator.Struct(req); err != nil {
		return nil, err
	}

	// The shared call outlives any single caller; each caller still stops waiting
	// when its own context ends.
	key := req.Email + "\x00" + req.Password
	ch := uc.logins.DoChan(key, func() (interface{}, error) {
		callCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), uc.loginTimeout())
		defer cancel()
		return uc.login(callCtx, req)
	})

	select {
	case <-ctx.Done():
		return nil, apperrors.NewNetworkError(MsgLoginFailed).WithCause(ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		if res.Shared {
			uc.logger.WithContext(ctx).Debug("Login collapsed into an in-flight attempt")
		}
		return res.Val.(*LoginResult), nil
	}
}

func (uc *AuthUsecase) loginTimeout() time.Duration {
	if uc.config.LoginTimeout > 0 {
		return uc.config.LoginTimeout
	}
	return defaultLoginTimeout
}

func (uc *AuthUsecase) login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	token, admin, err := uc.gateway.Login(ctx, req.Email, req.Password)
	if err != nil {
		uc.logger.WithContext(ctx).WithFields(map[string]interface{}{
			"email": req.Email,
			"error": err.Error(),
		}).Warn("Login rejected")
		return nil, rejection(err, MsgLoginFailed)
	}
	if token == "" {
		return nil, apperrors.NewServerError(MsgLoginFailed, 0)
	}

	now := uc.now()
	session := &model.Session{
		ID:        uuid.NewString(),
		Token:     token,
		Admin:     admin,
		CreatedAt: now,
		ExpiresAt: now.Add(uc.config.SessionTTL),
	}
	if err := uc.store.Save(ctx, session); err != nil {
		return nil, apperrors.WrapError(err, "failed to create session")
	}

	cookie, err := uc.signer.Sign(session.ID, session.ExpiresAt)
	if err != nil {
		_ = uc.store.Delete(ctx, session.ID)
		return nil, apperrors.NewInternalError("failed to sign session").WithCause(err)
	}

	uc.logger.WithContext(ctx).WithFields(map[string]interface{}{
		"session_id":  session.ID,
		"admin_email": admin.Email,
	}).Info("Admin logged in")

	return &LoginResult{
		Session:  session,
		Cookie:   cookie,
		Admin:    admin,
		Redirect: uc.config.HomePath,
	}, nil
}

// rejection normalizes backend failures on the public screens. A 401 there is an
// ordinary rejection since no session exists yet to expire, and a failure without
// a message gets the screen's fallback text.
func rejection(err error, fallback string) error {
	var appErr *apperrors.AppError
	hasAppErr := errors.As(err, &appErr)
	switch {
	case apperrors.IsAuthentication(err):
		msg := fallback
		if hasAppErr && appErr.Message != "" && appErr.Message != "unauthorized" {
			msg = appErr.Message
		}
		// The cause is dropped so the result no longer classifies as authentication.
		return apperrors.NewServerError(msg, 401)
	case apperrors.IsServer(err) && hasAppErr && appErr.Message == "":
		return apperrors.NewServerError(fallback, 0).WithCause(err)
	}
	return err
}

// Resolve maps a session cookie onto a live session. Any failure means the caller
// is not logged in.
func (uc *AuthUsecase) Resolve(ctx context.Context, cookieValue string) (*model.Session, error) {
	if cookieValue == "" {
		return nil, apperrors.ErrSessionNotFound
	}
	claims, err := uc.signer.Verify(cookieValue)
	if err != nil {
		return nil, apperrors.NewAuthenticationError("invalid session cookie").
			WithCause(apperrors.ErrInvalidSessionCookie)
	}

	session, err := uc.store.Get(ctx, claims.SessionID)
	if err != nil {
		return nil, err
	}
	if !session.Active(uc.now()) {
		_ = uc.Logout(ctx, session.ID)
		return nil, apperrors.ErrSessionNotFound
	}
	return session, nil
}

// Logout destroys the session and notifies hooks. It is also how the console ends
// a session after a password change or a backend 401.
func (uc *AuthUsecase) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return apperrors.ErrSessionNotFound
	}
	if err := uc.store.Delete(ctx, sessionID); err != nil {
		return err
	}

	uc.hooksMu.RLock()
	hooks := append([]SessionEndHook(nil), uc.hooks...)
	uc.hooksMu.RUnlock()
	for _, hook := range hooks {
		hook(sessionID)
	}

	uc.logger.WithContext(ctx).WithFields(map[string]interface{}{
		"session_id": sessionID,
	}).Info("Session ended")
	return nil
}

// ResetPassword checks the form in the order the reset screen reports problems,
// then calls the backend. It returns the message to show on success.
func (uc *AuthUsecase) ResetPassword(ctx context.Context, req ResetPasswordRequest) (string, error) {
	switch {
	case req.Email == "" || req.Token == "":
		return "", apperrors.NewValidationError(MsgInvalidResetLink)
	case req.NewPassword == "" || req.ConfirmPassword == "":
		return "", apperrors.NewValidationError(MsgAllFieldsRequired)
	case req.NewPassword != req.ConfirmPassword:
		return "", apperrors.NewValidationError(MsgPasswordsMismatch)
	case len(req.NewPassword) < minResetPasswordLength:
		return "", apperrors.NewValidationError(MsgPasswordTooShort)
	}

	_, err := uc.gateway.ResetPassword(ctx, repository.ResetPassword{
		Email:           req.Email,
		Token:           req.Token,
		NewPassword:     req.NewPassword,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		return "", rejection(err, MsgResetFailed)
	}
	return MsgResetSucceeded, nil
}
