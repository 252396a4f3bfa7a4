package http

import (
	"betogether-admin/internal/auth/config"
	"betogether-admin/internal/auth/usecase"
	apperrors "betogether-admin/internal/shared/errors"
	"betogether-admin/internal/shared/logger"

	"github.com/gofiber/fiber/v2"
)

// AuthHTTPHandler serves the login, logout and password reset screens.
type AuthHTTPHandler struct {
	usecase   usecase.AuthUsecaseInterface
	cookies   cookieJar
	loginPath string
	homePath  string
	logger    logger.Logger
}

// NewAuthHTTPHandler creates a new authentication HTTP handler
func NewAuthHTTPHandler(uc usecase.AuthUsecaseInterface, cfg *config.Config, log logger.Logger) *AuthHTTPHandler {
	if log == nil {
		log = logger.NewLogger()
	}
	return &AuthHTTPHandler{
		usecase:   uc,
		cookies:   newCookieJar(cfg),
		loginPath: cfg.LoginPath,
		homePath:  cfg.HomePath,
		logger:    log.WithComponent("auth_http"),
	}
}

// SetupAuthRoutesWithMiddleware sets up authentication routes with middleware
func (h *AuthHTTPHandler) SetupAuthRoutesWithMiddleware(router fiber.Router, middleware *AuthMiddleware) {
	router.Get(h.loginPath, h.LoginPage)
	router.Post(h.loginPath, middleware.RateLimiter(), h.Login)
	router.Post("/logout", h.Logout)
	router.Get("/reset-password", h.ResetPasswordPage)
	router.Post("/reset-password", middleware.RateLimiter(), h.ResetPassword)
}

// LoginPage sends an already logged-in admin home; otherwise it describes the form.
func (h *AuthHTTPHandler) LoginPage(c *fiber.Ctx) error {
	if session, err := h.usecase.Resolve(c.UserContext(), h.cookies.read(c)); err == nil && session.HasToken() {
		return c.Redirect(h.homePath, fiber.StatusFound)
	}
	return c.JSON(fiber.Map{
		"title":    "BeTogether Admin",
		"subtitle": "Login to your admin account",
		"fields":   []string{"email", "password"},
	})
}

// Login handles the login form submission.
func (h *AuthHTTPHandler) Login(c *fiber.Ctx) error {
	var req usecase.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid request body",
		})
	}

	result, err := h.usecase.Login(c.UserContext(), req)
	if err != nil {
		return c.Status(apperrors.HTTPStatus(err)).JSON(fiber.Map{
			"success": false,
			"error":   apperrors.UserMessage(err, usecase.MsgLoginFailed),
		})
	}

	h.cookies.set(c, result.Cookie, result.Session.ExpiresAt)
	return c.JSON(fiber.Map{
		"success":  true,
		"message":  "Login successful",
		"redirect": result.Redirect,
		"admin":    result.Admin,
	})
}

// Logout ends the caller's session, if any, and clears the cookie.
func (h *AuthHTTPHandler) Logout(c *fiber.Ctx) error {
	if session, err := h.usecase.Resolve(c.UserContext(), h.cookies.read(c)); err == nil {
		if err := h.usecase.Logout(c.UserContext(), session.ID); err != nil {
			h.logger.WithContext(c.UserContext()).Warnf("Failed to end session: %v", err)
		}
	}
	h.cookies.clear(c)
	return c.JSON(fiber.Map{
		"success":  true,
		"redirect": h.loginPath,
	})
}

// ResetPasswordPage reports whether the emailed link carries what the form needs.
func (h *AuthHTTPHandler) ResetPasswordPage(c *fiber.Ctx) error {
	email, token := c.Query("email"), c.Query("token")
	view := fiber.Map{
		"title":    "Reset Password",
		"subtitle": "Enter your new password below",
		"email":    email,
		"valid":    email != "" && token != "",
	}
	if email == "" || token == "" {
		view["message"] = usecase.MsgInvalidResetLink
	}
	return c.JSON(view)
}

// ResetPassword submits the reset form. Email and token come from the link's
// query string unless the body repeats them.
func (h *AuthHTTPHandler) ResetPassword(c *fiber.Ctx) error {
	var req usecase.ResetPasswordRequest
	if err := c.QueryParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid request",
		})
	}
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"message": "Invalid request body",
			})
		}
	}

	msg, err := h.usecase.ResetPassword(c.UserContext(), req)
	if err != nil {
		return c.Status(apperrors.HTTPStatus(err)).JSON(fiber.Map{
			"success": false,
			"message": apperrors.UserMessage(err, usecase.MsgResetNetworkFailed),
		})
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": msg,
	})
}
