package http

import (
	authhttp "betogether-admin/internal/auth/adapter/http"
	authmodel "betogether-admin/internal/auth/domain/model"
	"betogether-admin/internal/console/resource"
	"betogether-admin/internal/console/usecase"
	apperrors "betogether-admin/internal/shared/errors"
	"betogether-admin/internal/shared/logger"

	"github.com/gofiber/fiber/v2"
)

const msgRequestFailed = "Request failed"

// SessionGuard protects console routes and owns the session cookie.
type SessionGuard interface {
	Protect() fiber.Handler
	ClearSession(c *fiber.Ctx)
	LoginPath() string
}

// ConsoleHTTPHandler serves the management screens of the console.
type ConsoleHTTPHandler struct {
	usecase  usecase.ConsoleUsecaseInterface
	guard    SessionGuard
	sessions usecase.SessionTerminator
	logger   logger.Logger
}

// NewConsoleHTTPHandler creates the console handler. sessions is used to end a
// session whose backend token was rejected.
func NewConsoleHTTPHandler(uc usecase.ConsoleUsecaseInterface, guard SessionGuard, sessions usecase.SessionTerminator, log logger.Logger) *ConsoleHTTPHandler {
	if log == nil {
		log = logger.NewLogger()
	}
	return &ConsoleHTTPHandler{
		usecase:  uc,
		guard:    guard,
		sessions: sessions,
		logger:   log.WithComponent("console_http"),
	}
}

// RegisterRoutes registers every console screen behind the session guard.
func (h *ConsoleHTTPHandler) RegisterRoutes(router fiber.Router) {
	protect := h.guard.Protect()
	route := func(method, path string, handler fiber.Handler) {
		router.Add(method, path, protect, handler)
	}

	route(fiber.MethodGet, "/home", h.Home)
	route(fiber.MethodGet, "/users", h.ListUsers)

	route(fiber.MethodGet, "/categories", h.ListCategories)
	route(fiber.MethodPost, "/categories", h.CreateCategory)
	route(fiber.MethodPost, "/categories/ai-tags", h.SuggestTags)
	route(fiber.MethodPost, "/categories/tags/add", h.AddTag)
	route(fiber.MethodPost, "/categories/tags/remove", h.RemoveTag)
	route(fiber.MethodPut, "/categories/:id", h.UpdateCategory)
	route(fiber.MethodDelete, "/categories/:id", h.DeleteCategory)

	route(fiber.MethodGet, "/fake-users", h.ListFakeUsers)
	route(fiber.MethodPost, "/fake-users/generate", h.GenerateFakeUsers)
	route(fiber.MethodDelete, "/fake-users/:id", h.DeleteFakeUser)

	route(fiber.MethodGet, "/services/:id", h.GetService)
	route(fiber.MethodPatch, "/services/:id", h.UpdateService)

	route(fiber.MethodGet, "/delete-requests", h.ListDeleteRequests)
	route(fiber.MethodPost, "/delete-requests/:id/approve", h.ApproveDeleteRequest)
	route(fiber.MethodPost, "/delete-requests/:id/reject", h.RejectDeleteRequest)

	route(fiber.MethodGet, "/payment-settings", h.PaymentSettings)
	route(fiber.MethodPut, "/payment-settings/commission", h.UpdateCommission)
	route(fiber.MethodPut, "/payment-settings/cancellation", h.UpdateCancellation)

	route(fiber.MethodGet, "/profile", h.Profile)
	route(fiber.MethodPut, "/profile/mobile", h.UpdateMobile)
	route(fiber.MethodPost, "/profile/email/send-otp", h.SendEmailOTP)
	route(fiber.MethodPost, "/profile/email/verify-otp", h.VerifyEmailOTP)
	route(fiber.MethodPut, "/profile/password", h.ChangePassword)
	route(fiber.MethodPost, "/profile/password-strength", h.MeasurePassword)
	route(fiber.MethodPut, "/profile/support", h.UpdateSupport)

	route(fiber.MethodGet, "/promotion-plans", h.ListPlans)
	route(fiber.MethodPost, "/promotion-plans", h.CreatePlan)
	route(fiber.MethodPut, "/promotion-plans/:id", h.UpdatePlan)
	route(fiber.MethodDelete, "/promotion-plans/:id", h.DeletePlan)
}

// session returns the session attached by the guard.
func (h *ConsoleHTTPHandler) session(c *fiber.Ctx) *authmodel.Session {
	if s, ok := authhttp.SessionFrom(c.UserContext()); ok {
		return s
	}
	if s, ok := authhttp.SessionFromContext(c); ok {
		return s
	}
	return nil
}

func (h *ConsoleHTTPHandler) ok(c *fiber.Ctx, data interface{}) error {
	return c.JSON(fiber.Map{
		"success": true,
		"data":    data,
	})
}

// fail answers with the notification for err. A rejected backend token ends the
// session and sends the browser to the login page.
func (h *ConsoleHTTPHandler) fail(c *fiber.Ctx, err error, fallback string, data interface{}) error {
	if apperrors.IsAuthentication(err) {
		return h.expire(c, err)
	}

	status := apperrors.HTTPStatus(err)
	if status >= fiber.StatusInternalServerError {
		h.logger.WithContext(c.UserContext()).WithFields(map[string]interface{}{
			"path":   c.Path(),
			"method": c.Method(),
			"status": status,
		}).Errorf("console request failed: %v", err)
	}

	body := fiber.Map{
		"success": false,
		"error":   usecase.Notice(err, fallback),
	}
	if data != nil {
		body["data"] = data
	}
	return c.Status(status).JSON(body)
}

func (h *ConsoleHTTPHandler) expire(c *fiber.Ctx, err error) error {
	if s := h.session(c); s != nil {
		if h.sessions != nil {
			if lerr := h.sessions.Logout(c.UserContext(), s.ID); lerr != nil {
				h.logger.WithContext(c.UserContext()).Warnf("failed to end rejected session: %v", lerr)
			}
		}
		h.usecase.EndSession(s.ID)
	}
	h.guard.ClearSession(c)
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"success":  false,
		"error":    apperrors.UserMessage(err, ""),
		"redirect": h.guard.LoginPath(),
	})
}

func (h *ConsoleHTTPHandler) badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"success": false,
		"error":   msg,
	})
}

// respondView answers with a list view. Failed lists still carry the items the
// screen keeps showing.
func respondView[T any](h *ConsoleHTTPHandler, c *fiber.Ctx, v resource.View[T], err error) error {
	if err != nil {
		return h.fail(c, err, msgRequestFailed, v)
	}
	return h.ok(c, v)
}

func (h *ConsoleHTTPHandler) listQuery(c *fiber.Ctx) (usecase.ListQuery, error) {
	var q usecase.ListQuery
	err := c.QueryParser(&q)
	return q, err
}

// Home serves the dashboard: admin name and pending delete count.
func (h *ConsoleHTTPHandler) Home(c *fiber.Ctx) error {
	view, err := h.usecase.Home(c.UserContext(), h.session(c))
	if err != nil {
		return h.fail(c, err, msgRequestFailed, nil)
	}
	return h.ok(c, view)
}
