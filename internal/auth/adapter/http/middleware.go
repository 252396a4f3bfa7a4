package http

import (
	"context"
	"time"

	"betogether-admin/internal/auth/config"
	"betogether-admin/internal/auth/domain/model"
	"betogether-admin/internal/auth/usecase"
	"betogether-admin/internal/shared/contextkeys"
	"betogether-admin/internal/shared/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

const sessionLocalsKey = "session"

// AuthMiddleware provides the session guard and the shared middleware of the
// console's HTTP surface.
type AuthMiddleware struct {
	usecase   usecase.AuthUsecaseInterface
	cookies   cookieJar
	loginPath string
	rateMax   int
	rateEvery time.Duration
}

// NewAuthMiddleware creates a new authentication middleware
func NewAuthMiddleware(uc usecase.AuthUsecaseInterface, cfg *config.Config) *AuthMiddleware {
	return &AuthMiddleware{
		usecase:   uc,
		cookies:   newCookieJar(cfg),
		loginPath: cfg.LoginPath,
		rateMax:   cfg.LoginRateLimit,
		rateEvery: cfg.LoginRateWindow,
	}
}

// Protect is the session guard. Requests without a live session holding a backend
// token are redirected to the login page and the protected handler never runs.
func (m *AuthMiddleware) Protect() fiber.Handler {
	return func(c *fiber.Ctx) error {
		cookie := m.cookies.read(c)
		session, err := m.usecase.Resolve(c.UserContext(), cookie)
		if err != nil || !session.HasToken() {
			if cookie != "" {
				m.cookies.clear(c)
			}
			return c.Redirect(m.loginPath, fiber.StatusFound)
		}

		c.Locals(sessionLocalsKey, session)
		ctx := context.WithValue(c.UserContext(), contextkeys.SessionKey, session)
		ctx = utils.WithSessionID(ctx, session.ID)
		ctx = utils.WithAdminEmail(ctx, session.Admin.Email)
		c.SetUserContext(ctx)
		return c.Next()
	}
}

// ClearSession drops the session cookie on the current response.
func (m *AuthMiddleware) ClearSession(c *fiber.Ctx) {
	m.cookies.clear(c)
}

// LoginPath is where unauthenticated callers are sent.
func (m *AuthMiddleware) LoginPath() string {
	return m.loginPath
}

// CORS middleware for browser front ends served from another origin.
func (m *AuthMiddleware) CORS(allowOrigins string) fiber.Handler {
	return cors.New(cors.Config{
		AllowOrigins:     allowOrigins,
		AllowMethods:     "GET,POST,PUT,DELETE,PATCH,OPTIONS",
		AllowHeaders:     "Origin,Content-Type,Accept,X-Requested-With,X-Request-ID",
		AllowCredentials: allowOrigins != "*",
		MaxAge:           86400,
	})
}

// SecurityHeaders adds security headers
func (m *AuthMiddleware) SecurityHeaders() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("X-XSS-Protection", "1; mode=block")
		c.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Set("Cache-Control", "no-store")
		return c.Next()
	}
}

// RateLimiter throttles the public login and reset endpoints per client address.
// The address is c.IP(); forwarded headers only count when the app trusts the
// proxy that sent them.
func (m *AuthMiddleware) RateLimiter() fiber.Handler {
	return limiter.New(limiter.Config{
		Max:               m.rateMax,
		Expiration:        m.rateEvery,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"success": false,
				"error":   "Too many attempts. Please try again later.",
			})
		},
	})
}

// RequestID assigns an X-Request-ID to every request.
func (m *AuthMiddleware) RequestID() fiber.Handler {
	return requestid.New(requestid.Config{
		Header:     fiber.HeaderXRequestID,
		ContextKey: string(contextkeys.RequestIDKey),
	})
}

// RequestContext copies the request id set by RequestID into the user context.
func (m *AuthMiddleware) RequestContext() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if id, ok := c.Locals(string(contextkeys.RequestIDKey)).(string); ok && id != "" {
			c.SetUserContext(utils.WithRequestID(c.UserContext(), id))
		}
		return c.Next()
	}
}

// SessionFromContext returns the session attached by Protect.
func SessionFromContext(c *fiber.Ctx) (*model.Session, bool) {
	session, ok := c.Locals(sessionLocalsKey).(*model.Session)
	return session, ok && session != nil
}

// SessionFrom returns the session stored in ctx by Protect.
func SessionFrom(ctx context.Context) (*model.Session, bool) {
	session, ok := ctx.Value(contextkeys.SessionKey).(*model.Session)
	return session, ok && session != nil
}
