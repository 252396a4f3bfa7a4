package http

import (
	"time"

	"betogether-admin/internal/auth/config"

	"github.com/gofiber/fiber/v2"
)

// cookieJar writes and clears the session cookie with the configured attributes.
type cookieJar struct {
	name     string
	path     string
	domain   string
	secure   bool
	httpOnly bool
	sameSite string
}

func newCookieJar(cfg *config.Config) cookieJar {
	return cookieJar{
		name:     cfg.CookieName,
		path:     cfg.CookiePath,
		domain:   cfg.CookieDomain,
		secure:   cfg.CookieSecure,
		httpOnly: cfg.CookieHTTPOnly,
		sameSite: cfg.CookieSameSite,
	}
}

func (j cookieJar) set(c *fiber.Ctx, value string, expires time.Time) {
	c.Cookie(&fiber.Cookie{
		Name:     j.name,
		Value:    value,
		Path:     j.path,
		Domain:   j.domain,
		MaxAge:   int(time.Until(expires).Seconds()),
		Secure:   j.secure,
		HTTPOnly: j.httpOnly,
		SameSite: j.sameSite,
		Expires:  expires,
	})
}

func (j cookieJar) clear(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     j.name,
		Value:    "",
		Path:     j.path,
		Domain:   j.domain,
		MaxAge:   -1,
		Secure:   j.secure,
		HTTPOnly: j.httpOnly,
		SameSite: j.sameSite,
		Expires:  time.Now().Add(-1 * time.Hour),
	})
}

func (j cookieJar) read(c *fiber.Ctx) string {
	return c.Cookies(j.name)
}
