package http_test

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	authhttp "betogether-admin/internal/auth/adapter/http"
	"betogether-admin/internal/auth/config"
	"betogether-admin/internal/auth/domain/model"
	apperrors "betogether-admin/internal/shared/errors"
	"betogether-admin/internal/shared/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

func testConfig() *config.Config {
	cfg := &config.Config{
		SessionSecret:   "test-secret",
		SessionTTL:      time.Hour,
		CookieName:      "test_session",
		CookiePath:      "/",
		CookieHTTPOnly:  true,
		CookieSameSite:  "Lax",
		LoginPath:       "/login",
		HomePath:        "/home",
		LoginRateLimit:  100,
		LoginRateWindow: time.Minute,
	}
	return cfg
}

type MiddlewareTestSuite struct {
	suite.Suite
	app        *fiber.App
	mockUC     *mockAuthUsecase
	middleware *authhttp.AuthMiddleware
	reached    bool
}

func (suite *MiddlewareTestSuite) SetupTest() {
	suite.mockUC = &mockAuthUsecase{}
	suite.middleware = authhttp.NewAuthMiddleware(suite.mockUC, testConfig())
	suite.reached = false
	suite.app = fiber.New()
	suite.app.Get("/home", suite.middleware.Protect(), func(c *fiber.Ctx) error {
		suite.reached = true
		session, ok := authhttp.SessionFromContext(c)
		if !ok {
			return c.Status(500).JSON(fiber.Map{"error": "session not found"})
		}
		fromCtx, ok := authhttp.SessionFrom(c.UserContext())
		if !ok || fromCtx.ID != session.ID {
			return c.Status(500).JSON(fiber.Map{"error": "session not in context"})
		}
		email, _ := utils.GetAdminEmailFromContext(c.UserContext())
		return c.JSON(fiber.Map{"admin": session.Admin.Name, "email": email})
	})
}

func (suite *MiddlewareTestSuite) TestProtect_NoCookieRedirects() {
	suite.mockUC.On("Resolve", mock.Anything, "").Return(nil, apperrors.ErrSessionNotFound)

	resp, err := suite.app.Test(httptest.NewRequest("GET", "/home", nil))

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), http.StatusFound, resp.StatusCode)
	assert.Equal(suite.T(), "/login", resp.Header.Get("Location"))
	body, _ := io.ReadAll(resp.Body)
	assert.Empty(suite.T(), body)
	assert.False(suite.T(), suite.reached)
}

func (suite *MiddlewareTestSuite) TestProtect_InvalidCookieIsCleared() {
	suite.mockUC.On("Resolve", mock.Anything, "forged").
		Return(nil, apperrors.NewAuthenticationError("invalid session cookie"))

	req := httptest.NewRequest("GET", "/home", nil)
	req.AddCookie(&http.Cookie{Name: "test_session", Value: "forged"})
	resp, err := suite.app.Test(req)

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), http.StatusFound, resp.StatusCode)
	assert.Contains(suite.T(), resp.Header.Get("Set-Cookie"), "test_session=;")
	assert.False(suite.T(), suite.reached)
}

func (suite *MiddlewareTestSuite) TestProtect_SessionWithoutToken() {
	suite.mockUC.On("Resolve", mock.Anything, "cookie").Return(&model.Session{ID: "s1"}, nil)

	req := httptest.NewRequest("GET", "/home", nil)
	req.AddCookie(&http.Cookie{Name: "test_session", Value: "cookie"})
	resp, err := suite.app.Test(req)

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), http.StatusFound, resp.StatusCode)
	assert.False(suite.T(), suite.reached)
}

func (suite *MiddlewareTestSuite) TestProtect_ValidSession() {
	session := &model.Session{
		ID:    "s1",
		Token: "abc",
		Admin: model.AdminProfile{Name: "Super Admin", Email: "admin01@gmail.com"},
	}
	suite.mockUC.On("Resolve", mock.Anything, "cookie").Return(session, nil)

	req := httptest.NewRequest("GET", "/home", nil)
	req.AddCookie(&http.Cookie{Name: "test_session", Value: "cookie"})
	resp, err := suite.app.Test(req)

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), http.StatusOK, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.JSONEq(suite.T(), `{"admin":"Super Admin","email":"admin01@gmail.com"}`, string(body))
	assert.True(suite.T(), suite.reached)
}

func TestMiddlewareTestSuite(t *testing.T) {
	suite.Run(t, new(MiddlewareTestSuite))
}

func TestRateLimiter(t *testing.T) {
	cfg := testConfig()
	cfg.LoginRateLimit = 2
	mw := authhttp.NewAuthMiddleware(&mockAuthUsecase{}, cfg)

	app := fiber.New()
	app.Post("/login", mw.RateLimiter(), func(c *fiber.Ctx) error { return c.SendStatus(http.StatusOK) })

	var last int
	for i := 0; i < 3; i++ {
		resp, err := app.Test(httptest.NewRequest("POST", "/login", nil))
		require.NoError(t, err)
		last = resp.StatusCode
	}
	assert.Equal(t, http.StatusTooManyRequests, last)
}

func TestRateLimiter_IgnoresSpoofedForwardedFor(t *testing.T) {
	cfg := testConfig()
	cfg.LoginRateLimit = 2
	mw := authhttp.NewAuthMiddleware(&mockAuthUsecase{}, cfg)

	app := fiber.New()
	app.Post("/login", mw.RateLimiter(), func(c *fiber.Ctx) error { return c.SendStatus(http.StatusOK) })

	passed := 0
	for i := 0; i < 10; i++ {
		req := httptest.NewRequest("POST", "/login", nil)
		req.Header.Set("X-Forwarded-For", fmt.Sprintf("203.0.113.%d", i+1))
		resp, err := app.Test(req)
		require.NoError(t, err)
		if resp.StatusCode == http.StatusOK {
			passed++
		}
	}
	assert.Equal(t, 2, passed)
}

func TestRequestID(t *testing.T) {
	mw := authhttp.NewAuthMiddleware(&mockAuthUsecase{}, testConfig())

	app := fiber.New()
	app.Use(mw.RequestID(), mw.RequestContext(), mw.SecurityHeaders())
	app.Get("/", func(c *fiber.Ctx) error {
		id, err := utils.GetRequestIDFromContext(c.UserContext())
		if err != nil {
			return c.SendStatus(http.StatusInternalServerError)
		}
		return c.SendString(id)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.NotEmpty(t, body)
	assert.Equal(t, string(body), resp.Header.Get("X-Request-ID"))
	assert.Equal(t, "nosniff", resp.Header.Get("X-Content-Type-Options"))
}
