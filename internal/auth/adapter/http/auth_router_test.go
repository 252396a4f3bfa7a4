package http_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	authhttp "betogether-admin/internal/auth/adapter/http"
	"betogether-admin/internal/auth/domain/model"
	"betogether-admin/internal/auth/usecase"
	apperrors "betogether-admin/internal/shared/errors"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type AuthHTTPTestSuite struct {
	suite.Suite
	app         *fiber.App
	mockUsecase *mockAuthUsecase
}

func (suite *AuthHTTPTestSuite) SetupTest() {
	suite.mockUsecase = &mockAuthUsecase{}
	suite.app = fiber.New()

	cfg := testConfig()
	handler := authhttp.NewAuthHTTPHandler(suite.mockUsecase, cfg, nil)
	handler.SetupAuthRoutesWithMiddleware(suite.app, authhttp.NewAuthMiddleware(suite.mockUsecase, cfg))
}

func jsonRequest(method, target string, body interface{}) *http.Request {
	raw, _ := json.Marshal(body)
	req := httptest.NewRequest(method, target, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decode(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func (suite *AuthHTTPTestSuite) TestLogin_Success() {
	session := &model.Session{ID: "s1", Token: "abc", ExpiresAt: time.Now().Add(time.Hour)}
	suite.mockUsecase.On("Login", mock.Anything, usecase.LoginRequest{Email: "admin01@gmail.com", Password: "admin@1212"}).
		Return(&usecase.LoginResult{
			Session:  session,
			Cookie:   "signed-cookie",
			Admin:    model.AdminProfile{Name: "Super Admin", Email: "admin01@gmail.com"},
			Redirect: "/home",
		}, nil)

	resp, err := suite.app.Test(jsonRequest("POST", "/login", map[string]string{
		"email":    "admin01@gmail.com",
		"password": "admin@1212",
	}))

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), http.StatusOK, resp.StatusCode)
	assert.Contains(suite.T(), resp.Header.Get("Set-Cookie"), "test_session=signed-cookie")
	assert.Contains(suite.T(), strings.ToLower(resp.Header.Get("Set-Cookie")), "httponly")

	body := decode(suite.T(), resp)
	assert.Equal(suite.T(), true, body["success"])
	assert.Equal(suite.T(), "/home", body["redirect"])
	suite.mockUsecase.AssertExpectations(suite.T())
}

func (suite *AuthHTTPTestSuite) TestLogin_Failures() {
	tests := []struct {
		name       string
		email      string
		err        error
		wantStatus int
		wantError  string
	}{
		{
			name:       "blank fields",
			email:      "blank@x.y",
			err:        apperrors.NewValidationErrors().Add("email", usecase.MsgFillAllFields, ""),
			wantStatus: http.StatusBadRequest,
			wantError:  usecase.MsgFillAllFields,
		},
		{
			name:       "server message",
			email:      "server@x.y",
			err:        apperrors.NewServerError("Invalid credentials", 400),
			wantStatus: http.StatusUnprocessableEntity,
			wantError:  "Invalid credentials",
		},
		{
			name:       "transport failure",
			email:      "down@x.y",
			err:        apperrors.NewNetworkError("request failed"),
			wantStatus: http.StatusBadGateway,
			wantError:  usecase.MsgLoginFailed,
		},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			suite.mockUsecase.On("Login", mock.Anything, usecase.LoginRequest{Email: tt.email, Password: "p"}).Return(nil, tt.err)

			resp, err := suite.app.Test(jsonRequest("POST", "/login", map[string]string{"email": tt.email, "password": "p"}))
			require.NoError(suite.T(), err)
			assert.Equal(suite.T(), tt.wantStatus, resp.StatusCode)
			assert.Empty(suite.T(), resp.Header.Get("Set-Cookie"))

			body := decode(suite.T(), resp)
			assert.Equal(suite.T(), false, body["success"])
			assert.Equal(suite.T(), tt.wantError, body["error"])
		})
	}
}

func (suite *AuthHTTPTestSuite) TestLogin_InvalidBody() {
	req := httptest.NewRequest("POST", "/login", strings.NewReader("{"))
	req.Header.Set("Content-Type", "application/json")

	resp, err := suite.app.Test(req)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), http.StatusBadRequest, resp.StatusCode)
	suite.mockUsecase.AssertNotCalled(suite.T(), "Login", mock.Anything, mock.Anything)
}

func (suite *AuthHTTPTestSuite) TestLoginPage() {
	suite.mockUsecase.On("Resolve", mock.Anything, "").Return(nil, apperrors.ErrSessionNotFound).Once()
	resp, err := suite.app.Test(httptest.NewRequest("GET", "/login", nil))
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), http.StatusOK, resp.StatusCode)

	suite.mockUsecase.On("Resolve", mock.Anything, "live").Return(&model.Session{ID: "s1", Token: "abc"}, nil).Once()
	req := httptest.NewRequest("GET", "/login", nil)
	req.AddCookie(&http.Cookie{Name: "test_session", Value: "live"})
	resp, err = suite.app.Test(req)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), http.StatusFound, resp.StatusCode)
	assert.Equal(suite.T(), "/home", resp.Header.Get("Location"))
}

func (suite *AuthHTTPTestSuite) TestLogout() {
	suite.mockUsecase.On("Resolve", mock.Anything, "live").Return(&model.Session{ID: "s1", Token: "abc"}, nil)
	suite.mockUsecase.On("Logout", mock.Anything, "s1").Return(nil)

	req := httptest.NewRequest("POST", "/logout", nil)
	req.AddCookie(&http.Cookie{Name: "test_session", Value: "live"})
	resp, err := suite.app.Test(req)

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), http.StatusOK, resp.StatusCode)
	assert.Contains(suite.T(), resp.Header.Get("Set-Cookie"), "test_session=;")
	assert.Equal(suite.T(), "/login", decode(suite.T(), resp)["redirect"])
	suite.mockUsecase.AssertExpectations(suite.T())
}

func (suite *AuthHTTPTestSuite) TestResetPassword() {
	expected := usecase.ResetPasswordRequest{
		Email:           "admin01@gmail.com",
		Token:           "reset-token",
		NewPassword:     "longenough",
		ConfirmPassword: "longenough",
	}
	suite.mockUsecase.On("ResetPassword", mock.Anything, expected).Return(usecase.MsgResetSucceeded, nil)

	resp, err := suite.app.Test(jsonRequest("POST", "/reset-password?email=admin01@gmail.com&token=reset-token",
		map[string]string{"newPassword": "longenough", "confirmPassword": "longenough"}))

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), http.StatusOK, resp.StatusCode)
	assert.Equal(suite.T(), usecase.MsgResetSucceeded, decode(suite.T(), resp)["message"])
}

func (suite *AuthHTTPTestSuite) TestResetPassword_Validation() {
	suite.mockUsecase.On("ResetPassword", mock.Anything, mock.Anything).
		Return("", apperrors.NewValidationError(usecase.MsgInvalidResetLink))

	resp, err := suite.app.Test(jsonRequest("POST", "/reset-password",
		map[string]string{"newPassword": "longenough", "confirmPassword": "longenough"}))

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), http.StatusBadRequest, resp.StatusCode)
	body := decode(suite.T(), resp)
	assert.Equal(suite.T(), false, body["success"])
	assert.Equal(suite.T(), usecase.MsgInvalidResetLink, body["message"])
}

func (suite *AuthHTTPTestSuite) TestResetPasswordPage() {
	resp, err := suite.app.Test(httptest.NewRequest("GET", "/reset-password?email=a@b.c", nil))
	require.NoError(suite.T(), err)
	body := decode(suite.T(), resp)
	assert.Equal(suite.T(), false, body["valid"])
	assert.Equal(suite.T(), usecase.MsgInvalidResetLink, body["message"])
}

func TestAuthHTTPTestSuite(t *testing.T) {
	suite.Run(t, new(AuthHTTPTestSuite))
}
