package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	authmodel "betogether-admin/internal/auth/domain/model"
	consolehttp "betogether-admin/internal/console/adapter/http"
	"betogether-admin/internal/console/domain/model"
	"betogether-admin/internal/console/resource"
	"betogether-admin/internal/console/usecase"
	"betogether-admin/internal/shared/contextkeys"
	apperrors "betogether-admin/internal/shared/errors"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type fakeGuard struct {
	session *authmodel.Session
	cleared int
}

func (g *fakeGuard) Protect() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !g.session.HasToken() {
			return c.Redirect("/login", fiber.StatusFound)
		}
		c.SetUserContext(context.WithValue(c.UserContext(), contextkeys.SessionKey, g.session))
		return c.Next()
	}
}

func (g *fakeGuard) ClearSession(c *fiber.Ctx) {
	g.cleared++
	c.ClearCookie("test_session")
}

func (g *fakeGuard) LoginPath() string { return "/login" }

type mockTerminator struct {
	mock.Mock
}

func (m *mockTerminator) Logout(ctx context.Context, sessionID string) error {
	return m.Called(ctx, sessionID).Error(0)
}

type ConsoleHTTPTestSuite struct {
	suite.Suite
	app      *fiber.App
	uc       *mockConsoleUsecase
	guard    *fakeGuard
	sessions *mockTerminator
	session  *authmodel.Session
}

func (s *ConsoleHTTPTestSuite) SetupTest() {
	s.uc = &mockConsoleUsecase{}
	s.sessions = &mockTerminator{}
	s.session = &authmodel.Session{ID: "s1", Token: "abc"}
	s.guard = &fakeGuard{session: s.session}
	s.app = fiber.New()
	consolehttp.NewConsoleHTTPHandler(s.uc, s.guard, s.sessions, nil).RegisterRoutes(s.app)
}

func TestConsoleHTTPTestSuite(t *testing.T) {
	suite.Run(t, new(ConsoleHTTPTestSuite))
}

func jsonRequest(method, target string, body interface{}) *http.Request {
	raw, _ := json.Marshal(body)
	req := httptest.NewRequest(method, target, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func (s *ConsoleHTTPTestSuite) do(req *http.Request) (int, map[string]interface{}) {
	resp, err := s.app.Test(req)
	s.Require().NoError(err)
	var body map[string]interface{}
	if resp.StatusCode != http.StatusFound {
		require.NoError(s.T(), json.NewDecoder(resp.Body).Decode(&body))
	}
	return resp.StatusCode, body
}

func (s *ConsoleHTTPTestSuite) TestGuardRedirectsWithoutSession() {
	s.guard.session = nil

	resp, err := s.app.Test(httptest.NewRequest(http.MethodGet, "/users", nil))
	s.Require().NoError(err)
	s.Equal(http.StatusFound, resp.StatusCode)
	s.Equal("/login", resp.Header.Get("Location"))
	s.uc.AssertNotCalled(s.T(), "ListUsers", mock.Anything, mock.Anything, mock.Anything)
}

func (s *ConsoleHTTPTestSuite) TestListUsers_ParsesPagination() {
	view := resource.View[model.User]{
		Items:      []model.User{{ID: "u11"}, {ID: "u12"}},
		Page:       2,
		PageSize:   10,
		TotalPages: 2,
	}
	s.uc.On("ListUsers", mock.Anything, s.session, usecase.ListQuery{Page: 2, PageSize: 10}).Return(view, nil)

	status, body := s.do(httptest.NewRequest(http.MethodGet, "/users?page=2&pageSize=10", nil))
	s.Equal(http.StatusOK, status)
	s.Equal(true, body["success"])
	data := body["data"].(map[string]interface{})
	s.Equal(float64(2), data["totalPages"])
	s.Len(data["items"], 2)
}

func (s *ConsoleHTTPTestSuite) TestListFailureKeepsStaleItems() {
	view := resource.View[model.User]{Items: []model.User{{ID: "u1"}}, Page: 1, PageSize: 10, TotalPages: 1}
	err := &usecase.NoticeError{Err: apperrors.NewServerError("Failed to fetch users", 400), Message: "Failed to fetch users"}
	s.uc.On("ListUsers", mock.Anything, s.session, usecase.ListQuery{Refresh: true}).Return(view, err)

	status, body := s.do(httptest.NewRequest(http.MethodGet, "/users?refresh=true", nil))
	s.Equal(http.StatusUnprocessableEntity, status)
	s.Equal(false, body["success"])
	s.Equal("Failed to fetch users", body["error"])
	s.Len(body["data"].(map[string]interface{})["items"], 1)
}

func (s *ConsoleHTTPTestSuite) TestRejectedTokenEndsSession() {
	err := apperrors.NewAuthenticationError("token rejected").WithCause(apperrors.ErrUnauthorized)
	s.uc.On("Profile", mock.Anything, s.session).Return(nil, err)
	s.uc.On("EndSession", "s1").Return()
	s.sessions.On("Logout", mock.Anything, "s1").Return(nil)

	status, body := s.do(httptest.NewRequest(http.MethodGet, "/profile", nil))
	s.Equal(http.StatusUnauthorized, status)
	s.Equal("/login", body["redirect"])
	s.Equal("Session expired. Please login again.", body["error"])
	s.Equal(1, s.guard.cleared)
	s.sessions.AssertExpectations(s.T())
	s.uc.AssertExpectations(s.T())
}

func (s *ConsoleHTTPTestSuite) TestDeleteCategory_RequiresConfirmation() {
	confirm := apperrors.NewConfirmationError("Are you sure you want to delete this category?")
	s.uc.On("DeleteCategory", mock.Anything, s.session, "c1", false).
		Return(resource.View[model.Category]{}, &usecase.NoticeError{Err: confirm, Message: confirm.Message})
	s.uc.On("DeleteCategory", mock.Anything, s.session, "c1", true).
		Return(resource.View[model.Category]{Notification: model.Success("Category deleted successfully")}, nil)

	status, body := s.do(httptest.NewRequest(http.MethodDelete, "/categories/c1", nil))
	s.Equal(http.StatusPreconditionRequired, status)
	s.Equal("Are you sure you want to delete this category?", body["error"])

	status, body = s.do(httptest.NewRequest(http.MethodDelete, "/categories/c1?confirm=true", nil))
	s.Equal(http.StatusOK, status)
	notice := body["data"].(map[string]interface{})["notification"].(map[string]interface{})
	s.Equal("Category deleted successfully", notice["message"])
}

func (s *ConsoleHTTPTestSuite) TestCreateCategory_Multipart() {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	s.Require().NoError(w.WriteField("name", "Sports"))
	s.Require().NoError(w.WriteField("tags", `["football","cricket"]`))
	part, err := w.CreateFormFile("image", "sports.png")
	s.Require().NoError(err)
	_, _ = part.Write([]byte("png-bytes"))
	s.Require().NoError(w.Close())

	s.uc.On("CreateCategory", mock.Anything, s.session, mock.MatchedBy(func(in model.CategoryInput) bool {
		return in.Name == "Sports" &&
			len(in.Tags) == 2 && in.Tags[1] == "cricket" &&
			in.Image != nil && in.Image.FileName == "sports.png" && string(in.Image.Content) == "png-bytes"
	})).Return(resource.View[model.Category]{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/categories", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	status, _ := s.do(req)
	s.Equal(http.StatusOK, status)
	s.uc.AssertExpectations(s.T())
}

func (s *ConsoleHTTPTestSuite) TestCreateCategory_ValidationError() {
	verr := apperrors.NewValidationErrors().Add("tags", "Please provide at least one tag", nil)
	s.uc.On("CreateCategory", mock.Anything, s.session, mock.Anything).
		Return(resource.View[model.Category]{}, &usecase.NoticeError{Err: verr, Message: "Please provide at least one tag"})

	status, body := s.do(jsonRequest(http.MethodPost, "/categories", map[string]interface{}{"name": "Sports"}))
	s.Equal(http.StatusBadRequest, status)
	s.Equal("Please provide at least one tag", body["error"])
}

func (s *ConsoleHTTPTestSuite) TestGenerateFakeUsers_DefaultsCount() {
	s.uc.On("GenerateFakeUsers", mock.Anything, s.session, model.FakeUserBatch{Count: model.DefaultFakeUserCount}).
		Return(resource.View[model.FakeUser]{}, nil)

	status, _ := s.do(httptest.NewRequest(http.MethodPost, "/fake-users/generate", nil))
	s.Equal(http.StatusOK, status)
	s.uc.AssertExpectations(s.T())
}

func (s *ConsoleHTTPTestSuite) TestResolveDeleteRequest() {
	s.uc.On("ResolveDeleteRequest", mock.Anything, s.session, usecase.ActionReject, "svc-1", true).
		Return(resource.View[model.DeleteRequest]{}, nil)

	status, _ := s.do(httptest.NewRequest(http.MethodPost, "/delete-requests/svc-1/reject?confirm=true", nil))
	s.Equal(http.StatusOK, status)
	s.uc.AssertExpectations(s.T())
}

func (s *ConsoleHTTPTestSuite) TestUpdateService_Multipart() {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range map[string]string{
		"title":         "Yoga",
		"price":         "120",
		"isFree":        "false",
		"scheduleType":  "recurring",
		"recurringDays": `["MON","WED"]`,
		"tags":          "yoga, wellness",
		"location":      `{"name":"Park","latitude":12.5,"longitude":77.1}`,
	} {
		s.Require().NoError(w.WriteField(k, v))
	}
	s.Require().NoError(w.Close())

	s.uc.On("UpdateService", mock.Anything, s.session, "svc-1", mock.MatchedBy(func(in *model.ServiceInput) bool {
		return in.Title == "Yoga" && in.Price == 120 &&
			in.ScheduleType == model.ScheduleRecurring &&
			len(in.RecurringDays) == 2 &&
			len(in.Tags) == 2 && in.Tags[1] == "wellness" &&
			in.Location != nil && in.Location.Latitude == 12.5 &&
			in.Image == nil
	})).Return(&usecase.ActionResult{Notification: model.Success(usecase.MsgServiceUpdated)}, nil)

	req := httptest.NewRequest(http.MethodPatch, "/services/svc-1", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	status, _ := s.do(req)
	s.Equal(http.StatusOK, status)
	s.uc.AssertExpectations(s.T())
}

func (s *ConsoleHTTPTestSuite) TestChangePassword_ClearsCookie() {
	in := model.PasswordChange{OldPassword: "Old@1234", NewPassword: "New@12345"}
	s.uc.On("ChangePassword", mock.Anything, s.session, in).
		Return(&usecase.ActionResult{Notification: model.Success(usecase.MsgPasswordUpdated), SessionEnded: true, Redirect: "/login"}, nil)

	status, body := s.do(jsonRequest(http.MethodPut, "/profile/password", in))
	s.Equal(http.StatusOK, status)
	s.Equal("/login", body["data"].(map[string]interface{})["redirect"])
	s.Equal(1, s.guard.cleared)
}

func (s *ConsoleHTTPTestSuite) TestUpdateMobile_ServerMessage() {
	err := &usecase.NoticeError{Err: apperrors.NewServerError("Mobile already in use", 400), Message: "Mobile already in use"}
	s.uc.On("UpdateMobile", mock.Anything, s.session, "99999").Return(nil, err)

	status, body := s.do(jsonRequest(http.MethodPut, "/profile/mobile", map[string]string{"mobile": "99999"}))
	s.Equal(http.StatusUnprocessableEntity, status)
	s.Equal("Mobile already in use", body["error"])
}

func (s *ConsoleHTTPTestSuite) TestPaymentSettings_NetworkFailure() {
	s.uc.On("PaymentSettings", mock.Anything, s.session).Return(nil, apperrors.NewNetworkError("request failed"))

	status, body := s.do(httptest.NewRequest(http.MethodGet, "/payment-settings", nil))
	s.Equal(http.StatusBadGateway, status)
	s.Equal(usecase.MsgSettingsLoadFailed, body["error"])
}

func (s *ConsoleHTTPTestSuite) TestMeasurePassword() {
	s.uc.On("MeasurePassword", "Abcdef1!").Return(model.PasswordStrength{Score: 4, Label: "Strong"})

	status, body := s.do(jsonRequest(http.MethodPost, "/profile/password-strength", map[string]string{"password": "Abcdef1!"}))
	s.Equal(http.StatusOK, status)
	s.Equal("Strong", body["data"].(map[string]interface{})["label"])
}

func (s *ConsoleHTTPTestSuite) TestAddTag() {
	s.uc.On("AddTag", model.TagSet{"a"}, "b").Return(&usecase.TagEditor{Tags: model.TagSet{"a", "b"}})

	status, body := s.do(jsonRequest(http.MethodPost, "/categories/tags/add", map[string]interface{}{"tags": []string{"a"}, "tag": "b"}))
	s.Equal(http.StatusOK, status)
	s.Equal([]interface{}{"a", "b"}, body["data"].(map[string]interface{})["tags"])
}

func (s *ConsoleHTTPTestSuite) TestInvalidBody() {
	req := httptest.NewRequest(http.MethodPost, "/promotion-plans", strings.NewReader("{"))
	req.Header.Set("Content-Type", "application/json")

	status, _ := s.do(req)
	s.Equal(http.StatusBadRequest, status)
	s.uc.AssertNotCalled(s.T(), "CreatePlan", mock.Anything, mock.Anything, mock.Anything)
}
