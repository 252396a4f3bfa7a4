package http_test

import (
	"context"

	authmodel "betogether-admin/internal/auth/domain/model"
	"betogether-admin/internal/console/domain/model"
	"betogether-admin/internal/console/resource"
	"betogether-admin/internal/console/usecase"

	"github.com/stretchr/testify/mock"
)

type mockConsoleUsecase struct {
	mock.Mock
}

func viewOf[T any](args mock.Arguments) (resource.View[T], error) {
	v, _ := args.Get(0).(resource.View[T])
	return v, args.Error(1)
}

func (m *mockConsoleUsecase) Home(ctx context.Context, s *authmodel.Session) (*usecase.HomeView, error) {
	args := m.Called(ctx, s)
	v, _ := args.Get(0).(*usecase.HomeView)
	return v, args.Error(1)
}

func (m *mockConsoleUsecase) ListUsers(ctx context.Context, s *authmodel.Session, q usecase.ListQuery) (resource.View[model.User], error) {
	return viewOf[model.User](m.Called(ctx, s, q))
}

func (m *mockConsoleUsecase) ListCategories(ctx context.Context, s *authmodel.Session, q usecase.ListQuery) (resource.View[model.Category], error) {
	return viewOf[model.Category](m.Called(ctx, s, q))
}

func (m *mockConsoleUsecase) CreateCategory(ctx context.Context, s *authmodel.Session, in model.CategoryInput) (resource.View[model.Category], error) {
	return viewOf[model.Category](m.Called(ctx, s, in))
}

func (m *mockConsoleUsecase) UpdateCategory(ctx context.Context, s *authmodel.Session, id string, in model.CategoryInput) (resource.View[model.Category], error) {
	return viewOf[model.Category](m.Called(ctx, s, id, in))
}

func (m *mockConsoleUsecase) DeleteCategory(ctx context.Context, s *authmodel.Session, id string, confirmed bool) (resource.View[model.Category], error) {
	return viewOf[model.Category](m.Called(ctx, s, id, confirmed))
}

func (m *mockConsoleUsecase) SuggestTags(ctx context.Context, s *authmodel.Session, req model.TagSuggestion) (*usecase.TagEditor, error) {
	args := m.Called(ctx, s, req)
	v, _ := args.Get(0).(*usecase.TagEditor)
	return v, args.Error(1)
}

func (m *mockConsoleUsecase) AddTag(tags model.TagSet, tag string) *usecase.TagEditor {
	return m.Called(tags, tag).Get(0).(*usecase.TagEditor)
}

func (m *mockConsoleUsecase) RemoveTag(tags model.TagSet, tag string) *usecase.TagEditor {
	return m.Called(tags, tag).Get(0).(*usecase.TagEditor)
}

func (m *mockConsoleUsecase) ListFakeUsers(ctx context.Context, s *authmodel.Session, q usecase.ListQuery) (resource.View[model.FakeUser], error) {
	return viewOf[model.FakeUser](m.Called(ctx, s, q))
}

func (m *mockConsoleUsecase) GenerateFakeUsers(ctx context.Context, s *authmodel.Session, batch model.FakeUserBatch) (resource.View[model.FakeUser], error) {
	return viewOf[model.FakeUser](m.Called(ctx, s, batch))
}

func (m *mockConsoleUsecase) DeleteFakeUser(ctx context.Context, s *authmodel.Session, id string, confirmed bool) (resource.View[model.FakeUser], error) {
	return viewOf[model.FakeUser](m.Called(ctx, s, id, confirmed))
}

func (m *mockConsoleUsecase) GetService(ctx context.Context, s *authmodel.Session, id string) (*model.Service, error) {
	args := m.Called(ctx, s, id)
	v, _ := args.Get(0).(*model.Service)
	return v, args.Error(1)
}

func (m *mockConsoleUsecase) UpdateService(ctx context.Context, s *authmodel.Session, id string, in *model.ServiceInput) (*usecase.ActionResult, error) {
	args := m.Called(ctx, s, id, in)
	v, _ := args.Get(0).(*usecase.ActionResult)
	return v, args.Error(1)
}

func (m *mockConsoleUsecase) ListDeleteRequests(ctx context.Context, s *authmodel.Session, q usecase.ListQuery) (resource.View[model.DeleteRequest], error) {
	return viewOf[model.DeleteRequest](m.Called(ctx, s, q))
}

func (m *mockConsoleUsecase) ResolveDeleteRequest(ctx context.Context, s *authmodel.Session, action, id string, confirmed bool) (resource.View[model.DeleteRequest], error) {
	return viewOf[model.DeleteRequest](m.Called(ctx, s, action, id, confirmed))
}

func (m *mockConsoleUsecase) PaymentSettings(ctx context.Context, s *authmodel.Session) (*model.PaymentView, error) {
	args := m.Called(ctx, s)
	v, _ := args.Get(0).(*model.PaymentView)
	return v, args.Error(1)
}

func (m *mockConsoleUsecase) UpdateCommission(ctx context.Context, s *authmodel.Session, in model.CommissionInput) (*usecase.PaymentResult, error) {
	args := m.Called(ctx, s, in)
	v, _ := args.Get(0).(*usecase.PaymentResult)
	return v, args.Error(1)
}

func (m *mockConsoleUsecase) UpdateCancellation(ctx context.Context, s *authmodel.Session, in model.CancellationInput) (*usecase.PaymentResult, error) {
	args := m.Called(ctx, s, in)
	v, _ := args.Get(0).(*usecase.PaymentResult)
	return v, args.Error(1)
}

func (m *mockConsoleUsecase) Profile(ctx context.Context, s *authmodel.Session) (*model.Profile, error) {
	args := m.Called(ctx, s)
	v, _ := args.Get(0).(*model.Profile)
	return v, args.Error(1)
}

func (m *mockConsoleUsecase) action(args mock.Arguments) (*usecase.ActionResult, error) {
	v, _ := args.Get(0).(*usecase.ActionResult)
	return v, args.Error(1)
}

func (m *mockConsoleUsecase) UpdateMobile(ctx context.Context, s *authmodel.Session, mobile string) (*usecase.ActionResult, error) {
	return m.action(m.Called(ctx, s, mobile))
}

func (m *mockConsoleUsecase) SendEmailOTP(ctx context.Context, s *authmodel.Session, email string) (*usecase.ActionResult, error) {
	return m.action(m.Called(ctx, s, email))
}

func (m *mockConsoleUsecase) VerifyEmailOTP(ctx context.Context, s *authmodel.Session, otp string) (*usecase.ActionResult, error) {
	return m.action(m.Called(ctx, s, otp))
}

func (m *mockConsoleUsecase) ChangePassword(ctx context.Context, s *authmodel.Session, in model.PasswordChange) (*usecase.ActionResult, error) {
	return m.action(m.Called(ctx, s, in))
}

func (m *mockConsoleUsecase) UpdateSupport(ctx context.Context, s *authmodel.Session, in model.SupportInfo) (*usecase.ActionResult, error) {
	return m.action(m.Called(ctx, s, in))
}

func (m *mockConsoleUsecase) MeasurePassword(password string) model.PasswordStrength {
	return m.Called(password).Get(0).(model.PasswordStrength)
}

func (m *mockConsoleUsecase) ListPlans(ctx context.Context, s *authmodel.Session, q usecase.ListQuery) (resource.View[model.PromotionPlan], error) {
	return viewOf[model.PromotionPlan](m.Called(ctx, s, q))
}

func (m *mockConsoleUsecase) CreatePlan(ctx context.Context, s *authmodel.Session, in model.PlanInput) (resource.View[model.PromotionPlan], error) {
	return viewOf[model.PromotionPlan](m.Called(ctx, s, in))
}

func (m *mockConsoleUsecase) UpdatePlan(ctx context.Context, s *authmodel.Session, id string, in model.PlanInput) (resource.View[model.PromotionPlan], error) {
	return viewOf[model.PromotionPlan](m.Called(ctx, s, id, in))
}

func (m *mockConsoleUsecase) DeletePlan(ctx context.Context, s *authmodel.Session, id string, confirmed bool) (resource.View[model.PromotionPlan], error) {
	return viewOf[model.PromotionPlan](m.Called(ctx, s, id, confirmed))
}

func (m *mockConsoleUsecase) EndSession(sessionID string) {
	m.Called(sessionID)
}

var _ usecase.ConsoleUsecaseInterface = (*mockConsoleUsecase)(nil)
