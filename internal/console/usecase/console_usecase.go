package usecase

import (
	"context"
	"errors"

	authmodel "betogether-admin/internal/auth/domain/model"
	"betogether-admin/internal/backend"
	"betogether-admin/internal/console/domain/model"
	"betogether-admin/internal/console/resource"
	apperrors "betogether-admin/internal/shared/errors"
	"betogether-admin/internal/shared/eventbus"
	"betogether-admin/internal/shared/logger"
	"betogether-admin/internal/shared/pagination"
	"betogether-admin/internal/shared/utils"
)

// ConsoleUsecaseInterface is every screen of the console behind the session guard.
type ConsoleUsecaseInterface interface {
	Home(ctx context.Context, s *authmodel.Session) (*HomeView, error)

	ListUsers(ctx context.Context, s *authmodel.Session, q ListQuery) (resource.View[model.User], error)

	ListCategories(ctx context.Context, s *authmodel.Session, q ListQuery) (resource.View[model.Category], error)
	CreateCategory(ctx context.Context, s *authmodel.Session, in model.CategoryInput) (resource.View[model.Category], error)
	UpdateCategory(ctx context.Context, s *authmodel.Session, id string, in model.CategoryInput) (resource.View[model.Category], error)
	DeleteCategory(ctx context.Context, s *authmodel.Session, id string, confirmed bool) (resource.View[model.Category], error)
	SuggestTags(ctx context.Context, s *authmodel.Session, req model.TagSuggestion) (*TagEditor, error)
	AddTag(tags model.TagSet, tag string) *TagEditor
	RemoveTag(tags model.TagSet, tag string) *TagEditor

	ListFakeUsers(ctx context.Context, s *authmodel.Session, q ListQuery) (resource.View[model.FakeUser], error)
	GenerateFakeUsers(ctx context.Context, s *authmodel.Session, batch model.FakeUserBatch) (resource.View[model.FakeUser], error)
	DeleteFakeUser(ctx context.Context, s *authmodel.Session, id string, confirmed bool) (resource.View[model.FakeUser], error)

	GetService(ctx context.Context, s *authmodel.Session, id string) (*model.Service, error)
	UpdateService(ctx context.Context, s *authmodel.Session, id string, in *model.ServiceInput) (*ActionResult, error)

	ListDeleteRequests(ctx context.Context, s *authmodel.Session, q ListQuery) (resource.View[model.DeleteRequest], error)
	ResolveDeleteRequest(ctx context.Context, s *authmodel.Session, action, id string, confirmed bool) (resource.View[model.DeleteRequest], error)

	PaymentSettings(ctx context.Context, s *authmodel.Session) (*model.PaymentView, error)
	UpdateCommission(ctx context.Context, s *authmodel.Session, in model.CommissionInput) (*PaymentResult, error)
	UpdateCancellation(ctx context.Context, s *authmodel.Session, in model.CancellationInput) (*PaymentResult, error)

	Profile(ctx context.Context, s *authmodel.Session) (*model.Profile, error)
	UpdateMobile(ctx context.Context, s *authmodel.Session, mobile string) (*ActionResult, error)
	SendEmailOTP(ctx context.Context, s *authmodel.Session, email string) (*ActionResult, error)
	VerifyEmailOTP(ctx context.Context, s *authmodel.Session, otp string) (*ActionResult, error)
	ChangePassword(ctx context.Context, s *authmodel.Session, in model.PasswordChange) (*ActionResult, error)
	UpdateSupport(ctx context.Context, s *authmodel.Session, in model.SupportInfo) (*ActionResult, error)
	MeasurePassword(password string) model.PasswordStrength

	ListPlans(ctx context.Context, s *authmodel.Session, q ListQuery) (resource.View[model.PromotionPlan], error)
	CreatePlan(ctx context.Context, s *authmodel.Session, in model.PlanInput) (resource.View[model.PromotionPlan], error)
	UpdatePlan(ctx context.Context, s *authmodel.Session, id string, in model.PlanInput) (resource.View[model.PromotionPlan], error)
	DeletePlan(ctx context.Context, s *authmodel.Session, id string, confirmed bool) (resource.View[model.PromotionPlan], error)

	EndSession(sessionID string)
}

// SessionTerminator ends a console session. The auth module implements it.
type SessionTerminator interface {
	Logout(ctx context.Context, sessionID string) error
}

// ListQuery is the pagination request of a list screen. Zero fields keep the
// current cursor.
type ListQuery struct {
	Page     int  `query:"page"`
	PageSize int  `query:"pageSize"`
	Refresh  bool `query:"refresh"`
}

// ActionResult is the outcome of a single-form action.
type ActionResult struct {
	Notification *model.Notification `json:"notification,omitempty"`
	// SessionEnded is set when the action logged the administrator out.
	SessionEnded bool   `json:"sessionEnded,omitempty"`
	Redirect     string `json:"redirect,omitempty"`
}

// NoticeError pairs a failure with the notification the screen shows for it.
type NoticeError struct {
	Err     error
	Message string
}

func (e *NoticeError) Error() string { return e.Message }

func (e *NoticeError) Unwrap() error { return e.Err }

// Notice returns the notification text for err, falling back to fallback.
func Notice(err error, fallback string) string {
	var ne *NoticeError
	if errors.As(err, &ne) {
		return ne.Message
	}
	return apperrors.UserMessage(err, fallback)
}

func fail(err error, fallback string) error {
	if err == nil {
		return nil
	}
	return &NoticeError{Err: err, Message: apperrors.UserMessage(err, fallback)}
}

func listFailure[T any](err error, v resource.View[T]) error {
	if err == nil {
		return nil
	}
	fallback := "Request failed"
	if v.Notification != nil && v.Notification.Kind == model.NotifyError {
		fallback = v.Notification.Message
	}
	return fail(err, fallback)
}

// ConsoleUsecase serves every management screen. Each session works on its own
// workspace of list controllers.
type ConsoleUsecase struct {
	client   *backend.Client
	registry *WorkspaceRegistry
	sessions SessionTerminator
	bus      eventbus.EventBusInterface
	logger   logger.Logger
}

// NewConsoleUsecase creates the console use case and subscribes it to session and
// mutation events on bus.
func NewConsoleUsecase(client *backend.Client, sessions SessionTerminator, bus eventbus.EventBusInterface, log logger.Logger) *ConsoleUsecase {
	if log == nil {
		log = logger.NewLogger()
	}
	if bus == nil {
		bus = eventbus.NewEventBus(log)
	}
	uc := &ConsoleUsecase{
		client:   client,
		sessions: sessions,
		bus:      bus,
		logger:   log.WithComponent("console"),
	}
	uc.registry = NewWorkspaceRegistry(uc.buildWorkspace)

	bus.Subscribe(eventbus.EventTypeSessionEnded, func(ctx context.Context, event eventbus.Event) error {
		if ended, ok := event.Data().(eventbus.SessionEnded); ok {
			uc.EndSession(ended.SessionID)
		}
		return nil
	})
	bus.Subscribe(eventbus.EventTypeResourceChanged, func(ctx context.Context, event eventbus.Event) error {
		if changed, ok := event.Data().(eventbus.ResourceChanged); ok {
			uc.logger.WithFields(map[string]interface{}{
				"session_id": changed.SessionID,
				"admin":      changed.AdminEmail,
				"resource":   changed.Resource,
				"op":         changed.Op,
				"item_id":    changed.ID,
				"count":      changed.Count,
			}).Info("console resource changed")
		}
		return nil
	})
	return uc
}

// Registry exposes the workspace registry.
func (uc *ConsoleUsecase) Registry() *WorkspaceRegistry {
	return uc.registry
}

// EndSession forgets the workspace of sessionID.
func (uc *ConsoleUsecase) EndSession(sessionID string) {
	uc.registry.Drop(sessionID)
}

func (uc *ConsoleUsecase) buildWorkspace(sessionID string) *Workspace {
	ws := newWorkspace()
	observe := func(ctx context.Context, m resource.Mutation) {
		email, _ := utils.GetAdminEmailFromContext(ctx)
		event := eventbus.ResourceChanged{
			SessionID:  sessionID,
			AdminEmail: email,
			Resource:   m.Resource,
			Op:         m.Op,
			ID:         m.ID,
			Count:      m.Count,
		}.Event("console")
		if err := uc.bus.Publish(ctx, event); err != nil {
			uc.logger.WithContext(ctx).Warnf("failed to publish %s event: %v", m.Resource, err)
		}
	}
	ws.Users.Observe(observe)
	ws.Categories.Observe(observe)
	ws.FakeUsers.Observe(observe)
	ws.DeleteRequests.Observe(observe)
	ws.Plans.Observe(observe)
	return ws
}

func (uc *ConsoleUsecase) session(s *authmodel.Session) (*Workspace, *backend.Caller, error) {
	if !s.HasToken() {
		return nil, nil, apperrors.NewAuthenticationError("session has no token").WithCause(apperrors.ErrUnauthorized)
	}
	return uc.registry.For(s.ID), uc.client.As(s.Token), nil
}

func (uc *ConsoleUsecase) caller(s *authmodel.Session) (*backend.Caller, error) {
	if !s.HasToken() {
		return nil, apperrors.NewAuthenticationError("session has no token").WithCause(apperrors.ErrUnauthorized)
	}
	return uc.client.As(s.Token), nil
}

// browse applies q to a list controller, loading it when needed.
func browse[T any](ctx context.Context, c *resource.ListController[T], api *backend.Caller, q ListQuery) (resource.View[T], error) {
	current := c.View()
	cur := pagination.Cursor{Page: q.Page, PageSize: q.PageSize}
	if cur.Page == 0 {
		cur.Page = current.Page
	}
	if cur.PageSize == 0 {
		cur.PageSize = current.PageSize
	}
	var (
		v   resource.View[T]
		err error
	)
	if q.Refresh {
		v, err = c.Reload(ctx, api, cur)
	} else {
		v, err = c.SetPage(ctx, api, cur)
	}
	return v, listFailure(err, v)
}
