package usecase

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"betogether-admin/internal/backend"
	"betogether-admin/internal/backend/config"
	"betogether-admin/internal/console/domain/model"
	"betogether-admin/internal/console/resource"
	apperrors "betogether-admin/internal/shared/errors"
	"betogether-admin/internal/shared/pagination"
)

// Resource names, also used as event and log labels.
const (
	ResourceUsers          = "users"
	ResourceCategories     = "categories"
	ResourceFakeUsers      = "fake-users"
	ResourceDeleteRequests = "delete-requests"
	ResourcePlans          = "promotion-plans"
)

// Delete request actions.
const (
	ActionApprove = "approve"
	ActionReject  = "reject"
)

type categoryPage struct {
	backend.Status
	Data       []model.Category `json:"data"`
	TotalPages int              `json:"totalPages"`
}

type fakeUserBatchResponse struct {
	backend.Status
	GeneratedUsers []model.FakeUser `json:"generatedUsers"`
}

type plansResponse struct {
	backend.Status
	Plans []model.PromotionPlan `json:"plans"`
}

func usersResource() resource.Resource[model.User] {
	return resource.Resource[model.User]{
		Name: ResourceUsers,
		ID:   func(u model.User) string { return u.ID },
		Endpoints: resource.Endpoints[model.User]{
			List: func(ctx context.Context, api *backend.Caller, _ pagination.Cursor) (resource.Page[model.User], error) {
				var out backend.DataResponse[[]model.User]
				if err := api.Do(ctx, backend.Get("/alluser"), &out); err != nil {
					return resource.Page[model.User]{}, err
				}
				return resource.Page[model.User]{Items: out.Data}, nil
			},
		},
		Policy: resource.Policy{Pagination: resource.Local},
		Messages: resource.Messages{
			Loaded:     "Users fetched successfully",
			LoadFailed: "Error fetching users",
		},
	}
}

func categoriesResource() resource.Resource[model.Category] {
	return resource.Resource[model.Category]{
		Name: ResourceCategories,
		ID:   func(c model.Category) string { return c.ID },
		Endpoints: resource.Endpoints[model.Category]{
			List: func(ctx context.Context, api *backend.Caller, cur pagination.Cursor) (resource.Page[model.Category], error) {
				var out categoryPage
				body := map[string]int{"page": cur.Page, "limit": cur.PageSize}
				if err := api.Do(ctx, backend.Post("/category/all", body), &out); err != nil {
					return resource.Page[model.Category]{}, err
				}
				return resource.Page[model.Category]{Items: out.Data, TotalPages: out.TotalPages}, nil
			},
			Create: func(ctx context.Context, api *backend.Caller, p resource.Payload) (model.Category, error) {
				return saveCategory(ctx, api, http.MethodPost, "/category/create", p)
			},
			Update: func(ctx context.Context, api *backend.Caller, id string, p resource.Payload) (model.Category, error) {
				return saveCategory(ctx, api, http.MethodPut, "/category/update/"+id, p)
			},
			Delete: func(ctx context.Context, api *backend.Caller, id string) error {
				return api.Do(ctx, backend.Delete("/category/delete/"+id), &backend.Ack{})
			},
		},
		Policy: resource.Policy{
			Pagination:  resource.Server,
			AfterCreate: resource.Refetch,
			AfterUpdate: resource.Refetch,
			AfterDelete: resource.Refetch,
		},
		Messages: resource.Messages{
			LoadFailed:    "Failed to fetch categories",
			Created:       "Category created successfully",
			Updated:       "Category updated successfully",
			SaveFailed:    "Failed to save category",
			Deleted:       "Category deleted successfully",
			DeleteFailed:  "Failed to delete category",
			ConfirmDelete: "Are you sure you want to delete this category?",
		},
	}
}

func saveCategory(ctx context.Context, api *backend.Caller, method, path string, p resource.Payload) (model.Category, error) {
	in, ok := resource.As[model.CategoryInput](p)
	if !ok {
		return model.Category{}, apperrors.ErrUnsupported
	}
	form := backend.NewForm().Set("name", strings.TrimSpace(in.Name))
	if err := form.SetJSON("tags", in.Tags.Strings()); err != nil {
		return model.Category{}, apperrors.NewInternalError("failed to encode tags").WithCause(err)
	}
	if in.Image != nil {
		form.Attach("image", toFile(in.Image))
	}
	// The screen re-fetches after saving, so only the acknowledgement is decoded.
	if err := api.Do(ctx, backend.Multipart(method, path, form), &backend.Ack{}); err != nil {
		return model.Category{}, err
	}
	return model.Category{Name: strings.TrimSpace(in.Name), Tags: in.Tags}, nil
}

func fakeUsersResource() resource.Resource[model.FakeUser] {
	return resource.Resource[model.FakeUser]{
		Name: ResourceFakeUsers,
		ID:   func(u model.FakeUser) string { return u.ID },
		Less: model.NewerFakeUser,
		Endpoints: resource.Endpoints[model.FakeUser]{
			List: func(ctx context.Context, api *backend.Caller, _ pagination.Cursor) (resource.Page[model.FakeUser], error) {
				var out backend.DataResponse[[]model.FakeUser]
				if err := api.Do(ctx, backend.Get("/fake-users"), &out); err != nil {
					return resource.Page[model.FakeUser]{}, err
				}
				return resource.Page[model.FakeUser]{Items: out.Data}, nil
			},
			Generate: func(ctx context.Context, api *backend.Caller, p resource.Payload) ([]model.FakeUser, error) {
				batch, ok := resource.As[model.FakeUserBatch](p)
				if !ok {
					return nil, apperrors.ErrUnsupported
				}
				var out fakeUserBatchResponse
				if err := api.Do(ctx, backend.Post("/generate-fake-users", batch), &out); err != nil {
					return nil, err
				}
				return out.GeneratedUsers, nil
			},
			Delete: func(ctx context.Context, api *backend.Caller, id string) error {
				return api.Do(ctx, backend.Delete("/fake-users/"+id), &backend.Ack{})
			},
		},
		Policy: resource.Policy{Pagination: resource.Local},
		Messages: resource.Messages{
			Loaded:        "Fake users fetched successfully",
			LoadFailed:    "Failed to fetch fake users",
			Deleted:       "User deleted successfully",
			DeleteFailed:  "Failed to delete user",
			ConfirmDelete: "Are you sure you want to delete this user?",
			Generated: func(p resource.Payload, created int) string {
				batch, _ := resource.As[model.FakeUserBatch](p)
				if created == 0 {
					created = batch.Count
				}
				return fmt.Sprintf("Created %d fake users for %s", created, batch.Country)
			},
			GenerateFailed: "Failed to generate fake users",
		},
	}
}

func deleteRequestsResource() resource.Resource[model.DeleteRequest] {
	action := func(kind string) func(ctx context.Context, api *backend.Caller, id string) error {
		return func(ctx context.Context, api *backend.Caller, id string) error {
			req := backend.Post("/"+kind+"-delete/"+id, map[string]string{}).On(config.BaseService)
			return api.Do(ctx, req, &backend.Ack{})
		}
	}
	return resource.Resource[model.DeleteRequest]{
		Name: ResourceDeleteRequests,
		ID:   func(r model.DeleteRequest) string { return r.ServiceID },
		Endpoints: resource.Endpoints[model.DeleteRequest]{
			List: func(ctx context.Context, api *backend.Caller, _ pagination.Cursor) (resource.Page[model.DeleteRequest], error) {
				var out backend.DataResponse[[]model.DeleteRequest]
				if err := api.Do(ctx, backend.Get("/delete-requests").On(config.BaseService), &out); err != nil {
					return resource.Page[model.DeleteRequest]{}, err
				}
				return resource.Page[model.DeleteRequest]{Items: out.Data}, nil
			},
			Actions: map[string]func(ctx context.Context, api *backend.Caller, id string) error{
				ActionApprove: action(ActionApprove),
				ActionReject:  action(ActionReject),
			},
		},
		Policy: resource.Policy{Pagination: resource.Local, AfterAction: resource.Refetch},
		Messages: resource.Messages{
			LoadFailed: "Failed to load delete requests",
			Actions: map[string]resource.ActionMessages{
				ActionApprove: {
					Confirm: "Approve delete for this service?",
					Done:    "Service deleted",
					Failed:  "Failed to approve delete request",
				},
				ActionReject: {
					Confirm: "Reject delete request?",
					Done:    "Delete request rejected",
					Failed:  "Failed to reject delete request",
				},
			},
		},
	}
}

func plansResource() resource.Resource[model.PromotionPlan] {
	save := func(ctx context.Context, api *backend.Caller, req func(model.PlanInput) backend.Request, p resource.Payload) (model.PromotionPlan, error) {
		in, ok := resource.As[model.PlanInput](p)
		if !ok {
			return model.PromotionPlan{}, apperrors.ErrUnsupported
		}
		in.Name = strings.TrimSpace(in.Name)
		if err := api.Do(ctx, req(in), &backend.Ack{}); err != nil {
			return model.PromotionPlan{}, err
		}
		return model.PromotionPlan{
			Name:        in.Name,
			Description: in.Description,
			Days:        in.Days,
			Price:       model.Number(in.Price),
		}, nil
	}
	return resource.Resource[model.PromotionPlan]{
		Name: ResourcePlans,
		ID:   func(p model.PromotionPlan) string { return p.ID },
		Less: model.ShorterPlan,
		Endpoints: resource.Endpoints[model.PromotionPlan]{
			List: func(ctx context.Context, api *backend.Caller, _ pagination.Cursor) (resource.Page[model.PromotionPlan], error) {
				var out plansResponse
				if err := api.Do(ctx, backend.Get("/promotion-plans"), &out); err != nil {
					return resource.Page[model.PromotionPlan]{}, err
				}
				return resource.Page[model.PromotionPlan]{Items: out.Plans}, nil
			},
			Create: func(ctx context.Context, api *backend.Caller, p resource.Payload) (model.PromotionPlan, error) {
				return save(ctx, api, func(in model.PlanInput) backend.Request {
					return backend.Post("/create-promotion-plan", in)
				}, p)
			},
			Update: func(ctx context.Context, api *backend.Caller, id string, p resource.Payload) (model.PromotionPlan, error) {
				return save(ctx, api, func(in model.PlanInput) backend.Request {
					return backend.Put("/promotion-plan/"+id, in)
				}, p)
			},
			Delete: func(ctx context.Context, api *backend.Caller, id string) error {
				return api.Do(ctx, backend.Delete("/promotion-plan/"+id), &backend.Ack{})
			},
		},
		Policy: resource.Policy{
			Pagination:  resource.Local,
			AfterCreate: resource.Refetch,
			AfterUpdate: resource.Refetch,
			AfterDelete: resource.Refetch,
		},
		Messages: resource.Messages{
			LoadFailed:    "Error fetching plans",
			Created:       "Plan created",
			Updated:       "Plan updated",
			SaveFailed:    "Error saving plan",
			Deleted:       "Plan deleted",
			DeleteFailed:  "Error deleting plan",
			ConfirmDelete: "Delete this plan?",
		},
	}
}

func toFile(u *model.Upload) *backend.File {
	return &backend.File{FileName: u.FileName, ContentType: u.ContentType, Content: u.Content}
}

// newWorkspace builds the controllers of one session.
func newWorkspace() *Workspace {
	return &Workspace{
		Users:          resource.NewListController(usersResource()),
		Categories:     resource.NewListController(categoriesResource()),
		FakeUsers:      resource.NewListController(fakeUsersResource()),
		DeleteRequests: resource.NewListController(deleteRequestsResource()),
		Plans:          resource.NewListController(plansResource()),
	}
}
