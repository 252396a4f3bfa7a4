package usecase

import (
	"context"
	"fmt"
	"strings"

	authmodel "betogether-admin/internal/auth/domain/model"
	"betogether-admin/internal/backend"
	"betogether-admin/internal/console/domain/model"
	"betogether-admin/internal/console/resource"
	apperrors "betogether-admin/internal/shared/errors"
)

// Tag helper notifications.
const (
	MsgEnterCategoryName = "Enter category name first"
	MsgAITagsGenerated   = "AI tags generated"
	MsgNoAITags          = "No AI tags generated"
	MsgAITagsFailed      = "Failed to generate AI tags"
)

// TagEditor is the tag field of the category form.
type TagEditor struct {
	Tags         model.TagSet        `json:"tags"`
	AITags       model.TagSet        `json:"aiTags"`
	Notification *model.Notification `json:"notification,omitempty"`
}

type aiTagsResponse struct {
	backend.Status
	Tags []string `json:"tags"`
}

func (uc *ConsoleUsecase) ListUsers(ctx context.Context, s *authmodel.Session, q ListQuery) (resource.View[model.User], error) {
	ws, api, err := uc.session(s)
	if err != nil {
		return resource.View[model.User]{}, err
	}
	return browse(ctx, ws.Users, api, q)
}

func (uc *ConsoleUsecase) ListCategories(ctx context.Context, s *authmodel.Session, q ListQuery) (resource.View[model.Category], error) {
	ws, api, err := uc.session(s)
	if err != nil {
		return resource.View[model.Category]{}, err
	}
	return browse(ctx, ws.Categories, api, q)
}

func (uc *ConsoleUsecase) CreateCategory(ctx context.Context, s *authmodel.Session, in model.CategoryInput) (resource.View[model.Category], error) {
	ws, api, err := uc.session(s)
	if err != nil {
		return resource.View[model.Category]{}, err
	}
	_, err = ws.Categories.Create(ctx, api, in)
	v := ws.Categories.View()
	return v, listFailure(err, v)
}

func (uc *ConsoleUsecase) UpdateCategory(ctx context.Context, s *authmodel.Session, id string, in model.CategoryInput) (resource.View[model.Category], error) {
	ws, api, err := uc.session(s)
	if err != nil {
		return resource.View[model.Category]{}, err
	}
	_, err = ws.Categories.Update(ctx, api, id, in)
	v := ws.Categories.View()
	return v, listFailure(err, v)
}

func (uc *ConsoleUsecase) DeleteCategory(ctx context.Context, s *authmodel.Session, id string, confirmed bool) (resource.View[model.Category], error) {
	ws, api, err := uc.session(s)
	if err != nil {
		return resource.View[model.Category]{}, err
	}
	err = ws.Categories.Delete(ctx, api, id, confirmed)
	v := ws.Categories.View()
	return v, listFailure(err, v)
}

// SuggestTags asks the backend for tags matching the category name. The new batch
// replaces the previous one inside the current tags; hand-entered tags stay.
func (uc *ConsoleUsecase) SuggestTags(ctx context.Context, s *authmodel.Session, req model.TagSuggestion) (*TagEditor, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, fail(apperrors.NewValidationError(MsgEnterCategoryName), MsgEnterCategoryName)
	}
	api, err := uc.caller(s)
	if err != nil {
		return nil, err
	}

	var out aiTagsResponse
	err = api.Do(ctx, backend.Post("/category/ai-tags", map[string]string{"text": strings.TrimSpace(req.Name)}), &out)
	switch {
	case apperrors.IsServer(err):
		return &TagEditor{Tags: model.NewTagSet(req.Tags...), AITags: model.TagSet{}, Notification: model.Failure(MsgNoAITags)}, nil
	case err != nil:
		if apperrors.IsAuthentication(err) {
			return nil, err
		}
		return nil, &NoticeError{Err: err, Message: MsgAITagsFailed}
	case out.Tags == nil:
		return &TagEditor{Tags: model.NewTagSet(req.Tags...), AITags: model.TagSet{}, Notification: model.Failure(MsgNoAITags)}, nil
	}

	return &TagEditor{
		Tags:         model.NewTagSet(req.Tags...).ReplaceBatch(req.AITags, out.Tags),
		AITags:       model.NewTagSet(out.Tags...),
		Notification: model.Success(MsgAITagsGenerated),
	}, nil
}

// AddTag adds a hand-entered tag. Blank and present tags change nothing.
func (uc *ConsoleUsecase) AddTag(tags model.TagSet, tag string) *TagEditor {
	tag = strings.TrimSpace(tag)
	current := model.NewTagSet(tags...)
	if tag == "" || current.Contains(tag) {
		return &TagEditor{Tags: current}
	}
	return &TagEditor{
		Tags:         current.Add(tag),
		Notification: &model.Notification{Kind: model.NotifyInfo, Message: fmt.Sprintf("Tag %q added", tag)},
	}
}

// RemoveTag removes a tag.
func (uc *ConsoleUsecase) RemoveTag(tags model.TagSet, tag string) *TagEditor {
	return &TagEditor{
		Tags:         model.NewTagSet(tags...).Remove(tag),
		Notification: &model.Notification{Kind: model.NotifyInfo, Message: fmt.Sprintf("Tag %q removed", tag)},
	}
}

func (uc *ConsoleUsecase) ListFakeUsers(ctx context.Context, s *authmodel.Session, q ListQuery) (resource.View[model.FakeUser], error) {
	ws, api, err := uc.session(s)
	if err != nil {
		return resource.View[model.FakeUser]{}, err
	}
	return browse(ctx, ws.FakeUsers, api, q)
}

// GenerateFakeUsers creates a batch of demo accounts; the country defaults to the
// first supported one.
func (uc *ConsoleUsecase) GenerateFakeUsers(ctx context.Context, s *authmodel.Session, batch model.FakeUserBatch) (resource.View[model.FakeUser], error) {
	ws, api, err := uc.session(s)
	if err != nil {
		return resource.View[model.FakeUser]{}, err
	}
	if strings.TrimSpace(batch.Country) == "" {
		batch.Country = model.SupportedCountries[0]
	}
	_, err = ws.FakeUsers.Generate(ctx, api, batch)
	v := ws.FakeUsers.View()
	return v, listFailure(err, v)
}

func (uc *ConsoleUsecase) DeleteFakeUser(ctx context.Context, s *authmodel.Session, id string, confirmed bool) (resource.View[model.FakeUser], error) {
	ws, api, err := uc.session(s)
	if err != nil {
		return resource.View[model.FakeUser]{}, err
	}
	err = ws.FakeUsers.Delete(ctx, api, id, confirmed)
	v := ws.FakeUsers.View()
	return v, listFailure(err, v)
}

func (uc *ConsoleUsecase) ListDeleteRequests(ctx context.Context, s *authmodel.Session, q ListQuery) (resource.View[model.DeleteRequest], error) {
	ws, api, err := uc.session(s)
	if err != nil {
		return resource.View[model.DeleteRequest]{}, err
	}
	return browse(ctx, ws.DeleteRequests, api, q)
}

// ResolveDeleteRequest approves or rejects the deletion of a service.
func (uc *ConsoleUsecase) ResolveDeleteRequest(ctx context.Context, s *authmodel.Session, action, id string, confirmed bool) (resource.View[model.DeleteRequest], error) {
	ws, api, err := uc.session(s)
	if err != nil {
		return resource.View[model.DeleteRequest]{}, err
	}
	err = ws.DeleteRequests.Perform(ctx, api, action, id, confirmed)
	v := ws.DeleteRequests.View()
	return v, listFailure(err, v)
}

func (uc *ConsoleUsecase) ListPlans(ctx context.Context, s *authmodel.Session, q ListQuery) (resource.View[model.PromotionPlan], error) {
	ws, api, err := uc.session(s)
	if err != nil {
		return resource.View[model.PromotionPlan]{}, err
	}
	return browse(ctx, ws.Plans, api, q)
}

func (uc *ConsoleUsecase) CreatePlan(ctx context.Context, s *authmodel.Session, in model.PlanInput) (resource.View[model.PromotionPlan], error) {
	ws, api, err := uc.session(s)
	if err != nil {
		return resource.View[model.PromotionPlan]{}, err
	}
	_, err = ws.Plans.Create(ctx, api, in)
	v := ws.Plans.View()
	return v, listFailure(err, v)
}

func (uc *ConsoleUsecase) UpdatePlan(ctx context.Context, s *authmodel.Session, id string, in model.PlanInput) (resource.View[model.PromotionPlan], error) {
	ws, api, err := uc.session(s)
	if err != nil {
		return resource.View[model.PromotionPlan]{}, err
	}
	_, err = ws.Plans.Update(ctx, api, id, in)
	v := ws.Plans.View()
	return v, listFailure(err, v)
}

func (uc *ConsoleUsecase) DeletePlan(ctx context.Context, s *authmodel.Session, id string, confirmed bool) (resource.View[model.PromotionPlan], error) {
	ws, api, err := uc.session(s)
	if err != nil {
		return resource.View[model.PromotionPlan]{}, err
	}
	err = ws.Plans.Delete(ctx, api, id, confirmed)
	v := ws.Plans.View()
	return v, listFailure(err, v)
}
