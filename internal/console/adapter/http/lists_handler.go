package http

import (
	"betogether-admin/internal/console/domain/model"
	"betogether-admin/internal/console/usecase"

	"github.com/gofiber/fiber/v2"
)

// ListUsers serves GET /users.
func (h *ConsoleHTTPHandler) ListUsers(c *fiber.Ctx) error {
	q, err := h.listQuery(c)
	if err != nil {
		return h.badRequest(c, "Invalid pagination")
	}
	v, err := h.usecase.ListUsers(c.UserContext(), h.session(c), q)
	return respondView(h, c, v, err)
}

// ListCategories serves one server-side page of categories.
func (h *ConsoleHTTPHandler) ListCategories(c *fiber.Ctx) error {
	q, err := h.listQuery(c)
	if err != nil {
		return h.badRequest(c, "Invalid pagination")
	}
	v, err := h.usecase.ListCategories(c.UserContext(), h.session(c), q)
	return respondView(h, c, v, err)
}

// CreateCategory accepts a multipart or JSON category form.
func (h *ConsoleHTTPHandler) CreateCategory(c *fiber.Ctx) error {
	in, err := parseCategoryForm(c)
	if err != nil {
		return h.badRequest(c, "Invalid category form")
	}
	v, err := h.usecase.CreateCategory(c.UserContext(), h.session(c), in)
	return respondView(h, c, v, err)
}

// UpdateCategory saves the category named by :id.
func (h *ConsoleHTTPHandler) UpdateCategory(c *fiber.Ctx) error {
	in, err := parseCategoryForm(c)
	if err != nil {
		return h.badRequest(c, "Invalid category form")
	}
	v, err := h.usecase.UpdateCategory(c.UserContext(), h.session(c), c.Params("id"), in)
	return respondView(h, c, v, err)
}

// DeleteCategory needs ?confirm=true; without it the answer carries the question
// to confirm.
func (h *ConsoleHTTPHandler) DeleteCategory(c *fiber.Ctx) error {
	v, err := h.usecase.DeleteCategory(c.UserContext(), h.session(c), c.Params("id"), c.QueryBool("confirm"))
	return respondView(h, c, v, err)
}

// SuggestTags merges a fresh AI tag batch into the current tags.
func (h *ConsoleHTTPHandler) SuggestTags(c *fiber.Ctx) error {
	var req model.TagSuggestion
	if err := c.BodyParser(&req); err != nil {
		return h.badRequest(c, "Invalid request body")
	}
	editor, err := h.usecase.SuggestTags(c.UserContext(), h.session(c), req)
	if err != nil {
		return h.fail(c, err, usecase.MsgAITagsFailed, nil)
	}
	return h.ok(c, editor)
}

type tagEdit struct {
	Tags model.TagSet `json:"tags"`
	Tag  string       `json:"tag"`
}

// AddTag adds one tag to the edited set.
func (h *ConsoleHTTPHandler) AddTag(c *fiber.Ctx) error {
	var req tagEdit
	if err := c.BodyParser(&req); err != nil {
		return h.badRequest(c, "Invalid request body")
	}
	return h.ok(c, h.usecase.AddTag(req.Tags, req.Tag))
}

// RemoveTag drops one tag from the edited set.
func (h *ConsoleHTTPHandler) RemoveTag(c *fiber.Ctx) error {
	var req tagEdit
	if err := c.BodyParser(&req); err != nil {
		return h.badRequest(c, "Invalid request body")
	}
	return h.ok(c, h.usecase.RemoveTag(req.Tags, req.Tag))
}

// ListFakeUsers serves the generated accounts, newest first.
func (h *ConsoleHTTPHandler) ListFakeUsers(c *fiber.Ctx) error {
	q, err := h.listQuery(c)
	if err != nil {
		return h.badRequest(c, "Invalid pagination")
	}
	v, err := h.usecase.ListFakeUsers(c.UserContext(), h.session(c), q)
	return respondView(h, c, v, err)
}

// GenerateFakeUsers creates a batch; an empty body uses the default count.
func (h *ConsoleHTTPHandler) GenerateFakeUsers(c *fiber.Ctx) error {
	batch := model.FakeUserBatch{Count: model.DefaultFakeUserCount}
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&batch); err != nil {
			return h.badRequest(c, "Invalid request body")
		}
	}
	v, err := h.usecase.GenerateFakeUsers(c.UserContext(), h.session(c), batch)
	return respondView(h, c, v, err)
}

// DeleteFakeUser removes one generated account after confirmation.
func (h *ConsoleHTTPHandler) DeleteFakeUser(c *fiber.Ctx) error {
	v, err := h.usecase.DeleteFakeUser(c.UserContext(), h.session(c), c.Params("id"), c.QueryBool("confirm"))
	return respondView(h, c, v, err)
}

// ListDeleteRequests serves the pending service removals.
func (h *ConsoleHTTPHandler) ListDeleteRequests(c *fiber.Ctx) error {
	q, err := h.listQuery(c)
	if err != nil {
		return h.badRequest(c, "Invalid pagination")
	}
	v, err := h.usecase.ListDeleteRequests(c.UserContext(), h.session(c), q)
	return respondView(h, c, v, err)
}

// ApproveDeleteRequest deletes the service after confirmation.
func (h *ConsoleHTTPHandler) ApproveDeleteRequest(c *fiber.Ctx) error {
	return h.resolveDeleteRequest(c, usecase.ActionApprove)
}

// RejectDeleteRequest keeps the service after confirmation.
func (h *ConsoleHTTPHandler) RejectDeleteRequest(c *fiber.Ctx) error {
	return h.resolveDeleteRequest(c, usecase.ActionReject)
}

func (h *ConsoleHTTPHandler) resolveDeleteRequest(c *fiber.Ctx, action string) error {
	v, err := h.usecase.ResolveDeleteRequest(c.UserContext(), h.session(c), action, c.Params("id"), c.QueryBool("confirm"))
	return respondView(h, c, v, err)
}

// ListPlans serves the promotion plans ordered by days.
func (h *ConsoleHTTPHandler) ListPlans(c *fiber.Ctx) error {
	q, err := h.listQuery(c)
	if err != nil {
		return h.badRequest(c, "Invalid pagination")
	}
	v, err := h.usecase.ListPlans(c.UserContext(), h.session(c), q)
	return respondView(h, c, v, err)
}

// CreatePlan validates and creates a promotion plan.
func (h *ConsoleHTTPHandler) CreatePlan(c *fiber.Ctx) error {
	var in model.PlanInput
	if err := c.BodyParser(&in); err != nil {
		return h.badRequest(c, "Invalid plan form")
	}
	v, err := h.usecase.CreatePlan(c.UserContext(), h.session(c), in)
	return respondView(h, c, v, err)
}

// UpdatePlan validates and saves the plan named by :id.
func (h *ConsoleHTTPHandler) UpdatePlan(c *fiber.Ctx) error {
	var in model.PlanInput
	if err := c.BodyParser(&in); err != nil {
		return h.badRequest(c, "Invalid plan form")
	}
	v, err := h.usecase.UpdatePlan(c.UserContext(), h.session(c), c.Params("id"), in)
	return respondView(h, c, v, err)
}

// DeletePlan removes a plan after confirmation.
func (h *ConsoleHTTPHandler) DeletePlan(c *fiber.Ctx) error {
	v, err := h.usecase.DeletePlan(c.UserContext(), h.session(c), c.Params("id"), c.QueryBool("confirm"))
	return respondView(h, c, v, err)
}
