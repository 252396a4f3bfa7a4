package http

import (
	"betogether-admin/internal/console/domain/model"
	"betogether-admin/internal/console/usecase"

	"github.com/gofiber/fiber/v2"
)

// GetService loads the edit form of one service.
func (h *ConsoleHTTPHandler) GetService(c *fiber.Ctx) error {
	svc, err := h.usecase.GetService(c.UserContext(), h.session(c), c.Params("id"))
	if err != nil {
		return h.fail(c, err, usecase.MsgServiceLoadFailed, nil)
	}
	return h.ok(c, svc)
}

// UpdateService accepts a multipart or JSON service form.
func (h *ConsoleHTTPHandler) UpdateService(c *fiber.Ctx) error {
	in, err := parseServiceForm(c)
	if err != nil {
		return h.badRequest(c, "Invalid service form")
	}
	res, err := h.usecase.UpdateService(c.UserContext(), h.session(c), c.Params("id"), in)
	if err != nil {
		return h.fail(c, err, usecase.MsgServiceUpdateFail, nil)
	}
	return h.ok(c, res)
}

// PaymentSettings serves commission and cancellation together.
func (h *ConsoleHTTPHandler) PaymentSettings(c *fiber.Ctx) error {
	view, err := h.usecase.PaymentSettings(c.UserContext(), h.session(c))
	if err != nil {
		return h.fail(c, err, usecase.MsgSettingsLoadFailed, nil)
	}
	return h.ok(c, view)
}

// UpdateCommission saves the commission percentage.
func (h *ConsoleHTTPHandler) UpdateCommission(c *fiber.Ctx) error {
	var in model.CommissionInput
	if err := c.BodyParser(&in); err != nil {
		return h.badRequest(c, "Invalid request body")
	}
	res, err := h.usecase.UpdateCommission(c.UserContext(), h.session(c), in)
	if err != nil {
		return h.fail(c, err, usecase.MsgCommissionUpdateFailed, nil)
	}
	return h.ok(c, res)
}

// UpdateCancellation saves the cancellation charge.
func (h *ConsoleHTTPHandler) UpdateCancellation(c *fiber.Ctx) error {
	var in model.CancellationInput
	if err := c.BodyParser(&in); err != nil {
		return h.badRequest(c, "Invalid request body")
	}
	res, err := h.usecase.UpdateCancellation(c.UserContext(), h.session(c), in)
	if err != nil {
		return h.fail(c, err, usecase.MsgCancellationUpdateFailed, nil)
	}
	return h.ok(c, res)
}

// Profile serves the admin profile and support details.
func (h *ConsoleHTTPHandler) Profile(c *fiber.Ctx) error {
	p, err := h.usecase.Profile(c.UserContext(), h.session(c))
	if err != nil {
		return h.fail(c, err, usecase.MsgProfileLoadFailed, nil)
	}
	return h.ok(c, p)
}

type profileField struct {
	Mobile   string `json:"mobile" form:"mobile"`
	Email    string `json:"email" form:"email"`
	OTP      string `json:"otp" form:"otp"`
	Password string `json:"password" form:"password"`
}

func (h *ConsoleHTTPHandler) profileField(c *fiber.Ctx) (profileField, error) {
	var f profileField
	err := c.BodyParser(&f)
	return f, err
}

func (h *ConsoleHTTPHandler) action(c *fiber.Ctx, res *usecase.ActionResult, err error, fallback string) error {
	if err != nil {
		return h.fail(c, err, fallback, nil)
	}
	return h.ok(c, res)
}

// UpdateMobile saves the admin mobile number.
func (h *ConsoleHTTPHandler) UpdateMobile(c *fiber.Ctx) error {
	f, err := h.profileField(c)
	if err != nil {
		return h.badRequest(c, "Invalid request body")
	}
	res, err := h.usecase.UpdateMobile(c.UserContext(), h.session(c), f.Mobile)
	return h.action(c, res, err, usecase.MsgMobileUpdateFailed)
}

// SendEmailOTP starts an email change.
func (h *ConsoleHTTPHandler) SendEmailOTP(c *fiber.Ctx) error {
	f, err := h.profileField(c)
	if err != nil {
		return h.badRequest(c, "Invalid request body")
	}
	res, err := h.usecase.SendEmailOTP(c.UserContext(), h.session(c), f.Email)
	return h.action(c, res, err, usecase.MsgOTPSendFailed)
}

// VerifyEmailOTP completes an email change.
func (h *ConsoleHTTPHandler) VerifyEmailOTP(c *fiber.Ctx) error {
	f, err := h.profileField(c)
	if err != nil {
		return h.badRequest(c, "Invalid request body")
	}
	res, err := h.usecase.VerifyEmailOTP(c.UserContext(), h.session(c), f.OTP)
	return h.action(c, res, err, usecase.MsgInvalidOTP)
}

// ChangePassword clears the session cookie once the new password is saved.
func (h *ConsoleHTTPHandler) ChangePassword(c *fiber.Ctx) error {
	var in model.PasswordChange
	if err := c.BodyParser(&in); err != nil {
		return h.badRequest(c, "Invalid request body")
	}
	res, err := h.usecase.ChangePassword(c.UserContext(), h.session(c), in)
	if err != nil {
		return h.fail(c, err, usecase.MsgPasswordUpdateFail, nil)
	}
	if res.SessionEnded {
		h.guard.ClearSession(c)
	}
	return h.ok(c, res)
}

// MeasurePassword scores a candidate password.
func (h *ConsoleHTTPHandler) MeasurePassword(c *fiber.Ctx) error {
	f, err := h.profileField(c)
	if err != nil {
		return h.badRequest(c, "Invalid request body")
	}
	return h.ok(c, h.usecase.MeasurePassword(f.Password))
}

// UpdateSupport saves the support contact details.
func (h *ConsoleHTTPHandler) UpdateSupport(c *fiber.Ctx) error {
	var in model.SupportInfo
	if err := c.BodyParser(&in); err != nil {
		return h.badRequest(c, "Invalid request body")
	}
	res, err := h.usecase.UpdateSupport(c.UserContext(), h.session(c), in)
	return h.action(c, res, err, usecase.MsgSupportUpdateFailed)
}
