package usecase

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	authmodel "betogether-admin/internal/auth/domain/model"
	"betogether-admin/internal/backend"
	"betogether-admin/internal/console/domain/model"
	apperrors "betogether-admin/internal/shared/errors"
)

const (
	MsgServiceLoadFailed = "Failed to load service"
	MsgServiceUpdated    = "Service updated successfully"
	MsgServiceUpdateFail = "Update failed"
)

// GetService loads one service for the edit screen.
func (uc *ConsoleUsecase) GetService(ctx context.Context, s *authmodel.Session, id string) (*model.Service, error) {
	api, err := uc.caller(s)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(id) == "" {
		return nil, fail(apperrors.NewValidationError("Service id is required"), MsgServiceLoadFailed)
	}
	var out backend.DataResponse[model.ServiceRecord]
	if err := api.Do(ctx, backend.Get("/service/"+id), &out); err != nil {
		return nil, fail(err, MsgServiceLoadFailed)
	}
	svc := out.Data.Service()
	if svc.ID == "" {
		svc.ID = id
	}
	return &svc, nil
}

// UpdateService sends the edit form as multipart data.
func (uc *ConsoleUsecase) UpdateService(ctx context.Context, s *authmodel.Session, id string, in *model.ServiceInput) (*ActionResult, error) {
	api, err := uc.caller(s)
	if err != nil {
		return nil, err
	}
	if in == nil {
		return nil, fail(apperrors.NewValidationError("Please fill in all fields"), MsgServiceUpdateFail)
	}
	if err := in.Validate(); err != nil {
		return nil, fail(err, MsgServiceUpdateFail)
	}
	form, err := serviceForm(id, in)
	if err != nil {
		return nil, fail(apperrors.NewInternalError("failed to encode service").WithCause(err), MsgServiceUpdateFail)
	}
	if err := api.Do(ctx, backend.Multipart(http.MethodPatch, "/service/update", form), &backend.Ack{}); err != nil {
		return nil, fail(err, MsgServiceUpdateFail)
	}
	return &ActionResult{Notification: model.Success(MsgServiceUpdated)}, nil
}

// serviceForm encodes the edit form the way the update endpoint reads it: nested
// values travel as JSON strings, free services send a zero price, and only the
// fields of the selected schedule type are sent.
func serviceForm(id string, in *model.ServiceInput) (*backend.Form, error) {
	price := strconv.FormatFloat(in.Price, 'f', -1, 64)
	if in.IsFree {
		price = "0"
	}
	maxParticipants := ""
	if in.MaxParticipants > 0 {
		maxParticipants = strconv.Itoa(in.MaxParticipants)
	}

	form := backend.NewForm().
		Set("serviceId", id).
		Set("title", in.Title).
		Set("Language", in.Language).
		Set("isFree", strconv.FormatBool(in.IsFree)).
		Set("price", price).
		Set("description", in.Description).
		Set("city", in.City).
		Set("max_participants", maxParticipants).
		Set("service_type", in.BackendType()).
		Set("isDoorstepService", strconv.FormatBool(in.IsDoorstepService))
	if err := form.SetJSON("selectedTags", model.NewTagSet(in.Tags...).Strings()); err != nil {
		return nil, err
	}
	if in.Location != nil {
		if err := form.SetJSON("location", in.Location); err != nil {
			return nil, err
		}
	}
	if in.Recurring() {
		if err := form.SetJSON("recurring_schedule", in.Schedule()); err != nil {
			return nil, err
		}
	} else {
		form.Set("date", in.Date).
			Set("start_time", in.StartTime).
			Set("end_time", in.EndTime)
	}
	if in.Image != nil {
		form.Attach("image", toFile(in.Image))
	}
	return form, nil
}
