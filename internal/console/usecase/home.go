package usecase

import (
	"context"

	authmodel "betogether-admin/internal/auth/domain/model"
	"betogether-admin/internal/backend"
	apperrors "betogether-admin/internal/shared/errors"
)

// HomeView is the dashboard header.
type HomeView struct {
	AdminName  string `json:"adminName"`
	AdminEmail string `json:"adminEmail"`
	// PendingDeleteCount is nil when the backend could not be asked.
	PendingDeleteCount *int `json:"pendingDeleteCount"`
}

type countResponse struct {
	backend.Status
	Count int `json:"count"`
}

// Home greets the administrator and shows how many delete requests wait for review.
// A failed count does not fail the page unless the token was rejected.
func (uc *ConsoleUsecase) Home(ctx context.Context, s *authmodel.Session) (*HomeView, error) {
	api, err := uc.caller(s)
	if err != nil {
		return nil, err
	}
	view := &HomeView{AdminName: s.Admin.DisplayName(), AdminEmail: s.Admin.Email}

	var out countResponse
	if err := api.Do(ctx, backend.Get("/pending-delete-count"), &out); err != nil {
		if apperrors.IsAuthentication(err) {
			return nil, err
		}
		uc.logger.WithContext(ctx).Warnf("failed to fetch pending delete count: %v", err)
		return view, nil
	}
	count := out.Count
	view.PendingDeleteCount = &count
	return view, nil
}
