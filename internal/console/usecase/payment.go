package usecase

import (
	"context"

	authmodel "betogether-admin/internal/auth/domain/model"
	"betogether-admin/internal/backend"
	"betogether-admin/internal/console/domain/model"

	"golang.org/x/sync/errgroup"
)

const (
	MsgSettingsLoadFailed       = "Failed to load settings"
	MsgCommissionUpdated        = "Commission updated"
	MsgCommissionUpdateFailed   = "Error updating commission"
	MsgCancellationUpdated      = "Cancellation setting updated"
	MsgCancellationUpdateFailed = "Error updating cancellation setting"
)

// PaymentResult is the outcome of a payment settings update. Settings holds the
// re-fetched values and is nil when the reload failed.
type PaymentResult struct {
	Settings     *model.PaymentView  `json:"settings,omitempty"`
	Notification *model.Notification `json:"notification,omitempty"`
}

type commissionResponse struct {
	backend.Status
	Percentage model.Number `json:"percentage"`
}

type cancellationResponse struct {
	backend.Status
	Enabled    bool         `json:"enabled"`
	Percentage model.Number `json:"percentage"`
}

// PaymentSettings fetches the commission and the cancellation policy concurrently.
func (uc *ConsoleUsecase) PaymentSettings(ctx context.Context, s *authmodel.Session) (*model.PaymentView, error) {
	api, err := uc.caller(s)
	if err != nil {
		return nil, err
	}
	settings, err := uc.fetchPayment(ctx, api)
	if err != nil {
		return nil, fail(err, MsgSettingsLoadFailed)
	}
	view := settings.View()
	return &view, nil
}

func (uc *ConsoleUsecase) fetchPayment(ctx context.Context, api *backend.Caller) (model.PaymentSettings, error) {
	var (
		commission   commissionResponse
		cancellation cancellationResponse
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return api.Do(gctx, backend.Get("/commission"), &commission)
	})
	g.Go(func() error {
		return api.Do(gctx, backend.Get("/cancellation"), &cancellation)
	})
	if err := g.Wait(); err != nil {
		return model.PaymentSettings{}, err
	}
	return model.PaymentSettings{
		CommissionPercent: commission.Percentage.Float(),
		Cancellation: model.Cancellation{
			Enabled: cancellation.Enabled,
			Percent: cancellation.Percentage.Float(),
		},
	}, nil
}

// UpdateCommission saves the commission and re-fetches the settings.
func (uc *ConsoleUsecase) UpdateCommission(ctx context.Context, s *authmodel.Session, in model.CommissionInput) (*PaymentResult, error) {
	api, err := uc.caller(s)
	if err != nil {
		return nil, err
	}
	if err := in.Validate(); err != nil {
		return nil, fail(err, MsgCommissionUpdateFailed)
	}
	if err := api.Do(ctx, backend.Put("/commission", in), &backend.Ack{}); err != nil {
		return nil, fail(err, MsgCommissionUpdateFailed)
	}
	return uc.afterPaymentUpdate(ctx, api, MsgCommissionUpdated), nil
}

// UpdateCancellation saves the cancellation policy and re-fetches the settings.
func (uc *ConsoleUsecase) UpdateCancellation(ctx context.Context, s *authmodel.Session, in model.CancellationInput) (*PaymentResult, error) {
	api, err := uc.caller(s)
	if err != nil {
		return nil, err
	}
	in = in.Normalized()
	if err := in.Validate(); err != nil {
		return nil, fail(err, MsgCancellationUpdateFailed)
	}
	if err := api.Do(ctx, backend.Put("/cancellation", in), &backend.Ack{}); err != nil {
		return nil, fail(err, MsgCancellationUpdateFailed)
	}
	return uc.afterPaymentUpdate(ctx, api, MsgCancellationUpdated), nil
}

func (uc *ConsoleUsecase) afterPaymentUpdate(ctx context.Context, api *backend.Caller, msg string) *PaymentResult {
	result := &PaymentResult{Notification: model.Success(msg)}
	settings, err := uc.fetchPayment(ctx, api)
	if err != nil {
		uc.logger.WithContext(ctx).Warnf("failed to reload payment settings: %v", err)
		return result
	}
	view := settings.View()
	result.Settings = &view
	return result
}
