package model

import (
	"strconv"

	"betogether-admin/internal/shared/validation"
)

// PaymentSettings holds the platform commission and the cancellation fee policy.
type PaymentSettings struct {
	CommissionPercent float64      `json:"commissionPercent"`
	Cancellation      Cancellation `json:"cancellation"`
}

// Cancellation is the fee charged when a booking is cancelled.
type Cancellation struct {
	Enabled bool    `json:"enabled"`
	Percent float64 `json:"percent"`
}

// PaymentView is what the payment screen renders: percentages of zero display as
// empty fields.
type PaymentView struct {
	Commission             string `json:"commission"`
	CancellationEnabled    bool   `json:"cancellationEnabled"`
	CancellationPercentage string `json:"cancellationPercentage"`
}

// View renders the settings for the payment screen.
func (p PaymentSettings) View() PaymentView {
	return PaymentView{
		Commission:             percentText(p.CommissionPercent),
		CancellationEnabled:    p.Cancellation.Enabled,
		CancellationPercentage: percentText(p.Cancellation.Percent),
	}
}

func percentText(v float64) string {
	if v == 0 {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// CommissionInput sets the commission. A nil percentage clears it.
type CommissionInput struct {
	Percentage *float64 `json:"percentage" validate:"omitempty,gte=0,lte=100" message:"Percentage must be between 0 and 100"`
}

// Validate checks the percentage range.
func (in CommissionInput) Validate() error {
	return validation.Default().Struct(in)
}

// CancellationInput sets the cancellation policy. The percentage is only sent when
// the fee is enabled.
type CancellationInput struct {
	Enabled    bool     `json:"enabled"`
	Percentage *float64 `json:"percentage" validate:"omitempty,gte=0,lte=100" message:"Percentage must be between 0 and 100"`
}

// Validate checks the percentage range.
func (in CancellationInput) Validate() error {
	return validation.Default().Struct(in)
}

// Normalized drops the percentage of a disabled policy.
func (in CancellationInput) Normalized() CancellationInput {
	if !in.Enabled {
		in.Percentage = nil
	}
	return in
}
