package model

import "betogether-admin/internal/shared/validation"

// PromotionPlan is a paid boost for a service listing.
type PromotionPlan struct {
	ID          string `json:"_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Days        int    `json:"days"`
	Price       Number `json:"price"`
}

// ShorterPlan orders plans by duration, shortest first.
func ShorterPlan(a, b PromotionPlan) bool { return a.Days < b.Days }

// PlanInput is the create/update form of a plan.
type PlanInput struct {
	Name        string  `json:"name" validate:"notblank" message:"Plan name is required"`
	Description string  `json:"description"`
	Days        int     `json:"days" validate:"gt=0" message:"Days and Price required"`
	Price       float64 `json:"price" validate:"gt=0" message:"Days and Price required"`
}

// Validate checks the form before any network call.
func (in PlanInput) Validate() error {
	return validation.Default().Struct(in)
}
