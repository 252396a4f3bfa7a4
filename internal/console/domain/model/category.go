package model

import "betogether-admin/internal/shared/validation"

// Category groups services and carries the tags offered when a service is created.
type Category struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	Image     string    `json:"image,omitempty"`
	Tags      TagSet    `json:"tags"`
	CreatedAt Timestamp `json:"createdAt"`
}

// CategoryInput is the create/update form of a category.
type CategoryInput struct {
	Name  string  `json:"name" validate:"notblank" message:"Category name is required"`
	Tags  TagSet  `json:"tags" validate:"min=1" message:"Please provide at least one tag"`
	Image *Upload `json:"-"`
}

// Validate checks the form before any network call.
func (in CategoryInput) Validate() error {
	return validation.Default().Struct(in)
}

// TagSuggestion is the state of the AI tag helper: the current tags and the batch
// the previous suggestion added.
type TagSuggestion struct {
	Name   string `json:"name"`
	Tags   TagSet `json:"tags"`
	AITags TagSet `json:"aiTags"`
}
