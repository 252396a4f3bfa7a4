package model

import "betogether-admin/internal/shared/validation"

// User is a marketplace account as listed by the admin API.
type User struct {
	ID           string    `json:"_id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Mobile       string    `json:"mobile"`
	Status       string    `json:"status"`
	ProfileImage string    `json:"profile_image,omitempty"`
	CreatedAt    Timestamp `json:"created_at"`
}

// FakeUser is a generated demo account.
type FakeUser struct {
	ID           string    `json:"_id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Mobile       string    `json:"mobile"`
	City         string    `json:"city"`
	Age          int       `json:"age"`
	ProfileImage string    `json:"profile_image,omitempty"`
	CreatedAt    Timestamp `json:"created_at"`
}

// NewerFakeUser orders fake users by creation time, latest first.
func NewerFakeUser(a, b FakeUser) bool {
	return a.CreatedAt.After(b.CreatedAt.Time)
}

// Countries fake users can be generated for. The first one is the default.
var SupportedCountries = []string{"India", "Germany", "France", "Italy", "Spain", "Portugal"}

// DefaultFakeUserCount is the count the generator form starts with.
const DefaultFakeUserCount = 10

// FakeUserBatch asks the backend to generate Count accounts in Country.
type FakeUserBatch struct {
	Count   int    `json:"count" validate:"gte=1" message:"Please enter at least 1 user."`
	Country string `json:"country" validate:"oneof=India Germany France Italy Spain Portugal" message:"Please choose a supported country"`
}

// Validate checks the batch before it is sent.
func (b FakeUserBatch) Validate() error {
	return validation.Default().Struct(b)
}
