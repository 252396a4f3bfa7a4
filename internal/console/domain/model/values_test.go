package model

import (
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimestamp_Unmarshal(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want time.Time
	}{
		{"iso millis", `"2025-02-01T15:00:00.123Z"`, time.Date(2025, 2, 1, 15, 0, 0, 123e6, time.UTC)},
		{"date only", `"2025-02-01"`, time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)},
		{"epoch millis", `1738422000000`, time.UnixMilli(1738422000000).UTC()},
		{"empty", `""`, time.Time{}},
		{"null", `null`, time.Time{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ts Timestamp
			require.NoError(t, ts.UnmarshalJSON([]byte(tt.in)))
			assert.True(t, tt.want.Equal(ts.Time), "got %v", ts.Time)
		})
	}

	var ts Timestamp
	assert.Error(t, ts.UnmarshalJSON([]byte(`"yesterday"`)))
}

func TestTimestamp_MarshalZeroAsNull(t *testing.T) {
	out, err := Timestamp{}.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, "null", string(out))
}

func TestNumber_AcceptsStrings(t *testing.T) {
	var v struct {
		A Number `json:"a"`
		B Number `json:"b"`
		C Number `json:"c"`
		D Number `json:"d"`
	}
	require.NoError(t, sonic.UnmarshalString(`{"a":12.5,"b":"7","c":"","d":null}`, &v))
	assert.Equal(t, 12.5, v.A.Float())
	assert.Equal(t, 7.0, v.B.Float())
	assert.Zero(t, v.C)
	assert.Zero(t, v.D)
}

func TestPaymentSettings_ViewBlanksZero(t *testing.T) {
	view := PaymentSettings{CommissionPercent: 0, Cancellation: Cancellation{Enabled: true, Percent: 12.5}}.View()
	assert.Equal(t, "", view.Commission)
	assert.Equal(t, "12.5", view.CancellationPercentage)
	assert.True(t, view.CancellationEnabled)
}

func TestCancellationInput_Normalized(t *testing.T) {
	p := 10.0
	in := CancellationInput{Enabled: false, Percentage: &p}.Normalized()
	assert.Nil(t, in.Percentage)
}

func TestInputs_Validate(t *testing.T) {
	assert.EqualError(t, CategoryInput{Tags: NewTagSet("a")}.Validate(), "Category name is required")
	assert.EqualError(t, CategoryInput{Name: "Sports"}.Validate(), "Please provide at least one tag")
	assert.NoError(t, CategoryInput{Name: "Sports", Tags: NewTagSet("a")}.Validate())

	assert.EqualError(t, PlanInput{Days: 7, Price: 10}.Validate(), "Plan name is required")
	assert.EqualError(t, PlanInput{Name: "Gold", Price: 10}.Validate(), "Days and Price required")
	assert.EqualError(t, PlanInput{Name: "Gold", Days: 7}.Validate(), "Days and Price required")

	assert.EqualError(t, FakeUserBatch{Count: 0, Country: "India"}.Validate(), "Please enter at least 1 user.")
	assert.Error(t, FakeUserBatch{Count: 2, Country: "Atlantis"}.Validate())

	assert.EqualError(t, PasswordChange{OldPassword: "x", NewPassword: "weak"}.Validate(),
		"Password must be 8+ chars, include uppercase, number & special character")
	assert.NoError(t, PasswordChange{OldPassword: "x", NewPassword: "Str0ng@pw"}.Validate())
}

func TestMeasurePassword(t *testing.T) {
	assert.Equal(t, PasswordStrength{Score: 0, Label: "Very Weak"}, MeasurePassword("abc"))
	assert.Equal(t, PasswordStrength{Score: 4, Label: "Very Strong"}, MeasurePassword("Str0ng@pw"))
}

func TestListOrderings(t *testing.T) {
	older := FakeUser{ID: "a", CreatedAt: Timestamp{Time: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}}
	newer := FakeUser{ID: "b", CreatedAt: Timestamp{Time: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)}}
	assert.True(t, NewerFakeUser(newer, older))
	assert.False(t, NewerFakeUser(older, newer))

	week := PromotionPlan{Days: 7}
	month := PromotionPlan{Days: 30}
	assert.True(t, ShorterPlan(week, month))
	assert.False(t, ShorterPlan(month, week))
	assert.False(t, ShorterPlan(week, week))
}
