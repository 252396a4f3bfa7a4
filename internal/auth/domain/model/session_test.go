package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSession_Active(t *testing.T) {
	now := time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		session *Session
		want    bool
	}{
		{"nil session", nil, false},
		{"empty token", &Session{ExpiresAt: now.Add(time.Hour)}, false},
		{"valid", &Session{Token: "abc", ExpiresAt: now.Add(time.Hour)}, true},
		{"no expiry", &Session{Token: "abc"}, true},
		{"expired at boundary", &Session{Token: "abc", ExpiresAt: now}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.session.Active(now))
		})
	}
}

func TestAdminProfile_DisplayName(t *testing.T) {
	assert.Equal(t, "Admin", AdminProfile{}.DisplayName())
	assert.Equal(t, "Riya", AdminProfile{Name: "Riya"}.DisplayName())
}
