package model

import "time"

// AdminProfile is the administrator identity returned by the backend at login.
type AdminProfile struct {
	ID    string `json:"_id,omitempty"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// DisplayName falls back to "Admin" when the backend sent no name.
func (a AdminProfile) DisplayName() string {
	if a.Name == "" {
		return "Admin"
	}
	return a.Name
}

// Session is one logged-in administrator. Token is the backend bearer token; a
// session without one never grants access.
type Session struct {
	ID        string       `json:"id"`
	Token     string       `json:"token"`
	Admin     AdminProfile `json:"admin"`
	CreatedAt time.Time    `json:"created_at"`
	ExpiresAt time.Time    `json:"expires_at"`
}

// HasToken reports whether the session carries a non-empty backend token.
func (s *Session) HasToken() bool {
	return s != nil && s.Token != ""
}

// IsExpired reports whether the session is past its expiry at now.
func (s *Session) IsExpired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

// Active is true when the session may open protected views at now.
func (s *Session) Active(now time.Time) bool {
	return s.HasToken() && !s.IsExpired(now)
}
