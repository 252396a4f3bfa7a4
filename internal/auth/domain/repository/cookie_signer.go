package repository

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// CookieSigner turns a session id into a tamper-proof cookie value and back.
type CookieSigner interface {
	Sign(sessionID string, expiresAt time.Time) (string, error)
	Verify(value string) (*Claims, error)
}

// Claims carried by the session cookie.
type Claims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}
