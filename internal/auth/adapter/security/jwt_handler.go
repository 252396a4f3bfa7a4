package security

import (
	"errors"
	"time"

	"betogether-admin/internal/auth/config"
	"betogether-admin/internal/auth/domain/repository"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrTokenInvalid          = errors.New("token is invalid")
	ErrTokenExpired          = errors.New("token is expired")
	ErrTokenSignatureInvalid = errors.New("token signature is invalid")
)

// JWTCookieSigner signs session cookies as HS256 JWTs carrying the session id.
type JWTCookieSigner struct {
	secretKey []byte
	issuer    string
}

// NewJWTCookieSigner creates a cookie signer from the auth configuration.
func NewJWTCookieSigner(cfg *config.Config) (*JWTCookieSigner, error) {
	if cfg == nil || cfg.SessionSecret == "" {
		return nil, errors.New("session secret cannot be empty")
	}
	if cfg.SessionIssuer == "" {
		return nil, errors.New("session issuer cannot be empty")
	}

	return &JWTCookieSigner{
		secretKey: []byte(cfg.SessionSecret),
		issuer:    cfg.SessionIssuer,
	}, nil
}

// Sign returns the cookie value for sessionID.
func (s *JWTCookieSigner) Sign(sessionID string, expiresAt time.Time) (string, error) {
	if sessionID == "" {
		return "", ErrTokenInvalid
	}
	now := time.Now()
	claims := &repository.Claims{
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now.Add(-time.Second)),
			Issuer:    s.issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secretKey)
}

// Verify checks the signature, issuer and expiry of a cookie value.
func (s *JWTCookieSigner) Verify(value string) (*repository.Claims, error) {
	if value == "" {
		return nil, ErrTokenInvalid
	}

	token, err := jwt.ParseWithClaims(value, &repository.Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenSignatureInvalid
		}
		return s.secretKey, nil
	}, jwt.WithIssuer(s.issuer))

	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, ErrTokenSignatureInvalid
		default:
			return nil, ErrTokenInvalid
		}
	}

	claims, ok := token.Claims.(*repository.Claims)
	if !ok || !token.Valid || claims.SessionID == "" {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}
