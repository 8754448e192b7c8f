package jwtx

import (
	"crypto/rand"
	"encoding/base64"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Default token TTLs. Access tokens stay short so the stateless verification
// window is small; refresh tokens match the session cookie lifetime.
const (
	DefaultAccessTokenTTL  = 30 * time.Minute
	DefaultRefreshTokenTTL = 30 * 24 * time.Hour
)

// Claims is the claim set embedded in both access and refresh tokens. It is a
// projection of the user record and carries no secret material.
type Claims struct {
	jwt.RegisteredClaims

	// Email of the authenticated user.
	Email string `json:"email,omitempty"`

	// Activated reports whether the user confirmed their email address.
	// Clients use it to gate features behind the activation step.
	Activated bool `json:"activated"`
}

// NewClaims builds minimally-correct claims for a user token.
func NewClaims(
	subject, email string,
	activated bool,
	ttl time.Duration,
	issuer string,
	now time.Time,
) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        NewJTI(),
		},
		Email:     email,
		Activated: activated,
	}
}

// NewJTI returns a URL-safe random identifier for the "jti" claim. Refresh
// tokens for the same user would otherwise be byte-identical when minted
// within the same second.
func NewJTI() string {
	var b [20]byte
	_, _ = rand.Read(b[:])
	return base64.RawURLEncoding.EncodeToString(b[:])
}
