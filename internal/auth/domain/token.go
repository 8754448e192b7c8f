package domain

import "time"

// TokenPair is what a successful register/login/refresh hands back: a
// short-lived access JWT verified statelessly, and a long-lived refresh JWT
// that must additionally exist in the store to be honored.
type TokenPair struct {
	AccessToken  string        `json:"access_token"`
	RefreshToken string        `json:"refresh_token"`
	ExpiresIn    time.Duration `json:"expires_in"` // access token lifetime
}

// RefreshToken models the stored refresh token record. At most one row
// exists per user; issuing a new token overwrites the previous row, which is
// what invalidates rotated-out tokens before their natural expiry.
type RefreshToken struct {
	ID        string
	UserID    string
	TokenHash string // base64url SHA-256 fingerprint, never the raw token
	ExpiresAt time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}
