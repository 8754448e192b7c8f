package domain

import "time"

// User is the durable account record. Activated flips to true exactly once,
// when the activation link from the welcome email is visited. The record is
// never deleted by the auth service.
type User struct {
	ID             string
	Email          string // unique
	PasswordHash   string // argon2id, PHC encoded
	Activated      bool
	ActivationLink string // opaque one-time identifier, kept after activation
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// UserClaims is the projection of a User that travels inside tokens and API
// responses. It carries no secret material and is rebuilt per request.
type UserClaims struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Activated bool   `json:"activated"`
}

// Claims returns the token-safe projection of u.
func (u User) Claims() UserClaims {
	return UserClaims{
		ID:        u.ID,
		Email:     u.Email,
		Activated: u.Activated,
	}
}
