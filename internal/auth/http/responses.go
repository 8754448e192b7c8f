package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/quartzlabs/signet/internal/auth/domain"
	"github.com/quartzlabs/signet/internal/auth/service"
	"github.com/quartzlabs/signet/pkg/httpx"
)

// SessionResponse is the body returned by register, login and refresh.
// The refresh token is duplicated into an httpOnly cookie for browser
// clients; non-browser clients read it from the body.
type SessionResponse struct {
	AccessToken  string            `json:"access_token"`
	RefreshToken string            `json:"refresh_token"`
	TokenType    string            `json:"token_type"`
	ExpiresIn    int64             `json:"expires_in"`
	User         domain.UserClaims `json:"user"`
}

func newSessionResponse(sess service.Session) SessionResponse {
	return SessionResponse{
		AccessToken:  sess.Tokens.AccessToken,
		RefreshToken: sess.Tokens.RefreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    int64(sess.Tokens.ExpiresIn.Seconds()),
		User:         sess.User,
	}
}

// HealthResponse is returned by the livez and readyz probes.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

type HealthChecks struct {
	Database string `json:"database"`
}

// writeServiceError translates service error kinds into status codes.
// Anything unrecognised is an internal error: logged with context, returned
// opaque.
func writeServiceError(w http.ResponseWriter, l *slog.Logger, err error) {
	switch {
	case errors.Is(err, service.ErrEmailTaken):
		httpx.WriteError(w, http.StatusConflict, "email_taken", "an account with this email already exists")
	case errors.Is(err, service.ErrUserNotFound):
		httpx.WriteError(w, http.StatusNotFound, "user_not_found", "no account with this email")
	case errors.Is(err, service.ErrInvalidCredentials):
		httpx.WriteError(w, http.StatusUnauthorized, "invalid_credentials", "email or password is incorrect")
	case errors.Is(err, service.ErrInvalidActivationLink):
		httpx.WriteError(w, http.StatusBadRequest, "invalid_activation_link", "activation link is unknown")
	case errors.Is(err, service.ErrUnauthenticated):
		httpx.WriteError(w, http.StatusUnauthorized, "unauthenticated", "refresh token is missing, expired, or revoked")
	default:
		l.Error("request failed", slog.Any("error", err))
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "internal server error")
	}
}
