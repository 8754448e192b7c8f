package http

import (
	"encoding/json"
	"net/http"
	"net/mail"

	"github.com/quartzlabs/signet/internal/auth/service"
	"github.com/quartzlabs/signet/pkg/httpx"
	"github.com/quartzlabs/signet/pkg/slogx"
)

type RegisterHandler struct {
	AuthService *service.AuthService
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ServeHTTP creates an account and opens the first session. The response
// carries the token pair; the refresh token is additionally set as an
// httpOnly cookie.
func (h *RegisterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := slogx.FromContext(ctx)

	req, ok := decodeCredentials(w, r)
	if !ok {
		return
	}

	sess, err := h.AuthService.Register(ctx, req.Email, req.Password)
	if err != nil {
		writeServiceError(w, l, err)
		return
	}

	setRefreshCookie(w, sess.Tokens.RefreshToken, sessionCookieTTL)
	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusCreated, newSessionResponse(sess))
}

// decodeCredentials parses and validates an {email, password} body, writing
// the error response itself when the input is unusable.
func decodeCredentials(w http.ResponseWriter, r *http.Request) (credentialsRequest, bool) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "body must be valid JSON")
		return credentialsRequest{}, false
	}

	if _, err := mail.ParseAddress(req.Email); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "email is not a valid address")
		return credentialsRequest{}, false
	}
	if len(req.Password) < 3 || len(req.Password) > 72 {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "password must be between 3 and 72 characters")
		return credentialsRequest{}, false
	}

	return req, true
}
