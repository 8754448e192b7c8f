package http

import (
	"net/http"

	"github.com/quartzlabs/signet/internal/auth/service"
	"github.com/quartzlabs/signet/pkg/httpx"
	"github.com/quartzlabs/signet/pkg/slogx"
)

type LoginHandler struct {
	AuthService *service.AuthService
}

// ServeHTTP verifies credentials and opens a session, replacing whatever
// refresh token the account held before.
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := slogx.FromContext(ctx)

	req, ok := decodeCredentials(w, r)
	if !ok {
		return
	}

	sess, err := h.AuthService.Login(ctx, req.Email, req.Password)
	if err != nil {
		writeServiceError(w, l, err)
		return
	}

	setRefreshCookie(w, sess.Tokens.RefreshToken, sessionCookieTTL)
	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, newSessionResponse(sess))
}
