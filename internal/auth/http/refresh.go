package http

import (
	"net/http"

	"github.com/quartzlabs/signet/internal/auth/service"
	"github.com/quartzlabs/signet/pkg/httpx"
	"github.com/quartzlabs/signet/pkg/slogx"
)

type RefreshHandler struct {
	AuthService *service.AuthService
}

// ServeHTTP exchanges the refresh cookie for a new token pair. The old
// refresh token stops working the moment this succeeds.
func (h *RefreshHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := slogx.FromContext(ctx)

	sess, err := h.AuthService.Refresh(ctx, refreshTokenFromRequest(r))
	if err != nil {
		writeServiceError(w, l, err)
		return
	}

	setRefreshCookie(w, sess.Tokens.RefreshToken, sessionCookieTTL)
	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, newSessionResponse(sess))
}
