package http

import (
	"net/http"

	"github.com/quartzlabs/signet/internal/auth/service"
	"github.com/quartzlabs/signet/pkg/slogx"
)

type LogoutHandler struct {
	AuthService *service.AuthService
}

// ServeHTTP terminates the session behind the refresh cookie. Always
// succeeds: logging out twice, or without a cookie, is a no-op.
func (h *LogoutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := slogx.FromContext(ctx)

	if err := h.AuthService.Logout(ctx, refreshTokenFromRequest(r)); err != nil {
		writeServiceError(w, l, err)
		return
	}

	clearRefreshCookie(w)
	w.WriteHeader(http.StatusNoContent)
}
