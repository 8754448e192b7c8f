package http

import (
	"net/http"

	"github.com/quartzlabs/signet/internal/auth/domain"
	"github.com/quartzlabs/signet/internal/auth/service"
	"github.com/quartzlabs/signet/pkg/httpx"
	"github.com/quartzlabs/signet/pkg/slogx"
)

type UsersHandler struct {
	UserService *service.UserService
}

type usersResponse struct {
	Users []domain.UserClaims `json:"users"`
	Count int                 `json:"count"`
}

// ServeHTTP lists all registered users as claim projections. Requires a
// valid access token.
func (h *UsersHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := slogx.FromContext(ctx)

	users, err := h.UserService.ListUsers(ctx)
	if err != nil {
		l.Warn("failed to list users", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "internal server error")
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, usersResponse{Users: users, Count: len(users)})
}
