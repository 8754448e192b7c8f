package http

import (
	"log/slog"
	"net/http"

	"github.com/quartzlabs/signet/internal/auth/service"
	"github.com/quartzlabs/signet/pkg/slogx"
)

type ActivateHandler struct {
	AuthService *service.AuthService

	// ClientURL is where the browser lands after clicking the mail link.
	ClientURL string
}

// ServeHTTP activates the account behind the link and sends the browser on
// to the frontend. Served as a GET because the link is clicked from a mail
// client.
func (h *ActivateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := slogx.FromContext(ctx)

	u, err := h.AuthService.Activate(ctx, r.PathValue("link"))
	if err != nil {
		writeServiceError(w, l, err)
		return
	}

	l.Info("account activated", slog.String("user_id", u.ID))
	http.Redirect(w, r, h.ClientURL, http.StatusFound)
}
