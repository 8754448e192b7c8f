package http

import (
	"net/http"
	"time"

	"github.com/quartzlabs/signet/pkg/jwtx"
)

// refreshCookieName is where browser clients keep their refresh token.
const refreshCookieName = "refresh_token"

// refreshCookiePath scopes the cookie to the session endpoints so it is not
// replayed on every request.
const refreshCookiePath = "/v1/auth"

func setRefreshCookie(w http.ResponseWriter, token string, ttl time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     refreshCookieName,
		Value:    token,
		Path:     refreshCookiePath,
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearRefreshCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     refreshCookieName,
		Value:    "",
		Path:     refreshCookiePath,
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// refreshTokenFromRequest pulls the refresh token out of the cookie, or the
// empty string if the cookie is absent.
func refreshTokenFromRequest(r *http.Request) string {
	c, err := r.Cookie(refreshCookieName)
	if err != nil {
		return ""
	}
	return c.Value
}

// sessionCookieTTL is how long the refresh cookie lives. It matches the
// refresh token's own validity window.
const sessionCookieTTL = jwtx.DefaultRefreshTokenTTL
