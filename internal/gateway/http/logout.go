package http

import (
	"net/http"

	"github.com/vibespace/vibespace/pkg/httpx"
)

// LogoutHandler godoc
//
//	@Summary		Logout Endpoint
//	@Description	Clear the session cookie and redirect to the login page. The access token
//	@Description	itself stays valid until its expiry; tokens are stateless and not revocable.
//	@Tags			Sessions
//	@Success		302	"redirect to /auth/login"
//	@Router			/auth/logout [get].
func LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, httpx.ClearSessionCookie())
		http.Redirect(w, r, "/auth/login", http.StatusFound)
	}
}
