package http

import (
	"net/http"
	"net/url"

	"github.com/vibespace/vibespace/internal/gateway/service"
	"github.com/vibespace/vibespace/pkg/httpx"
)

// RequireAPISession authenticates the request and rejects failures with a
// 401 JSON body. For endpoints called by scripts and tooling.
func RequireAPISession(sessions *service.SessionService) httpx.Middleware {
	return requireSession(sessions, true)
}

// RequireInteractiveSession authenticates the request and redirects failures
// to the login page, preserving the original path in returnTo.
func RequireInteractiveSession(sessions *service.SessionService) httpx.Middleware {
	return requireSession(sessions, false)
}

func requireSession(sessions *service.SessionService, api bool) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := sessions.Authenticate(r)
			if err != nil {
				unauthenticated(w, r, api)
				return
			}

			ctx := httpx.ContextWithSubject(r.Context(), claims.Subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func unauthenticated(w http.ResponseWriter, r *http.Request, api bool) {
	if api {
		httpx.WriteError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	loginURL := "/auth/login"
	returnTo := r.URL.Path
	if r.URL.RawQuery != "" {
		returnTo += "?" + r.URL.RawQuery
	}
	if returnTo != "" && returnTo != "/auth/login" {
		loginURL += "?returnTo=" + url.QueryEscape(returnTo)
	}
	http.Redirect(w, r, loginURL, http.StatusFound)
}
