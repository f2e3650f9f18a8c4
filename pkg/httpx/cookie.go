package httpx

import (
	"net/http"
	"time"
)

// SessionCookieName is the cookie carrying the access token for interactive
// sessions. API clients use the Authorization header instead.
const SessionCookieName = "vibespace_session"

// SessionCookie builds the session cookie for a freshly issued access token.
// HttpOnly and Secure are non-negotiable; SameSite=Lax keeps the cookie on
// top-level navigations so the post-login redirect works.
func SessionCookie(token string, ttl time.Duration) *http.Cookie {
	maxAge := int(ttl.Seconds())
	if maxAge < 1 {
		maxAge = 1
	}
	return &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	}
}

// ClearSessionCookie builds an expired session cookie for logout.
func ClearSessionCookie() *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	}
}
