package service

import (
	"errors"
	"net/http"
	"strings"

	"github.com/vibespace/vibespace/pkg/httpx"
	"github.com/vibespace/vibespace/pkg/jwtx"
)

// ErrUnauthenticated reports a request carrying no valid access token.
var ErrUnauthenticated = errors.New("authentication required")

const bearerPrefix = "Bearer "

// SessionService resolves the caller identity for incoming requests. A bearer
// Authorization header wins over the session cookie; when both are present
// and the bearer token is bad, the cookie is not consulted.
type SessionService struct {
	Tokens *TokenService
}

// Authenticate extracts and verifies the request's access token.
func (s *SessionService) Authenticate(r *http.Request) (jwtx.Claims, error) {
	if token, ok := bearerToken(r); ok {
		claims, err := s.Tokens.VerifyAccess(token)
		if err != nil {
			return jwtx.Claims{}, ErrUnauthenticated
		}
		return claims, nil
	}

	cookie, err := r.Cookie(httpx.SessionCookieName)
	if err != nil || cookie.Value == "" {
		return jwtx.Claims{}, ErrUnauthenticated
	}

	claims, err := s.Tokens.VerifyAccess(cookie.Value)
	if err != nil {
		return jwtx.Claims{}, ErrUnauthenticated
	}
	return claims, nil
}

// bearerToken reports whether the request presented a bearer Authorization
// header at all. A bare "Bearer " with nothing after it still counts as
// presented, so it rejects rather than falling back to the cookie.
func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if len(header) < len(bearerPrefix) {
		return "", false
	}
	if !strings.EqualFold(header[:len(bearerPrefix)], bearerPrefix) {
		return "", false
	}
	return strings.TrimSpace(header[len(bearerPrefix):]), true
}
