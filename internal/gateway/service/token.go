package service

import (
	"errors"
	"strings"
	"time"

	"github.com/vibespace/vibespace/pkg/jwtx"
)

var (
	ErrInvalidToken = errors.New("invalid or expired token")
	ErrInvalidState = errors.New("invalid or expired state")
)

const (
	// DefaultAccessTTL matches one interactive day.
	DefaultAccessTTL = 24 * time.Hour

	// DefaultStateTTL bounds how long a ceremony may sit between its options
	// and verify phases.
	DefaultStateTTL = 5 * time.Minute

	// minStateTTL is the floor applied to caller-supplied state lifetimes.
	minStateTTL = 10 * time.Second
)

// TokenService issues and verifies the gateway's signed tokens: long-lived
// access tokens and short-lived ceremony state tokens.
type TokenService struct {
	Codec     *jwtx.Codec
	AccessTTL time.Duration

	// Clock overrides time.Now in tests.
	Clock func() time.Time
}

func (s *TokenService) now() time.Time {
	if s.Clock != nil {
		return s.Clock()
	}
	return time.Now()
}

func (s *TokenService) accessTTL() time.Duration {
	if s.AccessTTL > 0 {
		return s.AccessTTL
	}
	return DefaultAccessTTL
}

// IssueAccess mints an access token for the given subject.
func (s *TokenService) IssueAccess(sub, amr string) (string, error) {
	now := s.now()

	return s.Codec.Sign(jwtx.Claims{
		Type:      jwtx.TypeAccess,
		Subject:   sub,
		AMR:       amr,
		IssuedAt:  now.Unix(),
		ExpiresAt: now.Add(s.accessTTL()).Unix(),
	})
}

// VerifyAccess checks an access token and returns its claims. Verification
// is fail-closed: a token of the wrong type or with a blank subject is
// rejected the same way as a forged one.
func (s *TokenService) VerifyAccess(token string) (jwtx.Claims, error) {
	claims, ok := s.Codec.Verify(token)
	if !ok {
		return jwtx.Claims{}, ErrInvalidToken
	}
	if claims.Type != jwtx.TypeAccess {
		return jwtx.Claims{}, ErrInvalidToken
	}
	if strings.TrimSpace(claims.Subject) == "" {
		return jwtx.Claims{}, ErrInvalidToken
	}

	return claims, nil
}

// IssueState mints an ephemeral state token of the given type. The supplied
// claims carry the ceremony binding (challenge, rp id, origin); type, iat and
// exp are stamped here. Lifetimes below ten seconds are raised to ten so a
// misconfigured TTL cannot make ceremonies unfinishable.
func (s *TokenService) IssueState(typ string, claims jwtx.Claims, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = DefaultStateTTL
	}
	if ttl < minStateTTL {
		ttl = minStateTTL
	}

	now := s.now()
	claims.Type = typ
	claims.IssuedAt = now.Unix()
	claims.ExpiresAt = now.Add(ttl).Unix()

	return s.Codec.Sign(claims)
}

// VerifyState checks a state token of the expected type and returns its
// claims. A state token without a bound challenge is rejected.
func (s *TokenService) VerifyState(token, typ string) (jwtx.Claims, error) {
	claims, ok := s.Codec.Verify(token)
	if !ok {
		return jwtx.Claims{}, ErrInvalidState
	}
	if claims.Type != typ {
		return jwtx.Claims{}, ErrInvalidState
	}
	if claims.Challenge == "" {
		return jwtx.Claims{}, ErrInvalidState
	}

	return claims, nil
}
