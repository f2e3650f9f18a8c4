package jwtx

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// ErrEmptySecret reports a codec constructed without signing material.
var ErrEmptySecret = errors.New("jwtx: signing secret must not be empty")

// Codec signs and verifies compact claim bundles with HMAC-SHA256. Tokens are
// three dot-separated base64url segments and carry no external state, so
// verification needs nothing beyond the shared secret.
type Codec struct {
	secret []byte
}

// NewCodec builds a Codec from the deployment secret. The secret is process
// configuration, loaded once; rotation is an operational concern handled by
// restarting with a new value.
func NewCodec(secret []byte) (*Codec, error) {
	if len(secret) == 0 {
		return nil, ErrEmptySecret
	}
	return &Codec{secret: secret}, nil
}

// Sign serializes the claims and signs them with HS256.
func (c *Codec) Sign(claims Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("jwtx: sign: %w", err)
	}
	return signed, nil
}

// Verify recomputes the signature and decodes the claims. All failure modes
// (bad signature, malformed structure, expiry, algorithm confusion) collapse
// to ok == false; callers never learn why a token was rejected.
func (c *Codec) Verify(token string) (Claims, bool) {
	if token == "" {
		return Claims{}, false
	}

	var claims Claims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("jwtx: unexpected signing method %q", t.Method.Alg())
		}
		return c.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !parsed.Valid {
		return Claims{}, false
	}

	// Every token the gateway mints carries an expiry; one without is not ours.
	if claims.ExpiresAt == 0 {
		return Claims{}, false
	}

	return claims, true
}
