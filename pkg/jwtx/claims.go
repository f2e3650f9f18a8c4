package jwtx

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claim bundle types. Access tokens prove an authenticated session; the two
// state types bind a ceremony's options phase to its verify phase.
const (
	TypeAccess          = "access"
	TypePasskeyLogin    = "passkey_login"
	TypePasskeyRegister = "passkey_register"
)

// Claims is the flat claim bundle carried by every signed token the gateway
// issues. Access tokens populate sub/amr; ephemeral state tokens populate
// challenge/rpId/origin (and label/registrationToken for registration flows).
// Unused fields are omitted from the wire payload.
type Claims struct {
	Type              string `json:"type,omitempty"`
	Subject           string `json:"sub,omitempty"`
	AMR               string `json:"amr,omitempty"`
	Challenge         string `json:"challenge,omitempty"`
	RPID              string `json:"rpId,omitempty"`
	Origin            string `json:"origin,omitempty"`
	Label             string `json:"label,omitempty"`
	RegistrationToken string `json:"registrationToken,omitempty"`
	IssuedAt          int64  `json:"iat,omitempty"`
	ExpiresAt         int64  `json:"exp,omitempty"`
}

// GetExpirationTime implements jwt.Claims. A token is invalid at and after
// its expiry instant.
func (c Claims) GetExpirationTime() (*jwt.NumericDate, error) {
	if c.ExpiresAt == 0 {
		return nil, nil
	}
	return jwt.NewNumericDate(time.Unix(c.ExpiresAt, 0)), nil
}

// GetIssuedAt implements jwt.Claims.
func (c Claims) GetIssuedAt() (*jwt.NumericDate, error) {
	if c.IssuedAt == 0 {
		return nil, nil
	}
	return jwt.NewNumericDate(time.Unix(c.IssuedAt, 0)), nil
}

// GetNotBefore implements jwt.Claims. The gateway never stamps nbf.
func (c Claims) GetNotBefore() (*jwt.NumericDate, error) { return nil, nil }

// GetIssuer implements jwt.Claims.
func (c Claims) GetIssuer() (string, error) { return "", nil }

// GetSubject implements jwt.Claims.
func (c Claims) GetSubject() (string, error) { return c.Subject, nil }

// GetAudience implements jwt.Claims.
func (c Claims) GetAudience() (jwt.ClaimStrings, error) { return nil, nil }
