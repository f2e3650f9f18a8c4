package gatewaysdk

import (
	"encoding/json"
	"time"
)

// ErrorResponse is the body of every non-2xx JSON response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// CeremonyOptionsResponse starts a ceremony: browser-facing WebAuthn options
// plus the opaque state token that must accompany the verify call.
type CeremonyOptionsResponse struct {
	PublicKey json.RawMessage `json:"publicKey"`
	State     string          `json:"state"`
}

// RegisterOptionsRequest asks for registration ceremony options. Token is the
// one-time enrollment token; Label is an optional human name for the new key.
type RegisterOptionsRequest struct {
	Token string `json:"token"`
	Label string `json:"label,omitempty"`
}

// LoginVerifyRequest completes a login ceremony. Credential is the JSON the
// browser's credential API produced, passed through untouched.
type LoginVerifyRequest struct {
	State      string          `json:"state"`
	Credential json.RawMessage `json:"credential"`
}

// LoginVerifyResponse reports a completed login. The access token travels in
// the session cookie; API clients exchange the cookie at /auth/token.
type LoginVerifyResponse struct {
	OK           bool   `json:"ok"`
	Sub          string `json:"sub"`
	UserVerified bool   `json:"userVerified"`
}

// RegisterVerifyRequest completes a registration ceremony.
type RegisterVerifyRequest struct {
	State      string          `json:"state"`
	Credential json.RawMessage `json:"credential"`
}

// RegisterVerifyResponse reports a completed registration. AlreadyExists
// marks the idempotent replay of a known credential; TokenConsumed is true
// whenever the enrollment token was retired.
type RegisterVerifyResponse struct {
	OK            bool   `json:"ok"`
	CredentialID  string `json:"credentialId,omitempty"`
	AlreadyExists bool   `json:"alreadyExists,omitempty"`
	TokenConsumed bool   `json:"tokenConsumed"`
}

// TokenResponse carries the session's access token for API use.
type TokenResponse struct {
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expiresIn"`
	Type      string `json:"type"`
}

// MintRegistrationTokenResponse is a freshly minted enrollment token together
// with the URL to hand to the person enrolling.
type MintRegistrationTokenResponse struct {
	Token       string    `json:"token"`
	ExpiresAt   time.Time `json:"expiresAt"`
	RegisterURL string    `json:"registerUrl"`
}

// HealthResponse is shared by the liveness and readiness probes.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks itemizes dependency health for the readiness probe.
type HealthChecks struct {
	Database string `json:"database"`
}
