// Package ceremony wraps WebAuthn attestation and assertion handling behind a
// narrow interface so services stay independent of the underlying library.
package ceremony

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/vibespace/vibespace/internal/gateway/domain"
)

// ErrMalformedPayload reports an authenticator response that could not be
// parsed at all, as opposed to one that parsed but failed verification.
var ErrMalformedPayload = errors.New("malformed authenticator payload")

// Identity is the relying-party view of the account a ceremony runs for.
type Identity struct {
	Subject     string
	DisplayName string
	Credentials []domain.Credential
}

// Options carries the browser-facing ceremony options plus the challenge the
// caller must bind into its state token.
type Options struct {
	Challenge string
	PublicKey json.RawMessage
}

// RegistrationRequest asks for verification of an attestation response
// against a previously issued challenge.
type RegistrationRequest struct {
	Identity  Identity
	Challenge string
	Payload   []byte
}

// RegistrationInfo is the validated outcome of a registration ceremony.
type RegistrationInfo struct {
	CredentialID string
	PublicKey    []byte
	Algorithm    string
	Transports   []string
	Counter      uint32
	UserVerified bool
	RPIDHash     []byte
}

// AssertedCredentialID extracts the credential id a raw assertion response
// claims to be signed with, without verifying anything else about it. The id
// is the base64url string the browser reports on the wire.
func AssertedCredentialID(payload []byte) (string, error) {
	var envelope struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(payload, &envelope); err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	if envelope.ID == "" {
		return "", fmt.Errorf("%w: missing credential id", ErrMalformedPayload)
	}
	return envelope.ID, nil
}

// AuthenticationRequest asks for verification of an assertion response
// against a previously issued challenge.
type AuthenticationRequest struct {
	Identity  Identity
	Challenge string
	Payload   []byte
}

// AuthenticationInfo is the validated outcome of a login ceremony.
type AuthenticationInfo struct {
	CredentialID string
	Counter      uint32
	UserVerified bool
	CloneWarning bool
}

// Verifier produces ceremony options and validates authenticator responses.
type Verifier interface {
	RegistrationOptions(identity Identity) (*Options, error)
	AuthenticationOptions(identity Identity) (*Options, error)
	VerifyRegistration(req RegistrationRequest) (*RegistrationInfo, error)
	VerifyAuthentication(req AuthenticationRequest) (*AuthenticationInfo, error)
}
