package domain

import (
	"strings"
	"time"
)

// Supported credential signature algorithms. Anything else an authenticator
// reports is normalized to ES256.
const (
	AlgES256 = "ES256"
	AlgRS256 = "RS256"
)

// Credential is an enrolled passkey. ID is the base64url credential id the
// authenticator reports on the wire; it is globally unique and immutable once
// inserted. PublicKey holds the COSE-encoded key bytes the ceremony verifier
// produced at registration.
type Credential struct {
	ID         string
	PublicKey  []byte
	Algorithm  string
	Counter    uint32
	Label      string
	Transports []string
	CreatedAt  time.Time
	LastUsedAt *time.Time
}

// NormalizeAlgorithm maps an authenticator-reported algorithm label onto the
// two supported values, defaulting to ES256 for anything unrecognized.
func NormalizeAlgorithm(value string) string {
	switch strings.ToUpper(strings.TrimSpace(value)) {
	case AlgRS256:
		return AlgRS256
	default:
		return AlgES256
	}
}
