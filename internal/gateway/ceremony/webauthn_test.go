package ceremony

import (
	"encoding/base64"
	"testing"

	"github.com/vibespace/vibespace/internal/gateway/domain"
	"github.com/stretchr/testify/require"
)

func newTestVerifier(t *testing.T) *WebAuthnVerifier {
	t.Helper()

	v, err := NewWebAuthnVerifier("example.com", "Example", "https://example.com")
	require.NoError(t, err)
	return v
}

func TestNewWebAuthnVerifierRejectsEmptyRPID(t *testing.T) {
	t.Parallel()

	_, err := NewWebAuthnVerifier("", "Example", "https://example.com")
	require.Error(t, err)

	_, err = NewWebAuthnVerifier("example.com", "Example", "")
	require.Error(t, err)
}

func TestAssertedCredentialID(t *testing.T) {
	t.Parallel()

	id, err := AssertedCredentialID([]byte(`{"id":"cred-1","type":"public-key"}`))
	require.NoError(t, err)
	require.Equal(t, "cred-1", id)

	_, err = AssertedCredentialID([]byte(`{"type":"public-key"}`))
	require.ErrorIs(t, err, ErrMalformedPayload)

	_, err = AssertedCredentialID([]byte(`not-json`))
	require.ErrorIs(t, err, ErrMalformedPayload)
}

func TestVerifyRegistrationMalformedPayload(t *testing.T) {
	t.Parallel()
	v := newTestVerifier(t)

	_, err := v.VerifyRegistration(RegistrationRequest{
		Identity:  Identity{Subject: "owner"},
		Challenge: "c",
		Payload:   []byte("not-json"),
	})
	require.ErrorIs(t, err, ErrMalformedPayload)
}

func TestVerifyAuthenticationMalformedPayload(t *testing.T) {
	t.Parallel()
	v := newTestVerifier(t)

	_, err := v.VerifyAuthentication(AuthenticationRequest{
		Identity:  Identity{Subject: "owner"},
		Challenge: "c",
		Payload:   []byte("{"),
	})
	require.ErrorIs(t, err, ErrMalformedPayload)
}

func TestCeremonyUserAdaptsCredentials(t *testing.T) {
	t.Parallel()

	id := base64.RawURLEncoding.EncodeToString([]byte{0xDE, 0xAD, 0xBE, 0xEF})
	user, err := newCeremonyUser(Identity{
		Subject: "owner",
		Credentials: []domain.Credential{{
			ID:         id,
			PublicKey:  []byte{0x01},
			Counter:    7,
			Transports: []string{"usb", "nfc"},
		}},
	})
	require.NoError(t, err)

	require.Equal(t, []byte("owner"), user.WebAuthnID())
	require.Equal(t, "owner", user.WebAuthnName())
	require.Equal(t, "owner", user.WebAuthnDisplayName())

	creds := user.WebAuthnCredentials()
	require.Len(t, creds, 1)
	require.Equal(t, []byte{0xDE, 0xAD, 0xBE, 0xEF}, creds[0].ID)
	require.Equal(t, uint32(7), creds[0].Authenticator.SignCount)
	require.Len(t, creds[0].Transport, 2)
}

func TestCeremonyUserRejectsBadCredentialID(t *testing.T) {
	t.Parallel()

	_, err := newCeremonyUser(Identity{
		Subject:     "owner",
		Credentials: []domain.Credential{{ID: "not+base64url!"}},
	})
	require.Error(t, err)
}

func TestCOSEAlgorithmName(t *testing.T) {
	t.Parallel()

	require.Equal(t, domain.AlgRS256, coseAlgorithmName(-257))
	require.Equal(t, domain.AlgES256, coseAlgorithmName(-7))
	require.Equal(t, domain.AlgES256, coseAlgorithmName(-8), "unsupported algorithms fall back to ES256")
}
