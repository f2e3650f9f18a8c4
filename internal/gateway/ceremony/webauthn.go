package ceremony

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-webauthn/webauthn/protocol"
	"github.com/go-webauthn/webauthn/protocol/webauthncose"
	"github.com/go-webauthn/webauthn/webauthn"

	"github.com/vibespace/vibespace/internal/gateway/domain"
)

// WebAuthnVerifier implements Verifier on top of go-webauthn.
type WebAuthnVerifier struct {
	wa   *webauthn.WebAuthn
	rpID string
}

// NewWebAuthnVerifier constructs a verifier bound to a single relying party
// and origin. An empty rp id or origin is a configuration error; the library
// itself does not insist on either.
func NewWebAuthnVerifier(rpID, rpDisplayName, origin string) (*WebAuthnVerifier, error) {
	if rpID == "" {
		return nil, errors.New("rp id must not be empty")
	}
	if origin == "" {
		return nil, errors.New("origin must not be empty")
	}

	wa, err := webauthn.New(&webauthn.Config{
		RPID:          rpID,
		RPDisplayName: rpDisplayName,
		RPOrigins:     []string{origin},
	})
	if err != nil {
		return nil, fmt.Errorf("configure webauthn: %w", err)
	}

	return &WebAuthnVerifier{wa: wa, rpID: rpID}, nil
}

func (v *WebAuthnVerifier) RegistrationOptions(identity Identity) (*Options, error) {
	user, err := newCeremonyUser(identity)
	if err != nil {
		return nil, err
	}

	opts := []webauthn.RegistrationOption{
		webauthn.WithCredentialParameters([]protocol.CredentialParameter{
			{Type: protocol.PublicKeyCredentialType, Algorithm: webauthncose.AlgES256},
			{Type: protocol.PublicKeyCredentialType, Algorithm: webauthncose.AlgRS256},
		}),
	}
	if len(user.credentials) > 0 {
		opts = append(opts, webauthn.WithExclusions(
			webauthn.Credentials(user.credentials).CredentialDescriptors(),
		))
	}

	creation, session, err := v.wa.BeginRegistration(user, opts...)
	if err != nil {
		return nil, fmt.Errorf("begin registration: %w", err)
	}

	publicKey, err := json.Marshal(creation.Response)
	if err != nil {
		return nil, fmt.Errorf("encode registration options: %w", err)
	}

	return &Options{Challenge: session.Challenge, PublicKey: publicKey}, nil
}

func (v *WebAuthnVerifier) AuthenticationOptions(identity Identity) (*Options, error) {
	user, err := newCeremonyUser(identity)
	if err != nil {
		return nil, err
	}

	assertion, session, err := v.wa.BeginLogin(user)
	if err != nil {
		return nil, fmt.Errorf("begin login: %w", err)
	}

	publicKey, err := json.Marshal(assertion.Response)
	if err != nil {
		return nil, fmt.Errorf("encode login options: %w", err)
	}

	return &Options{Challenge: session.Challenge, PublicKey: publicKey}, nil
}

func (v *WebAuthnVerifier) VerifyRegistration(req RegistrationRequest) (*RegistrationInfo, error) {
	user, err := newCeremonyUser(req.Identity)
	if err != nil {
		return nil, err
	}

	parsed, err := protocol.ParseCredentialCreationResponseBytes(req.Payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}

	session := webauthn.SessionData{
		Challenge:      req.Challenge,
		RelyingPartyID: v.rpID,
		UserID:         user.WebAuthnID(),
	}
	cred, err := v.wa.CreateCredential(user, session, parsed)
	if err != nil {
		return nil, fmt.Errorf("verify attestation: %w", err)
	}

	transports := make([]string, 0, len(cred.Transport))
	for _, t := range cred.Transport {
		transports = append(transports, string(t))
	}

	authData := parsed.Response.AttestationObject.AuthData

	return &RegistrationInfo{
		CredentialID: base64.RawURLEncoding.EncodeToString(cred.ID),
		PublicKey:    cred.PublicKey,
		Algorithm:    credentialAlgorithm(cred.PublicKey),
		Transports:   transports,
		Counter:      cred.Authenticator.SignCount,
		UserVerified: authData.Flags.UserVerified(),
		RPIDHash:     authData.RPIDHash,
	}, nil
}

func (v *WebAuthnVerifier) VerifyAuthentication(req AuthenticationRequest) (*AuthenticationInfo, error) {
	user, err := newCeremonyUser(req.Identity)
	if err != nil {
		return nil, err
	}

	parsed, err := protocol.ParseCredentialRequestResponseBytes(req.Payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}

	allowed := make([][]byte, 0, len(user.credentials))
	for _, c := range user.credentials {
		allowed = append(allowed, c.ID)
	}

	session := webauthn.SessionData{
		Challenge:            req.Challenge,
		RelyingPartyID:       v.rpID,
		UserID:               user.WebAuthnID(),
		AllowedCredentialIDs: allowed,
		UserVerification:     protocol.VerificationPreferred,
	}
	cred, err := v.wa.ValidateLogin(user, session, parsed)
	if err != nil {
		return nil, fmt.Errorf("verify assertion: %w", err)
	}

	return &AuthenticationInfo{
		CredentialID: base64.RawURLEncoding.EncodeToString(cred.ID),
		Counter:      cred.Authenticator.SignCount,
		UserVerified: parsed.Response.AuthenticatorData.Flags.UserVerified(),
		CloneWarning: cred.Authenticator.CloneWarning,
	}, nil
}

// credentialAlgorithm maps the COSE public key to its stored algorithm name.
func credentialAlgorithm(publicKey []byte) string {
	key, err := webauthncose.ParsePublicKey(publicKey)
	if err != nil {
		return domain.AlgES256
	}

	var alg int64
	switch k := key.(type) {
	case webauthncose.EC2PublicKeyData:
		alg = k.Algorithm
	case webauthncose.RSAPublicKeyData:
		alg = k.Algorithm
	case webauthncose.OKPPublicKeyData:
		alg = k.Algorithm
	}

	return domain.NormalizeAlgorithm(coseAlgorithmName(alg))
}

func coseAlgorithmName(alg int64) string {
	switch webauthncose.COSEAlgorithmIdentifier(alg) {
	case webauthncose.AlgRS256:
		return domain.AlgRS256
	default:
		return domain.AlgES256
	}
}

// ceremonyUser adapts stored credentials to the webauthn.User contract.
type ceremonyUser struct {
	subject     string
	displayName string
	credentials []webauthn.Credential
}

func newCeremonyUser(identity Identity) (*ceremonyUser, error) {
	credentials := make([]webauthn.Credential, 0, len(identity.Credentials))
	for _, c := range identity.Credentials {
		decoded, err := decodeCredential(c)
		if err != nil {
			return nil, err
		}
		credentials = append(credentials, decoded)
	}

	return &ceremonyUser{
		subject:     identity.Subject,
		displayName: identity.DisplayName,
		credentials: credentials,
	}, nil
}

func decodeCredential(c domain.Credential) (webauthn.Credential, error) {
	id, err := base64.RawURLEncoding.DecodeString(c.ID)
	if err != nil {
		return webauthn.Credential{}, fmt.Errorf("decode credential id %q: %w", c.ID, err)
	}

	transports := make([]protocol.AuthenticatorTransport, 0, len(c.Transports))
	for _, t := range c.Transports {
		transports = append(transports, protocol.AuthenticatorTransport(t))
	}

	return webauthn.Credential{
		ID:        id,
		PublicKey: c.PublicKey,
		Transport: transports,
		Authenticator: webauthn.Authenticator{
			SignCount: c.Counter,
		},
	}, nil
}

func (u *ceremonyUser) WebAuthnID() []byte { return []byte(u.subject) }

func (u *ceremonyUser) WebAuthnName() string { return u.subject }

func (u *ceremonyUser) WebAuthnDisplayName() string {
	if u.displayName != "" {
		return u.displayName
	}
	return u.subject
}

func (u *ceremonyUser) WebAuthnIcon() string { return "" }

func (u *ceremonyUser) WebAuthnCredentials() []webauthn.Credential { return u.credentials }
