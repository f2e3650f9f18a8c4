package service

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/vibespace/vibespace/internal/gateway/ceremony"
	"github.com/vibespace/vibespace/internal/gateway/domain"
	"github.com/vibespace/vibespace/internal/gateway/store"
	"github.com/vibespace/vibespace/pkg/jwtx"
	"github.com/vibespace/vibespace/pkg/slogx"
)

var (
	ErrNoCredentials            = errors.New("no passkeys enrolled")
	ErrNotEnrolled              = errors.New("credential not enrolled")
	ErrInvalidCredentialPayload = errors.New("invalid credential payload")
	ErrVerificationFailed       = errors.New("passkey verification failed")
	ErrRPMismatch               = errors.New("rp id mismatch")
)

// PasskeyService runs the login and registration ceremonies. Each ceremony is
// two round trips: an options call that binds a challenge into a signed state
// token, and a verify call that redeems the state against the authenticator's
// response. The service itself keeps no per-ceremony memory.
type PasskeyService struct {
	Store        store.Store
	Verifier     ceremony.Verifier
	Tokens       *TokenService
	Registration *RegistrationService

	OwnerSub string
	RPID     string
	Origin   string
	StateTTL time.Duration

	// Clock overrides time.Now in tests.
	Clock func() time.Time
}

func (s *PasskeyService) now() time.Time {
	if s.Clock != nil {
		return s.Clock()
	}
	return time.Now()
}

// CeremonyOptions pairs browser-facing options with the state token that must
// accompany the matching verify call.
type CeremonyOptions struct {
	State     string
	PublicKey json.RawMessage
}

// LoginResult is the outcome of a successful login ceremony.
type LoginResult struct {
	Token        string
	ExpiresIn    int64
	Sub          string
	UserVerified bool
}

// RegisterResult is the outcome of a registration verify call. AlreadyExists
// reports an idempotent replay of a known credential; TokenConsumed is true
// whenever the ceremony retired the enrollment token.
type RegisterResult struct {
	CredentialID  string
	AlreadyExists bool
	TokenConsumed bool
}

// LoginOptions starts a login ceremony.
func (s *PasskeyService) LoginOptions(ctx context.Context) (*CeremonyOptions, error) {
	log := slogx.FromContext(ctx)

	// 1. Login is only offered once at least one passkey exists.
	credentials, err := s.Store.Credentials().List(ctx)
	if err != nil {
		log.Error("failed to list credentials", slog.Any("error", err))
		return nil, err
	}
	if len(credentials) == 0 {
		return nil, ErrNoCredentials
	}

	// 2. Generate assertion options for the enrolled credentials.
	opts, err := s.Verifier.AuthenticationOptions(s.identity(credentials))
	if err != nil {
		log.Error("failed to build login options", slog.Any("error", err))
		return nil, err
	}

	// 3. Bind the challenge into a short-lived state token.
	state, err := s.Tokens.IssueState(jwtx.TypePasskeyLogin, jwtx.Claims{
		Challenge: opts.Challenge,
		RPID:      s.RPID,
		Origin:    s.Origin,
	}, s.StateTTL)
	if err != nil {
		log.Error("failed to issue login state", slog.Any("error", err))
		return nil, err
	}

	return &CeremonyOptions{State: state, PublicKey: opts.PublicKey}, nil
}

// LoginVerify completes a login ceremony and mints an access token.
func (s *PasskeyService) LoginVerify(ctx context.Context, state string, payload []byte) (*LoginResult, error) {
	log := slogx.FromContext(ctx)

	// 1. Redeem the state token; its challenge binds this verify call to the
	// options that started the ceremony.
	claims, err := s.Tokens.VerifyState(state, jwtx.TypePasskeyLogin)
	if err != nil {
		return nil, err
	}
	if claims.RPID != s.RPID || claims.Origin != s.Origin {
		return nil, ErrInvalidState
	}

	// 2. The asserted credential id must be enrolled. Checked before any
	// cryptography so an unknown id fails as not-enrolled, not as a bad
	// signature.
	assertedID, err := ceremony.AssertedCredentialID(payload)
	if err != nil {
		return nil, ErrInvalidCredentialPayload
	}
	if _, err := s.Store.Credentials().GetByID(ctx, assertedID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotEnrolled
		}
		log.Error("failed to load credential",
			slog.String("credential_id", assertedID),
			slog.Any("error", err),
		)
		return nil, err
	}

	credentials, err := s.Store.Credentials().List(ctx)
	if err != nil {
		log.Error("failed to list credentials", slog.Any("error", err))
		return nil, err
	}

	// 3. Cryptographic verification of the assertion.
	info, err := s.Verifier.VerifyAuthentication(ceremony.AuthenticationRequest{
		Identity:  s.identity(credentials),
		Challenge: claims.Challenge,
		Payload:   payload,
	})
	if err != nil {
		if errors.Is(err, ceremony.ErrMalformedPayload) {
			return nil, ErrInvalidCredentialPayload
		}
		log.Warn("passkey assertion rejected", slog.Any("error", err))
		return nil, ErrVerificationFailed
	}

	// 4. Record usage. The counter is stored last-write-wins; a counter that
	// went backwards is a possible cloned authenticator, which we log but do
	// not block on since many platform authenticators always report zero.
	if info.CloneWarning {
		log.Warn("sign counter regressed, possible cloned authenticator",
			slog.String("credential_id", info.CredentialID),
			slog.Uint64("counter", uint64(info.Counter)),
		)
	}
	if err := s.Store.Credentials().UpdateUsage(ctx, info.CredentialID, info.Counter, s.now()); err != nil {
		log.Error("failed to record credential usage",
			slog.String("credential_id", info.CredentialID),
			slog.Any("error", err),
		)
		return nil, err
	}

	// 5. Mint the access token.
	token, err := s.Tokens.IssueAccess(s.OwnerSub, "passkey")
	if err != nil {
		log.Error("failed to issue access token", slog.Any("error", err))
		return nil, err
	}

	log.Info("passkey login succeeded",
		slog.String("credential_id", info.CredentialID),
		slog.Bool("user_verified", info.UserVerified),
	)

	return &LoginResult{
		Token:        token,
		ExpiresIn:    int64(s.Tokens.accessTTL() / time.Second),
		Sub:          s.OwnerSub,
		UserVerified: info.UserVerified,
	}, nil
}

// RegisterOptions starts a registration ceremony gated by a one-time token.
// The token is checked but not consumed here; consumption happens at verify.
func (s *PasskeyService) RegisterOptions(ctx context.Context, regToken, label string) (*CeremonyOptions, error) {
	log := slogx.FromContext(ctx)

	// 1. The enrollment token must exist and still be redeemable.
	if err := s.Registration.Validate(ctx, regToken); err != nil {
		return nil, err
	}

	// 2. Existing credentials become exclusions in the creation options.
	credentials, err := s.Store.Credentials().List(ctx)
	if err != nil {
		log.Error("failed to list credentials", slog.Any("error", err))
		return nil, err
	}

	opts, err := s.Verifier.RegistrationOptions(s.identity(credentials))
	if err != nil {
		log.Error("failed to build registration options", slog.Any("error", err))
		return nil, err
	}

	// 3. Bind challenge, label, and the enrollment token into the state.
	state, err := s.Tokens.IssueState(jwtx.TypePasskeyRegister, jwtx.Claims{
		Challenge:         opts.Challenge,
		RPID:              s.RPID,
		Origin:            s.Origin,
		Label:             label,
		RegistrationToken: regToken,
	}, s.StateTTL)
	if err != nil {
		log.Error("failed to issue registration state", slog.Any("error", err))
		return nil, err
	}

	return &CeremonyOptions{State: state, PublicKey: opts.PublicKey}, nil
}

// RegisterVerify completes a registration ceremony. The enrollment token is
// consumed whenever verification succeeds, including the idempotent replay of
// a credential that is already stored.
func (s *PasskeyService) RegisterVerify(ctx context.Context, state string, payload []byte) (*RegisterResult, error) {
	log := slogx.FromContext(ctx)

	// 1. Redeem the state token.
	claims, err := s.Tokens.VerifyState(state, jwtx.TypePasskeyRegister)
	if err != nil {
		return nil, err
	}
	if claims.RPID != s.RPID || claims.Origin != s.Origin || claims.RegistrationToken == "" {
		return nil, ErrInvalidState
	}

	// 2. Cryptographic verification of the attestation.
	credentials, err := s.Store.Credentials().List(ctx)
	if err != nil {
		log.Error("failed to list credentials", slog.Any("error", err))
		return nil, err
	}

	info, err := s.Verifier.VerifyRegistration(ceremony.RegistrationRequest{
		Identity:  s.identity(credentials),
		Challenge: claims.Challenge,
		Payload:   payload,
	})
	if err != nil {
		if errors.Is(err, ceremony.ErrMalformedPayload) {
			return nil, ErrInvalidCredentialPayload
		}
		log.Warn("passkey attestation rejected", slog.Any("error", err))
		return nil, ErrVerificationFailed
	}

	// 3. Re-check the RP id hash from the raw authenticator data against the
	// configured relying party.
	expected := sha256.Sum256([]byte(s.RPID))
	if subtle.ConstantTimeCompare(expected[:], info.RPIDHash) != 1 {
		log.Warn("attestation bound to a different rp id",
			slog.String("credential_id", info.CredentialID),
		)
		return nil, ErrRPMismatch
	}

	// 4. Consume the enrollment token and store the credential atomically.
	// The token is retired even when the credential already exists; only a
	// consume failure aborts the ceremony.
	result := &RegisterResult{CredentialID: info.CredentialID}
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		_, err := tx.Credentials().GetByID(ctx, info.CredentialID)
		switch {
		case err == nil:
			result.AlreadyExists = true
		case !errors.Is(err, store.ErrNotFound):
			return err
		}

		ok, err := tx.RegistrationTokens().Consume(ctx, claims.RegistrationToken, s.now())
		if err != nil {
			return err
		}
		if !ok {
			return ErrRegistrationTokenConflict
		}
		result.TokenConsumed = true

		if result.AlreadyExists {
			return nil
		}

		return tx.Credentials().Insert(ctx, domain.Credential{
			ID:         info.CredentialID,
			PublicKey:  info.PublicKey,
			Algorithm:  info.Algorithm,
			Counter:    info.Counter,
			Label:      claims.Label,
			Transports: info.Transports,
			CreatedAt:  s.now(),
		})
	})
	if err != nil {
		if !errors.Is(err, ErrRegistrationTokenConflict) {
			log.Error("failed to store credential", slog.Any("error", err))
		}
		return nil, err
	}

	log.Info("passkey registered",
		slog.String("credential_id", info.CredentialID),
		slog.Bool("already_exists", result.AlreadyExists),
	)

	return result, nil
}

func (s *PasskeyService) identity(credentials []domain.Credential) ceremony.Identity {
	return ceremony.Identity{
		Subject:     s.OwnerSub,
		DisplayName: s.OwnerSub,
		Credentials: credentials,
	}
}
