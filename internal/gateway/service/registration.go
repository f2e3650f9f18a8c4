package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/vibespace/vibespace/internal/gateway/domain"
	"github.com/vibespace/vibespace/internal/gateway/store"
	"github.com/vibespace/vibespace/pkg/cryptox"
	"github.com/vibespace/vibespace/pkg/slogx"
)

var (
	ErrRegistrationTokenRequired = errors.New("registration token required")
	ErrRegistrationTokenNotFound = errors.New("registration token not found or expired")
	ErrRegistrationTokenConflict = errors.New("registration token already used")
)

// DefaultRegistrationTokenTTL is how long a freshly minted enrollment token
// stays redeemable.
const DefaultRegistrationTokenTTL = 24 * time.Hour

// RegistrationService manages one-time enrollment tokens. Tokens gate who may
// add a passkey: minting one is an authenticated operation, redeeming it
// happens exactly once inside a registration ceremony.
type RegistrationService struct {
	Store    store.Store
	TokenTTL time.Duration

	// Clock overrides time.Now in tests.
	Clock func() time.Time
}

func (s *RegistrationService) now() time.Time {
	if s.Clock != nil {
		return s.Clock()
	}
	return time.Now()
}

func (s *RegistrationService) tokenTTL() time.Duration {
	if s.TokenTTL > 0 {
		return s.TokenTTL
	}
	return DefaultRegistrationTokenTTL
}

// Mint creates a new single-use registration token.
func (s *RegistrationService) Mint(ctx context.Context) (domain.RegistrationToken, error) {
	log := slogx.FromContext(ctx)

	token, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		log.Error("failed to generate registration token", slog.Any("error", err))
		return domain.RegistrationToken{}, err
	}

	reg := domain.RegistrationToken{
		Token:     token,
		ExpiresAt: s.now().Add(s.tokenTTL()),
	}
	if err := s.Store.RegistrationTokens().Create(ctx, reg); err != nil {
		log.Error("failed to store registration token", slog.Any("error", err))
		return domain.RegistrationToken{}, err
	}

	log.Info("registration token minted", slog.Time("expires_at", reg.ExpiresAt))
	return reg, nil
}

// Validate checks that a token exists and is still redeemable. It does not
// consume the token; redemption happens in Consume.
func (s *RegistrationService) Validate(ctx context.Context, token string) error {
	if token == "" {
		return ErrRegistrationTokenRequired
	}

	reg, err := s.Store.RegistrationTokens().Get(ctx, token)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrRegistrationTokenNotFound
		}
		return err
	}
	if !reg.Valid(s.now()) {
		return ErrRegistrationTokenNotFound
	}

	return nil
}

// Consume redeems a token exactly once. The write is conditional on the token
// being unused and unexpired, so two concurrent redeemers cannot both win.
func (s *RegistrationService) Consume(ctx context.Context, token string) error {
	ok, err := s.Store.RegistrationTokens().Consume(ctx, token, s.now())
	if err != nil {
		return err
	}
	if !ok {
		return ErrRegistrationTokenConflict
	}
	return nil
}

// PurgeExpired removes tokens past their expiry. Used tokens within their
// expiry window are kept for the consume conflict signal.
func (s *RegistrationService) PurgeExpired(ctx context.Context) (int64, error) {
	return s.Store.RegistrationTokens().DeleteExpired(ctx, s.now())
}
