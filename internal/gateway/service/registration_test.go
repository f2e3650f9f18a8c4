package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/vibespace/vibespace/internal/gateway/store"
	"github.com/vibespace/vibespace/internal/gateway/store/drivers/sqlite"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) store.Store {
	t.Helper()

	dsn := "file:" + filepath.Join(t.TempDir(), "gateway.db") + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	s, err := sqlite.NewStore(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.ApplyMigrations())
	return s
}

func TestMintAndValidate(t *testing.T) {
	t.Parallel()
	svc := &RegistrationService{Store: newTestStore(t)}
	ctx := context.Background()

	reg, err := svc.Mint(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, reg.Token)
	require.WithinDuration(t, time.Now().Add(DefaultRegistrationTokenTTL), reg.ExpiresAt, time.Minute)

	require.NoError(t, svc.Validate(ctx, reg.Token))
}

func TestValidateRejections(t *testing.T) {
	t.Parallel()
	svc := &RegistrationService{Store: newTestStore(t)}
	ctx := context.Background()

	require.ErrorIs(t, svc.Validate(ctx, ""), ErrRegistrationTokenRequired)
	require.ErrorIs(t, svc.Validate(ctx, "nope"), ErrRegistrationTokenNotFound)
}

func TestValidateRejectsConsumedToken(t *testing.T) {
	t.Parallel()
	svc := &RegistrationService{Store: newTestStore(t)}
	ctx := context.Background()

	reg, err := svc.Mint(ctx)
	require.NoError(t, err)

	require.NoError(t, svc.Consume(ctx, reg.Token))
	require.ErrorIs(t, svc.Validate(ctx, reg.Token), ErrRegistrationTokenNotFound)
}

func TestConsumeIsSingleUse(t *testing.T) {
	t.Parallel()
	svc := &RegistrationService{Store: newTestStore(t)}
	ctx := context.Background()

	reg, err := svc.Mint(ctx)
	require.NoError(t, err)

	require.NoError(t, svc.Consume(ctx, reg.Token))
	require.ErrorIs(t, svc.Consume(ctx, reg.Token), ErrRegistrationTokenConflict)
}

func TestConsumeExpiredToken(t *testing.T) {
	t.Parallel()
	st := newTestStore(t)
	svc := &RegistrationService{Store: st}
	ctx := context.Background()

	past := time.Now().Add(-48 * time.Hour)
	svc.Clock = func() time.Time { return past }
	reg, err := svc.Mint(ctx)
	require.NoError(t, err)

	svc.Clock = nil
	require.ErrorIs(t, svc.Consume(ctx, reg.Token), ErrRegistrationTokenConflict)
}

func TestPurgeExpired(t *testing.T) {
	t.Parallel()
	svc := &RegistrationService{Store: newTestStore(t)}
	ctx := context.Background()

	past := time.Now().Add(-48 * time.Hour)
	svc.Clock = func() time.Time { return past }
	_, err := svc.Mint(ctx)
	require.NoError(t, err)

	svc.Clock = nil
	removed, err := svc.PurgeExpired(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(1), removed)
}
