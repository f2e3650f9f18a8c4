package sqlite

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/vibespace/vibespace/internal/gateway/domain"
	"github.com/vibespace/vibespace/internal/gateway/store"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	dsn := "file:" + filepath.Join(t.TempDir(), "gateway.db") + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	s, err := NewStore(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.ApplyMigrations())
	return s
}

func TestCredentialsRoundTrip(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	ctx := context.Background()

	cred := domain.Credential{
		ID:         "cred-1",
		PublicKey:  []byte{0x01, 0x02, 0x03},
		Algorithm:  "ES256",
		Counter:    7,
		Label:      "laptop",
		Transports: []string{"internal", "hybrid"},
		CreatedAt:  time.Now().UTC().Truncate(time.Second),
	}
	require.NoError(t, s.Credentials().Insert(ctx, cred))

	got, err := s.Credentials().GetByID(ctx, "cred-1")
	require.NoError(t, err)
	require.Equal(t, cred.ID, got.ID)
	require.Equal(t, cred.PublicKey, got.PublicKey)
	require.Equal(t, cred.Counter, got.Counter)
	require.Equal(t, cred.Transports, got.Transports)
	require.Nil(t, got.LastUsedAt)

	list, err := s.Credentials().List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
}

func TestCredentialsInsertDuplicate(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	ctx := context.Background()

	cred := domain.Credential{ID: "dup", PublicKey: []byte{0xAA}, CreatedAt: time.Now().UTC()}
	require.NoError(t, s.Credentials().Insert(ctx, cred))

	err := s.Credentials().Insert(ctx, cred)
	require.ErrorIs(t, err, store.ErrAlreadyExists)
}

func TestCredentialsUpdateUsage(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Credentials().Insert(ctx, domain.Credential{
		ID: "c", PublicKey: []byte{0x01}, CreatedAt: time.Now().UTC(),
	}))

	used := time.Now().UTC().Truncate(time.Second)
	require.NoError(t, s.Credentials().UpdateUsage(ctx, "c", 42, used))

	got, err := s.Credentials().GetByID(ctx, "c")
	require.NoError(t, err)
	require.Equal(t, uint32(42), got.Counter)
	require.NotNil(t, got.LastUsedAt)
}

func TestCredentialsUnknownAlgorithmNormalizes(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Credentials().Insert(ctx, domain.Credential{
		ID: "weird", PublicKey: []byte{0x01}, Algorithm: "EdDSA", CreatedAt: time.Now().UTC(),
	}))

	got, err := s.Credentials().GetByID(ctx, "weird")
	require.NoError(t, err)
	require.Equal(t, domain.AlgES256, got.Algorithm)
}

func TestCredentialsDelete(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Credentials().Insert(ctx, domain.Credential{
		ID: "gone", PublicKey: []byte{0x01}, Algorithm: domain.AlgES256, CreatedAt: time.Now().UTC(),
	}))

	n, err := s.Credentials().Delete(ctx, "gone")
	require.NoError(t, err)
	require.EqualValues(t, 1, n)

	_, err = s.Credentials().GetByID(ctx, "gone")
	require.ErrorIs(t, err, store.ErrNotFound)

	n, err = s.Credentials().Delete(ctx, "gone")
	require.NoError(t, err)
	require.Zero(t, n)
}

func TestRegistrationTokenConsumeOnce(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	ctx := context.Background()
	now := time.Now().UTC()

	require.NoError(t, s.RegistrationTokens().Create(ctx, domain.RegistrationToken{
		Token:     "one-shot",
		ExpiresAt: now.Add(time.Hour),
	}))

	ok, err := s.RegistrationTokens().Consume(ctx, "one-shot", now)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = s.RegistrationTokens().Consume(ctx, "one-shot", now)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestRegistrationTokenConsumeConcurrent(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	ctx := context.Background()
	now := time.Now().UTC()

	require.NoError(t, s.RegistrationTokens().Create(ctx, domain.RegistrationToken{
		Token:     "contested",
		ExpiresAt: now.Add(time.Hour),
	}))

	const attempts = 16
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
	)
	for range attempts {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := s.RegistrationTokens().Consume(ctx, "contested", now)
			require.NoError(t, err)
			if ok {
				mu.Lock()
				successes++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	require.Equal(t, 1, successes, "exactly one concurrent consume must win")
}

func TestRegistrationTokenExpiry(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	ctx := context.Background()
	now := time.Now().UTC()

	require.NoError(t, s.RegistrationTokens().Create(ctx, domain.RegistrationToken{
		Token:     "stale",
		ExpiresAt: now.Add(-time.Minute),
	}))

	ok, err := s.RegistrationTokens().Consume(ctx, "stale", now)
	require.NoError(t, err)
	require.False(t, ok, "expired token must not be consumable")

	removed, err := s.RegistrationTokens().DeleteExpired(ctx, now)
	require.NoError(t, err)
	require.Equal(t, int64(1), removed)

	_, err = s.RegistrationTokens().Get(ctx, "stale")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestWithTxRollsBackOnError(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	ctx := context.Background()

	sentinel := store.ErrAlreadyExists
	err := s.WithTx(ctx, func(tx store.Tx) error {
		require.NoError(t, tx.Credentials().Insert(ctx, domain.Credential{
			ID: "rollback-me", PublicKey: []byte{0x01}, CreatedAt: time.Now().UTC(),
		}))
		return sentinel
	})
	require.ErrorIs(t, err, sentinel)

	_, err = s.Credentials().GetByID(ctx, "rollback-me")
	require.ErrorIs(t, err, store.ErrNotFound)
}
