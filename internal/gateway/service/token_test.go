package service

import (
	"testing"
	"time"

	"github.com/vibespace/vibespace/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func newTestTokenService(t *testing.T) *TokenService {
	t.Helper()

	codec, err := jwtx.NewCodec([]byte("test-secret-test-secret-test-secret"))
	require.NoError(t, err)
	return &TokenService{Codec: codec}
}

func TestAccessTokenRoundTrip(t *testing.T) {
	t.Parallel()
	svc := newTestTokenService(t)

	token, err := svc.IssueAccess("owner", "passkey")
	require.NoError(t, err)

	claims, err := svc.VerifyAccess(token)
	require.NoError(t, err)
	require.Equal(t, jwtx.TypeAccess, claims.Type)
	require.Equal(t, "owner", claims.Subject)
	require.Equal(t, "passkey", claims.AMR)
	require.Equal(t, int64(DefaultAccessTTL/time.Second), claims.ExpiresAt-claims.IssuedAt)
}

func TestVerifyAccessRejectsStateTokens(t *testing.T) {
	t.Parallel()
	svc := newTestTokenService(t)

	state, err := svc.IssueState(jwtx.TypePasskeyLogin, jwtx.Claims{Challenge: "c"}, time.Minute)
	require.NoError(t, err)

	_, err = svc.VerifyAccess(state)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyAccessRejectsBlankSubject(t *testing.T) {
	t.Parallel()
	svc := newTestTokenService(t)

	token, err := svc.IssueAccess("   ", "passkey")
	require.NoError(t, err)

	_, err = svc.VerifyAccess(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyAccessRejectsExpired(t *testing.T) {
	t.Parallel()
	svc := newTestTokenService(t)
	svc.Clock = func() time.Time { return time.Now().Add(-2 * DefaultAccessTTL) }

	token, err := svc.IssueAccess("owner", "passkey")
	require.NoError(t, err)

	_, err = svc.VerifyAccess(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestIssueStateAppliesLifetimeFloor(t *testing.T) {
	t.Parallel()
	svc := newTestTokenService(t)

	for _, tc := range []struct {
		name string
		ttl  time.Duration
		want time.Duration
	}{
		{name: "below floor", ttl: time.Second, want: 10 * time.Second},
		{name: "zero means default", ttl: 0, want: DefaultStateTTL},
		{name: "above floor kept", ttl: time.Minute, want: time.Minute},
	} {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			state, err := svc.IssueState(jwtx.TypePasskeyLogin, jwtx.Claims{Challenge: "c"}, tc.ttl)
			require.NoError(t, err)

			claims, err := svc.VerifyState(state, jwtx.TypePasskeyLogin)
			require.NoError(t, err)
			require.Equal(t, int64(tc.want/time.Second), claims.ExpiresAt-claims.IssuedAt)
		})
	}
}

func TestVerifyStateChecksType(t *testing.T) {
	t.Parallel()
	svc := newTestTokenService(t)

	state, err := svc.IssueState(jwtx.TypePasskeyRegister, jwtx.Claims{Challenge: "c"}, time.Minute)
	require.NoError(t, err)

	_, err = svc.VerifyState(state, jwtx.TypePasskeyLogin)
	require.ErrorIs(t, err, ErrInvalidState)

	claims, err := svc.VerifyState(state, jwtx.TypePasskeyRegister)
	require.NoError(t, err)
	require.Equal(t, "c", claims.Challenge)
}

func TestVerifyStateRequiresChallenge(t *testing.T) {
	t.Parallel()
	svc := newTestTokenService(t)

	state, err := svc.IssueState(jwtx.TypePasskeyLogin, jwtx.Claims{}, time.Minute)
	require.NoError(t, err)

	_, err = svc.VerifyState(state, jwtx.TypePasskeyLogin)
	require.ErrorIs(t, err, ErrInvalidState)
}
