package jwtx

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func testCodec(t *testing.T) *Codec {
	t.Helper()
	codec, err := NewCodec([]byte("test-secret-0123456789abcdef"))
	require.NoError(t, err)
	return codec
}

func TestNewCodec(t *testing.T) {
	t.Parallel()

	_, err := NewCodec(nil)
	require.ErrorIs(t, err, ErrEmptySecret)
}

func TestCodecRoundTrip(t *testing.T) {
	t.Parallel()
	codec := testCodec(t)

	now := time.Now().Unix()
	in := Claims{
		Type:      TypeAccess,
		Subject:   "owner",
		AMR:       "passkey",
		IssuedAt:  now,
		ExpiresAt: now + 60,
	}

	token, err := codec.Sign(in)
	require.NoError(t, err)
	require.Len(t, strings.Split(token, "."), 3)

	out, ok := codec.Verify(token)
	require.True(t, ok)
	require.Equal(t, in, out)
}

func TestCodecRejectsTampering(t *testing.T) {
	t.Parallel()
	codec := testCodec(t)

	now := time.Now().Unix()
	token, err := codec.Sign(Claims{Type: TypeAccess, Subject: "owner", IssuedAt: now, ExpiresAt: now + 60})
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)

	flip := func(s string) string {
		c := byte('A')
		if s[0] == 'A' {
			c = 'B'
		}
		return string(c) + s[1:]
	}

	t.Run("payload segment", func(t *testing.T) {
		_, ok := codec.Verify(parts[0] + "." + flip(parts[1]) + "." + parts[2])
		require.False(t, ok)
	})

	t.Run("signature segment", func(t *testing.T) {
		_, ok := codec.Verify(parts[0] + "." + parts[1] + "." + flip(parts[2]))
		require.False(t, ok)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other, err := NewCodec([]byte("a-different-secret"))
		require.NoError(t, err)
		_, ok := other.Verify(token)
		require.False(t, ok)
	})
}

func TestCodecRejectsMalformed(t *testing.T) {
	t.Parallel()
	codec := testCodec(t)

	for _, token := range []string{"", "garbage", "a.b", "a.b.c.d", "!!!.???.###"} {
		_, ok := codec.Verify(token)
		require.False(t, ok, "token %q should be invalid", token)
	}
}

func TestCodecExpiry(t *testing.T) {
	t.Parallel()
	codec := testCodec(t)

	t.Run("expired token is invalid", func(t *testing.T) {
		now := time.Now().Unix()
		token, err := codec.Sign(Claims{Type: TypeAccess, Subject: "owner", IssuedAt: now - 120, ExpiresAt: now - 60})
		require.NoError(t, err)

		_, ok := codec.Verify(token)
		require.False(t, ok)
	})

	t.Run("token without expiry is invalid", func(t *testing.T) {
		token, err := codec.Sign(Claims{Type: TypeAccess, Subject: "owner"})
		require.NoError(t, err)

		_, ok := codec.Verify(token)
		require.False(t, ok)
	})
}
