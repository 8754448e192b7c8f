package jwtx

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var (
	secretA = []byte("0123456789abcdef0123456789abcdef")
	secretB = []byte("fedcba9876543210fedcba9876543210")
)

func TestNewHS256RejectsShortSecret(t *testing.T) {
	t.Parallel()

	_, err := NewHS256([]byte("short"), "signet")
	require.Error(t, err)
}

func TestSignVerifyRoundTrip(t *testing.T) {
	t.Parallel()

	h, err := NewHS256(secretA, "signet")
	require.NoError(t, err)

	now := time.Now()
	in := NewClaims("01JC5R0000USER", "u@example.com", true, time.Minute, "signet", now)

	raw, err := h.Sign(in)
	require.NoError(t, err)
	require.Equal(t, 3, len(strings.Split(raw, ".")))

	out, err := h.Verify(raw)
	require.NoError(t, err)
	require.Equal(t, "01JC5R0000USER", out.Subject)
	require.Equal(t, "u@example.com", out.Email)
	require.True(t, out.Activated)
	require.Equal(t, "signet", out.Issuer)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	t.Parallel()

	signer, err := NewHS256(secretA, "signet")
	require.NoError(t, err)
	other, err := NewHS256(secretB, "signet")
	require.NoError(t, err)

	raw, err := signer.Sign(NewClaims("id", "u@example.com", false, time.Minute, "signet", time.Now()))
	require.NoError(t, err)

	_, err = other.Verify(raw)
	require.ErrorIs(t, err, ErrInvalidSig)
}

func TestVerifyRejectsExpired(t *testing.T) {
	t.Parallel()

	h, err := NewHS256(secretA, "signet")
	require.NoError(t, err)

	past := time.Now().Add(-2 * time.Hour)
	raw, err := h.Sign(NewClaims("id", "u@example.com", false, time.Minute, "signet", past))
	require.NoError(t, err)

	_, err = h.Verify(raw)
	require.ErrorIs(t, err, ErrExpired)
}

func TestVerifyRejectsMalformed(t *testing.T) {
	t.Parallel()

	h, err := NewHS256(secretA, "signet")
	require.NoError(t, err)

	for _, raw := range []string{"", "garbage", "a.b", "a.b.c.d"} {
		_, err := h.Verify(raw)
		require.ErrorIs(t, err, ErrMalformed)
	}
}

func TestVerifyRejectsWrongIssuer(t *testing.T) {
	t.Parallel()

	signer, err := NewHS256(secretA, "other-service")
	require.NoError(t, err)
	verifier, err := NewHS256(secretA, "signet")
	require.NoError(t, err)

	raw, err := signer.Sign(NewClaims("id", "u@example.com", false, time.Minute, "other-service", time.Now()))
	require.NoError(t, err)

	_, err = verifier.Verify(raw)
	require.ErrorIs(t, err, ErrIssuer)
}

func TestNewJTIUnique(t *testing.T) {
	t.Parallel()

	seen := map[string]struct{}{}
	for range 100 {
		jti := NewJTI()
		_, dup := seen[jti]
		require.False(t, dup)
		seen[jti] = struct{}{}
	}
}
