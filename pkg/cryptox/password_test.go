package cryptox

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	// Keep generated test peppers out of the working tree.
	dir, err := os.MkdirTemp("", "cryptox-test")
	if err != nil {
		panic(err)
	}
	SetPepperPath(filepath.Join(dir, "pepper"))

	code := m.Run()
	_ = os.RemoveAll(dir)
	os.Exit(code)
}

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(hash, "$argon2id$v=19$"))

	require.NoError(t, VerifyPassword("correct horse battery staple", hash))
	require.ErrorIs(t, VerifyPassword("wrong password", hash), ErrPasswordMismatch)
}

func TestHashPasswordSaltsEachCall(t *testing.T) {
	a, err := HashPassword("pw123")
	require.NoError(t, err)
	b, err := HashPassword("pw123")
	require.NoError(t, err)

	// Same input must never produce the same digest.
	require.NotEqual(t, a, b)
	require.NoError(t, VerifyPassword("pw123", a))
	require.NoError(t, VerifyPassword("pw123", b))
}

func TestVerifyPasswordMalformedDigest(t *testing.T) {
	cases := []string{
		"",
		"plainhash",
		"$argon2id$v=19$m=19456,t=2,p=1$onlyfourparts",
		"$argon2i$v=19$m=19456,t=2,p=1$c2FsdA$aGFzaA", // wrong variant
		"$argon2id$v=18$m=19456,t=2,p=1$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=19456,t=2,p=1$!!!$aGFzaA", // invalid base64 salt
	}
	for _, digest := range cases {
		require.ErrorIs(t, VerifyPassword("whatever", digest), ErrPasswordMismatch)
	}
}
