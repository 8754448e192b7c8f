package cryptox

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFingerprintTokenDeterministic(t *testing.T) {
	t.Parallel()

	a := FingerprintToken("some-refresh-token")
	b := FingerprintToken("some-refresh-token")
	require.Equal(t, a, b)
	require.Len(t, a, 43) // base64url-encoded SHA-256, no padding
}

func TestFingerprintTokenDistinctInputs(t *testing.T) {
	t.Parallel()

	require.NotEqual(t, FingerprintToken("token-a"), FingerprintToken("token-b"))
}
