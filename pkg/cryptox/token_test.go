package cryptox

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateSecret(t *testing.T) {
	s, err := GenerateSecret(SecretSize)
	require.NoError(t, err)

	raw, err := base64.RawURLEncoding.DecodeString(s)
	require.NoError(t, err)
	require.Len(t, raw, SecretSize)

	s2, err := GenerateSecret(SecretSize)
	require.NoError(t, err)
	require.NotEqual(t, s, s2, "secrets should be unique")
}

func TestGenerateSecret_InvalidSize(t *testing.T) {
	for _, size := range []int{0, -1} {
		s, err := GenerateSecret(size)
		require.Error(t, err)
		require.Empty(t, s)
	}
}

func TestFingerprintToken(t *testing.T) {
	token1 := "test-token-1"
	token2 := "test-token-2"

	fp1a := FingerprintToken(token1)
	fp1b := FingerprintToken(token1)
	fp2 := FingerprintToken(token2)

	// Fingerprint should be deterministic
	require.Equal(t, fp1a, fp1b, "fingerprint should be deterministic")

	// Different tokens should have different fingerprints
	require.NotEqual(t, fp1a, fp2, "different tokens should have different fingerprints")

	// Fingerprint should be base64url encoded SHA-256 (43 chars)
	require.Len(t, fp1a, 43, "SHA-256 base64url should be 43 chars")
}
