package cryptox_test

import (
	"encoding/base64"
	"testing"

	"github.com/aussiebroadwan/accounts/pkg/cryptox"
	"github.com/stretchr/testify/require"
)

func TestGenerateToken(t *testing.T) {
	t.Parallel()

	for _, size := range []int{cryptox.TokenSize128, cryptox.TokenSize256, cryptox.TokenSize512} {
		a, err := cryptox.GenerateToken(size)
		require.NoError(t, err)

		raw, err := base64.RawURLEncoding.DecodeString(a)
		require.NoError(t, err)
		require.Len(t, raw, size)

		b, err := cryptox.GenerateToken(size)
		require.NoError(t, err)
		require.NotEqual(t, a, b)
	}
}

func TestGenerateToken_InvalidSize(t *testing.T) {
	t.Parallel()

	for _, size := range []int{0, -1} {
		token, err := cryptox.GenerateToken(size)
		require.Error(t, err)
		require.Empty(t, token)
	}
	require.Panics(t, func() { cryptox.MustGenerateToken(0) })
}

func TestFingerprintToken(t *testing.T) {
	t.Parallel()

	fp := cryptox.FingerprintToken("code-1")
	require.Equal(t, fp, cryptox.FingerprintToken("code-1"))
	require.NotEqual(t, fp, cryptox.FingerprintToken("code-2"))
	require.Len(t, fp, 43)
}
