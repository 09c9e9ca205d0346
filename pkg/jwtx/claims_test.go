package jwtx_test

import (
	"testing"
	"time"

	"github.com/aussiebroadwan/accounts/pkg/jwtx"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func TestNewClaims(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	c := jwtx.NewClaims(testIdentity(), "iss", []string{"aud"}, time.Hour, now)

	require.Equal(t, "iss", c.Issuer)
	require.Equal(t, now, c.IssuedAt.Time)
	require.Equal(t, now, c.NotBefore.Time)
	require.Equal(t, now.Add(time.Hour), c.ExpiresAt.Time)
	require.NotEqual(t, c.ID, jwtx.NewClaims(testIdentity(), "iss", nil, time.Hour, now).ID)
}

func TestValidateIssuer(t *testing.T) {
	t.Parallel()

	c := &jwtx.Claims{RegisteredClaims: jwt.RegisteredClaims{Issuer: "accounts"}}
	require.NoError(t, c.ValidateIssuer("accounts"))
	require.NoError(t, c.ValidateIssuer(""))
	require.ErrorIs(t, c.ValidateIssuer("billing"), jwtx.ErrIssuer)
}

func TestValidateAudience(t *testing.T) {
	t.Parallel()

	c := &jwtx.Claims{RegisteredClaims: jwt.RegisteredClaims{Audience: []string{"web", "mobile"}}}
	require.NoError(t, c.ValidateAudience(nil))
	require.NoError(t, c.ValidateAudience([]string{"cli", "mobile"}))
	require.ErrorIs(t, c.ValidateAudience([]string{"admin"}), jwtx.ErrAudience)
}

func TestValidateTime(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC()
	c := &jwtx.Claims{RegisteredClaims: jwt.RegisteredClaims{
		NotBefore: jwt.NewNumericDate(now.Add(-time.Minute)),
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Minute)),
	}}

	require.NoError(t, c.ValidateTime(now, 0))
	require.ErrorIs(t, c.ValidateTime(now.Add(2*time.Minute), 0), jwtx.ErrExpired)
	require.NoError(t, c.ValidateTime(now.Add(2*time.Minute), 5*time.Minute))
	require.ErrorIs(t, c.ValidateTime(now.Add(-2*time.Minute), 0), jwtx.ErrNotYetValid)
}
