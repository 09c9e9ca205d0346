//go:build e2e

package accounts_test

import (
	"testing"

	"github.com/aussiebroadwan/accounts/pkg/accountsdk"
	"github.com/stretchr/testify/require"
)

// TestRegistrationFlow walks register, login before verification, verify and
// login again.
func TestRegistrationFlow(t *testing.T) {
	svc := setupAccountsContainer(t)
	ctx := t.Context()

	account, err := svc.Client.Register(ctx, accountsdk.RegisterRequest{
		Email:        "Ada@Example.com",
		Password:     testPassword,
		FirstName:    "Ada",
		LastName:     "Lovelace",
		FrontBaseURL: frontBaseURL,
	})
	require.NoError(t, err)
	require.Equal(t, "ada@example.com", account.Email)
	require.False(t, account.IsVerified)

	_, err = svc.Client.Login(ctx, accountsdk.LoginRequest{Email: "ada@example.com", Password: testPassword})
	requireErrorCode(t, err, accountsdk.ErrorCodeEmailNotVerified)

	code := svc.lastCode(t, verifyLinkRE)
	verified, err := svc.Client.VerifyEmail(ctx, code)
	require.NoError(t, err)
	require.Equal(t, account.ID, verified.ID)
	require.True(t, verified.IsVerified)

	// Codes are single use
	_, err = svc.Client.VerifyEmail(ctx, code)
	requireErrorCode(t, err, accountsdk.ErrorCodeInvalidCode)

	resp, err := svc.Client.Login(ctx, accountsdk.LoginRequest{Email: "ada@example.com", Password: testPassword})
	require.NoError(t, err)
	require.Equal(t, account.ID, resp.User.ID)
	require.NotEmpty(t, resp.Token)

	me, err := svc.Client.NewSession(resp.Token, resp.ExpiresAt).Me(ctx)
	require.NoError(t, err)
	require.Equal(t, account.ID, me.ID)
	require.Equal(t, "ada@example.com", me.Email)
}

// TestRegistrationRejections covers duplicate emails and foreign frontends.
func TestRegistrationRejections(t *testing.T) {
	svc := setupAccountsContainer(t)
	ctx := t.Context()

	svc.registerAndVerify(t, "grace@example.com")

	_, err := svc.Client.Register(ctx, accountsdk.RegisterRequest{
		Email:        "GRACE@example.com",
		Password:     "another",
		FrontBaseURL: frontBaseURL,
	})
	requireErrorCode(t, err, accountsdk.ErrorCodeEmailTaken)

	_, err = svc.Client.Register(ctx, accountsdk.RegisterRequest{
		Email:        "mallory@example.com",
		Password:     testPassword,
		FrontBaseURL: "https://evil.example.net",
	})
	requireErrorCode(t, err, accountsdk.ErrorCodeInvalidRequest)

	_, err = svc.Client.Login(ctx, accountsdk.LoginRequest{Email: "grace@example.com", Password: "wrong"})
	requireErrorCode(t, err, accountsdk.ErrorCodeInvalidCredentials)

	_, err = svc.Client.Login(ctx, accountsdk.LoginRequest{Email: "nobody@example.com", Password: "wrong"})
	requireErrorCode(t, err, accountsdk.ErrorCodeInvalidCredentials)
}
