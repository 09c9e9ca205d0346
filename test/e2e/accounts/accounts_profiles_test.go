//go:build e2e

package accounts_test

import (
	"testing"

	"github.com/aussiebroadwan/accounts/pkg/accountsdk"
	"github.com/stretchr/testify/require"
)

// TestProfileLifecycle lists, reads, updates and deletes an account through
// an authenticated session.
func TestProfileLifecycle(t *testing.T) {
	svc := setupAccountsContainer(t)
	ctx := t.Context()

	ada := svc.registerAndVerify(t, "ada@example.com")
	grace := svc.registerAndVerify(t, "grace@example.com")
	session := svc.login(t, "ada@example.com")

	list, err := session.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, ada.ID, list[0].ID)
	require.Equal(t, grace.ID, list[1].ID)
	require.NotNil(t, list[1].PendingCodes)

	got, err := session.GetUser(ctx, grace.ID)
	require.NoError(t, err)
	require.Equal(t, "grace@example.com", got.Email)

	country := "AU"
	updated, err := session.UpdateUser(ctx, grace.ID, accountsdk.UpdateProfileRequest{Country: &country})
	require.NoError(t, err)
	require.NotNil(t, updated.Country)
	require.Equal(t, "AU", *updated.Country)
	require.Equal(t, "Ada", updated.FirstName)

	require.NoError(t, session.DeleteUser(ctx, grace.ID))

	_, err = session.GetUser(ctx, grace.ID)
	requireErrorCode(t, err, accountsdk.ErrorCodeAccountNotFound)

	err = session.DeleteUser(ctx, grace.ID)
	requireErrorCode(t, err, accountsdk.ErrorCodeAccountNotFound)
}

// TestProtectedRoutesRejectBadTokens verifies authentication on /users.
func TestProtectedRoutesRejectBadTokens(t *testing.T) {
	svc := setupAccountsContainer(t)
	ctx := t.Context()

	svc.registerAndVerify(t, "ada@example.com")
	session := svc.login(t, "ada@example.com")

	forged := svc.Client.NewSession(session.Token()+"x", session.ExpiresAt())
	_, err := forged.Me(ctx)
	requireErrorCode(t, err, accountsdk.ErrorCodeInvalidToken)

	_, err = forged.ListUsers(ctx)
	requireErrorCode(t, err, accountsdk.ErrorCodeInvalidToken)
}
