/*
Package accountsdk is a Go client for the accounts service HTTP API.

# SDKClient vs Session

Public endpoints (registration, verification, login, password reset and the
health probes) hang off SDKClient. Endpoints behind the bearer token gate hang
off Session, which carries the token returned by a login:

	client := accountsdk.NewSDKClient("https://accounts.example.com")

	account, err := client.Register(ctx, accountsdk.RegisterRequest{
		Email:        "ada@example.com",
		Password:     "correct horse",
		FirstName:    "Ada",
		LastName:     "Lovelace",
		FrontBaseURL: "https://app.example.com",
	})

	// The emailed link ends in the verification code.
	account, err = client.VerifyEmail(ctx, code)

	session, err := client.AuthenticateWithPassword(ctx, "ada@example.com", "correct horse")
	me, err := session.Me(ctx)

Sessions do not refresh. Once the token expires every call fails with an
*APIError whose Code is ErrorCodeInvalidToken and the caller has to log in
again.

# Errors

Non-2xx responses are returned as *APIError. Use errors.As to inspect the
status and error code, or IsErrorCode for the common case:

	if accountsdk.IsErrorCode(err, accountsdk.ErrorCodeEmailNotVerified) {
		// ask the user to click the link first
	}
*/
package accountsdk
