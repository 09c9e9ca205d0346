package accountsdk

import (
	"context"
	"net/http"
	"net/url"
)

// ============================================================================
// Public user operations
// ============================================================================

// Register creates an unverified account and triggers the verification email.
func (c *SDKClient) Register(ctx context.Context, req RegisterRequest) (*Account, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/users", req, nil)
	if err != nil {
		return nil, err
	}

	var account Account
	if err := decodeJSON(resp, &account, http.StatusCreated); err != nil {
		return nil, err
	}
	return &account, nil
}

// VerifyEmail consumes the code from a verification link.
func (c *SDKClient) VerifyEmail(ctx context.Context, code string) (*Account, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/users/verify/"+url.PathEscape(code), nil, nil)
	if err != nil {
		return nil, err
	}

	var account Account
	if err := decodeJSON(resp, &account, http.StatusOK); err != nil {
		return nil, err
	}
	return &account, nil
}

// Login exchanges credentials for a bearer token.
func (c *SDKClient) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/users/login", req, nil)
	if err != nil {
		return nil, err
	}

	var login LoginResponse
	if err := decodeJSON(resp, &login, http.StatusCreated); err != nil {
		return nil, err
	}
	return &login, nil
}

// RequestPasswordReset emails a reset link to the account owner.
func (c *SDKClient) RequestPasswordReset(ctx context.Context, req ResetRequest) (*Account, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/users/reset_password", req, nil)
	if err != nil {
		return nil, err
	}

	var account Account
	if err := decodeJSON(resp, &account, http.StatusCreated); err != nil {
		return nil, err
	}
	return &account, nil
}

// ResetPassword consumes the code from a reset link and sets a new password.
func (c *SDKClient) ResetPassword(ctx context.Context, code, password string) (*Account, error) {
	resp, err := c.doRequest(ctx, http.MethodPost,
		"/users/reset_password/"+url.PathEscape(code),
		ResetPasswordRequest{Password: password},
		nil,
	)
	if err != nil {
		return nil, err
	}

	var account Account
	if err := decodeJSON(resp, &account, http.StatusCreated); err != nil {
		return nil, err
	}
	return &account, nil
}

// ============================================================================
// Authenticated user operations
// ============================================================================

// Me returns the identity embedded in the session's token.
func (s *Session) Me(ctx context.Context) (*Identity, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/users/me", nil)
	if err != nil {
		return nil, err
	}

	var id Identity
	if err := decodeJSON(resp, &id, http.StatusOK); err != nil {
		return nil, err
	}
	return &id, nil
}

// ListUsers returns every account with its outstanding codes.
func (s *Session) ListUsers(ctx context.Context) ([]AccountWithCodes, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/users", nil)
	if err != nil {
		return nil, err
	}

	var accounts []AccountWithCodes
	if err := decodeJSON(resp, &accounts, http.StatusOK); err != nil {
		return nil, err
	}
	return accounts, nil
}

// GetUser fetches one account.
func (s *Session) GetUser(ctx context.Context, id string) (*Account, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/users/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, err
	}

	var account Account
	if err := decodeJSON(resp, &account, http.StatusOK); err != nil {
		return nil, err
	}
	return &account, nil
}

// UpdateUser changes the profile fields set in req.
func (s *Session) UpdateUser(ctx context.Context, id string, req UpdateProfileRequest) (*Account, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodPut, "/users/"+url.PathEscape(id), req)
	if err != nil {
		return nil, err
	}

	var account Account
	if err := decodeJSON(resp, &account, http.StatusOK); err != nil {
		return nil, err
	}
	return &account, nil
}

// DeleteUser removes an account. Deleting a missing account succeeds.
func (s *Session) DeleteUser(ctx context.Context, id string) error {
	resp, err := s.doAuthRequest(ctx, http.MethodDelete, "/users/"+url.PathEscape(id), nil)
	if err != nil {
		return err
	}
	return checkStatusNoContent(resp)
}
