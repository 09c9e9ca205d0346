package accountsdk

import (
	"context"
	"net/http"
	"strings"
	"time"
)

// SDKClient is a client for the accounts service. It covers the public
// endpoints and creates authenticated Sessions.
type SDKClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewSDKClient creates a client with a 10 second request timeout.
func NewSDKClient(baseURL string) *SDKClient {
	return &SDKClient{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// AuthenticateWithPassword logs in and wraps the issued token in a Session.
func (c *SDKClient) AuthenticateWithPassword(ctx context.Context, email, password string) (*Session, error) {
	resp, err := c.Login(ctx, LoginRequest{Email: email, Password: password})
	if err != nil {
		return nil, err
	}
	return c.NewSession(resp.Token, resp.ExpiresAt), nil
}

// NewSession wraps a token obtained elsewhere. A zero expiresAt means unknown.
func (c *SDKClient) NewSession(token string, expiresAt time.Time) *Session {
	return &Session{
		client:    c,
		token:     token,
		expiresAt: expiresAt,
	}
}

// Session is an authenticated view of the API.
type Session struct {
	client    *SDKClient
	token     string
	expiresAt time.Time
}

// Token returns the bearer token of the session.
func (s *Session) Token() string { return s.token }

// ExpiresAt returns when the token stops being accepted.
func (s *Session) ExpiresAt() time.Time { return s.expiresAt }
