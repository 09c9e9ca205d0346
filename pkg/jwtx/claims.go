package jwtx

import (
	"crypto/rand"
	"encoding/base64"
	"slices"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTokenTTL is how long an account token stays valid when the service
// does not configure anything else.
const DefaultTokenTTL = 24 * time.Hour

// Claims carried by account tokens. The profile fields reflect the account at
// issuance time and are not refreshed afterwards.
type Claims struct {
	jwt.RegisteredClaims

	Email      string `json:"email,omitempty"`
	GivenName  string `json:"given_name,omitempty"`
	FamilyName string `json:"family_name,omitempty"`
}

// Identity is the subset of an account copied into a token.
type Identity struct {
	Subject    string
	Email      string
	GivenName  string
	FamilyName string
}

// NewClaims stamps id into a claim set valid from now for ttl.
func NewClaims(id Identity, issuer string, audience []string, ttl time.Duration, now time.Time) Claims {
	now = now.UTC()
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   id.Subject,
			Audience:  jwt.ClaimStrings(audience),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        NewJTI(),
		},
		Email:      id.Email,
		GivenName:  id.GivenName,
		FamilyName: id.FamilyName,
	}
}

// NewJTI returns a random URL-safe token identifier.
func NewJTI() string {
	var b [16]byte
	_, _ = rand.Read(b[:])
	return base64.RawURLEncoding.EncodeToString(b[:])
}

// ValidateIssuer is a no-op when expected is empty.
func (c *Claims) ValidateIssuer(expected string) error {
	if expected != "" && c.Issuer != expected {
		return ErrIssuer
	}
	return nil
}

// ValidateAudience passes when any expected value is present, or when nothing
// is expected.
func (c *Claims) ValidateAudience(expected []string) error {
	if len(expected) == 0 {
		return nil
	}
	for _, want := range expected {
		if slices.Contains(c.Audience, want) {
			return nil
		}
	}
	return ErrAudience
}

// ValidateTime checks exp and nbf against now, allowing leeway for clock skew.
func (c *Claims) ValidateTime(now time.Time, leeway time.Duration) error {
	if c.ExpiresAt != nil && now.After(c.ExpiresAt.Add(leeway)) {
		return ErrExpired
	}
	if c.NotBefore != nil && now.Before(c.NotBefore.Add(-leeway)) {
		return ErrNotYetValid
	}
	return nil
}

// ValidateExpiry is ValidateTime at the current time without leeway.
func (c *Claims) ValidateExpiry() error {
	return c.ValidateTime(time.Now().UTC(), 0)
}
