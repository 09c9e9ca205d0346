package service

import (
	"time"

	"github.com/aussiebroadwan/accounts/internal/accounts/domain"
	"github.com/aussiebroadwan/accounts/pkg/jwtx"
)

// TokenService issues the bearer tokens handed out at login.
type TokenService struct {
	KeyManager *jwtx.KeyManager
	Issuer     string
	Audience   []string
	TTL        time.Duration
}

// Issue signs a token for a. Only the id, email and names are embedded; the
// token is not refreshed when the account changes later.
func (s *TokenService) Issue(a domain.Account, now time.Time) (string, jwtx.Claims, error) {
	ttl := s.TTL
	if ttl <= 0 {
		ttl = jwtx.DefaultTokenTTL
	}

	claims := jwtx.NewClaims(
		jwtx.Identity{
			Subject:    a.ID,
			Email:      a.Email,
			GivenName:  a.FirstName,
			FamilyName: a.LastName,
		},
		s.Issuer,
		s.Audience,
		ttl,
		now,
	)

	// Use GetSigner() to spread signing across the key set
	token, err := s.KeyManager.GetSigner().Sign(claims)
	if err != nil {
		return "", jwtx.Claims{}, err
	}
	return token, claims, nil
}

// Identity is what an authenticated request knows about its caller.
type Identity struct {
	ID        string
	Email     string
	FirstName string
	LastName  string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// IdentityFromClaims returns the identity embedded in a verified token. It
// never touches the store.
func IdentityFromClaims(c jwtx.Claims) Identity {
	id := Identity{
		ID:        c.Subject,
		Email:     c.Email,
		FirstName: c.GivenName,
		LastName:  c.FamilyName,
	}
	if c.IssuedAt != nil {
		id.IssuedAt = c.IssuedAt.Time.UTC()
	}
	if c.ExpiresAt != nil {
		id.ExpiresAt = c.ExpiresAt.Time.UTC()
	}
	return id
}
