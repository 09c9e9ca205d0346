package domain

import "time"

// CodePurpose says which state change a one-time code authorises. A code is
// only ever accepted for the purpose it was minted with.
type CodePurpose string

const (
	CodePurposeVerification  CodePurpose = "verification"
	CodePurposePasswordReset CodePurpose = "password_reset"
)

func (p CodePurpose) Valid() bool {
	return p == CodePurposeVerification || p == CodePurposePasswordReset
}

func (p CodePurpose) String() string { return string(p) }

// OneTimeCode is the stored half of a code sent by email. Only the SHA-256
// fingerprint of the raw value is kept.
type OneTimeCode struct {
	ID        string
	CodeHash  string
	AccountID string
	Purpose   CodePurpose
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Expired reports whether the code can no longer be consumed at now.
func (c OneTimeCode) Expired(now time.Time) bool {
	return !now.Before(c.ExpiresAt)
}
