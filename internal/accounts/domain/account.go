package domain

import "time"

// Account is a registered user. PasswordHash never leaves the service layer.
type Account struct {
	ID           string
	Email        string // normalised, unique
	PasswordHash string // argon2id PHC string, or bcrypt for imported accounts
	FirstName    string
	LastName     string
	Country      *string
	Image        *string
	IsVerified   bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ProfileUpdate carries the mutable profile fields. Nil fields are left
// untouched.
type ProfileUpdate struct {
	FirstName *string
	LastName  *string
	Country   *string
	Image     *string
}

// IsEmpty reports whether the update would change nothing.
func (u ProfileUpdate) IsEmpty() bool {
	return u.FirstName == nil && u.LastName == nil && u.Country == nil && u.Image == nil
}

// AccountWithCodes pairs an account with its outstanding one-time codes.
type AccountWithCodes struct {
	Account
	PendingCodes []OneTimeCode
}
