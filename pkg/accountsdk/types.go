package accountsdk

import (
	"time"

	"github.com/aussiebroadwan/accounts/pkg/jwtx"
)

// ============================================================================
// Accounts
// ============================================================================

// Account is the public view of an account. The password hash is never
// part of it.
type Account struct {
	ID         string    `json:"id" example:"01HQ7T3Z1MZ0JQ3M6MZQ1FQ3ZV"`
	Email      string    `json:"email" example:"ada@example.com"`
	FirstName  string    `json:"firstName" example:"Ada"`
	LastName   string    `json:"lastName" example:"Lovelace"`
	Country    *string   `json:"country" example:"GB"`
	Image      *string   `json:"image" example:"https://example.com/ada.png"`
	IsVerified bool      `json:"isVerified" example:"false"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// PendingCode describes an outstanding one-time code without revealing it.
type PendingCode struct {
	Purpose   string    `json:"purpose" example:"verification"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// AccountWithCodes is one entry of GET /users.
type AccountWithCodes struct {
	Account
	PendingCodes []PendingCode `json:"pendingCodes"`
}

// RegisterRequest is the body of POST /users.
type RegisterRequest struct {
	Email     string  `json:"email" example:"ada@example.com"`
	Password  string  `json:"password" example:"correct horse battery staple"`
	FirstName string  `json:"firstName" example:"Ada"`
	LastName  string  `json:"lastName" example:"Lovelace"`
	Country   *string `json:"country,omitempty" example:"GB"`
	Image     *string `json:"image,omitempty"`

	// FrontBaseURL is where the emailed verification link points.
	FrontBaseURL string `json:"frontBaseUrl" example:"https://app.example.com"`
}

// LoginRequest is the body of POST /users/login.
type LoginRequest struct {
	Email    string `json:"email" example:"ada@example.com"`
	Password string `json:"password" example:"correct horse battery staple"`
}

// LoginResponse carries the bearer token for the other endpoints.
type LoginResponse struct {
	User      Account   `json:"user"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// ResetRequest is the body of POST /users/reset_password.
type ResetRequest struct {
	Email        string `json:"email" example:"ada@example.com"`
	FrontBaseURL string `json:"frontBaseUrl" example:"https://app.example.com"`
}

// ResetPasswordRequest is the body of POST /users/reset_password/{code}.
type ResetPasswordRequest struct {
	Password string `json:"password" example:"new password"`
}

// UpdateProfileRequest is the body of PUT /users/{id}. Omitted fields keep
// their current value.
type UpdateProfileRequest struct {
	FirstName *string `json:"firstName,omitempty" example:"Ada"`
	LastName  *string `json:"lastName,omitempty" example:"King"`
	Country   *string `json:"country,omitempty" example:"GB"`
	Image     *string `json:"image,omitempty"`
}

// Identity is the caller as described by its token.
type Identity struct {
	ID        string    `json:"id" example:"01HQ7T3Z1MZ0JQ3M6MZQ1FQ3ZV"`
	Email     string    `json:"email" example:"ada@example.com"`
	FirstName string    `json:"firstName" example:"Ada"`
	LastName  string    `json:"lastName" example:"Lovelace"`
	IssuedAt  time.Time `json:"issuedAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// ============================================================================
// System
// ============================================================================

// HealthResponse is returned by /livez and /readyz. Only /readyz fills Checks.
type HealthResponse struct {
	Status  string        `json:"status" example:"ok"`
	Uptime  string        `json:"uptime,omitempty" example:"1h23m45s"`
	Version string        `json:"version,omitempty" example:"0.1.0"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks is the status of each dependency checked by /readyz.
type HealthChecks struct {
	Database string `json:"database" example:"ok"`
	Signer   string `json:"signer" example:"ok"`
}

// JWKSResponse is the key set served from /.well-known/jwks.json.
type JWKSResponse jwtx.JWKS

// ErrorResponse is the body of every error response.
type ErrorResponse struct {
	Error   string `json:"error" example:"invalid_credentials"`
	Message string `json:"message" example:"Invalid credentials"`
}
