package store

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/accounts/internal/accounts/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface implemented by the sqlite and
// postgres drivers. Repositories are reached through methods so a Tx can hand
// out the same repositories bound to its transaction.
type Store interface {
	Accounts() Accounts
	Codes() Codes

	ApplyMigrations() error

	// Tx starts a read/write transaction. The caller must Commit or Rollback.
	Tx(ctx context.Context) (Tx, error)

	// WithTx runs fn in a transaction, committing when fn returns nil and
	// rolling back otherwise. Nested transactions are not supported.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	Close() error
	Ping(ctx context.Context) error
}

// Tx is a Store bound to one transaction.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Accounts interface {
	// CreateAccount inserts a. Returns ErrAlreadyExists when the email is taken.
	CreateAccount(ctx context.Context, a domain.Account) error

	GetAccountByID(ctx context.Context, id string) (domain.Account, error)
	GetAccountByEmail(ctx context.Context, email string) (domain.Account, error)

	// ListAccounts returns every account, oldest first.
	ListAccounts(ctx context.Context) ([]domain.Account, error)

	// UpdateProfile applies the non-nil fields of upd and returns the result.
	// Returns ErrNotFound when no row matched.
	UpdateProfile(ctx context.Context, id string, upd domain.ProfileUpdate, now time.Time) (domain.Account, error)

	// MarkVerified sets is_verified. Returns ErrNotFound when no row matched.
	MarkVerified(ctx context.Context, id string, now time.Time) (domain.Account, error)

	// UpdatePasswordHash replaces the stored hash. Returns ErrNotFound when no
	// row matched.
	UpdatePasswordHash(ctx context.Context, id, hash string, now time.Time) (domain.Account, error)

	// DeleteAccount removes the account and, through the foreign key, its
	// codes. Deleting a missing id is not an error.
	DeleteAccount(ctx context.Context, id string) error
}

type Codes interface {
	// CreateCode stores c. Returns ErrNotFound when the account does not exist.
	CreateCode(ctx context.Context, c domain.OneTimeCode) error

	// ConsumeCode deletes the unexpired code with the given fingerprint and
	// purpose and returns its account id. Returns ErrNotFound when nothing
	// matched, so of two concurrent callers at most one succeeds.
	ConsumeCode(ctx context.Context, hash string, purpose domain.CodePurpose, now time.Time) (string, error)

	// ListPendingCodes returns every unexpired code, oldest first.
	ListPendingCodes(ctx context.Context, now time.Time) ([]domain.OneTimeCode, error)

	// DeleteCode removes a single code by id.
	DeleteCode(ctx context.Context, id string) error

	// DeleteCodesForAccount removes an account's codes of one purpose.
	DeleteCodesForAccount(ctx context.Context, accountID string, purpose domain.CodePurpose) (int64, error)

	// DeleteExpiredCodes is housekeeping.
	DeleteExpiredCodes(ctx context.Context, now time.Time) (int64, error)
}
