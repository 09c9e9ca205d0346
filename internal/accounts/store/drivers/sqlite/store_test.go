package sqlite

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/aussiebroadwan/accounts/internal/accounts/domain"
	"github.com/aussiebroadwan/accounts/internal/accounts/store"
	"github.com/aussiebroadwan/accounts/pkg/cryptox"
	"github.com/aussiebroadwan/accounts/pkg/idx"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.ApplyMigrations())
	return s
}

func newAccount(email string, now time.Time) domain.Account {
	country := "AU"
	return domain.Account{
		ID:           idx.New().String(),
		Email:        email,
		PasswordHash: "hash",
		FirstName:    "Ada",
		LastName:     "Lovelace",
		Country:      &country,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func newCode(accountID string, purpose domain.CodePurpose, now time.Time, ttl time.Duration) domain.OneTimeCode {
	return domain.OneTimeCode{
		ID:        idx.New().String(),
		CodeHash:  cryptox.FingerprintToken(cryptox.MustGenerateToken(cryptox.TokenSize256)),
		AccountID: accountID,
		Purpose:   purpose,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
}

func TestApplyMigrationsIsIdempotent(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.ApplyMigrations())
	require.NoError(t, s.Ping(context.Background()))
}

func TestAccounts(t *testing.T) {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Millisecond)

	t.Run("create and fetch", func(t *testing.T) {
		s := newTestStore(t)
		a := newAccount("ada@example.com", now)
		require.NoError(t, s.Accounts().CreateAccount(ctx, a))

		got, err := s.Accounts().GetAccountByID(ctx, a.ID)
		require.NoError(t, err)
		require.Equal(t, a.Email, got.Email)
		require.Equal(t, "AU", *got.Country)
		require.Nil(t, got.Image)
		require.False(t, got.IsVerified)
		require.True(t, a.CreatedAt.Equal(got.CreatedAt))

		byEmail, err := s.Accounts().GetAccountByEmail(ctx, a.Email)
		require.NoError(t, err)
		require.Equal(t, a.ID, byEmail.ID)
	})

	t.Run("duplicate email", func(t *testing.T) {
		s := newTestStore(t)
		require.NoError(t, s.Accounts().CreateAccount(ctx, newAccount("dup@example.com", now)))
		err := s.Accounts().CreateAccount(ctx, newAccount("dup@example.com", now))
		require.ErrorIs(t, err, store.ErrAlreadyExists)
	})

	t.Run("missing account", func(t *testing.T) {
		s := newTestStore(t)
		_, err := s.Accounts().GetAccountByID(ctx, idx.New().String())
		require.ErrorIs(t, err, store.ErrNotFound)
		_, err = s.Accounts().GetAccountByEmail(ctx, "nobody@example.com")
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("list is ordered by creation", func(t *testing.T) {
		s := newTestStore(t)
		second := newAccount("second@example.com", now.Add(time.Second))
		first := newAccount("first@example.com", now)
		require.NoError(t, s.Accounts().CreateAccount(ctx, second))
		require.NoError(t, s.Accounts().CreateAccount(ctx, first))

		list, err := s.Accounts().ListAccounts(ctx)
		require.NoError(t, err)
		require.Len(t, list, 2)
		require.Equal(t, first.ID, list[0].ID)
		require.Equal(t, second.ID, list[1].ID)
	})

	t.Run("partial profile update", func(t *testing.T) {
		s := newTestStore(t)
		a := newAccount("update@example.com", now)
		require.NoError(t, s.Accounts().CreateAccount(ctx, a))

		first := "Augusta"
		image := "https://img.example.com/ada.png"
		later := now.Add(time.Minute)
		got, err := s.Accounts().UpdateProfile(ctx, a.ID, domain.ProfileUpdate{FirstName: &first, Image: &image}, later)
		require.NoError(t, err)
		require.Equal(t, "Augusta", got.FirstName)
		require.Equal(t, "Lovelace", got.LastName)
		require.Equal(t, "AU", *got.Country)
		require.Equal(t, image, *got.Image)
		require.True(t, later.Equal(got.UpdatedAt))
	})

	t.Run("update missing account", func(t *testing.T) {
		s := newTestStore(t)
		first := "x"
		_, err := s.Accounts().UpdateProfile(ctx, idx.New().String(), domain.ProfileUpdate{FirstName: &first}, now)
		require.ErrorIs(t, err, store.ErrNotFound)
		_, err = s.Accounts().MarkVerified(ctx, idx.New().String(), now)
		require.ErrorIs(t, err, store.ErrNotFound)
		_, err = s.Accounts().UpdatePasswordHash(ctx, idx.New().String(), "h", now)
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("verify and rehash", func(t *testing.T) {
		s := newTestStore(t)
		a := newAccount("verify@example.com", now)
		require.NoError(t, s.Accounts().CreateAccount(ctx, a))

		got, err := s.Accounts().MarkVerified(ctx, a.ID, now)
		require.NoError(t, err)
		require.True(t, got.IsVerified)

		got, err = s.Accounts().UpdatePasswordHash(ctx, a.ID, "new-hash", now)
		require.NoError(t, err)
		require.Equal(t, "new-hash", got.PasswordHash)
		require.True(t, got.IsVerified)
	})

	t.Run("delete is idempotent and cascades", func(t *testing.T) {
		s := newTestStore(t)
		a := newAccount("delete@example.com", now)
		require.NoError(t, s.Accounts().CreateAccount(ctx, a))
		require.NoError(t, s.Codes().CreateCode(ctx, newCode(a.ID, domain.CodePurposeVerification, now, time.Hour)))

		require.NoError(t, s.Accounts().DeleteAccount(ctx, a.ID))
		require.NoError(t, s.Accounts().DeleteAccount(ctx, a.ID))

		_, err := s.Accounts().GetAccountByID(ctx, a.ID)
		require.ErrorIs(t, err, store.ErrNotFound)

		pending, err := s.Codes().ListPendingCodes(ctx, now)
		require.NoError(t, err)
		require.Empty(t, pending)
	})
}

func TestCodes(t *testing.T) {
	ctx := context.Background()
	now := time.Now().UTC()

	t.Run("code for unknown account", func(t *testing.T) {
		s := newTestStore(t)
		err := s.Codes().CreateCode(ctx, newCode(idx.New().String(), domain.CodePurposeVerification, now, time.Hour))
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("consume is single use", func(t *testing.T) {
		s := newTestStore(t)
		a := newAccount("single@example.com", now)
		require.NoError(t, s.Accounts().CreateAccount(ctx, a))
		c := newCode(a.ID, domain.CodePurposeVerification, now, time.Hour)
		require.NoError(t, s.Codes().CreateCode(ctx, c))

		accountID, err := s.Codes().ConsumeCode(ctx, c.CodeHash, domain.CodePurposeVerification, now)
		require.NoError(t, err)
		require.Equal(t, a.ID, accountID)

		_, err = s.Codes().ConsumeCode(ctx, c.CodeHash, domain.CodePurposeVerification, now)
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("consume respects purpose", func(t *testing.T) {
		s := newTestStore(t)
		a := newAccount("purpose@example.com", now)
		require.NoError(t, s.Accounts().CreateAccount(ctx, a))
		c := newCode(a.ID, domain.CodePurposePasswordReset, now, time.Hour)
		require.NoError(t, s.Codes().CreateCode(ctx, c))

		_, err := s.Codes().ConsumeCode(ctx, c.CodeHash, domain.CodePurposeVerification, now)
		require.ErrorIs(t, err, store.ErrNotFound)

		_, err = s.Codes().ConsumeCode(ctx, c.CodeHash, domain.CodePurposePasswordReset, now)
		require.NoError(t, err)
	})

	t.Run("expired codes cannot be consumed", func(t *testing.T) {
		s := newTestStore(t)
		a := newAccount("expired@example.com", now)
		require.NoError(t, s.Accounts().CreateAccount(ctx, a))
		c := newCode(a.ID, domain.CodePurposeVerification, now.Add(-2*time.Hour), time.Hour)
		require.NoError(t, s.Codes().CreateCode(ctx, c))

		_, err := s.Codes().ConsumeCode(ctx, c.CodeHash, domain.CodePurposeVerification, now)
		require.ErrorIs(t, err, store.ErrNotFound)

		n, err := s.Codes().DeleteExpiredCodes(ctx, now)
		require.NoError(t, err)
		require.EqualValues(t, 1, n)
	})

	t.Run("pending codes and per-account delete", func(t *testing.T) {
		s := newTestStore(t)
		a := newAccount("pending@example.com", now)
		require.NoError(t, s.Accounts().CreateAccount(ctx, a))
		require.NoError(t, s.Codes().CreateCode(ctx, newCode(a.ID, domain.CodePurposeVerification, now, time.Hour)))
		require.NoError(t, s.Codes().CreateCode(ctx, newCode(a.ID, domain.CodePurposeVerification, now.Add(time.Second), time.Hour)))
		reset := newCode(a.ID, domain.CodePurposePasswordReset, now, time.Hour)
		require.NoError(t, s.Codes().CreateCode(ctx, reset))
		require.NoError(t, s.Codes().CreateCode(ctx, newCode(a.ID, domain.CodePurposePasswordReset, now.Add(-2*time.Hour), time.Hour)))

		pending, err := s.Codes().ListPendingCodes(ctx, now)
		require.NoError(t, err)
		require.Len(t, pending, 3)
		for _, c := range pending {
			require.False(t, c.Expired(now))
			require.Equal(t, a.ID, c.AccountID)
		}

		n, err := s.Codes().DeleteCodesForAccount(ctx, a.ID, domain.CodePurposeVerification)
		require.NoError(t, err)
		require.EqualValues(t, 2, n)

		require.NoError(t, s.Codes().DeleteCode(ctx, reset.ID))
		pending, err = s.Codes().ListPendingCodes(ctx, now)
		require.NoError(t, err)
		require.Empty(t, pending)
	})

	t.Run("concurrent consumers", func(t *testing.T) {
		s := newTestStore(t)
		a := newAccount("race@example.com", now)
		require.NoError(t, s.Accounts().CreateAccount(ctx, a))
		c := newCode(a.ID, domain.CodePurposeVerification, now, time.Hour)
		require.NoError(t, s.Codes().CreateCode(ctx, c))

		const workers = 8
		var (
			wg        sync.WaitGroup
			mu        sync.Mutex
			successes int
		)
		for range workers {
			wg.Add(1)
			go func() {
				defer wg.Done()
				err := s.WithTx(ctx, func(tx store.Tx) error {
					_, err := tx.Codes().ConsumeCode(ctx, c.CodeHash, domain.CodePurposeVerification, now)
					return err
				})
				if err == nil {
					mu.Lock()
					successes++
					mu.Unlock()
				}
			}()
		}
		wg.Wait()
		require.Equal(t, 1, successes)
	})
}

func TestWithTx(t *testing.T) {
	ctx := context.Background()
	now := time.Now().UTC()

	t.Run("rollback on error", func(t *testing.T) {
		s := newTestStore(t)
		a := newAccount("rollback@example.com", now)

		err := s.WithTx(ctx, func(tx store.Tx) error {
			require.NoError(t, tx.Accounts().CreateAccount(ctx, a))
			return tx.Codes().CreateCode(ctx, newCode(idx.New().String(), domain.CodePurposeVerification, now, time.Hour))
		})
		require.ErrorIs(t, err, store.ErrNotFound)

		_, err = s.Accounts().GetAccountByID(ctx, a.ID)
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("commit on success", func(t *testing.T) {
		s := newTestStore(t)
		a := newAccount("commit@example.com", now)

		err := s.WithTx(ctx, func(tx store.Tx) error {
			if err := tx.Accounts().CreateAccount(ctx, a); err != nil {
				return err
			}
			return tx.Codes().CreateCode(ctx, newCode(a.ID, domain.CodePurposeVerification, now, time.Hour))
		})
		require.NoError(t, err)

		_, err = s.Accounts().GetAccountByID(ctx, a.ID)
		require.NoError(t, err)
	})

	t.Run("nested tx unsupported", func(t *testing.T) {
		s := newTestStore(t)
		err := s.WithTx(ctx, func(tx store.Tx) error {
			_, err := tx.Tx(ctx)
			return err
		})
		require.Error(t, err)
	})
}
