package postgres

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/aussiebroadwan/accounts/internal/accounts/domain"
	"github.com/aussiebroadwan/accounts/internal/accounts/store"
	"github.com/aussiebroadwan/accounts/pkg/cryptox"
	"github.com/aussiebroadwan/accounts/pkg/idx"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// newTestStore starts a throwaway Postgres container and returns a migrated
// store connected to it.
func newTestStore(t *testing.T) *Store {
	t.Helper()
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:17-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "accounts",
			"POSTGRES_PASSWORD": "accounts",
			"POSTGRES_DB":       "accounts",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)

	url := fmt.Sprintf("postgres://accounts:accounts@%s:%s/accounts?sslmode=disable", host, port.Port())
	s, err := NewStore(ctx, url)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.ApplyMigrations())
	require.NoError(t, s.ApplyMigrations())
	return s
}

func newAccount(email string, now time.Time) domain.Account {
	return domain.Account{
		ID:           idx.New().String(),
		Email:        email,
		PasswordHash: "hash",
		FirstName:    "Grace",
		LastName:     "Hopper",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func newCode(accountID string, purpose domain.CodePurpose, now time.Time) domain.OneTimeCode {
	return domain.OneTimeCode{
		ID:        idx.New().String(),
		CodeHash:  cryptox.FingerprintToken(cryptox.MustGenerateToken(cryptox.TokenSize256)),
		AccountID: accountID,
		Purpose:   purpose,
		CreatedAt: now,
		ExpiresAt: now.Add(time.Hour),
	}
}

func TestPostgresStore(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)

	a := newAccount("grace@example.com", now)
	require.NoError(t, s.Accounts().CreateAccount(ctx, a))

	t.Run("fetch", func(t *testing.T) {
		got, err := s.Accounts().GetAccountByEmail(ctx, a.Email)
		require.NoError(t, err)
		require.Equal(t, a.ID, got.ID)
		require.Nil(t, got.Country)
		require.True(t, now.Equal(got.CreatedAt))

		_, err = s.Accounts().GetAccountByID(ctx, idx.New().String())
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("duplicate email", func(t *testing.T) {
		err := s.Accounts().CreateAccount(ctx, newAccount(a.Email, now))
		require.ErrorIs(t, err, store.ErrAlreadyExists)
	})

	t.Run("code for unknown account", func(t *testing.T) {
		err := s.Codes().CreateCode(ctx, newCode(idx.New().String(), domain.CodePurposeVerification, now))
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("partial update", func(t *testing.T) {
		country := "US"
		got, err := s.Accounts().UpdateProfile(ctx, a.ID, domain.ProfileUpdate{Country: &country}, now)
		require.NoError(t, err)
		require.Equal(t, "Grace", got.FirstName)
		require.Equal(t, "US", *got.Country)

		_, err = s.Accounts().UpdateProfile(ctx, idx.New().String(), domain.ProfileUpdate{Country: &country}, now)
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("consume once under contention", func(t *testing.T) {
		c := newCode(a.ID, domain.CodePurposePasswordReset, now)
		require.NoError(t, s.Codes().CreateCode(ctx, c))

		var (
			wg        sync.WaitGroup
			mu        sync.Mutex
			successes int
		)
		for range 8 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				err := s.WithTx(ctx, func(tx store.Tx) error {
					accountID, err := tx.Codes().ConsumeCode(ctx, c.CodeHash, domain.CodePurposePasswordReset, now)
					if err != nil {
						return err
					}
					_, err = tx.Accounts().UpdatePasswordHash(ctx, accountID, "rotated", now)
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

	t.Run("housekeeping and cascade", func(t *testing.T) {
		expired := newCode(a.ID, domain.CodePurposeVerification, now.Add(-2*time.Hour))
		require.NoError(t, s.Codes().CreateCode(ctx, expired))
		require.NoError(t, s.Codes().CreateCode(ctx, newCode(a.ID, domain.CodePurposeVerification, now)))

		n, err := s.Codes().DeleteExpiredCodes(ctx, now)
		require.NoError(t, err)
		require.EqualValues(t, 1, n)

		require.NoError(t, s.Accounts().DeleteAccount(ctx, a.ID))
		require.NoError(t, s.Accounts().DeleteAccount(ctx, a.ID))

		pending, err := s.Codes().ListPendingCodes(ctx, now)
		require.NoError(t, err)
		require.Empty(t, pending)
	})
}
