package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/accounts/internal/accounts/domain"
	"github.com/aussiebroadwan/accounts/internal/accounts/store"
	"github.com/aussiebroadwan/accounts/pkg/slogx"
)

// ProfileService is plain CRUD over account records.
type ProfileService struct {
	Store store.Store
	Now   func() time.Time
}

func (s *ProfileService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// ListAccounts returns every account, oldest first, with its unexpired codes.
func (s *ProfileService) ListAccounts(ctx context.Context) ([]domain.AccountWithCodes, error) {
	var (
		accounts []domain.Account
		codes    []domain.OneTimeCode
	)

	// Read both tables from one snapshot
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		var err error
		if accounts, err = tx.Accounts().ListAccounts(ctx); err != nil {
			return err
		}
		codes, err = tx.Codes().ListPendingCodes(ctx, s.now())
		return err
	})
	if err != nil {
		slogx.FromContext(ctx).Error("failed to list accounts", slog.Any("error", err))
		return nil, err
	}

	byAccount := make(map[string][]domain.OneTimeCode, len(accounts))
	for _, c := range codes {
		byAccount[c.AccountID] = append(byAccount[c.AccountID], c)
	}

	out := make([]domain.AccountWithCodes, 0, len(accounts))
	for _, a := range accounts {
		pending := byAccount[a.ID]
		if pending == nil {
			pending = []domain.OneTimeCode{}
		}
		out = append(out, domain.AccountWithCodes{Account: a, PendingCodes: pending})
	}
	return out, nil
}

// GetAccount fetches an account by id.
func (s *ProfileService) GetAccount(ctx context.Context, id string) (domain.Account, error) {
	a, err := s.Store.Accounts().GetAccountByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Account{}, ErrAccountNotFound
		}
		return domain.Account{}, err
	}
	return a, nil
}

// UpdateProfile applies the fields set in upd. An empty update returns the
// account unchanged.
func (s *ProfileService) UpdateProfile(ctx context.Context, id string, upd domain.ProfileUpdate) (domain.Account, error) {
	if upd.IsEmpty() {
		return s.GetAccount(ctx, id)
	}

	a, err := s.Store.Accounts().UpdateProfile(ctx, id, upd, s.now())
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Account{}, ErrAccountNotFound
		}
		slogx.FromContext(ctx).Error("failed to update profile",
			slog.String("account_id", id),
			slog.Any("error", err),
		)
		return domain.Account{}, err
	}
	return a, nil
}

// DeleteAccount removes the account and its codes. Missing ids succeed.
func (s *ProfileService) DeleteAccount(ctx context.Context, id string) error {
	if err := s.Store.Accounts().DeleteAccount(ctx, id); err != nil {
		slogx.FromContext(ctx).Error("failed to delete account",
			slog.String("account_id", id),
			slog.Any("error", err),
		)
		return err
	}
	slogx.FromContext(ctx).Info("account deleted", slog.String("account_id", id))
	return nil
}
