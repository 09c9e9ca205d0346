package sqlite

import (
	"context"
	"time"

	"github.com/aussiebroadwan/accounts/internal/accounts/domain"
	"github.com/aussiebroadwan/accounts/internal/accounts/store/drivers/sqlite/gen"
)

type accountsRepo struct {
	q *gen.Queries
}

func (r *accountsRepo) CreateAccount(ctx context.Context, a domain.Account) error {
	err := r.q.CreateAccount(ctx, gen.CreateAccountParams{
		ID:           a.ID,
		Email:        a.Email,
		PasswordHash: a.PasswordHash,
		FirstName:    a.FirstName,
		LastName:     a.LastName,
		Country:      mapOptionalString(a.Country),
		Image:        mapOptionalString(a.Image),
		IsVerified:   a.IsVerified,
		CreatedAt:    utc(a.CreatedAt),
		UpdatedAt:    utc(a.UpdatedAt),
	})
	if err != nil {
		return mapConstraint(err)
	}
	return nil
}

func (r *accountsRepo) GetAccountByID(ctx context.Context, id string) (domain.Account, error) {
	row, err := r.q.GetAccountByID(ctx, id)
	if err != nil {
		return domain.Account{}, mapNotFound(err)
	}
	return mapAccount(row), nil
}

func (r *accountsRepo) GetAccountByEmail(ctx context.Context, email string) (domain.Account, error) {
	row, err := r.q.GetAccountByEmail(ctx, email)
	if err != nil {
		return domain.Account{}, mapNotFound(err)
	}
	return mapAccount(row), nil
}

func (r *accountsRepo) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	rows, err := r.q.ListAccounts(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Account, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapAccount(row))
	}
	return out, nil
}

func (r *accountsRepo) UpdateProfile(
	ctx context.Context,
	id string,
	upd domain.ProfileUpdate,
	now time.Time,
) (domain.Account, error) {
	row, err := r.q.UpdateAccountProfile(ctx, gen.UpdateAccountProfileParams{
		FirstName: mapOptionalString(upd.FirstName),
		LastName:  mapOptionalString(upd.LastName),
		Country:   mapOptionalString(upd.Country),
		Image:     mapOptionalString(upd.Image),
		UpdatedAt: utc(now),
		ID:        id,
	})
	if err != nil {
		return domain.Account{}, mapNotFound(err)
	}
	return mapAccount(row), nil
}

func (r *accountsRepo) MarkVerified(ctx context.Context, id string, now time.Time) (domain.Account, error) {
	row, err := r.q.MarkAccountVerified(ctx, gen.MarkAccountVerifiedParams{
		UpdatedAt: utc(now),
		ID:        id,
	})
	if err != nil {
		return domain.Account{}, mapNotFound(err)
	}
	return mapAccount(row), nil
}

func (r *accountsRepo) UpdatePasswordHash(
	ctx context.Context,
	id string,
	hash string,
	now time.Time,
) (domain.Account, error) {
	row, err := r.q.UpdateAccountPasswordHash(ctx, gen.UpdateAccountPasswordHashParams{
		PasswordHash: hash,
		UpdatedAt:    utc(now),
		ID:           id,
	})
	if err != nil {
		return domain.Account{}, mapNotFound(err)
	}
	return mapAccount(row), nil
}

func (r *accountsRepo) DeleteAccount(ctx context.Context, id string) error {
	return r.q.DeleteAccount(ctx, id)
}
