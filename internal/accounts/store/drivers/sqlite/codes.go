package sqlite

import (
	"context"
	"time"

	"github.com/aussiebroadwan/accounts/internal/accounts/domain"
	"github.com/aussiebroadwan/accounts/internal/accounts/store/drivers/sqlite/gen"
)

type codesRepo struct {
	q *gen.Queries
}

func (r *codesRepo) CreateCode(ctx context.Context, c domain.OneTimeCode) error {
	err := r.q.CreateOneTimeCode(ctx, gen.CreateOneTimeCodeParams{
		ID:        c.ID,
		CodeHash:  c.CodeHash,
		AccountID: c.AccountID,
		Purpose:   c.Purpose.String(),
		CreatedAt: utc(c.CreatedAt),
		ExpiresAt: utc(c.ExpiresAt),
	})
	if err != nil {
		return mapConstraint(err)
	}
	return nil
}

func (r *codesRepo) ConsumeCode(
	ctx context.Context,
	hash string,
	purpose domain.CodePurpose,
	now time.Time,
) (string, error) {
	accountID, err := r.q.ConsumeOneTimeCode(ctx, gen.ConsumeOneTimeCodeParams{
		CodeHash:  hash,
		Purpose:   purpose.String(),
		ExpiresAt: utc(now),
	})
	if err != nil {
		return "", mapNotFound(err)
	}
	return accountID, nil
}

func (r *codesRepo) ListPendingCodes(ctx context.Context, now time.Time) ([]domain.OneTimeCode, error) {
	rows, err := r.q.ListPendingOneTimeCodes(ctx, utc(now))
	if err != nil {
		return nil, err
	}
	out := make([]domain.OneTimeCode, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapOneTimeCode(row))
	}
	return out, nil
}

func (r *codesRepo) DeleteCode(ctx context.Context, id string) error {
	return r.q.DeleteOneTimeCode(ctx, id)
}

func (r *codesRepo) DeleteCodesForAccount(
	ctx context.Context,
	accountID string,
	purpose domain.CodePurpose,
) (int64, error) {
	return r.q.DeleteOneTimeCodesForAccount(ctx, gen.DeleteOneTimeCodesForAccountParams{
		AccountID: accountID,
		Purpose:   purpose.String(),
	})
}

func (r *codesRepo) DeleteExpiredCodes(ctx context.Context, now time.Time) (int64, error) {
	return r.q.DeleteExpiredOneTimeCodes(ctx, utc(now))
}
