package postgres

import (
	"context"
	"time"

	"github.com/aussiebroadwan/accounts/internal/accounts/domain"
	"github.com/jackc/pgx/v5"
)

type codesRepo struct {
	db querier
}

func (r *codesRepo) CreateCode(ctx context.Context, c domain.OneTimeCode) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO one_time_codes (id, code_hash, account_id, purpose, created_at, expires_at)
		VALUES (@id, @codeHash, @accountId, @purpose, @createdAt, @expiresAt)`,
		pgx.NamedArgs{
			"id":        c.ID,
			"codeHash":  c.CodeHash,
			"accountId": c.AccountID,
			"purpose":   c.Purpose.String(),
			"createdAt": c.CreatedAt.UTC(),
			"expiresAt": c.ExpiresAt.UTC(),
		},
	)
	return mapError(err)
}

func (r *codesRepo) ConsumeCode(
	ctx context.Context,
	hash string,
	purpose domain.CodePurpose,
	now time.Time,
) (string, error) {
	var accountID string
	err := r.db.QueryRow(ctx,
		`DELETE FROM one_time_codes
		WHERE code_hash = @codeHash AND purpose = @purpose AND expires_at > @now
		RETURNING account_id`,
		pgx.NamedArgs{"codeHash": hash, "purpose": purpose.String(), "now": now.UTC()},
	).Scan(&accountID)
	if err != nil {
		return "", mapError(err)
	}
	return accountID, nil
}

func (r *codesRepo) ListPendingCodes(ctx context.Context, now time.Time) ([]domain.OneTimeCode, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, code_hash, account_id, purpose, created_at, expires_at
		FROM one_time_codes
		WHERE expires_at > @now
		ORDER BY created_at, id`,
		pgx.NamedArgs{"now": now.UTC()},
	)
	if err != nil {
		return nil, err
	}
	list, err := pgx.CollectRows(rows, pgx.RowToStructByName[codeRow])
	if err != nil {
		return nil, err
	}
	out := make([]domain.OneTimeCode, 0, len(list))
	for _, row := range list {
		out = append(out, row.domain())
	}
	return out, nil
}

func (r *codesRepo) DeleteCode(ctx context.Context, id string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM one_time_codes WHERE id = @id`, pgx.NamedArgs{"id": id})
	return err
}

func (r *codesRepo) DeleteCodesForAccount(
	ctx context.Context,
	accountID string,
	purpose domain.CodePurpose,
) (int64, error) {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM one_time_codes WHERE account_id = @accountId AND purpose = @purpose`,
		pgx.NamedArgs{"accountId": accountID, "purpose": purpose.String()},
	)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *codesRepo) DeleteExpiredCodes(ctx context.Context, now time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM one_time_codes WHERE expires_at <= @now`,
		pgx.NamedArgs{"now": now.UTC()},
	)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
