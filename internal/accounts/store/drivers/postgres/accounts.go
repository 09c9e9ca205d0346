package postgres

import (
	"context"
	"time"

	"github.com/aussiebroadwan/accounts/internal/accounts/domain"
	"github.com/jackc/pgx/v5"
)

const accountColumns = `id, email, password_hash, first_name, last_name, country, image, is_verified, created_at, updated_at`

type accountsRepo struct {
	db querier
}

func (r *accountsRepo) one(ctx context.Context, sql string, args pgx.NamedArgs) (domain.Account, error) {
	rows, err := r.db.Query(ctx, sql, args)
	if err != nil {
		return domain.Account{}, mapError(err)
	}
	row, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[accountRow])
	if err != nil {
		return domain.Account{}, mapError(err)
	}
	return row.domain(), nil
}

func (r *accountsRepo) CreateAccount(ctx context.Context, a domain.Account) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO accounts (`+accountColumns+`)
		VALUES (@id, @email, @passwordHash, @firstName, @lastName, @country, @image, @isVerified, @createdAt, @updatedAt)`,
		pgx.NamedArgs{
			"id":           a.ID,
			"email":        a.Email,
			"passwordHash": a.PasswordHash,
			"firstName":    a.FirstName,
			"lastName":     a.LastName,
			"country":      a.Country,
			"image":        a.Image,
			"isVerified":   a.IsVerified,
			"createdAt":    a.CreatedAt.UTC(),
			"updatedAt":    a.UpdatedAt.UTC(),
		},
	)
	return mapError(err)
}

func (r *accountsRepo) GetAccountByID(ctx context.Context, id string) (domain.Account, error) {
	return r.one(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE id = @id`,
		pgx.NamedArgs{"id": id},
	)
}

func (r *accountsRepo) GetAccountByEmail(ctx context.Context, email string) (domain.Account, error) {
	return r.one(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE email = @email`,
		pgx.NamedArgs{"email": email},
	)
}

func (r *accountsRepo) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	rows, err := r.db.Query(ctx, `SELECT `+accountColumns+` FROM accounts ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	list, err := pgx.CollectRows(rows, pgx.RowToStructByName[accountRow])
	if err != nil {
		return nil, err
	}
	out := make([]domain.Account, 0, len(list))
	for _, row := range list {
		out = append(out, row.domain())
	}
	return out, nil
}

func (r *accountsRepo) UpdateProfile(
	ctx context.Context,
	id string,
	upd domain.ProfileUpdate,
	now time.Time,
) (domain.Account, error) {
	return r.one(ctx,
		`UPDATE accounts SET
			first_name = COALESCE(@firstName, first_name),
			last_name = COALESCE(@lastName, last_name),
			country = COALESCE(@country, country),
			image = COALESCE(@image, image),
			updated_at = @updatedAt
		WHERE id = @id
		RETURNING `+accountColumns,
		pgx.NamedArgs{
			"id":        id,
			"firstName": upd.FirstName,
			"lastName":  upd.LastName,
			"country":   upd.Country,
			"image":     upd.Image,
			"updatedAt": now.UTC(),
		},
	)
}

func (r *accountsRepo) MarkVerified(ctx context.Context, id string, now time.Time) (domain.Account, error) {
	return r.one(ctx,
		`UPDATE accounts SET is_verified = TRUE, updated_at = @updatedAt
		WHERE id = @id
		RETURNING `+accountColumns,
		pgx.NamedArgs{"id": id, "updatedAt": now.UTC()},
	)
}

func (r *accountsRepo) UpdatePasswordHash(
	ctx context.Context,
	id string,
	hash string,
	now time.Time,
) (domain.Account, error) {
	return r.one(ctx,
		`UPDATE accounts SET password_hash = @passwordHash, updated_at = @updatedAt
		WHERE id = @id
		RETURNING `+accountColumns,
		pgx.NamedArgs{"id": id, "passwordHash": hash, "updatedAt": now.UTC()},
	)
}

func (r *accountsRepo) DeleteAccount(ctx context.Context, id string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM accounts WHERE id = @id`, pgx.NamedArgs{"id": id})
	return err
}
