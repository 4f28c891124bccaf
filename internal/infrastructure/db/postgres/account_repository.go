package postgres

import (
	"context"
	"database/sql"
	"errors"

	trmsql "github.com/avito-tech/go-transaction-manager/drivers/sql/v2"
	"github.com/stayhub/wallet-service/internal/application/errs"
	"github.com/stayhub/wallet-service/internal/domain/entities"
	"github.com/stayhub/wallet-service/internal/domain/entities/user"
	"github.com/stayhub/wallet-service/internal/domain/repositories"
	"github.com/stayhub/wallet-service/pkg/logger"
)

type AccountRepository struct {
	db     *sql.DB
	getter *trmsql.CtxGetter
	logger logger.Logger
}

func NewAccountRepository(db *sql.DB, getter *trmsql.CtxGetter, logger logger.Logger) (*AccountRepository, error) {
	if db == nil {
		return nil, errors.New("nil dependency: database")
	}
	if getter == nil {
		return nil, errors.New("nil dependency: transaction getter")
	}

	return &AccountRepository{db: db, getter: getter, logger: logger}, nil
}

var _ repositories.AccountRepository = (*AccountRepository)(nil)

func (r *AccountRepository) CreateAccount(ctx context.Context, id user.ID) error {
	const query = "INSERT INTO accounts (user_id) VALUES ($1)"

	_, err := r.getter.DefaultTrOrDB(ctx, r.db).ExecContext(ctx, query, id)
	if err != nil {
		return mapError(err)
	}

	return nil
}

func (r *AccountRepository) GetAccountByUserID(ctx context.Context, id user.ID) (*entities.Account, error) {
	const query = "SELECT user_id, balance, updated_at FROM accounts WHERE user_id = $1"

	account := new(entities.Account)

	err := r.getter.DefaultTrOrDB(ctx, r.db).QueryRowContext(ctx, query, id).Scan(
		&account.UserID,
		&account.Balance,
		&account.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, mapError(err)
	}

	return account, nil
}

// Debit checks and decrements in a single conditional UPDATE, so two
// concurrent debits can never overdraw the account.
func (r *AccountRepository) Debit(ctx context.Context, id user.ID, amount int64) error {
	const query = `
		UPDATE accounts SET
			balance = balance - $1,
			updated_at = now()
		WHERE user_id = $2 AND balance >= $1
			RETURNING balance;
	`

	var updatedBalance int64

	err := r.getter.DefaultTrOrDB(ctx, r.db).QueryRowContext(ctx, query, amount, id).Scan(&updatedBalance)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// The guard matched no row: the account is missing or the
			// balance is too low. The read below only disambiguates the
			// error; the UPDATE above stays the sole mutation.
			if _, getErr := r.GetAccountByUserID(ctx, id); getErr != nil {
				return getErr
			}
			return errs.ErrNotEnoughFunds
		}
		return mapError(err)
	}

	return nil
}

func (r *AccountRepository) Credit(ctx context.Context, id user.ID, amount int64) error {
	const query = `
		UPDATE accounts SET
			balance = balance + $1,
			updated_at = now()
		WHERE user_id = $2
			RETURNING balance;
	`

	var updatedBalance int64

	err := r.getter.DefaultTrOrDB(ctx, r.db).QueryRowContext(ctx, query, amount, id).Scan(&updatedBalance)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return errs.ErrNotFound
		}
		return mapError(err)
	}

	return nil
}
