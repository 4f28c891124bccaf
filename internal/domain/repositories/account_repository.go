package repositories

import (
	"context"

	"github.com/stayhub/wallet-service/internal/domain/entities"
	"github.com/stayhub/wallet-service/internal/domain/entities/user"
)

// AccountRepository is the only writer of account balances.
type AccountRepository interface {
	CreateAccount(context.Context, user.ID) error
	GetAccountByUserID(context.Context, user.ID) (*entities.Account, error)
	// Debit checks balance sufficiency and decrements in one
	// indivisible statement. Returns errs.ErrNotEnoughFunds without
	// side effect when the balance is too low.
	Debit(ctx context.Context, id user.ID, amount int64) error
	// Credit increments the balance. A missing account is a
	// programming error surfaced as errs.ErrNotFound.
	Credit(ctx context.Context, id user.ID, amount int64) error
}
