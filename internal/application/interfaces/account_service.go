package interfaces

import (
	"context"

	"github.com/stayhub/wallet-service/internal/domain/entities"
	"github.com/stayhub/wallet-service/internal/domain/entities/user"
)

// AccountService is the sole authority over balance mutation.
type AccountService interface {
	GetAccount(context.Context, user.ID) (*entities.Account, error)
	Debit(ctx context.Context, id user.ID, amount int64) error
	Credit(ctx context.Context, id user.ID, amount int64) error
}
