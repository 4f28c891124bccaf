package interfaces

import (
	"context"

	"github.com/google/uuid"
	"github.com/stayhub/wallet-service/internal/application/params"
	"github.com/stayhub/wallet-service/internal/domain/entities"
	"github.com/stayhub/wallet-service/internal/domain/entities/user"
)

// WithdrawalService governs the request lifecycle and its coupling to
// the account store.
type WithdrawalService interface {
	Create(context.Context, *params.CreateWithdrawal) (*entities.WithdrawalRequest, error)
	Approve(context.Context, *params.ApproveWithdrawal) error
	Reject(context.Context, *params.RejectWithdrawal) error
	Delete(context.Context, uuid.UUID) error
	List(context.Context, entities.WithdrawalFilter) ([]*entities.WithdrawalRequest, error)
	ListByUser(context.Context, user.ID) ([]*entities.WithdrawalRequest, error)
}
