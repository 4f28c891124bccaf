package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stayhub/wallet-service/internal/domain/entities"
	"github.com/stayhub/wallet-service/internal/domain/entities/user"
)

type WithdrawalRepository interface {
	Create(context.Context, *entities.WithdrawalRequest) error
	GetByID(context.Context, uuid.UUID) (*entities.WithdrawalRequest, error)
	// Complete transitions a pending request to completed. The guard on
	// the current status makes concurrent resolutions pick one winner;
	// the loser gets errs.ErrInvalidState.
	Complete(ctx context.Context, id uuid.UUID, txRef, proofRef string, resolvedAt time.Time) (user.ID, int64, error)
	// Cancel transitions a pending request to cancelled and reports the
	// owner and amount so the caller can credit the funds back within
	// the same transaction.
	Cancel(ctx context.Context, id uuid.UUID, adminNote string, resolvedAt time.Time) (user.ID, int64, error)
	// Delete removes the request regardless of status and reports the
	// status it had. Never touches balances.
	Delete(context.Context, uuid.UUID) (entities.WithdrawalStatus, error)
	List(context.Context, entities.WithdrawalFilter) ([]*entities.WithdrawalRequest, error)
	ListByUserID(context.Context, user.ID) ([]*entities.WithdrawalRequest, error)
}
