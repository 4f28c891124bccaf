package repositories

import (
	"context"
	"time"

	"github.com/stayhub/wallet-service/internal/domain/entities"
	"github.com/stayhub/wallet-service/internal/domain/entities/user"
)

type KYCRepository interface {
	GetByUserID(context.Context, user.ID) (*entities.KYCRecord, error)
	// Submit inserts the record or supersedes a rejected one.
	// An existing pending or verified record yields errs.ErrDataConflict.
	Submit(context.Context, *entities.KYCRecord) error
	// Resolve transitions a pending record to verified or rejected.
	Resolve(ctx context.Context, id user.ID, status entities.KYCStatus, reason string, resolvedAt time.Time) error
}
