package interfaces

import (
	"context"

	"github.com/stayhub/wallet-service/internal/application/params"
	"github.com/stayhub/wallet-service/internal/domain/entities"
	"github.com/stayhub/wallet-service/internal/domain/entities/user"
)

// KYCService gates withdrawal eligibility on verified identity.
type KYCService interface {
	Submit(context.Context, *params.SubmitKYC) error
	Resolve(context.Context, *params.ResolveKYC) error
	StatusOf(context.Context, user.ID) (entities.KYCStatus, error)
}
