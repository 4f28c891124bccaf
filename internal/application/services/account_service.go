package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/stayhub/wallet-service/internal/application/errs"
	"github.com/stayhub/wallet-service/internal/application/interfaces"
	"github.com/stayhub/wallet-service/internal/domain/entities"
	"github.com/stayhub/wallet-service/internal/domain/entities/user"
	"github.com/stayhub/wallet-service/internal/domain/repositories"
	"github.com/stayhub/wallet-service/pkg/logger"
)

// AccountService channels every balance mutation through the
// repository's atomic debit and credit statements.
type AccountService struct {
	accountRepo repositories.AccountRepository
	logger      logger.Logger
}

func NewAccountService(
	accountRepository repositories.AccountRepository,
	logger logger.Logger,
) (*AccountService, error) {
	if accountRepository == nil {
		return nil, errors.New("nil dependency: account repository")
	}
	return &AccountService{
		accountRepo: accountRepository,
		logger:      logger,
	}, nil
}

var _ interfaces.AccountService = (*AccountService)(nil)

func (s *AccountService) GetAccount(ctx context.Context, id user.ID) (*entities.Account, error) {
	account, err := s.accountRepo.GetAccountByUserID(ctx, id)
	if err != nil {
		return nil, err
	}

	return account, nil
}

func (s *AccountService) Debit(ctx context.Context, id user.ID, amount int64) error {
	if amount <= 0 {
		return fmt.Errorf("%w: debit amount must be positive", errs.ErrInvalidRequest)
	}

	return s.accountRepo.Debit(ctx, id, amount)
}

func (s *AccountService) Credit(ctx context.Context, id user.ID, amount int64) error {
	if amount <= 0 {
		return fmt.Errorf("%w: credit amount must be positive", errs.ErrInvalidRequest)
	}

	return s.accountRepo.Credit(ctx, id, amount)
}
