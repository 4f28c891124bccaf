package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/avito-tech/go-transaction-manager/trm/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stayhub/wallet-service/internal/application/errs"
	"github.com/stayhub/wallet-service/internal/application/interfaces"
	"github.com/stayhub/wallet-service/internal/application/params"
	"github.com/stayhub/wallet-service/internal/domain/entities"
	"github.com/stayhub/wallet-service/internal/domain/entities/user"
	"github.com/stayhub/wallet-service/internal/domain/repositories"
	"github.com/stayhub/wallet-service/pkg/logger"
)

// WithdrawalService drives a request from creation through admin
// resolution. Debit+insert and credit+cancel each run as one managed
// transaction so account and request state never diverge.
type WithdrawalService struct {
	accounts       interfaces.AccountService
	withdrawalRepo repositories.WithdrawalRepository
	trm            trm.Manager
	notifier       interfaces.Notifier
	minAmount      int64
	currency       string
	logger         logger.Logger
}

func NewWithdrawalService(
	accounts interfaces.AccountService,
	withdrawalRepository repositories.WithdrawalRepository,
	trm trm.Manager,
	notifier interfaces.Notifier,
	minAmount int64,
	currency string,
	logger logger.Logger,
) (*WithdrawalService, error) {
	if accounts == nil {
		return nil, errors.New("nil dependency: account service")
	}
	if withdrawalRepository == nil {
		return nil, errors.New("nil dependency: withdrawal repository")
	}
	if trm == nil {
		return nil, errors.New("nil dependency: transaction manager")
	}
	if notifier == nil {
		return nil, errors.New("nil dependency: notifier")
	}
	return &WithdrawalService{
		accounts:       accounts,
		withdrawalRepo: withdrawalRepository,
		trm:            trm,
		notifier:       notifier,
		minAmount:      minAmount,
		currency:       currency,
		logger:         logger,
	}, nil
}

var _ interfaces.WithdrawalService = (*WithdrawalService)(nil)

func (s *WithdrawalService) Create(ctx context.Context, p *params.CreateWithdrawal) (*entities.WithdrawalRequest, error) {
	if p.Amount < s.minAmount {
		return nil, fmt.Errorf("%w: amount is below the minimum of %d", errs.ErrInvalidRequest, s.minAmount)
	}
	if err := validateBankData(p.Bank); err != nil {
		return nil, err
	}

	request := entities.NewWithdrawalRequest(p.UserID, p.Amount, p.Bank)

	// Debit and request insert are one logical transaction: a failed
	// insert rolls the debit back.
	err := s.trm.Do(ctx, func(ctx context.Context) error {
		if err := s.accounts.Debit(ctx, p.UserID, p.Amount); err != nil {
			return err
		}

		return s.withdrawalRepo.Create(ctx, request)
	})
	if err != nil {
		return nil, err
	}

	s.notify(ctx, p.UserID, fmt.Sprintf(
		"Your withdrawal request for %s has been received and is pending review.",
		s.formatAmount(p.Amount)))
	s.alert(ctx, fmt.Sprintf(
		"New withdrawal request %s: user %d, %s to %s (%s).",
		request.ID, p.UserID, s.formatAmount(p.Amount), p.Bank.BankName, p.Bank.AccountNumber))

	return request, nil
}

func (s *WithdrawalService) Approve(ctx context.Context, p *params.ApproveWithdrawal) error {
	if p.TransactionReference == "" {
		return fmt.Errorf("%w: transaction reference is required", errs.ErrInvalidRequest)
	}
	if p.ProofDocumentRef == "" {
		return fmt.Errorf("%w: proof document is required", errs.ErrInvalidRequest)
	}

	// No balance mutation here: funds were debited at creation. The
	// guarded update keeps repeated approvals from re-sending the
	// notification.
	userID, amount, err := s.withdrawalRepo.Complete(ctx, p.ID, p.TransactionReference, p.ProofDocumentRef, time.Now())
	if err != nil {
		return err
	}

	s.notify(ctx, userID, fmt.Sprintf(
		"Your withdrawal of %s has been completed. Transaction reference: %s.",
		s.formatAmount(amount), p.TransactionReference))

	return nil
}

func (s *WithdrawalService) Reject(ctx context.Context, p *params.RejectWithdrawal) error {
	var (
		userID user.ID
		amount int64
	)

	// Status update and compensating credit are one logical
	// transaction: a request never ends cancelled without its credit,
	// and the pending-status guard keeps the credit from happening
	// twice.
	err := s.trm.Do(ctx, func(ctx context.Context) error {
		var err error

		userID, amount, err = s.withdrawalRepo.Cancel(ctx, p.ID, p.AdminNote, time.Now())
		if err != nil {
			return err
		}

		return s.accounts.Credit(ctx, userID, amount)
	})
	if err != nil {
		return err
	}

	s.notify(ctx, userID, fmt.Sprintf(
		"Your withdrawal of %s was rejected and the funds were returned to your wallet. Note: %s",
		s.formatAmount(amount), p.AdminNote))

	return nil
}

func (s *WithdrawalService) Delete(ctx context.Context, id uuid.UUID) error {
	status, err := s.withdrawalRepo.Delete(ctx, id)
	if err != nil {
		return err
	}

	// Deleting a pending request abandons its debited funds. Kept as a
	// distinct operation from Reject; the warning makes the case
	// visible without changing the contract.
	if status == entities.WithdrawalPending {
		s.logger.Warnf("deleted pending withdrawal request %s: debited funds were not credited back", id)
	}

	return nil
}

func (s *WithdrawalService) List(ctx context.Context, filter entities.WithdrawalFilter) ([]*entities.WithdrawalRequest, error) {
	return s.withdrawalRepo.List(ctx, filter)
}

func (s *WithdrawalService) ListByUser(ctx context.Context, id user.ID) ([]*entities.WithdrawalRequest, error) {
	return s.withdrawalRepo.ListByUserID(ctx, id)
}

func (s *WithdrawalService) notify(ctx context.Context, id user.ID, text string) {
	if err := s.notifier.Send(ctx, id, text); err != nil {
		s.logger.Errorf("notify user %d: %s", id, err)
	}
}

func (s *WithdrawalService) alert(ctx context.Context, text string) {
	if err := s.notifier.Alert(ctx, text); err != nil {
		s.logger.Errorf("notify ops channel: %s", err)
	}
}

func (s *WithdrawalService) formatAmount(amount int64) string {
	return fmt.Sprintf("%s %s", s.currency, decimal.New(amount, -2).StringFixed(2))
}

func validateBankData(bank entities.BankData) error {
	switch {
	case bank.BankName == "":
		return fmt.Errorf("%w: bank name is required", errs.ErrInvalidRequest)
	case bank.AccountNumber == "":
		return fmt.Errorf("%w: account number is required", errs.ErrInvalidRequest)
	case bank.AccountHolder == "":
		return fmt.Errorf("%w: account holder is required", errs.ErrInvalidRequest)
	}

	return nil
}
