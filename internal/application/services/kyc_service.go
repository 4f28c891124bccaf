package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/stayhub/wallet-service/internal/application/errs"
	"github.com/stayhub/wallet-service/internal/application/interfaces"
	"github.com/stayhub/wallet-service/internal/application/params"
	"github.com/stayhub/wallet-service/internal/domain/entities"
	"github.com/stayhub/wallet-service/internal/domain/entities/user"
	"github.com/stayhub/wallet-service/internal/domain/repositories"
	"github.com/stayhub/wallet-service/pkg/logger"
)

// KYCService tracks identity-verification submissions and their admin
// resolution. It also carries the source system's coupling: a
// withdrawal intent attached to a submission is created right away,
// while the KYC is still pending.
type KYCService struct {
	kycRepo     repositories.KYCRepository
	withdrawals interfaces.WithdrawalService
	notifier    interfaces.Notifier
	logger      logger.Logger
}

func NewKYCService(
	kycRepository repositories.KYCRepository,
	withdrawals interfaces.WithdrawalService,
	notifier interfaces.Notifier,
	logger logger.Logger,
) (*KYCService, error) {
	if kycRepository == nil {
		return nil, errors.New("nil dependency: kyc repository")
	}
	if withdrawals == nil {
		return nil, errors.New("nil dependency: withdrawal service")
	}
	if notifier == nil {
		return nil, errors.New("nil dependency: notifier")
	}
	return &KYCService{
		kycRepo:     kycRepository,
		withdrawals: withdrawals,
		notifier:    notifier,
		logger:      logger,
	}, nil
}

var _ interfaces.KYCService = (*KYCService)(nil)

func (s *KYCService) Submit(ctx context.Context, p *params.SubmitKYC) error {
	if err := validateSubmission(p); err != nil {
		return err
	}

	record := entities.NewKYCRecord(
		p.UserID, p.FullName, p.IDNumber, p.BankAccountHint, p.IDDocumentRef, p.SelfieDocumentRef)

	if err := s.kycRepo.Submit(ctx, record); err != nil {
		return err
	}

	s.alert(ctx, fmt.Sprintf("New identity verification submitted by user %d.", p.UserID))

	// The accompanying intent does not wait for verification. Its
	// failure is reported to the caller but the recorded submission
	// stands.
	if p.Intent != nil {
		create := params.NewCreateWithdrawal(p.UserID, p.Intent.Amount, p.Intent.Bank)
		if _, err := s.withdrawals.Create(ctx, create); err != nil {
			return fmt.Errorf("withdrawal intent: %w", err)
		}
	}

	return nil
}

func (s *KYCService) Resolve(ctx context.Context, p *params.ResolveKYC) error {
	if p.Decision != entities.KYCVerified && p.Decision != entities.KYCRejected {
		return fmt.Errorf("%w: decision must be %q or %q",
			errs.ErrInvalidRequest, entities.KYCVerified, entities.KYCRejected)
	}
	if p.Decision == entities.KYCRejected && p.Reason == "" {
		return fmt.Errorf("%w: a rejection requires a reason", errs.ErrInvalidRequest)
	}

	if err := s.kycRepo.Resolve(ctx, p.UserID, p.Decision, p.Reason, time.Now()); err != nil {
		return err
	}

	switch p.Decision {
	case entities.KYCVerified:
		s.notify(ctx, p.UserID, "Your identity has been verified. You can now request withdrawals.")
	case entities.KYCRejected:
		s.notify(ctx, p.UserID, fmt.Sprintf(
			"Your identity verification was rejected: %s. You may submit again.", p.Reason))
	}

	return nil
}

func (s *KYCService) StatusOf(ctx context.Context, id user.ID) (entities.KYCStatus, error) {
	record, err := s.kycRepo.GetByUserID(ctx, id)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return entities.KYCUnset, nil
		}
		return "", err
	}

	return record.Status, nil
}

func (s *KYCService) notify(ctx context.Context, id user.ID, text string) {
	if err := s.notifier.Send(ctx, id, text); err != nil {
		s.logger.Errorf("notify user %d: %s", id, err)
	}
}

func (s *KYCService) alert(ctx context.Context, text string) {
	if err := s.notifier.Alert(ctx, text); err != nil {
		s.logger.Errorf("notify ops channel: %s", err)
	}
}

func validateSubmission(p *params.SubmitKYC) error {
	switch {
	case p.FullName == "":
		return fmt.Errorf("%w: full name is required", errs.ErrInvalidRequest)
	case p.IDNumber == "":
		return fmt.Errorf("%w: id number is required", errs.ErrInvalidRequest)
	case p.BankAccountHint == "":
		return fmt.Errorf("%w: bank account is required", errs.ErrInvalidRequest)
	case p.IDDocumentRef == "":
		return fmt.Errorf("%w: id document is required", errs.ErrInvalidRequest)
	case p.SelfieDocumentRef == "":
		return fmt.Errorf("%w: selfie document is required", errs.ErrInvalidRequest)
	}

	return nil
}
