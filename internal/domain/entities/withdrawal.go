package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/stayhub/wallet-service/internal/domain/entities/user"
)

type WithdrawalStatus string

const (
	WithdrawalPending   WithdrawalStatus = "pending"
	WithdrawalCompleted WithdrawalStatus = "completed"
	WithdrawalCancelled WithdrawalStatus = "cancelled"
)

// BankData is the payout destination fixed at request creation.
type BankData struct {
	BankName      string
	AccountNumber string
	AccountHolder string
}

// WithdrawalRequest is a user-initiated, admin-resolved claim against
// an already-debited balance. Amount is immutable after creation and
// status transitions are one-directional.
type WithdrawalRequest struct {
	ID                   uuid.UUID
	UserID               user.ID
	Amount               int64
	Bank                 BankData
	Status               WithdrawalStatus
	TransactionReference string
	ProofDocumentRef     string
	AdminNote            string
	CreatedAt            time.Time
	ResolvedAt           *time.Time
}

func NewWithdrawalRequest(id user.ID, amount int64, bank BankData) *WithdrawalRequest {
	return &WithdrawalRequest{
		ID:        uuid.New(),
		UserID:    id,
		Amount:    amount,
		Bank:      bank,
		Status:    WithdrawalPending,
		CreatedAt: time.Now(),
	}
}

// WithdrawalFilter narrows admin listings. Search matches the account
// holder, account number and bank name.
type WithdrawalFilter struct {
	Status WithdrawalStatus
	Search string
}
