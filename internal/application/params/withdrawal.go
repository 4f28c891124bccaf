package params

import (
	"github.com/google/uuid"
	"github.com/stayhub/wallet-service/internal/domain/entities"
	"github.com/stayhub/wallet-service/internal/domain/entities/user"
)

type CreateWithdrawal struct {
	UserID user.ID
	Amount int64
	Bank   entities.BankData
}

func NewCreateWithdrawal(id user.ID, amount int64, bank entities.BankData) *CreateWithdrawal {
	return &CreateWithdrawal{UserID: id, Amount: amount, Bank: bank}
}

type ApproveWithdrawal struct {
	ID                   uuid.UUID
	TransactionReference string
	ProofDocumentRef     string
}

func NewApproveWithdrawal(id uuid.UUID, txRef, proofRef string) *ApproveWithdrawal {
	return &ApproveWithdrawal{ID: id, TransactionReference: txRef, ProofDocumentRef: proofRef}
}

type RejectWithdrawal struct {
	ID        uuid.UUID
	AdminNote string
}

func NewRejectWithdrawal(id uuid.UUID, adminNote string) *RejectWithdrawal {
	return &RejectWithdrawal{ID: id, AdminNote: adminNote}
}
