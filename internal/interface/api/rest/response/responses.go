package response

import (
	"time"

	"github.com/google/uuid"
	"github.com/stayhub/wallet-service/internal/domain/entities"
)

type GetBalance struct {
	Balance int64 `json:"balance"`
}

func NewGetBalance(account *entities.Account) *GetBalance {
	return &GetBalance{Balance: account.Balance}
}

type WithdrawalRequest struct {
	ID                   uuid.UUID  `json:"id"`
	UserID               int        `json:"user_id"`
	Amount               int64      `json:"amount"`
	BankName             string     `json:"bank_name"`
	AccountNumber        string     `json:"account_number"`
	AccountHolder        string     `json:"account_holder"`
	Status               string     `json:"status"`
	TransactionReference string     `json:"transaction_reference,omitempty"`
	ProofDocumentRef     string     `json:"proof_document_ref,omitempty"`
	AdminNote            string     `json:"admin_note,omitempty"`
	CreatedAt            time.Time  `json:"created_at"`
	ResolvedAt           *time.Time `json:"resolved_at,omitempty"`
}

func NewWithdrawalRequest(r *entities.WithdrawalRequest) *WithdrawalRequest {
	return &WithdrawalRequest{
		ID:                   r.ID,
		UserID:               int(r.UserID),
		Amount:               r.Amount,
		BankName:             r.Bank.BankName,
		AccountNumber:        r.Bank.AccountNumber,
		AccountHolder:        r.Bank.AccountHolder,
		Status:               string(r.Status),
		TransactionReference: r.TransactionReference,
		ProofDocumentRef:     r.ProofDocumentRef,
		AdminNote:            r.AdminNote,
		CreatedAt:            r.CreatedAt,
		ResolvedAt:           r.ResolvedAt,
	}
}

func NewWithdrawalRequests(requests []*entities.WithdrawalRequest) []*WithdrawalRequest {
	res := make([]*WithdrawalRequest, len(requests))
	for i, r := range requests {
		res[i] = NewWithdrawalRequest(r)
	}
	return res
}

type KYCStatus struct {
	Status string `json:"status"`
}

func NewKYCStatus(status entities.KYCStatus) *KYCStatus {
	return &KYCStatus{Status: string(status)}
}

type DocumentRef struct {
	Ref string `json:"ref"`
}
