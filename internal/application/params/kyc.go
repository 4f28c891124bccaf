package params

import (
	"github.com/stayhub/wallet-service/internal/domain/entities"
	"github.com/stayhub/wallet-service/internal/domain/entities/user"
)

// WithdrawalIntent is a withdrawal accompanying a first-time KYC
// submission. It is created right away, while the KYC is still
// pending; see the design notes before changing this policy.
type WithdrawalIntent struct {
	Amount int64
	Bank   entities.BankData
}

type SubmitKYC struct {
	UserID            user.ID
	FullName          string
	IDNumber          string
	BankAccountHint   string
	IDDocumentRef     string
	SelfieDocumentRef string
	Intent            *WithdrawalIntent
}

type ResolveKYC struct {
	UserID   user.ID
	Decision entities.KYCStatus
	Reason   string
}

func NewResolveKYC(id user.ID, decision entities.KYCStatus, reason string) *ResolveKYC {
	return &ResolveKYC{UserID: id, Decision: decision, Reason: reason}
}
