package entities

import (
	"time"

	"github.com/stayhub/wallet-service/internal/domain/entities/user"
)

type KYCStatus string

const (
	// KYCUnset means the user has never submitted identity data.
	KYCUnset    KYCStatus = "unset"
	KYCPending  KYCStatus = "pending"
	KYCVerified KYCStatus = "verified"
	KYCRejected KYCStatus = "rejected"
)

// KYCRecord is a user's identity-verification submission. At most one
// active (pending or verified) record exists per user; a rejected
// record may be superseded by a new submission.
type KYCRecord struct {
	UserID            user.ID
	Status            KYCStatus
	FullName          string
	IDNumber          string
	BankAccountHint   string
	IDDocumentRef     string
	SelfieDocumentRef string
	RejectionReason   string
	SubmittedAt       time.Time
	ResolvedAt        *time.Time
}

func NewKYCRecord(id user.ID, fullName, idNumber, bankHint, idDoc, selfieDoc string) *KYCRecord {
	return &KYCRecord{
		UserID:            id,
		Status:            KYCPending,
		FullName:          fullName,
		IDNumber:          idNumber,
		BankAccountHint:   bankHint,
		IDDocumentRef:     idDoc,
		SelfieDocumentRef: selfieDoc,
		SubmittedAt:       time.Now(),
	}
}
