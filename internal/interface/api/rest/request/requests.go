package request

// CreateWithdrawal is the user-facing withdrawal form. Amounts are in
// minor currency units.
type CreateWithdrawal struct {
	Amount        int64  `json:"amount" validate:"required,gt=0"`
	BankName      string `json:"bank_name" validate:"required"`
	AccountNumber string `json:"account_number" validate:"required"`
	AccountHolder string `json:"account_holder" validate:"required"`
}

// SubmitKYC carries identity data plus already-uploaded document
// references. The optional withdrawal intent mirrors the source flow
// where a first withdrawal accompanies the KYC submission.
type SubmitKYC struct {
	FullName          string            `json:"full_name" validate:"required"`
	IDNumber          string            `json:"id_number" validate:"required"`
	BankAccountHint   string            `json:"bank_account" validate:"required"`
	IDDocumentRef     string            `json:"id_document_ref" validate:"required"`
	SelfieDocumentRef string            `json:"selfie_document_ref" validate:"required"`
	WithdrawalIntent  *CreateWithdrawal `json:"withdrawal_intent,omitempty"`
}

type ApproveWithdrawal struct {
	TransactionReference string `json:"transaction_reference" validate:"required"`
	ProofDocumentRef     string `json:"proof_document_ref" validate:"required"`
}

type RejectWithdrawal struct {
	AdminNote string `json:"admin_note" validate:"required"`
}

type ResolveKYC struct {
	Decision string `json:"decision" validate:"required,oneof=verified rejected"`
	Reason   string `json:"reason" validate:"required_if=Decision rejected"`
}
