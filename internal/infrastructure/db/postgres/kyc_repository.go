package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	trmsql "github.com/avito-tech/go-transaction-manager/drivers/sql/v2"
	"github.com/stayhub/wallet-service/internal/application/errs"
	"github.com/stayhub/wallet-service/internal/domain/entities"
	"github.com/stayhub/wallet-service/internal/domain/entities/user"
	"github.com/stayhub/wallet-service/internal/domain/repositories"
	"github.com/stayhub/wallet-service/pkg/logger"
)

type KYCRepository struct {
	db     *sql.DB
	getter *trmsql.CtxGetter
	logger logger.Logger
}

func NewKYCRepository(db *sql.DB, getter *trmsql.CtxGetter, logger logger.Logger) (*KYCRepository, error) {
	if db == nil {
		return nil, errors.New("nil dependency: database")
	}
	if getter == nil {
		return nil, errors.New("nil dependency: transaction getter")
	}

	return &KYCRepository{db: db, getter: getter, logger: logger}, nil
}

var _ repositories.KYCRepository = (*KYCRepository)(nil)

func (r *KYCRepository) GetByUserID(ctx context.Context, id user.ID) (*entities.KYCRecord, error) {
	const query = `
		SELECT user_id, status, full_name, id_number, bank_account_hint,
			id_document_ref, selfie_document_ref, COALESCE(rejection_reason, ''),
			submitted_at, resolved_at
		FROM kyc_records WHERE user_id = $1;
	`

	record := new(entities.KYCRecord)

	err := r.getter.DefaultTrOrDB(ctx, r.db).QueryRowContext(ctx, query, id).Scan(
		&record.UserID,
		&record.Status,
		&record.FullName,
		&record.IDNumber,
		&record.BankAccountHint,
		&record.IDDocumentRef,
		&record.SelfieDocumentRef,
		&record.RejectionReason,
		&record.SubmittedAt,
		&record.ResolvedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, mapError(err)
	}

	return record, nil
}

// Submit inserts a fresh pending record or supersedes a rejected one.
// The conflict guard keeps an active (pending or verified) record from
// being overwritten.
func (r *KYCRepository) Submit(ctx context.Context, record *entities.KYCRecord) error {
	const query = `
		INSERT INTO kyc_records (user_id, status, full_name, id_number,
			bank_account_hint, id_document_ref, selfie_document_ref, submitted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (user_id) DO UPDATE SET
			status = EXCLUDED.status,
			full_name = EXCLUDED.full_name,
			id_number = EXCLUDED.id_number,
			bank_account_hint = EXCLUDED.bank_account_hint,
			id_document_ref = EXCLUDED.id_document_ref,
			selfie_document_ref = EXCLUDED.selfie_document_ref,
			rejection_reason = NULL,
			submitted_at = EXCLUDED.submitted_at,
			resolved_at = NULL
		WHERE kyc_records.status = 'rejected'
			RETURNING user_id;
	`

	var id user.ID

	err := r.getter.DefaultTrOrDB(ctx, r.db).QueryRowContext(ctx, query,
		record.UserID,
		record.Status,
		record.FullName,
		record.IDNumber,
		record.BankAccountHint,
		record.IDDocumentRef,
		record.SelfieDocumentRef,
		record.SubmittedAt,
	).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return errs.ErrDataConflict
		}
		return mapError(err)
	}

	return nil
}

// Resolve is guarded on the pending status so concurrent resolutions
// pick exactly one winner.
func (r *KYCRepository) Resolve(ctx context.Context, id user.ID, status entities.KYCStatus, reason string, resolvedAt time.Time) error {
	const query = `
		UPDATE kyc_records SET
			status = $2,
			rejection_reason = NULLIF($3, ''),
			resolved_at = $4
		WHERE user_id = $1 AND status = 'pending'
			RETURNING user_id;
	`

	var updatedID user.ID

	err := r.getter.DefaultTrOrDB(ctx, r.db).
		QueryRowContext(ctx, query, id, status, reason, resolvedAt).Scan(&updatedID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			if _, getErr := r.GetByUserID(ctx, id); getErr != nil {
				return getErr
			}
			return errs.ErrInvalidState
		}
		return mapError(err)
	}

	return nil
}
