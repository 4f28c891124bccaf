package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"time"

	trmsql "github.com/avito-tech/go-transaction-manager/drivers/sql/v2"
	"github.com/google/uuid"
	"github.com/stayhub/wallet-service/internal/application/errs"
	"github.com/stayhub/wallet-service/internal/domain/entities"
	"github.com/stayhub/wallet-service/internal/domain/entities/user"
	"github.com/stayhub/wallet-service/internal/domain/repositories"
	"github.com/stayhub/wallet-service/pkg/logger"
)

type WithdrawalRepository struct {
	db     *sql.DB
	getter *trmsql.CtxGetter
	logger logger.Logger
}

func NewWithdrawalRepository(db *sql.DB, getter *trmsql.CtxGetter, logger logger.Logger) (*WithdrawalRepository, error) {
	if db == nil {
		return nil, errors.New("nil dependency: database")
	}
	if getter == nil {
		return nil, errors.New("nil dependency: transaction getter")
	}

	return &WithdrawalRepository{db: db, getter: getter, logger: logger}, nil
}

var _ repositories.WithdrawalRepository = (*WithdrawalRepository)(nil)

const selectColumns = `
	SELECT id, user_id, amount, bank_name, account_number, account_holder,
		status, COALESCE(transaction_reference, ''), COALESCE(proof_document_ref, ''),
		COALESCE(admin_note, ''), created_at, resolved_at
	FROM withdrawal_requests
`

func (r *WithdrawalRepository) Create(ctx context.Context, request *entities.WithdrawalRequest) error {
	const query = `
		INSERT INTO withdrawal_requests (id, user_id, amount, bank_name,
			account_number, account_holder, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`

	_, err := r.getter.DefaultTrOrDB(ctx, r.db).ExecContext(ctx, query,
		request.ID,
		request.UserID,
		request.Amount,
		request.Bank.BankName,
		request.Bank.AccountNumber,
		request.Bank.AccountHolder,
		request.Status,
		request.CreatedAt,
	)
	if err != nil {
		return mapError(err)
	}

	return nil
}

func (r *WithdrawalRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.WithdrawalRequest, error) {
	const query = selectColumns + " WHERE id = $1;"

	request, err := r.scanRequest(r.getter.DefaultTrOrDB(ctx, r.db).QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, mapError(err)
	}

	return request, nil
}

// Complete transitions pending -> completed. The status guard makes
// concurrent resolutions pick one winner.
func (r *WithdrawalRepository) Complete(ctx context.Context, id uuid.UUID, txRef, proofRef string, resolvedAt time.Time) (user.ID, int64, error) {
	const query = `
		UPDATE withdrawal_requests SET
			status = 'completed',
			transaction_reference = $2,
			proof_document_ref = $3,
			resolved_at = $4
		WHERE id = $1 AND status = 'pending'
			RETURNING user_id, amount;
	`

	var (
		userID user.ID
		amount int64
	)

	err := r.getter.DefaultTrOrDB(ctx, r.db).
		QueryRowContext(ctx, query, id, txRef, proofRef, resolvedAt).Scan(&userID, &amount)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, 0, r.resolveConflict(ctx, id)
		}
		return 0, 0, mapError(err)
	}

	return userID, amount, nil
}

// Cancel transitions pending -> cancelled and reports the owner and
// amount for the compensating credit.
func (r *WithdrawalRepository) Cancel(ctx context.Context, id uuid.UUID, adminNote string, resolvedAt time.Time) (user.ID, int64, error) {
	const query = `
		UPDATE withdrawal_requests SET
			status = 'cancelled',
			admin_note = $2,
			resolved_at = $3
		WHERE id = $1 AND status = 'pending'
			RETURNING user_id, amount;
	`

	var (
		userID user.ID
		amount int64
	)

	err := r.getter.DefaultTrOrDB(ctx, r.db).
		QueryRowContext(ctx, query, id, adminNote, resolvedAt).Scan(&userID, &amount)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, 0, r.resolveConflict(ctx, id)
		}
		return 0, 0, mapError(err)
	}

	return userID, amount, nil
}

func (r *WithdrawalRepository) Delete(ctx context.Context, id uuid.UUID) (entities.WithdrawalStatus, error) {
	const query = "DELETE FROM withdrawal_requests WHERE id = $1 RETURNING status;"

	var status entities.WithdrawalStatus

	err := r.getter.DefaultTrOrDB(ctx, r.db).QueryRowContext(ctx, query, id).Scan(&status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", errs.ErrNotFound
		}
		return "", mapError(err)
	}

	return status, nil
}

func (r *WithdrawalRepository) List(ctx context.Context, filter entities.WithdrawalFilter) ([]*entities.WithdrawalRequest, error) {
	query := selectColumns + " WHERE 1 = 1"
	args := make([]interface{}, 0, 2)

	if filter.Status != "" {
		args = append(args, filter.Status)
		query += " AND status = $1"
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		placeholder := "$" + strconv.Itoa(len(args))
		query += " AND (account_holder ILIKE " + placeholder +
			" OR account_number ILIKE " + placeholder +
			" OR bank_name ILIKE " + placeholder + ")"
	}
	query += " ORDER BY created_at DESC;"

	return r.queryRequests(ctx, query, args...)
}

func (r *WithdrawalRepository) ListByUserID(ctx context.Context, id user.ID) ([]*entities.WithdrawalRequest, error) {
	const query = selectColumns + " WHERE user_id = $1 ORDER BY created_at DESC;"

	return r.queryRequests(ctx, query, id)
}

// resolveConflict tells a missing request apart from one already
// resolved, after a guarded update matched no row.
func (r *WithdrawalRepository) resolveConflict(ctx context.Context, id uuid.UUID) error {
	if _, err := r.GetByID(ctx, id); err != nil {
		return err
	}
	return errs.ErrInvalidState
}

func (r *WithdrawalRepository) queryRequests(ctx context.Context, query string, args ...interface{}) ([]*entities.WithdrawalRequest, error) {
	rows, err := r.getter.DefaultTrOrDB(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapError(err)
	}

	defer func() {
		if err := rows.Close(); err != nil {
			r.logger.Errorf("close rows: %s", err)
		}
	}()

	requests := make([]*entities.WithdrawalRequest, 0)

	for rows.Next() {
		request, err := r.scanRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, request)
	}

	// Rows.Err will report the last error encountered by Rows.Scan.
	if err = rows.Err(); err != nil {
		return nil, mapError(err)
	}

	return requests, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *WithdrawalRepository) scanRequest(row rowScanner) (*entities.WithdrawalRequest, error) {
	request := new(entities.WithdrawalRequest)

	err := row.Scan(
		&request.ID,
		&request.UserID,
		&request.Amount,
		&request.Bank.BankName,
		&request.Bank.AccountNumber,
		&request.Bank.AccountHolder,
		&request.Status,
		&request.TransactionReference,
		&request.ProofDocumentRef,
		&request.AdminNote,
		&request.CreatedAt,
		&request.ResolvedAt,
	)
	if err != nil {
		return nil, err
	}

	return request, nil
}
