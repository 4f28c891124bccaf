package services

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/avito-tech/go-transaction-manager/trm/v2"
	"github.com/google/uuid"
	"github.com/stayhub/wallet-service/internal/application/errs"
	"github.com/stayhub/wallet-service/internal/domain/entities"
	"github.com/stayhub/wallet-service/internal/domain/entities/user"
)

// Lock in case of t.Parallel call.
type mockAccountRepository struct {
	balances map[user.ID]int64
	mu       sync.Mutex
}

func newMockAccountRepository(balances map[user.ID]int64) *mockAccountRepository {
	if balances == nil {
		balances = make(map[user.ID]int64)
	}
	return &mockAccountRepository{balances: balances}
}

func (m *mockAccountRepository) CreateAccount(_ context.Context, id user.ID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.balances[id]; ok {
		return errs.ErrDataConflict
	}
	m.balances[id] = 0
	return nil
}

func (m *mockAccountRepository) GetAccountByUserID(_ context.Context, id user.ID) (*entities.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	balance, ok := m.balances[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	return &entities.Account{UserID: id, Balance: balance}, nil
}

// Debit mirrors the store's single conditional update: check and
// decrement happen under one lock and an insufficient balance leaves
// the account untouched.
func (m *mockAccountRepository) Debit(_ context.Context, id user.ID, amount int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	balance, ok := m.balances[id]
	if !ok {
		return errs.ErrNotFound
	}
	if balance < amount {
		return errs.ErrNotEnoughFunds
	}
	m.balances[id] = balance - amount
	return nil
}

func (m *mockAccountRepository) Credit(_ context.Context, id user.ID, amount int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	balance, ok := m.balances[id]
	if !ok {
		return errs.ErrNotFound
	}
	m.balances[id] = balance + amount
	return nil
}

func (m *mockAccountRepository) balanceOf(id user.ID) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.balances[id]
}

func (m *mockAccountRepository) snapshot() map[user.ID]int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := make(map[user.ID]int64, len(m.balances))
	for k, v := range m.balances {
		cp[k] = v
	}
	return cp
}

func (m *mockAccountRepository) restore(balances map[user.ID]int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.balances = balances
}

type mockWithdrawalRepository struct {
	items     map[uuid.UUID]*entities.WithdrawalRequest
	createErr error
	mu        sync.Mutex
}

func newMockWithdrawalRepository() *mockWithdrawalRepository {
	return &mockWithdrawalRepository{items: make(map[uuid.UUID]*entities.WithdrawalRequest)}
}

func (m *mockWithdrawalRepository) Create(_ context.Context, r *entities.WithdrawalRequest) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[r.ID]; ok {
		return errs.ErrDataConflict
	}
	cp := *r
	m.items[r.ID] = &cp
	return nil
}

func (m *mockWithdrawalRepository) GetByID(_ context.Context, id uuid.UUID) (*entities.WithdrawalRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.items[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	cp := *r
	return &cp, nil
}

func (m *mockWithdrawalRepository) Complete(
	_ context.Context, id uuid.UUID, txRef, proofRef string, resolvedAt time.Time,
) (user.ID, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.items[id]
	if !ok {
		return 0, 0, errs.ErrNotFound
	}
	if r.Status != entities.WithdrawalPending {
		return 0, 0, errs.ErrInvalidState
	}
	r.Status = entities.WithdrawalCompleted
	r.TransactionReference = txRef
	r.ProofDocumentRef = proofRef
	r.ResolvedAt = &resolvedAt
	return r.UserID, r.Amount, nil
}

func (m *mockWithdrawalRepository) Cancel(
	_ context.Context, id uuid.UUID, adminNote string, resolvedAt time.Time,
) (user.ID, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.items[id]
	if !ok {
		return 0, 0, errs.ErrNotFound
	}
	if r.Status != entities.WithdrawalPending {
		return 0, 0, errs.ErrInvalidState
	}
	r.Status = entities.WithdrawalCancelled
	r.AdminNote = adminNote
	r.ResolvedAt = &resolvedAt
	return r.UserID, r.Amount, nil
}

func (m *mockWithdrawalRepository) Delete(_ context.Context, id uuid.UUID) (entities.WithdrawalStatus, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.items[id]
	if !ok {
		return "", errs.ErrNotFound
	}
	delete(m.items, id)
	return r.Status, nil
}

func (m *mockWithdrawalRepository) List(
	_ context.Context, filter entities.WithdrawalFilter,
) ([]*entities.WithdrawalRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	res := make([]*entities.WithdrawalRequest, 0, len(m.items))
	for _, r := range m.items {
		if filter.Status != "" && r.Status != filter.Status {
			continue
		}
		if filter.Search != "" &&
			!strings.Contains(r.Bank.AccountHolder, filter.Search) &&
			!strings.Contains(r.Bank.AccountNumber, filter.Search) &&
			!strings.Contains(r.Bank.BankName, filter.Search) {
			continue
		}
		cp := *r
		res = append(res, &cp)
	}
	return res, nil
}

func (m *mockWithdrawalRepository) ListByUserID(
	_ context.Context, id user.ID,
) ([]*entities.WithdrawalRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	res := make([]*entities.WithdrawalRequest, 0)
	for _, r := range m.items {
		if r.UserID == id {
			cp := *r
			res = append(res, &cp)
		}
	}
	return res, nil
}

func (m *mockWithdrawalRepository) snapshot() map[uuid.UUID]*entities.WithdrawalRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := make(map[uuid.UUID]*entities.WithdrawalRequest, len(m.items))
	for k, v := range m.items {
		vc := *v
		cp[k] = &vc
	}
	return cp
}

func (m *mockWithdrawalRepository) restore(items map[uuid.UUID]*entities.WithdrawalRequest) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = items
}

type mockKYCRepository struct {
	items     map[user.ID]*entities.KYCRecord
	submitErr error
	mu        sync.Mutex
}

func newMockKYCRepository() *mockKYCRepository {
	return &mockKYCRepository{items: make(map[user.ID]*entities.KYCRecord)}
}

func (m *mockKYCRepository) GetByUserID(_ context.Context, id user.ID) (*entities.KYCRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.items[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	cp := *r
	return &cp, nil
}

func (m *mockKYCRepository) Submit(_ context.Context, r *entities.KYCRecord) error {
	if m.submitErr != nil {
		return m.submitErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.items[r.UserID]; ok && existing.Status != entities.KYCRejected {
		return errs.ErrDataConflict
	}
	cp := *r
	m.items[r.UserID] = &cp
	return nil
}

func (m *mockKYCRepository) Resolve(
	_ context.Context, id user.ID, status entities.KYCStatus, reason string, resolvedAt time.Time,
) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.items[id]
	if !ok {
		return errs.ErrNotFound
	}
	if r.Status != entities.KYCPending {
		return errs.ErrInvalidState
	}
	r.Status = status
	r.RejectionReason = reason
	r.ResolvedAt = &resolvedAt
	return nil
}

type mockNotifier struct {
	sent     map[user.ID][]string
	alerts   []string
	sendErr  error
	alertErr error
	mu       sync.Mutex
}

func newMockNotifier() *mockNotifier {
	return &mockNotifier{sent: make(map[user.ID][]string)}
}

func (m *mockNotifier) Send(_ context.Context, id user.ID, text string) error {
	if m.sendErr != nil {
		return m.sendErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent[id] = append(m.sent[id], text)
	return nil
}

func (m *mockNotifier) Alert(_ context.Context, text string) error {
	if m.alertErr != nil {
		return m.alertErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.alerts = append(m.alerts, text)
	return nil
}

func (m *mockNotifier) sentTo(id user.ID) []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sent[id]
}

// mockTrManager serializes transactions with a mutex and rolls the
// mocks back on error, which is close enough to the database manager
// for service-level tests.
type mockTrManager struct {
	accounts    *mockAccountRepository
	withdrawals *mockWithdrawalRepository
	mu          sync.Mutex
}

var _ trm.Manager = (*mockTrManager)(nil)

func (m *mockTrManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	balances := m.accounts.snapshot()
	items := m.withdrawals.snapshot()

	if err := fn(ctx); err != nil {
		m.accounts.restore(balances)
		m.withdrawals.restore(items)
		return err
	}
	return nil
}

func (m *mockTrManager) DoWithSettings(
	ctx context.Context, _ trm.Settings, fn func(ctx context.Context) error,
) error {
	return m.Do(ctx, fn)
}
