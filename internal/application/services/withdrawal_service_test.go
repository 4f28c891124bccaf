package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stayhub/wallet-service/internal/application/errs"
	"github.com/stayhub/wallet-service/internal/application/params"
	"github.com/stayhub/wallet-service/internal/domain/entities"
	"github.com/stayhub/wallet-service/internal/domain/entities/user"
	"github.com/stayhub/wallet-service/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testMinAmount = 10000

var testBank = entities.BankData{
	BankName:      "Bank Central",
	AccountNumber: "1234567890",
	AccountHolder: "Jane Host",
}

type withdrawalFixture struct {
	service     *WithdrawalService
	accounts    *mockAccountRepository
	withdrawals *mockWithdrawalRepository
	notifier    *mockNotifier
}

func newWithdrawalFixture(t *testing.T, balances map[user.ID]int64) *withdrawalFixture {
	t.Helper()

	accounts := newMockAccountRepository(balances)
	withdrawals := newMockWithdrawalRepository()
	notifier := newMockNotifier()

	accountService, err := NewAccountService(accounts, logger.NewNop())
	require.NoError(t, err)

	service, err := NewWithdrawalService(
		accountService,
		withdrawals,
		&mockTrManager{accounts: accounts, withdrawals: withdrawals},
		notifier,
		testMinAmount,
		"IDR",
		logger.NewNop(),
	)
	require.NoError(t, err)

	return &withdrawalFixture{
		service:     service,
		accounts:    accounts,
		withdrawals: withdrawals,
		notifier:    notifier,
	}
}

func TestCreateWithdrawal(t *testing.T) {
	ctx := context.Background()
	f := newWithdrawalFixture(t, map[user.ID]int64{1: 50000})

	created, err := f.service.Create(ctx, params.NewCreateWithdrawal(1, 20000, testBank))
	require.NoError(t, err)

	assert.Equal(t, entities.WithdrawalPending, created.Status)
	assert.Equal(t, int64(20000), created.Amount)
	assert.Equal(t, int64(30000), f.accounts.balanceOf(1))

	stored, err := f.withdrawals.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, entities.WithdrawalPending, stored.Status)

	require.Len(t, f.notifier.sentTo(1), 1)
	assert.Contains(t, f.notifier.sentTo(1)[0], "IDR 200.00")
	require.Len(t, f.notifier.alerts, 1)
}

func TestCreateWithdrawal_BelowMinimum(t *testing.T) {
	ctx := context.Background()
	f := newWithdrawalFixture(t, map[user.ID]int64{1: 50000})

	_, err := f.service.Create(ctx, params.NewCreateWithdrawal(1, testMinAmount-1, testBank))
	require.ErrorIs(t, err, errs.ErrInvalidRequest)

	assert.Equal(t, int64(50000), f.accounts.balanceOf(1))
	assert.Empty(t, f.withdrawals.items)
}

func TestCreateWithdrawal_InsufficientFunds(t *testing.T) {
	ctx := context.Background()
	f := newWithdrawalFixture(t, map[user.ID]int64{1: 5000})

	_, err := f.service.Create(ctx, params.NewCreateWithdrawal(1, 20000, testBank))
	require.ErrorIs(t, err, errs.ErrNotEnoughFunds)

	// Failed creation must leave no trace.
	assert.Equal(t, int64(5000), f.accounts.balanceOf(1))
	assert.Empty(t, f.withdrawals.items)
	assert.Empty(t, f.notifier.sentTo(1))
}

func TestCreateWithdrawal_InsertFailureRollsBackDebit(t *testing.T) {
	ctx := context.Background()
	f := newWithdrawalFixture(t, map[user.ID]int64{1: 50000})
	f.withdrawals.createErr = errors.New("connection reset")

	_, err := f.service.Create(ctx, params.NewCreateWithdrawal(1, 20000, testBank))
	require.Error(t, err)

	assert.Equal(t, int64(50000), f.accounts.balanceOf(1))
}

func TestCreateWithdrawal_BankDataRequired(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name string
		bank entities.BankData
	}{
		{
			name: "missing bank name",
			bank: entities.BankData{AccountNumber: "1234567890", AccountHolder: "Jane Host"},
		},
		{
			name: "missing account number",
			bank: entities.BankData{BankName: "Bank Central", AccountHolder: "Jane Host"},
		},
		{
			name: "missing account holder",
			bank: entities.BankData{BankName: "Bank Central", AccountNumber: "1234567890"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newWithdrawalFixture(t, map[user.ID]int64{1: 50000})

			_, err := f.service.Create(ctx, params.NewCreateWithdrawal(1, 20000, tt.bank))
			require.ErrorIs(t, err, errs.ErrInvalidRequest)

			assert.Equal(t, int64(50000), f.accounts.balanceOf(1))
		})
	}
}

func TestCreateWithdrawal_ConcurrentRequests(t *testing.T) {
	ctx := context.Background()
	f := newWithdrawalFixture(t, map[user.ID]int64{1: 50000})

	// Two racing requests of 30000 against 50000: exactly one may win.
	var wg sync.WaitGroup
	results := make(chan error, 2)

	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.service.Create(ctx, params.NewCreateWithdrawal(1, 30000, testBank))
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var succeeded, rejected int
	for err := range results {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, errs.ErrNotEnoughFunds):
			rejected++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, rejected)
	assert.Equal(t, int64(20000), f.accounts.balanceOf(1))
	assert.Len(t, f.withdrawals.items, 1)
}

func TestApproveWithdrawal(t *testing.T) {
	ctx := context.Background()
	f := newWithdrawalFixture(t, map[user.ID]int64{1: 50000})

	created, err := f.service.Create(ctx, params.NewCreateWithdrawal(1, 30000, testBank))
	require.NoError(t, err)
	require.Equal(t, int64(20000), f.accounts.balanceOf(1))

	err = f.service.Approve(ctx, params.NewApproveWithdrawal(created.ID, "TX-001", "/documents/proof.jpg"))
	require.NoError(t, err)

	stored, err := f.withdrawals.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, entities.WithdrawalCompleted, stored.Status)
	assert.Equal(t, "TX-001", stored.TransactionReference)
	assert.Equal(t, "/documents/proof.jpg", stored.ProofDocumentRef)
	require.NotNil(t, stored.ResolvedAt)

	// Funds left the wallet at creation; approval must not touch them.
	assert.Equal(t, int64(20000), f.accounts.balanceOf(1))

	sent := f.notifier.sentTo(1)
	require.Len(t, sent, 2)
	assert.Contains(t, sent[1], "TX-001")

	// The second resolution loses and must not notify again.
	err = f.service.Approve(ctx, params.NewApproveWithdrawal(created.ID, "TX-002", "/documents/other.jpg"))
	require.ErrorIs(t, err, errs.ErrInvalidState)
	assert.Len(t, f.notifier.sentTo(1), 2)

	stored, err = f.withdrawals.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "TX-001", stored.TransactionReference)
}

func TestApproveWithdrawal_RefsRequired(t *testing.T) {
	ctx := context.Background()
	f := newWithdrawalFixture(t, map[user.ID]int64{1: 50000})

	created, err := f.service.Create(ctx, params.NewCreateWithdrawal(1, 30000, testBank))
	require.NoError(t, err)

	err = f.service.Approve(ctx, params.NewApproveWithdrawal(created.ID, "", "/documents/proof.jpg"))
	require.ErrorIs(t, err, errs.ErrInvalidRequest)

	err = f.service.Approve(ctx, params.NewApproveWithdrawal(created.ID, "TX-001", ""))
	require.ErrorIs(t, err, errs.ErrInvalidRequest)

	stored, err := f.withdrawals.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, entities.WithdrawalPending, stored.Status)
}

func TestApproveWithdrawal_NotFound(t *testing.T) {
	f := newWithdrawalFixture(t, nil)

	err := f.service.Approve(context.Background(),
		params.NewApproveWithdrawal(uuid.New(), "TX-001", "/documents/proof.jpg"))
	require.ErrorIs(t, err, errs.ErrNotFound)
}

func TestRejectWithdrawal(t *testing.T) {
	ctx := context.Background()
	f := newWithdrawalFixture(t, map[user.ID]int64{1: 30000})

	created, err := f.service.Create(ctx, params.NewCreateWithdrawal(1, 30000, testBank))
	require.NoError(t, err)
	require.Equal(t, int64(0), f.accounts.balanceOf(1))

	err = f.service.Reject(ctx, params.NewRejectWithdrawal(created.ID, "bank account mismatch"))
	require.NoError(t, err)

	// Rejection returns the debited funds exactly once.
	assert.Equal(t, int64(30000), f.accounts.balanceOf(1))

	stored, err := f.withdrawals.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, entities.WithdrawalCancelled, stored.Status)
	assert.Equal(t, "bank account mismatch", stored.AdminNote)

	sent := f.notifier.sentTo(1)
	require.Len(t, sent, 2)
	assert.Contains(t, sent[1], "bank account mismatch")

	err = f.service.Reject(ctx, params.NewRejectWithdrawal(created.ID, "again"))
	require.ErrorIs(t, err, errs.ErrInvalidState)
	assert.Equal(t, int64(30000), f.accounts.balanceOf(1))
	assert.Len(t, f.notifier.sentTo(1), 2)
}

func TestRejectApprovedWithdrawal(t *testing.T) {
	ctx := context.Background()
	f := newWithdrawalFixture(t, map[user.ID]int64{1: 50000})

	created, err := f.service.Create(ctx, params.NewCreateWithdrawal(1, 30000, testBank))
	require.NoError(t, err)

	err = f.service.Approve(ctx, params.NewApproveWithdrawal(created.ID, "TX-001", "/documents/proof.jpg"))
	require.NoError(t, err)

	err = f.service.Reject(ctx, params.NewRejectWithdrawal(created.ID, "changed my mind"))
	require.ErrorIs(t, err, errs.ErrInvalidState)
	assert.Equal(t, int64(20000), f.accounts.balanceOf(1))
}

func TestDeleteWithdrawal(t *testing.T) {
	ctx := context.Background()
	f := newWithdrawalFixture(t, map[user.ID]int64{1: 50000})

	created, err := f.service.Create(ctx, params.NewCreateWithdrawal(1, 30000, testBank))
	require.NoError(t, err)
	require.Equal(t, int64(20000), f.accounts.balanceOf(1))

	// Removing a pending request abandons the funds.
	err = f.service.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(20000), f.accounts.balanceOf(1))

	_, err = f.withdrawals.GetByID(ctx, created.ID)
	require.ErrorIs(t, err, errs.ErrNotFound)

	err = f.service.Delete(ctx, created.ID)
	require.ErrorIs(t, err, errs.ErrNotFound)
}

func TestWithdrawalNotifierFailureDoesNotFailOperations(t *testing.T) {
	ctx := context.Background()
	f := newWithdrawalFixture(t, map[user.ID]int64{1: 50000})
	f.notifier.sendErr = errors.New("telegram unavailable")
	f.notifier.alertErr = errors.New("telegram unavailable")

	created, err := f.service.Create(ctx, params.NewCreateWithdrawal(1, 30000, testBank))
	require.NoError(t, err)
	assert.Equal(t, int64(20000), f.accounts.balanceOf(1))

	err = f.service.Reject(ctx, params.NewRejectWithdrawal(created.ID, "note"))
	require.NoError(t, err)
	assert.Equal(t, int64(50000), f.accounts.balanceOf(1))
}

func TestListWithdrawals(t *testing.T) {
	ctx := context.Background()
	f := newWithdrawalFixture(t, map[user.ID]int64{1: 100000, 2: 100000})

	first, err := f.service.Create(ctx, params.NewCreateWithdrawal(1, 30000, testBank))
	require.NoError(t, err)

	otherBank := testBank
	otherBank.AccountHolder = "John Renter"
	_, err = f.service.Create(ctx, params.NewCreateWithdrawal(2, 40000, otherBank))
	require.NoError(t, err)

	err = f.service.Approve(ctx, params.NewApproveWithdrawal(first.ID, "TX-001", "/documents/proof.jpg"))
	require.NoError(t, err)

	completed, err := f.service.List(ctx, entities.WithdrawalFilter{Status: entities.WithdrawalCompleted})
	require.NoError(t, err)
	require.Len(t, completed, 1)
	assert.Equal(t, first.ID, completed[0].ID)

	matched, err := f.service.List(ctx, entities.WithdrawalFilter{Search: "Renter"})
	require.NoError(t, err)
	require.Len(t, matched, 1)
	assert.Equal(t, user.ID(2), matched[0].UserID)

	mine, err := f.service.ListByUser(ctx, 1)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, first.ID, mine[0].ID)
}
