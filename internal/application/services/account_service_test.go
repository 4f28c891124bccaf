package services

import (
	"context"
	"testing"

	"github.com/stayhub/wallet-service/internal/application/errs"
	"github.com/stayhub/wallet-service/internal/domain/entities/user"
	"github.com/stayhub/wallet-service/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAccountFixture(t *testing.T, balances map[user.ID]int64) (*AccountService, *mockAccountRepository) {
	t.Helper()

	repo := newMockAccountRepository(balances)
	service, err := NewAccountService(repo, logger.NewNop())
	require.NoError(t, err)

	return service, repo
}

func TestGetAccount(t *testing.T) {
	ctx := context.Background()
	service, _ := newAccountFixture(t, map[user.ID]int64{1: 50000})

	account, err := service.GetAccount(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(50000), account.Balance)

	_, err = service.GetAccount(ctx, 42)
	require.ErrorIs(t, err, errs.ErrNotFound)
}

func TestDebit(t *testing.T) {
	ctx := context.Background()
	service, repo := newAccountFixture(t, map[user.ID]int64{1: 50000})

	require.NoError(t, service.Debit(ctx, 1, 20000))
	assert.Equal(t, int64(30000), repo.balanceOf(1))

	// Balance may never go below zero.
	err := service.Debit(ctx, 1, 30001)
	require.ErrorIs(t, err, errs.ErrNotEnoughFunds)
	assert.Equal(t, int64(30000), repo.balanceOf(1))
}

func TestDebit_NonPositiveAmount(t *testing.T) {
	ctx := context.Background()
	service, repo := newAccountFixture(t, map[user.ID]int64{1: 50000})

	require.ErrorIs(t, service.Debit(ctx, 1, 0), errs.ErrInvalidRequest)
	require.ErrorIs(t, service.Debit(ctx, 1, -100), errs.ErrInvalidRequest)
	assert.Equal(t, int64(50000), repo.balanceOf(1))
}

func TestCredit(t *testing.T) {
	ctx := context.Background()
	service, repo := newAccountFixture(t, map[user.ID]int64{1: 50000})

	require.NoError(t, service.Credit(ctx, 1, 25000))
	assert.Equal(t, int64(75000), repo.balanceOf(1))

	require.ErrorIs(t, service.Credit(ctx, 1, 0), errs.ErrInvalidRequest)
	require.ErrorIs(t, service.Credit(ctx, 42, 100), errs.ErrNotFound)
}
