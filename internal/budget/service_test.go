package budget

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akarpov87/budgetvault/internal/common"
	"github.com/akarpov87/budgetvault/internal/logging"
)

type fakeRepo struct {
	accounts     map[string]*Account
	transactions []*Transaction
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{accounts: make(map[string]*Account)}
}

func (f *fakeRepo) CreateAccount(_ context.Context, a *Account) (*Account, error) {
	if _, ok := f.accounts[a.Name]; ok {
		return nil, common.ErrDuplicateAccount
	}
	f.accounts[a.Name] = a
	return a, nil
}

func (f *fakeRepo) GetAccountByName(_ context.Context, name string) (*Account, error) {
	a, ok := f.accounts[name]
	if !ok {
		return nil, common.ErrNotFound
	}
	return a, nil
}

func (f *fakeRepo) ListAccounts(_ context.Context) ([]Account, error) {
	var out []Account
	for _, a := range f.accounts {
		out = append(out, *a)
	}
	return out, nil
}

func (f *fakeRepo) AddTransaction(_ context.Context, tx *Transaction) error {
	f.transactions = append(f.transactions, tx)
	return nil
}

func (f *fakeRepo) Balance(_ context.Context, accountID string) (int64, error) {
	var sum int64
	found := false
	for _, a := range f.accounts {
		if a.ID == accountID {
			sum = a.OpeningBalance
			found = true
		}
	}
	if !found {
		return 0, common.ErrNotFound
	}
	for _, tx := range f.transactions {
		if tx.AccountID == accountID {
			sum += tx.Amount
		}
	}
	return sum, nil
}

func (f *fakeRepo) SpendingByCategory(_ context.Context, from, to time.Time) ([]CategoryTotal, error) {
	totals := make(map[string]int64)
	for _, tx := range f.transactions {
		if tx.Amount < 0 && !tx.OccurredAt.Before(from) && tx.OccurredAt.Before(to) {
			totals[tx.Category] += tx.Amount
		}
	}
	var out []CategoryTotal
	for c, v := range totals {
		out = append(out, CategoryTotal{Category: c, Total: v})
	}
	return out, nil
}

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestCreateAccount_AssignsIDAndValidates(t *testing.T) {
	s := NewService(newFakeRepo(), testLogger())
	ctx := context.Background()

	a, err := s.CreateAccount(ctx, "  daily  ", KindChecking, 10_00)
	require.NoError(t, err)
	assert.NotEmpty(t, a.ID)
	assert.Equal(t, "daily", a.Name, "name is trimmed")

	_, err = s.CreateAccount(ctx, "", KindCash, 0)
	require.Error(t, err)

	_, err = s.CreateAccount(ctx, "x", AccountKind("bitcoin"), 0)
	require.Error(t, err)
}

func TestAddTransaction_ResolvesAccountByName(t *testing.T) {
	repo := newFakeRepo()
	s := NewService(repo, testLogger())
	ctx := context.Background()

	a, err := s.CreateAccount(ctx, "daily", KindChecking, 0)
	require.NoError(t, err)

	tx, err := s.AddTransaction(ctx, "daily", "groceries", -25_00, "market", time.Now())
	require.NoError(t, err)
	assert.Equal(t, a.ID, tx.AccountID)
	assert.NotEmpty(t, tx.ID)

	_, err = s.AddTransaction(ctx, "missing", "groceries", -25_00, "", time.Now())
	assert.True(t, errors.Is(err, common.ErrNotFound))

	_, err = s.AddTransaction(ctx, "daily", "", -25_00, "", time.Now())
	require.Error(t, err)

	_, err = s.AddTransaction(ctx, "daily", "groceries", 0, "", time.Now())
	require.Error(t, err)
}

func TestBalanceByName(t *testing.T) {
	s := NewService(newFakeRepo(), testLogger())
	ctx := context.Background()

	_, err := s.CreateAccount(ctx, "daily", KindChecking, 100_00)
	require.NoError(t, err)
	_, err = s.AddTransaction(ctx, "daily", "groceries", -30_00, "", time.Now())
	require.NoError(t, err)

	balance, err := s.Balance(ctx, "daily")
	require.NoError(t, err)
	assert.Equal(t, int64(70_00), balance)
}

func TestMonthlySpending_WindowCoversCalendarMonth(t *testing.T) {
	repo := newFakeRepo()
	s := NewService(repo, testLogger())
	ctx := context.Background()

	_, err := s.CreateAccount(ctx, "daily", KindChecking, 0)
	require.NoError(t, err)

	_, err = s.AddTransaction(ctx, "daily", "groceries", -10_00, "",
		time.Date(2025, 3, 31, 23, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	_, err = s.AddTransaction(ctx, "daily", "rent", -900_00, "",
		time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	totals, err := s.MonthlySpending(ctx, time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, totals, 1)
	assert.Equal(t, "groceries", totals[0].Category)
}
