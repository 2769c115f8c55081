// Package budget implements the bookkeeping behind the application: accounts,
// transactions and simple spending reports over the encrypted database.
package budget

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/akarpov87/budgetvault/internal/logging"
)

type Service struct {
	repo Repository
	log  logging.Logger
}

func NewService(repo Repository, log logging.Logger) *Service {
	return &Service{repo: repo, log: log}
}

func validKind(kind AccountKind) bool {
	switch kind {
	case KindCash, KindChecking, KindSavings, KindCredit:
		return true
	}
	return false
}

// CreateAccount validates and persists a new account.
func (s *Service) CreateAccount(ctx context.Context, name string, kind AccountKind, openingBalance int64) (*Account, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("account name must not be empty")
	}
	if !validKind(kind) {
		return nil, fmt.Errorf("unknown account kind %q", kind)
	}

	account := &Account{
		ID:             uuid.NewString(),
		Name:           name,
		Kind:           kind,
		OpeningBalance: openingBalance,
		CreatedAt:      time.Now(),
	}

	created, err := s.repo.CreateAccount(ctx, account)
	if err != nil {
		return nil, err
	}

	s.log.Info(ctx, "account created", "name", created.Name, "kind", created.Kind)
	return created, nil
}

// AddTransaction records a movement on the named account. Negative amounts
// are spending, positive amounts income; amounts are in cents.
func (s *Service) AddTransaction(ctx context.Context, accountName, category string, amount int64, note string, occurredAt time.Time) (*Transaction, error) {
	category = strings.TrimSpace(category)
	if category == "" {
		return nil, fmt.Errorf("category must not be empty")
	}
	if amount == 0 {
		return nil, fmt.Errorf("amount must not be zero")
	}

	account, err := s.repo.GetAccountByName(ctx, accountName)
	if err != nil {
		return nil, err
	}

	tx := &Transaction{
		ID:         uuid.NewString(),
		AccountID:  account.ID,
		Category:   category,
		Amount:     amount,
		Note:       note,
		OccurredAt: occurredAt,
	}

	if err := s.repo.AddTransaction(ctx, tx); err != nil {
		return nil, err
	}
	return tx, nil
}

// ListAccounts returns all accounts in name order.
func (s *Service) ListAccounts(ctx context.Context) ([]Account, error) {
	return s.repo.ListAccounts(ctx)
}

// Balance returns the current balance of the named account in cents.
func (s *Service) Balance(ctx context.Context, accountName string) (int64, error) {
	account, err := s.repo.GetAccountByName(ctx, accountName)
	if err != nil {
		return 0, err
	}
	return s.repo.Balance(ctx, account.ID)
}

// MonthlySpending reports spending per category for the month containing day.
func (s *Service) MonthlySpending(ctx context.Context, day time.Time) ([]CategoryTotal, error) {
	from := time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, day.Location())
	to := from.AddDate(0, 1, 0)
	return s.repo.SpendingByCategory(ctx, from, to)
}
