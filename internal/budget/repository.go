package budget

import (
	"context"
	"time"
)

// Repository is the row store for accounts and transactions.
//
// Error contract:
//   - CreateAccount returns common.ErrDuplicateAccount when the name is taken.
//   - GetAccountByName returns common.ErrNotFound when no such account exists.
//   - Balance returns common.ErrNotFound for an unknown account id.
type Repository interface {
	CreateAccount(ctx context.Context, account *Account) (*Account, error)
	GetAccountByName(ctx context.Context, name string) (*Account, error)
	ListAccounts(ctx context.Context) ([]Account, error)
	AddTransaction(ctx context.Context, tx *Transaction) error
	Balance(ctx context.Context, accountID string) (int64, error)
	SpendingByCategory(ctx context.Context, from, to time.Time) ([]CategoryTotal, error)
}
