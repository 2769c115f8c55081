package budget

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/akarpov87/budgetvault/internal/common"
	"github.com/akarpov87/budgetvault/internal/dbx"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) CreateAccount(ctx context.Context, account *Account) (*Account, error) {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO accounts (id, name, kind, opening_balance)
		VALUES (?, ?, ?, ?)
	`, account.ID, account.Name, string(account.Kind), account.OpeningBalance)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return nil, common.ErrDuplicateAccount
		}
		return nil, fmt.Errorf("failed to insert account %q: %w", account.Name, err)
	}
	return account, nil
}

func (r *SQLiteRepository) GetAccountByName(ctx context.Context, name string) (*Account, error) {
	account := &Account{}
	var kind string
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, kind, opening_balance, created_at
		FROM accounts
		WHERE name = ?
	`, name).Scan(&account.ID, &account.Name, &kind, &account.OpeningBalance, &account.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get account %q: %w", name, err)
	}
	account.Kind = AccountKind(kind)
	return account, nil
}

func (r *SQLiteRepository) ListAccounts(ctx context.Context) ([]Account, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, kind, opening_balance, created_at
		FROM accounts
		ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer rows.Close()

	var accounts []Account
	for rows.Next() {
		var a Account
		var kind string
		if err := rows.Scan(&a.ID, &a.Name, &kind, &a.OpeningBalance, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan account row: %w", err)
		}
		a.Kind = AccountKind(kind)
		accounts = append(accounts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate account rows: %w", err)
	}
	return accounts, nil
}

func (r *SQLiteRepository) AddTransaction(ctx context.Context, tx *Transaction) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO transactions (id, account_id, category, amount, note, occurred_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, tx.ID, tx.AccountID, tx.Category, tx.Amount, tx.Note, tx.OccurredAt)
	if err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Balance(ctx context.Context, accountID string) (int64, error) {
	var balance int64
	err := r.db.QueryRowContext(ctx, `
		SELECT a.opening_balance + COALESCE(SUM(t.amount), 0)
		FROM accounts a
		LEFT JOIN transactions t ON t.account_id = a.id
		WHERE a.id = ?
		GROUP BY a.id
	`, accountID).Scan(&balance)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, common.ErrNotFound
		}
		return 0, fmt.Errorf("failed to compute balance: %w", err)
	}
	return balance, nil
}

func (r *SQLiteRepository) SpendingByCategory(ctx context.Context, from, to time.Time) ([]CategoryTotal, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT category, SUM(amount)
		FROM transactions
		WHERE amount < 0 AND occurred_at >= ? AND occurred_at < ?
		GROUP BY category
		ORDER BY SUM(amount)
	`, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query spending: %w", err)
	}
	defer rows.Close()

	var totals []CategoryTotal
	for rows.Next() {
		var ct CategoryTotal
		if err := rows.Scan(&ct.Category, &ct.Total); err != nil {
			return nil, fmt.Errorf("failed to scan spending row: %w", err)
		}
		totals = append(totals, ct)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate spending rows: %w", err)
	}
	return totals, nil
}
