package budget

import "time"

// AccountKind classifies an account.
type AccountKind string

const (
	KindCash     AccountKind = "cash"
	KindChecking AccountKind = "checking"
	KindSavings  AccountKind = "savings"
	KindCredit   AccountKind = "credit"
)

// Account is one bookkeeping account. Balances are kept in cents to avoid
// floating-point drift.
type Account struct {
	ID             string
	Name           string
	Kind           AccountKind
	OpeningBalance int64
	CreatedAt      time.Time
}

// Transaction is a single movement on an account: positive amounts are
// income, negative amounts are spending. Amounts are in cents.
type Transaction struct {
	ID         string
	AccountID  string
	Category   string
	Amount     int64
	Note       string
	OccurredAt time.Time
}

// CategoryTotal is one row of a spending report.
type CategoryTotal struct {
	Category string
	Total    int64
}
