package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/akarpov87/budgetvault/internal/budget"
	"github.com/akarpov87/budgetvault/internal/common"
)

// nowFn is a test seam for the clock.
var nowFn = time.Now

// NewAccount prompts for an account name, kind and opening balance and
// creates the account.
func (a *App) NewAccount(ctx context.Context) error {
	if !a.isLoggedIn() {
		fmt.Println("Log in first.")
		return nil
	}

	name, err := getSimpleText(a.reader, "Account name", os.Stdout)
	if err != nil {
		return err
	}

	kind, err := getSimpleText(a.reader, "Kind (cash, checking, savings, credit)", os.Stdout)
	if err != nil {
		return err
	}

	opening, err := getSimpleText(a.reader, "Opening balance (e.g. 125.00)", os.Stdout)
	if err != nil {
		return err
	}
	cents, err := ParseCents(opening)
	if err != nil {
		fmt.Println("Not a valid amount.")
		return err
	}

	if _, err := a.budget.CreateAccount(ctx, name, budget.AccountKind(kind), cents); err != nil {
		if errors.Is(err, common.ErrDuplicateAccount) {
			fmt.Println("An account with that name already exists.")
		} else {
			a.log.Error(ctx, "error creating account", "error", err)
			fmt.Println(err.Error())
		}
		return err
	}

	fmt.Println("Account created.")
	return nil
}

// Accounts lists all accounts with their kinds.
func (a *App) Accounts(ctx context.Context) error {
	if !a.isLoggedIn() {
		fmt.Println("Log in first.")
		return nil
	}

	accounts, err := a.budget.ListAccounts(ctx)
	if err != nil {
		a.log.Error(ctx, "error listing accounts", "error", err)
		return err
	}
	if len(accounts) == 0 {
		fmt.Println("No accounts yet. Use 'newaccount' to create one.")
		return nil
	}

	for _, acc := range accounts {
		fmt.Printf("  %-20s %s\n", acc.Name, acc.Kind)
	}
	return nil
}

// AddTransaction records one movement on an account. Amounts are entered as
// decimal money; spending is negative, income positive.
func (a *App) AddTransaction(ctx context.Context) error {
	if !a.isLoggedIn() {
		fmt.Println("Log in first.")
		return nil
	}

	account, err := getSimpleText(a.reader, "Account name", os.Stdout)
	if err != nil {
		return err
	}
	category, err := getSimpleText(a.reader, "Category", os.Stdout)
	if err != nil {
		return err
	}
	amountText, err := getSimpleText(a.reader, "Amount (negative for spending, e.g. -12.50)", os.Stdout)
	if err != nil {
		return err
	}
	amount, err := ParseCents(amountText)
	if err != nil {
		fmt.Println("Not a valid amount.")
		return err
	}
	note, err := getSimpleText(a.reader, "Note (optional)", os.Stdout)
	if err != nil {
		return err
	}

	if _, err := a.budget.AddTransaction(ctx, account, category, amount, note, nowFn()); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			fmt.Println("No account with that name.")
		} else {
			a.log.Error(ctx, "error adding transaction", "error", err)
			fmt.Println(err.Error())
		}
		return err
	}

	fmt.Println("Recorded.")
	return nil
}

// Balance shows the current balance of one account.
func (a *App) Balance(ctx context.Context) error {
	if !a.isLoggedIn() {
		fmt.Println("Log in first.")
		return nil
	}

	account, err := getSimpleText(a.reader, "Account name", os.Stdout)
	if err != nil {
		return err
	}

	cents, err := a.budget.Balance(ctx, account)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			fmt.Println("No account with that name.")
		} else {
			a.log.Error(ctx, "error reading balance", "error", err)
		}
		return err
	}

	fmt.Printf("Balance: %s\n", FormatCents(cents))
	return nil
}

// Report prints this month's spending per category.
func (a *App) Report(ctx context.Context) error {
	if !a.isLoggedIn() {
		fmt.Println("Log in first.")
		return nil
	}

	totals, err := a.budget.MonthlySpending(ctx, nowFn())
	if err != nil {
		a.log.Error(ctx, "error building report", "error", err)
		return err
	}
	if len(totals) == 0 {
		fmt.Println("No spending recorded this month.")
		return nil
	}

	for _, t := range totals {
		fmt.Printf("  %-20s %s\n", t.Category, FormatCents(t.Total))
	}
	return nil
}
