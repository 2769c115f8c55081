package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	SignUp(ctx context.Context) error
	Login(ctx context.Context) error
	Recover(ctx context.Context) error
	ChangePassword(ctx context.Context) error
	NewAccount(ctx context.Context) error
	Accounts(ctx context.Context) error
	AddTransaction(ctx context.Context) error
	Balance(ctx context.Context) error
	Report(ctx context.Context) error
	Logout(ctx context.Context) error
}

// runREPL starts a simple read–eval–print loop for the BudgetVault CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Not logged in:
//	  - help           — show available commands
//	  - signup         — create an account
//	  - login          — authenticate
//	  - recover        — recover access via a security question
//	  - exit | quit    — leave the program
//
//	Logged in:
//	  - help           — show available commands
//	  - accounts       — list accounts
//	  - newaccount     — create an account
//	  - add            — record a transaction
//	  - balance        — show an account balance
//	  - report         — monthly spending by category
//	  - passwd         — change the password
//	  - logout         — log out
//	  - exit | quit    — leave the program
//
// Any errors returned by command handlers are ignored here; handlers should
// log their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("bv> %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: accounts, newaccount, add, balance, report, passwd, logout, exit")
			} else {
				printlnFn("Available commands: signup, login, recover, exit")
			}

		case "signup":
			_ = a.SignUp(ctx)

		case "login":
			_ = a.Login(ctx)

		case "recover":
			_ = a.Recover(ctx)

		case "passwd":
			_ = a.ChangePassword(ctx)

		case "newaccount":
			_ = a.NewAccount(ctx)

		case "accounts":
			_ = a.Accounts(ctx)

		case "add":
			_ = a.AddTransaction(ctx)

		case "balance":
			_ = a.Balance(ctx)

		case "report":
			_ = a.Report(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
