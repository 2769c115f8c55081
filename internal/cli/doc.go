// Package cli provides the interactive BudgetVault command-line client.
//
// It wires configuration, the OS credential vault, the encrypted database and
// an interactive REPL. Typical flow: provision the database (creating it and
// its passphrase on first run), then execute user commands.
//
// Key features:
//   - Sign up with a password and three security questions
//   - Login / Logout against locally stored Argon2id hashes
//   - Account recovery via security questions, followed by a password reset
//   - Accounts, transactions, balances and monthly spending reports
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
