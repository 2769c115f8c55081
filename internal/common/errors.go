// Package common defines shared sentinel errors used across the
// BudgetVault storage and credential layers. Callers should use
// errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound         = errors.New("not found")
	ErrDuplicateAccount = errors.New("account name already in use")

	// Sign-up validation errors (user-visible, recoverable).
	ErrDuplicateUsername     = errors.New("username already taken")
	ErrInvalidUsername       = errors.New("username must be alphanumeric and at least 3 characters")
	ErrInvalidPassword       = errors.New("password must be at least 8 characters with an uppercase letter, a lowercase letter and a digit")
	ErrInvalidQuestionChoice = errors.New("security questions must be three distinct entries from the question bank")
	ErrEmptyAnswer           = errors.New("security answers must not be empty")

	// Login errors. ErrInvalidCredentials covers both unknown username and
	// wrong password so the UI never reveals which field was wrong.
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUserNotFound       = errors.New("user not found")

	// ErrMalformedHash means a stored hash could not be parsed. This is a
	// data-integrity failure, not a wrong password; it must stay
	// distinguishable in diagnostics.
	ErrMalformedHash = errors.New("stored hash is malformed")

	// Vault errors.
	ErrSecretNotFound   = errors.New("secret not found in vault")
	ErrVaultUnavailable = errors.New("credential vault unavailable")
	ErrPassphraseLost   = errors.New("database file exists but its passphrase is missing from the vault")

	// Recovery errors.
	ErrIncompleteQuestions = errors.New("account recovery unavailable")
	ErrWrongAnswer         = errors.New("incorrect answer")
	ErrRecoveryFinished    = errors.New("recovery session already finished")
)
