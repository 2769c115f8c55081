// Package config loads runtime configuration for the BudgetVault CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-d string   path to the encrypted database file
//	-s string   credential vault service name
//	-w int      failed-login delay (seconds)
//
// # JSON schema
//
// The JSON loader uses timex.Duration for the delay, so values can be either
// strings like "2s" or integer nanoseconds:
//
//	{
//	  "database_path": "/home/me/.budgetvault/budget.db",
//	  "vault_service": "budgetvault",
//	  "failed_login_delay": "2s"
//	}
//
// Note: This package does not read environment variables directly; use the
// JSON file or flags to configure values.
package config
