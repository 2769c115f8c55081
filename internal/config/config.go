package config

import "time"

// Config holds runtime settings for the BudgetVault CLI.
//
// Fields:
//   - DatabasePath: location of the encrypted SQLite database file.
//   - VaultService: service name under which the database passphrase is
//     stored in the OS credential vault.
//   - FailedLoginDelay: pause inserted after a failed login attempt before
//     the prompt returns.
type Config struct {
	DatabasePath     string
	VaultService     string
	FailedLoginDelay time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DatabasePath = "budgetvault.db"
	c.VaultService = "budgetvault"
	c.FailedLoginDelay = 2 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
