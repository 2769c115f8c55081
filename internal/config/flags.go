package config

import (
	"flag"
	"os"
	"time"

	"github.com/akarpov87/budgetvault/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-d string   path to the encrypted database file (default from Config)
//	-s string   vault service name (default from Config)
//	-w int      failed-login delay in seconds (default from Config)
//
// Note: The function filters os.Args to only include the flags it knows
// about, using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	// Filter args to include only those handled here.
	args := flagx.FilterArgs(os.Args[1:], []string{"-d", "-s", "-w"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "path to the encrypted database file")
	fs.StringVar(&cfg.VaultService, "s", cfg.VaultService, "credential vault service name")
	failedLoginDelay := fs.Int("w", int(cfg.FailedLoginDelay.Seconds()), "failed-login delay (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.FailedLoginDelay = time.Duration(*failedLoginDelay) * time.Second
}
