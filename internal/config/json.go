package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/akarpov87/budgetvault/internal/flagx"
	"github.com/akarpov87/budgetvault/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
// It relies on timex.Duration so JSON can specify the delay either as a
// string like "2s" or as integer nanoseconds. After parsing, values are
// copied into the runtime Config (which uses time.Duration).
type JsonConfig struct {
	DatabasePath     string         `json:"database_path"`
	VaultService     string         `json:"vault_service"`
	FailedLoginDelay timex.Duration `json:"failed_login_delay"`
}

// parseJson overlays Config with values loaded from a JSON file.
//
// Lookup order for the JSON file path:
//  1. Command-line flags (-c or -config) via flagx.JsonConfigFlags().
//  2. If empty, no JSON is loaded and the function returns.
//
// Behavior:
//   - Reads and unmarshals the JSON into JsonConfig.
//   - Copies known fields into the provided Config.
//   - Panics on read or unmarshal errors (caller should recover if desired).
//
// Intended usage is: defaults -> parseJson -> parseFlags, where later stages
// override earlier ones.
func parseJson(cfg *Config) {
	// Resolve file path from flags.
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.DatabasePath != "" {
		cfg.DatabasePath = jc.DatabasePath
	}
	if jc.VaultService != "" {
		cfg.VaultService = jc.VaultService
	}
	if jc.FailedLoginDelay.Duration != 0 {
		cfg.FailedLoginDelay = time.Duration(jc.FailedLoginDelay.Duration)
	}
}
