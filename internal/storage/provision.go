// Package storage provisions and opens the local encrypted database.
//
// The database file is encrypted with SQLCipher; its passphrase is a random
// 256-bit secret generated once per installation and kept in the OS
// credential vault. Provisioning is idempotent and never overwrites an
// existing database file.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"

	_ "github.com/mutecomm/go-sqlcipher/v4"
	"github.com/pressly/goose/v3"

	"github.com/akarpov87/budgetvault/internal/common"
	"github.com/akarpov87/budgetvault/internal/filex"
	"github.com/akarpov87/budgetvault/internal/logging"
	"github.com/akarpov87/budgetvault/internal/randx"
	"github.com/akarpov87/budgetvault/internal/storage/migrations"
	"github.com/akarpov87/budgetvault/internal/vault"
)

// passphraseBytes is the entropy of a generated passphrase: 32 random bytes,
// hex encoded to 64 characters.
const passphraseBytes = 32

// openDatabase is a test seam: tests swap it to open a plain in-memory
// database instead of a SQLCipher file.
var openDatabase = func(path, passphrase string) (*sql.DB, error) {
	dsn := fmt.Sprintf("file:%s?_pragma_key=%s&_pragma_cipher_page_size=4096",
		path, url.QueryEscape(passphrase))
	return sql.Open("sqlite3", dsn)
}

// Result is the outcome of a successful Provision call.
type Result struct {
	DB *sql.DB

	// UnstoredPassphrase is non-empty when a passphrase was generated but
	// could not be saved in the vault. The caller must show it to the
	// operator for manual safekeeping: the next run will not be able to
	// open the file without it.
	UnstoredPassphrase string
}

// Provisioner creates or opens the encrypted database at a given path,
// sourcing the passphrase from a SecretStore.
type Provisioner struct {
	store vault.SecretStore
	log   logging.Logger
}

func NewProvisioner(store vault.SecretStore, log logging.Logger) *Provisioner {
	return &Provisioner{store: store, log: log}
}

// Provision resolves the database passphrase, opens (creating if necessary)
// the encrypted database file at path, and applies pending migrations.
// Calling it again with the same path and vault contents is a no-op beyond
// reopening the handle.
//
// Passphrase resolution:
//   - present in the vault: use it.
//   - absent, no database file: generate a new one and attempt to store it.
//     A vault store failure is non-fatal; the run continues with the
//     in-memory value and Result.UnstoredPassphrase carries it so the
//     operator can record it.
//   - absent, database file present: the file can never be opened again
//     without the lost secret, so this is common.ErrPassphraseLost and
//     requires operator intervention. Regenerating here would silently
//     orphan the existing file.
func (p *Provisioner) Provision(ctx context.Context, path string) (*Result, error) {
	fileExists, err := filex.Exists(path)
	if err != nil {
		return nil, fmt.Errorf("stat database file: %w", err)
	}

	res := &Result{}

	passphrase, err := p.store.Get(vault.PassphraseKey)
	switch {
	case err == nil:
		// use stored passphrase
	case errors.Is(err, common.ErrSecretNotFound):
		if fileExists {
			p.log.Error(ctx, "database passphrase missing from vault", "path", path)
			return nil, common.ErrPassphraseLost
		}

		passphrase, err = randx.MakeRandHexString(passphraseBytes)
		if err != nil {
			return nil, fmt.Errorf("generate passphrase: %w", err)
		}

		if setErr := p.store.Set(vault.PassphraseKey, passphrase); setErr != nil {
			p.log.Warn(ctx, "could not store database passphrase in vault; operator must record it",
				"error", setErr)
			res.UnstoredPassphrase = passphrase
		} else {
			p.log.Info(ctx, "generated and stored new database passphrase")
		}
	default:
		return nil, fmt.Errorf("read passphrase from vault: %w", err)
	}

	if _, err := filex.EnsureParentDir(path); err != nil {
		return nil, err
	}

	db, err := openDatabase(path, passphrase)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("unlock database: %w", err)
	}

	if err := runMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply migrations: %w", err)
	}

	res.DB = db
	return res, nil
}

func runMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return err
	}

	return goose.UpContext(ctx, db, ".")
}
