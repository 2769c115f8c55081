package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/akarpov87/budgetvault/internal/budget"
	"github.com/akarpov87/budgetvault/internal/common"
	"github.com/akarpov87/budgetvault/internal/config"
	"github.com/akarpov87/budgetvault/internal/logging"
	"github.com/akarpov87/budgetvault/internal/recovery"
	"github.com/akarpov87/budgetvault/internal/storage"
	"github.com/akarpov87/budgetvault/internal/users"
	"github.com/akarpov87/budgetvault/internal/vault"
)

// userService is the account surface the CLI needs. *users.Service
// satisfies it; tests can provide a stub.
type userService interface {
	SignUp(ctx context.Context, reg users.Registration) (*users.User, error)
	Login(ctx context.Context, username, password string) (*users.User, error)
	ResetPassword(ctx context.Context, username, newPassword string) error
}

// recoveryService starts security-question recovery sessions.
type recoveryService interface {
	Start(ctx context.Context, username string) (*recovery.Session, error)
}

// budgetService is the bookkeeping surface the CLI needs.
type budgetService interface {
	CreateAccount(ctx context.Context, name string, kind budget.AccountKind, openingBalance int64) (*budget.Account, error)
	AddTransaction(ctx context.Context, accountName, category string, amount int64, note string, occurredAt time.Time) (*budget.Transaction, error)
	ListAccounts(ctx context.Context) ([]budget.Account, error)
	Balance(ctx context.Context, accountName string) (int64, error)
	MonthlySpending(ctx context.Context, day time.Time) ([]budget.CategoryTotal, error)
}

type App struct {
	config   *config.Config
	log      logging.Logger
	users    userService
	recovery recoveryService
	budget   budgetService
	userName string
	reader   *bufio.Reader
	close    func() error
}

// NewApp provisions the encrypted database and wires the services behind the
// REPL. On the first run this creates the database file and stores its
// passphrase in the OS credential vault.
//
// If the vault rejected the passphrase write, the generated passphrase is
// printed once so the operator can record it; losing it makes the database
// unreadable.
func NewApp(ctx context.Context, cfg *config.Config, log logging.Logger) (*App, error) {
	store, err := vault.NewKeyringStore(cfg.VaultService)
	if err != nil {
		return nil, fmt.Errorf("open credential vault: %w", err)
	}

	res, err := storage.NewProvisioner(store, log).Provision(ctx, cfg.DatabasePath)
	if err != nil {
		if errors.Is(err, common.ErrPassphraseLost) {
			return nil, fmt.Errorf("database %s exists but its passphrase is missing from the credential vault; restore the passphrase or remove the file: %w", cfg.DatabasePath, err)
		}
		return nil, err
	}

	if res.UnstoredPassphrase != "" {
		fmt.Fprintf(os.Stderr, "WARNING: the credential vault is unavailable. Record this passphrase now, it will not be shown again:\n%s\n", res.UnstoredPassphrase)
	}

	userRepo := users.NewSQLiteRepository(res.DB)
	budgetRepo := budget.NewSQLiteRepository(res.DB)

	return &App{
		config:   cfg,
		log:      log,
		users:    users.NewService(userRepo, log),
		recovery: recovery.NewFlow(userRepo, log),
		budget:   budget.NewService(budgetRepo, log),
		reader:   bufio.NewReader(os.Stdin),
		close:    res.DB.Close,
	}, nil
}

func (a *App) isLoggedIn() bool {
	return a.userName != ""
}

// Run starts the REPL and blocks until the user exits.
func (a *App) Run(ctx context.Context) {
	defer func() {
		if a.close != nil {
			if err := a.close(); err != nil {
				a.log.Error(ctx, "error closing database", "error", err)
			}
		}
	}()

	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}

func (a *App) getStatus() string {
	if a.userName == "" {
		return ""
	}
	return fmt.Sprintf("(%s)", a.userName)
}
