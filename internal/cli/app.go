package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"

	"github.com/Rhymond/go-money"
	"github.com/dmitrijs2005/budgetkeeper/internal/config"
	"github.com/dmitrijs2005/budgetkeeper/internal/cryptox"
	"github.com/dmitrijs2005/budgetkeeper/internal/kv"
	"github.com/dmitrijs2005/budgetkeeper/internal/logging"
	"github.com/dmitrijs2005/budgetkeeper/internal/services"
)

// App holds the services behind one interactive session.
type App struct {
	config   *config.Config
	log      logging.Logger
	store    kv.Store
	accounts services.AccountService
	session  services.SessionService
	ledger   services.LedgerService
	prefs    services.PrefsService
	forms    *services.FormValidator
	reader   *bufio.Reader
}

// StoreOptions maps configuration onto kv.Open options.
func StoreOptions(cfg *config.Config) kv.Options {
	return kv.Options{
		Backend:     cfg.Storage,
		DBPath:      cfg.DBPath,
		PostgresDSN: cfg.PostgresDSN,
		RedisAddr:   cfg.RedisAddr,
		RedisDB:     cfg.RedisDB,
	}
}

// NewApp opens the configured persistent store and builds an App reading
// from stdin.
func NewApp(ctx context.Context, cfg *config.Config, log logging.Logger) (*App, error) {
	store, err := openStore(ctx, StoreOptions(cfg))
	if err != nil {
		return nil, fmt.Errorf("open %s storage: %w", cfg.Storage, err)
	}

	app, err := newApp(cfg, log, store, bufio.NewReader(os.Stdin))
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	log.Debug(ctx, "storage opened", "backend", cfg.Storage)
	return app, nil
}

func newApp(cfg *config.Config, log logging.Logger, store kv.Store, reader *bufio.Reader) (*App, error) {
	hasher, err := cryptox.NewHasher(cfg.PasswordHasher)
	if err != nil {
		return nil, err
	}
	if money.GetCurrency(cfg.Currency) == nil {
		return nil, fmt.Errorf("unknown currency %q", cfg.Currency)
	}

	return &App{
		config:   cfg,
		log:      log,
		store:    store,
		accounts: services.NewAccountService(store, hasher, log),
		session:  services.NewSessionService(kv.NewMemoryStore(), cfg.SessionTTL),
		ledger:   services.NewLedgerService(store, log),
		prefs:    services.NewPrefsService(store),
		forms:    services.NewFormValidator(cfg.MinPasswordLength),
		reader:   reader,
	}, nil
}

// Run starts the REPL and closes the store when it returns.
func (a *App) Run(ctx context.Context) {
	defer func() {
		if err := a.Close(); err != nil {
			a.log.Error(ctx, "closing storage", "error", err)
		}
	}()
	a.Root(ctx)
}

// Close releases the persistent store.
func (a *App) Close() error {
	return a.store.Close()
}
