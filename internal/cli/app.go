package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"

	"shopcore/internal/auth"
	"shopcore/internal/cart"
	"shopcore/internal/config"
	"shopcore/internal/logging"
	"shopcore/internal/store"
)

// App wires the record store, the session manager and the cart service
// behind the REPL commands.
type App struct {
	config   *config.Config
	sessions *auth.Manager
	cart     *cart.Service
	log      logging.Logger
	reader   *bufio.Reader
}

func NewApp(cfg *config.Config, log logging.Logger) (*App, error) {
	ctx := context.Background()

	var st store.Store
	switch cfg.StoreDriver {
	case "postgres":
		s, err := store.OpenPostgres(ctx, cfg.DatabaseDSN)
		if err != nil {
			return nil, fmt.Errorf("opening postgres store: %w", err)
		}
		st = s
	case "sqlite", "":
		s, err := store.OpenSQLite(ctx, cfg.DatabaseDSN)
		if err != nil {
			return nil, fmt.Errorf("opening sqlite store: %w", err)
		}
		st = s
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}

	if cfg.SessionSecret == "" {
		secret, err := auth.LoadOrCreateSessionSecret(ctx, st, log)
		if err != nil {
			return nil, err
		}
		cfg.SessionSecret = secret
	}

	sessions := auth.NewManager(st, cfg, log)
	cartService := cart.NewService(st, sessions, log)

	return &App{
		config:   cfg,
		sessions: sessions,
		cart:     cartService,
		log:      log,
		reader:   bufio.NewReader(os.Stdin),
	}, nil
}

func (a *App) isLoggedIn(ctx context.Context) bool {
	return a.sessions.IsAuthenticated(ctx)
}

func (a *App) getStatus(ctx context.Context) string {
	sess, err := a.sessions.CurrentSession(ctx)
	if err != nil || sess == nil {
		return ""
	}
	if sess.IsAdmin {
		return fmt.Sprintf("(%s, admin)", sess.Email)
	}
	return fmt.Sprintf("(%s)", sess.Email)
}

// Run starts the REPL and blocks until the user exits or stdin closes.
func (a *App) Run(ctx context.Context) {
	printlnFn("Welcome to the storefront CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, func() string { return a.getStatus(ctx) }, scanner)
}
