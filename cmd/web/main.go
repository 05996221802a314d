package main

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
	"github.com/donseba/go-htmx"
	"github.com/joho/godotenv"
	"github.com/smarthealthquote/smarthealthquote/internal/broker"
	"github.com/smarthealthquote/smarthealthquote/internal/envstruct"
	"github.com/smarthealthquote/smarthealthquote/internal/errors"
	"github.com/smarthealthquote/smarthealthquote/internal/logging"
	"github.com/smarthealthquote/smarthealthquote/internal/pprofserver"
	"github.com/smarthealthquote/smarthealthquote/internal/repositories"
	"github.com/smarthealthquote/smarthealthquote/internal/sqlite"
	"github.com/smarthealthquote/smarthealthquote/internal/wizard"
)

type application struct {
	logger         *slog.Logger
	sessionManager *scs.SessionManager
	providers      *repositories.ProviderRepository
	wizards        *wizard.Store
	turns          *broker.ChannelBroker[string, wizard.Event]
	htmx           *htmx.HTMX
}

type config struct {
	Addr      string `env:"SMARTHEALTHQUOTE_ADDR" envDefault:"localhost:4000"`
	SQLiteURL string `env:"SMARTHEALTHQUOTE_SQLITE_URL" envDefault:"./smarthealthquote.sqlite"`
	// PprofPort is the localhost port for the pprof server. Empty disables it.
	PprofPort  string        `env:"SMARTHEALTHQUOTE_PPROF_PORT" envDefault:""`
	ReplyDelay time.Duration `env:"SMARTHEALTHQUOTE_REPLY_DELAY" envDefault:"900ms"`
	QuoteDelay time.Duration `env:"SMARTHEALTHQUOTE_QUOTE_DELAY" envDefault:"2500ms"`
	WizardTTL  time.Duration `env:"SMARTHEALTHQUOTE_WIZARD_TTL" envDefault:"1h"`
}

func main() {
	loggerHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level:     slog.LevelDebug,
		AddSource: true,
	})
	logger := slog.New(logging.NewContextHandler(loggerHandler))

	ctx := context.Background()
	if err := run(ctx, logger, os.LookupEnv); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "server failed", errors.SlogError(err))
		os.Exit(1)
	}
}

// run wires the application and starts the server. It is the testable
// counterpart of main: tests inject their own logger and environment.
func run(ctx context.Context, logger *slog.Logger, lookupEnv func(string) (string, bool)) error {
	// The .env file is an optional convenience for local development.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return errors.Wrap(err, "load .env")
	}

	var cfg config
	if err := envstruct.Populate(&cfg, lookupEnv); err != nil {
		return errors.Wrap(err, "parse config")
	}

	if cfg.PprofPort != "" {
		// Listens on localhost so that it's not open to the world.
		pprofserver.Launch(cfg.PprofPort, logger)
	}

	db, err := sqlite.NewDatabase(ctx, cfg.SQLiteURL, logger)
	if err != nil {
		return errors.Wrap(err, "open database", slog.String("url", cfg.SQLiteURL))
	}
	defer func() {
		_ = db.Close()
	}()
	go db.StartDatabaseOptimizer(ctx)

	sessionManager := scs.New()
	sessionManager.Store = sqlite3store.NewWithCleanupInterval(db.ReadWrite.DB, 24*time.Hour)
	sessionManager.Lifetime = 12 * time.Hour

	wizards := wizard.NewStore(wizard.Config{
		ReplyDelay: cfg.ReplyDelay,
		QuoteDelay: cfg.QuoteDelay,
		Quoter:     wizard.StaticQuoter{},
		Logger:     logger,
	}, cfg.WizardTTL, logger)
	go wizards.StartCleanup(ctx, cfg.WizardTTL/4)

	turns := broker.NewChannelBroker[string, wizard.Event]()
	go turns.Start()
	defer turns.Stop()

	app := application{
		logger:         logger,
		sessionManager: sessionManager,
		providers:      repositories.NewProviderRepository(db, logger),
		wizards:        wizards,
		turns:          turns,
		htmx:           htmx.New(),
	}

	return app.configureAndStartServer(ctx, cfg.Addr)
}
