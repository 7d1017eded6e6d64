package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
	"github.com/getSweetSpotcl/fitai/internal/envstruct"
	"github.com/getSweetSpotcl/fitai/internal/errors"
	"github.com/getSweetSpotcl/fitai/internal/flightrecorder"
	"github.com/getSweetSpotcl/fitai/internal/history"
	"github.com/getSweetSpotcl/fitai/internal/logging"
	"github.com/getSweetSpotcl/fitai/internal/pprofserver"
	"github.com/getSweetSpotcl/fitai/internal/routine"
	"github.com/getSweetSpotcl/fitai/internal/sqlite"
)

type application struct {
	logger           *slog.Logger
	sessionManager   *scs.SessionManager
	repo             *history.Repository
	routineGenerator *routine.Generator
	flightRecorder   *flightrecorder.Service
}

type config struct {
	// Addr is the address to listen on. It's possible to choose the address dynamically with localhost:0.
	Addr string `env:"FITAI_ADDR" envDefault:"localhost:8080"`
	// SqliteURL is the URL to the SQLite database. You can use ":memory:" for an ethereal in-memory database.
	SqliteURL string `env:"FITAI_SQLITE_URL" envDefault:"./fitai.sqlite3"`
	// OpenAIAPIKey enables AI routine generation when set.
	OpenAIAPIKey string `env:"OPENAI_API_KEY" envDefault:""`
	// PProfAddr is the optional address to listen on for the pprof server.
	PProfAddr string `env:"FITAI_PPROF_ADDR" envDefault:""`
	// TracesDir enables flight recording of timed-out requests when set.
	TracesDir string `env:"FITAI_TRACES_DIR" envDefault:""`
	// SessionLifetimeHours controls how long an API session stays valid.
	SessionLifetimeHours int `env:"FITAI_SESSION_LIFETIME_HOURS" envDefault:"12"`
	// SecureCookies should only be disabled for local plain-HTTP testing.
	SecureCookies bool `env:"FITAI_SECURE_COOKIES" envDefault:"true"`
}

func run(ctx context.Context, logger *slog.Logger, lookupEnv func(string) (string, bool)) error {
	var (
		cancel context.CancelFunc
		err    error
	)

	ctx, cancel = signal.NotifyContext(ctx, os.Interrupt)
	defer cancel()

	var cfg config
	if err = envstruct.Populate(&cfg, lookupEnv); err != nil {
		return errors.Wrap(err, "populate config")
	}

	if cfg.PProfAddr != "" {
		pprofserver.Launch(ctx, cfg.PProfAddr, logger)
	}

	db, err := sqlite.NewDatabase(ctx, cfg.SqliteURL, logger)
	if err != nil {
		return errors.Wrap(err, "open db", slog.String("url", cfg.SqliteURL))
	}
	logger.LogAttrs(ctx, slog.LevelInfo, "connected to db")

	var recorder *flightrecorder.Service
	if cfg.TracesDir != "" {
		if recorder, err = flightrecorder.New(flightrecorder.Config{
			Logger:          logger,
			TracesDirectory: cfg.TracesDir,
		}); err != nil {
			return errors.Wrap(err, "new flight recorder")
		}
		if err = recorder.Start(ctx); err != nil {
			return errors.Wrap(err, "start flight recorder")
		}
		defer recorder.Stop(ctx)
	}

	var generator *routine.Generator
	if cfg.OpenAIAPIKey != "" {
		generator = routine.NewGenerator(cfg.OpenAIAPIKey, logger)
	}

	app := application{
		logger:           logger,
		sessionManager:   initializeSessionManager(db, cfg),
		repo:             history.NewRepository(db, logger),
		routineGenerator: generator,
		flightRecorder:   recorder,
	}

	if err = app.configureAndStartServer(ctx, cfg.Addr, app.routes()); err != nil {
		return errors.Wrap(err, "start server")
	}
	return nil
}

func initializeSessionManager(dbs *sqlite.Database, cfg config) *scs.SessionManager {
	sessionManager := scs.New()
	sessionManager.Store = sqlite3store.NewWithCleanupInterval(dbs.ReadWrite, 24*time.Hour) //nolint:mnd // day
	sessionManager.Lifetime = time.Duration(cfg.SessionLifetimeHours) * time.Hour
	sessionManager.Cookie.Persist = true
	sessionManager.Cookie.Secure = cfg.SecureCookies
	sessionManager.Cookie.HttpOnly = true
	sessionManager.Cookie.SameSite = http.SameSiteStrictMode
	return sessionManager
}

func main() {
	ctx := context.Background()
	loggerHandler := logging.NewContextHandler(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		AddSource:   false,
		Level:       slog.LevelDebug,
		ReplaceAttr: nil,
	}))
	logger := slog.New(loggerHandler)
	if err := run(ctx, logger, os.LookupEnv); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "failure starting application", errors.SlogError(err))
		os.Exit(1)
	}
}
