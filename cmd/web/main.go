package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/myrjola/mesocycle/internal/catalog"
	"github.com/myrjola/mesocycle/internal/cloudsync"
	"github.com/myrjola/mesocycle/internal/envstruct"
	"github.com/myrjola/mesocycle/internal/errors"
	"github.com/myrjola/mesocycle/internal/flightrecorder"
	"github.com/myrjola/mesocycle/internal/logging"
	"github.com/myrjola/mesocycle/internal/sqlite"
	"github.com/myrjola/mesocycle/internal/workout"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"gopkg.in/natefinch/lumberjack.v2"
)

type application struct {
	logger         *slog.Logger
	db             *sqlite.Database
	workoutService *workout.Service
	// syncEngine is nil when no remote is configured.
	syncEngine *cloudsync.Engine
	// flightRecorder is nil when no traces directory is configured.
	flightRecorder *flightrecorder.Service
	registry       *prometheus.Registry
	userID         string
	exportDir      string
}

type config struct {
	// Addr is the address to listen on. It's possible to choose the address dynamically with localhost:0.
	Addr string `env:"MESO_ADDR" envDefault:"localhost:8081"`
	// SqliteURL is the URL to the SQLite database. You can use ":memory:" for an ethereal in-memory database.
	SqliteURL string `env:"MESO_SQLITE_URL" envDefault:"./mesocycle.sqlite3"`
	// PostgresDSN is the connection string of the sync backend. Sync is disabled when empty.
	PostgresDSN string `env:"MESO_POSTGRES_DSN" envDefault:""`
	// UserID is the remote user whose rows the stores sync with.
	UserID string `env:"MESO_USER_ID" envDefault:"local"`
	// SyncDebounce is the quiet period after a mutation before the store is pushed.
	SyncDebounce time.Duration `env:"MESO_SYNC_DEBOUNCE" envDefault:"2500ms"`
	// ExportDir is where data exports are written.
	ExportDir string `env:"MESO_EXPORT_DIR" envDefault:"./exports"`
	// TracesDirectory enables the flight recorder. Traces of timed out requests and failed syncs are written here.
	TracesDirectory string `env:"MESO_TRACES_DIRECTORY" envDefault:""`
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

	db, err := sqlite.NewDatabase(ctx, cfg.SqliteURL, logger)
	if err != nil {
		return errors.Wrap(err, "open db", slog.String("url", cfg.SqliteURL))
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			logger.LogAttrs(ctx, slog.LevelError, "failed to close db", errors.SlogError(closeErr))
		}
	}()
	logger.LogAttrs(ctx, slog.LevelInfo, "connected to db")

	bus := workout.NewBus()
	stores := workout.NewStores(db, bus, time.Now)

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	app := application{
		logger:         logger,
		db:             db,
		workoutService: workout.NewService(stores, catalog.Default(), logger, time.Now),
		syncEngine:     nil,
		flightRecorder: nil,
		registry:       registry,
		userID:         cfg.UserID,
		exportDir:      cfg.ExportDir,
	}

	if cfg.TracesDirectory != "" {
		if app.flightRecorder, err = flightrecorder.New(flightrecorder.Config{
			Logger:          logger,
			MinAge:          0,
			MaxBytes:        0,
			TracesDirectory: cfg.TracesDirectory,
			Cooldown:        0,
			Now:             nil,
		}); err != nil {
			return errors.Wrap(err, "new flight recorder")
		}
		if err = app.flightRecorder.Start(ctx); err != nil {
			return errors.Wrap(err, "start flight recorder")
		}
		defer app.flightRecorder.Stop(context.WithoutCancel(ctx))
	}

	if cfg.PostgresDSN != "" {
		var remote *cloudsync.PostgresRemote
		if remote, err = cloudsync.NewPostgresRemote(ctx, cfg.PostgresDSN, logger); err != nil {
			return errors.Wrap(err, "connect remote")
		}
		defer remote.Close()
		app.syncEngine = cloudsync.NewEngine(
			stores,
			bus,
			remote,
			db,
			cloudsync.NewMetrics("mesocycle", "sync", registry),
			logger,
			cloudsync.Config{UserID: cfg.UserID, Debounce: cfg.SyncDebounce},
			time.Now,
		)
		app.syncEngine.Start(ctx)
		logger.LogAttrs(ctx, slog.LevelInfo, "sync enabled",
			slog.String("user_id", cfg.UserID), slog.Duration("debounce", cfg.SyncDebounce))
	}

	handler, err := app.routes()
	if err != nil {
		return errors.Wrap(err, "routes")
	}

	err = app.configureAndStartServer(ctx, cfg.Addr, handler)

	if app.syncEngine != nil {
		// Pending stores are flushed even though ctx is done by now.
		flushCtx, flushCancel := context.WithTimeout(context.WithoutCancel(ctx), defaultTimeout)
		app.syncEngine.Close(flushCtx)
		flushCancel()
	}

	if err != nil {
		return errors.Wrap(err, "start server")
	}
	return nil
}

type logConfig struct {
	// LogFile enables a size-rotated log file in addition to stdout.
	LogFile string `env:"MESO_LOG_FILE" envDefault:""`
	// LogLevel is one of debug, info, warn or error.
	LogLevel string `env:"MESO_LOG_LEVEL" envDefault:"debug"`
}

// newLogger builds the process logger. It never fails so that configuration errors can still be logged.
func newLogger(lookupEnv func(string) (string, bool)) (*slog.Logger, io.Closer) {
	var cfg logConfig
	populateErr := envstruct.Populate(&cfg, lookupEnv)

	var level slog.Level
	levelErr := level.UnmarshalText([]byte(cfg.LogLevel))
	if levelErr != nil {
		level = slog.LevelDebug
	}

	var (
		out    io.Writer = os.Stdout
		closer io.Closer = io.NopCloser(nil)
	)
	if cfg.LogFile != "" {
		rotated := &lumberjack.Logger{
			Filename:   cfg.LogFile,
			MaxSize:    50, //nolint:mnd // megabytes
			MaxBackups: 5,  //nolint:mnd // files
			MaxAge:     28, //nolint:mnd // days
			Compress:   true,
		}
		out = io.MultiWriter(os.Stdout, rotated)
		closer = rotated
	}

	logger := slog.New(logging.NewContextHandler(slog.NewTextHandler(out, &slog.HandlerOptions{
		AddSource:   false,
		Level:       level,
		ReplaceAttr: nil,
	})))
	if populateErr != nil {
		logger.LogAttrs(context.Background(), slog.LevelWarn, "invalid log config", errors.SlogError(populateErr))
	}
	if levelErr != nil {
		logger.LogAttrs(context.Background(), slog.LevelWarn, "unknown log level, using debug",
			slog.String("level", cfg.LogLevel))
	}
	return logger, closer
}

func main() {
	ctx := context.Background()
	logger, logCloser := newLogger(os.LookupEnv)
	err := run(ctx, logger, os.LookupEnv)
	if err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "failure starting application", errors.SlogError(err))
	}
	_ = logCloser.Close()
	if err != nil {
		os.Exit(1)
	}
}
