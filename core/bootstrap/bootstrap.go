// Package bootstrap wires the infrastructure every bot binary needs before
// any Telegram update is processed: logging, schema migrations, and the
// database pool, in that order.
package bootstrap

import (
	"fmt"

	"log/slog"

	"github.com/jmoiron/sqlx"

	coreconfig "github.com/xuelxng/exchange-bot/core/config"
	coredatabase "github.com/xuelxng/exchange-bot/core/database"
	"github.com/xuelxng/exchange-bot/core/logger"
)

// Options control the bootstrap pipeline. The function fields default to the
// real implementations; tests override them.
type Options struct {
	Config   *coreconfig.Config
	Database coredatabase.Config

	// SkipMigrations leaves the schema untouched, for binaries that only read.
	SkipMigrations bool

	InitLogger func(*coreconfig.Config) error
	Migrate    func(coredatabase.Config) error
	Connect    func(coredatabase.Config) (*sqlx.DB, error)
}

// Infra exposes what the pipeline initialized.
type Infra struct {
	DB *sqlx.DB
}

// Close releases everything the pipeline opened.
func (i *Infra) Close() error {
	if i == nil || i.DB == nil {
		return nil
	}
	return i.DB.Close()
}

// Run executes the pipeline and returns the initialized infrastructure.
func Run(opts Options) (*Infra, error) {
	if opts.Config == nil {
		return nil, fmt.Errorf("bootstrap: nil config provided")
	}

	initLogger := opts.InitLogger
	if initLogger == nil {
		initLogger = logger.InitLogger
	}
	if err := initLogger(opts.Config); err != nil {
		return nil, fmt.Errorf("bootstrap: logger init failed: %w", err)
	}

	if !opts.SkipMigrations {
		migrate := opts.Migrate
		if migrate == nil {
			migrate = coredatabase.RunMigrations
		}
		if err := migrate(opts.Database); err != nil {
			return nil, fmt.Errorf("bootstrap: migrations failed: %w", err)
		}
	}

	connect := opts.Connect
	if connect == nil {
		connect = coredatabase.Connect
	}
	db, err := connect(opts.Database)
	if err != nil {
		return nil, fmt.Errorf("bootstrap: database initialization failed: %w", err)
	}

	logger.L.Info("bootstrap complete",
		slog.String("component", "app"),
		slog.String("event", "bootstrap"),
		slog.String("status", "ok"),
		slog.Bool("migrations", !opts.SkipMigrations),
	)
	return &Infra{DB: db}, nil
}
