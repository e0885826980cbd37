package postgres

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"log/slog"
	"net/url"
	"sync"
	"time"

	"github.com/nasda/nasda/internal/platform/logger"
	"github.com/pressly/goose/v3"
)

// MigrationTableName is the table goose uses to record applied migrations.
const MigrationTableName = "schema_migrations"

// migrationsDir is the directory of migrationsFS holding the SQL migrations.
const migrationsDir = "migrations"

// Migration commands accepted by RunMigrations.
const (
	CommandUp      = "up"
	CommandDown    = "down"
	CommandReset   = "reset"
	CommandStatus  = "status"
	CommandVersion = "version"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// gooseMu serializes access to goose's package-level configuration.
var gooseMu sync.Mutex

// slogGooseLogger adapts the goose logger interface to use slog
type slogGooseLogger struct {
	logger *slog.Logger
}

// Printf implements the goose.Logger Printf method by forwarding messages to slog.Info
func (l *slogGooseLogger) Printf(format string, v ...interface{}) {
	l.logger.Info(fmt.Sprintf(format, v...))
}

// Fatalf implements the goose.Logger Fatalf method by forwarding error messages to slog.Error.
// Unlike the standard Fatalf it does not exit; goose returns the error to the caller.
func (l *slogGooseLogger) Fatalf(format string, v ...interface{}) {
	l.logger.Error(fmt.Sprintf(format, v...))
}

// Migrate applies every pending migration.
func Migrate(ctx context.Context, db *sql.DB) error {
	return RunMigrations(ctx, db, CommandUp)
}

// RunMigrations executes a goose command against db using the migrations
// embedded in this package.
func RunMigrations(ctx context.Context, db *sql.DB, command string) error {
	log := logger.FromContext(ctx).With(slog.String("component", "migrations"))

	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(migrationsFS)
	goose.SetLogger(&slogGooseLogger{logger: log})
	goose.SetTableName(MigrationTableName)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set dialect: %w", err)
	}

	log.Info("starting migration command", slog.String("command", command))
	start := time.Now()

	var err error
	switch command {
	case CommandUp:
		err = goose.UpContext(ctx, db, migrationsDir)
	case CommandDown:
		err = goose.DownContext(ctx, db, migrationsDir)
	case CommandReset:
		err = goose.ResetContext(ctx, db, migrationsDir)
	case CommandStatus:
		err = goose.StatusContext(ctx, db, migrationsDir)
	case CommandVersion:
		err = goose.VersionContext(ctx, db, migrationsDir)
	default:
		return fmt.Errorf(
			"unknown migration command: %s (expected up, down, reset, status or version)",
			command,
		)
	}

	if err != nil {
		log.Error("migration command failed",
			slog.String("command", command),
			slog.String("error", err.Error()))
		return fmt.Errorf("migration command %q failed: %w", command, err)
	}

	log.Info("migration command completed",
		slog.String("command", command),
		slog.Duration("duration", time.Since(start)))
	return nil
}

// MaskDatabaseURL masks the password in a database URL for safe logging.
func MaskDatabaseURL(dbURL string) string {
	parsedURL, err := url.Parse(dbURL)
	if err != nil {
		return "invalid-url"
	}

	if parsedURL.User != nil {
		if _, hasPassword := parsedURL.User.Password(); hasPassword {
			parsedURL.User = url.UserPassword(parsedURL.User.Username(), "****")
		}
		return parsedURL.String()
	}

	return dbURL
}
