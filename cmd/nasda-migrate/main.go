// Package main implements nasda-migrate, which applies or inspects the
// database schema migrations embedded in the postgres package.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/nasda/nasda/internal/config"
	"github.com/nasda/nasda/internal/platform/logger"
	"github.com/nasda/nasda/internal/platform/postgres"
	"github.com/nasda/nasda/internal/redact"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stderr); err != nil {
		slog.Error("migration failed", slog.String("error", redact.Error(err)))
		stop()
		os.Exit(1)
	}
}

// options holds the parsed command-line flags.
type options struct {
	command    string
	configPath string
}

func parseFlags(args []string, output io.Writer) (options, error) {
	var opts options

	fs := flag.NewFlagSet("nasda-migrate", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.StringVar(&opts.command, "command", postgres.CommandUp,
		"migration command: up, down, reset, status or version")
	fs.StringVar(&opts.configPath, "config", "",
		"path to a YAML config file (defaults to ./config.yaml when present)")

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if fs.NArg() > 0 {
		return options{}, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	return opts, nil
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFile(path)
	}
	return config.Load()
}

func run(ctx context.Context, args []string, output io.Writer) error {
	opts, err := parseFlags(args, output)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.SetupWithWriter(cfg.Log, output)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}
	slog.SetDefault(log)
	ctx = logger.WithLogger(ctx, log)

	log.Info("connecting to database",
		slog.String("url", postgres.MaskDatabaseURL(cfg.Database.URL)),
		slog.String("command", opts.command))

	db, err := postgres.Open(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			log.Error("failed to close database", slog.String("error", closeErr.Error()))
		}
	}()

	return postgres.RunMigrations(ctx, db, opts.command)
}
