package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/benx421/simplebank/internal/cli"
	"github.com/benx421/simplebank/internal/config"
	"github.com/benx421/simplebank/internal/db"
	"github.com/benx421/simplebank/internal/repository"
	"github.com/benx421/simplebank/internal/service"
)

func main() {
	os.Exit(run(os.Stdin, os.Stdout))
}

// run returns the process exit code. Every resource it opens is released
// before it returns.
func run(in io.Reader, out io.Writer) int {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		return 1
	}

	logOutput, closeLog, err := cfg.Logger.Output()
	if err != nil {
		slog.Error("failed to open log output", "error", err)
		return 1
	}
	defer func() {
		_ = closeLog() //nolint:errcheck // nothing left to report it to
	}()

	logger := cfg.Logger.NewLogger(logOutput)
	slog.SetDefault(logger)

	logger.Info("starting simplebank",
		"issuer_id", cfg.App.IssuerID,
		"log_level", cfg.Logger.Level,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	database, err := db.Connect(ctx, &cfg.Database, logger)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		return 1
	}
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}()

	store := repository.NewAccountStore(database, logger)
	if err := store.Initialize(ctx); err != nil {
		logger.Error("failed to initialize store", "error", err)
		return 1
	}

	banking, err := service.NewBankingService(ctx, store, cfg.App.IssuerID, logger)
	if err != nil {
		logger.Error("failed to create banking service", "error", err)
		return 1
	}

	done := make(chan error, 1)
	go func() {
		done <- cli.New(banking, in, out, logger).Run(ctx)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	exitCode := 0
	select {
	case err := <-done:
		if err != nil {
			logger.Error("session terminated", "error", err)
			exitCode = 1
		}
	case sig := <-quit:
		logger.Info("shutting down", "signal", sig.String())
	}

	logger.Info("simplebank stopped")

	return exitCode
}
