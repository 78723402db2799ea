package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"spendbook/internal/backend"
	"spendbook/internal/config"
	"spendbook/internal/log"
	"spendbook/internal/render"
	"spendbook/internal/session"
)

func main() {
	// .env is optional local convenience; in a normal install the defaults
	// are enough.
	_ = godotenv.Load()

	logger := log.New(log.Config{Level: slog.LevelWarn})
	log.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("configuration validation failed", log.FieldError, err)
		os.Exit(1)
	}

	ctx := context.Background()
	result, err := backend.NewFactory(logger).CreateStore(ctx, cfg)
	if err != nil {
		logger.Error("failed to initialize store", log.FieldError, err, log.FieldBackend, cfg.DataBackend)
		os.Exit(1)
	}
	defer func() {
		if err := result.Cleanup(); err != nil {
			logger.Error("store cleanup failed", log.FieldError, err)
		}
	}()

	display := render.NewTerminal(os.Stdout)
	s := session.New(result.Store, display, os.Stdin, os.Stdout, logger)
	if err := s.Run(ctx); err != nil {
		logger.Error("session failed", log.FieldError, err)
		os.Exit(1)
	}
}
