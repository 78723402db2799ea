// Package backend selects and initializes the workbook store the session
// runs against.
package backend

import (
	"context"
	"fmt"

	"spendbook/internal/config"
	"spendbook/internal/ledger"
	"spendbook/internal/ledger/google"
	"spendbook/internal/ledger/memory"
	"spendbook/internal/log"
	"spendbook/internal/storage"
)

type Type string

const (
	SQLite Type = "sqlite"
	Memory Type = "memory"
	Sheets Type = "sheets"
)

func (t Type) String() string { return string(t) }

func (t Type) IsValid() bool {
	switch t {
	case SQLite, Memory, Sheets:
		return true
	default:
		return false
	}
}

// Result holds the initialized store and its cleanup function.
type Result struct {
	Store   ledger.Store
	Cleanup func() error
}

type Factory struct {
	logger *log.Logger
}

func NewFactory(logger *log.Logger) *Factory {
	return &Factory{logger: logger.WithComponent(log.ComponentBackend)}
}

func (f *Factory) CreateStore(ctx context.Context, cfg *config.Config) (*Result, error) {
	t := Type(cfg.DataBackend)
	if !t.IsValid() {
		return nil, fmt.Errorf("invalid backend type: %s", cfg.DataBackend)
	}

	switch t {
	case SQLite:
		store, err := storage.NewSQLiteStore(cfg.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("initialize sqlite store: %w", err)
		}
		f.logger.Info("initialized sqlite backend",
			log.FieldBackend, t.String(), "db_path", cfg.SQLiteDBPath)
		return &Result{Store: store, Cleanup: store.Close}, nil

	case Sheets:
		cli, err := google.NewFromEnv(ctx)
		if err != nil {
			return nil, fmt.Errorf("initialize sheets store: %w", err)
		}
		f.logger.Info("initialized sheets backend", log.FieldBackend, t.String())
		return &Result{Store: cli, Cleanup: func() error { return nil }}, nil

	default:
		f.logger.Info("initialized memory backend", log.FieldBackend, t.String())
		return &Result{Store: memory.New(), Cleanup: func() error { return nil }}, nil
	}
}
