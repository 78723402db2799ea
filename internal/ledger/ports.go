// Package ledger defines the narrow contract the application holds against
// the persistent workbook store: a file-like collection of named ledgers,
// each an ordered list of rows under a fixed header.
package ledger

import (
	"context"
	"errors"

	"spendbook/internal/core"
)

// Header is the first row of every ledger. Row positions are 1-based
// counting the header, so the first data row is position 2.
var Header = [4]string{"Date", "Category", "Amount", "Note"}

// HeaderOffset converts a 0-based data row index into a store position.
const HeaderOffset = 2

var (
	ErrNotFound     = errors.New("ledger not found")
	ErrRowNotFound  = errors.New("row not found")
	ErrLedgerExists = errors.New("ledger already exists")
	ErrUnavailable  = errors.New("store unavailable")
	ErrReadOnly     = errors.New("all-ledgers view is read only")
)

// Store is the outbound port for the workbook store. Each write is durable
// before the next read in the same session observes it.
type Store interface {
	// ListLedgers returns ledger names in workbook order.
	ListLedgers(ctx context.Context) ([]string, error)
	// Read returns a ledger's records in insertion order.
	Read(ctx context.Context, name string) ([]core.Record, error)
	// ReadAll returns the union of every ledger's records.
	ReadAll(ctx context.Context) ([]core.Record, error)
	// Append adds a record at the end of the named ledger.
	Append(ctx context.Context, name string, r core.Record) error
	// DeleteRow removes the row at the given store position (header = 1).
	DeleteRow(ctx context.Context, name string, pos int) error
	// CreateLedger creates an empty ledger holding only the header.
	CreateLedger(ctx context.Context, name string) error
	// DeleteLedger removes the named ledger and all its rows.
	DeleteLedger(ctx context.Context, name string) error
}

// Selection identifies what a flow operates on: one named ledger, or the
// read-only union of all of them. The union has no row positions, so
// deletion logic can never reach it.
type Selection struct {
	name string
	all  bool
}

func Named(name string) Selection { return Selection{name: name} }
func AllLedgers() Selection       { return Selection{all: true} }

func (s Selection) IsAll() bool  { return s.all }
func (s Selection) Name() string { return s.name }

// Title is the user-facing label of the selection.
func (s Selection) Title() string {
	if s.all {
		return "All Ledgers"
	}
	return s.name
}

// Records reads the selected records from the store.
func (s Selection) Records(ctx context.Context, store Store) ([]core.Record, error) {
	if s.all {
		return store.ReadAll(ctx)
	}
	return store.Read(ctx, s.name)
}
