// Package storage implements the workbook store on SQLite. Each ledger is
// a named row set; store positions are derived from insertion order, with
// the header occupying position 1 as in the file-based workbook layout.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"

	"spendbook/internal/core"
	"spendbook/internal/ledger"
)

type SQLiteStore struct {
	db *sql.DB
}

var _ ledger.Store = (*SQLiteStore)(nil)

// NewSQLiteStore opens (creating if missing) the database at dbPath and
// brings the schema up to date. A missing file or directory is the
// recoverable first-use case; anything after that is ErrUnavailable.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: ping database: %v", ledger.ErrUnavailable, err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: run migrations: %v", ledger.ErrUnavailable, err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLiteStore) ListLedgers(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name FROM ledgers ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list ledgers: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan ledger name: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func (s *SQLiteStore) ledgerID(ctx context.Context, name string) (int64, error) {
	var id int64
	err := s.db.QueryRowContext(ctx, `SELECT id FROM ledgers WHERE name = ?`, name).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ledger.ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("lookup ledger %q: %w", name, err)
	}
	return id, nil
}

func (s *SQLiteStore) Read(ctx context.Context, name string) ([]core.Record, error) {
	id, err := s.ledgerID(ctx, name)
	if err != nil {
		return nil, err
	}
	return s.readQuery(ctx,
		`SELECT entry_date, category, amount, note FROM records WHERE ledger_id = ? ORDER BY id`, id)
}

func (s *SQLiteStore) ReadAll(ctx context.Context) ([]core.Record, error) {
	return s.readQuery(ctx,
		`SELECT r.entry_date, r.category, r.amount, r.note
		 FROM records r JOIN ledgers l ON l.id = r.ledger_id
		 ORDER BY l.id, r.id`)
}

func (s *SQLiteStore) readQuery(ctx context.Context, query string, args ...any) ([]core.Record, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("read records: %w", err)
	}
	defer rows.Close()

	var out []core.Record
	for rows.Next() {
		var dateStr, category, amount, note string
		if err := rows.Scan(&dateStr, &category, &amount, &note); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		rec, err := rowToRecord(dateStr, category, amount, note)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func rowToRecord(dateStr, category, amount, note string) (core.Record, error) {
	t, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return core.Record{}, fmt.Errorf("parse stored date %q: %w", dateStr, err)
	}
	a, err := decimal.NewFromString(amount)
	if err != nil {
		return core.Record{}, fmt.Errorf("parse stored amount %q: %w", amount, err)
	}
	return core.Record{
		Date:     core.Date{Time: t},
		Category: core.Category(category),
		Amount:   a,
		Note:     note,
	}, nil
}

func (s *SQLiteStore) Append(ctx context.Context, name string, r core.Record) error {
	if err := r.Validate(); err != nil {
		return err
	}
	id, err := s.ledgerID(ctx, name)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO records (ledger_id, entry_date, category, amount, note) VALUES (?, ?, ?, ?, ?)`,
		id, r.Date.String(), r.Category.String(), r.Amount.String(), r.Note)
	if err != nil {
		return fmt.Errorf("append record: %w", err)
	}
	return nil
}

func (s *SQLiteStore) DeleteRow(ctx context.Context, name string, pos int) error {
	if pos < ledger.HeaderOffset {
		return ledger.ErrRowNotFound
	}
	id, err := s.ledgerID(ctx, name)
	if err != nil {
		return err
	}
	// Position counts the header, so data row k sits at offset k-2 in
	// insertion (id) order.
	var recordID int64
	err = s.db.QueryRowContext(ctx,
		`SELECT id FROM records WHERE ledger_id = ? ORDER BY id LIMIT 1 OFFSET ?`,
		id, pos-ledger.HeaderOffset).Scan(&recordID)
	if errors.Is(err, sql.ErrNoRows) {
		return ledger.ErrRowNotFound
	}
	if err != nil {
		return fmt.Errorf("resolve row position: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM records WHERE id = ?`, recordID); err != nil {
		return fmt.Errorf("delete record: %w", err)
	}
	return nil
}

func (s *SQLiteStore) CreateLedger(ctx context.Context, name string) error {
	if _, err := s.ledgerID(ctx, name); err == nil {
		return ledger.ErrLedgerExists
	} else if !errors.Is(err, ledger.ErrNotFound) {
		return err
	}
	if _, err := s.db.ExecContext(ctx, `INSERT INTO ledgers (name) VALUES (?)`, name); err != nil {
		return fmt.Errorf("create ledger: %w", err)
	}
	return nil
}

func (s *SQLiteStore) DeleteLedger(ctx context.Context, name string) error {
	id, err := s.ledgerID(ctx, name)
	if err != nil {
		return err
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM records WHERE ledger_id = ?`, id); err != nil {
		return fmt.Errorf("delete ledger records: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM ledgers WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete ledger: %w", err)
	}
	return tx.Commit()
}
