// Package memory holds a workbook store in process memory. It backs tests
// and throwaway sessions; nothing survives process exit.
package memory

import (
	"context"
	"sync"

	"spendbook/internal/core"
	"spendbook/internal/ledger"
)

type Store struct {
	mu    sync.Mutex
	names []string
	rows  map[string][]core.Record
}

var _ ledger.Store = (*Store)(nil)

func New() *Store {
	return &Store{rows: map[string][]core.Record{}}
}

func (s *Store) ListLedgers(_ context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.names...), nil
}

func (s *Store) Read(_ context.Context, name string) ([]core.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows, ok := s.rows[name]
	if !ok {
		return nil, ledger.ErrNotFound
	}
	return append([]core.Record(nil), rows...), nil
}

func (s *Store) ReadAll(_ context.Context) ([]core.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []core.Record
	for _, name := range s.names {
		out = append(out, s.rows[name]...)
	}
	return out, nil
}

func (s *Store) Append(_ context.Context, name string, r core.Record) error {
	if err := r.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rows[name]; !ok {
		return ledger.ErrNotFound
	}
	s.rows[name] = append(s.rows[name], r)
	return nil
}

func (s *Store) DeleteRow(_ context.Context, name string, pos int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows, ok := s.rows[name]
	if !ok {
		return ledger.ErrNotFound
	}
	i := pos - ledger.HeaderOffset
	if i < 0 || i >= len(rows) {
		return ledger.ErrRowNotFound
	}
	s.rows[name] = append(rows[:i], rows[i+1:]...)
	return nil
}

func (s *Store) CreateLedger(_ context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rows[name]; ok {
		return ledger.ErrLedgerExists
	}
	s.names = append(s.names, name)
	s.rows[name] = nil
	return nil
}

func (s *Store) DeleteLedger(_ context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rows[name]; !ok {
		return ledger.ErrNotFound
	}
	delete(s.rows, name)
	for i, n := range s.names {
		if n == name {
			s.names = append(s.names[:i], s.names[i+1:]...)
			break
		}
	}
	return nil
}
