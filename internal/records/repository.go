// Package records materializes a ledger (or the union of all ledgers) as a
// sorted, ranked view. Every call re-reads the store, so a view always
// reflects the latest committed state; nothing is cached across calls.
package records

import (
	"context"
	"sort"

	"spendbook/internal/core"
	"spendbook/internal/ledger"
)

// Row is one displayed record: its 1-based rank after sorting, and the
// underlying store position it maps back to. The position is zero for
// union views, which have no row semantics.
type Row struct {
	Rank     int
	Record   core.Record
	Position int
}

// View is one materialized, sorted ledger snapshot.
type View struct {
	Selection ledger.Selection
	Rows      []Row
}

// Position resolves a display rank to its store position. ok is false for
// out-of-range ranks and always for union views.
func (v View) Position(rank int) (int, bool) {
	if v.Selection.IsAll() {
		return 0, false
	}
	if rank < 1 || rank > len(v.Rows) {
		return 0, false
	}
	return v.Rows[rank-1].Position, true
}

type Repository struct {
	store ledger.Store
}

func New(store ledger.Store) *Repository {
	return &Repository{store: store}
}

// Fetch reads the selection and returns it sorted ascending by
// (date, category, amount, note). The sort is stable, so re-sorting an
// already sorted view is a no-op.
func (r *Repository) Fetch(ctx context.Context, sel ledger.Selection) (View, error) {
	recs, err := sel.Records(ctx, r.store)
	if err != nil {
		return View{}, err
	}

	rows := make([]Row, len(recs))
	for i, rec := range recs {
		pos := 0
		if !sel.IsAll() {
			pos = i + ledger.HeaderOffset
		}
		rows[i] = Row{Record: rec, Position: pos}
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return less(rows[i].Record, rows[j].Record)
	})
	for i := range rows {
		rows[i].Rank = i + 1
	}
	return View{Selection: sel, Rows: rows}, nil
}

// DeleteRank removes the store row that display rank mapped to at call
// time. Rejected for the union view before the store is ever touched.
func (r *Repository) DeleteRank(ctx context.Context, sel ledger.Selection, rank int) error {
	if sel.IsAll() {
		return ledger.ErrReadOnly
	}
	v, err := r.Fetch(ctx, sel)
	if err != nil {
		return err
	}
	pos, ok := v.Position(rank)
	if !ok {
		return ledger.ErrRowNotFound
	}
	return r.store.DeleteRow(ctx, sel.Name(), pos)
}

func less(a, b core.Record) bool {
	if !a.Date.Equal(b.Date.Time) {
		return a.Date.Before(b.Date)
	}
	if a.Category != b.Category {
		return a.Category < b.Category
	}
	if c := a.Amount.Cmp(b.Amount); c != 0 {
		return c < 0
	}
	return a.Note < b.Note
}
