package records

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"spendbook/internal/core"
	"spendbook/internal/ledger"
	"spendbook/internal/ledger/memory"
)

func seed(t *testing.T) (*memory.Store, *Repository) {
	t.Helper()
	ctx := context.Background()
	s := memory.New()
	if err := s.CreateLedger(ctx, "march"); err != nil {
		t.Fatal(err)
	}
	// Deliberately out of date order: display sorting is the repository's job.
	rows := []core.Record{
		core.NewRecord(core.NewDate(2024, 3, 9), core.Utility, decimal.RequireFromString("80"), "hydro"),
		core.NewRecord(core.NewDate(2024, 3, 2), core.Grocery, decimal.RequireFromString("40"), "market"),
		core.NewRecord(core.NewDate(2024, 3, 2), core.Grocery, decimal.RequireFromString("15"), "bakery"),
		core.NewRecord(core.NewDate(2024, 3, 1), core.Income, decimal.RequireFromString("3000"), "salary"),
	}
	for _, r := range rows {
		if err := s.Append(ctx, "march", r); err != nil {
			t.Fatal(err)
		}
	}
	return s, New(s)
}

func TestFetchSortsAndRanks(t *testing.T) {
	_, repo := seed(t)
	v, err := repo.Fetch(context.Background(), ledger.Named("march"))
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(v.Rows) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(v.Rows))
	}
	// Ascending by (date, category, amount, note): signed amounts, so the
	// larger expense (-40) sorts before the smaller one (-15).
	wantOrder := []string{"salary", "market", "bakery", "hydro"}
	for i, w := range wantOrder {
		if v.Rows[i].Record.Note != w {
			t.Fatalf("row %d: expected %s, got %s", i, w, v.Rows[i].Record.Note)
		}
		if v.Rows[i].Rank != i+1 {
			t.Fatalf("row %d: expected rank %d, got %d", i, i+1, v.Rows[i].Rank)
		}
	}
}

func TestFetchIsIdempotent(t *testing.T) {
	_, repo := seed(t)
	ctx := context.Background()
	a, err := repo.Fetch(ctx, ledger.Named("march"))
	if err != nil {
		t.Fatal(err)
	}
	b, err := repo.Fetch(ctx, ledger.Named("march"))
	if err != nil {
		t.Fatal(err)
	}
	for i := range a.Rows {
		if a.Rows[i] != b.Rows[i] {
			t.Fatalf("row %d differs between fetches: %+v vs %+v", i, a.Rows[i], b.Rows[i])
		}
	}
}

func TestRankToPositionMapping(t *testing.T) {
	_, repo := seed(t)
	v, err := repo.Fetch(context.Background(), ledger.Named("march"))
	if err != nil {
		t.Fatal(err)
	}
	// "salary" was inserted last (store position 5) but ranks first.
	pos, ok := v.Position(1)
	if !ok || pos != 5 {
		t.Fatalf("rank 1: expected position 5, got %d (ok=%v)", pos, ok)
	}
	// "hydro" was inserted first (position 2) but ranks last.
	pos, ok = v.Position(4)
	if !ok || pos != 2 {
		t.Fatalf("rank 4: expected position 2, got %d (ok=%v)", pos, ok)
	}
	if _, ok := v.Position(5); ok {
		t.Fatal("out-of-range rank must not resolve")
	}
}

func TestDeleteRank(t *testing.T) {
	s, repo := seed(t)
	ctx := context.Background()
	// Rank 1 is "salary", the last inserted row.
	if err := repo.DeleteRank(ctx, ledger.Named("march"), 1); err != nil {
		t.Fatalf("delete: %v", err)
	}
	rows, err := s.Read(ctx, "march")
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	for _, r := range rows {
		if r.Note == "salary" {
			t.Fatal("wrong store row deleted")
		}
	}
}

func TestDeleteRankRejectedForUnion(t *testing.T) {
	_, repo := seed(t)
	err := repo.DeleteRank(context.Background(), ledger.AllLedgers(), 1)
	if !errors.Is(err, ledger.ErrReadOnly) {
		t.Fatalf("expected ErrReadOnly, got %v", err)
	}
}

func TestUnionViewHasNoPositions(t *testing.T) {
	ctx := context.Background()
	s := memory.New()
	for _, name := range []string{"march", "april"} {
		if err := s.CreateLedger(ctx, name); err != nil {
			t.Fatal(err)
		}
	}
	if err := s.Append(ctx, "march", core.NewRecord(core.NewDate(2024, 3, 1), core.Other, decimal.NewFromInt(5), "")); err != nil {
		t.Fatal(err)
	}
	if err := s.Append(ctx, "april", core.NewRecord(core.NewDate(2024, 4, 1), core.Other, decimal.NewFromInt(6), "")); err != nil {
		t.Fatal(err)
	}
	v, err := New(s).Fetch(ctx, ledger.AllLedgers())
	if err != nil {
		t.Fatal(err)
	}
	if len(v.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(v.Rows))
	}
	if _, ok := v.Position(1); ok {
		t.Fatal("union views must not expose positions")
	}
}
