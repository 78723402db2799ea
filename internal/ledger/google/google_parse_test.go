package google

import (
	"testing"

	"github.com/shopspring/decimal"

	"spendbook/internal/core"
)

func TestParseRows(t *testing.T) {
	values := [][]interface{}{
		{"2024-03-05", "rent", "-1200", "march rent"},
		{},                                // blank line
		{"2024-03-07", "income", "3000"},  // short row, no note
		{"", "other", "-1", "trailing"},   // empty date cell
	}
	recs, err := parseRows(values)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("expected 2 records, got %d", len(recs))
	}
	r := recs[0]
	if r.Date.String() != "2024-03-05" || r.Category != core.Rent || r.Amount.String() != "-1200" || r.Note != "march rent" {
		t.Fatalf("unexpected record: %+v", r)
	}
	if recs[1].Note != "" || recs[1].Amount.String() != "3000" {
		t.Fatalf("unexpected short-row record: %+v", recs[1])
	}
}

func TestParseRowsRejectsCorruptCells(t *testing.T) {
	cases := [][][]interface{}{
		{{"03/05/2024", "rent", "-1200", ""}},
		{{"2024-03-05", "rent", "twelve", ""}},
	}
	for i, values := range cases {
		if _, err := parseRows(values); err == nil {
			t.Fatalf("case %d: expected error", i)
		}
	}
}

func TestRecordRowRoundTrip(t *testing.T) {
	rec := core.NewRecord(core.NewDate(2024, 3, 5), core.Grocery, decimal.RequireFromString("52.30"), "market")
	row := recordRow(rec)
	back, err := parseRows([][]interface{}{row})
	if err != nil || len(back) != 1 {
		t.Fatalf("round trip: %v", err)
	}
	got := back[0]
	if !got.Date.Equal(rec.Date.Time) || got.Category != rec.Category || !got.Amount.Equal(rec.Amount) || got.Note != rec.Note {
		t.Fatalf("expected %+v, got %+v", rec, got)
	}
}
