package core

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseDate(t *testing.T) {
	cases := []struct {
		in  string
		out string
		ok  bool
	}{
		{"20240305", "2024-03-05", true},
		{"20241231", "2024-12-31", true},
		{" 20240101 ", "2024-01-01", true},
		{"20241301", "", false}, // month out of range
		{"20240230", "", false}, // day out of range
		{"2024-03-05", "", false},
		{"240305", "", false},
		{"2024030", "", false},
		{"abcdefgh", "", false},
		{"", "", false},
	}
	for i, tc := range cases {
		d, err := ParseDate(tc.in)
		if tc.ok {
			if err != nil || d.String() != tc.out {
				t.Fatalf("case %d: %q expected %s, got %s (err=%v)", i, tc.in, tc.out, d, err)
			}
		} else if err == nil {
			t.Fatalf("case %d: %q expected error", i, tc.in)
		}
	}
}

func TestDateMonthKey(t *testing.T) {
	if got := NewDate(2024, 3, 5).MonthKey(); got != "2024-03" {
		t.Fatalf("expected 2024-03, got %s", got)
	}
}

func TestNewRecordImposesSign(t *testing.T) {
	d := NewDate(2024, 3, 5)
	cases := []struct {
		category Category
		entered  string
		want     string
	}{
		{Rent, "1200", "-1200"},
		{Rent, "-1200", "-1200"}, // magnitude only, sign comes from category
		{Grocery, "52.30", "-52.3"},
		{Income, "3000", "3000"},
		{Income, "-3000", "3000"},
	}
	for i, tc := range cases {
		amt := decimal.RequireFromString(tc.entered)
		r := NewRecord(d, tc.category, amt, "note")
		if r.Amount.String() != tc.want {
			t.Fatalf("case %d: expected %s, got %s", i, tc.want, r.Amount)
		}
		if err := r.Validate(); err != nil {
			t.Fatalf("case %d: expected valid record, got %v", i, err)
		}
	}
}

func TestRecordValidate(t *testing.T) {
	d := NewDate(2024, 3, 5)
	bads := []Record{
		{Date: Date{}, Category: Rent, Amount: decimal.NewFromInt(-1)},
		{Date: d, Category: "travel", Amount: decimal.NewFromInt(-1)},
		{Date: d, Category: Income, Amount: decimal.NewFromInt(-1)},
		{Date: d, Category: Rent, Amount: decimal.NewFromInt(1)},
	}
	for i, r := range bads {
		if err := r.Validate(); err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestCategoriesOrder(t *testing.T) {
	cats := Categories()
	if len(cats) != 6 {
		t.Fatalf("expected 6 categories, got %d", len(cats))
	}
	if cats[len(cats)-2] != Other || cats[len(cats)-1] != Income {
		t.Fatalf("other and income must be the last two, got %v", cats)
	}
}
