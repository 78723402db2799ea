package chart

import (
	"fmt"
	"testing"

	"github.com/shopspring/decimal"

	"spendbook/internal/core"
	"spendbook/internal/report"
)

func rec(y, m, d int, cat core.Category, amount string) core.Record {
	return core.NewRecord(core.NewDate(y, m, d), cat, decimal.RequireFromString(amount), "")
}

func TestDailyTickCompression(t *testing.T) {
	// Sequence spanning a month boundary: 2024-01-01 .. 2024-02-01.
	var periods []string
	for d := 1; d <= 31; d++ {
		periods = append(periods, fmt.Sprintf("2024-01-%02d", d))
	}
	periods = append(periods, "2024-02-01")

	ticks := Ticks(periods, report.Daily)
	if ticks[0] != "2024 Jan 01" {
		t.Fatalf("first tick must be full, got %q", ticks[0])
	}
	if ticks[1] != "02" {
		t.Fatalf("second tick must be day only, got %q", ticks[1])
	}
	if ticks[30] != "31" {
		t.Fatalf("expected 31, got %q", ticks[30])
	}
	if ticks[31] != "2024 Feb 01" {
		t.Fatalf("month boundary must revert to the full label, got %q", ticks[31])
	}
}

func TestMonthlyTickCompression(t *testing.T) {
	periods := []string{"2023-11", "2023-12", "2024-01", "2024-02"}
	ticks := Ticks(periods, report.Monthly)
	want := []string{"2023-11", "12", "2024-01", "02"}
	for i, w := range want {
		if ticks[i] != w {
			t.Fatalf("tick %d: expected %q, got %q", i, w, ticks[i])
		}
	}
}

func TestStackedBarDropsRentAndIncome(t *testing.T) {
	p := report.Pivot([]core.Record{
		rec(2024, 3, 5, core.Rent, "1200"),
		rec(2024, 3, 5, core.Grocery, "52.30"),
		rec(2024, 3, 6, core.Income, "3000"),
	}, report.Daily)

	payload := StackedBar(p, "march Daily Expense Summary")
	if !payload.Stacked {
		t.Fatal("expected stacked payload")
	}
	for _, s := range payload.Series {
		if s.Name == core.Rent.String() || s.Name == core.Income.String() {
			t.Fatalf("series %s must be dropped", s.Name)
		}
	}
	if len(payload.Series) != 4 {
		t.Fatalf("expected 4 series, got %d", len(payload.Series))
	}
	if payload.YLabel != "Amount (C$)" || payload.XLabel != "Date" {
		t.Fatalf("unexpected axis labels: %q / %q", payload.XLabel, payload.YLabel)
	}
}

func TestStackedBarSuppressesZeroSegmentLabels(t *testing.T) {
	p := report.Pivot([]core.Record{
		rec(2024, 3, 5, core.Grocery, "52.30"),
		rec(2024, 3, 6, core.Utility, "80"),
	}, report.Daily)

	payload := StackedBar(p, "t")
	for _, s := range payload.Series {
		for i, v := range s.Values {
			if v.IsZero() && s.Labels[i] != "" {
				t.Fatalf("series %s period %d: zero segment must have no label", s.Name, i)
			}
			if !v.IsZero() && s.Labels[i] != v.StringFixed(2) {
				t.Fatalf("series %s period %d: expected %s, got %q", s.Name, i, v.StringFixed(2), s.Labels[i])
			}
		}
	}
}

func TestGroupedBarAlwaysLabels(t *testing.T) {
	b := report.Balance([]core.Record{
		rec(2024, 3, 1, core.Income, "3000"),
		rec(2024, 3, 5, core.Rent, "1200"),
		rec(2024, 4, 2, core.Grocery, "100"),
	}, false)

	payload := GroupedBar(b, "Monthly Balance Summary")
	if len(payload.Series) != 3 {
		t.Fatalf("expected 3 series, got %d", len(payload.Series))
	}
	names := []string{"Income", "Expense", "Balance"}
	for i, s := range payload.Series {
		if s.Name != names[i] {
			t.Fatalf("series %d: expected %s, got %s", i, names[i], s.Name)
		}
		for j, l := range s.Labels {
			// Zero values keep their labels here, unlike the stacked chart.
			if l != s.Values[j].StringFixed(2) {
				t.Fatalf("series %s period %d: expected %s, got %q", s.Name, j, s.Values[j].StringFixed(2), l)
			}
		}
	}
	// 2024-04 has no income: still present, labeled 0.00.
	if payload.Series[0].Labels[1] != "0.00" {
		t.Fatalf("expected 0.00 income label, got %q", payload.Series[0].Labels[1])
	}
}

func TestPieShares(t *testing.T) {
	p := report.Pivot([]core.Record{
		rec(2024, 3, 5, core.Grocery, "75"),
		rec(2024, 3, 6, core.Utility, "25"),
		rec(2024, 3, 7, core.Income, "1000"),
	}, report.Monthly)

	payload := Pie(report.CategoryTotals(p), "Expense Summary by Category")
	shares := map[core.Category]string{}
	for _, s := range payload.Slices {
		if s.Category == core.Income {
			t.Fatal("income must not appear in the pie")
		}
		shares[s.Category] = s.Share
	}
	if shares[core.Grocery] != "75.0%" || shares[core.Utility] != "25.0%" {
		t.Fatalf("unexpected shares: %v", shares)
	}
	if shares[core.Rent] != "0.0%" {
		t.Fatalf("zero category should carry a zero share, got %q", shares[core.Rent])
	}
}

func TestPieEmptyData(t *testing.T) {
	payload := Pie(report.CategoryTotals(report.Pivot(nil, report.Monthly)), "t")
	for _, s := range payload.Slices {
		if s.Share != "0.0%" {
			t.Fatalf("empty data must yield zero shares, got %q", s.Share)
		}
	}
}
