// Package report turns raw transaction records into the aggregated views
// the display and chart layers consume: a category-pivoted period table,
// a monthly balance summary, and per-category totals.
//
// All sums are exact decimals; rounding happens only where values are
// formatted for display.
package report

import (
	"sort"

	"github.com/shopspring/decimal"

	"spendbook/internal/core"
)

// Granularity selects the aggregation period key: one calendar day for
// single-ledger views, one calendar month for cross-ledger views.
type Granularity int

const (
	Daily Granularity = iota
	Monthly
)

// PivotTable holds one row per period and one column per category, in
// schema order, with summed absolute amounts. Missing (period, category)
// pairs are zero, never absent.
type PivotTable struct {
	Granularity Granularity
	Periods     []string
	Categories  []core.Category
	Cells       [][]decimal.Decimal
}

func periodKey(d core.Date, g Granularity) string {
	if g == Monthly {
		return d.MonthKey()
	}
	return d.String()
}

// Pivot groups records by (period, category) and sums absolute amounts.
func Pivot(records []core.Record, g Granularity) PivotTable {
	cats := core.Categories()
	col := make(map[core.Category]int, len(cats))
	for i, c := range cats {
		col[c] = i
	}

	byPeriod := map[string][]decimal.Decimal{}
	for _, r := range records {
		key := periodKey(r.Date, g)
		row, ok := byPeriod[key]
		if !ok {
			row = zeroRow(len(cats))
			byPeriod[key] = row
		}
		i, ok := col[r.Category]
		if !ok {
			continue
		}
		row[i] = row[i].Add(r.Amount.Abs())
	}

	periods := make([]string, 0, len(byPeriod))
	for p := range byPeriod {
		periods = append(periods, p)
	}
	sort.Strings(periods)

	cells := make([][]decimal.Decimal, len(periods))
	for i, p := range periods {
		cells[i] = byPeriod[p]
	}
	return PivotTable{Granularity: g, Periods: periods, Categories: cats, Cells: cells}
}

// Without returns a copy of the table with the given category columns
// removed. Used by the chart layer to drop rent and income series.
func (p PivotTable) Without(drop ...core.Category) PivotTable {
	skip := map[core.Category]bool{}
	for _, c := range drop {
		skip[c] = true
	}
	var keep []int
	var cats []core.Category
	for i, c := range p.Categories {
		if !skip[c] {
			keep = append(keep, i)
			cats = append(cats, c)
		}
	}
	cells := make([][]decimal.Decimal, len(p.Cells))
	for i, row := range p.Cells {
		out := make([]decimal.Decimal, len(keep))
		for j, k := range keep {
			out[j] = row[k]
		}
		cells[i] = out
	}
	return PivotTable{Granularity: p.Granularity, Periods: p.Periods, Categories: cats, Cells: cells}
}

// FillDaily reindexes a daily table to every calendar day between its first
// and last period, inserting all-zero rows for days with no records. The
// daily stacked chart relies on a gapless axis.
func FillDaily(p PivotTable) PivotTable {
	if p.Granularity != Daily || len(p.Periods) < 2 {
		return p
	}
	first, err := core.ParseDate(compactDate(p.Periods[0]))
	if err != nil {
		return p
	}
	last, err := core.ParseDate(compactDate(p.Periods[len(p.Periods)-1]))
	if err != nil {
		return p
	}

	have := make(map[string][]decimal.Decimal, len(p.Periods))
	for i, key := range p.Periods {
		have[key] = p.Cells[i]
	}

	var periods []string
	var cells [][]decimal.Decimal
	for d := first; !d.After(last.Time); d = (core.Date{Time: d.AddDate(0, 0, 1)}) {
		key := d.String()
		row, ok := have[key]
		if !ok {
			row = zeroRow(len(p.Categories))
		}
		periods = append(periods, key)
		cells = append(cells, row)
	}
	return PivotTable{Granularity: Daily, Periods: periods, Categories: p.Categories, Cells: cells}
}

// compactDate converts a 2006-01-02 period key back to the 20060102 input form.
func compactDate(s string) string {
	out := make([]byte, 0, 8)
	for i := 0; i < len(s); i++ {
		if s[i] != '-' {
			out = append(out, s[i])
		}
	}
	return string(out)
}

func zeroRow(n int) []decimal.Decimal {
	row := make([]decimal.Decimal, n)
	for i := range row {
		row[i] = decimal.Zero
	}
	return row
}
