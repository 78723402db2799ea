package report

import (
	"sort"

	"github.com/shopspring/decimal"

	"spendbook/internal/core"
)

// TotalLabel replaces the period on the synthetic trailing row of a
// cross-ledger balance summary.
const TotalLabel = "TOTAL"

// BalanceRow is one month of the balance summary. Income and Expense are
// magnitudes; Balance is Income minus Expense and may be negative.
type BalanceRow struct {
	Period  string
	Income  decimal.Decimal
	Expense decimal.Decimal
	Balance decimal.Decimal
}

type BalanceTable struct {
	Rows []BalanceRow
	// HasTotal marks the last row as the column-wise TOTAL of the others.
	HasTotal bool
}

// Balance aggregates records into the monthly income/expense/balance
// summary. Months present on only one side of the income/expense split
// get a zero for the other, never an omitted row. withTotal appends the
// TOTAL row used by the cross-ledger view.
func Balance(records []core.Record, withTotal bool) BalanceTable {
	income := map[string]decimal.Decimal{}
	expense := map[string]decimal.Decimal{}
	for _, r := range records {
		key := r.Date.MonthKey()
		if r.Category == core.Income {
			income[key] = income[key].Add(r.Amount.Abs())
		} else {
			expense[key] = expense[key].Add(r.Amount.Abs())
		}
	}

	seen := map[string]bool{}
	var months []string
	for m := range income {
		seen[m] = true
		months = append(months, m)
	}
	for m := range expense {
		if !seen[m] {
			months = append(months, m)
		}
	}
	sort.Strings(months)

	rows := make([]BalanceRow, 0, len(months)+1)
	totIn, totEx := decimal.Zero, decimal.Zero
	for _, m := range months {
		in := income[m]
		ex := expense[m]
		rows = append(rows, BalanceRow{Period: m, Income: in, Expense: ex, Balance: in.Sub(ex)})
		totIn = totIn.Add(in)
		totEx = totEx.Add(ex)
	}
	if withTotal && len(rows) > 0 {
		rows = append(rows, BalanceRow{Period: TotalLabel, Income: totIn, Expense: totEx, Balance: totIn.Sub(totEx)})
	}
	return BalanceTable{Rows: rows, HasTotal: withTotal && len(months) > 0}
}

// CategoryTotal is one slice of the expense share breakdown.
type CategoryTotal struct {
	Category core.Category
	Total    decimal.Decimal
}

// CategoryTotals sums each expense category across all periods of a pivot
// table, dropping income. Feeds the share (pie) chart.
func CategoryTotals(p PivotTable) []CategoryTotal {
	var out []CategoryTotal
	for j, c := range p.Categories {
		if c == core.Income {
			continue
		}
		sum := decimal.Zero
		for _, row := range p.Cells {
			sum = sum.Add(row[j])
		}
		out = append(out, CategoryTotal{Category: c, Total: sum})
	}
	return out
}
