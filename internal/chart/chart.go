// Package chart builds the structured payloads a chart renderer needs:
// series values, per-segment labels, axis titles and compressed tick
// labels. It never draws anything itself.
package chart

import (
	"time"

	"github.com/shopspring/decimal"

	"spendbook/internal/core"
	"spendbook/internal/report"
)

const (
	amountAxis = "Amount (C$)"

	fullDailyFormat = "2006 Jan 02"
	dayOnlyFormat   = "02"
)

// Series is one named sequence of bar values. Labels align with Values;
// an empty label means the segment's numeric label is suppressed.
type Series struct {
	Name   string
	Values []decimal.Decimal
	Labels []string
}

// BarPayload describes a bar chart: stacked category series or grouped
// income/expense/balance series, with compressed x tick labels.
type BarPayload struct {
	Title   string
	XLabel  string
	YLabel  string
	Stacked bool
	Ticks   []string
	Series  []Series
}

// Slice is one share of the category breakdown.
type Slice struct {
	Category core.Category
	Value    decimal.Decimal
	Share    string
}

// PiePayload describes the expense share chart.
type PiePayload struct {
	Title  string
	Slices []Slice
}

// StackedBar builds the per-period category payload. Rent dominates every
// other category and income is not an expense, so both series are dropped.
// Segment labels are emitted only for non-zero segments; a dense daily
// axis would otherwise drown in zero labels.
func StackedBar(p report.PivotTable, title string) BarPayload {
	p = p.Without(core.Rent, core.Income)

	series := make([]Series, len(p.Categories))
	for j, cat := range p.Categories {
		values := make([]decimal.Decimal, len(p.Periods))
		labels := make([]string, len(p.Periods))
		for i := range p.Periods {
			v := p.Cells[i][j]
			values[i] = v
			if !v.IsZero() {
				labels[i] = v.StringFixed(2)
			}
		}
		series[j] = Series{Name: cat.String(), Values: values, Labels: labels}
	}

	return BarPayload{
		Title:   title,
		XLabel:  "Date",
		YLabel:  amountAxis,
		Stacked: true,
		Ticks:   Ticks(p.Periods, p.Granularity),
		Series:  series,
	}
}

// GroupedBar builds the three-series balance payload. Unlike the stacked
// chart, labels are always emitted, zero or not: a zero balance is itself
// information.
func GroupedBar(b report.BalanceTable, title string) BarPayload {
	periods := make([]string, len(b.Rows))
	income := Series{Name: "Income"}
	expense := Series{Name: "Expense"}
	balance := Series{Name: "Balance"}
	for i, row := range b.Rows {
		periods[i] = row.Period
		income.Values = append(income.Values, row.Income)
		income.Labels = append(income.Labels, row.Income.StringFixed(2))
		expense.Values = append(expense.Values, row.Expense)
		expense.Labels = append(expense.Labels, row.Expense.StringFixed(2))
		balance.Values = append(balance.Values, row.Balance)
		balance.Labels = append(balance.Labels, row.Balance.StringFixed(2))
	}

	return BarPayload{
		Title:  title,
		XLabel: "Month",
		YLabel: amountAxis,
		Ticks:  Ticks(periods, report.Monthly),
		Series: []Series{income, expense, balance},
	}
}

// Pie builds the category share payload with one-decimal percentage labels.
func Pie(totals []report.CategoryTotal, title string) PiePayload {
	sum := decimal.Zero
	for _, t := range totals {
		sum = sum.Add(t.Total)
	}
	hundred := decimal.NewFromInt(100)

	slices := make([]Slice, len(totals))
	for i, t := range totals {
		share := "0.0%"
		if !sum.IsZero() {
			share = t.Total.Mul(hundred).Div(sum).StringFixed(1) + "%"
		}
		slices[i] = Slice{Category: t.Category, Value: t.Total, Share: share}
	}
	return PiePayload{Title: title, Slices: slices}
}

// Ticks compresses period labels for a time-series x axis: the first
// period is always shown in full, later ones shrink to their day or month
// component unless they cross a month or year boundary, where the full
// label reappears to keep the axis unambiguous.
func Ticks(periods []string, g report.Granularity) []string {
	if g == report.Daily {
		return dailyTicks(periods)
	}
	return monthlyTicks(periods)
}

func dailyTicks(periods []string) []string {
	out := make([]string, len(periods))
	for i, p := range periods {
		t, err := time.Parse("2006-01-02", p)
		if err != nil {
			out[i] = p
			continue
		}
		switch {
		case i == 0, t.Day() == 1:
			out[i] = t.Format(fullDailyFormat)
		default:
			out[i] = t.Format(dayOnlyFormat)
		}
	}
	return out
}

func monthlyTicks(periods []string) []string {
	out := make([]string, len(periods))
	for i, p := range periods {
		switch {
		case i == 0, len(p) < 7, p[5:7] == "01":
			out[i] = p
		default:
			out[i] = p[5:7]
		}
	}
	return out
}
