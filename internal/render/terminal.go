// Package render draws session output on a terminal: ranked record
// tables, balance summaries, menus, and text renditions of the chart
// payloads. It is the session's display collaborator; all aggregation
// happens upstream and arrives here as finished tables and payloads.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"spendbook/internal/chart"
	"spendbook/internal/records"
	"spendbook/internal/report"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#89b4fa"))
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#cdd6f4"))
	totalStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#f9e2af"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#f38ba8"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6c7086"))

	// One color per chart series, reused round-robin.
	seriesColors = []lipgloss.Color{
		"#a6e3a1", "#f38ba8", "#fab387", "#94e2d5", "#cba6f7", "#f5e0dc",
	}
)

const barWidth = 40

type Terminal struct {
	out io.Writer
}

func NewTerminal(out io.Writer) *Terminal {
	return &Terminal{out: out}
}

func (t *Terminal) Message(msg string) {
	fmt.Fprintln(t.out, msg)
}

func (t *Terminal) Error(msg string) {
	fmt.Fprintln(t.out, errorStyle.Render(msg))
}

func (t *Terminal) Menu(title string, items []string) {
	fmt.Fprintln(t.out, titleStyle.Render(title))
	for i, item := range items {
		fmt.Fprintf(t.out, "%d: %s\n", i+1, item)
	}
}

func (t *Terminal) LedgerMenu(names []string) {
	fmt.Fprintf(t.out, "0: %s\n", mutedStyle.Render("Go Back to Main Menu"))
	for i, name := range names {
		fmt.Fprintf(t.out, "%d: %s\n", i+1, name)
	}
	fmt.Fprintf(t.out, "%d: All Ledgers\n", len(names)+1)
}

func (t *Terminal) Ledgers(names []string) {
	if len(names) == 0 {
		fmt.Fprintln(t.out, mutedStyle.Render("(no ledgers)"))
		return
	}
	for i, name := range names {
		fmt.Fprintf(t.out, "%d: %s\n", i+1, name)
	}
}

func (t *Terminal) View(title string, v records.View) {
	fmt.Fprintln(t.out, titleStyle.Render(title))
	if len(v.Rows) == 0 {
		fmt.Fprintln(t.out, mutedStyle.Render("(empty)"))
		return
	}

	noteWidth := len("Note")
	catWidth := len("Category")
	amtWidth := len("Amount")
	for _, row := range v.Rows {
		noteWidth = max(noteWidth, len(row.Record.Note))
		catWidth = max(catWidth, len(row.Record.Category))
		amtWidth = max(amtWidth, len(row.Record.Amount.StringFixed(2)))
	}

	fmt.Fprintln(t.out, headerStyle.Render(fmt.Sprintf("%4s  %-10s  %-*s  %*s  %-*s",
		"#", "Date", catWidth, "Category", amtWidth, "Amount", noteWidth, "Note")))
	for _, row := range v.Rows {
		fmt.Fprintf(t.out, "%4d  %-10s  %-*s  %*s  %-*s\n",
			row.Rank,
			row.Record.Date.String(),
			catWidth, row.Record.Category,
			amtWidth, row.Record.Amount.StringFixed(2),
			noteWidth, row.Record.Note)
	}
}

func (t *Terminal) Balance(title string, b report.BalanceTable) {
	fmt.Fprintln(t.out, "\n"+titleStyle.Render(title))
	if len(b.Rows) == 0 {
		fmt.Fprintln(t.out, mutedStyle.Render("(no data)"))
		return
	}
	fmt.Fprintln(t.out, headerStyle.Render(fmt.Sprintf("%-8s %12s %12s %12s", "Month", "Income", "Expense", "Balance")))
	for i, row := range b.Rows {
		line := fmt.Sprintf("%-8s %12s %12s %12s",
			row.Period,
			row.Income.StringFixed(2),
			row.Expense.StringFixed(2),
			row.Balance.StringFixed(2))
		if b.HasTotal && i == len(b.Rows)-1 {
			line = totalStyle.Render(line)
		}
		fmt.Fprintln(t.out, line)
	}
}

// Bar draws a bar payload as proportional rows of colored blocks, one row
// per period for stacked charts and one row per (period, series) pair for
// grouped charts. Segment labels from the payload are printed as-is;
// suppressed labels stay suppressed.
func (t *Terminal) Bar(p chart.BarPayload) {
	fmt.Fprintln(t.out, "\n"+titleStyle.Render(p.Title))
	fmt.Fprintln(t.out, mutedStyle.Render(p.XLabel+" / "+p.YLabel))
	if len(p.Ticks) == 0 {
		fmt.Fprintln(t.out, mutedStyle.Render("(no data)"))
		return
	}

	scale := barScale(p)
	tickWidth := 0
	for _, tick := range p.Ticks {
		tickWidth = max(tickWidth, len(tick))
	}

	for i, tick := range p.Ticks {
		if p.Stacked {
			var segments, labels []string
			for j, s := range p.Series {
				v := s.Values[i]
				if v.IsZero() {
					continue
				}
				color := seriesColors[j%len(seriesColors)]
				segments = append(segments, lipgloss.NewStyle().Foreground(color).Render(blocks(v, scale)))
				if s.Labels[i] != "" {
					labels = append(labels, s.Name+" "+s.Labels[i])
				}
			}
			fmt.Fprintf(t.out, "%*s  %s  %s\n", tickWidth, tick,
				strings.Join(segments, ""), mutedStyle.Render(strings.Join(labels, ", ")))
		} else {
			fmt.Fprintf(t.out, "%*s\n", tickWidth, tick)
			for j, s := range p.Series {
				color := seriesColors[j%len(seriesColors)]
				fmt.Fprintf(t.out, "%*s  %s %s\n", tickWidth, s.Name,
					lipgloss.NewStyle().Foreground(color).Render(blocks(s.Values[i].Abs(), scale)),
					s.Labels[i])
			}
		}
	}

	var legend []string
	for j, s := range p.Series {
		color := seriesColors[j%len(seriesColors)]
		legend = append(legend, lipgloss.NewStyle().Foreground(color).Render("■ "+s.Name))
	}
	fmt.Fprintln(t.out, strings.Join(legend, "  "))
}

func (t *Terminal) Pie(p chart.PiePayload) {
	fmt.Fprintln(t.out, "\n"+titleStyle.Render(p.Title))
	nameWidth := 0
	for _, s := range p.Slices {
		nameWidth = max(nameWidth, len(s.Category))
	}
	for j, s := range p.Slices {
		color := seriesColors[j%len(seriesColors)]
		share := strings.TrimSuffix(s.Share, "%")
		width := shareBlocks(share)
		fmt.Fprintf(t.out, "%-*s  %6s  %s %s\n",
			nameWidth, s.Category, s.Share,
			lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("█", width)),
			mutedStyle.Render(s.Value.StringFixed(2)))
	}
}

// barScale returns the value one block represents, based on the tallest
// bar in the payload.
func barScale(p chart.BarPayload) decimal.Decimal {
	maxBar := decimal.Zero
	for i := range p.Ticks {
		stack := decimal.Zero
		for _, s := range p.Series {
			v := s.Values[i].Abs()
			if p.Stacked {
				stack = stack.Add(v)
			} else if v.GreaterThan(stack) {
				stack = v
			}
		}
		if stack.GreaterThan(maxBar) {
			maxBar = stack
		}
	}
	if maxBar.IsZero() {
		return decimal.New(1, 0)
	}
	return maxBar.Div(decimal.NewFromInt(barWidth))
}

func blocks(v, scale decimal.Decimal) string {
	n := int(v.Div(scale).IntPart())
	if n < 1 && !v.IsZero() {
		n = 1
	}
	if n > barWidth {
		n = barWidth
	}
	return strings.Repeat("█", n)
}

func shareBlocks(share string) int {
	d, err := decimal.NewFromString(share)
	if err != nil {
		return 0
	}
	n := int(d.Div(decimal.NewFromInt(100)).Mul(decimal.NewFromInt(barWidth)).IntPart())
	if n > barWidth {
		n = barWidth
	}
	return n
}
