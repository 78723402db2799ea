package session

import (
	"context"
	"strings"

	"spendbook/internal/chart"
	"spendbook/internal/core"
	"spendbook/internal/ledger"
	"spendbook/internal/log"
	"spendbook/internal/report"
)

// insertFlow enters records into one ledger until the user exits or
// cancels. The All Ledgers selection is a read-only view here: it shows
// the union and skips straight to the continue prompt.
func (s *Session) insertFlow(ctx context.Context) error {
	sel, err := s.selectLedger(ctx)
	if err != nil {
		return err
	}
	for {
		if !sel.IsAll() {
			if err := s.showView(ctx, "Original Ledger", sel); err != nil {
				return err
			}
			s.display.Message("\nEnter record")

			date, err := s.promptDate()
			if err != nil {
				return err
			}
			category, err := s.selectCategory()
			if err != nil {
				return err
			}
			amount, err := s.promptAmount()
			if err != nil {
				return err
			}
			note, err := s.readLine("Note: ")
			if err != nil {
				return err
			}

			rec := core.NewRecord(date, category, amount, note)
			if err := s.store.Append(ctx, sel.Name(), rec); err != nil {
				return err
			}
			s.logger.Info("record appended",
				log.FieldOperation, log.OpAppend,
				log.FieldLedger, sel.Name(),
				log.FieldDate, rec.Date.String(),
				log.FieldCategory, rec.Category.String(),
				log.FieldAmount, rec.Amount.String())
		}

		if err := s.showView(ctx, "\nUpdated Ledger", sel); err != nil {
			return err
		}
		sel, err = s.continueEdit(ctx, sel)
		if err != nil {
			return err
		}
	}
}

// deleteFlow removes one record by display rank. Ranks are resolved
// against a view fetched in the same step, so the mapping cannot go stale.
func (s *Session) deleteFlow(ctx context.Context) error {
	sel, err := s.selectLedger(ctx)
	if err != nil {
		return err
	}
	for {
		if !sel.IsAll() {
			view, err := s.repo.Fetch(ctx, sel)
			if err != nil {
				return err
			}
			s.display.View("Original Ledger", view)

			if len(view.Rows) == 0 {
				s.display.Message("Nothing to delete")
			} else {
				rank, err := s.promptRank(len(view.Rows))
				if err != nil {
					return err
				}
				if err := s.repo.DeleteRank(ctx, sel, rank); err != nil {
					return err
				}
				s.logger.Info("record deleted",
					log.FieldOperation, log.OpDeleteRow,
					log.FieldLedger, sel.Name(),
					log.FieldRank, rank)
			}
		}

		if err := s.showView(ctx, "\nUpdated Ledger", sel); err != nil {
			return err
		}
		sel, err = s.continueEdit(ctx, sel)
		if err != nil {
			return err
		}
	}
}

func (s *Session) promptRank(n int) (int, error) {
	for {
		line, err := s.readLine("\nSelect row number to delete: ")
		if err != nil {
			return 0, err
		}
		rank, err := core.ParseChoice(line, n)
		if err != nil {
			s.display.Error("Invalid input, please re-enter")
			continue
		}
		return rank, nil
	}
}

func (s *Session) createFlow(ctx context.Context) error {
	for {
		if err := s.showLedgerList(ctx, "Original Ledger List"); err != nil {
			return err
		}
		name, err := s.promptLedgerName(ctx)
		if err != nil {
			return err
		}
		if err := s.store.CreateLedger(ctx, name); err != nil {
			return err
		}
		s.logger.Info("ledger created",
			log.FieldOperation, log.OpCreateLedger,
			log.FieldLedger, name)
		if err := s.showLedgerList(ctx, "\nUpdated Ledger List"); err != nil {
			return err
		}

		again, err := s.continueProcess()
		if err != nil {
			return err
		}
		if !again {
			return nil
		}
	}
}

func (s *Session) promptLedgerName(ctx context.Context) (string, error) {
	names, err := s.store.ListLedgers(ctx)
	if err != nil {
		return "", err
	}
	taken := map[string]bool{}
	for _, n := range names {
		taken[n] = true
	}
	for {
		line, err := s.readLine("New Ledger Name: ")
		if err != nil {
			return "", err
		}
		name := strings.TrimSpace(line)
		switch {
		case name == "":
			s.display.Error("Invalid input, please re-enter")
		case taken[name]:
			s.display.Error("Ledger already exists, please re-enter")
		default:
			return name, nil
		}
	}
}

func (s *Session) deleteLedgerFlow(ctx context.Context) error {
	for {
		sel, err := s.selectLedger(ctx)
		if err != nil {
			return err
		}
		if !sel.IsAll() {
			if err := s.store.DeleteLedger(ctx, sel.Name()); err != nil {
				return err
			}
			s.display.Message(sel.Name() + " has been deleted...")
			s.logger.Info("ledger deleted",
				log.FieldOperation, log.OpDeleteLedger,
				log.FieldLedger, sel.Name())
		}
		if err := s.showLedgerList(ctx, "\nUpdated Ledger List"); err != nil {
			return err
		}
		again, err := s.continueView()
		if err != nil {
			return err
		}
		if !again {
			return nil
		}
	}
}

// viewFlow shows a ledger's ranked records and its monthly balance
// summary. The cross-ledger view adds the TOTAL row.
func (s *Session) viewFlow(ctx context.Context) error {
	sel, err := s.selectLedger(ctx)
	if err != nil {
		return err
	}
	for {
		view, err := s.repo.Fetch(ctx, sel)
		if err != nil {
			return err
		}
		s.display.View(sel.Title(), view)

		recs := make([]core.Record, len(view.Rows))
		for i, row := range view.Rows {
			recs[i] = row.Record
		}
		s.display.Balance(balanceTitle(sel), report.Balance(recs, sel.IsAll()))

		again, err := s.continueView()
		if err != nil {
			return err
		}
		if !again {
			return nil
		}
		sel, err = s.selectLedger(ctx)
		if err != nil {
			return err
		}
	}
}

// chartFlow renders one of the chart payloads (or all three) for the
// selected ledger. Building the payloads is the reporting adapter's job;
// this flow only picks the granularity and the titles.
func (s *Session) chartFlow(ctx context.Context) error {
	sel, err := s.selectLedger(ctx)
	if err != nil {
		return err
	}
	kind, err := s.selectChart()
	if err != nil {
		return err
	}
	for {
		if err := s.showView(ctx, sel.Title(), sel); err != nil {
			return err
		}
		if err := s.renderCharts(ctx, sel, kind); err != nil {
			return err
		}
		if _, err := s.readLine("\nPress Enter to continue..."); err != nil {
			return err
		}

		again, err := s.continueView()
		if err != nil {
			return err
		}
		if !again {
			return nil
		}
		if sel, err = s.selectLedger(ctx); err != nil {
			return err
		}
		if kind, err = s.selectChart(); err != nil {
			return err
		}
	}
}

func (s *Session) renderCharts(ctx context.Context, sel ledger.Selection, kind int) error {
	recs, err := sel.Records(ctx, s.store)
	if err != nil {
		return err
	}
	granularity := report.Daily
	if sel.IsAll() {
		granularity = report.Monthly
	}
	pivot := report.Pivot(recs, granularity)

	name := chartItems[kind-1]
	s.logger.Info("chart rendered",
		log.FieldOperation, log.OpChart,
		log.FieldLedger, sel.Title(),
		log.FieldChart, name)

	if name == "Expense Summary - Pie" || name == "All" {
		s.display.Pie(chart.Pie(report.CategoryTotals(pivot), pieTitle(sel)))
	}
	if name == "Expense Summary - Bar" || name == "All" {
		stacked := pivot
		if !sel.IsAll() {
			stacked = report.FillDaily(pivot)
		}
		s.display.Bar(chart.StackedBar(stacked, stackedTitle(sel)))
	}
	if name == "Balance Summary" || name == "All" {
		s.display.Bar(chart.GroupedBar(report.Balance(recs, false), balanceTitle(sel)))
	}
	return nil
}

// showView fetches and displays the current sorted view of a selection.
func (s *Session) showView(ctx context.Context, title string, sel ledger.Selection) error {
	view, err := s.repo.Fetch(ctx, sel)
	if err != nil {
		return err
	}
	s.display.View(title, view)
	return nil
}

func (s *Session) showLedgerList(ctx context.Context, title string) error {
	names, err := s.store.ListLedgers(ctx)
	if err != nil {
		return err
	}
	s.display.Message(title)
	s.display.Ledgers(names)
	return nil
}

// continueEdit is the post-mutation prompt: repeat on the same ledger,
// switch ledger, or back to the main menu.
func (s *Session) continueEdit(ctx context.Context, sel ledger.Selection) (ledger.Selection, error) {
	for {
		line, err := s.readLine("\nPress 1 to edit another record; press 2 to switch ledger; press 3 to exit: ")
		if err != nil {
			return ledger.Selection{}, err
		}
		switch strings.TrimSpace(line) {
		case "1":
			return sel, nil
		case "2":
			return s.selectLedger(ctx)
		case "3":
			return ledger.Selection{}, errCanceled
		}
	}
}

// continueView is the post-view prompt: true to pick another ledger.
func (s *Session) continueView() (bool, error) {
	for {
		line, err := s.readLine("\nPress 1 to select another ledger; press 2 to exit: ")
		if err != nil {
			return false, err
		}
		switch strings.TrimSpace(line) {
		case "1":
			return true, nil
		case "2":
			return false, nil
		}
	}
}

// continueProcess is the create-ledger prompt: true to create another.
func (s *Session) continueProcess() (bool, error) {
	for {
		line, err := s.readLine("\nPress 1 to continue; press 2 to exit: ")
		if err != nil {
			return false, err
		}
		switch strings.TrimSpace(line) {
		case "1":
			return true, nil
		case "2":
			return false, nil
		}
	}
}

func balanceTitle(sel ledger.Selection) string {
	if sel.IsAll() {
		return "Monthly Balance Summary"
	}
	return sel.Name() + " Balance Summary"
}

func stackedTitle(sel ledger.Selection) string {
	if sel.IsAll() {
		return "Monthly Expense Summary"
	}
	return sel.Name() + " Daily Expense Summary"
}

func pieTitle(sel ledger.Selection) string {
	if sel.IsAll() {
		return "Expense Summary by Category"
	}
	return sel.Name() + " Expense Summary by Category"
}
