// Package session drives the interactive control loop: main menu, ledger
// selection, record entry and deletion, views and charts. It is a strict
// call/return loop; every flow ends back at the main menu and the process
// only exits from the menu's Exit choice.
//
// Typing the cancel token at any prompt unwinds the current flow to the
// main menu through a single sentinel error, discarding whatever the flow
// had collected so far.
package session

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"spendbook/internal/chart"
	"spendbook/internal/core"
	"spendbook/internal/ledger"
	"spendbook/internal/log"
	"spendbook/internal/records"
	"spendbook/internal/report"
)

// CancelToken aborts the current flow from any prompt.
const CancelToken = "esc"

// errCanceled unwinds a flow to the main menu. Contained within Run.
var errCanceled = errors.New("canceled to main menu")

var menuItems = []string{
	"Insert Record",
	"Delete Record",
	"Create Ledger",
	"Delete Ledger",
	"View Ledger",
	"View Chart",
	"Exit",
}

var chartItems = []string{
	"Expense Summary - Pie",
	"Expense Summary - Bar",
	"Balance Summary",
	"All",
}

// Display is the sink for all structured user-facing output. Prompts are
// written directly by the session; everything tabular or styled goes here.
type Display interface {
	Menu(title string, items []string)
	// LedgerMenu shows the selection list: 0 returns to the main menu,
	// the ledgers follow in workbook order, All Ledgers is last.
	LedgerMenu(names []string)
	Ledgers(names []string)
	View(title string, v records.View)
	Balance(title string, b report.BalanceTable)
	Bar(p chart.BarPayload)
	Pie(p chart.PiePayload)
	Message(msg string)
	Error(msg string)
}

type Session struct {
	store   ledger.Store
	repo    *records.Repository
	display Display
	in      *bufio.Scanner
	out     io.Writer
	logger  *log.Logger
}

func New(store ledger.Store, display Display, in io.Reader, out io.Writer, logger *log.Logger) *Session {
	return &Session{
		store:   store,
		repo:    records.New(store),
		display: display,
		in:      bufio.NewScanner(in),
		out:     out,
		logger:  logger.WithComponent(log.ComponentSession),
	}
}

// Run is the main menu loop. It returns nil when the user picks Exit or
// input ends, and an error only for unrecoverable store failures.
func (s *Session) Run(ctx context.Context) error {
	for {
		choice, err := s.mainMenu()
		if err != nil {
			return exitErr(err)
		}

		switch menuItems[choice-1] {
		case "Insert Record":
			err = s.insertFlow(ctx)
		case "Delete Record":
			err = s.deleteFlow(ctx)
		case "Create Ledger":
			err = s.createFlow(ctx)
		case "Delete Ledger":
			err = s.deleteLedgerFlow(ctx)
		case "View Ledger":
			err = s.viewFlow(ctx)
		case "View Chart":
			err = s.chartFlow(ctx)
		case "Exit":
			s.logger.Info("session finished", log.FieldOperation, log.OpShutdown)
			return nil
		}

		switch {
		case err == nil, errors.Is(err, errCanceled):
			// back to the main menu
		case errors.Is(err, ledger.ErrNotFound),
			errors.Is(err, ledger.ErrRowNotFound),
			errors.Is(err, ledger.ErrLedgerExists),
			errors.Is(err, ledger.ErrReadOnly):
			// Fatal to the operation, not to the session.
			s.display.Error(err.Error())
			s.logger.Warn("operation aborted", log.FieldError, err)
		default:
			return exitErr(err)
		}
	}
}

// exitErr turns end-of-input into a clean exit.
func exitErr(err error) error {
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func (s *Session) mainMenu() (int, error) {
	for {
		s.display.Menu("Main Menu", menuItems)
		line, err := s.readLine("\nPlease select: ")
		if errors.Is(err, errCanceled) {
			// No flow to cancel here; just show the menu again.
			continue
		}
		if err != nil {
			return 0, err
		}
		choice, err := core.ParseChoice(line, len(menuItems))
		if err != nil {
			s.display.Error("Invalid input, please re-select")
			continue
		}
		return choice, nil
	}
}

// readLine reads one input line, mapping the cancel token to errCanceled
// and end of input to io.EOF.
func (s *Session) readLine(prompt string) (string, error) {
	fmt.Fprint(s.out, prompt)
	if !s.in.Scan() {
		if err := s.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	line := s.in.Text()
	if strings.TrimSpace(line) == CancelToken {
		return "", errCanceled
	}
	return line, nil
}

// selectLedger shows every ledger plus the synthetic All Ledgers entry.
// Choosing 0 behaves like the cancel token: straight back to the menu.
func (s *Session) selectLedger(ctx context.Context) (ledger.Selection, error) {
	names, err := s.store.ListLedgers(ctx)
	if err != nil {
		return ledger.Selection{}, err
	}
	for {
		s.display.LedgerMenu(names)
		line, err := s.readLine("\nPlease select a ledger: ")
		if err != nil {
			return ledger.Selection{}, err
		}
		if strings.TrimSpace(line) == "0" {
			return ledger.Selection{}, errCanceled
		}
		choice, err := core.ParseChoice(line, len(names)+1)
		if err != nil {
			s.display.Error("Invalid input, please re-select")
			continue
		}
		if choice == len(names)+1 {
			return ledger.AllLedgers(), nil
		}
		return ledger.Named(names[choice-1]), nil
	}
}

func (s *Session) promptDate() (core.Date, error) {
	for {
		line, err := s.readLine("Date (YYYYMMDD): ")
		if err != nil {
			return core.Date{}, err
		}
		d, err := core.ParseDate(line)
		if err != nil {
			s.display.Error("Invalid input, please re-enter")
			continue
		}
		return d, nil
	}
}

func (s *Session) promptAmount() (decimal.Decimal, error) {
	for {
		line, err := s.readLine("Amount: ")
		if err != nil {
			return decimal.Decimal{}, err
		}
		a, err := core.ParseAmount(line)
		if err != nil {
			s.display.Error("Invalid input, please re-enter")
			continue
		}
		return a, nil
	}
}

func (s *Session) selectCategory() (core.Category, error) {
	cats := core.Categories()
	items := make([]string, len(cats))
	for i, c := range cats {
		items[i] = c.String()
	}
	for {
		s.display.Menu("Category List", items)
		line, err := s.readLine("Category: ")
		if err != nil {
			return "", err
		}
		choice, err := core.ParseChoice(line, len(cats))
		if err != nil {
			s.display.Error("Invalid input, please re-select")
			continue
		}
		return cats[choice-1], nil
	}
}

func (s *Session) selectChart() (int, error) {
	for {
		s.display.Menu("Chart List", chartItems)
		line, err := s.readLine("Please select: ")
		if err != nil {
			return 0, err
		}
		choice, err := core.ParseChoice(line, len(chartItems))
		if err != nil {
			s.display.Error("Invalid input, please re-select")
			continue
		}
		return choice, nil
	}
}
