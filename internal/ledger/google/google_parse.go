package google

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"spendbook/internal/core"
	"spendbook/internal/ledger"
)

// parseRows converts a values matrix (as returned by the Sheets API,
// header excluded) into records. Blank lines are skipped; a malformed
// date or amount is a corrupt workbook, not bad user input.
func parseRows(values [][]interface{}) ([]core.Record, error) {
	var out []core.Record
	for i, row := range values {
		if len(row) == 0 {
			continue
		}
		dateStr := cellString(row, 0)
		if dateStr == "" {
			continue
		}
		t, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			return nil, fmt.Errorf("row %d: parse date %q: %w", i+ledger.HeaderOffset, dateStr, err)
		}
		amount, err := decimal.NewFromString(cellString(row, 2))
		if err != nil {
			return nil, fmt.Errorf("row %d: parse amount %q: %w", i+ledger.HeaderOffset, cellString(row, 2), err)
		}
		out = append(out, core.Record{
			Date:     core.Date{Time: t},
			Category: core.Category(cellString(row, 1)),
			Amount:   amount,
			Note:     cellString(row, 3),
		})
	}
	return out, nil
}

// recordRow formats a record for the A:D value range.
func recordRow(r core.Record) []interface{} {
	return []interface{}{r.Date.String(), r.Category.String(), r.Amount.String(), r.Note}
}

func headerRow() []interface{} {
	row := make([]interface{}, len(ledger.Header))
	for i, h := range ledger.Header {
		row[i] = h
	}
	return row
}

func cellString(row []interface{}, i int) string {
	if i >= len(row) {
		return ""
	}
	s, ok := row[i].(string)
	if !ok {
		return fmt.Sprint(row[i])
	}
	return s
}
