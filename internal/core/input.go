// Package core provides the ledger domain types and the input parsing
// utilities shared by every interactive prompt.
//
// All parsers reject rather than coerce: the session layer re-prompts on
// failure, so a parse error never propagates past the prompt that caused it.
package core

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount accepts any value parseable as a decimal number, including
// negative and zero. No range limits; the sign is imposed later from the
// category, not here.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Decimal{}, ErrInvalidAmount
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, ErrInvalidAmount
	}
	return d, nil
}

// ParseChoice accepts only digit strings in [1, n]. Used for menu,
// category, chart and ledger selection.
func ParseChoice(s string, n int) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidChoice
	}
	v := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, ErrInvalidChoice
		}
		v = v*10 + int(r-'0')
		if v > n {
			return 0, ErrInvalidChoice
		}
	}
	if v < 1 {
		return 0, ErrInvalidChoice
	}
	return v, nil
}
