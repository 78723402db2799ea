package core

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	Grocery    Category = "grocery/food"
	Utility    Category = "utility"
	MonthlyFee Category = "monthly fee"
	Rent       Category = "rent"
	Other      Category = "other"
	Income     Category = "income"
)

type (
	Category string

	Date struct {
		time.Time
	}

	// Record is one dated, categorized, signed monetary entry.
	// Amount is negative for every category except Income.
	Record struct {
		Date     Date
		Category Category
		Amount   decimal.Decimal
		Note     string
	}
)

var (
	ErrInvalidDate     = errors.New("invalid date")
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrInvalidChoice   = errors.New("invalid choice")
	ErrInvalidCategory = errors.New("invalid category")
)

// Categories returns the closed category set in schema order.
// Other and Income are the last two entries by construction; pivot
// tables rely on this ordering.
func Categories() []Category {
	return []Category{Grocery, Utility, MonthlyFee, Rent, Other, Income}
}

func (c Category) IsValid() bool {
	for _, v := range Categories() {
		if c == v {
			return true
		}
	}
	return false
}

func (c Category) String() string { return string(c) }

// NewDate creates a Date from year, month, day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate accepts exactly the 8-digit YYYYMMDD form.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if len(s) != 8 {
		return Date{}, ErrInvalidDate
	}
	t, err := time.Parse("20060102", s)
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return Date{Time: t}, nil
}

// String formats the date as 2006-01-02.
func (d Date) String() string { return d.Format("2006-01-02") }

// MonthKey returns the YYYY-MM aggregation key.
func (d Date) MonthKey() string { return d.Format("2006-01") }

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// Before reports whether d sorts before x.
func (d Date) Before(x Date) bool { return d.Time.Before(x.Time) }

// NewRecord builds a record with the sign imposed from the category:
// the entered magnitude is negated for every category except Income.
// Sign is imposed here once and never re-derived later.
func NewRecord(date Date, category Category, amount decimal.Decimal, note string) Record {
	if category != Income {
		amount = amount.Abs().Neg()
	} else {
		amount = amount.Abs()
	}
	return Record{Date: date, Category: category, Amount: amount, Note: note}
}

func (r Record) Validate() error {
	if err := r.Date.Validate(); err != nil {
		return err
	}
	if !r.Category.IsValid() {
		return ErrInvalidCategory
	}
	if r.Category == Income && r.Amount.IsNegative() {
		return ErrInvalidAmount
	}
	if r.Category != Income && r.Amount.IsPositive() {
		return ErrInvalidAmount
	}
	return nil
}
