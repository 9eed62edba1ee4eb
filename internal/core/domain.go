package core

import (
	"strings"
	"time"
	"unicode/utf8"
)

type (
	Money struct {
		Cents int64
	}

	// Dashboard is the monthly overview row: one row per calendar month,
	// Month always normalized to day 1 UTC. Expenses, FreeMoney and State
	// are computed by the spreadsheet and never written by the application.
	Dashboard struct {
		Month            time.Time
		Income           Money
		Expenses         Money
		SavingTarget     Money
		InvestmentTarget Money
		FreeMoney        Money
		State            string
	}

	// NetWorth is one Patrimonio row. Total is sheet-computed; when the
	// sheet leaves it blank the adapter recomputes CashSavings + Invested.
	NetWorth struct {
		Month       time.Time
		CashSavings Money
		Invested    Money
		Total       Money
	}

	// Transaction is one Gastos row. Append-only: the application never
	// mutates or removes transactions.
	Transaction struct {
		CollectionDate time.Time
		Concept        string
		Amount         Money
		Category       string
	}
)

// Balance returns income minus expenses for the month.
func (d Dashboard) Balance() Money {
	return Money{Cents: d.Income.Cents - d.Expenses.Cents}
}

// IsEmpty reports whether the record carries no data at all.
func (d Dashboard) IsEmpty() bool {
	return d.Month.IsZero()
}

// ComputedTotal returns the sheet total, or cash+invested when the sheet
// left the column blank.
func (n NetWorth) ComputedTotal() Money {
	if n.Total.Cents != 0 {
		return n.Total
	}
	return Money{Cents: n.CashSavings.Cents + n.Invested.Cents}
}

func (m Money) Validate() error {
	if m.Cents <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (t Transaction) Validate() error {
	if t.CollectionDate.IsZero() {
		return NewFormatError("", "fecha de cobro vacía")
	}
	if strings.TrimSpace(t.Concept) == "" {
		return ErrEmptyConcept
	}
	if utf8.RuneCountInString(t.Concept) > 200 {
		return NewFormatError(string([]rune(t.Concept)[:20]), "concepto demasiado largo (máx 200 caracteres)")
	}
	if err := t.Amount.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(t.Category) == "" {
		return ErrEmptyCategory
	}
	return nil
}

// MonthStart normalizes t to the first day of its month, UTC.
func MonthStart(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), 1, 0, 0, 0, 0, time.UTC)
}
