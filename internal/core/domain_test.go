package core

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestTransactionValidate(t *testing.T) {
	valid := Transaction{
		CollectionDate: time.Date(2025, 12, 8, 0, 0, 0, 0, time.UTC),
		Concept:        "Café",
		Amount:         Money{Cents: 350},
		Category:       "Ocio",
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid transaction rejected: %v", err)
	}

	noConcept := valid
	noConcept.Concept = "  "
	if err := noConcept.Validate(); !errors.Is(err, ErrEmptyConcept) {
		t.Fatalf("expected ErrEmptyConcept, got %v", err)
	}

	zeroAmount := valid
	zeroAmount.Amount = Money{}
	if err := zeroAmount.Validate(); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}

	noCategory := valid
	noCategory.Category = ""
	if err := noCategory.Validate(); !errors.Is(err, ErrEmptyCategory) {
		t.Fatalf("expected ErrEmptyCategory, got %v", err)
	}

	noDate := valid
	noDate.CollectionDate = time.Time{}
	if err := noDate.Validate(); !IsFormatError(err) {
		t.Fatalf("expected FormatError, got %v", err)
	}
}

func TestTransactionValidateConceptLength(t *testing.T) {
	tx := Transaction{
		CollectionDate: time.Date(2025, 12, 8, 0, 0, 0, 0, time.UTC),
		Amount:         Money{Cents: 350},
		Category:       "Ocio",
	}

	// Multibyte runes count as one character, not their byte width.
	tx.Concept = strings.Repeat("á", 200)
	if err := tx.Validate(); err != nil {
		t.Fatalf("200-rune concept rejected: %v", err)
	}

	tx.Concept = strings.Repeat("á", 201)
	if err := tx.Validate(); !IsFormatError(err) {
		t.Fatalf("expected FormatError for 201 runes, got %v", err)
	}
}

func TestNetWorthComputedTotal(t *testing.T) {
	withTotal := NetWorth{CashSavings: Money{Cents: 100}, Invested: Money{Cents: 200}, Total: Money{Cents: 350}}
	if got := withTotal.ComputedTotal().Cents; got != 350 {
		t.Fatalf("sheet total ignored: got %d", got)
	}
	blankTotal := NetWorth{CashSavings: Money{Cents: 100}, Invested: Money{Cents: 200}}
	if got := blankTotal.ComputedTotal().Cents; got != 300 {
		t.Fatalf("recomputed total: got %d", got)
	}
}

func TestMonthStart(t *testing.T) {
	in := time.Date(2025, 12, 17, 15, 4, 5, 0, time.FixedZone("CET", 3600))
	got := MonthStart(in)
	want := time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("got %v want %v", got, want)
	}
}

func TestDashboardBalance(t *testing.T) {
	d := Dashboard{Income: Money{Cents: 300000}, Expenses: Money{Cents: 150000}}
	if got := d.Balance().Cents; got != 150000 {
		t.Fatalf("balance: got %d", got)
	}
	if !(Dashboard{}).IsEmpty() {
		t.Fatal("zero dashboard should be empty")
	}
}
