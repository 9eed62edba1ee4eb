package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"finanzas/internal/core"
)

func month(y int, m time.Month) time.Time {
	return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
}

func TestDashboardUpdateSettings(t *testing.T) {
	s := New()
	s.SeedDashboard(core.Dashboard{
		Month:    month(2025, time.December),
		Expenses: core.Money{Cents: 50000},
		State:    "OK",
	})

	d, err := s.Dashboards().UpdateSettings(context.Background(), month(2025, time.December),
		core.Money{Cents: 300000}, core.Money{Cents: 100000}, core.Money{Cents: 90000})
	if err != nil {
		t.Fatalf("UpdateSettings: %v", err)
	}
	if d.FreeMoney.Cents != 60000 {
		t.Fatalf("FreeMoney = %d, want 60000", d.FreeMoney.Cents)
	}

	got, err := s.Dashboards().FindByMonth(context.Background(), month(2025, time.December))
	if err != nil {
		t.Fatalf("FindByMonth: %v", err)
	}
	if got.Income.Cents != 300000 {
		t.Fatalf("Income = %d, want 300000", got.Income.Cents)
	}
}

func TestDashboardMonthNotFound(t *testing.T) {
	s := New()
	_, err := s.Dashboards().UpdateSettings(context.Background(), month(2031, time.March),
		core.Money{Cents: 1}, core.Money{}, core.Money{})
	if !errors.Is(err, core.ErrMonthNotFound) {
		t.Fatalf("err = %v, want ErrMonthNotFound", err)
	}
}

func TestNetWorthSaveAndOrder(t *testing.T) {
	s := New()
	ctx := context.Background()

	if _, err := s.NetWorth().Save(ctx, month(2025, time.November), core.Money{Cents: 100000}, core.Money{Cents: 50000}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	nw, err := s.NetWorth().Save(ctx, month(2025, time.December), core.Money{Cents: 120000}, core.Money{Cents: 60000})
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if nw.Total.Cents != 180000 {
		t.Fatalf("Total = %d, want 180000", nw.Total.Cents)
	}

	// Saving an existing month overwrites without duplicating the row.
	if _, err := s.NetWorth().Save(ctx, month(2025, time.November), core.Money{Cents: 110000}, core.Money{Cents: 50000}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	all, err := s.NetWorth().FindAll(ctx)
	if err != nil {
		t.Fatalf("FindAll: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("len = %d, want 2", len(all))
	}
	if !all[0].Month.Equal(month(2025, time.November)) || all[0].Total.Cents != 160000 {
		t.Fatalf("first row = %+v", all[0])
	}
}

func TestTransactionAddValidates(t *testing.T) {
	s := New()
	ctx := context.Background()

	_, err := s.Transactions().Add(ctx, core.Transaction{
		CollectionDate: month(2025, time.December),
		Concept:        "Café",
		Category:       "Ocio",
	})
	if !errors.Is(err, core.ErrInvalidAmount) {
		t.Fatalf("err = %v, want ErrInvalidAmount", err)
	}

	if _, err := s.Transactions().Add(ctx, core.Transaction{
		CollectionDate: time.Date(2025, time.December, 8, 0, 0, 0, 0, time.UTC),
		Concept:        "Café",
		Amount:         core.Money{Cents: 350},
		Category:       "Ocio",
	}); err != nil {
		t.Fatalf("Add: %v", err)
	}

	all, err := s.Transactions().FindAll(ctx)
	if err != nil {
		t.Fatalf("FindAll: %v", err)
	}
	if len(all) != 1 || all[0].Concept != "Café" {
		t.Fatalf("transactions = %+v", all)
	}
}
