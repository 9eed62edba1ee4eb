package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"finanzas/internal/core"
)

func newTestRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "finanzas.db"))
	if err != nil {
		t.Fatalf("NewSQLiteRepository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestDashboardSettingsRoundTrip(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	december := time.Date(2025, time.December, 1, 0, 0, 0, 0, time.UTC)

	if err := repo.SeedDashboard(ctx, core.Dashboard{
		Month:    december,
		Expenses: core.Money{Cents: 50000},
		State:    "OK",
	}); err != nil {
		t.Fatalf("SeedDashboard: %v", err)
	}

	dash, err := repo.Dashboards().UpdateSettings(ctx, december,
		core.Money{Cents: 300000}, core.Money{Cents: 100000}, core.Money{Cents: 90000})
	if err != nil {
		t.Fatalf("UpdateSettings: %v", err)
	}
	if dash.FreeMoney.Cents != 60000 {
		t.Fatalf("FreeMoney = %d, want 60000", dash.FreeMoney.Cents)
	}
	if !dash.Month.Equal(december) {
		t.Fatalf("Month = %v, want %v", dash.Month, december)
	}
}

func TestDashboardUpdateUnknownMonth(t *testing.T) {
	repo := newTestRepo(t)
	_, err := repo.Dashboards().UpdateSettings(context.Background(),
		time.Date(2031, time.March, 1, 0, 0, 0, 0, time.UTC),
		core.Money{Cents: 1}, core.Money{}, core.Money{})
	if !errors.Is(err, core.ErrMonthNotFound) {
		t.Fatalf("err = %v, want ErrMonthNotFound", err)
	}
}

func TestNetWorthSaveIsUpsert(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	november := time.Date(2025, time.November, 1, 0, 0, 0, 0, time.UTC)
	december := time.Date(2025, time.December, 1, 0, 0, 0, 0, time.UTC)

	if _, err := repo.NetWorth().Save(ctx, december, core.Money{Cents: 120000}, core.Money{Cents: 60000}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := repo.NetWorth().Save(ctx, november, core.Money{Cents: 100000}, core.Money{Cents: 50000}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	nw, err := repo.NetWorth().Save(ctx, november, core.Money{Cents: 110000}, core.Money{Cents: 50000})
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if nw.Total.Cents != 160000 {
		t.Fatalf("Total = %d, want 160000", nw.Total.Cents)
	}

	all, err := repo.NetWorth().FindAll(ctx)
	if err != nil {
		t.Fatalf("FindAll: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("len = %d, want 2", len(all))
	}
	if !all[0].Month.Equal(november) {
		t.Fatalf("rows not ordered by month: %+v", all)
	}
}

func TestTransactionSyncQueue(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	id, _, err := repo.AddTransaction(ctx, core.Transaction{
		CollectionDate: time.Date(2025, time.December, 8, 0, 0, 0, 0, time.UTC),
		Concept:        "Café",
		Amount:         core.Money{Cents: 350},
		Category:       "Ocio",
	})
	if err != nil {
		t.Fatalf("AddTransaction: %v", err)
	}

	pending, err := repo.GetPendingSyncTransactions(ctx, 10)
	if err != nil {
		t.Fatalf("GetPendingSyncTransactions: %v", err)
	}
	if len(pending) != 1 || pending[0].ID != id {
		t.Fatalf("pending = %+v, want single row id %d", pending, id)
	}

	if err := repo.MarkSynced(ctx, id); err != nil {
		t.Fatalf("MarkSynced: %v", err)
	}
	pending, err = repo.GetPendingSyncTransactions(ctx, 10)
	if err != nil {
		t.Fatalf("GetPendingSyncTransactions: %v", err)
	}
	if len(pending) != 0 {
		t.Fatalf("pending after sync = %+v, want empty", pending)
	}

	tx, err := repo.GetTransaction(ctx, id)
	if err != nil {
		t.Fatalf("GetTransaction: %v", err)
	}
	if tx.Concept != "Café" || tx.Amount.Cents != 350 {
		t.Fatalf("transaction = %+v", tx)
	}
}

func TestTransactionAddRejectsInvalid(t *testing.T) {
	repo := newTestRepo(t)
	_, err := repo.Transactions().Add(context.Background(), core.Transaction{
		CollectionDate: time.Date(2025, time.December, 8, 0, 0, 0, 0, time.UTC),
		Concept:        "Café",
		Category:       "Ocio",
	})
	if !errors.Is(err, core.ErrInvalidAmount) {
		t.Fatalf("err = %v, want ErrInvalidAmount", err)
	}
}
