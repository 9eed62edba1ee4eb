package worker

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"finanzas/internal/amqp"
	"finanzas/internal/core"
	"finanzas/internal/sheets/memory"
	"finanzas/internal/storage"
)

func newTestStorage(t *testing.T) *storage.SQLiteRepository {
	t.Helper()
	repo, err := storage.NewSQLiteRepository(filepath.Join(t.TempDir(), "finanzas.db"))
	if err != nil {
		t.Fatalf("NewSQLiteRepository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func addPending(t *testing.T, repo *storage.SQLiteRepository) int64 {
	t.Helper()
	id, _, err := repo.AddTransaction(context.Background(), core.Transaction{
		CollectionDate: time.Date(2025, time.December, 8, 0, 0, 0, 0, time.UTC),
		Concept:        "Café",
		Amount:         core.Money{Cents: 350},
		Category:       "Ocio",
	})
	if err != nil {
		t.Fatalf("AddTransaction: %v", err)
	}
	return id
}

func TestHandleSyncMessage(t *testing.T) {
	repo := newTestStorage(t)
	store := memory.New()
	w := NewSyncWorker(repo, store.Transactions(), 10)
	ctx := context.Background()

	id := addPending(t, repo)

	if err := w.HandleSyncMessage(ctx, amqp.NewTransactionSyncMessage(id, 1)); err != nil {
		t.Fatalf("HandleSyncMessage: %v", err)
	}

	synced, err := store.Transactions().FindAll(ctx)
	if err != nil {
		t.Fatalf("FindAll: %v", err)
	}
	if len(synced) != 1 || synced[0].Concept != "Café" {
		t.Fatalf("sheet rows = %+v, want the café movement", synced)
	}

	pending, err := repo.GetPendingSyncTransactions(ctx, 10)
	if err != nil {
		t.Fatalf("GetPendingSyncTransactions: %v", err)
	}
	if len(pending) != 0 {
		t.Fatalf("pending = %+v, want empty", pending)
	}
}

func TestHandleSyncMessageUnknownID(t *testing.T) {
	repo := newTestStorage(t)
	w := NewSyncWorker(repo, memory.New().Transactions(), 10)

	if err := w.HandleSyncMessage(context.Background(), amqp.NewTransactionSyncMessage(999, 1)); err == nil {
		t.Fatal("HandleSyncMessage should fail for unknown id")
	}
}

type failingSheet struct{}

func (failingSheet) Add(context.Context, core.Transaction) (core.Transaction, error) {
	return core.Transaction{}, errors.New("sheet unavailable")
}

func (failingSheet) FindAll(context.Context) ([]core.Transaction, error) {
	return nil, errors.New("sheet unavailable")
}

func TestSyncFailureMarksError(t *testing.T) {
	repo := newTestStorage(t)
	w := NewSyncWorker(repo, failingSheet{}, 10)
	ctx := context.Background()

	id := addPending(t, repo)

	if err := w.HandleSyncMessage(ctx, amqp.NewTransactionSyncMessage(id, 1)); err == nil {
		t.Fatal("HandleSyncMessage should propagate sheet failure")
	}

	// The row left pending state, so a retry loop will not pick it again.
	pending, err := repo.GetPendingSyncTransactions(ctx, 10)
	if err != nil {
		t.Fatalf("GetPendingSyncTransactions: %v", err)
	}
	if len(pending) != 0 {
		t.Fatalf("pending = %+v, want empty after sync error", pending)
	}
}

func TestStartupSyncCheck(t *testing.T) {
	repo := newTestStorage(t)
	store := memory.New()
	w := NewSyncWorker(repo, store.Transactions(), 2)
	ctx := context.Background()

	addPending(t, repo)
	addPending(t, repo)
	addPending(t, repo)

	if err := w.StartupSyncCheck(ctx); err != nil {
		t.Fatalf("StartupSyncCheck: %v", err)
	}

	synced, err := store.Transactions().FindAll(ctx)
	if err != nil {
		t.Fatalf("FindAll: %v", err)
	}
	if len(synced) != 3 {
		t.Fatalf("synced = %d rows, want 3", len(synced))
	}
}
