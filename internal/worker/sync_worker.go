// Package worker replays locally captured movements from SQLite to the
// Gastos sheet.
package worker

import (
	"context"
	"fmt"
	"log/slog"

	"finanzas/internal/amqp"
	"finanzas/internal/core"
	"finanzas/internal/sheets"
	"finanzas/internal/storage"
)

type SyncWorker struct {
	storage   *storage.SQLiteRepository
	sheets    sheets.TransactionRepository
	batchSize int
}

func NewSyncWorker(store *storage.SQLiteRepository, sheetRepo sheets.TransactionRepository, batchSize int) *SyncWorker {
	return &SyncWorker{
		storage:   store,
		sheets:    sheetRepo,
		batchSize: batchSize,
	}
}

// HandleSyncMessage processes one replay request from the queue.
func (w *SyncWorker) HandleSyncMessage(ctx context.Context, msg *amqp.TransactionSyncMessage) error {
	slog.InfoContext(ctx, "procesando mensaje de sincronización",
		"id", msg.ID,
		"version", msg.Version,
		"message_id", msg.MessageID)

	tx, err := w.storage.GetTransaction(ctx, msg.ID)
	if err != nil {
		return fmt.Errorf("get transaction from storage: %w", err)
	}

	if err := w.syncTransactionToSheets(ctx, msg.ID, tx); err != nil {
		return fmt.Errorf("sync transaction to sheets: %w", err)
	}

	return nil
}

// ProcessPendingTransactions replays rows that never made it to the sheet.
// Backup path for lost queue messages.
func (w *SyncWorker) ProcessPendingTransactions(ctx context.Context) error {
	pending, err := w.storage.GetPendingSyncTransactions(ctx, w.batchSize)
	if err != nil {
		return fmt.Errorf("get pending transactions: %w", err)
	}

	if len(pending) == 0 {
		return nil
	}

	slog.InfoContext(ctx, "procesando movimientos pendientes", "count", len(pending))

	for _, p := range pending {
		tx, err := w.storage.GetTransaction(ctx, p.ID)
		if err != nil {
			slog.ErrorContext(ctx, "fallo cargando movimiento", "id", p.ID, "error", err)
			if err := w.storage.MarkSyncError(ctx, p.ID); err != nil {
				slog.ErrorContext(ctx, "fallo marcando error de sincronización", "id", p.ID, "error", err)
			}
			continue
		}

		if err := w.syncTransactionToSheets(ctx, p.ID, tx); err != nil {
			slog.ErrorContext(ctx, "fallo sincronizando movimiento", "id", p.ID, "error", err)
			continue
		}
	}

	return nil
}

// StartupSyncCheck drains a larger pending batch once at worker start, to
// recover from downtime.
func (w *SyncWorker) StartupSyncCheck(ctx context.Context) error {
	pending, err := w.storage.GetPendingSyncTransactions(ctx, w.batchSize*5)
	if err != nil {
		return fmt.Errorf("get pending transactions for startup check: %w", err)
	}

	if len(pending) == 0 {
		slog.InfoContext(ctx, "sin movimientos pendientes al arrancar")
		return nil
	}

	slog.InfoContext(ctx, "movimientos pendientes al arrancar", "count", len(pending))

	synced, failed := 0, 0
	for _, p := range pending {
		tx, err := w.storage.GetTransaction(ctx, p.ID)
		if err != nil {
			slog.ErrorContext(ctx, "fallo cargando movimiento", "id", p.ID, "error", err)
			if err := w.storage.MarkSyncError(ctx, p.ID); err != nil {
				slog.ErrorContext(ctx, "fallo marcando error de sincronización", "id", p.ID, "error", err)
			}
			failed++
			continue
		}

		if err := w.syncTransactionToSheets(ctx, p.ID, tx); err != nil {
			slog.ErrorContext(ctx, "fallo sincronizando movimiento", "id", p.ID, "error", err)
			failed++
			continue
		}
		synced++
	}

	slog.InfoContext(ctx, "revisión inicial completada",
		"total", len(pending),
		"synced", synced,
		"errors", failed)

	return nil
}

func (w *SyncWorker) syncTransactionToSheets(ctx context.Context, id int64, tx core.Transaction) error {
	if _, err := w.sheets.Add(ctx, tx); err != nil {
		if markErr := w.storage.MarkSyncError(ctx, id); markErr != nil {
			slog.ErrorContext(ctx, "fallo marcando error de sincronización", "id", id, "error", markErr)
		}
		return fmt.Errorf("append to sheets: %w", err)
	}

	if err := w.storage.MarkSynced(ctx, id); err != nil {
		// The append worked, just log the bookkeeping failure.
		slog.ErrorContext(ctx, "fallo marcando como sincronizado", "id", id, "error", err)
	}

	slog.InfoContext(ctx, "movimiento sincronizado",
		"id", id,
		"concepto", tx.Concept,
		"importe_cents", tx.Amount.Cents)

	return nil
}
