package google

import (
	"context"
	"log/slog"
	"strconv"

	"finanzas/internal/core"
	"finanzas/internal/dates"
	ports "finanzas/internal/sheets"
)

// Gastos tab columns (A:D): FECHA COBRO, CONCEPTO, IMPORTE, CATEGORIA.
type TransactionRepository struct {
	api   valuesAPI
	sheet string
}

var _ ports.TransactionRepository = (*TransactionRepository)(nil)

func NewTransactionRepository(api valuesAPI, sheet string) *TransactionRepository {
	if sheet == "" {
		sheet = "Gastos"
	}
	return &TransactionRepository{api: api, sheet: sheet}
}

// Add appends one row unconditionally: no existence check, no dedup.
func (r *TransactionRepository) Add(ctx context.Context, tx core.Transaction) (core.Transaction, error) {
	if err := tx.Validate(); err != nil {
		return core.Transaction{}, err
	}
	row := []interface{}{
		dates.FormatDayKey(tx.CollectionDate),
		tx.Concept,
		strconv.FormatFloat(tx.Amount.Euros(), 'f', 2, 64),
		tx.Category,
	}
	rowNum, err := r.api.AppendValues(ctx, r.sheet+"!A:D", row)
	if err != nil {
		return core.Transaction{}, err
	}
	slog.InfoContext(ctx, "Transaction appended",
		"sheet", r.sheet,
		"row", rowNum,
		"concept", tx.Concept,
		"amount_cents", tx.Amount.Cents,
		"category", tx.Category)
	tx.CollectionDate = tx.CollectionDate.UTC()
	return tx, nil
}

// FindAll returns the transactions in sheet row order. Rows that are empty,
// carry an error sentinel, or fail to parse are dropped.
func (r *TransactionRepository) FindAll(ctx context.Context) ([]core.Transaction, error) {
	rows, err := r.api.ValuesForRange(ctx, r.sheet+"!A:D")
	if err != nil {
		return nil, err
	}
	out := make([]core.Transaction, 0, len(rows))
	for i, row := range rows {
		if i == 0 {
			continue
		}
		cells := ports.CellStrings(row)
		if !ports.IsValidRow(cells) {
			continue
		}
		tx, err := mapTransactionRow(cells)
		if err != nil {
			slog.DebugContext(ctx, "Skipping unparseable transaction row", "row", i+1, "error", err)
			continue
		}
		out = append(out, tx)
	}
	return out, nil
}

func mapTransactionRow(cells []string) (core.Transaction, error) {
	date, err := dates.ParseDayKey(ports.CellAt(cells, 0))
	if err != nil {
		return core.Transaction{}, err
	}
	amount, err := core.ParseSheetAmount(ports.CellAt(cells, 2))
	if err != nil {
		return core.Transaction{}, err
	}
	return core.Transaction{
		CollectionDate: date,
		Concept:        ports.CellAt(cells, 1),
		Amount:         amount,
		Category:       ports.CellAt(cells, 3),
	}, nil
}
