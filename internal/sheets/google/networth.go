package google

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"finanzas/internal/core"
	"finanzas/internal/dates"
	ports "finanzas/internal/sheets"
)

// Patrimonio tab columns (A:D): MES, HUCHA, INVERTIDO, TOTAL(ro).
type NetWorthRepository struct {
	api   valuesAPI
	sheet string
}

var _ ports.NetWorthRepository = (*NetWorthRepository)(nil)

func NewNetWorthRepository(api valuesAPI, sheet string) *NetWorthRepository {
	if sheet == "" {
		sheet = "Patrimonio"
	}
	return &NetWorthRepository{api: api, sheet: sheet}
}

func (r *NetWorthRepository) FindByMonth(ctx context.Context, month time.Time) (core.NetWorth, error) {
	rows, err := r.api.ValuesForRange(ctx, r.sheet+"!A:D")
	if err != nil {
		return core.NetWorth{}, err
	}
	_, cells, found := findMonthRow(rows, dates.FormatMonthKey(core.MonthStart(month)))
	if !found {
		return core.NetWorth{}, core.ErrMonthNotFound
	}
	return mapNetWorthRow(cells)
}

// FindAll returns every mappable Patrimonio row in sheet order. Broken rows
// (error sentinels, unparseable dates or numbers) are dropped, not fatal.
func (r *NetWorthRepository) FindAll(ctx context.Context) ([]core.NetWorth, error) {
	rows, err := r.api.ValuesForRange(ctx, r.sheet+"!A:D")
	if err != nil {
		return nil, err
	}
	out := make([]core.NetWorth, 0, len(rows))
	for i, row := range rows {
		if i == 0 {
			continue
		}
		cells := ports.CellStrings(row)
		if !ports.IsValidRow(cells) {
			continue
		}
		nw, err := mapNetWorthRow(cells)
		if err != nil {
			slog.DebugContext(ctx, "Skipping unparseable net worth row", "row", i+1, "error", err)
			continue
		}
		out = append(out, nw)
	}
	return out, nil
}

// Save updates the editable columns (HUCHA, INVERTIDO) of the month's row, or
// appends a new row when the month has none yet. Both paths re-read the row
// afterwards so the returned record carries the sheet-computed TOTAL.
func (r *NetWorthRepository) Save(ctx context.Context, month time.Time, cashSavings, invested core.Money) (core.NetWorth, error) {
	rows, err := r.api.ValuesForRange(ctx, r.sheet+"!A:D")
	if err != nil {
		return core.NetWorth{}, err
	}
	key := dates.FormatMonthKey(core.MonthStart(month))
	rowNum, _, found := findMonthRow(rows, key)

	if found {
		err = r.api.BatchUpdateValues(ctx, []RangeValues{
			{Range: fmt.Sprintf("%s!B%d", r.sheet, rowNum), Values: [][]interface{}{{cashSavings.Euros()}}},
			{Range: fmt.Sprintf("%s!C%d", r.sheet, rowNum), Values: [][]interface{}{{invested.Euros()}}},
		})
		if err != nil {
			return core.NetWorth{}, err
		}
	} else {
		// The append reply resolves the actual row: concurrent external
		// edits make any locally computed next-row guess unreliable.
		rowNum, err = r.api.AppendValues(ctx, r.sheet+"!A:C",
			[]interface{}{key, cashSavings.Euros(), invested.Euros()})
		if err != nil {
			return core.NetWorth{}, err
		}
	}

	return r.readRow(ctx, rowNum)
}

func (r *NetWorthRepository) readRow(ctx context.Context, rowNum int) (core.NetWorth, error) {
	rows, err := r.api.ValuesForRange(ctx, fmt.Sprintf("%s!A%d:D%d", r.sheet, rowNum, rowNum))
	if err != nil {
		return core.NetWorth{}, err
	}
	if len(rows) == 0 {
		return core.NetWorth{}, fmt.Errorf("fila %d: %w", rowNum, core.ErrNoData)
	}
	return mapNetWorthRow(ports.CellStrings(rows[0]))
}

func mapNetWorthRow(cells []string) (core.NetWorth, error) {
	month, err := dates.ParseMonthKey(ports.CellAt(cells, 0))
	if err != nil {
		return core.NetWorth{}, err
	}
	cash, err := core.ParseSheetAmount(ports.CellAt(cells, 1))
	if err != nil {
		return core.NetWorth{}, err
	}
	invested, err := core.ParseSheetAmount(ports.CellAt(cells, 2))
	if err != nil {
		return core.NetWorth{}, err
	}
	total, err := core.ParseSheetAmount(ports.CellAt(cells, 3))
	if err != nil {
		return core.NetWorth{}, err
	}
	nw := core.NetWorth{Month: month, CashSavings: cash, Invested: invested, Total: total}
	// A freshly appended row has no TOTAL formula result yet.
	nw.Total = nw.ComputedTotal()
	return nw, nil
}
