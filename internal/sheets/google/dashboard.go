package google

import (
	"context"
	"fmt"
	"time"

	"finanzas/internal/core"
	"finanzas/internal/dates"
	ports "finanzas/internal/sheets"
)

// Dashboard tab columns (A:G): MES, INGRESOS, GASTOS(ro), AHORRO,
// INVERSION, DINERO LIBRE(ro), ESTADO(ro). First row is the header.
type DashboardRepository struct {
	api   valuesAPI
	sheet string
}

var _ ports.DashboardRepository = (*DashboardRepository)(nil)

func NewDashboardRepository(api valuesAPI, sheet string) *DashboardRepository {
	if sheet == "" {
		sheet = "Dashboard"
	}
	return &DashboardRepository{api: api, sheet: sheet}
}

func (r *DashboardRepository) FindByMonth(ctx context.Context, month time.Time) (core.Dashboard, error) {
	rows, err := r.api.ValuesForRange(ctx, r.sheet+"!A:G")
	if err != nil {
		return core.Dashboard{}, err
	}
	_, cells, found := findMonthRow(rows, dates.FormatMonthKey(core.MonthStart(month)))
	if !found {
		return core.Dashboard{}, core.ErrMonthNotFound
	}
	return mapDashboardRow(cells)
}

// UpdateSettings rewrites the three editable columns (INGRESOS, AHORRO,
// INVERSION) of the located month row in one batched call, then re-reads the
// row so the returned record reflects the sheet-computed columns. It never
// creates rows: dashboard months are provisioned in the spreadsheet itself.
func (r *DashboardRepository) UpdateSettings(ctx context.Context, month time.Time, income, savingTarget, investmentTarget core.Money) (core.Dashboard, error) {
	rows, err := r.api.ValuesForRange(ctx, r.sheet+"!A:G")
	if err != nil {
		return core.Dashboard{}, err
	}
	if len(rows) == 0 {
		return core.Dashboard{}, core.ErrNoData
	}
	key := dates.FormatMonthKey(core.MonthStart(month))
	rowNum, _, found := findMonthRow(rows, key)
	if !found {
		return core.Dashboard{}, fmt.Errorf("mes %q: %w", key, core.ErrMonthNotFound)
	}

	err = r.api.BatchUpdateValues(ctx, []RangeValues{
		{Range: fmt.Sprintf("%s!B%d", r.sheet, rowNum), Values: [][]interface{}{{income.Euros()}}},
		{Range: fmt.Sprintf("%s!D%d", r.sheet, rowNum), Values: [][]interface{}{{savingTarget.Euros()}}},
		{Range: fmt.Sprintf("%s!E%d", r.sheet, rowNum), Values: [][]interface{}{{investmentTarget.Euros()}}},
	})
	if err != nil {
		return core.Dashboard{}, err
	}

	return r.readRow(ctx, rowNum)
}

// readRow re-fetches one row after a write. The sheet recomputes GASTOS,
// DINERO LIBRE and ESTADO, so the pre-write snapshot is stale by definition.
func (r *DashboardRepository) readRow(ctx context.Context, rowNum int) (core.Dashboard, error) {
	rows, err := r.api.ValuesForRange(ctx, fmt.Sprintf("%s!A%d:G%d", r.sheet, rowNum, rowNum))
	if err != nil {
		return core.Dashboard{}, err
	}
	if len(rows) == 0 {
		return core.Dashboard{}, fmt.Errorf("fila %d: %w", rowNum, core.ErrNoData)
	}
	return mapDashboardRow(ports.CellStrings(rows[0]))
}

func mapDashboardRow(cells []string) (core.Dashboard, error) {
	month, err := dates.ParseMonthKey(ports.CellAt(cells, 0))
	if err != nil {
		return core.Dashboard{}, err
	}
	d := core.Dashboard{Month: month, State: ports.CellAt(cells, 6)}
	for _, col := range []struct {
		idx  int
		dest *core.Money
	}{
		{1, &d.Income},
		{2, &d.Expenses},
		{3, &d.SavingTarget},
		{4, &d.InvestmentTarget},
		{5, &d.FreeMoney},
	} {
		m, err := core.ParseSheetAmount(ports.CellAt(cells, col.idx))
		if err != nil {
			return core.Dashboard{}, err
		}
		*col.dest = m
	}
	return d, nil
}

// findMonthRow scans the data rows (header skipped) for the first row whose
// first cell equals key exactly. Returns the 1-based sheet row number.
// Uniqueness is assumed, not enforced: first match wins.
func findMonthRow(rows [][]interface{}, key string) (int, []string, bool) {
	for i, row := range rows {
		if i == 0 {
			continue
		}
		cells := ports.CellStrings(row)
		if ports.CellAt(cells, 0) == key {
			return i + 1, cells, true
		}
	}
	return 0, nil, false
}
