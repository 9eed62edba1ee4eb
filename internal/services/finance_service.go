// Package services orchestrates the repository ports into the use cases the
// HTTP surface exposes.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"finanzas/internal/core"
	"finanzas/internal/sheets"
)

// FinanceService reads and writes the three spreadsheet areas. Now is
// injectable for tests and defaults to time.Now.
type FinanceService struct {
	dashboards   sheets.DashboardRepository
	netWorth     sheets.NetWorthRepository
	transactions sheets.TransactionRepository
	now          func() time.Time
}

func NewFinanceService(dashboards sheets.DashboardRepository, netWorth sheets.NetWorthRepository, transactions sheets.TransactionRepository) *FinanceService {
	return &FinanceService{
		dashboards:   dashboards,
		netWorth:     netWorth,
		transactions: transactions,
		now:          time.Now,
	}
}

// WithClock replaces the time source. Test hook.
func (s *FinanceService) WithClock(now func() time.Time) *FinanceService {
	s.now = now
	return s
}

// DashboardView pairs the month row with the expense aggregate derived from
// the transaction log.
type DashboardView struct {
	Dashboard core.Dashboard
	Summary   core.ExpenseSummary
}

// CurrentDashboard returns the dashboard view for the running month.
func (s *FinanceService) CurrentDashboard(ctx context.Context) (DashboardView, error) {
	return s.DashboardForMonth(ctx, s.now())
}

// DashboardForMonth returns the dashboard row for the given month together
// with that month's expense summary. Both reads happen in parallel.
func (s *FinanceService) DashboardForMonth(ctx context.Context, month time.Time) (DashboardView, error) {
	month = core.MonthStart(month)

	var view DashboardView
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		dash, err := s.dashboards.FindByMonth(gctx, month)
		if err != nil {
			return fmt.Errorf("load dashboard: %w", err)
		}
		view.Dashboard = dash
		return nil
	})

	g.Go(func() error {
		txs, err := s.transactions.FindAll(gctx)
		if err != nil {
			return fmt.Errorf("load transactions: %w", err)
		}
		view.Summary = core.SummarizeMonth(txs, month)
		return nil
	})

	if err := g.Wait(); err != nil {
		return DashboardView{}, err
	}
	return view, nil
}

// UpdateMonthlySettings writes income and targets to the given month's
// dashboard row and returns the row as the sheet recomputed it. A zero month
// means the running month.
func (s *FinanceService) UpdateMonthlySettings(ctx context.Context, month time.Time, income, savingTarget, investmentTarget core.Money) (core.Dashboard, error) {
	if month.IsZero() {
		month = s.now()
	}
	month = core.MonthStart(month)

	dash, err := s.dashboards.UpdateSettings(ctx, month, income, savingTarget, investmentTarget)
	if err != nil {
		return core.Dashboard{}, err
	}

	slog.InfoContext(ctx, "ajustes mensuales actualizados",
		"mes", dash.Month.Format("2006-01"),
		"ingresos_cents", income.Cents)

	return dash, nil
}

// Transactions returns the full expense log in sheet order.
func (s *FinanceService) Transactions(ctx context.Context) ([]core.Transaction, error) {
	return s.transactions.FindAll(ctx)
}

// AddTransaction validates and appends one movement.
func (s *FinanceService) AddTransaction(ctx context.Context, tx core.Transaction) (core.Transaction, error) {
	if err := tx.Validate(); err != nil {
		return core.Transaction{}, err
	}
	return s.transactions.Add(ctx, tx)
}

// NetWorthHistory holds the chronological series plus its growth indicators.
type NetWorthHistory struct {
	History []core.NetWorth
	KPI     core.NetWorthKPI
}

// NetWorthView returns the net-worth rows sorted ascending by month and the
// growth KPI over the sorted series.
func (s *FinanceService) NetWorthView(ctx context.Context) (NetWorthHistory, error) {
	history, err := s.netWorth.FindAll(ctx)
	if err != nil {
		return NetWorthHistory{}, fmt.Errorf("load net worth history: %w", err)
	}

	sort.Slice(history, func(i, j int) bool {
		return history[i].Month.Before(history[j].Month)
	})

	return NetWorthHistory{
		History: history,
		KPI:     core.NetWorthGrowth(history),
	}, nil
}

// SaveNetWorth upserts the given month's net-worth row. A zero month means
// the running month.
func (s *FinanceService) SaveNetWorth(ctx context.Context, month time.Time, cashSavings, invested core.Money) (core.NetWorth, error) {
	if month.IsZero() {
		month = s.now()
	}
	month = core.MonthStart(month)

	nw, err := s.netWorth.Save(ctx, month, cashSavings, invested)
	if err != nil {
		return core.NetWorth{}, err
	}

	slog.InfoContext(ctx, "patrimonio guardado",
		"mes", nw.Month.Format("2006-01"),
		"total_cents", nw.Total.Cents)

	return nw, nil
}

// Overview aggregates the three areas in one parallel pass.
type Overview struct {
	Dashboard DashboardView
	NetWorth  NetWorthHistory
}

func (s *FinanceService) Overview(ctx context.Context) (Overview, error) {
	var overview Overview
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		view, err := s.CurrentDashboard(gctx)
		if err != nil {
			return err
		}
		overview.Dashboard = view
		return nil
	})

	g.Go(func() error {
		nw, err := s.NetWorthView(gctx)
		if err != nil {
			return err
		}
		overview.NetWorth = nw
		return nil
	})

	if err := g.Wait(); err != nil {
		return Overview{}, err
	}
	return overview, nil
}
