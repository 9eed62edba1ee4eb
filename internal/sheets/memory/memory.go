// Package memory implements the repository ports in process memory. It keeps
// the same month-keyed semantics as the sheets backend and is used for local
// development and tests.
package memory

import (
	"context"
	"sync"
	"time"

	"finanzas/internal/core"
	"finanzas/internal/dates"
	ports "finanzas/internal/sheets"
)

// Store holds all three tables behind one mutex. The per-table repository
// ports are exposed through the Dashboards, NetWorth and Transactions views.
type Store struct {
	mu           sync.Mutex
	dashboards   map[string]core.Dashboard
	netWorth     map[string]core.NetWorth
	netWorthKeys []string // insertion order, like sheet row order
	transactions []core.Transaction
}

func New() *Store {
	return &Store{
		dashboards: make(map[string]core.Dashboard),
		netWorth:   make(map[string]core.NetWorth),
	}
}

func (s *Store) Dashboards() ports.DashboardRepository     { return dashboardView{s} }
func (s *Store) NetWorth() ports.NetWorthRepository        { return netWorthView{s} }
func (s *Store) Transactions() ports.TransactionRepository { return transactionView{s} }

// SeedDashboard provisions a dashboard month, mirroring the rows that exist
// in the real spreadsheet before the application ever writes to them.
func (s *Store) SeedDashboard(d core.Dashboard) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d.Month = core.MonthStart(d.Month)
	s.dashboards[dates.FormatMonthKey(d.Month)] = d
}

type (
	dashboardView   struct{ s *Store }
	netWorthView    struct{ s *Store }
	transactionView struct{ s *Store }
)

var (
	_ ports.DashboardRepository   = dashboardView{}
	_ ports.NetWorthRepository    = netWorthView{}
	_ ports.TransactionRepository = transactionView{}
)

func (v dashboardView) FindByMonth(_ context.Context, month time.Time) (core.Dashboard, error) {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	d, ok := v.s.dashboards[dates.FormatMonthKey(core.MonthStart(month))]
	if !ok {
		return core.Dashboard{}, core.ErrMonthNotFound
	}
	return d, nil
}

func (v dashboardView) UpdateSettings(_ context.Context, month time.Time, income, savingTarget, investmentTarget core.Money) (core.Dashboard, error) {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	key := dates.FormatMonthKey(core.MonthStart(month))
	d, ok := v.s.dashboards[key]
	if !ok {
		return core.Dashboard{}, core.ErrMonthNotFound
	}
	d.Income = income
	d.SavingTarget = savingTarget
	d.InvestmentTarget = investmentTarget
	// What the sheet's DINERO LIBRE formula would produce.
	d.FreeMoney = core.Money{Cents: income.Cents - d.Expenses.Cents - savingTarget.Cents - investmentTarget.Cents}
	v.s.dashboards[key] = d
	return d, nil
}

func (v netWorthView) FindByMonth(_ context.Context, month time.Time) (core.NetWorth, error) {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	nw, ok := v.s.netWorth[dates.FormatMonthKey(core.MonthStart(month))]
	if !ok {
		return core.NetWorth{}, core.ErrMonthNotFound
	}
	return nw, nil
}

func (v netWorthView) FindAll(_ context.Context) ([]core.NetWorth, error) {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	out := make([]core.NetWorth, 0, len(v.s.netWorthKeys))
	for _, key := range v.s.netWorthKeys {
		out = append(out, v.s.netWorth[key])
	}
	return out, nil
}

func (v netWorthView) Save(_ context.Context, month time.Time, cashSavings, invested core.Money) (core.NetWorth, error) {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	m := core.MonthStart(month)
	key := dates.FormatMonthKey(m)
	nw := core.NetWorth{
		Month:       m,
		CashSavings: cashSavings,
		Invested:    invested,
		Total:       core.Money{Cents: cashSavings.Cents + invested.Cents},
	}
	if _, exists := v.s.netWorth[key]; !exists {
		v.s.netWorthKeys = append(v.s.netWorthKeys, key)
	}
	v.s.netWorth[key] = nw
	return nw, nil
}

func (v transactionView) Add(_ context.Context, tx core.Transaction) (core.Transaction, error) {
	if err := tx.Validate(); err != nil {
		return core.Transaction{}, err
	}
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	tx.CollectionDate = tx.CollectionDate.UTC()
	v.s.transactions = append(v.s.transactions, tx)
	return tx, nil
}

func (v transactionView) FindAll(_ context.Context) ([]core.Transaction, error) {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	return append([]core.Transaction(nil), v.s.transactions...), nil
}
