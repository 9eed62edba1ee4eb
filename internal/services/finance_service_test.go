package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finanzas/internal/core"
	"finanzas/internal/sheets/memory"
)

var testNow = time.Date(2025, time.December, 15, 10, 0, 0, 0, time.UTC)

func newTestService(t *testing.T) (*FinanceService, *memory.Store) {
	t.Helper()
	store := memory.New()
	store.SeedDashboard(core.Dashboard{
		Month:    time.Date(2025, time.December, 1, 0, 0, 0, 0, time.UTC),
		Income:   core.Money{Cents: 300000},
		Expenses: core.Money{Cents: 50000},
		State:    "OK",
	})
	svc := NewFinanceService(store.Dashboards(), store.NetWorth(), store.Transactions()).
		WithClock(func() time.Time { return testNow })
	return svc, store
}

func TestCurrentDashboard(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.AddTransaction(ctx, core.Transaction{
		CollectionDate: time.Date(2025, time.December, 8, 0, 0, 0, 0, time.UTC),
		Concept:        "Café",
		Amount:         core.Money{Cents: 350},
		Category:       "Ocio",
	})
	require.NoError(t, err)

	// A movement from another month stays out of the summary.
	_, err = svc.AddTransaction(ctx, core.Transaction{
		CollectionDate: time.Date(2025, time.November, 3, 0, 0, 0, 0, time.UTC),
		Concept:        "Luz",
		Amount:         core.Money{Cents: 4200},
		Category:       "Hogar",
	})
	require.NoError(t, err)

	view, err := svc.CurrentDashboard(ctx)
	require.NoError(t, err)

	assert.Equal(t, int64(300000), view.Dashboard.Income.Cents)
	assert.Equal(t, 1, view.Summary.TransactionCount)
	assert.Equal(t, int64(350), view.Summary.TotalAmount.Cents)
}

func TestCurrentDashboardMissingMonth(t *testing.T) {
	store := memory.New()
	svc := NewFinanceService(store.Dashboards(), store.NetWorth(), store.Transactions()).
		WithClock(func() time.Time { return testNow })

	_, err := svc.CurrentDashboard(context.Background())
	assert.ErrorIs(t, err, core.ErrMonthNotFound)
}

func TestUpdateMonthlySettings(t *testing.T) {
	svc, _ := newTestService(t)

	dash, err := svc.UpdateMonthlySettings(context.Background(), time.Time{},
		core.Money{Cents: 320000}, core.Money{Cents: 100000}, core.Money{Cents: 90000})
	require.NoError(t, err)

	assert.Equal(t, int64(320000), dash.Income.Cents)
	assert.Equal(t, int64(80000), dash.FreeMoney.Cents)
}

func TestAddTransactionValidation(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.AddTransaction(context.Background(), core.Transaction{
		CollectionDate: testNow,
		Concept:        "",
		Amount:         core.Money{Cents: 100},
		Category:       "Ocio",
	})
	assert.ErrorIs(t, err, core.ErrEmptyConcept)

	txs, err := svc.Transactions(context.Background())
	require.NoError(t, err)
	assert.Empty(t, txs)
}

func TestNetWorthViewSortsAndComputesKPI(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	// Insert out of order to exercise the sort.
	_, err := store.NetWorth().Save(ctx, time.Date(2025, time.December, 1, 0, 0, 0, 0, time.UTC),
		core.Money{Cents: 100000}, core.Money{Cents: 50000})
	require.NoError(t, err)
	_, err = store.NetWorth().Save(ctx, time.Date(2025, time.November, 1, 0, 0, 0, 0, time.UTC),
		core.Money{Cents: 80000}, core.Money{Cents: 20000})
	require.NoError(t, err)

	view, err := svc.NetWorthView(ctx)
	require.NoError(t, err)

	require.Len(t, view.History, 2)
	assert.Equal(t, time.November, view.History[0].Month.Month())
	assert.Equal(t, int64(150000), view.KPI.CurrentTotal.Cents)
	assert.Equal(t, int64(100000), view.KPI.PreviousTotal.Cents)
	assert.InDelta(t, 50.0, view.KPI.GrowthPercentage, 0.0001)
}

func TestSaveNetWorthUsesCurrentMonth(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	nw, err := svc.SaveNetWorth(ctx, time.Time{}, core.Money{Cents: 120000}, core.Money{Cents: 60000})
	require.NoError(t, err)
	assert.Equal(t, int64(180000), nw.Total.Cents)
	assert.Equal(t, time.December, nw.Month.Month())

	stored, err := store.NetWorth().FindByMonth(ctx, time.Date(2025, time.December, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, int64(180000), stored.Total.Cents)
}

func TestOverviewAggregates(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	_, err := store.NetWorth().Save(ctx, time.Date(2025, time.December, 1, 0, 0, 0, 0, time.UTC),
		core.Money{Cents: 100000}, core.Money{Cents: 50000})
	require.NoError(t, err)

	overview, err := svc.Overview(ctx)
	require.NoError(t, err)

	assert.Equal(t, int64(300000), overview.Dashboard.Dashboard.Income.Cents)
	require.Len(t, overview.NetWorth.History, 1)
	assert.Equal(t, int64(150000), overview.NetWorth.KPI.CurrentTotal.Cents)
}

type brokenNetWorth struct{}

func (brokenNetWorth) FindByMonth(context.Context, time.Time) (core.NetWorth, error) {
	return core.NetWorth{}, errors.New("sheet unavailable")
}
func (brokenNetWorth) FindAll(context.Context) ([]core.NetWorth, error) {
	return nil, errors.New("sheet unavailable")
}
func (brokenNetWorth) Save(context.Context, time.Time, core.Money, core.Money) (core.NetWorth, error) {
	return core.NetWorth{}, errors.New("sheet unavailable")
}

func TestOverviewPropagatesFailure(t *testing.T) {
	store := memory.New()
	store.SeedDashboard(core.Dashboard{Month: time.Date(2025, time.December, 1, 0, 0, 0, 0, time.UTC)})
	svc := NewFinanceService(store.Dashboards(), brokenNetWorth{}, store.Transactions()).
		WithClock(func() time.Time { return testNow })

	_, err := svc.Overview(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sheet unavailable")
}
