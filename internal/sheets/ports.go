package sheets

import (
	"context"
	"time"

	"finanzas/internal/core"
)

// Ports for outbound adapters. Month arguments are normalized to the first
// day of the month, UTC, before lookup.
type (
	// DashboardRepository reads and updates the monthly Dashboard rows.
	// Rows pre-exist in the sheet; UpdateSettings never creates one and
	// returns core.ErrMonthNotFound when the month key is absent.
	DashboardRepository interface {
		FindByMonth(ctx context.Context, month time.Time) (core.Dashboard, error)
		UpdateSettings(ctx context.Context, month time.Time, income, savingTarget, investmentTarget core.Money) (core.Dashboard, error)
	}

	// NetWorthRepository manages the Patrimonio rows: at most one per month,
	// created on first Save and updated in place afterwards.
	NetWorthRepository interface {
		FindByMonth(ctx context.Context, month time.Time) (core.NetWorth, error)
		FindAll(ctx context.Context) ([]core.NetWorth, error)
		Save(ctx context.Context, month time.Time, cashSavings, invested core.Money) (core.NetWorth, error)
	}

	// TransactionRepository manages the Gastos rows. Append-only.
	TransactionRepository interface {
		Add(ctx context.Context, tx core.Transaction) (core.Transaction, error)
		FindAll(ctx context.Context) ([]core.Transaction, error)
	}
)
