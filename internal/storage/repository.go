// Package storage is the SQLite mirror of the spreadsheet. It implements the
// same repository ports as the sheets backend and keeps a pending-sync queue
// so locally captured movements can be replayed to Google Sheets by the
// worker.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"finanzas/internal/core"
	"finanzas/internal/dates"
	ports "finanzas/internal/sheets"

	_ "modernc.org/sqlite"
)

const (
	syncStatusPending = "pending"
	syncStatusSynced  = "synced"
	syncStatusError   = "error"
)

const dayLayout = "2006-01-02"

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

func (r *SQLiteRepository) Dashboards() ports.DashboardRepository     { return dashboardRepo{r} }
func (r *SQLiteRepository) NetWorth() ports.NetWorthRepository        { return netWorthRepo{r} }
func (r *SQLiteRepository) Transactions() ports.TransactionRepository { return transactionRepo{r} }

type (
	dashboardRepo   struct{ r *SQLiteRepository }
	netWorthRepo    struct{ r *SQLiteRepository }
	transactionRepo struct{ r *SQLiteRepository }
)

var (
	_ ports.DashboardRepository   = dashboardRepo{}
	_ ports.NetWorthRepository    = netWorthRepo{}
	_ ports.TransactionRepository = transactionRepo{}
)

func (d dashboardRepo) FindByMonth(ctx context.Context, month time.Time) (core.Dashboard, error) {
	key := dates.FormatMonthKey(core.MonthStart(month))
	row := d.r.db.QueryRowContext(ctx, `
		SELECT month, income_cents, expenses_cents, saving_target_cents,
		       investment_target_cents, free_money_cents, state
		FROM dashboards WHERE month_key = ?`, key)

	var (
		monthStr string
		dash     core.Dashboard
	)
	err := row.Scan(&monthStr, &dash.Income.Cents, &dash.Expenses.Cents,
		&dash.SavingTarget.Cents, &dash.InvestmentTarget.Cents,
		&dash.FreeMoney.Cents, &dash.State)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Dashboard{}, core.ErrMonthNotFound
	}
	if err != nil {
		return core.Dashboard{}, fmt.Errorf("query dashboard: %w", err)
	}

	dash.Month, err = time.ParseInLocation(dayLayout, monthStr, time.UTC)
	if err != nil {
		return core.Dashboard{}, fmt.Errorf("parse stored month %q: %w", monthStr, err)
	}
	return dash, nil
}

// UpdateSettings only touches rows that already exist, like the spreadsheet
// backend where dashboard months are pre-provisioned.
func (d dashboardRepo) UpdateSettings(ctx context.Context, month time.Time, income, savingTarget, investmentTarget core.Money) (core.Dashboard, error) {
	m := core.MonthStart(month)
	key := dates.FormatMonthKey(m)

	res, err := d.r.db.ExecContext(ctx, `
		UPDATE dashboards
		SET income_cents = ?, saving_target_cents = ?, investment_target_cents = ?,
		    free_money_cents = ? - expenses_cents - ? - ?,
		    updated_at = CURRENT_TIMESTAMP
		WHERE month_key = ?`,
		income.Cents, savingTarget.Cents, investmentTarget.Cents,
		income.Cents, savingTarget.Cents, investmentTarget.Cents, key)
	if err != nil {
		return core.Dashboard{}, fmt.Errorf("update dashboard settings: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return core.Dashboard{}, fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return core.Dashboard{}, fmt.Errorf("dashboard %s: %w", key, core.ErrMonthNotFound)
	}

	return d.FindByMonth(ctx, m)
}

// SeedDashboard provisions a dashboard month. The HTTP surface never calls
// this; it exists for tooling and tests.
func (r *SQLiteRepository) SeedDashboard(ctx context.Context, dash core.Dashboard) error {
	m := core.MonthStart(dash.Month)
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO dashboards
			(month_key, month, income_cents, expenses_cents, saving_target_cents,
			 investment_target_cents, free_money_cents, state)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(month_key) DO UPDATE SET
			income_cents = excluded.income_cents,
			expenses_cents = excluded.expenses_cents,
			saving_target_cents = excluded.saving_target_cents,
			investment_target_cents = excluded.investment_target_cents,
			free_money_cents = excluded.free_money_cents,
			state = excluded.state,
			updated_at = CURRENT_TIMESTAMP`,
		dates.FormatMonthKey(m), m.Format(dayLayout),
		dash.Income.Cents, dash.Expenses.Cents, dash.SavingTarget.Cents,
		dash.InvestmentTarget.Cents, dash.FreeMoney.Cents, dash.State)
	if err != nil {
		return fmt.Errorf("seed dashboard: %w", err)
	}
	return nil
}

func (n netWorthRepo) FindByMonth(ctx context.Context, month time.Time) (core.NetWorth, error) {
	key := dates.FormatMonthKey(core.MonthStart(month))
	row := n.r.db.QueryRowContext(ctx, `
		SELECT month, cash_savings_cents, invested_cents, total_cents
		FROM net_worth WHERE month_key = ?`, key)

	nw, err := scanNetWorth(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.NetWorth{}, core.ErrMonthNotFound
	}
	if err != nil {
		return core.NetWorth{}, fmt.Errorf("query net worth: %w", err)
	}
	return nw, nil
}

func (n netWorthRepo) FindAll(ctx context.Context) ([]core.NetWorth, error) {
	rows, err := n.r.db.QueryContext(ctx, `
		SELECT month, cash_savings_cents, invested_cents, total_cents
		FROM net_worth ORDER BY month`)
	if err != nil {
		return nil, fmt.Errorf("query net worth rows: %w", err)
	}
	defer rows.Close()

	var out []core.NetWorth
	for rows.Next() {
		nw, err := scanNetWorth(rows)
		if err != nil {
			return nil, fmt.Errorf("scan net worth row: %w", err)
		}
		out = append(out, nw)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate net worth rows: %w", err)
	}
	return out, nil
}

func (n netWorthRepo) Save(ctx context.Context, month time.Time, cashSavings, invested core.Money) (core.NetWorth, error) {
	m := core.MonthStart(month)
	total := cashSavings.Cents + invested.Cents

	_, err := n.r.db.ExecContext(ctx, `
		INSERT INTO net_worth (month_key, month, cash_savings_cents, invested_cents, total_cents)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(month_key) DO UPDATE SET
			cash_savings_cents = excluded.cash_savings_cents,
			invested_cents = excluded.invested_cents,
			total_cents = excluded.total_cents,
			updated_at = CURRENT_TIMESTAMP`,
		dates.FormatMonthKey(m), m.Format(dayLayout),
		cashSavings.Cents, invested.Cents, total)
	if err != nil {
		return core.NetWorth{}, fmt.Errorf("save net worth: %w", err)
	}

	return n.FindByMonth(ctx, m)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanNetWorth(row rowScanner) (core.NetWorth, error) {
	var (
		monthStr string
		nw       core.NetWorth
	)
	if err := row.Scan(&monthStr, &nw.CashSavings.Cents, &nw.Invested.Cents, &nw.Total.Cents); err != nil {
		return core.NetWorth{}, err
	}
	month, err := time.ParseInLocation(dayLayout, monthStr, time.UTC)
	if err != nil {
		return core.NetWorth{}, fmt.Errorf("parse stored month %q: %w", monthStr, err)
	}
	nw.Month = month
	return nw, nil
}

func (t transactionRepo) Add(ctx context.Context, tx core.Transaction) (core.Transaction, error) {
	_, saved, err := t.r.AddTransaction(ctx, tx)
	return saved, err
}

// AddTransaction inserts the movement in pending sync state and returns its
// row id for the sync queue.
func (r *SQLiteRepository) AddTransaction(ctx context.Context, tx core.Transaction) (int64, core.Transaction, error) {
	if err := tx.Validate(); err != nil {
		return 0, core.Transaction{}, err
	}
	tx.CollectionDate = tx.CollectionDate.UTC()

	res, err := r.db.ExecContext(ctx, `
		INSERT INTO transactions (collection_date, concept, amount_cents, category, sync_status)
		VALUES (?, ?, ?, ?, ?)`,
		tx.CollectionDate.Format(dayLayout), tx.Concept, tx.Amount.Cents, tx.Category, syncStatusPending)
	if err != nil {
		return 0, core.Transaction{}, fmt.Errorf("insert transaction: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, core.Transaction{}, fmt.Errorf("last insert id: %w", err)
	}

	slog.InfoContext(ctx, "movimiento guardado en sqlite",
		"id", id,
		"concepto", tx.Concept,
		"importe_cents", tx.Amount.Cents,
		"categoria", tx.Category)

	return id, tx, nil
}

func (t transactionRepo) FindAll(ctx context.Context) ([]core.Transaction, error) {
	rows, err := t.r.db.QueryContext(ctx, `
		SELECT collection_date, concept, amount_cents, category
		FROM transactions ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	var out []core.Transaction
	for rows.Next() {
		var (
			dateStr string
			tx      core.Transaction
		)
		if err := rows.Scan(&dateStr, &tx.Concept, &tx.Amount.Cents, &tx.Category); err != nil {
			return nil, fmt.Errorf("scan transaction row: %w", err)
		}
		tx.CollectionDate, err = time.ParseInLocation(dayLayout, dateStr, time.UTC)
		if err != nil {
			return nil, fmt.Errorf("parse stored date %q: %w", dateStr, err)
		}
		out = append(out, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transaction rows: %w", err)
	}
	return out, nil
}

// GetTransaction loads a single movement by row id for the sync worker.
func (r *SQLiteRepository) GetTransaction(ctx context.Context, id int64) (core.Transaction, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT collection_date, concept, amount_cents, category
		FROM transactions WHERE id = ?`, id)

	var (
		dateStr string
		tx      core.Transaction
	)
	err := row.Scan(&dateStr, &tx.Concept, &tx.Amount.Cents, &tx.Category)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Transaction{}, fmt.Errorf("transaction %d: %w", id, sql.ErrNoRows)
	}
	if err != nil {
		return core.Transaction{}, fmt.Errorf("query transaction: %w", err)
	}
	tx.CollectionDate, err = time.ParseInLocation(dayLayout, dateStr, time.UTC)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("parse stored date %q: %w", dateStr, err)
	}
	return tx, nil
}

// PendingSyncTransaction is the minimal row shape queued for sheet replay.
type PendingSyncTransaction struct {
	ID        int64
	Version   int64
	CreatedAt time.Time
}

func (r *SQLiteRepository) GetPendingSyncTransactions(ctx context.Context, limit int) ([]PendingSyncTransaction, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, version, created_at
		FROM transactions WHERE sync_status = ?
		ORDER BY id LIMIT ?`, syncStatusPending, limit)
	if err != nil {
		return nil, fmt.Errorf("query pending sync transactions: %w", err)
	}
	defer rows.Close()

	var out []PendingSyncTransaction
	for rows.Next() {
		var p PendingSyncTransaction
		if err := rows.Scan(&p.ID, &p.Version, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan pending sync row: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate pending sync rows: %w", err)
	}
	return out, nil
}

func (r *SQLiteRepository) MarkSynced(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `
		UPDATE transactions SET sync_status = ? WHERE id = ?`, syncStatusSynced, id); err != nil {
		return fmt.Errorf("mark transaction synced: %w", err)
	}
	slog.InfoContext(ctx, "movimiento marcado como sincronizado", "id", id)
	return nil
}

func (r *SQLiteRepository) MarkSyncError(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `
		UPDATE transactions SET sync_status = ? WHERE id = ?`, syncStatusError, id); err != nil {
		return fmt.Errorf("mark transaction sync error: %w", err)
	}
	slog.WarnContext(ctx, "movimiento marcado con error de sincronización", "id", id)
	return nil
}
