package backend

import (
	"context"
	"fmt"
	"log/slog"

	"finanzas/internal/amqp"
	"finanzas/internal/core"
	"finanzas/internal/sheets"
	gsheet "finanzas/internal/sheets/google"
	"finanzas/internal/sheets/memory"
	"finanzas/internal/storage"
)

type DefaultFactory struct {
	logger *slog.Logger
}

func NewFactory(logger *slog.Logger) Factory {
	if logger == nil {
		logger = slog.Default()
	}
	return &DefaultFactory{logger: logger}
}

func (f *DefaultFactory) CreateBackend(ctx context.Context, config Config) (*BackendResult, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	switch config.Type {
	case SQLiteBackend:
		return f.createSQLiteBackend(config)
	case SheetsBackend:
		return f.createSheetsBackend(ctx, config)
	case MemoryBackend:
		return f.createMemoryBackend()
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", config.Type)
	}
}

func (f *DefaultFactory) createSQLiteBackend(config Config) (*BackendResult, error) {
	repo, err := storage.NewSQLiteRepository(config.SQLiteDBPath)
	if err != nil {
		return nil, fmt.Errorf("initialize SQLite repository: %w", err)
	}

	// AMQP is optional; without it the worker's pending-row scan still
	// picks everything up.
	var queue *amqp.Client
	if config.AMQPURL != "" {
		queue, err = amqp.NewClient(config.AMQPURL, config.AMQPExchange, config.AMQPQueue)
		if err != nil {
			f.logger.Warn("no se pudo conectar a AMQP, seguimos sin cola de sincronización", "error", err)
			queue = nil
		} else {
			f.logger.Info("cliente AMQP inicializado",
				"exchange", config.AMQPExchange,
				"queue", config.AMQPQueue)
		}
	}

	f.logger.Info("backend sqlite inicializado",
		"db_path", config.SQLiteDBPath,
		"amqp_enabled", queue != nil)

	cleanup := func() error {
		if queue != nil {
			queue.Close()
		}
		return repo.Close()
	}

	return &BackendResult{
		Dashboards:   repo.Dashboards(),
		NetWorth:     repo.NetWorth(),
		Transactions: &syncingTransactions{repo: repo, queue: queue},
		Cleanup:      cleanup,
	}, nil
}

func (f *DefaultFactory) createSheetsBackend(ctx context.Context, config Config) (*BackendResult, error) {
	cli, err := gsheet.NewFromEnv(ctx)
	if err != nil {
		return nil, fmt.Errorf("initialize Google Sheets client: %w", err)
	}

	f.logger.Info("backend de Google Sheets inicializado")

	return &BackendResult{
		Dashboards:   gsheet.NewDashboardRepository(cli, config.DashboardSheet),
		NetWorth:     gsheet.NewNetWorthRepository(cli, config.NetWorthSheet),
		Transactions: gsheet.NewTransactionRepository(cli, config.TransactionsSheet),
	}, nil
}

func (f *DefaultFactory) createMemoryBackend() (*BackendResult, error) {
	store := memory.New()

	f.logger.Info("backend en memoria inicializado")

	return &BackendResult{
		Dashboards:   store.Dashboards(),
		NetWorth:     store.NetWorth(),
		Transactions: store.Transactions(),
	}, nil
}

// syncingTransactions persists movements locally and enqueues them for sheet
// replay when a queue is available.
type syncingTransactions struct {
	repo  *storage.SQLiteRepository
	queue *amqp.Client
}

var _ sheets.TransactionRepository = (*syncingTransactions)(nil)

func (s *syncingTransactions) Add(ctx context.Context, tx core.Transaction) (core.Transaction, error) {
	id, saved, err := s.repo.AddTransaction(ctx, tx)
	if err != nil {
		return core.Transaction{}, err
	}

	if s.queue != nil {
		if err := s.queue.PublishTransactionSync(ctx, id, 1); err != nil {
			// The pending-row scan will replay it later.
			slog.WarnContext(ctx, "no se pudo encolar la sincronización", "id", id, "error", err)
		}
	}

	return saved, nil
}

func (s *syncingTransactions) FindAll(ctx context.Context) ([]core.Transaction, error) {
	return s.repo.Transactions().FindAll(ctx)
}
