// Package backend selects and wires the data backend behind the repository
// ports: the real spreadsheet, its SQLite mirror, or an in-memory store.
package backend

import (
	"context"

	"finanzas/internal/sheets"
)

// CleanupFunc releases backend resources on shutdown.
type CleanupFunc func() error

// BackendResult groups the repositories a backend provides.
type BackendResult struct {
	Dashboards   sheets.DashboardRepository
	NetWorth     sheets.NetWorthRepository
	Transactions sheets.TransactionRepository
	Cleanup      CleanupFunc
}

// Factory creates backends based on configuration.
type Factory interface {
	CreateBackend(ctx context.Context, config Config) (*BackendResult, error)
}

// Config holds configuration for backend creation.
type Config struct {
	Type BackendType

	// SQLite specific
	SQLiteDBPath string
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string

	// Google Sheets specific
	GoogleSpreadsheetID string
	DashboardSheet      string
	TransactionsSheet   string
	NetWorthSheet       string
}

// BackendType names a backend implementation.
type BackendType string

const (
	SQLiteBackend BackendType = "sqlite"
	SheetsBackend BackendType = "sheets"
	MemoryBackend BackendType = "memory"
)

func (bt BackendType) String() string {
	return string(bt)
}

func (bt BackendType) IsValid() bool {
	switch bt {
	case SQLiteBackend, SheetsBackend, MemoryBackend:
		return true
	default:
		return false
	}
}
