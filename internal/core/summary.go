package core

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExpenseSummary aggregates the transactions of one calendar month.
type ExpenseSummary struct {
	TotalAmount      Money
	TransactionCount int
}

// SummarizeMonth filters txs to those whose collection date falls in the same
// calendar month as now (year and month match, dates compared in UTC) and
// totals them. Recomputed per call, no caching.
func SummarizeMonth(txs []Transaction, now time.Time) ExpenseSummary {
	var sum ExpenseSummary
	for _, tx := range txs {
		d := tx.CollectionDate.UTC()
		if d.Year() != now.Year() || d.Month() != now.Month() {
			continue
		}
		sum.TotalAmount.Cents += tx.Amount.Cents
		sum.TransactionCount++
	}
	return sum
}

// NetWorthKPI holds the growth indicators derived from a chronologically
// ascending net-worth series.
type NetWorthKPI struct {
	CurrentTotal  Money
	PreviousTotal Money
	// GrowthPercentage is 0 when PreviousTotal is 0: flat growth is
	// reported instead of a division by zero.
	GrowthPercentage float64
}

// NetWorthGrowth computes the KPI over history, which must already be sorted
// ascending by month. Missing elements count as zero totals.
func NetWorthGrowth(history []NetWorth) NetWorthKPI {
	var kpi NetWorthKPI
	if len(history) > 0 {
		kpi.CurrentTotal = history[len(history)-1].ComputedTotal()
	}
	if len(history) > 1 {
		kpi.PreviousTotal = history[len(history)-2].ComputedTotal()
	}
	if kpi.PreviousTotal.Cents == 0 {
		return kpi
	}
	current := decimal.New(kpi.CurrentTotal.Cents, -2)
	previous := decimal.New(kpi.PreviousTotal.Cents, -2)
	growth := current.Sub(previous).Div(previous).Mul(decimal.NewFromInt(100))
	kpi.GrowthPercentage, _ = growth.Float64()
	return kpi
}
