package core

import (
	"testing"
	"time"
)

func tx(day string, cents int64) Transaction {
	d, err := time.Parse("2006-01-02", day)
	if err != nil {
		panic(err)
	}
	return Transaction{CollectionDate: d.UTC(), Concept: "x", Amount: Money{Cents: cents}, Category: "c"}
}

func TestSummarizeMonth(t *testing.T) {
	now := time.Date(2025, 12, 15, 0, 0, 0, 0, time.UTC)

	empty := SummarizeMonth(nil, now)
	if empty.TotalAmount.Cents != 0 || empty.TransactionCount != 0 {
		t.Fatalf("empty list: %+v", empty)
	}

	got := SummarizeMonth([]Transaction{
		tx("2025-12-01", 350),
		tx("2025-12-20", 1000),
		tx("2025-11-30", 9999), // previous month, excluded
		tx("2024-12-05", 9999), // same month previous year, excluded
	}, now)
	if got.TotalAmount.Cents != 1350 {
		t.Fatalf("total: got %d", got.TotalAmount.Cents)
	}
	if got.TransactionCount != 2 {
		t.Fatalf("count: got %d", got.TransactionCount)
	}
}

func nw(total int64) NetWorth {
	return NetWorth{Total: Money{Cents: total}}
}

func TestNetWorthGrowth(t *testing.T) {
	cases := []struct {
		name     string
		history  []NetWorth
		current  int64
		previous int64
		growth   float64
	}{
		{"empty", nil, 0, 0, 0},
		{"single element", []NetWorth{nw(10000)}, 10000, 0, 0},
		{"fifty percent", []NetWorth{nw(10000), nw(15000)}, 15000, 10000, 50},
		{"decline", []NetWorth{nw(20000), nw(15000)}, 15000, 20000, -25},
		{"zero previous", []NetWorth{nw(0), nw(15000)}, 15000, 0, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			kpi := NetWorthGrowth(tc.history)
			if kpi.CurrentTotal.Cents != tc.current {
				t.Fatalf("current: got %d want %d", kpi.CurrentTotal.Cents, tc.current)
			}
			if kpi.PreviousTotal.Cents != tc.previous {
				t.Fatalf("previous: got %d want %d", kpi.PreviousTotal.Cents, tc.previous)
			}
			if kpi.GrowthPercentage != tc.growth {
				t.Fatalf("growth: got %v want %v", kpi.GrowthPercentage, tc.growth)
			}
		})
	}
}
