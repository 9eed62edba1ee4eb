package http

import (
	"finanzas/internal/core"
	"finanzas/internal/dates"
	"finanzas/internal/services"
)

// Amounts leave the API in euros, months as the sheet's Spanish keys and
// transaction dates as ISO days.

type expenseSummaryResponse struct {
	Total float64 `json:"total"`
	Count int     `json:"count"`
}

type dashboardResponse struct {
	Month            string                 `json:"month"`
	Income           float64                `json:"income"`
	Expenses         float64                `json:"expenses"`
	SavingTarget     float64                `json:"savingTarget"`
	InvestmentTarget float64                `json:"investmentTarget"`
	FreeMoney        float64                `json:"freeMoney"`
	State            string                 `json:"state"`
	Balance          float64                `json:"balance"`
	CurrentMonth     expenseSummaryResponse `json:"currentMonth"`
}

func toDashboardResponse(view services.DashboardView) dashboardResponse {
	d := view.Dashboard
	return dashboardResponse{
		Month:            dates.FormatMonthKey(d.Month),
		Income:           d.Income.Euros(),
		Expenses:         d.Expenses.Euros(),
		SavingTarget:     d.SavingTarget.Euros(),
		InvestmentTarget: d.InvestmentTarget.Euros(),
		FreeMoney:        d.FreeMoney.Euros(),
		State:            d.State,
		Balance:          d.Balance().Euros(),
		CurrentMonth: expenseSummaryResponse{
			Total: view.Summary.TotalAmount.Euros(),
			Count: view.Summary.TransactionCount,
		},
	}
}

type settingsResponse struct {
	Month            string  `json:"month"`
	Income           float64 `json:"income"`
	Expenses         float64 `json:"expenses"`
	SavingTarget     float64 `json:"savingTarget"`
	InvestmentTarget float64 `json:"investmentTarget"`
	FreeMoney        float64 `json:"freeMoney"`
	State            string  `json:"state"`
}

func toSettingsResponse(d core.Dashboard) settingsResponse {
	return settingsResponse{
		Month:            dates.FormatMonthKey(d.Month),
		Income:           d.Income.Euros(),
		Expenses:         d.Expenses.Euros(),
		SavingTarget:     d.SavingTarget.Euros(),
		InvestmentTarget: d.InvestmentTarget.Euros(),
		FreeMoney:        d.FreeMoney.Euros(),
		State:            d.State,
	}
}

type transactionResponse struct {
	CollectionDate string  `json:"collectionDate"`
	Concept        string  `json:"concept"`
	Amount         float64 `json:"amount"`
	Category       string  `json:"category"`
}

func toTransactionResponse(tx core.Transaction) transactionResponse {
	return transactionResponse{
		CollectionDate: tx.CollectionDate.UTC().Format("2006-01-02"),
		Concept:        tx.Concept,
		Amount:         tx.Amount.Euros(),
		Category:       tx.Category,
	}
}

func toTransactionResponses(txs []core.Transaction) []transactionResponse {
	out := make([]transactionResponse, len(txs))
	for i, tx := range txs {
		out[i] = toTransactionResponse(tx)
	}
	return out
}

type netWorthResponse struct {
	Month       string  `json:"month"`
	CashSavings float64 `json:"cashSavings"`
	Invested    float64 `json:"investedAmount"`
	Total       float64 `json:"total"`
}

func toNetWorthResponse(nw core.NetWorth) netWorthResponse {
	return netWorthResponse{
		Month:       dates.FormatMonthKey(nw.Month),
		CashSavings: nw.CashSavings.Euros(),
		Invested:    nw.Invested.Euros(),
		Total:       nw.ComputedTotal().Euros(),
	}
}

type netWorthKPIResponse struct {
	CurrentTotal     float64 `json:"currentTotal"`
	PreviousTotal    float64 `json:"previousTotal"`
	GrowthPercentage float64 `json:"growthPercentage"`
}

type netWorthHistoryResponse struct {
	History []netWorthResponse  `json:"history"`
	KPI     netWorthKPIResponse `json:"kpi"`
}

func toNetWorthHistoryResponse(view services.NetWorthHistory) netWorthHistoryResponse {
	history := make([]netWorthResponse, len(view.History))
	for i, nw := range view.History {
		history[i] = toNetWorthResponse(nw)
	}
	return netWorthHistoryResponse{
		History: history,
		KPI: netWorthKPIResponse{
			CurrentTotal:     view.KPI.CurrentTotal.Euros(),
			PreviousTotal:    view.KPI.PreviousTotal.Euros(),
			GrowthPercentage: view.KPI.GrowthPercentage,
		},
	}
}

type overviewExpensesResponse struct {
	TotalAmount      float64 `json:"totalAmount"`
	TransactionCount int     `json:"transactionCount"`
}

type overviewResponse struct {
	Dashboard settingsResponse         `json:"dashboard"`
	Expenses  overviewExpensesResponse `json:"expenses"`
	NetWorth  netWorthKPIResponse      `json:"netWorth"`
}

func toOverviewResponse(o services.Overview) overviewResponse {
	return overviewResponse{
		Dashboard: toSettingsResponse(o.Dashboard.Dashboard),
		Expenses: overviewExpensesResponse{
			TotalAmount:      o.Dashboard.Summary.TotalAmount.Euros(),
			TransactionCount: o.Dashboard.Summary.TransactionCount,
		},
		NetWorth: netWorthKPIResponse{
			CurrentTotal:     o.NetWorth.KPI.CurrentTotal.Euros(),
			PreviousTotal:    o.NetWorth.KPI.PreviousTotal.Euros(),
			GrowthPercentage: o.NetWorth.KPI.GrowthPercentage,
		},
	}
}
