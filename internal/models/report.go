package models

import "time"

// DailySummary is the aggregate for one business day
type DailySummary struct {
	Date            string  `json:"date"`
	SalesTotal      float64 `json:"sales_total"`
	SalesCount      int     `json:"sales_count"`
	ExpensesTotal   float64 `json:"expenses_total"`
	RepaymentsTotal float64 `json:"repayments_total"`
	OutstandingDebt float64 `json:"outstanding_debt"`
	NetPosition     float64 `json:"net_position"`
}

// DashboardSummary is today's headline figures plus inventory alerts
type DashboardSummary struct {
	Date            string  `json:"date"`
	SalesTotal      float64 `json:"sales_total"`
	SalesCount      int     `json:"sales_count"`
	ExpensesTotal   float64 `json:"expenses_total"`
	OutstandingDebt float64 `json:"outstanding_debt"`
	LowStockCount   int     `json:"low_stock_count"`
}

// CustomerStatement backs the PDF debt statement for one customer
type CustomerStatement struct {
	Customer    *Customer        `json:"customer"`
	OpenDebts   []OpenDebt       `json:"open_debts"`
	Payments    []PaymentHistory `json:"payments"`
	Outstanding float64          `json:"outstanding"`
	GeneratedAt time.Time        `json:"generated_at"`
}
