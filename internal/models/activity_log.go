package models

import (
	"encoding/json"
	"time"
)

// Activity types recorded in the append-only activity feed
const (
	ActivitySale            = "sale"
	ActivityExpense         = "expense"
	ActivityDebtRepayment   = "debt_repayment"
	ActivityStockAdjustment = "stock_adjustment"
)

// ActivityLog is a denormalized record of a financial event, written in the
// same transaction as the operation it documents. It is consumed by the
// dashboard and reports, never used to re-derive ledger state.
type ActivityLog struct {
	ID           int             `json:"id"`
	ActivityType string          `json:"activity_type"`
	ReferenceID  int             `json:"reference_id"`
	Amount       float64         `json:"amount"`
	Status       string          `json:"status"`
	Details      json.RawMessage `json:"details,omitempty"`
	ActivityDate time.Time       `json:"activity_date"`
}

// DailyProfit is one row of the profit-analysis rollup
type DailyProfit struct {
	Date      string  `json:"date"`
	Revenue   float64 `json:"revenue"`
	Profit    float64 `json:"profit"`
	SaleCount int     `json:"sale_count"`
}
