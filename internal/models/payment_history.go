package models

import "time"

// Payment types recorded in payment_history. Rows are append-only and are
// never mutated or deleted; they form the audit trail.
const (
	PaymentTypeInitial        = "initial"
	PaymentTypePartial        = "partial"
	PaymentTypeDebtRepayment  = "debt_repayment"
	PaymentTypeFullSettlement = "full_settlement"
)

type PaymentHistory struct {
	ID          int       `json:"id"`
	SaleID      int       `json:"sale_id"`
	PaymentType string    `json:"payment_type"`
	Amount      float64   `json:"amount"`
	Description string    `json:"description"`
	CustomerID  *int      `json:"customer_id,omitempty"`
	CreatedBy   int       `json:"created_by"`
	PaymentDate time.Time `json:"payment_date"`
}
