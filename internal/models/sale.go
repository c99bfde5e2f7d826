package models

import "time"

// Payment status values for a sale. A sale is "paid" if and only if its
// balance is zero.
const (
	PaymentStatusPaid    = "paid"
	PaymentStatusPartial = "partial"
	PaymentStatusDebt    = "debt"
)

type Sale struct {
	ID            int       `json:"id"`
	BuyerName     string    `json:"buyer_name"`
	CustomerID    *int      `json:"customer_id,omitempty"`
	ItemID        int       `json:"item_id"`
	Quantity      int       `json:"quantity"`
	Total         float64   `json:"total"`
	Balance       float64   `json:"balance"`
	PaymentStatus string    `json:"payment_status"`
	CreatedBy     int       `json:"created_by"`
	CreatedAt     time.Time `json:"created_at"`
}

// SaleWithContext joins a sale with its item and customer display fields
type SaleWithContext struct {
	Sale
	ItemName     string `json:"item_name"`
	CustomerName string `json:"customer_name,omitempty"`
}

// CreateSaleRequest represents the request body for creating a sale.
// Balance is only consulted when PaymentStatus is "partial".
type CreateSaleRequest struct {
	BuyerName     string   `json:"buyer_name"`
	CustomerID    *int     `json:"customer_id"`
	ItemID        int      `json:"item_id"`
	Quantity      int      `json:"quantity"`
	PaymentStatus string   `json:"payment_status"`
	Balance       *float64 `json:"balance"`
}

// CreateSaleResult is returned after a sale is recorded
type CreateSaleResult struct {
	Sale   *Sale `json:"sale"`
	DebtID *int  `json:"debt_id,omitempty"`
}
