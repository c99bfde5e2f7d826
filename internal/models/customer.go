package models

import "time"

type Customer struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	Address   string    `json:"address"`
	IsDeleted bool      `json:"is_deleted"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateCustomerRequest represents the request body for creating a customer
type CreateCustomerRequest struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

// UpdateCustomerRequest represents the request body for updating a customer
type UpdateCustomerRequest struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

// CustomerDebtSummary is the per-customer aggregate returned by
// GET /api/debts/customers/summary. Only customers with outstanding > 0
// are included.
type CustomerDebtSummary struct {
	CustomerID   int       `json:"customer_id"`
	CustomerName string    `json:"customer_name"`
	TotalDebt    float64   `json:"total_debt"`
	TotalRepaid  float64   `json:"total_repaid"`
	Outstanding  float64   `json:"outstanding"`
	LastActivity time.Time `json:"last_activity"`
}
