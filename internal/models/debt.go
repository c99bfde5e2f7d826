package models

import "time"

// Debt is the unpaid remainder of a sale, one row per sale that was not
// fully paid at creation. RepaidAmount is monotonically non-decreasing and
// deliberately not capped at Amount (overpayments stay visible in the
// running total while the sale balance floors at zero).
type Debt struct {
	ID           int       `json:"id"`
	SaleID       int       `json:"sale_id"`
	CustomerID   *int      `json:"customer_id,omitempty"`
	Amount       float64   `json:"amount"`
	RepaidAmount float64   `json:"repaid_amount"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Outstanding returns the amount still owed, never negative.
func (d *Debt) Outstanding() float64 {
	if out := d.Amount - d.RepaidAmount; out > 0 {
		return out
	}
	return 0
}

// OpenDebt is a debt joined with its sale, as fetched for FIFO allocation
// (ordered by sale date, then debt id) and for the open-debt listing.
type OpenDebt struct {
	DebtID       int       `json:"debt_id"`
	SaleID       int       `json:"sale_id"`
	BuyerName    string    `json:"buyer_name"`
	ItemName     string    `json:"item_name,omitempty"`
	CustomerID   *int      `json:"customer_id,omitempty"`
	CustomerName string    `json:"customer_name,omitempty"`
	Amount       float64   `json:"amount"`
	RepaidAmount float64   `json:"repaid_amount"`
	SaleDate     time.Time `json:"sale_date"`
}

// Outstanding returns the open amount on the joined row.
func (d *OpenDebt) Outstanding() float64 {
	if out := d.Amount - d.RepaidAmount; out > 0 {
		return out
	}
	return 0
}

// RepayDebtRequest is the body of POST /api/debts/{id}/repayment
type RepayDebtRequest struct {
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
}

// RepaymentResult is returned after a single-debt repayment
type RepaymentResult struct {
	Message     string  `json:"message"`
	NewBalance  float64 `json:"newBalance"`
	TotalRepaid float64 `json:"totalRepaid"`
	IsFullyPaid bool    `json:"isFullyPaid"`
}

// AllocatePaymentRequest is the body of
// POST /api/debts/customers/{customerId}/payments
type AllocatePaymentRequest struct {
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
}

// Allocation records how much of a customer payment went to one debt
type Allocation struct {
	DebtID    int     `json:"debt_id"`
	SaleID    int     `json:"sale_id"`
	Allocated float64 `json:"allocated"`
}

// AllocationResult is returned after a customer payment is spread across
// open debts. Unallocated is any remainder exceeding total outstanding
// debt; it is never persisted.
type AllocationResult struct {
	CustomerID  int          `json:"customer_id"`
	Paid        float64      `json:"paid"`
	Unallocated float64      `json:"unallocated"`
	Allocations []Allocation `json:"allocations"`
}
