package services

import (
	"context"
	"encoding/json"
	"fmt"
	"math"

	"github.com/isah4/Record-system-full-stack-web-app-sub000/internal/cache"
	"github.com/isah4/Record-system-full-stack-web-app-sub000/internal/live"
	"github.com/isah4/Record-system-full-stack-web-app-sub000/internal/metrics"
	"github.com/isah4/Record-system-full-stack-web-app-sub000/internal/models"
)

// DebtTx is the set of statements available inside a repayment
// transaction. Statement order establishes the happens-before chain: debt
// update, then sale update, then activity log.
type DebtTx interface {
	GetDebtForUpdate(ctx context.Context, debtID int) (*models.Debt, error)
	GetSale(ctx context.Context, saleID int) (*models.Sale, error)
	OpenDebtsForUpdate(ctx context.Context, customerID int) ([]models.OpenDebt, error)
	GetCustomer(ctx context.Context, customerID int) (*models.Customer, error)
	SetDebtCustomer(ctx context.Context, debtID, customerID int) error
	UpdateDebtRepaid(ctx context.Context, debtID int, repaidAmount float64) error
	UpdateSaleBalance(ctx context.Context, saleID int, balance float64, status string) error
	InsertPaymentHistory(ctx context.Context, p *models.PaymentHistory) error
	InsertActivity(ctx context.Context, a *models.ActivityLog) error
}

// DebtStore is the persistence surface of the repayment engine. InTx runs
// fn inside one transaction: fn returning an error rolls everything back,
// so no partial repayment state is ever visible.
type DebtStore interface {
	InTx(ctx context.Context, fn func(tx DebtTx) error) error
	ListOpen(ctx context.Context) ([]models.OpenDebt, error)
	CustomerSummaries(ctx context.Context) ([]models.CustomerDebtSummary, error)
}

// DebtService applies repayments against outstanding debts while
// preserving the ledger invariants and recording the audit trail.
type DebtService struct {
	store DebtStore
	feed  *live.Hub
}

func NewDebtService(store DebtStore) *DebtService {
	return &DebtService{store: store}
}

// round2 snaps money arithmetic to cents before it is compared or
// persisted. The columns behind it are NUMERIC(14,2), and without the
// snap a sequence of fractional repayments can leave a ~1e-13 residue
// that misclassifies an exact settlement as partial.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// SetFeed wires the live activity hub. Events are published only after
// the repayment transaction has committed.
func (s *DebtService) SetFeed(feed *live.Hub) {
	s.feed = feed
}

// RepaySingle records a repayment against one debt.
//
// The sale balance is floored at zero but repaid_amount is deliberately
// not capped: an overpayment settles the sale and stays visible in the
// running repaid total. Changing that is a product decision, not a fix.
func (s *DebtService) RepaySingle(ctx context.Context, debtID int, amount float64, description string, createdBy int) (*models.RepaymentResult, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("repayment amount must be greater than zero: %w", models.ErrValidation)
	}

	var result models.RepaymentResult
	var activity models.ActivityLog

	err := s.store.InTx(ctx, func(tx DebtTx) error {
		debt, err := tx.GetDebtForUpdate(ctx, debtID)
		if err != nil {
			return err
		}

		sale, err := tx.GetSale(ctx, debt.SaleID)
		if err != nil {
			return err
		}

		newRepaid := round2(debt.RepaidAmount + amount)
		newBalance := round2(debt.Amount - newRepaid)
		if newBalance < 0 {
			newBalance = 0
		}

		paymentType := models.PaymentTypeDebtRepayment
		saleStatus := models.PaymentStatusPartial
		if newBalance == 0 {
			paymentType = models.PaymentTypeFullSettlement
			saleStatus = models.PaymentStatusPaid
		}

		// Older debt rows predate customer linkage on sales; backfill
		// lazily from the parent sale.
		customerID := debt.CustomerID
		if customerID == nil && sale.CustomerID != nil {
			if err := tx.SetDebtCustomer(ctx, debt.ID, *sale.CustomerID); err != nil {
				return err
			}
			customerID = sale.CustomerID
		}

		if description == "" {
			description = fmt.Sprintf("Debt repayment of %.2f for sale #%d", amount, debt.SaleID)
		}

		if err := tx.InsertPaymentHistory(ctx, &models.PaymentHistory{
			SaleID:      debt.SaleID,
			PaymentType: paymentType,
			Amount:      amount,
			Description: description,
			CustomerID:  customerID,
			CreatedBy:   createdBy,
		}); err != nil {
			return err
		}

		if err := tx.UpdateDebtRepaid(ctx, debt.ID, newRepaid); err != nil {
			return err
		}

		if err := tx.UpdateSaleBalance(ctx, sale.ID, newBalance, saleStatus); err != nil {
			return err
		}

		details, _ := json.Marshal(map[string]interface{}{
			"sale_id":      sale.ID,
			"new_balance":  newBalance,
			"total_repaid": newRepaid,
			"buyer_name":   sale.BuyerName,
			"customer_id":  customerID,
		})
		activity = models.ActivityLog{
			ActivityType: models.ActivityDebtRepayment,
			ReferenceID:  sale.ID,
			Amount:       amount,
			Status:       saleStatus,
			Details:      details,
		}
		if err := tx.InsertActivity(ctx, &activity); err != nil {
			return err
		}

		result = models.RepaymentResult{
			Message:     "Repayment recorded",
			NewBalance:  newBalance,
			TotalRepaid: newRepaid,
			IsFullyPaid: newBalance == 0,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.RepaymentsRecorded.Inc()
	cache.InvalidateDebtSummary(ctx)
	s.feed.Publish(activity)

	return &result, nil
}

// AllocatePayment spreads one customer payment across the customer's open
// debts, oldest sale first, until the payment is exhausted or no open
// debts remain. Any remainder beyond total outstanding debt is returned
// as unallocated and never persisted.
func (s *DebtService) AllocatePayment(ctx context.Context, customerID int, amount float64, description string, createdBy int) (*models.AllocationResult, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("payment amount must be greater than zero: %w", models.ErrValidation)
	}

	result := &models.AllocationResult{
		CustomerID:  customerID,
		Allocations: []models.Allocation{},
	}
	var activity models.ActivityLog

	err := s.store.InTx(ctx, func(tx DebtTx) error {
		customer, err := tx.GetCustomer(ctx, customerID)
		if err != nil {
			return err
		}
		if customer.IsDeleted {
			return fmt.Errorf("customer %d: %w", customerID, models.ErrNotFound)
		}

		// Rows come back locked FOR UPDATE, serializing concurrent
		// payments against the same customer.
		openDebts, err := tx.OpenDebtsForUpdate(ctx, customerID)
		if err != nil {
			return err
		}

		remaining := amount
		for _, debt := range openDebts {
			if remaining <= 0 {
				break
			}

			open := round2(debt.Outstanding())
			if open <= 0 {
				continue
			}
			pay := open
			if remaining < open {
				pay = remaining
			}

			newBalance := round2(open - pay)
			paymentType := models.PaymentTypeDebtRepayment
			saleStatus := models.PaymentStatusPartial
			if newBalance == 0 {
				paymentType = models.PaymentTypeFullSettlement
				saleStatus = models.PaymentStatusPaid
			}

			if err := tx.UpdateDebtRepaid(ctx, debt.DebtID, round2(debt.RepaidAmount+pay)); err != nil {
				return err
			}
			if err := tx.UpdateSaleBalance(ctx, debt.SaleID, newBalance, saleStatus); err != nil {
				return err
			}

			desc := description
			if desc == "" {
				desc = fmt.Sprintf("Payment allocation of %.2f for sale #%d", pay, debt.SaleID)
			}
			cid := customerID
			if err := tx.InsertPaymentHistory(ctx, &models.PaymentHistory{
				SaleID:      debt.SaleID,
				PaymentType: paymentType,
				Amount:      pay,
				Description: desc,
				CustomerID:  &cid,
				CreatedBy:   createdBy,
			}); err != nil {
				return err
			}

			result.Allocations = append(result.Allocations, models.Allocation{
				DebtID:    debt.DebtID,
				SaleID:    debt.SaleID,
				Allocated: pay,
			})
			remaining = round2(remaining - pay)
		}

		result.Paid = round2(amount - remaining)
		result.Unallocated = remaining

		if result.Paid > 0 {
			details, _ := json.Marshal(map[string]interface{}{
				"customer_id":   customerID,
				"customer_name": customer.Name,
				"paid":          result.Paid,
				"unallocated":   result.Unallocated,
				"debts_touched": len(result.Allocations),
			})
			activity = models.ActivityLog{
				ActivityType: models.ActivityDebtRepayment,
				ReferenceID:  customerID,
				Amount:       result.Paid,
				Status:       "allocated",
				Details:      details,
			}
			if err := tx.InsertActivity(ctx, &activity); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	if result.Paid > 0 {
		metrics.PaymentsAllocated.Inc()
		cache.InvalidateDebtSummary(ctx)
		s.feed.Publish(activity)
	}

	return result, nil
}

// ListOpen returns all open debts with sale and item context
func (s *DebtService) ListOpen(ctx context.Context) ([]models.OpenDebt, error) {
	return s.store.ListOpen(ctx)
}

// CustomerSummaries returns the per-customer debt aggregate, cached
// briefly and invalidated on every repayment.
func (s *DebtService) CustomerSummaries(ctx context.Context) ([]models.CustomerDebtSummary, error) {
	if data, ok := cache.GetDebtSummary(ctx); ok {
		var summaries []models.CustomerDebtSummary
		if err := json.Unmarshal(data, &summaries); err == nil {
			return summaries, nil
		}
	}

	summaries, err := s.store.CustomerSummaries(ctx)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(summaries); err == nil {
		cache.CacheDebtSummary(ctx, data)
	}
	return summaries, nil
}
