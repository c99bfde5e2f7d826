package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/isah4/Record-system-full-stack-web-app-sub000/internal/cache"
	"github.com/isah4/Record-system-full-stack-web-app-sub000/internal/live"
	"github.com/isah4/Record-system-full-stack-web-app-sub000/internal/metrics"
	"github.com/isah4/Record-system-full-stack-web-app-sub000/internal/models"
)

// SaleTx is the set of statements available inside a sale-creation
// transaction. The item row is locked before the stock check so two
// concurrent sales of the same item cannot both pass validation.
type SaleTx interface {
	GetItemForUpdate(ctx context.Context, itemID int) (*models.Item, error)
	GetCustomer(ctx context.Context, customerID int) (*models.Customer, error)
	UpdateItemStock(ctx context.Context, itemID, stock int) error
	InsertSale(ctx context.Context, s *models.Sale) error
	InsertDebt(ctx context.Context, d *models.Debt) error
	InsertPaymentHistory(ctx context.Context, p *models.PaymentHistory) error
	InsertActivity(ctx context.Context, a *models.ActivityLog) error
}

// SaleStore is the persistence surface for sales
type SaleStore interface {
	InTx(ctx context.Context, fn func(tx SaleTx) error) error
	List(ctx context.Context, date *time.Time) ([]models.SaleWithContext, error)
	Get(ctx context.Context, id int) (*models.SaleWithContext, error)
}

// SaleService records sales, decrements stock and opens debts for unpaid
// balances, all atomically.
type SaleService struct {
	store SaleStore
	feed  *live.Hub
}

func NewSaleService(store SaleStore) *SaleService {
	return &SaleService{store: store}
}

func (s *SaleService) SetFeed(feed *live.Hub) {
	s.feed = feed
}

// Create records a sale. The balance is derived from the payment status:
// "paid" forces zero, "debt" forces the full total, "partial" accepts the
// client's balance as long as it is strictly between zero and the total.
// When any balance remains, a debt row is opened in the same transaction
// with amount = balance and repaid_amount = 0; the up-front portion is
// recorded as an "initial" payment history entry.
func (s *SaleService) Create(ctx context.Context, req *models.CreateSaleRequest, createdBy int) (*models.CreateSaleResult, error) {
	if err := validateSaleRequest(req); err != nil {
		return nil, err
	}

	var result models.CreateSaleResult
	var activity models.ActivityLog

	err := s.store.InTx(ctx, func(tx SaleTx) error {
		item, err := tx.GetItemForUpdate(ctx, req.ItemID)
		if err != nil {
			return err
		}
		if item.Stock < req.Quantity {
			return fmt.Errorf("insufficient stock for %s: have %d, need %d: %w",
				item.Name, item.Stock, req.Quantity, models.ErrValidation)
		}

		if req.CustomerID != nil {
			customer, err := tx.GetCustomer(ctx, *req.CustomerID)
			if err != nil {
				return err
			}
			if customer.IsDeleted {
				return fmt.Errorf("customer %d: %w", *req.CustomerID, models.ErrNotFound)
			}
			if req.BuyerName == "" {
				req.BuyerName = customer.Name
			}
		}

		total := round2(item.Price * float64(req.Quantity))

		var balance float64
		switch req.PaymentStatus {
		case models.PaymentStatusPaid:
			balance = 0
		case models.PaymentStatusDebt:
			balance = total
		case models.PaymentStatusPartial:
			if req.Balance == nil || *req.Balance <= 0 || *req.Balance >= total {
				return fmt.Errorf("partial balance must be between 0 and %.2f exclusive: %w",
					total, models.ErrValidation)
			}
			balance = *req.Balance
		}

		if err := tx.UpdateItemStock(ctx, item.ID, item.Stock-req.Quantity); err != nil {
			return err
		}

		sale := &models.Sale{
			BuyerName:     req.BuyerName,
			CustomerID:    req.CustomerID,
			ItemID:        req.ItemID,
			Quantity:      req.Quantity,
			Total:         total,
			Balance:       balance,
			PaymentStatus: req.PaymentStatus,
			CreatedBy:     createdBy,
		}
		if err := tx.InsertSale(ctx, sale); err != nil {
			return err
		}

		if paid := total - balance; paid > 0 {
			if err := tx.InsertPaymentHistory(ctx, &models.PaymentHistory{
				SaleID:      sale.ID,
				PaymentType: models.PaymentTypeInitial,
				Amount:      paid,
				Description: fmt.Sprintf("Initial payment for sale #%d", sale.ID),
				CustomerID:  req.CustomerID,
				CreatedBy:   createdBy,
			}); err != nil {
				return err
			}
		}

		if balance > 0 {
			debt := &models.Debt{
				SaleID:       sale.ID,
				CustomerID:   req.CustomerID,
				Amount:       balance,
				RepaidAmount: 0,
			}
			if err := tx.InsertDebt(ctx, debt); err != nil {
				return err
			}
			result.DebtID = &debt.ID
		}

		details, _ := json.Marshal(map[string]interface{}{
			"item_id":    item.ID,
			"item_name":  item.Name,
			"quantity":   req.Quantity,
			"buyer_name": sale.BuyerName,
			"balance":    balance,
		})
		activity = models.ActivityLog{
			ActivityType: models.ActivitySale,
			ReferenceID:  sale.ID,
			Amount:       total,
			Status:       req.PaymentStatus,
			Details:      details,
		}
		if err := tx.InsertActivity(ctx, &activity); err != nil {
			return err
		}

		result.Sale = sale
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.SalesRecorded.Inc()
	if result.Sale.Balance > 0 {
		cache.InvalidateDebtSummary(ctx)
	}
	s.feed.Publish(activity)

	return &result, nil
}

// List returns sales with item and customer context, optionally filtered
// to one business day.
func (s *SaleService) List(ctx context.Context, date *time.Time) ([]models.SaleWithContext, error) {
	return s.store.List(ctx, date)
}

func (s *SaleService) Get(ctx context.Context, id int) (*models.SaleWithContext, error) {
	return s.store.Get(ctx, id)
}

func validateSaleRequest(req *models.CreateSaleRequest) error {
	req.BuyerName = strings.TrimSpace(req.BuyerName)
	if req.BuyerName == "" && req.CustomerID == nil {
		return fmt.Errorf("buyer_name or customer_id is required: %w", models.ErrValidation)
	}
	if req.ItemID <= 0 {
		return fmt.Errorf("item_id is required: %w", models.ErrValidation)
	}
	if req.Quantity <= 0 {
		return fmt.Errorf("quantity must be greater than zero: %w", models.ErrValidation)
	}
	switch req.PaymentStatus {
	case models.PaymentStatusPaid, models.PaymentStatusPartial, models.PaymentStatusDebt:
	default:
		return fmt.Errorf("payment_status must be paid, partial or debt: %w", models.ErrValidation)
	}
	return nil
}
