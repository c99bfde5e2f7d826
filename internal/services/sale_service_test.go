package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/isah4/Record-system-full-stack-web-app-sub000/internal/models"
	"github.com/isah4/Record-system-full-stack-web-app-sub000/internal/services"
)

func f64(v float64) *float64 { return &v }

func TestCreateSalePaid(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	item := store.addItem("Rice 50kg", 1200, f64(1000), 10)

	svc := services.NewSaleService(saleStoreView{store})

	result, err := svc.Create(ctx, &models.CreateSaleRequest{
		BuyerName:     "Walk-in",
		ItemID:        item.ID,
		Quantity:      3,
		PaymentStatus: models.PaymentStatusPaid,
	}, 1)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if result.Sale.Total != 3600 || result.Sale.Balance != 0 {
		t.Errorf("sale total/balance = %v/%v, want 3600/0", result.Sale.Total, result.Sale.Balance)
	}
	if result.DebtID != nil {
		t.Error("paid sale opened a debt")
	}
	if got := store.items[item.ID].Stock; got != 7 {
		t.Errorf("stock = %d, want 7", got)
	}
	if len(store.payments) != 1 || store.payments[0].PaymentType != models.PaymentTypeInitial ||
		store.payments[0].Amount != 3600 {
		t.Errorf("expected one initial payment of 3600, got %+v", store.payments)
	}
	if len(store.activities) != 1 || store.activities[0].ActivityType != models.ActivitySale {
		t.Errorf("expected one sale activity, got %+v", store.activities)
	}
}

// A sale on full credit opens exactly one debt carrying the whole total
// with nothing repaid yet, and no initial payment row.
func TestCreateSaleOnCredit(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	customer := store.addCustomer("Amina")
	item := store.addItem("Rice 50kg", 1200, nil, 10)

	svc := services.NewSaleService(saleStoreView{store})

	result, err := svc.Create(ctx, &models.CreateSaleRequest{
		CustomerID:    &customer.ID,
		ItemID:        item.ID,
		Quantity:      2,
		PaymentStatus: models.PaymentStatusDebt,
	}, 1)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if result.DebtID == nil {
		t.Fatal("credit sale did not open a debt")
	}
	debt := store.debts[*result.DebtID]
	if debt.Amount != 2400 || debt.RepaidAmount != 0 {
		t.Errorf("debt = amount %v repaid %v, want 2400/0", debt.Amount, debt.RepaidAmount)
	}
	if debt.CustomerID == nil || *debt.CustomerID != customer.ID {
		t.Errorf("debt customer = %v, want %d", debt.CustomerID, customer.ID)
	}
	if result.Sale.Balance != 2400 {
		t.Errorf("sale balance = %v, want 2400", result.Sale.Balance)
	}
	if result.Sale.BuyerName != customer.Name {
		t.Errorf("buyer name = %q, want customer name %q", result.Sale.BuyerName, customer.Name)
	}
	if len(store.payments) != 0 {
		t.Errorf("credit sale wrote %d payment rows, want 0", len(store.payments))
	}
}

func TestCreateSalePartial(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	customer := store.addCustomer("Amina")
	item := store.addItem("Rice 50kg", 1000, nil, 10)

	svc := services.NewSaleService(saleStoreView{store})

	result, err := svc.Create(ctx, &models.CreateSaleRequest{
		CustomerID:    &customer.ID,
		ItemID:        item.ID,
		Quantity:      5,
		PaymentStatus: models.PaymentStatusPartial,
		Balance:       f64(2000),
	}, 1)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if result.Sale.Total != 5000 || result.Sale.Balance != 2000 {
		t.Errorf("sale total/balance = %v/%v, want 5000/2000", result.Sale.Total, result.Sale.Balance)
	}
	debt := store.debts[*result.DebtID]
	if debt.Amount != 2000 || debt.RepaidAmount != 0 {
		t.Errorf("debt = amount %v repaid %v, want 2000/0", debt.Amount, debt.RepaidAmount)
	}
	// The 3000 paid up front is audit trail, not debt bookkeeping
	if len(store.payments) != 1 || store.payments[0].Amount != 3000 ||
		store.payments[0].PaymentType != models.PaymentTypeInitial {
		t.Errorf("expected one initial payment of 3000, got %+v", store.payments)
	}
}

func TestCreateSalePartialBalanceValidation(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	item := store.addItem("Rice 50kg", 1000, nil, 10)
	svc := services.NewSaleService(saleStoreView{store})

	for name, balance := range map[string]*float64{
		"missing":      nil,
		"zero":         f64(0),
		"equals total": f64(2000),
		"above total":  f64(9999),
	} {
		_, err := svc.Create(ctx, &models.CreateSaleRequest{
			BuyerName:     "Walk-in",
			ItemID:        item.ID,
			Quantity:      2,
			PaymentStatus: models.PaymentStatusPartial,
			Balance:       balance,
		}, 1)
		if !errors.Is(err, models.ErrValidation) {
			t.Errorf("%s balance: expected validation error, got %v", name, err)
		}
	}

	if got := store.items[item.ID].Stock; got != 10 {
		t.Errorf("stock = %d after rejected sales, want 10", got)
	}
	if len(store.sales) != 0 {
		t.Errorf("rejected sales persisted %d rows", len(store.sales))
	}
}

func TestCreateSaleInsufficientStock(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	item := store.addItem("Rice 50kg", 1000, nil, 2)
	svc := services.NewSaleService(saleStoreView{store})

	_, err := svc.Create(ctx, &models.CreateSaleRequest{
		BuyerName:     "Walk-in",
		ItemID:        item.ID,
		Quantity:      5,
		PaymentStatus: models.PaymentStatusPaid,
	}, 1)
	if !errors.Is(err, models.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if got := store.items[item.ID].Stock; got != 2 {
		t.Errorf("stock = %d after rejected sale, want 2", got)
	}
}

func TestCreateSaleRequestValidation(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	item := store.addItem("Rice 50kg", 1000, nil, 10)
	svc := services.NewSaleService(saleStoreView{store})

	cases := map[string]*models.CreateSaleRequest{
		"no buyer or customer": {ItemID: item.ID, Quantity: 1, PaymentStatus: models.PaymentStatusPaid},
		"zero quantity":        {BuyerName: "x", ItemID: item.ID, Quantity: 0, PaymentStatus: models.PaymentStatusPaid},
		"bad status":           {BuyerName: "x", ItemID: item.ID, Quantity: 1, PaymentStatus: "layaway"},
		"missing item":         {BuyerName: "x", Quantity: 1, PaymentStatus: models.PaymentStatusPaid},
	}
	for name, req := range cases {
		if _, err := svc.Create(ctx, req, 1); !errors.Is(err, models.ErrValidation) {
			t.Errorf("%s: expected validation error, got %v", name, err)
		}
	}

	_, err := svc.Create(ctx, &models.CreateSaleRequest{
		BuyerName: "x", ItemID: 404, Quantity: 1, PaymentStatus: models.PaymentStatusPaid,
	}, 1)
	if !errors.Is(err, models.ErrNotFound) {
		t.Errorf("unknown item: expected not-found error, got %v", err)
	}
}
