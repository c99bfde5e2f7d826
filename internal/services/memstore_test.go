package services_test

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/isah4/Record-system-full-stack-web-app-sub000/internal/models"
	"github.com/isah4/Record-system-full-stack-web-app-sub000/internal/services"
)

// memStore is an in-memory stand-in for the pgx repositories. InTx copies
// the whole state up front and restores it when fn fails, mirroring a
// transaction rollback, which lets tests assert that failed operations
// leave no writes behind.
type memStore struct {
	customers  map[int]*models.Customer
	items      map[int]*models.Item
	sales      map[int]*models.Sale
	debts      map[int]*models.Debt
	payments   []models.PaymentHistory
	activities []models.ActivityLog
	nextID     int
}

func newMemStore() *memStore {
	return &memStore{
		customers: make(map[int]*models.Customer),
		items:     make(map[int]*models.Item),
		sales:     make(map[int]*models.Sale),
		debts:     make(map[int]*models.Debt),
		nextID:    1,
	}
}

func (m *memStore) id() int {
	id := m.nextID
	m.nextID++
	return id
}

func (m *memStore) addCustomer(name string) *models.Customer {
	c := &models.Customer{ID: m.id(), Name: name, CreatedAt: time.Now()}
	m.customers[c.ID] = c
	return c
}

func (m *memStore) addItem(name string, price float64, wholesale *float64, stock int) *models.Item {
	i := &models.Item{ID: m.id(), Name: name, Price: price, WholesalePrice: wholesale, Stock: stock}
	m.items[i.ID] = i
	return i
}

// addDebtSale seeds a sale plus its open debt, the way sale creation
// writes them. createdAt orders the FIFO queue.
func (m *memStore) addDebtSale(customerID *int, total, balance float64, createdAt time.Time) (*models.Sale, *models.Debt) {
	status := models.PaymentStatusDebt
	if balance < total {
		status = models.PaymentStatusPartial
	}
	s := &models.Sale{
		ID:            m.id(),
		BuyerName:     "seed buyer",
		CustomerID:    customerID,
		ItemID:        0,
		Quantity:      1,
		Total:         total,
		Balance:       balance,
		PaymentStatus: status,
		CreatedAt:     createdAt,
	}
	m.sales[s.ID] = s

	d := &models.Debt{
		ID:           m.id(),
		SaleID:       s.ID,
		CustomerID:   customerID,
		Amount:       balance,
		RepaidAmount: 0,
		CreatedAt:    createdAt,
		UpdatedAt:    createdAt,
	}
	m.debts[d.ID] = d
	return s, d
}

func (m *memStore) snapshot() *memStore {
	cp := newMemStore()
	cp.nextID = m.nextID
	for id, c := range m.customers {
		v := *c
		cp.customers[id] = &v
	}
	for id, i := range m.items {
		v := *i
		cp.items[id] = &v
	}
	for id, s := range m.sales {
		v := *s
		cp.sales[id] = &v
	}
	for id, d := range m.debts {
		v := *d
		cp.debts[id] = &v
	}
	cp.payments = append([]models.PaymentHistory(nil), m.payments...)
	cp.activities = append([]models.ActivityLog(nil), m.activities...)
	return cp
}

func (m *memStore) restore(snap *memStore) {
	m.customers = snap.customers
	m.items = snap.items
	m.sales = snap.sales
	m.debts = snap.debts
	m.payments = snap.payments
	m.activities = snap.activities
	m.nextID = snap.nextID
}

var _ services.DebtStore = (*memStore)(nil)
var _ services.SaleStore = saleStoreView{}

func (m *memStore) InTx(ctx context.Context, fn func(tx services.DebtTx) error) error {
	snap := m.snapshot()
	if err := fn(&memTx{store: m}); err != nil {
		m.restore(snap)
		return err
	}
	return nil
}

// saleStoreView satisfies SaleStore over the same state; the two InTx
// signatures cannot live on one type.
type saleStoreView struct {
	*memStore
}

func (v saleStoreView) InTx(ctx context.Context, fn func(tx services.SaleTx) error) error {
	snap := v.memStore.snapshot()
	if err := fn(&memTx{store: v.memStore}); err != nil {
		v.memStore.restore(snap)
		return err
	}
	return nil
}

func (m *memStore) ListOpen(ctx context.Context) ([]models.OpenDebt, error) {
	var out []models.OpenDebt
	for _, d := range m.debts {
		if d.Outstanding() <= 0 {
			continue
		}
		out = append(out, m.joinDebt(d))
	}
	sortOpenDebts(out)
	return out, nil
}

func (m *memStore) CustomerSummaries(ctx context.Context) ([]models.CustomerDebtSummary, error) {
	byCustomer := make(map[int]*models.CustomerDebtSummary)
	for _, d := range m.debts {
		cid, ok := m.debtCustomer(d)
		if !ok {
			continue
		}
		c := m.customers[cid]
		if c == nil || c.IsDeleted {
			continue
		}
		sum := byCustomer[cid]
		if sum == nil {
			sum = &models.CustomerDebtSummary{CustomerID: cid, CustomerName: c.Name}
			byCustomer[cid] = sum
		}
		sum.TotalDebt += d.Amount
		sum.TotalRepaid += d.RepaidAmount
		sum.Outstanding += d.Outstanding()
		if d.UpdatedAt.After(sum.LastActivity) {
			sum.LastActivity = d.UpdatedAt
		}
	}

	var out []models.CustomerDebtSummary
	for _, sum := range byCustomer {
		if sum.Outstanding > 0 {
			out = append(out, *sum)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Outstanding > out[j].Outstanding })
	return out, nil
}

func (m *memStore) List(ctx context.Context, date *time.Time) ([]models.SaleWithContext, error) {
	var out []models.SaleWithContext
	for _, s := range m.sales {
		out = append(out, m.joinSale(s))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *memStore) Get(ctx context.Context, id int) (*models.SaleWithContext, error) {
	s, ok := m.sales[id]
	if !ok {
		return nil, fmt.Errorf("sale %d: %w", id, models.ErrNotFound)
	}
	joined := m.joinSale(s)
	return &joined, nil
}

func (m *memStore) debtCustomer(d *models.Debt) (int, bool) {
	if d.CustomerID != nil {
		return *d.CustomerID, true
	}
	if s := m.sales[d.SaleID]; s != nil && s.CustomerID != nil {
		return *s.CustomerID, true
	}
	return 0, false
}

func (m *memStore) joinDebt(d *models.Debt) models.OpenDebt {
	od := models.OpenDebt{
		DebtID:       d.ID,
		SaleID:       d.SaleID,
		CustomerID:   d.CustomerID,
		Amount:       d.Amount,
		RepaidAmount: d.RepaidAmount,
	}
	if s := m.sales[d.SaleID]; s != nil {
		od.BuyerName = s.BuyerName
		od.SaleDate = s.CreatedAt
	}
	if d.CustomerID != nil {
		if c := m.customers[*d.CustomerID]; c != nil {
			od.CustomerName = c.Name
		}
	}
	return od
}

func (m *memStore) joinSale(s *models.Sale) models.SaleWithContext {
	sw := models.SaleWithContext{Sale: *s}
	if i := m.items[s.ItemID]; i != nil {
		sw.ItemName = i.Name
	}
	if s.CustomerID != nil {
		if c := m.customers[*s.CustomerID]; c != nil {
			sw.CustomerName = c.Name
		}
	}
	return sw
}

func sortOpenDebts(debts []models.OpenDebt) {
	sort.Slice(debts, func(i, j int) bool {
		if !debts[i].SaleDate.Equal(debts[j].SaleDate) {
			return debts[i].SaleDate.Before(debts[j].SaleDate)
		}
		return debts[i].DebtID < debts[j].DebtID
	})
}

// memTx implements both DebtTx and SaleTx against the live store; the
// snapshot in InTx provides rollback.
type memTx struct {
	store *memStore
}

func (t *memTx) GetDebtForUpdate(ctx context.Context, debtID int) (*models.Debt, error) {
	d, ok := t.store.debts[debtID]
	if !ok {
		return nil, fmt.Errorf("debt %d: %w", debtID, models.ErrNotFound)
	}
	v := *d
	return &v, nil
}

func (t *memTx) GetSale(ctx context.Context, saleID int) (*models.Sale, error) {
	s, ok := t.store.sales[saleID]
	if !ok {
		return nil, fmt.Errorf("sale %d: %w", saleID, models.ErrNotFound)
	}
	v := *s
	return &v, nil
}

func (t *memTx) OpenDebtsForUpdate(ctx context.Context, customerID int) ([]models.OpenDebt, error) {
	var out []models.OpenDebt
	for _, d := range t.store.debts {
		if d.Outstanding() <= 0 {
			continue
		}
		cid, ok := t.store.debtCustomer(d)
		if !ok || cid != customerID {
			continue
		}
		out = append(out, t.store.joinDebt(d))
	}
	sortOpenDebts(out)
	return out, nil
}

func (t *memTx) GetCustomer(ctx context.Context, customerID int) (*models.Customer, error) {
	c, ok := t.store.customers[customerID]
	if !ok {
		return nil, fmt.Errorf("customer %d: %w", customerID, models.ErrNotFound)
	}
	v := *c
	return &v, nil
}

func (t *memTx) SetDebtCustomer(ctx context.Context, debtID, customerID int) error {
	d, ok := t.store.debts[debtID]
	if !ok {
		return fmt.Errorf("debt %d: %w", debtID, models.ErrNotFound)
	}
	d.CustomerID = &customerID
	return nil
}

func (t *memTx) UpdateDebtRepaid(ctx context.Context, debtID int, repaidAmount float64) error {
	d, ok := t.store.debts[debtID]
	if !ok {
		return fmt.Errorf("debt %d: %w", debtID, models.ErrNotFound)
	}
	d.RepaidAmount = repaidAmount
	d.UpdatedAt = time.Now()
	return nil
}

func (t *memTx) UpdateSaleBalance(ctx context.Context, saleID int, balance float64, status string) error {
	s, ok := t.store.sales[saleID]
	if !ok {
		return fmt.Errorf("sale %d: %w", saleID, models.ErrNotFound)
	}
	s.Balance = balance
	s.PaymentStatus = status
	return nil
}

func (t *memTx) InsertPaymentHistory(ctx context.Context, p *models.PaymentHistory) error {
	p.ID = t.store.id()
	p.PaymentDate = time.Now()
	t.store.payments = append(t.store.payments, *p)
	return nil
}

func (t *memTx) InsertActivity(ctx context.Context, a *models.ActivityLog) error {
	a.ID = t.store.id()
	a.ActivityDate = time.Now()
	t.store.activities = append(t.store.activities, *a)
	return nil
}

func (t *memTx) GetItemForUpdate(ctx context.Context, itemID int) (*models.Item, error) {
	i, ok := t.store.items[itemID]
	if !ok {
		return nil, fmt.Errorf("item %d: %w", itemID, models.ErrNotFound)
	}
	v := *i
	return &v, nil
}

func (t *memTx) UpdateItemStock(ctx context.Context, itemID, stock int) error {
	i, ok := t.store.items[itemID]
	if !ok {
		return fmt.Errorf("item %d: %w", itemID, models.ErrNotFound)
	}
	i.Stock = stock
	return nil
}

func (t *memTx) InsertSale(ctx context.Context, s *models.Sale) error {
	s.ID = t.store.id()
	s.CreatedAt = time.Now()
	v := *s
	t.store.sales[s.ID] = &v
	return nil
}

func (t *memTx) InsertDebt(ctx context.Context, d *models.Debt) error {
	for _, existing := range t.store.debts {
		if existing.SaleID == d.SaleID {
			return fmt.Errorf("debt already exists for sale %d: %w", d.SaleID, models.ErrConflict)
		}
	}
	d.ID = t.store.id()
	d.CreatedAt = time.Now()
	d.UpdatedAt = d.CreatedAt
	v := *d
	t.store.debts[d.ID] = &v
	return nil
}
