package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/isah4/Record-system-full-stack-web-app-sub000/internal/models"
	"github.com/isah4/Record-system-full-stack-web-app-sub000/internal/services"
	"github.com/isah4/Record-system-full-stack-web-app-sub000/internal/timeutil"
)

// SaleRepository persists sales on PostgreSQL. Sale creation runs through
// InTx so stock, sale, debt, payment history and activity commit together.
type SaleRepository struct {
	DB *pgxpool.Pool
}

func NewSaleRepository(db *pgxpool.Pool) *SaleRepository {
	return &SaleRepository{DB: db}
}

var _ services.SaleStore = (*SaleRepository)(nil)

func (r *SaleRepository) InTx(ctx context.Context, fn func(tx services.SaleTx) error) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := fn(&saleTx{tx: tx}); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// List returns sales with item and customer context, newest first. A date
// filters to that business day in the shop's timezone.
func (r *SaleRepository) List(ctx context.Context, date *time.Time) ([]models.SaleWithContext, error) {
	query := `
		SELECT s.id, s.buyer_name, s.customer_id, s.item_id, s.quantity,
		       s.total, s.balance, s.payment_status, s.created_by, s.created_at,
		       COALESCE(i.name, ''), COALESCE(c.name, '')
		FROM sales s
		LEFT JOIN items i ON i.id = s.item_id
		LEFT JOIN customers c ON c.id = s.customer_id`

	var args []interface{}
	if date != nil {
		query += ` WHERE s.created_at >= $1 AND s.created_at < $2`
		args = append(args, timeutil.StartOfDay(*date), timeutil.EndOfDay(*date))
	}
	query += ` ORDER BY s.created_at DESC`

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query sales: %w", err)
	}
	defer rows.Close()

	sales := []models.SaleWithContext{}
	for rows.Next() {
		var s models.SaleWithContext
		if err := rows.Scan(&s.ID, &s.BuyerName, &s.CustomerID, &s.ItemID, &s.Quantity,
			&s.Total, &s.Balance, &s.PaymentStatus, &s.CreatedBy, &s.CreatedAt,
			&s.ItemName, &s.CustomerName); err != nil {
			return nil, fmt.Errorf("failed to scan sale: %w", err)
		}
		sales = append(sales, s)
	}
	return sales, rows.Err()
}

func (r *SaleRepository) Get(ctx context.Context, id int) (*models.SaleWithContext, error) {
	var s models.SaleWithContext
	err := r.DB.QueryRow(ctx, `
		SELECT s.id, s.buyer_name, s.customer_id, s.item_id, s.quantity,
		       s.total, s.balance, s.payment_status, s.created_by, s.created_at,
		       COALESCE(i.name, ''), COALESCE(c.name, '')
		FROM sales s
		LEFT JOIN items i ON i.id = s.item_id
		LEFT JOIN customers c ON c.id = s.customer_id
		WHERE s.id = $1`, id).
		Scan(&s.ID, &s.BuyerName, &s.CustomerID, &s.ItemID, &s.Quantity,
			&s.Total, &s.Balance, &s.PaymentStatus, &s.CreatedBy, &s.CreatedAt,
			&s.ItemName, &s.CustomerName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("sale %d: %w", id, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get sale: %w", err)
	}
	return &s, nil
}

// saleTx runs sale-creation statements on one pgx transaction
type saleTx struct {
	tx pgx.Tx
}

func (t *saleTx) GetItemForUpdate(ctx context.Context, itemID int) (*models.Item, error) {
	var i models.Item
	err := t.tx.QueryRow(ctx, `
		SELECT id, name, price, wholesale_price, stock, low_stock_level, created_at, updated_at
		FROM items WHERE id = $1
		FOR UPDATE`, itemID).
		Scan(&i.ID, &i.Name, &i.Price, &i.WholesalePrice, &i.Stock, &i.LowStockLevel,
			&i.CreatedAt, &i.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("item %d: %w", itemID, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get item: %w", err)
	}
	return &i, nil
}

func (t *saleTx) GetCustomer(ctx context.Context, customerID int) (*models.Customer, error) {
	var c models.Customer
	err := t.tx.QueryRow(ctx, `
		SELECT id, name, COALESCE(phone, ''), COALESCE(email, ''), COALESCE(address, ''),
		       is_deleted, created_at, updated_at
		FROM customers WHERE id = $1`, customerID).
		Scan(&c.ID, &c.Name, &c.Phone, &c.Email, &c.Address, &c.IsDeleted, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("customer %d: %w", customerID, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}
	return &c, nil
}

func (t *saleTx) UpdateItemStock(ctx context.Context, itemID, stock int) error {
	tag, err := t.tx.Exec(ctx,
		`UPDATE items SET stock = $1, updated_at = NOW() WHERE id = $2`,
		stock, itemID)
	if err != nil {
		return fmt.Errorf("failed to update item stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("item %d: %w", itemID, models.ErrNotFound)
	}
	return nil
}

func (t *saleTx) InsertSale(ctx context.Context, s *models.Sale) error {
	err := t.tx.QueryRow(ctx, `
		INSERT INTO sales (buyer_name, customer_id, item_id, quantity, total, balance, payment_status, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at`,
		s.BuyerName, s.CustomerID, s.ItemID, s.Quantity, s.Total, s.Balance,
		s.PaymentStatus, s.CreatedBy).
		Scan(&s.ID, &s.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert sale: %w", err)
	}
	return nil
}

func (t *saleTx) InsertDebt(ctx context.Context, d *models.Debt) error {
	err := t.tx.QueryRow(ctx, `
		INSERT INTO debts (sale_id, customer_id, amount, repaid_amount)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at`,
		d.SaleID, d.CustomerID, d.Amount, d.RepaidAmount).
		Scan(&d.ID, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("debt already exists for sale %d: %w", d.SaleID, models.ErrConflict)
		}
		return fmt.Errorf("failed to insert debt: %w", err)
	}
	return nil
}

func (t *saleTx) InsertPaymentHistory(ctx context.Context, p *models.PaymentHistory) error {
	return insertPaymentHistoryTx(ctx, t.tx, p)
}

func (t *saleTx) InsertActivity(ctx context.Context, a *models.ActivityLog) error {
	return insertActivityTx(ctx, t.tx, a)
}
