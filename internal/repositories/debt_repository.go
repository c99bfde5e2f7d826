package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/isah4/Record-system-full-stack-web-app-sub000/internal/models"
	"github.com/isah4/Record-system-full-stack-web-app-sub000/internal/services"
)

// DebtRepository persists debts and repayments on PostgreSQL. All
// repayment writes go through InTx so the debt row, sale balance, payment
// history and activity log always move together.
type DebtRepository struct {
	DB *pgxpool.Pool
}

func NewDebtRepository(db *pgxpool.Pool) *DebtRepository {
	return &DebtRepository{DB: db}
}

var _ services.DebtStore = (*DebtRepository)(nil)

func (r *DebtRepository) InTx(ctx context.Context, fn func(tx services.DebtTx) error) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := fn(&debtTx{tx: tx}); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// ListOpen returns every debt with outstanding > 0, joined with sale,
// item and customer context, oldest sale first.
func (r *DebtRepository) ListOpen(ctx context.Context) ([]models.OpenDebt, error) {
	query := `
		SELECT d.id, d.sale_id, s.buyer_name, COALESCE(i.name, ''),
		       d.customer_id, COALESCE(c.name, ''),
		       d.amount, d.repaid_amount, s.created_at
		FROM debts d
		JOIN sales s ON s.id = d.sale_id
		LEFT JOIN items i ON i.id = s.item_id
		LEFT JOIN customers c ON c.id = d.customer_id
		WHERE d.amount - d.repaid_amount > 0
		ORDER BY s.created_at ASC, d.id ASC`

	rows, err := r.DB.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query open debts: %w", err)
	}
	defer rows.Close()

	return scanOpenDebts(rows)
}

// CustomerSummaries aggregates open debts per customer. Customers whose
// debts are fully settled are excluded. Legacy debts without a customer
// link fall back to the parent sale's customer.
func (r *DebtRepository) CustomerSummaries(ctx context.Context) ([]models.CustomerDebtSummary, error) {
	query := `
		SELECT c.id, c.name,
		       SUM(d.amount), SUM(d.repaid_amount),
		       SUM(GREATEST(d.amount - d.repaid_amount, 0)),
		       MAX(GREATEST(d.updated_at, s.created_at))
		FROM debts d
		JOIN sales s ON s.id = d.sale_id
		JOIN customers c ON c.id = COALESCE(d.customer_id, s.customer_id)
		WHERE c.is_deleted = FALSE
		GROUP BY c.id, c.name
		HAVING SUM(GREATEST(d.amount - d.repaid_amount, 0)) > 0
		ORDER BY SUM(GREATEST(d.amount - d.repaid_amount, 0)) DESC`

	rows, err := r.DB.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query customer debt summaries: %w", err)
	}
	defer rows.Close()

	summaries := []models.CustomerDebtSummary{}
	for rows.Next() {
		var s models.CustomerDebtSummary
		if err := rows.Scan(&s.CustomerID, &s.CustomerName, &s.TotalDebt,
			&s.TotalRepaid, &s.Outstanding, &s.LastActivity); err != nil {
			return nil, fmt.Errorf("failed to scan customer debt summary: %w", err)
		}
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}

// debtTx runs repayment statements on one pgx transaction
type debtTx struct {
	tx pgx.Tx
}

func (t *debtTx) GetDebtForUpdate(ctx context.Context, debtID int) (*models.Debt, error) {
	var d models.Debt
	err := t.tx.QueryRow(ctx, `
		SELECT id, sale_id, customer_id, amount, repaid_amount, created_at, updated_at
		FROM debts WHERE id = $1
		FOR UPDATE`, debtID).
		Scan(&d.ID, &d.SaleID, &d.CustomerID, &d.Amount, &d.RepaidAmount, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("debt %d: %w", debtID, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get debt: %w", err)
	}
	return &d, nil
}

func (t *debtTx) GetSale(ctx context.Context, saleID int) (*models.Sale, error) {
	var s models.Sale
	err := t.tx.QueryRow(ctx, `
		SELECT id, buyer_name, customer_id, item_id, quantity, total, balance,
		       payment_status, created_by, created_at
		FROM sales WHERE id = $1`, saleID).
		Scan(&s.ID, &s.BuyerName, &s.CustomerID, &s.ItemID, &s.Quantity,
			&s.Total, &s.Balance, &s.PaymentStatus, &s.CreatedBy, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("sale %d: %w", saleID, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get sale: %w", err)
	}
	return &s, nil
}

// OpenDebtsForUpdate locks the customer's open debt rows for the duration
// of the allocation transaction. Debts missing a customer link are matched
// through the parent sale. FOR UPDATE OF d locks only the debts table so
// the outer-joined item and customer rows stay lock-free.
func (t *debtTx) OpenDebtsForUpdate(ctx context.Context, customerID int) ([]models.OpenDebt, error) {
	query := `
		SELECT d.id, d.sale_id, s.buyer_name, COALESCE(i.name, ''),
		       d.customer_id, COALESCE(c.name, ''),
		       d.amount, d.repaid_amount, s.created_at
		FROM debts d
		JOIN sales s ON s.id = d.sale_id
		LEFT JOIN items i ON i.id = s.item_id
		LEFT JOIN customers c ON c.id = d.customer_id
		WHERE (d.customer_id = $1 OR (d.customer_id IS NULL AND s.customer_id = $1))
		  AND d.amount - d.repaid_amount > 0
		ORDER BY s.created_at ASC, d.id ASC
		FOR UPDATE OF d`

	rows, err := t.tx.Query(ctx, query, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to lock open debts: %w", err)
	}
	defer rows.Close()

	return scanOpenDebts(rows)
}

func (t *debtTx) GetCustomer(ctx context.Context, customerID int) (*models.Customer, error) {
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

func (t *debtTx) SetDebtCustomer(ctx context.Context, debtID, customerID int) error {
	_, err := t.tx.Exec(ctx,
		`UPDATE debts SET customer_id = $1, updated_at = NOW() WHERE id = $2`,
		customerID, debtID)
	if err != nil {
		return fmt.Errorf("failed to backfill debt customer: %w", err)
	}
	return nil
}

func (t *debtTx) UpdateDebtRepaid(ctx context.Context, debtID int, repaidAmount float64) error {
	tag, err := t.tx.Exec(ctx,
		`UPDATE debts SET repaid_amount = $1, updated_at = NOW() WHERE id = $2`,
		repaidAmount, debtID)
	if err != nil {
		return fmt.Errorf("failed to update debt: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("debt %d: %w", debtID, models.ErrNotFound)
	}
	return nil
}

func (t *debtTx) UpdateSaleBalance(ctx context.Context, saleID int, balance float64, status string) error {
	tag, err := t.tx.Exec(ctx,
		`UPDATE sales SET balance = $1, payment_status = $2 WHERE id = $3`,
		balance, status, saleID)
	if err != nil {
		return fmt.Errorf("failed to update sale balance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("sale %d: %w", saleID, models.ErrNotFound)
	}
	return nil
}

func (t *debtTx) InsertPaymentHistory(ctx context.Context, p *models.PaymentHistory) error {
	return insertPaymentHistoryTx(ctx, t.tx, p)
}

func (t *debtTx) InsertActivity(ctx context.Context, a *models.ActivityLog) error {
	return insertActivityTx(ctx, t.tx, a)
}

func scanOpenDebts(rows pgx.Rows) ([]models.OpenDebt, error) {
	debts := []models.OpenDebt{}
	for rows.Next() {
		var d models.OpenDebt
		if err := rows.Scan(&d.DebtID, &d.SaleID, &d.BuyerName, &d.ItemName,
			&d.CustomerID, &d.CustomerName, &d.Amount, &d.RepaidAmount, &d.SaleDate); err != nil {
			return nil, fmt.Errorf("failed to scan open debt: %w", err)
		}
		debts = append(debts, d)
	}
	return debts, rows.Err()
}
