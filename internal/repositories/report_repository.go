package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/isah4/Record-system-full-stack-web-app-sub000/internal/models"
	"github.com/isah4/Record-system-full-stack-web-app-sub000/internal/timeutil"
)

// ReportRepository runs the read-only aggregate queries behind reports and
// the dashboard. All day boundaries are in the shop's timezone.
type ReportRepository struct {
	DB *pgxpool.Pool
}

func NewReportRepository(db *pgxpool.Pool) *ReportRepository {
	return &ReportRepository{DB: db}
}

// SalesTotals returns total revenue and sale count for one business day
func (r *ReportRepository) SalesTotals(ctx context.Context, date time.Time) (float64, int, error) {
	var total float64
	var count int
	err := r.DB.QueryRow(ctx, `
		SELECT COALESCE(SUM(total), 0), COUNT(*)
		FROM sales
		WHERE created_at >= $1 AND created_at < $2`,
		timeutil.StartOfDay(date), timeutil.EndOfDay(date)).
		Scan(&total, &count)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to query sales totals: %w", err)
	}
	return total, count, nil
}

// ExpensesTotal returns total expenses for one business day
func (r *ReportRepository) ExpensesTotal(ctx context.Context, date time.Time) (float64, error) {
	var total float64
	err := r.DB.QueryRow(ctx, `
		SELECT COALESCE(SUM(amount), 0)
		FROM expenses
		WHERE expense_date >= $1 AND expense_date < $2`,
		timeutil.StartOfDay(date), timeutil.EndOfDay(date)).
		Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to query expenses total: %w", err)
	}
	return total, nil
}

// RepaymentsTotal returns repayment money received on one business day.
// Initial payments belong to the sale total, not the repayment figure.
func (r *ReportRepository) RepaymentsTotal(ctx context.Context, date time.Time) (float64, error) {
	var total float64
	err := r.DB.QueryRow(ctx, `
		SELECT COALESCE(SUM(amount), 0)
		FROM payment_history
		WHERE payment_type IN ($1, $2)
		  AND payment_date >= $3 AND payment_date < $4`,
		models.PaymentTypeDebtRepayment, models.PaymentTypeFullSettlement,
		timeutil.StartOfDay(date), timeutil.EndOfDay(date)).
		Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to query repayments total: %w", err)
	}
	return total, nil
}

// OutstandingDebtTotal returns the sum of all open debt right now
func (r *ReportRepository) OutstandingDebtTotal(ctx context.Context) (float64, error) {
	var total float64
	err := r.DB.QueryRow(ctx, `
		SELECT COALESCE(SUM(GREATEST(amount - repaid_amount, 0)), 0)
		FROM debts`).
		Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to query outstanding debt: %w", err)
	}
	return total, nil
}

// DailyProfits returns one row per business day in [start, end]. Margin is
// price minus wholesale price; items without a wholesale price contribute
// zero profit (COALESCE to price zeroes the margin), never negative noise.
func (r *ReportRepository) DailyProfits(ctx context.Context, start, end time.Time) ([]models.DailyProfit, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT to_char(s.created_at AT TIME ZONE 'Africa/Lagos', 'YYYY-MM-DD') AS day,
		       COALESCE(SUM(s.total), 0),
		       COALESCE(SUM((i.price - COALESCE(i.wholesale_price, i.price)) * s.quantity), 0),
		       COUNT(*)
		FROM sales s
		JOIN items i ON i.id = s.item_id
		WHERE s.created_at >= $1 AND s.created_at < $2
		GROUP BY day
		ORDER BY day ASC`,
		timeutil.StartOfDay(start), timeutil.EndOfDay(end))
	if err != nil {
		return nil, fmt.Errorf("failed to query daily profits: %w", err)
	}
	defer rows.Close()

	profits := []models.DailyProfit{}
	for rows.Next() {
		var p models.DailyProfit
		if err := rows.Scan(&p.Date, &p.Revenue, &p.Profit, &p.SaleCount); err != nil {
			return nil, fmt.Errorf("failed to scan daily profit: %w", err)
		}
		profits = append(profits, p)
	}
	return profits, rows.Err()
}

// SalesForExport returns sales with context for the CSV export range
func (r *ReportRepository) SalesForExport(ctx context.Context, start, end time.Time) ([]models.SaleWithContext, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT s.id, s.buyer_name, s.customer_id, s.item_id, s.quantity,
		       s.total, s.balance, s.payment_status, s.created_by, s.created_at,
		       COALESCE(i.name, ''), COALESCE(c.name, '')
		FROM sales s
		LEFT JOIN items i ON i.id = s.item_id
		LEFT JOIN customers c ON c.id = s.customer_id
		WHERE s.created_at >= $1 AND s.created_at < $2
		ORDER BY s.created_at ASC`,
		timeutil.StartOfDay(start), timeutil.EndOfDay(end))
	if err != nil {
		return nil, fmt.Errorf("failed to query sales for export: %w", err)
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

// PaymentsByCustomer returns the customer's payment history, oldest first
func (r *ReportRepository) PaymentsByCustomer(ctx context.Context, customerID int) ([]models.PaymentHistory, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT p.id, p.sale_id, p.payment_type, p.amount, COALESCE(p.description, ''),
		       p.customer_id, p.created_by, p.payment_date
		FROM payment_history p
		JOIN sales s ON s.id = p.sale_id
		WHERE p.customer_id = $1 OR (p.customer_id IS NULL AND s.customer_id = $1)
		ORDER BY p.payment_date ASC, p.id ASC`, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query payment history: %w", err)
	}
	defer rows.Close()

	payments := []models.PaymentHistory{}
	for rows.Next() {
		var p models.PaymentHistory
		if err := rows.Scan(&p.ID, &p.SaleID, &p.PaymentType, &p.Amount,
			&p.Description, &p.CustomerID, &p.CreatedBy, &p.PaymentDate); err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

// OpenDebtsByCustomer returns the customer's open debts with sale context,
// oldest sale first (statement order matches allocation order).
func (r *ReportRepository) OpenDebtsByCustomer(ctx context.Context, customerID int) ([]models.OpenDebt, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT d.id, d.sale_id, s.buyer_name, COALESCE(i.name, ''),
		       d.customer_id, COALESCE(c.name, ''),
		       d.amount, d.repaid_amount, s.created_at
		FROM debts d
		JOIN sales s ON s.id = d.sale_id
		LEFT JOIN items i ON i.id = s.item_id
		LEFT JOIN customers c ON c.id = d.customer_id
		WHERE (d.customer_id = $1 OR (d.customer_id IS NULL AND s.customer_id = $1))
		  AND d.amount - d.repaid_amount > 0
		ORDER BY s.created_at ASC, d.id ASC`, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query customer debts: %w", err)
	}
	defer rows.Close()

	return scanOpenDebts(rows)
}
