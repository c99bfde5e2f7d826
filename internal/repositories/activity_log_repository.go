package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/isah4/Record-system-full-stack-web-app-sub000/internal/models"
	"github.com/isah4/Record-system-full-stack-web-app-sub000/internal/timeutil"
)

type ActivityLogRepository struct {
	DB *pgxpool.Pool
}

func NewActivityLogRepository(db *pgxpool.Pool) *ActivityLogRepository {
	return &ActivityLogRepository{DB: db}
}

// List returns the most recent activity entries, optionally restricted to
// a single business day (WAT).
func (r *ActivityLogRepository) List(ctx context.Context, date *time.Time, limit int) ([]models.ActivityLog, error) {
	if limit <= 0 || limit > 500 {
		limit = 50
	}

	query := `
		SELECT id, activity_type, reference_id, amount, status, details, activity_date
		FROM activity_logs
	`
	args := []interface{}{}

	if date != nil {
		query += " WHERE activity_date >= $1 AND activity_date < $2"
		args = append(args, timeutil.StartOfDay(*date), timeutil.EndOfDay(*date))
		query += " ORDER BY activity_date DESC, id DESC LIMIT $3"
	} else {
		query += " ORDER BY activity_date DESC, id DESC LIMIT $1"
	}
	args = append(args, limit)

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanActivities(rows)
}

func scanActivities(rows pgx.Rows) ([]models.ActivityLog, error) {
	var entries []models.ActivityLog
	for rows.Next() {
		var a models.ActivityLog
		if err := rows.Scan(&a.ID, &a.ActivityType, &a.ReferenceID, &a.Amount,
			&a.Status, &a.Details, &a.ActivityDate); err != nil {
			return nil, err
		}
		entries = append(entries, a)
	}
	return entries, rows.Err()
}

// insertActivityTx appends an activity entry inside the caller's
// transaction, so activity and ledger mutations commit or roll back
// together. The row id and timestamp are written back to a.
func insertActivityTx(ctx context.Context, tx pgx.Tx, a *models.ActivityLog) error {
	return tx.QueryRow(ctx,
		`INSERT INTO activity_logs (activity_type, reference_id, amount, status, details)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, activity_date`,
		a.ActivityType, a.ReferenceID, a.Amount, a.Status, a.Details,
	).Scan(&a.ID, &a.ActivityDate)
}

// insertPaymentHistoryTx appends an immutable payment record inside the
// caller's transaction.
func insertPaymentHistoryTx(ctx context.Context, tx pgx.Tx, p *models.PaymentHistory) error {
	return tx.QueryRow(ctx,
		`INSERT INTO payment_history (sale_id, payment_type, amount, description, customer_id, created_by)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, payment_date`,
		p.SaleID, p.PaymentType, p.Amount, p.Description, p.CustomerID, p.CreatedBy,
	).Scan(&p.ID, &p.PaymentDate)
}
