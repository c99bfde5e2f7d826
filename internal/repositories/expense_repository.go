package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/isah4/Record-system-full-stack-web-app-sub000/internal/models"
	"github.com/isah4/Record-system-full-stack-web-app-sub000/internal/timeutil"
)

type ExpenseRepository struct {
	DB *pgxpool.Pool
}

func NewExpenseRepository(db *pgxpool.Pool) *ExpenseRepository {
	return &ExpenseRepository{DB: db}
}

// Create inserts the expense and its activity entry in one transaction.
// Returns the activity row so the caller can publish it after commit.
func (r *ExpenseRepository) Create(ctx context.Context, e *models.Expense) (*models.ActivityLog, error) {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, `
		INSERT INTO expenses (title, amount, category, created_by)
		VALUES ($1, $2, $3, $4)
		RETURNING id, expense_date, created_at`,
		e.Title, e.Amount, e.Category, e.CreatedBy).
		Scan(&e.ID, &e.ExpenseDate, &e.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert expense: %w", err)
	}

	details, _ := json.Marshal(map[string]interface{}{
		"title":    e.Title,
		"category": e.Category,
	})
	activity := &models.ActivityLog{
		ActivityType: models.ActivityExpense,
		ReferenceID:  e.ID,
		Amount:       e.Amount,
		Status:       "recorded",
		Details:      details,
	}
	if err := insertActivityTx(ctx, tx, activity); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit expense: %w", err)
	}
	return activity, nil
}

// List returns expenses, optionally filtered to one business day
func (r *ExpenseRepository) List(ctx context.Context, date *time.Time) ([]models.Expense, error) {
	query := `
		SELECT id, title, amount, category, expense_date, created_by, created_at
		FROM expenses`

	var args []interface{}
	if date != nil {
		query += ` WHERE expense_date >= $1 AND expense_date < $2`
		args = append(args, timeutil.StartOfDay(*date), timeutil.EndOfDay(*date))
	}
	query += ` ORDER BY expense_date DESC`

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query expenses: %w", err)
	}
	defer rows.Close()

	expenses := []models.Expense{}
	for rows.Next() {
		var e models.Expense
		if err := rows.Scan(&e.ID, &e.Title, &e.Amount, &e.Category,
			&e.ExpenseDate, &e.CreatedBy, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, e)
	}
	return expenses, rows.Err()
}

func (r *ExpenseRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.DB.Exec(ctx, `DELETE FROM expenses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("expense %d: %w", id, models.ErrNotFound)
	}
	return nil
}
