package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/isah4/Record-system-full-stack-web-app-sub000/internal/models"
)

type CustomerRepository struct {
	DB *pgxpool.Pool
}

func NewCustomerRepository(db *pgxpool.Pool) *CustomerRepository {
	return &CustomerRepository{DB: db}
}

func (r *CustomerRepository) Create(ctx context.Context, customer *models.Customer) error {
	query := `
		INSERT INTO customers (name, phone, email, address)
		VALUES ($1, NULLIF($2, ''), $3, $4)
		RETURNING id, created_at, updated_at
	`

	err := r.DB.QueryRow(ctx, query,
		customer.Name, customer.Phone, customer.Email, customer.Address,
	).Scan(&customer.ID, &customer.CreatedAt, &customer.UpdatedAt)

	if isUniqueViolation(err) {
		return fmt.Errorf("phone number already in use: %w", models.ErrConflict)
	}
	return err
}

func (r *CustomerRepository) Get(ctx context.Context, id int) (*models.Customer, error) {
	c := &models.Customer{}
	err := r.DB.QueryRow(ctx,
		`SELECT id, name, COALESCE(phone, ''), COALESCE(email, ''), COALESCE(address, ''),
		        is_deleted, created_at, updated_at
		 FROM customers WHERE id = $1`, id,
	).Scan(&c.ID, &c.Name, &c.Phone, &c.Email, &c.Address, &c.IsDeleted, &c.CreatedAt, &c.UpdatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("customer %d: %w", id, models.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *CustomerRepository) List(ctx context.Context) ([]*models.Customer, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, name, COALESCE(phone, ''), COALESCE(email, ''), COALESCE(address, ''),
		        is_deleted, created_at, updated_at
		 FROM customers
		 WHERE is_deleted = FALSE
		 ORDER BY name ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var customers []*models.Customer
	for rows.Next() {
		c := &models.Customer{}
		err := rows.Scan(&c.ID, &c.Name, &c.Phone, &c.Email, &c.Address, &c.IsDeleted, &c.CreatedAt, &c.UpdatedAt)
		if err != nil {
			return nil, err
		}
		customers = append(customers, c)
	}

	return customers, rows.Err()
}

func (r *CustomerRepository) Update(ctx context.Context, id int, req *models.UpdateCustomerRequest) (*models.Customer, error) {
	c := &models.Customer{ID: id}
	err := r.DB.QueryRow(ctx,
		`UPDATE customers
		 SET name = $1, phone = NULLIF($2, ''), email = $3, address = $4, updated_at = NOW()
		 WHERE id = $5 AND is_deleted = FALSE
		 RETURNING name, COALESCE(phone, ''), COALESCE(email, ''), COALESCE(address, ''),
		           is_deleted, created_at, updated_at`,
		req.Name, req.Phone, req.Email, req.Address, id,
	).Scan(&c.Name, &c.Phone, &c.Email, &c.Address, &c.IsDeleted, &c.CreatedAt, &c.UpdatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("customer %d: %w", id, models.ErrNotFound)
	}
	if isUniqueViolation(err) {
		return nil, fmt.Errorf("phone number already in use: %w", models.ErrConflict)
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

// SoftDelete marks a customer deleted. Customers with outstanding debt
// cannot be deleted; callers get ErrConflict instead.
func (r *CustomerRepository) SoftDelete(ctx context.Context, id int) error {
	outstanding, err := r.OutstandingBalance(ctx, id)
	if err != nil {
		return err
	}
	if outstanding > 0 {
		return fmt.Errorf("customer has outstanding balance of %.2f: %w", outstanding, models.ErrConflict)
	}

	tag, err := r.DB.Exec(ctx,
		`UPDATE customers SET is_deleted = TRUE, updated_at = NOW()
		 WHERE id = $1 AND is_deleted = FALSE`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("customer %d: %w", id, models.ErrNotFound)
	}
	return nil
}

// OutstandingBalance returns the customer's total open debt
func (r *CustomerRepository) OutstandingBalance(ctx context.Context, id int) (float64, error) {
	var outstanding float64
	err := r.DB.QueryRow(ctx,
		`SELECT COALESCE(SUM(GREATEST(amount - repaid_amount, 0)), 0)
		 FROM debts WHERE customer_id = $1`, id,
	).Scan(&outstanding)
	return outstanding, err
}
