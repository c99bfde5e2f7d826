package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/isah4/Record-system-full-stack-web-app-sub000/internal/models"
)

type ItemRepository struct {
	DB *pgxpool.Pool
}

func NewItemRepository(db *pgxpool.Pool) *ItemRepository {
	return &ItemRepository{DB: db}
}

func (r *ItemRepository) Create(ctx context.Context, item *models.Item) error {
	query := `
		INSERT INTO items (name, price, wholesale_price, stock, low_stock_level)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`

	return r.DB.QueryRow(ctx, query,
		item.Name, item.Price, item.WholesalePrice, item.Stock, item.LowStockLevel,
	).Scan(&item.ID, &item.CreatedAt, &item.UpdatedAt)
}

func (r *ItemRepository) Get(ctx context.Context, id int) (*models.Item, error) {
	item := &models.Item{}
	err := r.DB.QueryRow(ctx,
		`SELECT id, name, price, wholesale_price, stock, low_stock_level, created_at, updated_at
		 FROM items WHERE id = $1`, id,
	).Scan(&item.ID, &item.Name, &item.Price, &item.WholesalePrice, &item.Stock,
		&item.LowStockLevel, &item.CreatedAt, &item.UpdatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("item %d: %w", id, models.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (r *ItemRepository) List(ctx context.Context) ([]*models.Item, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, name, price, wholesale_price, stock, low_stock_level, created_at, updated_at
		 FROM items ORDER BY name ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*models.Item
	for rows.Next() {
		item := &models.Item{}
		err := rows.Scan(&item.ID, &item.Name, &item.Price, &item.WholesalePrice, &item.Stock,
			&item.LowStockLevel, &item.CreatedAt, &item.UpdatedAt)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, rows.Err()
}

func (r *ItemRepository) Update(ctx context.Context, id int, req *models.UpdateItemRequest) (*models.Item, error) {
	item := &models.Item{ID: id}
	err := r.DB.QueryRow(ctx,
		`UPDATE items
		 SET name = $1, price = $2, wholesale_price = $3, low_stock_level = $4, updated_at = NOW()
		 WHERE id = $5
		 RETURNING name, price, wholesale_price, stock, low_stock_level, created_at, updated_at`,
		req.Name, req.Price, req.WholesalePrice, req.LowStockLevel, id,
	).Scan(&item.Name, &item.Price, &item.WholesalePrice, &item.Stock,
		&item.LowStockLevel, &item.CreatedAt, &item.UpdatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("item %d: %w", id, models.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return item, nil
}

// AdjustStock applies a manual stock correction and records the activity
// entry in the same transaction.
func (r *ItemRepository) AdjustStock(ctx context.Context, id, delta int, reason string) (*models.Item, error) {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	item := &models.Item{ID: id}
	err = tx.QueryRow(ctx,
		`UPDATE items SET stock = stock + $1, updated_at = NOW()
		 WHERE id = $2 AND stock + $1 >= 0
		 RETURNING name, price, wholesale_price, stock, low_stock_level, created_at, updated_at`,
		delta, id,
	).Scan(&item.Name, &item.Price, &item.WholesalePrice, &item.Stock,
		&item.LowStockLevel, &item.CreatedAt, &item.UpdatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		// Either the item is missing or the delta would drive stock negative
		if _, getErr := r.Get(ctx, id); getErr != nil {
			return nil, getErr
		}
		return nil, fmt.Errorf("stock adjustment would make stock negative: %w", models.ErrValidation)
	}
	if err != nil {
		return nil, err
	}

	details, _ := json.Marshal(map[string]interface{}{
		"item_id":   id,
		"item_name": item.Name,
		"delta":     delta,
		"new_stock": item.Stock,
		"reason":    reason,
	})
	if err := insertActivityTx(ctx, tx, &models.ActivityLog{
		ActivityType: models.ActivityStockAdjustment,
		ReferenceID:  id,
		Amount:       float64(delta),
		Status:       "recorded",
		Details:      details,
	}); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return item, nil
}

// LowStockCount returns the number of items at or below their low stock level
func (r *ItemRepository) LowStockCount(ctx context.Context) (int, error) {
	var count int
	err := r.DB.QueryRow(ctx,
		"SELECT COUNT(*) FROM items WHERE stock <= low_stock_level").Scan(&count)
	return count, err
}
