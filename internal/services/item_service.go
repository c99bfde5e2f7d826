package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/isah4/Record-system-full-stack-web-app-sub000/internal/models"
)

// ItemStore is the persistence surface for inventory
type ItemStore interface {
	Create(ctx context.Context, item *models.Item) error
	Get(ctx context.Context, id int) (*models.Item, error)
	List(ctx context.Context) ([]*models.Item, error)
	Update(ctx context.Context, id int, req *models.UpdateItemRequest) (*models.Item, error)
	AdjustStock(ctx context.Context, id, delta int, reason string) (*models.Item, error)
}

type ItemService struct {
	repo ItemStore
}

func NewItemService(repo ItemStore) *ItemService {
	return &ItemService{repo: repo}
}

func (s *ItemService) Create(ctx context.Context, req *models.CreateItemRequest) (*models.Item, error) {
	if err := validateItemFields(req.Name, req.Price, req.WholesalePrice); err != nil {
		return nil, err
	}
	if req.Stock < 0 {
		return nil, fmt.Errorf("stock cannot be negative: %w", models.ErrValidation)
	}

	item := &models.Item{
		Name:           strings.TrimSpace(req.Name),
		Price:          req.Price,
		WholesalePrice: req.WholesalePrice,
		Stock:          req.Stock,
		LowStockLevel:  req.LowStockLevel,
	}
	if err := s.repo.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *ItemService) Get(ctx context.Context, id int) (*models.Item, error) {
	return s.repo.Get(ctx, id)
}

func (s *ItemService) List(ctx context.Context) ([]*models.Item, error) {
	return s.repo.List(ctx)
}

func (s *ItemService) Update(ctx context.Context, id int, req *models.UpdateItemRequest) (*models.Item, error) {
	if err := validateItemFields(req.Name, req.Price, req.WholesalePrice); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, id, req)
}

// AdjustStock applies a manual stock correction. Sales decrement stock on
// their own path; this is for deliveries, spoilage and recounts.
func (s *ItemService) AdjustStock(ctx context.Context, id int, req *models.AdjustStockRequest) (*models.Item, error) {
	if req.Delta == 0 {
		return nil, fmt.Errorf("delta cannot be zero: %w", models.ErrValidation)
	}
	if strings.TrimSpace(req.Reason) == "" {
		return nil, fmt.Errorf("reason is required for stock adjustments: %w", models.ErrValidation)
	}
	return s.repo.AdjustStock(ctx, id, req.Delta, strings.TrimSpace(req.Reason))
}

func validateItemFields(name string, price float64, wholesale *float64) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("item name is required: %w", models.ErrValidation)
	}
	if price <= 0 {
		return fmt.Errorf("price must be greater than zero: %w", models.ErrValidation)
	}
	if wholesale != nil && (*wholesale < 0 || *wholesale > price) {
		return fmt.Errorf("wholesale price must be between 0 and the selling price: %w", models.ErrValidation)
	}
	return nil
}
