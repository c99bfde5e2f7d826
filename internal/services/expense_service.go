package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/isah4/Record-system-full-stack-web-app-sub000/internal/live"
	"github.com/isah4/Record-system-full-stack-web-app-sub000/internal/models"
)

// ExpenseStore is the persistence surface for expenses. Create returns
// the activity row written alongside the expense for post-commit publish.
type ExpenseStore interface {
	Create(ctx context.Context, e *models.Expense) (*models.ActivityLog, error)
	List(ctx context.Context, date *time.Time) ([]models.Expense, error)
	Delete(ctx context.Context, id int) error
}

type ExpenseService struct {
	repo ExpenseStore
	feed *live.Hub
}

func NewExpenseService(repo ExpenseStore) *ExpenseService {
	return &ExpenseService{repo: repo}
}

func (s *ExpenseService) SetFeed(feed *live.Hub) {
	s.feed = feed
}

func (s *ExpenseService) Create(ctx context.Context, req *models.CreateExpenseRequest, createdBy int) (*models.Expense, error) {
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		return nil, fmt.Errorf("expense title is required: %w", models.ErrValidation)
	}
	if req.Amount <= 0 {
		return nil, fmt.Errorf("expense amount must be greater than zero: %w", models.ErrValidation)
	}
	category := strings.TrimSpace(req.Category)
	if category == "" {
		category = "general"
	}

	expense := &models.Expense{
		Title:     req.Title,
		Amount:    req.Amount,
		Category:  category,
		CreatedBy: createdBy,
	}
	activity, err := s.repo.Create(ctx, expense)
	if err != nil {
		return nil, err
	}

	s.feed.Publish(*activity)
	return expense, nil
}

func (s *ExpenseService) List(ctx context.Context, date *time.Time) ([]models.Expense, error) {
	return s.repo.List(ctx, date)
}

func (s *ExpenseService) Delete(ctx context.Context, id int) error {
	return s.repo.Delete(ctx, id)
}
