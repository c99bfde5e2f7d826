package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/isah4/Record-system-full-stack-web-app-sub000/internal/models"
)

// CustomerStore is the persistence surface for customer records
type CustomerStore interface {
	Create(ctx context.Context, customer *models.Customer) error
	Get(ctx context.Context, id int) (*models.Customer, error)
	List(ctx context.Context) ([]*models.Customer, error)
	Update(ctx context.Context, id int, req *models.UpdateCustomerRequest) (*models.Customer, error)
	SoftDelete(ctx context.Context, id int) error
}

type CustomerService struct {
	repo CustomerStore
}

func NewCustomerService(repo CustomerStore) *CustomerService {
	return &CustomerService{repo: repo}
}

func (s *CustomerService) Create(ctx context.Context, req *models.CreateCustomerRequest) (*models.Customer, error) {
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return nil, fmt.Errorf("customer name is required: %w", models.ErrValidation)
	}

	customer := &models.Customer{
		Name:    req.Name,
		Phone:   strings.TrimSpace(req.Phone),
		Email:   strings.TrimSpace(req.Email),
		Address: strings.TrimSpace(req.Address),
	}
	if err := s.repo.Create(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

func (s *CustomerService) Get(ctx context.Context, id int) (*models.Customer, error) {
	return s.repo.Get(ctx, id)
}

func (s *CustomerService) List(ctx context.Context) ([]*models.Customer, error) {
	return s.repo.List(ctx)
}

func (s *CustomerService) Update(ctx context.Context, id int, req *models.UpdateCustomerRequest) (*models.Customer, error) {
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return nil, fmt.Errorf("customer name is required: %w", models.ErrValidation)
	}
	return s.repo.Update(ctx, id, req)
}

// Delete soft-deletes a customer. Refused while the customer still owes
// money, so debt history always resolves to a live customer record.
func (s *CustomerService) Delete(ctx context.Context, id int) error {
	return s.repo.SoftDelete(ctx, id)
}
