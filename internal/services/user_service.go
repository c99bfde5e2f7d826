package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/isah4/Record-system-full-stack-web-app-sub000/internal/auth"
	"github.com/isah4/Record-system-full-stack-web-app-sub000/internal/models"
)

// UserStore is the persistence surface for accounts
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

// UserService handles registration and login
type UserService struct {
	repo UserStore
	jwt  *auth.JWTManager
}

func NewUserService(repo UserStore, jwt *auth.JWTManager) *UserService {
	return &UserService{repo: repo, jwt: jwt}
}

// Signup registers a user. The first role defaults to "staff"; admins are
// created explicitly.
func (s *UserService) Signup(ctx context.Context, req *models.SignupRequest) (*models.User, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Name == "" || req.Email == "" {
		return nil, fmt.Errorf("name and email are required: %w", models.ErrValidation)
	}
	if len(req.Password) < 8 {
		return nil, fmt.Errorf("password must be at least 8 characters: %w", models.ErrValidation)
	}
	role := req.Role
	switch role {
	case "":
		role = "staff"
	case "staff", "admin":
	default:
		return nil, fmt.Errorf("role must be staff or admin: %w", models.ErrValidation)
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         role,
		IsActive:     true,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login responds identically to a bad email and a bad password.
func (s *UserService) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("invalid credentials: %w", models.ErrValidation)
	}
	if !user.IsActive {
		return nil, fmt.Errorf("invalid credentials: %w", models.ErrValidation)
	}
	if !auth.VerifyPassword(user.PasswordHash, req.Password) {
		return nil, fmt.Errorf("invalid credentials: %w", models.ErrValidation)
	}

	token, err := s.jwt.GenerateToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return &models.LoginResponse{Token: token, User: user}, nil
}
