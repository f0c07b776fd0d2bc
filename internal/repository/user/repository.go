package user

import (
	"context"

	"sunnyside-shop/internal/domain"
)

type CreateUserInput struct {
	Username     string
	Email        string
	PasswordHash string
	Address      string
	Contact      string
	Role         string
}

type Repository interface {
	Create(ctx context.Context, in CreateUserInput) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
}
