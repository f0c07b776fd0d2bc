package order

import (
	"context"

	"sunnyside-shop/internal/domain"
)

type Repository interface {
	Insert(ctx context.Context, o domain.Order) error
	ListByUser(ctx context.Context, userID string) ([]domain.Order, error)
}
