package product

import (
	"context"

	"sunnyside-shop/internal/domain"
)

type Repository interface {
	List(ctx context.Context) ([]domain.Product, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	Create(ctx context.Context, p domain.Product) (*domain.Product, error)
	Update(ctx context.Context, p domain.Product) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
	BeginStock(ctx context.Context) (StockTx, error)
}

// StockTx scopes the conditional stock decrements of one checkout so they
// commit or roll back as a unit. Decrement is atomic against concurrent
// checkouts: it only subtracts when enough units are on hand and reports the
// affected row count.
type StockTx interface {
	Decrement(ctx context.Context, productID string, quantity int) (int64, error)
	Exists(ctx context.Context, productID string) (bool, error)
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}
