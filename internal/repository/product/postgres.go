package product

import (
	"context"
	"errors"
	"io"
	"log"

	"sunnyside-shop/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

func (r *postgresRepo) List(ctx context.Context) ([]domain.Product, error) {
	const q = `
SELECT id::text, name, COALESCE(description, ''), price_cents, quantity, image, created_at
FROM products
ORDER BY created_at DESC
`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		r.logger.Printf("product repo: list error=%v", err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.Product
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.PriceCents, &p.Quantity, &p.Image, &p.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		r.logger.Printf("product repo: list rows error=%v", err)
		return nil, err
	}
	return result, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	const q = `
SELECT id::text, name, COALESCE(description, ''), price_cents, quantity, image, created_at
FROM products
WHERE id = $1
`
	var p domain.Product
	err := r.pool.QueryRow(ctx, q, id).Scan(&p.ID, &p.Name, &p.Description, &p.PriceCents, &p.Quantity, &p.Image, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("product repo: get id=%s error=%v", id, err)
		return nil, err
	}
	return &p, nil
}

func (r *postgresRepo) Create(ctx context.Context, p domain.Product) (*domain.Product, error) {
	const q = `
INSERT INTO products (name, description, price_cents, quantity, image)
VALUES ($1, NULLIF($2, ''), $3, $4, $5)
RETURNING id::text, created_at
`
	err := r.pool.QueryRow(ctx, q, p.Name, p.Description, p.PriceCents, p.Quantity, p.Image).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		r.logger.Printf("product repo: create name=%s error=%v", p.Name, err)
		return nil, err
	}
	r.logger.Printf("product repo: created id=%s name=%s", p.ID, p.Name)
	return &p, nil
}

func (r *postgresRepo) Update(ctx context.Context, p domain.Product) (*domain.Product, error) {
	const q = `
UPDATE products
SET name = $2, description = NULLIF($3, ''), price_cents = $4, quantity = $5, image = $6
WHERE id = $1
RETURNING created_at
`
	err := r.pool.QueryRow(ctx, q, p.ID, p.Name, p.Description, p.PriceCents, p.Quantity, p.Image).Scan(&p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("product repo: update id=%s error=%v", p.ID, err)
		return nil, err
	}
	return &p, nil
}

func (r *postgresRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		r.logger.Printf("product repo: delete id=%s error=%v", id, err)
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) BeginStock(ctx context.Context) (StockTx, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	return &stockTx{tx: tx, logger: r.logger}, nil
}

type stockTx struct {
	tx     pgx.Tx
	logger *log.Logger
}

// Decrement subtracts quantity only when enough stock is on hand. Zero
// affected rows means insufficient stock or a missing product; callers tell
// the two apart with Exists.
func (t *stockTx) Decrement(ctx context.Context, productID string, quantity int) (int64, error) {
	const q = `
UPDATE products
SET quantity = quantity - $2
WHERE id = $1 AND quantity >= $2
`
	cmd, err := t.tx.Exec(ctx, q, productID, quantity)
	if err != nil {
		t.logger.Printf("product repo: decrement id=%s qty=%d error=%v", productID, quantity, err)
		return 0, err
	}
	return cmd.RowsAffected(), nil
}

func (t *stockTx) Exists(ctx context.Context, productID string) (bool, error) {
	var exists bool
	err := t.tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM products WHERE id = $1)`, productID).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

func (t *stockTx) Commit(ctx context.Context) error {
	return t.tx.Commit(ctx)
}

func (t *stockTx) Rollback(ctx context.Context) error {
	return t.tx.Rollback(ctx)
}
