package order

import (
	"context"
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

// Insert writes the order header and its lines in one transaction. Orders
// are append-only; there is no update or delete.
func (r *postgresRepo) Insert(ctx context.Context, o domain.Order) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	const headerQ = `
INSERT INTO orders (id, user_id, full_name, address, contact, payment_method, total_cents, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
`
	if _, err := tx.Exec(ctx, headerQ,
		o.ID,
		o.UserID,
		o.Delivery.FullName,
		o.Delivery.Address,
		o.Delivery.Contact,
		string(o.PaymentMethod),
		o.TotalCents,
		o.CreatedAt,
	); err != nil {
		r.logger.Printf("order repo: insert id=%s error=%v", o.ID, err)
		return err
	}

	const lineQ = `
INSERT INTO order_lines (order_id, product_id, product_name, unit_price_cents, quantity, position)
VALUES ($1, $2, $3, $4, $5, $6)
`
	for i, line := range o.Lines {
		if _, err := tx.Exec(ctx, lineQ, o.ID, line.ProductID, line.ProductName, line.UnitPriceCents, line.Quantity, i); err != nil {
			r.logger.Printf("order repo: insert line order_id=%s product_id=%s error=%v", o.ID, line.ProductID, err)
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}
	r.logger.Printf("order repo: inserted id=%s user_id=%s lines=%d total_cents=%d", o.ID, o.UserID, len(o.Lines), o.TotalCents)
	return nil
}

func (r *postgresRepo) ListByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	const q = `
SELECT id::text, user_id::text, full_name, address, contact, payment_method, total_cents, created_at
FROM orders
WHERE user_id = $1
ORDER BY created_at DESC
`
	rows, err := r.pool.Query(ctx, q, userID)
	if err != nil {
		r.logger.Printf("order repo: list user_id=%s error=%v", userID, err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.Order
	for rows.Next() {
		var o domain.Order
		var method string
		if err := rows.Scan(&o.ID, &o.UserID, &o.Delivery.FullName, &o.Delivery.Address, &o.Delivery.Contact, &method, &o.TotalCents, &o.CreatedAt); err != nil {
			return nil, err
		}
		o.PaymentMethod = domain.PaymentProvider(method)
		o.Total = domain.FormatCents(o.TotalCents)
		result = append(result, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range result {
		lines, err := r.fetchLines(ctx, result[i].ID)
		if err != nil {
			return nil, err
		}
		result[i].Lines = lines
	}
	return result, nil
}

func (r *postgresRepo) fetchLines(ctx context.Context, orderID string) ([]domain.CartLine, error) {
	const q = `
SELECT product_id::text, product_name, unit_price_cents, quantity
FROM order_lines
WHERE order_id = $1
ORDER BY position ASC
`
	rows, err := r.pool.Query(ctx, q, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []domain.CartLine
	for rows.Next() {
		var l domain.CartLine
		if err := rows.Scan(&l.ProductID, &l.ProductName, &l.UnitPriceCents, &l.Quantity); err != nil {
			return nil, err
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}
