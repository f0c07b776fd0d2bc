package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

type productSeed struct {
	Name        string
	Description string
	PriceCents  int64
	Quantity    int
	Image       string
}

// Apply inserts demo catalog data and an admin account for manual testing.
// It is idempotent via ON CONFLICT.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	if err := ensureAdmin(ctx, pool, "admin", "admin@sunnyside.local", "changeme123"); err != nil {
		return fmt.Errorf("ensure admin: %w", err)
	}

	products := []productSeed{
		{
			Name:        "Kaya Toast Set",
			Description: "Two slices with kaya and butter, soft eggs on the side",
			PriceCents:  480,
			Quantity:    50,
			Image:       "kaya-toast.png",
		},
		{
			Name:        "Kopi O",
			Description: "Black coffee, no milk",
			PriceCents:  160,
			Quantity:    200,
			Image:       "kopi-o.png",
		},
		{
			Name:        "Sunnyside Tote Bag",
			Description: "Canvas tote with the shop logo",
			PriceCents:  1990,
			Quantity:    25,
			Image:       "tote.png",
		},
	}

	for _, p := range products {
		if err := upsertProduct(ctx, pool, p); err != nil {
			return fmt.Errorf("upsert product %s: %w", p.Name, err)
		}
	}

	return nil
}

func ensureAdmin(ctx context.Context, pool *pgxpool.Pool, username, email, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	const q = `
INSERT INTO users (username, email, password_hash, role)
VALUES ($1, $2, $3, 'admin')
ON CONFLICT (email) DO NOTHING
`
	_, err = pool.Exec(ctx, q, username, email, string(hash))
	return err
}

func upsertProduct(ctx context.Context, pool *pgxpool.Pool, p productSeed) error {
	const q = `
INSERT INTO products (id, name, description, price_cents, quantity, image)
SELECT gen_random_uuid(), $1, $2, $3, $4, $5
WHERE NOT EXISTS (SELECT 1 FROM products WHERE name = $1)
`
	_, err := pool.Exec(ctx, q, p.Name, p.Description, p.PriceCents, p.Quantity, p.Image)
	return err
}
