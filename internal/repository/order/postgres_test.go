package order

import (
	"context"
	"os"
	"testing"
	"time"

	"sunnyside-shop/internal/domain"
	"sunnyside-shop/internal/migrate"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

func TestPostgres_InsertAndListByUser(t *testing.T) {
	ctx := context.Background()
	pool := testPool(ctx, t)
	defer pool.Close()
	resetTables(ctx, t, pool)

	userID := insertUser(ctx, t, pool, "ann@example.com")
	repo := NewPostgres(pool, nil)

	o := domain.Order{
		ID:     uuid.NewString(),
		UserID: userID,
		Delivery: domain.DeliveryDetails{
			FullName: "Ann Tan",
			Address:  "1 Sunny Rd",
			Contact:  "91234567",
		},
		PaymentMethod: domain.ProviderNETSQR,
		Lines: []domain.CartLine{
			{ProductID: uuid.NewString(), ProductName: "Kopi O", UnitPriceCents: 180, Quantity: 2},
			{ProductID: uuid.NewString(), ProductName: "Kaya Toast Set", UnitPriceCents: 560, Quantity: 1},
		},
		TotalCents: 920,
		Total:      "9.20",
		CreatedAt:  time.Now().UTC(),
	}
	if err := repo.Insert(ctx, o); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	orders, err := repo.ListByUser(ctx, userID)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(orders) != 1 {
		t.Fatalf("expected 1 order, got %d", len(orders))
	}

	got := orders[0]
	if got.ID != o.ID || got.UserID != userID {
		t.Fatalf("unexpected order %+v", got)
	}
	if got.TotalCents != 920 || got.Total != "9.20" {
		t.Fatalf("unexpected total: cents=%d formatted=%s", got.TotalCents, got.Total)
	}
	if got.PaymentMethod != domain.ProviderNETSQR {
		t.Fatalf("unexpected payment method %s", got.PaymentMethod)
	}
	if got.Delivery != o.Delivery {
		t.Fatalf("unexpected delivery %+v", got.Delivery)
	}
	if len(got.Lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(got.Lines))
	}
	// Lines come back in the order they were placed.
	if got.Lines[0].ProductName != "Kopi O" || got.Lines[1].ProductName != "Kaya Toast Set" {
		t.Fatalf("lines out of order: %+v", got.Lines)
	}

	other, err := repo.ListByUser(ctx, insertUser(ctx, t, pool, "bob@example.com"))
	if err != nil {
		t.Fatalf("ListByUser other: %v", err)
	}
	if len(other) != 0 {
		t.Fatalf("expected no orders for other user, got %d", len(other))
	}
}

func TestPostgres_ListByUserNewestFirst(t *testing.T) {
	ctx := context.Background()
	pool := testPool(ctx, t)
	defer pool.Close()
	resetTables(ctx, t, pool)

	userID := insertUser(ctx, t, pool, "ann@example.com")
	repo := NewPostgres(pool, nil)

	base := time.Now().UTC().Add(-time.Hour)
	var ids []string
	for i := 0; i < 3; i++ {
		o := domain.Order{
			ID:     uuid.NewString(),
			UserID: userID,
			Delivery: domain.DeliveryDetails{
				FullName: "Ann Tan",
				Address:  "1 Sunny Rd",
				Contact:  "91234567",
			},
			PaymentMethod: domain.ProviderCard,
			TotalCents:    100,
			CreatedAt:     base.Add(time.Duration(i) * time.Minute),
		}
		if err := repo.Insert(ctx, o); err != nil {
			t.Fatalf("Insert %d: %v", i, err)
		}
		ids = append(ids, o.ID)
	}

	orders, err := repo.ListByUser(ctx, userID)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(orders) != 3 {
		t.Fatalf("expected 3 orders, got %d", len(orders))
	}
	if orders[0].ID != ids[2] || orders[2].ID != ids[0] {
		t.Fatalf("orders not newest first: %v", []string{orders[0].ID, orders[1].ID, orders[2].ID})
	}
}

func insertUser(ctx context.Context, t *testing.T, pool *pgxpool.Pool, email string) string {
	t.Helper()
	var id string
	err := pool.QueryRow(ctx, `
		INSERT INTO users (username, email, password_hash)
		VALUES ('ann', $1, 'x')
		RETURNING id::text
	`, email).Scan(&id)
	if err != nil {
		t.Fatalf("insert user: %v", err)
	}
	return id
}

func testPool(ctx context.Context, t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN not set")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	if err := migrate.Apply(ctx, pool); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	return pool
}

func resetTables(ctx context.Context, t *testing.T, pool *pgxpool.Pool) {
	t.Helper()
	if _, err := pool.Exec(ctx, `TRUNCATE order_lines, orders, products, users RESTART IDENTITY CASCADE`); err != nil {
		t.Fatalf("truncate tables: %v", err)
	}
}
