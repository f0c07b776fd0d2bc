package user

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

func (r *postgresRepo) Create(ctx context.Context, in CreateUserInput) (*domain.User, error) {
	const q = `
INSERT INTO users (username, email, password_hash, address, contact, role)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id::text, created_at
`
	u := domain.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: in.PasswordHash,
		Address:      in.Address,
		Contact:      in.Contact,
		Role:         in.Role,
	}
	if err := r.pool.QueryRow(ctx, q, in.Username, in.Email, in.PasswordHash, in.Address, in.Contact, in.Role).Scan(&u.ID, &u.CreatedAt); err != nil {
		r.logger.Printf("user repo: create email=%s error=%v", in.Email, err)
		return nil, err
	}
	r.logger.Printf("user repo: created id=%s email=%s role=%s", u.ID, u.Email, u.Role)
	return &u, nil
}

func (r *postgresRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	const q = `
SELECT id::text, username, email, password_hash, address, contact, role, created_at
FROM users
WHERE email = $1
`
	return r.fetch(ctx, q, email)
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	const q = `
SELECT id::text, username, email, password_hash, address, contact, role, created_at
FROM users
WHERE id = $1
`
	return r.fetch(ctx, q, id)
}

func (r *postgresRepo) fetch(ctx context.Context, q string, arg any) (*domain.User, error) {
	var u domain.User
	err := r.pool.QueryRow(ctx, q, arg).Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Address, &u.Contact, &u.Role, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("user repo: fetch error=%v", err)
		return nil, err
	}
	return &u, nil
}
