package catalog

import (
	"context"
	"errors"
	"strings"

	"sunnyside-shop/internal/domain"
	productrepo "sunnyside-shop/internal/repository/product"
)

type Service struct {
	repo productrepo.Repository
}

func New(repo productrepo.Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]domain.Product, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Product, error) {
	return s.repo.GetByID(ctx, id)
}

type ProductInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	PriceCents  int64  `json:"priceCents"`
	Quantity    int    `json:"quantity"`
	Image       string `json:"image"`
}

func (in ProductInput) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return errors.New("name required")
	}
	if in.PriceCents < 0 {
		return errors.New("price must not be negative")
	}
	if in.Quantity < 0 {
		return errors.New("quantity must not be negative")
	}
	return nil
}

func (s *Service) Create(ctx context.Context, in ProductInput) (*domain.Product, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, domain.Product{
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		PriceCents:  in.PriceCents,
		Quantity:    in.Quantity,
		Image:       in.Image,
	})
}

func (s *Service) Update(ctx context.Context, id string, in ProductInput) (*domain.Product, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, domain.Product{
		ID:          id,
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		PriceCents:  in.PriceCents,
		Quantity:    in.Quantity,
		Image:       in.Image,
	})
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
