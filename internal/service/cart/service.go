// Package cart mutates the session-held cart. The cart is transient shopping
// state; nothing here touches inventory counts.
package cart

import (
	"context"
	"errors"

	"sunnyside-shop/internal/domain"
	"sunnyside-shop/internal/session"
)

type Service struct {
	products productGetter
}

type productGetter interface {
	GetByID(ctx context.Context, id string) (*domain.Product, error)
}

func New(products productGetter) *Service {
	return &Service{products: products}
}

// Add puts a product into the cart at the given quantity. Adding a product
// that is already in the cart replaces its quantity rather than stacking.
func (s *Service) Add(ctx context.Context, sess *session.Session, productID string, quantity int) error {
	if quantity <= 0 {
		quantity = 1
	}
	p, err := s.products.GetByID(ctx, productID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return err
	}

	for i := range sess.Cart {
		if sess.Cart[i].ProductID == p.ID {
			sess.Cart[i].Quantity = quantity
			return nil
		}
	}

	sess.Cart = append(sess.Cart, domain.CartLine{
		ProductID:      p.ID,
		ProductName:    p.Name,
		UnitPriceCents: p.PriceCents,
		Quantity:       quantity,
	})
	return nil
}

// UpdateQuantity changes the quantity of a line already in the cart.
// Non-positive quantities are ignored, matching the storefront's form
// handling; removal goes through Remove.
func (s *Service) UpdateQuantity(sess *session.Session, productID string, quantity int) error {
	if quantity <= 0 {
		return nil
	}
	for i := range sess.Cart {
		if sess.Cart[i].ProductID == productID {
			sess.Cart[i].Quantity = quantity
			return nil
		}
	}
	return domain.ErrNotFound
}

// Remove drops a line from the cart. Removing an absent product is a no-op.
func (s *Service) Remove(sess *session.Session, productID string) {
	kept := sess.Cart[:0]
	for _, line := range sess.Cart {
		if line.ProductID != productID {
			kept = append(kept, line)
		}
	}
	sess.Cart = kept
}

// View returns the live cart with its running total, formatted for display.
func (s *Service) View(sess *session.Session) ([]domain.CartLine, string) {
	var total int64
	for _, line := range sess.Cart {
		total += line.SubtotalCents()
	}
	return sess.Cart, domain.FormatCents(total)
}
