package checkout

import (
	"context"

	"sunnyside-shop/internal/domain"
	"sunnyside-shop/internal/session"
)

// Begin starts a checkout attempt: it freezes the cart into a snapshot,
// validates the delivery form, and opens a payment intent with the chosen
// provider. An empty cart aborts before any external call. The snapshot and
// intent are parked on the session until Confirm resolves them.
func (s *Service) Begin(ctx context.Context, sess *session.Session, delivery domain.DeliveryDetails, provider domain.PaymentProvider) (*domain.PaymentIntent, error) {
	snapshot, err := domain.SnapshotCart(sess.Cart)
	if err != nil {
		return nil, err
	}
	if err := delivery.Validate(); err != nil {
		return nil, err
	}

	gw, err := s.gateway(provider)
	if err != nil {
		return nil, err
	}

	intent, err := gw.CreateIntent(ctx, snapshot.TotalCents())
	if err != nil {
		s.logger.Printf("checkout: create intent provider=%s error=%v", provider, err)
		return nil, err
	}

	sess.Delivery = delivery
	sess.PendingPayment = intent
	sess.PendingSnapshot = &snapshot

	s.logger.Printf("checkout: intent opened provider=%s ref=%s amount_cents=%d lines=%d",
		provider, intent.ExternalRef, intent.AmountCents, len(snapshot.Lines))
	return intent, nil
}
