package payment

import (
	"context"

	"sunnyside-shop/internal/domain"
)

// Gateway is the capability set shared by both external payment providers.
//
// CreateIntent asks the provider to start collecting the given amount and
// returns a PENDING intent carrying the provider's opaque reference (and,
// for the QR provider, the renderable QR payload).
//
// Confirm checks the outcome of an intent with the provider. It returns nil
// only when the provider reports the payment as completed,
// domain.ErrPaymentNotConfirmed when the provider reports any other
// terminal status, and domain.ErrGatewayUnavailable (wrapped) on transport
// failures or non-success responses. Confirm never mutates the intent; the
// checkout service drives the state machine.
type Gateway interface {
	CreateIntent(ctx context.Context, amountCents int64) (*domain.PaymentIntent, error)
	Confirm(ctx context.Context, intent *domain.PaymentIntent) error
}
