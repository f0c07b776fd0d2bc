package checkout

import (
	"context"
	"errors"

	"sunnyside-shop/internal/domain"
	"sunnyside-shop/internal/session"
)

// Confirm resolves the session's pending payment with its provider and, on a
// confirmed payment, runs stock reconciliation and order finalization.
//
// The intent's terminal-state rule makes this idempotent: once an intent is
// CONFIRMED or FAILED, another Confirm call returns ErrIntentFinalized
// without touching the gateway or inventory again. A transport failure
// leaves the intent PENDING so the user can retry.
func (s *Service) Confirm(ctx context.Context, sess *session.Session) (*domain.Order, error) {
	intent := sess.PendingPayment
	if intent == nil {
		return nil, domain.ErrNoPendingPayment
	}
	if intent.Status.Terminal() {
		return nil, domain.ErrIntentFinalized
	}

	gw, err := s.gateway(intent.Provider)
	if err != nil {
		return nil, err
	}

	if err := gw.Confirm(ctx, intent); err != nil {
		if errors.Is(err, domain.ErrPaymentNotConfirmed) {
			// Provider gave a definitive non-completed answer: terminal.
			_ = intent.MarkFailed()
			sess.ClearPending()
			s.logger.Printf("checkout: payment failed provider=%s ref=%s", intent.Provider, intent.ExternalRef)
			return nil, err
		}
		// Gateway unreachable; outcome unknown, intent stays PENDING.
		s.logger.Printf("checkout: confirm provider=%s ref=%s error=%v", intent.Provider, intent.ExternalRef, err)
		return nil, err
	}

	if err := intent.MarkConfirmed(); err != nil {
		return nil, err
	}
	s.logger.Printf("checkout: payment confirmed provider=%s ref=%s", intent.Provider, intent.ExternalRef)

	snapshot := sess.PendingSnapshot
	if snapshot == nil {
		return nil, domain.ErrNoPendingPayment
	}

	result, err := s.reconcile(ctx, *snapshot)
	if err != nil {
		return nil, err
	}

	return s.finalize(ctx, sess, *snapshot, result)
}
