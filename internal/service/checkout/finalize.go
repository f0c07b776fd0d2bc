package checkout

import (
	"context"
	"time"

	"sunnyside-shop/internal/domain"
	"sunnyside-shop/internal/session"

	"github.com/google/uuid"
)

// finalize builds the immutable order from a fully reconciled snapshot. The
// ordering is load-bearing: the order is persisted and appended to the
// session history before the cart is cleared, and nothing is cleared when
// reconciliation or validation failed, so a failed checkout never loses the
// cart contents.
func (s *Service) finalize(ctx context.Context, sess *session.Session, snapshot domain.CartSnapshot, result domain.ReconciliationResult) (*domain.Order, error) {
	if err := sess.Delivery.Validate(); err != nil {
		return nil, err
	}
	if !result.Ok() {
		sess.ClearPending()
		return nil, &domain.StockReconciliationError{Result: result}
	}

	lines := make([]domain.CartLine, len(snapshot.Lines))
	copy(lines, snapshot.Lines)

	totalCents := snapshot.TotalCents()
	order := domain.Order{
		ID:            uuid.NewString(),
		UserID:        sess.UserID,
		Delivery:      sess.Delivery,
		PaymentMethod: sess.PendingPayment.Provider,
		Lines:         lines,
		TotalCents:    totalCents,
		Total:         domain.FormatCents(totalCents),
		CreatedAt:     time.Now().UTC(),
	}

	if err := s.orders.Insert(ctx, order); err != nil {
		return nil, err
	}

	sess.Orders = append(sess.Orders, order)
	sess.Cart = nil
	sess.ClearPending()

	s.logger.Printf("checkout: order finalized id=%s user_id=%s total=%s", order.ID, order.UserID, order.Total)
	return &order, nil
}
