package checkout

import (
	"context"

	"sunnyside-shop/internal/domain"
)

// reconcile commits the snapshot's quantities against live inventory after a
// confirmed payment. Lines are processed strictly in snapshot order, one at
// a time, and every line is attempted even when an earlier one fails so the
// result lists all failures. The decrements share one transaction that only
// commits when every line succeeded; a partial failure leaves inventory
// untouched.
func (s *Service) reconcile(ctx context.Context, snapshot domain.CartSnapshot) (domain.ReconciliationResult, error) {
	var result domain.ReconciliationResult

	tx, err := s.stock.BeginStock(ctx)
	if err != nil {
		return result, err
	}
	defer tx.Rollback(ctx)

	for _, line := range snapshot.Lines {
		if line.Quantity <= 0 {
			continue
		}

		affected, err := tx.Decrement(ctx, line.ProductID, line.Quantity)
		if err != nil {
			return result, err
		}
		if affected > 0 {
			result.Decremented = append(result.Decremented, line.ProductID)
			continue
		}

		// Zero rows: either not enough stock or the product vanished.
		cause := domain.FailureInsufficientStock
		exists, err := tx.Exists(ctx, line.ProductID)
		if err != nil {
			return result, err
		}
		if !exists {
			cause = domain.FailureProductMissing
		}
		result.Failed = append(result.Failed, domain.LineFailure{ProductID: line.ProductID, Cause: cause})
	}

	if !result.Ok() {
		for _, f := range result.Failed {
			s.logger.Printf("checkout: reconcile line failed product_id=%s cause=%s", f.ProductID, f.Cause)
		}
		// Deferred rollback reverses the lines that did decrement.
		return result, nil
	}

	if err := tx.Commit(ctx); err != nil {
		return result, err
	}
	return result, nil
}
