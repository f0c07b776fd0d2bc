package domain

// LineFailureCause classifies why a cart line could not be committed against
// inventory.
type LineFailureCause string

const (
	// FailureInsufficientStock means the conditional decrement found fewer
	// units on hand than the line asked for.
	FailureInsufficientStock LineFailureCause = "INSUFFICIENT_STOCK"
	// FailureProductMissing means the product referenced by the cart no
	// longer exists. A cart should never reach reconciliation in this state.
	FailureProductMissing LineFailureCause = "PRODUCT_MISSING"
)

// LineFailure records one failed decrement, in the order it was attempted.
type LineFailure struct {
	ProductID string           `json:"productId"`
	Cause     LineFailureCause `json:"cause"`
}

// ReconciliationResult partitions a snapshot's lines into decremented and
// failed after a confirmed payment. Both slices keep snapshot order:
// first attempted, first listed.
type ReconciliationResult struct {
	Decremented []string      `json:"decremented"`
	Failed      []LineFailure `json:"failed"`
}

func (r ReconciliationResult) Ok() bool {
	return len(r.Failed) == 0
}
