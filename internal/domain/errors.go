package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrEmptyCart indicates checkout started with nothing in the cart.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrGatewayUnavailable indicates a transport failure or non-success
	// response from a payment provider.
	ErrGatewayUnavailable = errors.New("payment gateway unavailable")
	// ErrPaymentNotConfirmed indicates the provider reported a non-completed
	// status for the payment.
	ErrPaymentNotConfirmed = errors.New("payment not confirmed")
	// ErrIntentFinalized indicates an attempt to transition a payment intent
	// that already reached a terminal state.
	ErrIntentFinalized = errors.New("payment intent already finalized")
	// ErrNoPendingPayment indicates a confirm call with no intent in flight.
	ErrNoPendingPayment = errors.New("no pending payment for session")
)

// ValidationError reports checkout form fields that were empty or blank.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing required fields: %s", strings.Join(e.Missing, ", "))
}

// StockReconciliationError carries the per-line outcome of a reconciliation
// that had at least one failed line. End users get a generic message; the
// result stays attached for operator logging.
type StockReconciliationError struct {
	Result ReconciliationResult
}

func (e *StockReconciliationError) Error() string {
	return fmt.Sprintf("stock reconciliation failed for %d of %d lines",
		len(e.Result.Failed), len(e.Result.Failed)+len(e.Result.Decremented))
}
