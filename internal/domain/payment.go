package domain

import "time"

// PaymentProvider identifies which external gateway an intent belongs to.
type PaymentProvider string

const (
	// ProviderNETSQR is the QR-code push-payment provider.
	ProviderNETSQR PaymentProvider = "NETSQR"
	// ProviderCard is the card/wallet order-and-capture provider.
	ProviderCard PaymentProvider = "CARD"
)

func ParseProvider(s string) (PaymentProvider, bool) {
	switch PaymentProvider(s) {
	case ProviderNETSQR:
		return ProviderNETSQR, true
	case ProviderCard:
		return ProviderCard, true
	}
	return "", false
}

// IntentStatus is the payment intent state machine:
// PENDING -> {CONFIRMED, FAILED}, both terminal.
type IntentStatus string

const (
	IntentPending   IntentStatus = "PENDING"
	IntentConfirmed IntentStatus = "CONFIRMED"
	IntentFailed    IntentStatus = "FAILED"
)

func (s IntentStatus) Terminal() bool {
	return s == IntentConfirmed || s == IntentFailed
}

// PaymentIntent tracks one attempt to collect payment for a fixed amount.
// The external provider is the source of truth for its outcome; the session
// holds the reference for the intent's short lifetime.
type PaymentIntent struct {
	Provider    PaymentProvider `json:"provider"`
	AmountCents int64           `json:"amountCents"`
	ExternalRef string          `json:"externalRef"`
	// QRCode carries the renderable payload (base64 PNG) for the QR provider.
	QRCode    string       `json:"qrCode,omitempty"`
	Status    IntentStatus `json:"status"`
	CreatedAt time.Time    `json:"createdAt"`
}

// MarkConfirmed transitions the intent to CONFIRMED. Terminal states never
// transition again; repeated confirm calls must not re-run fulfillment.
func (i *PaymentIntent) MarkConfirmed() error {
	if i.Status.Terminal() {
		return ErrIntentFinalized
	}
	i.Status = IntentConfirmed
	return nil
}

// MarkFailed transitions the intent to FAILED.
func (i *PaymentIntent) MarkFailed() error {
	if i.Status.Terminal() {
		return ErrIntentFinalized
	}
	i.Status = IntentFailed
	return nil
}
