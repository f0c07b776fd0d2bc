package domain

import (
	"errors"
	"testing"
)

func TestIntentTransitions(t *testing.T) {
	intent := &PaymentIntent{Status: IntentPending}
	if err := intent.MarkConfirmed(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if intent.Status != IntentConfirmed {
		t.Fatalf("expected CONFIRMED, got %s", intent.Status)
	}
}

func TestIntentTerminalStatesAreFinal(t *testing.T) {
	confirmed := &PaymentIntent{Status: IntentConfirmed}
	if err := confirmed.MarkFailed(); !errors.Is(err, ErrIntentFinalized) {
		t.Fatalf("expected ErrIntentFinalized, got %v", err)
	}
	if confirmed.Status != IntentConfirmed {
		t.Fatalf("terminal state changed to %s", confirmed.Status)
	}

	failed := &PaymentIntent{Status: IntentFailed}
	if err := failed.MarkConfirmed(); !errors.Is(err, ErrIntentFinalized) {
		t.Fatalf("expected ErrIntentFinalized, got %v", err)
	}
	if failed.Status != IntentFailed {
		t.Fatalf("terminal state changed to %s", failed.Status)
	}
}

func TestParseProvider(t *testing.T) {
	if p, ok := ParseProvider("NETSQR"); !ok || p != ProviderNETSQR {
		t.Fatalf("expected NETSQR, got %s ok=%v", p, ok)
	}
	if p, ok := ParseProvider("CARD"); !ok || p != ProviderCard {
		t.Fatalf("expected CARD, got %s ok=%v", p, ok)
	}
	if _, ok := ParseProvider("CASH"); ok {
		t.Fatalf("expected CASH to be rejected")
	}
}

func TestDeliveryValidate(t *testing.T) {
	ok := DeliveryDetails{FullName: "Ann Tan", Address: "1 Sunny Rd", Contact: "91234567"}
	if err := ok.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	bad := DeliveryDetails{FullName: "  ", Address: "1 Sunny Rd"}
	err := bad.Validate()
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(vErr.Missing) != 2 {
		t.Fatalf("expected 2 missing fields, got %v", vErr.Missing)
	}
}
