package domain

import (
	"strings"
	"time"
)

// DeliveryDetails is what the customer fills in on the checkout form.
type DeliveryDetails struct {
	FullName string `json:"fullName"`
	Address  string `json:"address"`
	Contact  string `json:"contact"`
}

// Validate reports every missing field at once so the form can highlight all
// of them in one round trip.
func (d DeliveryDetails) Validate() error {
	var missing []string
	if strings.TrimSpace(d.FullName) == "" {
		missing = append(missing, "fullName")
	}
	if strings.TrimSpace(d.Address) == "" {
		missing = append(missing, "address")
	}
	if strings.TrimSpace(d.Contact) == "" {
		missing = append(missing, "contact")
	}
	if len(missing) > 0 {
		return &ValidationError{Missing: missing}
	}
	return nil
}

// Order is the immutable record of a completed purchase. It is never mutated
// or deleted once created.
type Order struct {
	ID            string          `json:"id"`
	UserID        string          `json:"userId"`
	Delivery      DeliveryDetails `json:"delivery"`
	PaymentMethod PaymentProvider `json:"paymentMethod"`
	Lines         []CartLine      `json:"lines"`
	TotalCents    int64           `json:"totalCents"`
	Total         string          `json:"total"`
	CreatedAt     time.Time       `json:"createdAt"`
}
