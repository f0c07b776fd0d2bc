package domain

import "time"

// CartLine is one product selection held in a shopping session.
type CartLine struct {
	ProductID      string `json:"productId"`
	ProductName    string `json:"productName"`
	UnitPriceCents int64  `json:"unitPriceCents"`
	Quantity       int    `json:"quantity"`
}

func (l CartLine) SubtotalCents() int64 {
	return l.UnitPriceCents * int64(l.Quantity)
}

// CartSnapshot is a read-only copy of the session cart taken when checkout
// begins. Line order is preserved; reconciliation and error reporting rely
// on it.
type CartSnapshot struct {
	Lines   []CartLine `json:"lines"`
	TakenAt time.Time  `json:"takenAt"`
}

// SnapshotCart copies the live cart into an immutable snapshot.
func SnapshotCart(lines []CartLine) (CartSnapshot, error) {
	if len(lines) == 0 {
		return CartSnapshot{}, ErrEmptyCart
	}
	copied := make([]CartLine, len(lines))
	copy(copied, lines)
	return CartSnapshot{Lines: copied, TakenAt: time.Now().UTC()}, nil
}

// TotalCents sums the line subtotals. Amounts are integer cents throughout,
// so each subtotal is exact and rounding only happens when formatting.
func (s CartSnapshot) TotalCents() int64 {
	var total int64
	for _, l := range s.Lines {
		total += l.SubtotalCents()
	}
	return total
}
