package domain

import "fmt"

// FormatCents renders integer cents as a major-unit amount with two decimal
// places, e.g. 2000 -> "20.00". This is the string the QR provider and order
// summaries expect.
func FormatCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}
