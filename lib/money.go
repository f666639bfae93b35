package lib

import (
	"fmt"
	"math"
)

// All amounts are carried as integer cents. Percent discounts are computed per
// line item and rounded to the cent before summing, so an order total always
// equals the sum of its line amounts.

// ApplyDiscount applies a percent discount to a line total. Returns the
// discounted amount and the discount itself, both in cents, rounded half-up.
func ApplyDiscount(lineTotalCents int64, percent float64) (discountedCents int64, discountCents int64) {
	if percent <= 0 || lineTotalCents <= 0 {
		return lineTotalCents, 0
	}
	if percent > 100 {
		percent = 100
	}

	discountCents = int64(math.Round(float64(lineTotalCents) * percent / 100))
	return lineTotalCents - discountCents, discountCents
}

// FormatCents renders cents as a major-unit string with two decimals,
// e.g. 18050 -> "180.50".
func FormatCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}
