package lib

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplyDiscount(t *testing.T) {
	tests := []struct {
		name           string
		lineTotalCents int64
		percent        float64
		wantDiscounted int64
		wantDiscount   int64
	}{
		{"no discount", 20000, 0, 20000, 0},
		{"ten percent of 200.00", 20000, 10, 18000, 2000},
		{"rounds half up", 9999, 10, 8999, 1000}, // 999.9 -> 1000
		{"rounds down below half", 101, 2, 99, 2}, // 2.02 -> 2
		{"full discount", 5000, 100, 0, 5000},
		{"over 100 clamps", 5000, 150, 0, 5000},
		{"negative percent ignored", 5000, -10, 5000, 0},
		{"zero total", 0, 50, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			discounted, discount := ApplyDiscount(tt.lineTotalCents, tt.percent)
			assert.Equal(t, tt.wantDiscounted, discounted)
			assert.Equal(t, tt.wantDiscount, discount)
		})
	}
}

// The discounted amount and the discount must always rebuild the original
// line total, whatever the rounding did.
func TestApplyDiscount_SumsToOriginal(t *testing.T) {
	for _, cents := range []int64{1, 99, 100, 101, 9999, 123456789} {
		for _, percent := range []float64{0.5, 1, 3.33, 10, 33.33, 50, 99.99} {
			discounted, discount := ApplyDiscount(cents, percent)
			assert.Equal(t, cents, discounted+discount,
				"total %d at %.2f%% does not round-trip", cents, percent)
		}
	}
}

func TestFormatCents(t *testing.T) {
	assert.Equal(t, "180.50", FormatCents(18050))
	assert.Equal(t, "0.05", FormatCents(5))
	assert.Equal(t, "0.00", FormatCents(0))
	assert.Equal(t, "1.00", FormatCents(100))
	assert.Equal(t, "-12.34", FormatCents(-1234))
}
