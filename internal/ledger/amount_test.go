package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPortion(t *testing.T) {
	tests := []struct {
		name     string
		amount   int64
		rate     int64
		expected int64
	}{
		{
			name:     "25 percent of 1000",
			amount:   1000,
			rate:     250_000_000,
			expected: 250,
		},
		{
			name:     "1 percent of 1000",
			amount:   1000,
			rate:     10_000_000,
			expected: 10,
		},
		{
			name:     "rounds down",
			amount:   999,
			rate:     10_000_000,
			expected: 9,
		},
		{
			name:     "full rate is identity",
			amount:   12345,
			rate:     RateScale,
			expected: 12345,
		},
		{
			name:     "zero rate",
			amount:   12345,
			rate:     0,
			expected: 0,
		},
		{
			name:     "150 percent factor",
			amount:   1000,
			rate:     1_500_000_000,
			expected: 1500,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Portion(NewAmount(tt.amount), tt.rate)
			assert.Equal(t, NewAmount(tt.expected), got)
		})
	}
}

func TestMulDiv(t *testing.T) {
	// floor(7 * 13 / 4) = 22
	assert.Equal(t, NewAmount(22), MulDiv(NewAmount(7), NewAmount(13), NewAmount(4)))

	// Intermediate product exceeds int64; result must stay exact.
	big := NewAmount(1_000_000_000_000)
	assert.Equal(t, big, MulDiv(big, big, big))
}

func TestMinAmount(t *testing.T) {
	assert.Equal(t, NewAmount(3), MinAmount(NewAmount(3), NewAmount(5)))
	assert.Equal(t, NewAmount(3), MinAmount(NewAmount(5), NewAmount(3)))
	assert.Equal(t, NewAmount(-1), MinAmount(NewAmount(-1), ZeroAmount()))
}
