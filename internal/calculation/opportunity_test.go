package calculation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFutureValue(t *testing.T) {
	// 6000/year at 5% over 20 years: P * ((1.05)^20 - 1) / 0.05
	got := FutureValue(decimal.NewFromInt(6000), decimal.NewFromFloat(0.05), 20)
	expected := decimal.NewFromFloat(198395.72)
	assert.True(t, got.Sub(expected).Abs().LessThan(decimal.NewFromInt(1)),
		"expected about %s, got %s", expected, got)
}

func TestFutureValueZeroRateIsLinear(t *testing.T) {
	tests := []struct {
		contribution int64
		years        int
	}{
		{6000, 10},
		{1234, 7},
		{0, 30},
	}

	for _, tt := range tests {
		contribution := decimal.NewFromInt(tt.contribution)
		got := FutureValue(contribution, decimal.Zero, tt.years)
		expected := contribution.Mul(decimal.NewFromInt(int64(tt.years)))
		assert.True(t, got.Equal(expected),
			"futureValue(%d, 0, %d): expected %s, got %s", tt.contribution, tt.years, expected, got)
	}
}

func TestFutureValueZeroYears(t *testing.T) {
	got := FutureValue(decimal.NewFromInt(6000), decimal.NewFromFloat(0.05), 0)
	assert.True(t, got.IsZero(), "zero years grows nothing: got %s", got)
}
