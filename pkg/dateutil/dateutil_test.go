package dateutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMonthLabel(t *testing.T) {
	now := time.Date(2025, time.March, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		months   int
		expected string
	}{
		{0, "March 2025"},
		{1, "April 2025"},
		{6, "September 2025"},
		{10, "January 2026"},
		{24, "March 2027"},
		{-3, "March 2025"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, MonthLabel(now, tt.months), "months=%d", tt.months)
	}
}
