package calculation

import (
	"testing"

	"github.com/mapleplan/mapleplan/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestSequenceAccounts(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*domain.Profile)
		expected []string
	}{
		{
			name:     "high-interest debt leads for a first-time buyer",
			mutate:   func(p *domain.Profile) {},
			expected: []string{"High-interest debt payoff", "FHSA", "TFSA", "RRSP"},
		},
		{
			name: "high earner flips RRSP ahead of TFSA",
			mutate: func(p *domain.Profile) {
				p.Income.Monthly = decimal.NewFromInt(8000)
			},
			expected: []string{"High-interest debt payoff", "FHSA", "RRSP", "TFSA"},
		},
		{
			name: "no debt and not a buyer",
			mutate: func(p *domain.Profile) {
				p.Debts = nil
				p.IsFirstTimeBuyer = false
			},
			expected: []string{"TFSA", "RRSP"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile := testProfile()
			tt.mutate(&profile)
			metrics := ComputeMetrics(profile)
			assert.Equal(t, tt.expected, SequenceAccounts(profile, metrics))
		})
	}
}

func TestClassifyLevel(t *testing.T) {
	tests := []struct {
		name          string
		mutate        func(*domain.Profile)
		expectedLevel int
		expectedName  string
	}{
		{
			name: "no buffer is Foundation",
			mutate: func(p *domain.Profile) {
				p.Savings.EmergencyFund = decimal.Zero
				p.Debts = nil
			},
			expectedLevel: 1,
			expectedName:  "Foundation",
		},
		{
			name:          "severe debt forces Foundation despite savings",
			mutate:        func(p *domain.Profile) {}, // 19.99% card, 2 months saved
			expectedLevel: 1,
			expectedName:  "Foundation",
		},
		{
			name: "partial buffer without severe debt is Stability",
			mutate: func(p *domain.Profile) {
				p.Debts = nil
			},
			expectedLevel: 2,
			expectedName:  "Stability",
		},
		{
			name: "three months saved is Momentum",
			mutate: func(p *domain.Profile) {
				p.Debts = nil
				p.Savings.EmergencyFund = decimal.NewFromInt(9000)
			},
			expectedLevel: 3,
			expectedName:  "Momentum",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile := testProfile()
			tt.mutate(&profile)
			metrics := ComputeMetrics(profile)
			level := ClassifyLevel(profile, metrics)
			assert.Equal(t, tt.expectedLevel, level.Level)
			assert.Equal(t, tt.expectedName, level.Name)
			assert.NotEmpty(t, level.Next)
		})
	}
}
