package calculation

import (
	"testing"

	"github.com/mapleplan/mapleplan/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectDebtPayoffZeroDebtShortCircuit(t *testing.T) {
	tests := []struct {
		name     string
		debts    []domain.Debt
		strategy string
	}{
		{"empty list", nil, domain.StrategyAvalanche},
		{"zero balances", []domain.Debt{
			{Name: "Paid off", Balance: decimal.Zero, APR: decimal.NewFromInt(20), MinPayment: decimal.NewFromInt(50)},
		}, domain.StrategySnowball},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := ProjectDebtPayoff(tt.debts, decimal.NewFromInt(200), tt.strategy)
			assert.Equal(t, 0, p.Months)
			assert.True(t, p.TotalInterest.IsZero())
			assert.Empty(t, p.Order)
			assert.NotNil(t, p.Order, "order is an empty slice, not nil")
		})
	}
}

func TestProjectDebtPayoffStrategyTargets(t *testing.T) {
	// Balance and APR inverted so the strategies disagree: avalanche
	// targets B (higher APR), snowball targets A (smaller balance).
	debts := []domain.Debt{
		{Name: "A", Balance: decimal.NewFromInt(100), APR: decimal.NewFromInt(5), MinPayment: decimal.NewFromInt(10)},
		{Name: "B", Balance: decimal.NewFromInt(500), APR: decimal.NewFromInt(20), MinPayment: decimal.NewFromInt(10)},
	}
	extra := decimal.NewFromInt(300)

	avalanche := ProjectDebtPayoff(debts, extra, domain.StrategyAvalanche)
	require.NotEmpty(t, avalanche.Order)
	assert.Equal(t, "B", avalanche.Order[0], "avalanche clears the high-APR debt first")

	snowball := ProjectDebtPayoff(debts, extra, domain.StrategySnowball)
	require.NotEmpty(t, snowball.Order)
	assert.Equal(t, "A", snowball.Order[0], "snowball clears the small debt first")
}

func TestProjectDebtPayoffDoesNotMutateInput(t *testing.T) {
	debts := []domain.Debt{
		{Name: "Card", Balance: decimal.NewFromInt(1000), APR: decimal.NewFromInt(20), MinPayment: decimal.NewFromInt(50)},
	}
	ProjectDebtPayoff(debts, decimal.NewFromInt(100), domain.StrategyAvalanche)

	assert.True(t, debts[0].Balance.Equal(decimal.NewFromInt(1000)),
		"simulation must work on a copy, caller balance was %s", debts[0].Balance)
}

func TestProjectDebtPayoffSimpleAmortization(t *testing.T) {
	// Zero APR: 1200 balance at 400/month total payment clears in 3 months.
	debts := []domain.Debt{
		{Name: "Loan", Balance: decimal.NewFromInt(1200), APR: decimal.Zero, MinPayment: decimal.NewFromInt(100)},
	}
	p := ProjectDebtPayoff(debts, decimal.NewFromInt(300), domain.StrategyAvalanche)

	assert.Equal(t, 3, p.Months)
	assert.True(t, p.TotalInterest.IsZero())
	assert.Equal(t, []string{"Loan"}, p.Order)
}

func TestProjectDebtPayoffMinimumOnlyClearanceEntersOrder(t *testing.T) {
	// No extra payment: minimums alone retire both debts in the final
	// month, and both still show up in the payoff order.
	debts := []domain.Debt{
		{Name: "A", Balance: decimal.NewFromInt(200), APR: decimal.Zero, MinPayment: decimal.NewFromInt(100)},
		{Name: "B", Balance: decimal.NewFromInt(100), APR: decimal.Zero, MinPayment: decimal.NewFromInt(50)},
	}
	p := ProjectDebtPayoff(debts, decimal.Zero, domain.StrategyAvalanche)

	assert.Equal(t, 2, p.Months)
	assert.Equal(t, []string{"A", "B"}, p.Order)
}

func TestProjectDebtPayoffCapsAtMaxMonths(t *testing.T) {
	// Minimum payment below monthly interest accrual: balance only grows.
	debts := []domain.Debt{
		{Name: "Trap", Balance: decimal.NewFromInt(10000), APR: decimal.NewFromInt(30), MinPayment: decimal.NewFromInt(10)},
	}
	p := ProjectDebtPayoff(debts, decimal.Zero, domain.StrategyAvalanche)

	assert.Equal(t, MaxPayoffMonths, p.Months, "bounded loop must terminate at the cap")
	assert.Empty(t, p.Order, "the debt never clears")
	assert.True(t, p.TotalInterest.IsPositive())
}

func TestProjectDebtPayoffUnknownStrategyDefaultsToAvalanche(t *testing.T) {
	debts := []domain.Debt{
		{Name: "Card", Balance: decimal.NewFromInt(500), APR: decimal.NewFromInt(20), MinPayment: decimal.NewFromInt(25)},
	}
	p := ProjectDebtPayoff(debts, decimal.NewFromInt(100), "something-else")
	assert.Equal(t, domain.StrategyAvalanche, p.Strategy)
}

func TestCompareStrategies(t *testing.T) {
	debts := []domain.Debt{
		{Name: "A", Balance: decimal.NewFromInt(100), APR: decimal.NewFromInt(5), MinPayment: decimal.NewFromInt(10)},
		{Name: "B", Balance: decimal.NewFromInt(500), APR: decimal.NewFromInt(20), MinPayment: decimal.NewFromInt(10)},
	}
	cmp := CompareStrategies(debts, decimal.NewFromInt(100))

	assert.Equal(t, domain.StrategyAvalanche, cmp.Avalanche.Strategy)
	assert.Equal(t, domain.StrategySnowball, cmp.Snowball.Strategy)
	assert.False(t, cmp.InterestSaved.IsNegative(),
		"interest saved is floored at zero: got %s", cmp.InterestSaved)
	assert.True(t, cmp.Avalanche.TotalInterest.LessThanOrEqual(cmp.Snowball.TotalInterest),
		"avalanche never pays more interest than snowball on this mix")
}
