package calculation

import (
	"github.com/mapleplan/mapleplan/internal/domain"
	"github.com/shopspring/decimal"
)

// Bucket allocation ratios. Savings drops to 5% when fixed costs already
// eat more than 60% of income; guilt-free absorbs whatever remains and is
// floored at zero so the four ratios never sum above 1.
var (
	defaultFixedShare = decimal.NewFromFloat(0.55)
	investmentsShare  = decimal.NewFromFloat(0.10)
	savingsShare      = decimal.NewFromFloat(0.10)
	savingsShareTight = decimal.NewFromFloat(0.05)
	tightFixedCutoff  = decimal.NewFromFloat(0.60)
)

// AllocateBuckets splits monthly take-home income into Fixed /
// Investments / Savings / Guilt-free amounts. A zero fixedCosts argument
// means "not supplied" and defaults to 55% of income.
func AllocateBuckets(monthlyIncome, fixedCosts decimal.Decimal) domain.BucketAllocation {
	if !monthlyIncome.IsPositive() {
		return domain.BucketAllocation{
			Fixed:       decimal.Zero,
			Investments: decimal.Zero,
			Savings:     decimal.Zero,
			GuiltFree:   decimal.Zero,
		}
	}

	fixed := fixedCosts
	if !fixed.IsPositive() {
		fixed = monthlyIncome.Mul(defaultFixedShare)
	}
	fixedRatio := fixed.Div(monthlyIncome)

	savingsRatio := savingsShare
	if fixedRatio.GreaterThan(tightFixedCutoff) {
		savingsRatio = savingsShareTight
	}
	guiltFreeRatio := decimal.Max(decimal.Zero,
		one.Sub(fixedRatio).Sub(investmentsShare).Sub(savingsRatio))

	return domain.BucketAllocation{
		Fixed:       fixed.Round(2),
		Investments: monthlyIncome.Mul(investmentsShare).Round(2),
		Savings:     monthlyIncome.Mul(savingsRatio).Round(2),
		GuiltFree:   monthlyIncome.Mul(guiltFreeRatio).Round(2),
		Ratios: domain.BucketRatios{
			Fixed:       fixedRatio.Mul(hundred).Round(2),
			Investments: investmentsShare.Mul(hundred).Round(2),
			Savings:     savingsRatio.Mul(hundred).Round(2),
			GuiltFree:   guiltFreeRatio.Mul(hundred).Round(2),
		},
	}
}
