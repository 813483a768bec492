package calculation

import "github.com/shopspring/decimal"

// FutureValue computes the ordinary-annuity future value of an annual
// contribution: P * ((1+r)^n - 1) / r. A zero rate falls back to the
// linear P*n so the division is never degenerate. Rounded to 2 decimal
// places.
func FutureValue(annualContribution, annualReturnRate decimal.Decimal, years int) decimal.Decimal {
	n := decimal.NewFromInt(int64(years))
	if annualReturnRate.IsZero() {
		return annualContribution.Mul(n).Round(2)
	}
	growth := one.Add(annualReturnRate).Pow(n).Sub(one)
	return annualContribution.Mul(growth).Div(annualReturnRate).Round(2)
}
