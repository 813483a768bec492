package calculation

import (
	"github.com/mapleplan/mapleplan/internal/domain"
	"github.com/mapleplan/mapleplan/internal/sequencing"
	"github.com/shopspring/decimal"
)

// ProjectDebtPayoff runs the month-by-month amortization simulation: accrue
// interest on every active debt, pay minimums, then send the extra payment
// to the strategy's current target. The loop is bounded at MaxPayoffMonths
// so minimum payments below interest accrual still terminate; hitting the
// cap is a defined outcome, not an error.
func ProjectDebtPayoff(debts []domain.Debt, monthlyExtraPayment decimal.Decimal, strategy string) domain.DebtProjection {
	strat := sequencing.CreateStrategy(strategy)

	working := make([]*sequencing.DebtState, 0, len(debts))
	for _, d := range debts {
		if !d.Balance.IsPositive() {
			continue
		}
		working = append(working, &sequencing.DebtState{
			Name:    d.Name,
			Balance: d.Balance,
			APR:     d.APR,
			Minimum: d.MinPayment,
		})
	}

	if len(working) == 0 {
		return domain.DebtProjection{
			Months:        0,
			TotalInterest: decimal.Zero,
			Strategy:      strat.Name(),
			Order:         []string{},
		}
	}

	months := 0
	totalInterest := decimal.Zero
	payoffOrder := []string{}
	cleared := make(map[string]bool, len(working))

	for anyActive(working) && months < MaxPayoffMonths {
		months++

		for _, d := range working {
			if !d.Balance.IsPositive() {
				continue
			}
			interest := d.Balance.Mul(d.APR).Div(hundred).Div(twelve)
			d.Balance = d.Balance.Add(interest)
			totalInterest = totalInterest.Add(interest)
		}

		for _, d := range working {
			if !d.Balance.IsPositive() {
				continue
			}
			d.Balance = d.Balance.Sub(decimal.Min(d.Minimum, d.Balance))
		}

		candidates := make([]*sequencing.DebtState, 0, len(working))
		for _, d := range working {
			if d.Balance.IsPositive() {
				candidates = append(candidates, d)
			}
		}
		if len(candidates) == 0 {
			// Debts whose final balance was cleared by minimums alone
			// still enter the payoff order.
			recordCleared(working, cleared, &payoffOrder)
			break
		}

		strat.SortCandidates(candidates)
		target := candidates[0]
		target.Balance = target.Balance.Sub(decimal.Min(monthlyExtraPayment, target.Balance))

		recordCleared(working, cleared, &payoffOrder)
	}

	return domain.DebtProjection{
		Months:        months,
		TotalInterest: totalInterest.Round(2),
		Strategy:      strat.Name(),
		Order:         payoffOrder,
	}
}

// CompareStrategies runs both payoff orderings against the same debts and
// reports what avalanche saves over snowball.
func CompareStrategies(debts []domain.Debt, monthlyExtraPayment decimal.Decimal) domain.StrategyComparison {
	avalanche := ProjectDebtPayoff(debts, monthlyExtraPayment, domain.StrategyAvalanche)
	snowball := ProjectDebtPayoff(debts, monthlyExtraPayment, domain.StrategySnowball)

	return domain.StrategyComparison{
		Avalanche:     avalanche,
		Snowball:      snowball,
		InterestSaved: decimal.Max(decimal.Zero, snowball.TotalInterest.Sub(avalanche.TotalInterest)).Round(2),
		MonthsSaved:   snowball.Months - avalanche.Months,
	}
}

func anyActive(working []*sequencing.DebtState) bool {
	for _, d := range working {
		if d.Balance.IsPositive() {
			return true
		}
	}
	return false
}

// recordCleared appends debts whose balance just reached zero, once each,
// preserving the order they were cleared in.
func recordCleared(working []*sequencing.DebtState, cleared map[string]bool, order *[]string) {
	for _, d := range working {
		if !d.Balance.IsPositive() && !cleared[d.Name] {
			cleared[d.Name] = true
			*order = append(*order, d.Name)
		}
	}
}
