package calculation

import (
	"github.com/mapleplan/mapleplan/internal/domain"
	"github.com/mapleplan/mapleplan/internal/sequencing"
	"github.com/shopspring/decimal"
)

// HighTaxBracketMonthlyIncome is the monthly income at which RRSP
// contributions start beating TFSA contributions on the tax deduction,
// flipping the account order.
var HighTaxBracketMonthlyIncome = decimal.NewFromInt(7000)

// SevereInterestAPRThreshold is the stricter cut the quick 3-tier
// classifier uses for debt that forces Foundation regardless of savings.
// It deliberately differs from HighInterestAPRThreshold; see the metrics
// constant for the canonical high-interest definition.
var SevereInterestAPRThreshold = decimal.NewFromInt(15)

// SequenceAccounts orders contribution priorities for a profile.
func SequenceAccounts(profile domain.Profile, metrics domain.Metrics) []string {
	return sequencing.SequenceAccounts(sequencing.AccountSnapshot{
		HasHighInterestDebt: metrics.HasHighInterestDebt,
		FirstTimeHomeBuyer:  profile.IsFirstTimeBuyer,
		HighTaxBracket:      profile.Income.Monthly.GreaterThanOrEqual(HighTaxBracketMonthlyIncome),
		FHSARoom:            metrics.FHSARoom,
	})
}

// ClassifyLevel is the quick 3-tier maturity classification. The plan
// composer uses the richer 5-tier assessment; this one backs standalone
// callers and early UI feedback.
func ClassifyLevel(profile domain.Profile, metrics domain.Metrics) domain.LevelAssessment {
	severeDebt := false
	for _, d := range profile.Debts {
		if d.Balance.IsPositive() && d.APR.GreaterThanOrEqual(SevereInterestAPRThreshold) {
			severeDebt = true
			break
		}
	}

	switch {
	case metrics.EmergencyFundMonths.LessThan(one) || severeDebt:
		return domain.LevelAssessment{
			Level: 1,
			Name:  "Foundation",
			Next:  "Reach a $1,000 emergency buffer and reduce high-interest debt.",
		}
	case metrics.EmergencyFundMonths.LessThan(three):
		return domain.LevelAssessment{
			Level: 2,
			Name:  "Stability",
			Next:  "Build emergency savings to 3 months of essentials.",
		}
	default:
		return domain.LevelAssessment{
			Level: 3,
			Name:  "Momentum",
			Next:  "Keep debt declining and increase registered contributions.",
		}
	}
}
