package calculation

import (
	"github.com/mapleplan/mapleplan/internal/domain"
	"github.com/shopspring/decimal"
)

// High-interest threshold: a debt at or above this APR with a positive
// balance is treated as high-interest and jumps the queue ahead of every
// registered-account priority. The 3-tier level classifier keeps a
// stricter 15% cut for its severe-debt check; see ClassifyLevel.
var HighInterestAPRThreshold = decimal.NewFromInt(8)

// FHSA program figures. Room is inferred for eligible users who have not
// opened an account yet, since opening starts the room clock.
var (
	FHSAAnnualRoom    = decimal.NewFromInt(8000)
	FHSALifetimeLimit = decimal.NewFromInt(40000)
	HBPWithdrawalCap  = decimal.NewFromInt(60000)
)

// PayoffMonthsFallback is returned by the closed-form payoff estimate when
// debt exists but the profile has no payment capacity at all.
const PayoffMonthsFallback = 120

// MaxPayoffMonths bounds the amortization simulation (100 years).
const MaxPayoffMonths = 1200

var (
	twelve     = decimal.NewFromInt(12)
	hundred    = decimal.NewFromInt(100)
	three      = decimal.NewFromInt(3)
	one        = decimal.NewFromInt(1)
	surplusCut = decimal.NewFromFloat(0.35)
	growthRate = decimal.NewFromFloat(1.05)
	tenYears   = decimal.NewFromInt(10)
)

// ComputeMetrics derives all intermediate financial figures from a
// normalized profile. Pure, O(number of debts), and total: every division
// is guarded.
func ComputeMetrics(profile domain.Profile) domain.Metrics {
	m := domain.Metrics{}

	m.MonthlyEssentials = profile.Expenses.Essentials()
	m.Discretionary = profile.Expenses.Discretionary

	for _, d := range profile.Debts {
		m.TotalDebtMinimums = m.TotalDebtMinimums.Add(d.MinPayment)
		m.DebtBalance = m.DebtBalance.Add(d.Balance)
		if d.Balance.IsPositive() && d.APR.GreaterThanOrEqual(HighInterestAPRThreshold) {
			m.HasHighInterestDebt = true
		}
	}

	m.MonthlySurplus = profile.Income.Monthly.
		Sub(m.MonthlyEssentials).
		Sub(m.TotalDebtMinimums).
		Sub(m.Discretionary)

	if m.MonthlyEssentials.IsPositive() {
		m.EmergencyFundMonths = profile.Savings.EmergencyFund.Div(m.MonthlyEssentials)
	}
	m.EmergencyFundTarget1Month = m.MonthlyEssentials.Round(0)
	m.EmergencyFundTarget3Month = m.MonthlyEssentials.Mul(three).Round(0)
	m.EmergencyFundExcess = decimal.Max(decimal.Zero,
		profile.Savings.EmergencyFund.Sub(m.EmergencyFundTarget3Month))

	m.FHSAEligible = profile.IsFirstTimeBuyer
	m.FHSAAccountOpen = profile.Accounts.FHSA.HasAccount
	m.FHSARoom = profile.Accounts.FHSA.Room
	if !m.FHSARoom.IsPositive() && m.FHSAEligible && !m.FHSAAccountOpen {
		m.FHSARoom = FHSAAnnualRoom
	} else if !m.FHSARoom.IsPositive() {
		m.FHSARoom = decimal.Zero
	}
	if m.FHSAEligible {
		m.FHSAMonthlyTarget = FHSAAnnualRoom.Div(twelve).Round(0)
	}

	if m.DebtBalance.IsPositive() {
		var weighted decimal.Decimal
		for _, d := range profile.Debts {
			weighted = weighted.Add(d.Balance.Mul(d.APR))
			m.MonthlyInterestCost = m.MonthlyInterestCost.
				Add(d.Balance.Mul(d.APR).Div(hundred).Div(twelve))
		}
		m.WeightedAPR = weighted.Div(m.DebtBalance)
	}
	m.MonthlyInterestCost = m.MonthlyInterestCost.Round(0)

	m.DebtMonthlyPaymentCapacity = decimal.Max(decimal.Zero,
		decimal.Max(profile.Savings.MonthlySavings, m.MonthlySurplus.Mul(surplusCut)).
			Add(m.TotalDebtMinimums).Round(0))

	m.PayoffMonths = estimatePayoffMonths(m)

	m.OpportunityCost10Yr = profile.Accounts.TFSA.Room.
		Mul(growthRate.Pow(tenYears).Sub(one)).Round(0)

	return m
}

// estimatePayoffMonths is the closed-form payoff approximation. The debt
// simulator is ground truth; this feeds level classification and quick
// timeline text only.
func estimatePayoffMonths(m domain.Metrics) int {
	if !m.DebtBalance.IsPositive() {
		return 0
	}
	if !m.DebtMonthlyPaymentCapacity.IsPositive() {
		return PayoffMonthsFallback
	}
	monthlyRate := decimal.Zero
	if m.WeightedAPR.IsPositive() {
		monthlyRate = m.WeightedAPR.Div(twelve).Div(hundred)
	}
	// Floor the divisor at 1 so barely-above-interest capacity cannot blow
	// the estimate up.
	divisor := decimal.Max(one, m.DebtMonthlyPaymentCapacity.Sub(m.DebtBalance.Mul(monthlyRate)))
	months := int(m.DebtBalance.Div(divisor).Ceil().IntPart())
	if months < 1 {
		months = 1
	}
	return months
}
