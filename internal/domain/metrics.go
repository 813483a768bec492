package domain

import "github.com/shopspring/decimal"

// Metrics holds the derived financial figures for one profile. They are
// recomputed on every planning request and never persisted.
type Metrics struct {
	MonthlyEssentials         decimal.Decimal `json:"monthlyEssentials"`
	TotalDebtMinimums         decimal.Decimal `json:"totalDebtMinimums"`
	Discretionary             decimal.Decimal `json:"discretionary"`
	MonthlySurplus            decimal.Decimal `json:"monthlySurplus"` // may be negative
	EmergencyFundMonths       decimal.Decimal `json:"emergencyFundMonths"`
	EmergencyFundTarget1Month decimal.Decimal `json:"emergencyFundTarget1Month"`
	EmergencyFundTarget3Month decimal.Decimal `json:"emergencyFundTarget3Month"`
	EmergencyFundExcess       decimal.Decimal `json:"emergencyFundExcess"`
	HasHighInterestDebt       bool            `json:"hasHighInterestDebt"`

	// FHSA eligibility is inferred, not collected: any first-time buyer
	// qualifies, and an unopened account implies the first $8,000 year of
	// room once opened.
	FHSAEligible      bool            `json:"fhsaEligible"`
	FHSAAccountOpen   bool            `json:"fhsaAccountOpen"`
	FHSARoom          decimal.Decimal `json:"fhsaRoom"`
	FHSAMonthlyTarget decimal.Decimal `json:"fhsaMonthlyTarget"`

	DebtBalance         decimal.Decimal `json:"debtBalance"`
	WeightedAPR         decimal.Decimal `json:"weightedApr"`
	MonthlyInterestCost decimal.Decimal `json:"monthlyInterestCost"`

	// DebtMonthlyPaymentCapacity is what the profile can realistically put
	// toward debt each month, minimums included.
	DebtMonthlyPaymentCapacity decimal.Decimal `json:"debtMonthlyPaymentCapacity"`

	// PayoffMonths is a closed-form estimate only. The debt simulator is
	// ground truth for projection output; this figure feeds level
	// classification and quick timeline text.
	PayoffMonths int `json:"payoffMonths"`

	DebtFreeDateLabel   string          `json:"debtFreeDateLabel,omitempty"`
	OpportunityCost10Yr decimal.Decimal `json:"opportunityCost10yr"`
}
