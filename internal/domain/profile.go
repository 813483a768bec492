package domain

import (
	"github.com/shopspring/decimal"
)

// RawIntake is the untyped shape delivered by an intake collector (form,
// conversational flow, or file). Numeric fields are deliberately `any` so
// that strings, numbers, or missing values all survive decoding; the
// normalizer is responsible for coercing them into a Profile.
type RawIntake struct {
	Profile struct {
		Goal           string `yaml:"goal" json:"goal"`
		Age            any    `yaml:"age" json:"age"`
		Province       string `yaml:"province" json:"province"`
		FirstTimeBuyer bool   `yaml:"first_time_buyer" json:"firstTimeBuyer"`
		PlanType       string `yaml:"plan_type" json:"planType"`
	} `yaml:"profile" json:"profile"`
	MonthlyIncome   any    `yaml:"monthly_income" json:"monthlyIncome"`
	IncomeStability string `yaml:"income_stability" json:"incomeStability"`
	Expenses        struct {
		Housing       any `yaml:"housing" json:"housing"`
		Transport     any `yaml:"transport" json:"transport"`
		Utilities     any `yaml:"utilities" json:"utilities"`
		Groceries     any `yaml:"groceries" json:"groceries"`
		OtherFixed    any `yaml:"other_fixed" json:"otherFixed"`
		Discretionary any `yaml:"discretionary" json:"discretionary"`
	} `yaml:"expenses" json:"expenses"`
	Debts    []RawDebt `yaml:"debts" json:"debts"`
	Accounts struct {
		TFSA RawAccount `yaml:"tfsa" json:"tfsa"`
		RRSP RawAccount `yaml:"rrsp" json:"rrsp"`
		FHSA RawAccount `yaml:"fhsa" json:"fhsa"`
	} `yaml:"accounts" json:"accounts"`
	EmergencyFundAmount   any `yaml:"emergency_fund_amount" json:"emergencyFundAmount"`
	CurrentMonthlySavings any `yaml:"current_monthly_savings" json:"currentMonthlySavings"`
}

// RawDebt carries both field spellings seen from collectors
// (apr/interestRate, minPayment/minimumPayment).
type RawDebt struct {
	Name           string `yaml:"name" json:"name"`
	Balance        any    `yaml:"balance" json:"balance"`
	APR            any    `yaml:"apr" json:"apr"`
	InterestRate   any    `yaml:"interest_rate" json:"interestRate"`
	MinPayment     any    `yaml:"min_payment" json:"minPayment"`
	MinimumPayment any    `yaml:"minimum_payment" json:"minimumPayment"`
}

// RawAccount carries both room spellings (room/roomAvailable).
type RawAccount struct {
	HasAccount    bool `yaml:"has_account" json:"hasAccount"`
	Balance       any  `yaml:"balance" json:"balance"`
	Room          any  `yaml:"room" json:"room"`
	RoomAvailable any  `yaml:"room_available" json:"roomAvailable"`
}

// Profile is the normalized, immutable snapshot every calculation consumes.
// After normalization every numeric field is finite and non-negative.
type Profile struct {
	Goal             string   `yaml:"goal" json:"goal"`
	Age              int      `yaml:"age" json:"age"`
	Province         string   `yaml:"province" json:"province"`
	IsFirstTimeBuyer bool     `yaml:"is_first_time_buyer" json:"isFirstTimeBuyer"`
	PlanType         string   `yaml:"plan_type" json:"planType"`
	Income           Income   `yaml:"income" json:"income"`
	Expenses         Expenses `yaml:"expenses" json:"expenses"`
	Debts            []Debt   `yaml:"debts" json:"debts"`
	Accounts         Accounts `yaml:"accounts" json:"accounts"`
	Savings          Savings  `yaml:"savings" json:"savings"`
}

// Income stability values reported by collectors.
const (
	IncomeStable   = "stable"
	IncomeVariable = "variable"
	IncomeAtRisk   = "at-risk"
)

// Plan type values.
const (
	PlanTypeIndividual = "individual"
	PlanTypeHousehold  = "household"
)

type Income struct {
	Monthly   decimal.Decimal `yaml:"monthly" json:"monthly"`
	Stability string          `yaml:"stability" json:"stability"`
}

type Expenses struct {
	Housing       decimal.Decimal `yaml:"housing" json:"housing"`
	Transport     decimal.Decimal `yaml:"transport" json:"transport"`
	Utilities     decimal.Decimal `yaml:"utilities" json:"utilities"`
	Groceries     decimal.Decimal `yaml:"groceries" json:"groceries"`
	OtherFixed    decimal.Decimal `yaml:"other_fixed" json:"otherFixed"`
	Discretionary decimal.Decimal `yaml:"discretionary" json:"discretionary"`
}

// Debt is a single non-mortgage liability. APR is percent per year.
type Debt struct {
	Name       string          `yaml:"name" json:"name"`
	Balance    decimal.Decimal `yaml:"balance" json:"balance"`
	APR        decimal.Decimal `yaml:"apr" json:"apr"`
	MinPayment decimal.Decimal `yaml:"min_payment" json:"minPayment"`
}

type Accounts struct {
	TFSA Account `yaml:"tfsa" json:"tfsa"`
	RRSP Account `yaml:"rrsp" json:"rrsp"`
	FHSA Account `yaml:"fhsa" json:"fhsa"`
}

// Account models a registered account as an opaque room/balance bucket.
type Account struct {
	HasAccount bool            `yaml:"has_account" json:"hasAccount"`
	Balance    decimal.Decimal `yaml:"balance" json:"balance"`
	Room       decimal.Decimal `yaml:"room" json:"room"`
}

type Savings struct {
	EmergencyFund  decimal.Decimal `yaml:"emergency_fund" json:"emergencyFund"`
	MonthlySavings decimal.Decimal `yaml:"monthly_savings" json:"monthlySavings"`
}

// Essentials returns the sum of the five fixed expense categories.
func (e Expenses) Essentials() decimal.Decimal {
	return e.Housing.Add(e.Transport).Add(e.Utilities).Add(e.Groceries).Add(e.OtherFixed)
}

// RegisteredBalance returns the combined balance across TFSA, RRSP and FHSA.
func (a Accounts) RegisteredBalance() decimal.Decimal {
	return a.TFSA.Balance.Add(a.RRSP.Balance).Add(a.FHSA.Balance)
}

// HasDebt reports whether any debt carries a positive balance.
func (p *Profile) HasDebt() bool {
	for _, d := range p.Debts {
		if d.Balance.IsPositive() {
			return true
		}
	}
	return false
}
