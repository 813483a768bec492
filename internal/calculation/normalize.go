package calculation

import (
	"fmt"
	"math"
	"strings"

	"github.com/mapleplan/mapleplan/internal/domain"
	"github.com/shopspring/decimal"
)

// Named intake defaults. Normalization is policy, not error handling: any
// missing or malformed field is silently replaced by one of these.
const (
	DefaultGoal     = "Build a stable financial plan"
	DefaultProvince = "Ontario"
	DefaultAge      = 30
	MinimumAge      = 18
)

// ParseAmount coerces an arbitrary decoded value into a finite,
// non-negative decimal. Strings are trimmed of currency noise before
// parsing. Anything unparsable yields the fallback; negative results clamp
// to zero.
func ParseAmount(value any, fallback decimal.Decimal) decimal.Decimal {
	parsed, ok := parseFinite(value)
	if !ok {
		parsed = fallback
	}
	if parsed.IsNegative() {
		return decimal.Zero
	}
	return parsed
}

func parseFinite(value any) (decimal.Decimal, bool) {
	switch v := value.(type) {
	case nil:
		return decimal.Zero, false
	case decimal.Decimal:
		return v, true
	case int:
		return decimal.NewFromInt(int64(v)), true
	case int64:
		return decimal.NewFromInt(v), true
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return decimal.Zero, false
		}
		return decimal.NewFromFloat(v), true
	case float32:
		return parseFinite(float64(v))
	case string:
		s := strings.TrimSpace(v)
		s = strings.ReplaceAll(s, "$", "")
		s = strings.ReplaceAll(s, ",", "")
		s = strings.TrimSuffix(s, "%")
		if s == "" {
			return decimal.Zero, false
		}
		d, err := decimal.NewFromString(s)
		if err != nil {
			return decimal.Zero, false
		}
		return d, true
	case fmt.Stringer:
		return parseFinite(v.String())
	default:
		// YAML decodes integers as int, JSON as float64; anything else
		// (maps, bools, slices) is not a number.
		return decimal.Zero, false
	}
}

// NormalizeProfile coerces an arbitrary intake shape into a strict Profile.
// It never fails: the worst possible input yields an all-zero profile with
// named defaults.
func NormalizeProfile(intake domain.RawIntake) domain.Profile {
	profile := domain.Profile{
		Goal:             fallbackString(intake.Profile.Goal, DefaultGoal),
		Age:              normalizeAge(intake.Profile.Age),
		Province:         fallbackString(intake.Profile.Province, DefaultProvince),
		IsFirstTimeBuyer: intake.Profile.FirstTimeBuyer,
		PlanType:         fallbackString(intake.Profile.PlanType, domain.PlanTypeIndividual),
		Income: domain.Income{
			Monthly:   ParseAmount(intake.MonthlyIncome, decimal.Zero),
			Stability: normalizeStability(intake.IncomeStability),
		},
		Expenses: domain.Expenses{
			Housing:       ParseAmount(intake.Expenses.Housing, decimal.Zero),
			Transport:     ParseAmount(intake.Expenses.Transport, decimal.Zero),
			Utilities:     ParseAmount(intake.Expenses.Utilities, decimal.Zero),
			Groceries:     ParseAmount(intake.Expenses.Groceries, decimal.Zero),
			OtherFixed:    ParseAmount(intake.Expenses.OtherFixed, decimal.Zero),
			Discretionary: ParseAmount(intake.Expenses.Discretionary, decimal.Zero),
		},
		Accounts: domain.Accounts{
			TFSA: normalizeAccount(intake.Accounts.TFSA),
			RRSP: normalizeAccount(intake.Accounts.RRSP),
			FHSA: normalizeAccount(intake.Accounts.FHSA),
		},
		Savings: domain.Savings{
			EmergencyFund:  ParseAmount(intake.EmergencyFundAmount, decimal.Zero),
			MonthlySavings: ParseAmount(intake.CurrentMonthlySavings, decimal.Zero),
		},
	}

	profile.Debts = make([]domain.Debt, 0, len(intake.Debts))
	for i, raw := range intake.Debts {
		profile.Debts = append(profile.Debts, normalizeDebt(raw, i))
	}

	return profile
}

func normalizeDebt(raw domain.RawDebt, index int) domain.Debt {
	name := strings.TrimSpace(raw.Name)
	if name == "" {
		name = fmt.Sprintf("Debt %d", index+1)
	}
	apr := raw.APR
	if apr == nil {
		apr = raw.InterestRate
	}
	minPayment := raw.MinPayment
	if minPayment == nil {
		minPayment = raw.MinimumPayment
	}
	return domain.Debt{
		Name:       name,
		Balance:    ParseAmount(raw.Balance, decimal.Zero),
		APR:        ParseAmount(apr, decimal.Zero),
		MinPayment: ParseAmount(minPayment, decimal.Zero),
	}
}

func normalizeAccount(raw domain.RawAccount) domain.Account {
	room := raw.Room
	if room == nil {
		room = raw.RoomAvailable
	}
	return domain.Account{
		HasAccount: raw.HasAccount,
		Balance:    ParseAmount(raw.Balance, decimal.Zero),
		Room:       ParseAmount(room, decimal.Zero),
	}
}

// normalizeAge falls back to DefaultAge only when the value is missing or
// unparsable; any parsed age, zero and negatives included, clamps to
// MinimumAge.
func normalizeAge(value any) int {
	parsed, ok := parseFinite(value)
	if !ok {
		return DefaultAge
	}
	age := int(parsed.IntPart())
	if age < MinimumAge {
		return MinimumAge
	}
	return age
}

func normalizeStability(value string) string {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case domain.IncomeVariable:
		return domain.IncomeVariable
	case domain.IncomeAtRisk:
		return domain.IncomeAtRisk
	default:
		return domain.IncomeStable
	}
}

func fallbackString(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
