package calculation

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/mapleplan/mapleplan/internal/domain"
	"github.com/mapleplan/mapleplan/pkg/dateutil"
	"github.com/shopspring/decimal"
)

// ComposeOptions carries the non-profile inputs the composer needs: the
// payoff strategy and the clock instant month labels are anchored to.
type ComposeOptions struct {
	Strategy string
	Now      time.Time
}

var (
	minStarterSavings = decimal.NewFromInt(200)
	minBufferSavings  = decimal.NewFromInt(150)
	incomeTenth       = decimal.NewFromFloat(0.10)
	incomeBufferShare = decimal.NewFromFloat(0.08)
	half              = decimal.NewFromFloat(0.5)
	rrspSurplusShare  = decimal.NewFromFloat(0.3)
	tfsaSurplusShare  = decimal.NewFromFloat(0.2)
	refundShare       = decimal.NewFromFloat(0.3)
)

// ComposePlan turns a profile and its metrics into the full milestone
// plan. Every step is arithmetic and defensive; malformed input was
// already absorbed by normalization, so this cannot fail. It degrades to
// minimal milestones, never an error.
func ComposePlan(profile domain.Profile, metrics domain.Metrics, opts ComposeOptions) *domain.Plan {
	level := classifyPlanLevel(profile, metrics)
	monthlyIncome := decimal.Max(profile.Income.Monthly, one)
	fixed := metrics.MonthlyEssentials.Add(metrics.TotalDebtMinimums).Add(metrics.Discretionary).Round(0)
	starterGap := decimal.Max(decimal.Zero, metrics.EmergencyFundTarget1Month.Sub(profile.Savings.EmergencyFund))
	fullGap := decimal.Max(decimal.Zero, metrics.EmergencyFundTarget3Month.Sub(profile.Savings.EmergencyFund))
	surplus := decimal.Max(decimal.Zero, metrics.MonthlySurplus)
	hasDebt := metrics.DebtBalance.IsPositive()

	// The key trade-off inversion versus "always pay debt first": when the
	// monthly interest carried on debt is smaller than the use-it-or-lose-it
	// FHSA monthly target, delaying the FHSA costs more than the debt does.
	fhsaParallel := metrics.FHSAEligible &&
		metrics.FHSAMonthlyTarget.IsPositive() &&
		metrics.MonthlyInterestCost.LessThan(metrics.FHSAMonthlyTarget)

	// Waterfall allocation of surplus, fixed order: FHSA -> emergency
	// savings -> debt extra -> investment -> guilt-free remainder. Each
	// step floors at zero and cannot exceed what is left.
	fhsaAllocation := decimal.Zero
	if fhsaParallel {
		fhsaAllocation = decimal.Min(metrics.FHSAMonthlyTarget, surplus)
	}
	surplusAfterFHSA := decimal.Max(decimal.Zero, surplus.Sub(fhsaAllocation))

	savingsAmount := decimal.Zero
	switch {
	case starterGap.IsPositive():
		savingsAmount = decimal.Min(
			decimal.Max(minStarterSavings, monthlyIncome.Mul(incomeTenth).Round(0)),
			decimal.Max(minStarterSavings, surplusAfterFHSA.Mul(half).Round(0)))
	case fullGap.IsPositive():
		savingsAmount = decimal.Max(minBufferSavings, monthlyIncome.Mul(incomeBufferShare).Round(0))
	}
	surplusAfterSavings := decimal.Max(decimal.Zero, surplusAfterFHSA.Sub(savingsAmount))

	debtExtra := decimal.Zero
	debtAmount := decimal.Zero
	if hasDebt {
		debtExtra = decimal.Min(surplusAfterSavings,
			decimal.Max(decimal.Zero, metrics.DebtMonthlyPaymentCapacity.Sub(metrics.TotalDebtMinimums)))
		debtAmount = metrics.TotalDebtMinimums.Add(debtExtra)
	}
	surplusAfterDebt := decimal.Max(decimal.Zero, surplusAfterSavings.Sub(debtExtra))

	investmentAmount := decimal.Zero
	if !starterGap.IsPositive() {
		investmentAmount = decimal.Min(surplusAfterDebt,
			decimal.Max(decimal.Zero, monthlyIncome.Mul(incomeTenth).Round(0)))
	}
	guiltFree := decimal.Max(decimal.Zero, monthlyIncome.
		Sub(fixed).Sub(savingsAmount).Sub(debtAmount).Sub(fhsaAllocation).Sub(investmentAmount).Round(0))

	userGoal := strings.TrimSpace(profile.Goal)
	if userGoal == "" {
		userGoal = DefaultGoal
	}
	goalLower := strings.ToLower(userGoal)
	isHomeGoal := strings.Contains(goalLower, "home") ||
		strings.Contains(goalLower, "house") ||
		profile.IsFirstTimeBuyer

	projection := ProjectDebtPayoff(profile.Debts, debtExtra, opts.Strategy)

	readiness := buildGoalReadiness(metrics, starterGap, hasDebt, fhsaParallel, fhsaAllocation, debtAmount)
	milestones := buildMilestones(milestoneInputs{
		profile:          profile,
		metrics:          metrics,
		now:              opts.Now,
		starterGap:       starterGap,
		fullGap:          fullGap,
		hasDebt:          hasDebt,
		fhsaParallel:     fhsaParallel,
		fhsaAllocation:   fhsaAllocation,
		savingsAmount:    savingsAmount,
		debtAmount:       debtAmount,
		debtExtra:        debtExtra,
		investmentAmount: investmentAmount,
		isHomeGoal:       isHomeGoal,
		payoffMonths:     projection.Months,
	})

	var debtFreeDate *string
	if hasDebt {
		label := dateutil.MonthLabel(opts.Now, projection.Months)
		debtFreeDate = &label
	}

	plan := &domain.Plan{
		FinancialLevel:      level.Level,
		FinancialLevelLabel: level.Name,
		Goal:                userGoal,
		GoalReadiness:       readiness,
		CoachOpening:        buildCoachOpening(userGoal, metrics, starterGap, fhsaParallel),
		Milestones:          milestones,
		GoalProjection:      buildGoalProjection(profile, metrics, parseGoalYears(userGoal)),
		Buckets: domain.PlanBuckets{
			Fixed:       planBucket(fixed, monthlyIncome),
			Savings:     planBucket(savingsAmount, monthlyIncome),
			Investments: planBucket(investmentAmount.Add(fhsaAllocation), monthlyIncome),
			GuiltFree:   planBucket(guiltFree, monthlyIncome),
		},
		DebtProjection:  projection,
		AccountSequence: SequenceAccounts(profile, metrics),
		DebtFreeDate:    debtFreeDate,
		OpportunityCost: fmt.Sprintf(
			"If TFSA room remains unused this year, you could miss about %s in 10-year growth at 5%%.",
			formatMoney(metrics.OpportunityCost10Yr)),
		BookRecommendation: buildBookRecommendation(starterGap),
		Assumptions: []string{
			"All values are CAD and based on your latest provided numbers.",
			"Contribution room should be verified in CRA My Account before deposits.",
			"The plan is guidance. You decide and execute each action.",
		},
	}
	return plan
}

// classifyPlanLevel is the 5-tier goal-aware classification the composer
// uses. It supersedes the quick 3-tier ClassifyLevel by also weighing
// payoff horizon, emergency-fund excess, and registered balances.
func classifyPlanLevel(profile domain.Profile, metrics domain.Metrics) domain.LevelAssessment {
	months := metrics.EmergencyFundMonths
	registered := profile.Accounts.RegisteredBalance()

	switch {
	case months.LessThan(one):
		return domain.LevelAssessment{Level: 1, Name: "Foundation",
			Next: "Build a 1-month emergency buffer before anything else."}
	case metrics.HasHighInterestDebt && months.LessThan(three):
		return domain.LevelAssessment{Level: 1, Name: "Foundation",
			Next: "Grow the buffer to 3 months while holding debt minimums."}
	case metrics.HasHighInterestDebt && metrics.PayoffMonths <= 12:
		// A large safety net plus debt clearable inside a year is
		// Stability, not Foundation.
		return domain.LevelAssessment{Level: 2, Name: "Stability",
			Next: "Clear the remaining high-interest debt within the year."}
	case metrics.HasHighInterestDebt:
		return domain.LevelAssessment{Level: 1, Name: "Foundation",
			Next: "Attack high-interest debt with every spare dollar."}
	case months.LessThan(three):
		return domain.LevelAssessment{Level: 2, Name: "Stability",
			Next: "Build emergency savings to 3 months of essentials."}
	case metrics.DebtBalance.IsPositive():
		return domain.LevelAssessment{Level: 3, Name: "Momentum",
			Next: "Keep low-rate debt declining while contributions grow."}
	case metrics.EmergencyFundExcess.IsPositive() && registered.IsPositive():
		return domain.LevelAssessment{Level: 5, Name: "Freedom",
			Next: "Shift excess cash into registered room and optimize tax placement."}
	case registered.IsPositive() || profile.Savings.MonthlySavings.IsPositive():
		return domain.LevelAssessment{Level: 4, Name: "Growth",
			Next: "Max registered room in tax-aware order."}
	default:
		return domain.LevelAssessment{Level: 3, Name: "Momentum",
			Next: "Start automatic registered contributions."}
	}
}

// buildGoalReadiness picks exactly one of five mutually exclusive verdict
// branches, evaluated in fixed priority order: excess funds, starter gap,
// parallel funding, sequential debt-first, already healthy.
func buildGoalReadiness(metrics domain.Metrics, starterGap decimal.Decimal, hasDebt, fhsaParallel bool, fhsaAllocation, debtAmount decimal.Decimal) domain.GoalReadiness {
	switch {
	case metrics.EmergencyFundExcess.IsPositive() && !starterGap.IsPositive():
		focus := "Redirect excess emergency savings into registered accounts for tax-sheltered growth."
		if metrics.FHSAEligible {
			focus = "Open your FHSA this week and move excess emergency savings into registered accounts."
		}
		return domain.GoalReadiness{
			CanAchieveNow: true,
			Headline:      "Yes, and your savings give you a strong start.",
			Reason: fmt.Sprintf(
				"Your emergency fund covers %s months of essentials. You only need 3 months (%s). The excess %s can accelerate your goal through registered accounts.",
				metrics.EmergencyFundMonths.Round(0), formatMoney(metrics.EmergencyFundTarget3Month),
				formatMoney(metrics.EmergencyFundExcess)),
			FocusNow: focus,
		}
	case starterGap.IsPositive():
		return domain.GoalReadiness{
			CanAchieveNow: false,
			Headline:      "Not yet. Build your safety net first.",
			Reason:        "Build a 1-month emergency fund so one surprise does not push you into new debt.",
			FocusNow:      "Focus now: complete your 1-month emergency fund, then attack high-interest debt.",
		}
	case hasDebt && fhsaParallel:
		focus := "Start registered account contributions now while paying down debt in parallel."
		if metrics.FHSAEligible {
			focus = fmt.Sprintf("Open your FHSA and contribute %s/month while paying %s/month toward debt.",
				formatMoney(fhsaAllocation), formatMoney(debtAmount))
		}
		return domain.GoalReadiness{
			CanAchieveNow: true,
			Headline:      "Yes, with a parallel strategy.",
			Reason: fmt.Sprintf(
				"Your debt costs %s/month in interest, but delaying FHSA contributions costs more in lost tax-sheltered room. Fund both simultaneously.",
				formatMoney(metrics.MonthlyInterestCost)),
			FocusNow: focus,
		}
	case hasDebt:
		return domain.GoalReadiness{
			CanAchieveNow: false,
			Headline:      "Almost. Clear high-interest debt first.",
			Reason:        "High-interest debt costs more than most investments return. Clear it, then redirect that cash flow.",
			FocusNow:      "Focus now: eliminate high-interest debt, then shift cash flow to registered accounts.",
		}
	default:
		return domain.GoalReadiness{
			CanAchieveNow: true,
			Headline:      "Yes, this plan supports your goal now.",
			Reason:        "Your safety net is in place and no high-interest debt is slowing you down.",
			FocusNow:      "Focus now: execute the first milestone and keep contributions consistent.",
		}
	}
}

func buildCoachOpening(userGoal string, metrics domain.Metrics, starterGap decimal.Decimal, fhsaParallel bool) string {
	goal := strings.ToLower(userGoal)
	switch {
	case metrics.EmergencyFundExcess.IsPositive():
		return fmt.Sprintf(
			"Your goal is %s. You have a strong safety net with %s months of emergency savings. The excess can be reallocated to tax-sheltered accounts to accelerate your progress.",
			goal, metrics.EmergencyFundMonths.Round(0))
	case starterGap.IsPositive():
		return fmt.Sprintf(
			"Your goal is %s. Your first win is a starter emergency buffer so surprises stop derailing progress. Once that is in place, we can build momentum.",
			goal)
	case fhsaParallel:
		return fmt.Sprintf(
			"Your goal is %s. Your debt costs %s/month in interest, but FHSA room is use-it-or-lose-it. The plan funds both in parallel to maximize your progress.",
			goal, formatMoney(metrics.MonthlyInterestCost))
	default:
		return fmt.Sprintf(
			"Your goal is %s. Your baseline is stable enough to sequence contributions in an order that protects momentum.",
			goal)
	}
}

func buildBookRecommendation(starterGap decimal.Decimal) domain.BookRecommendation {
	if starterGap.IsPositive() {
		return domain.BookRecommendation{
			Title:  "The Psychology of Money",
			Author: "Morgan Housel",
			Reason: "Build consistency and confidence under uncertainty.",
		}
	}
	return domain.BookRecommendation{
		Title:  "I Will Teach You to Be Rich",
		Author: "Ramit Sethi",
		Reason: "Use systems and automation to keep the plan sustainable.",
	}
}

func planBucket(amount, income decimal.Decimal) domain.PlanBucket {
	return domain.PlanBucket{
		Percent: amount.Div(income).Mul(hundred).Round(0).IntPart(),
		Amount:  amount,
	}
}

var (
	goalYearRange  = regexp.MustCompile(`(?i)(\d+)\s*[-–]\s*(\d+)\s*year`)
	goalYearSingle = regexp.MustCompile(`(?i)(\d+)\s*year`)
)

// parseGoalYears extracts a timeline from goal text: "3-5 years" yields
// the midpoint 4, "3 years" yields 3, anything else 0.
func parseGoalYears(goalText string) int {
	if m := goalYearRange.FindStringSubmatch(goalText); m != nil {
		lo, _ := strconv.Atoi(m[1])
		hi, _ := strconv.Atoi(m[2])
		return (lo + hi + 1) / 2
	}
	if m := goalYearSingle.FindStringSubmatch(goalText); m != nil {
		years, _ := strconv.Atoi(m[1])
		return years
	}
	return 0
}

// buildGoalProjection aggregates the contribution sources available over
// the parsed goal window into an estimated savings pool. Nil when no
// window was parsed or nothing contributes.
func buildGoalProjection(profile domain.Profile, metrics domain.Metrics, goalYears int) *domain.GoalProjection {
	if goalYears <= 0 {
		return nil
	}
	months := goalYears * 12
	monthsDec := decimal.NewFromInt(int64(months))
	sources := []domain.ProjectionSource{}

	if metrics.EmergencyFundExcess.IsPositive() {
		sources = append(sources, domain.ProjectionSource{
			Label:  "Excess emergency savings (reallocated)",
			Amount: metrics.EmergencyFundExcess.Round(0),
		})
	}
	if profile.Accounts.TFSA.Balance.IsPositive() {
		sources = append(sources, domain.ProjectionSource{
			Label:  "Existing TFSA balance",
			Amount: profile.Accounts.TFSA.Balance.Round(0),
		})
	}
	if metrics.FHSAEligible {
		fhsaTotal := decimal.Min(FHSALifetimeLimit, metrics.FHSAMonthlyTarget.Mul(monthsDec))
		sources = append(sources, domain.ProjectionSource{
			Label: fmt.Sprintf("FHSA contributions (%d years at %s/mo)",
				goalYears, formatMoney(metrics.FHSAMonthlyTarget)),
			Amount: fhsaTotal.Round(0),
		})
	}
	if profile.Accounts.RRSP.Room.IsPositive() {
		// HBP-eligible RRSP contributions start once the first year of debt
		// payoff is behind the user.
		rrspMonths := months - min(12, metrics.PayoffMonths)
		if rrspMonths < 0 {
			rrspMonths = 0
		}
		rrspMonthly := decimal.Max(decimal.Zero, metrics.MonthlySurplus.Mul(rrspSurplusShare).Round(0))
		rrspTotal := decimal.Min(HBPWithdrawalCap, rrspMonthly.Mul(decimal.NewFromInt(int64(rrspMonths))))
		if rrspTotal.IsPositive() {
			sources = append(sources, domain.ProjectionSource{
				Label:  fmt.Sprintf("RRSP contributions for HBP (%d months)", rrspMonths),
				Amount: rrspTotal.Round(0),
			})
		}
	}
	postDebtMonths := months - metrics.PayoffMonths
	if postDebtMonths < 0 {
		postDebtMonths = 0
	}
	tfsaMonthly := decimal.Max(decimal.Zero, metrics.MonthlySurplus.Mul(tfsaSurplusShare).Round(0))
	if postDebtMonths > 0 && tfsaMonthly.IsPositive() {
		sources = append(sources, domain.ProjectionSource{
			Label:  fmt.Sprintf("TFSA contributions (%d months post-debt)", postDebtMonths),
			Amount: tfsaMonthly.Mul(decimal.NewFromInt(int64(postDebtMonths))).Round(0),
		})
	}

	total := decimal.Zero
	for _, s := range sources {
		total = total.Add(s.Amount)
	}
	if !total.IsPositive() {
		return nil
	}
	return &domain.GoalProjection{
		Title:         "Projected Savings Pool",
		Sources:       sources,
		TotalEstimate: total,
		TimelineYears: goalYears,
	}
}
