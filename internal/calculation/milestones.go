package calculation

import (
	"fmt"
	"time"

	"github.com/mapleplan/mapleplan/internal/domain"
	"github.com/mapleplan/mapleplan/pkg/dateutil"
	"github.com/shopspring/decimal"
)

type milestoneInputs struct {
	profile          domain.Profile
	metrics          domain.Metrics
	now              time.Time
	starterGap       decimal.Decimal
	fullGap          decimal.Decimal
	hasDebt          bool
	fhsaParallel     bool
	fhsaAllocation   decimal.Decimal
	savingsAmount    decimal.Decimal
	debtAmount       decimal.Decimal
	debtExtra        decimal.Decimal
	investmentAmount decimal.Decimal
	isHomeGoal       bool
	payoffMonths     int
}

// buildMilestones emits the ordered milestone list. Every milestone is
// conditional on the profile's actual gaps; a fully healthy profile with
// no goal-specific room produces a short list, never an error.
func buildMilestones(in milestoneInputs) []domain.Milestone {
	milestones := []domain.Milestone{}
	add := func(m domain.Milestone) {
		m.ID = len(milestones) + 1
		milestones = append(milestones, m)
	}

	if in.starterGap.IsPositive() {
		months := monthsToCover(in.starterGap, in.savingsAmount)
		add(domain.Milestone{
			Title:                   "Build starter emergency fund (1 month)",
			Status:                  domain.MilestoneCurrent,
			TargetAmount:            in.metrics.EmergencyFundTarget1Month,
			TargetLabel:             "1 month of essentials",
			MonthlyContribution:     in.savingsAmount,
			EstimatedTimeline:       fmt.Sprintf("%d months", months),
			EstimatedCompletionDate: dateutil.MonthLabel(in.now, months),
			WhyThisOrder:            "This first buffer prevents new borrowing when a surprise expense hits.",
			ThisWeekAction: fmt.Sprintf(
				"Set up an automatic %s transfer to a high-interest savings account on payday.",
				formatMoney(in.savingsAmount)),
			UnlocksWhen: fmt.Sprintf("Emergency fund reaches %s.",
				formatMoney(in.metrics.EmergencyFundTarget1Month)),
		})
	}

	if in.metrics.EmergencyFundExcess.IsPositive() && !in.starterGap.IsPositive() {
		add(domain.Milestone{
			Title:                   "Reallocate excess emergency savings",
			Status:                  domain.MilestoneCurrent,
			TargetAmount:            in.metrics.EmergencyFundExcess.Round(0),
			TargetLabel:             "Excess above 3-month target",
			MonthlyContribution:     decimal.Zero,
			EstimatedTimeline:       "This month",
			EstimatedCompletionDate: dateutil.MonthLabel(in.now, 1),
			WhyThisOrder: fmt.Sprintf(
				"You have %s months of emergency savings but only need 3 months (%s). The excess %s is earning taxable interest when it could be sheltered in registered accounts.",
				in.metrics.EmergencyFundMonths.Round(0),
				formatMoney(in.metrics.EmergencyFundTarget3Month),
				formatMoney(in.metrics.EmergencyFundExcess)),
			ThisWeekAction: excessReallocationAction(in.metrics),
			UnlocksWhen:    "Emergency fund is right-sized at 3 months of essentials.",
		})
	}

	if in.metrics.FHSAEligible && in.fhsaParallel {
		months := monthsToCover(FHSAAnnualRoom, in.fhsaAllocation)
		title := "Open and fund FHSA this week"
		action := "Open an FHSA this week. Contribution room only accumulates after the account is open."
		if in.metrics.FHSAAccountOpen {
			title = "Fund FHSA ($8,000/year limit)"
			action = fmt.Sprintf("Contribute %s/month to your FHSA to max the $8,000 annual limit.",
				formatMoney(in.fhsaAllocation))
		}
		add(domain.Milestone{
			Title:                   title,
			Status:                  domain.MilestoneCurrent,
			TargetAmount:            FHSAAnnualRoom,
			TargetLabel:             "Annual FHSA limit",
			MonthlyContribution:     in.fhsaAllocation,
			EstimatedTimeline:       fmt.Sprintf("%d months", months),
			EstimatedCompletionDate: dateutil.MonthLabel(in.now, months),
			WhyThisOrder: fmt.Sprintf(
				"FHSA room is use-it-or-lose-it at $8,000/year. Contributions are tax-deductible and withdrawals for a first home are tax-free. At your marginal rate, $8,000 in FHSA contributions generates roughly %s back at tax time.",
				formatMoney(FHSAAnnualRoom.Mul(refundShare))),
			ThisWeekAction: action,
			UnlocksWhen:    "Annual FHSA limit is reached.",
		})
	}

	if in.hasDebt {
		status := domain.MilestoneCurrent
		if in.starterGap.IsPositive() {
			status = domain.MilestoneNext
		}
		months := in.payoffMonths
		if months < 1 {
			months = 1
		}
		add(domain.Milestone{
			Title:                   "Eliminate high-interest debt",
			Status:                  status,
			TargetAmount:            in.metrics.DebtBalance.Round(0),
			TargetLabel:             "Total non-mortgage debt",
			MonthlyContribution:     in.debtAmount,
			EstimatedTimeline:       fmt.Sprintf("%d months", months),
			EstimatedCompletionDate: dateutil.MonthLabel(in.now, months),
			WhyThisOrder: fmt.Sprintf(
				"This debt costs %s/month in interest. Clearing it frees up %s/month for your next priority.",
				formatMoney(in.metrics.MonthlyInterestCost), formatMoney(in.debtAmount)),
			ThisWeekAction: fmt.Sprintf(
				"Set a recurring extra payment of %s on your highest APR debt.",
				formatMoney(decimal.Max(decimal.Zero, in.debtExtra))),
			UnlocksWhen: "All high-interest balances are at $0.",
		})
	}

	if in.metrics.FHSAEligible && !in.fhsaParallel {
		title := "Open FHSA now (setup first)"
		action := "Open an FHSA now, even if your first contribution is later. Room only accumulates after opening."
		if in.metrics.FHSAAccountOpen {
			title = "Fund FHSA ($8,000/year limit)"
			action = "Verify FHSA contribution room and set your first scheduled contribution date."
		}
		add(domain.Milestone{
			Title:                   title,
			Status:                  domain.MilestoneNext,
			TargetAmount:            FHSAAnnualRoom,
			TargetLabel:             "Annual FHSA limit",
			MonthlyContribution:     decimal.Zero,
			EstimatedTimeline:       "After debt is cleared",
			EstimatedCompletionDate: dateutil.MonthLabel(in.now, in.metrics.PayoffMonths+1),
			WhyThisOrder:            "FHSA gives homebuyers tax deductions on contributions and tax-free qualified withdrawals. Open the account now to start accumulating room.",
			ThisWeekAction:          action,
			UnlocksWhen:             "High-interest debt is cleared.",
		})
	}

	if in.fullGap.IsPositive() && !in.starterGap.IsPositive() {
		status := domain.MilestoneNext
		if in.hasDebt {
			status = domain.MilestoneLocked
		}
		months := monthsToCover(in.fullGap, in.savingsAmount)
		add(domain.Milestone{
			Title:                   "Build full emergency buffer (3 months)",
			Status:                  status,
			TargetAmount:            in.metrics.EmergencyFundTarget3Month,
			TargetLabel:             "3 months of essentials",
			MonthlyContribution:     in.savingsAmount,
			EstimatedTimeline:       fmt.Sprintf("%d months", months),
			EstimatedCompletionDate: dateutil.MonthLabel(in.now, months),
			WhyThisOrder:            "Moving to 3 months protects your plan through larger disruptions like job loss.",
			ThisWeekAction: fmt.Sprintf(
				"Keep your automatic savings active and increase by %s if cash flow allows.",
				formatMoney(decimal.Max(decimal.NewFromInt(50), in.savingsAmount.Mul(tfsaSurplusShare).Round(0)))),
			UnlocksWhen: fmt.Sprintf("Emergency buffer reaches %s.",
				formatMoney(in.metrics.EmergencyFundTarget3Month)),
		})
	}

	if in.isHomeGoal && in.profile.Accounts.RRSP.Room.IsPositive() && !in.starterGap.IsPositive() {
		status := domain.MilestoneNext
		if in.hasDebt && !in.fhsaParallel {
			status = domain.MilestoneLocked
		}
		target := decimal.Min(HBPWithdrawalCap, in.profile.Accounts.RRSP.Room.Round(0))
		timeline := "After debt is cleared"
		completion := "After earlier milestones"
		if in.investmentAmount.IsPositive() {
			months := monthsToCover(target, in.investmentAmount)
			timeline = fmt.Sprintf("%d months", months)
			completion = dateutil.MonthLabel(in.now, months)
		}
		add(domain.Milestone{
			Title:                   "Contribute to RRSP for Home Buyers' Plan",
			Status:                  status,
			TargetAmount:            target,
			TargetLabel:             "RRSP room (HBP-eligible up to $60,000)",
			MonthlyContribution:     in.investmentAmount,
			EstimatedTimeline:       timeline,
			EstimatedCompletionDate: completion,
			WhyThisOrder:            "The Home Buyers' Plan lets you withdraw up to $60,000 tax-free from your RRSP for a first home purchase. Contributions also reduce your taxable income this year. Note: you must repay HBP withdrawals over 15 years ($4,000/year minimum).",
			ThisWeekAction:          "Direct surplus to your RRSP after FHSA is funded for the month. Mark contributions as HBP-eligible.",
			UnlocksWhen:             "FHSA contributions are on track.",
		})
	}

	if !in.isHomeGoal || !in.metrics.FHSAEligible {
		status := domain.MilestoneNext
		if in.starterGap.IsPositive() || (in.hasDebt && !in.fhsaParallel) {
			status = domain.MilestoneLocked
		}
		room := in.profile.Accounts.TFSA.Room.Add(in.profile.Accounts.RRSP.Room).Round(0)
		timeline := "After safety milestones"
		completion := "After safety milestones"
		if in.investmentAmount.IsPositive() {
			months := monthsToCover(room, in.investmentAmount)
			timeline = fmt.Sprintf("%d months", months)
			completion = dateutil.MonthLabel(in.now, months)
		}
		add(domain.Milestone{
			Title:                   "Fund TFSA and RRSP in tax-aware order",
			Status:                  status,
			TargetAmount:            room,
			TargetLabel:             "Registered account room",
			MonthlyContribution:     in.investmentAmount,
			EstimatedTimeline:       timeline,
			EstimatedCompletionDate: completion,
			WhyThisOrder:            "Once stable and debt-light, tax-advantaged accounts accelerate long-term progress.",
			ThisWeekAction: fmt.Sprintf(
				"Set a %s monthly transfer to your primary registered account.",
				formatMoney(decimal.Max(minStarterSavings, in.investmentAmount))),
			UnlocksWhen: "Emergency fund and debt milestones are complete.",
		})
	}

	return milestones
}

func excessReallocationAction(metrics domain.Metrics) string {
	excess := metrics.EmergencyFundExcess.Round(0)
	if !metrics.FHSAEligible {
		return fmt.Sprintf(
			"Move %s from your HISA to your TFSA or RRSP for tax-sheltered growth.",
			formatMoney(excess))
	}
	if metrics.FHSAAccountOpen {
		return fmt.Sprintf(
			"Move up to %s from your HISA to your FHSA, then consider RRSP for HBP eligibility.",
			formatMoney(decimal.Min(excess, metrics.FHSARoom.Round(0))))
	}
	return fmt.Sprintf(
		"Open your FHSA this week, then move up to %s from your HISA to start building your down payment fund.",
		formatMoney(decimal.Min(excess, FHSAAnnualRoom)))
}

// monthsToCover is ceil(gap / monthly) with a floor of 1 month; a zero
// monthly contribution counts as 1 so the division never degenerates.
func monthsToCover(gap, monthly decimal.Decimal) int {
	months := int(gap.Div(decimal.Max(monthly, one)).Ceil().IntPart())
	if months < 1 {
		return 1
	}
	return months
}
