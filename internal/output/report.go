package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/mapleplan/mapleplan/internal/domain"
	"github.com/shopspring/decimal"
)

// ReportGenerator renders composed plans in the supported output formats.
type ReportGenerator struct{}

// NewReportGenerator creates a new report generator.
func NewReportGenerator() *ReportGenerator {
	return &ReportGenerator{}
}

// GenerateReport writes the plan to w in the requested format.
func GenerateReport(w io.Writer, plan *domain.Plan, metrics domain.Metrics, format string) error {
	generator := NewReportGenerator()

	switch format {
	case "console", "":
		return generator.GenerateConsoleReport(w, plan, metrics)
	case "json":
		return generator.GenerateJSONReport(w, plan)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

// GenerateConsoleReport renders a readable plan summary.
func (rg *ReportGenerator) GenerateConsoleReport(w io.Writer, plan *domain.Plan, metrics domain.Metrics) error {
	line := strings.Repeat("=", 72)

	fmt.Fprintln(w, line)
	fmt.Fprintln(w, "FINANCIAL PLAN")
	fmt.Fprintln(w, line)
	fmt.Fprintf(w, "Goal:  %s\n", plan.Goal)
	fmt.Fprintf(w, "Level: %d (%s)\n", plan.FinancialLevel, plan.FinancialLevelLabel)
	fmt.Fprintln(w)
	fmt.Fprintln(w, plan.CoachOpening)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "GOAL READINESS")
	fmt.Fprintln(w, strings.Repeat("-", 72))
	fmt.Fprintf(w, "%s\n%s\n%s\n\n", plan.GoalReadiness.Headline, plan.GoalReadiness.Reason, plan.GoalReadiness.FocusNow)

	fmt.Fprintln(w, "MONTHLY BUCKETS")
	fmt.Fprintln(w, strings.Repeat("-", 72))
	fmt.Fprintf(w, "Fixed:       %s (%d%%)\n", FormatCurrency(plan.Buckets.Fixed.Amount), plan.Buckets.Fixed.Percent)
	fmt.Fprintf(w, "Savings:     %s (%d%%)\n", FormatCurrency(plan.Buckets.Savings.Amount), plan.Buckets.Savings.Percent)
	fmt.Fprintf(w, "Investments: %s (%d%%)\n", FormatCurrency(plan.Buckets.Investments.Amount), plan.Buckets.Investments.Percent)
	fmt.Fprintf(w, "Guilt-free:  %s (%d%%)\n\n", FormatCurrency(plan.Buckets.GuiltFree.Amount), plan.Buckets.GuiltFree.Percent)

	if metrics.DebtBalance.IsPositive() {
		fmt.Fprintln(w, "DEBT PAYOFF")
		fmt.Fprintln(w, strings.Repeat("-", 72))
		fmt.Fprintf(w, "Strategy:       %s\n", plan.DebtProjection.Strategy)
		fmt.Fprintf(w, "Months to free: %d\n", plan.DebtProjection.Months)
		fmt.Fprintf(w, "Total interest: %s\n", FormatCurrency(plan.DebtProjection.TotalInterest))
		if len(plan.DebtProjection.Order) > 0 {
			fmt.Fprintf(w, "Payoff order:   %s\n", strings.Join(plan.DebtProjection.Order, " -> "))
		}
		if plan.DebtFreeDate != nil {
			fmt.Fprintf(w, "Debt-free by:   %s\n", *plan.DebtFreeDate)
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, "ACCOUNT PRIORITY")
	fmt.Fprintln(w, strings.Repeat("-", 72))
	fmt.Fprintln(w, strings.Join(plan.AccountSequence, " -> "))
	fmt.Fprintln(w)

	fmt.Fprintln(w, "MILESTONES")
	fmt.Fprintln(w, strings.Repeat("-", 72))
	for _, m := range plan.Milestones {
		fmt.Fprintf(w, "%d. [%s] %s\n", m.ID, m.Status, m.Title)
		fmt.Fprintf(w, "   Target: %s (%s), %s/month, %s (est. %s)\n",
			FormatCurrency(m.TargetAmount), m.TargetLabel,
			FormatCurrency(m.MonthlyContribution), m.EstimatedTimeline, m.EstimatedCompletionDate)
		fmt.Fprintf(w, "   Why: %s\n", m.WhyThisOrder)
		fmt.Fprintf(w, "   This week: %s\n", m.ThisWeekAction)
	}
	fmt.Fprintln(w)

	if plan.GoalProjection != nil {
		fmt.Fprintf(w, "%s (%d years)\n", plan.GoalProjection.Title, plan.GoalProjection.TimelineYears)
		fmt.Fprintln(w, strings.Repeat("-", 72))
		for _, source := range plan.GoalProjection.Sources {
			fmt.Fprintf(w, "%-55s %s\n", source.Label, FormatCurrency(source.Amount))
		}
		fmt.Fprintf(w, "%-55s %s\n\n", "Total estimate", FormatCurrency(plan.GoalProjection.TotalEstimate))
	}

	fmt.Fprintln(w, plan.OpportunityCost)
	fmt.Fprintf(w, "Read next: %q by %s (%s)\n\n", plan.BookRecommendation.Title,
		plan.BookRecommendation.Author, plan.BookRecommendation.Reason)

	fmt.Fprintln(w, "ASSUMPTIONS")
	fmt.Fprintln(w, strings.Repeat("-", 72))
	for _, a := range plan.Assumptions {
		fmt.Fprintf(w, "- %s\n", a)
	}
	return nil
}

// GenerateJSONReport writes the plan as indented JSON.
func (rg *ReportGenerator) GenerateJSONReport(w io.Writer, plan *domain.Plan) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(plan)
}

// FormatCurrency formats a decimal as currency
func FormatCurrency(amount decimal.Decimal) string {
	return "$" + amount.StringFixed(2)
}

// FormatPercentage formats a decimal as percentage
func FormatPercentage(amount decimal.Decimal) string {
	return amount.StringFixed(2) + "%"
}
