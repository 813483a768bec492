package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Milestone status values. A milestone is current when it should be worked
// on now, next when it follows directly, locked when an earlier milestone
// gates it.
const (
	MilestoneCurrent = "current"
	MilestoneNext    = "next"
	MilestoneLocked  = "locked"
)

// Debt payoff strategies.
const (
	StrategyAvalanche = "avalanche"
	StrategySnowball  = "snowball"
)

// Plan is the composed output of one planning request. It is created fresh
// per request and never mutated afterwards, except by the enrichment step
// overwriting whitelisted narrative fields.
type Plan struct {
	FinancialLevel      int                `json:"financialLevel"`
	FinancialLevelLabel string             `json:"financialLevelLabel"`
	Goal                string             `json:"goal"`
	GoalReadiness       GoalReadiness      `json:"goalReadiness"`
	CoachOpening        string             `json:"coachOpening"`
	Milestones          []Milestone        `json:"milestones"`
	GoalProjection      *GoalProjection    `json:"goalProjection,omitempty"`
	Buckets             PlanBuckets        `json:"buckets"`
	DebtProjection      DebtProjection     `json:"debtProjection"`
	AccountSequence     []string           `json:"accountSequence"`
	DebtFreeDate        *string            `json:"debtFreeDate"`
	OpportunityCost     string             `json:"opportunityCost"`
	BookRecommendation  BookRecommendation `json:"bookRecommendation"`
	Assumptions         []string           `json:"assumptions"`
}

// GoalReadiness is the verdict on whether the stated goal can be pursued
// immediately. Exactly one narrative branch produces it.
type GoalReadiness struct {
	CanAchieveNow bool   `json:"canAchieveNow"`
	Headline      string `json:"headline"`
	Reason        string `json:"reason"`
	FocusNow      string `json:"focusNow"`
}

// Milestone is one ordered step of the plan with a concrete dollar target
// and a this-week action.
type Milestone struct {
	ID                      int             `json:"id"`
	Title                   string          `json:"title"`
	Status                  string          `json:"status"`
	TargetAmount            decimal.Decimal `json:"targetAmount"`
	TargetLabel             string          `json:"targetLabel"`
	MonthlyContribution     decimal.Decimal `json:"monthlyContribution"`
	EstimatedTimeline       string          `json:"estimatedTimeline"`
	EstimatedCompletionDate string          `json:"estimatedCompletionDate"`
	WhyThisOrder            string          `json:"whyThisOrder"`
	ThisWeekAction          string          `json:"thisWeekAction"`
	UnlocksWhen             string          `json:"unlocksWhen"`
}

// GoalProjection aggregates contribution sources over a parsed goal window.
type GoalProjection struct {
	Title         string             `json:"title"`
	Sources       []ProjectionSource `json:"sources"`
	TotalEstimate decimal.Decimal    `json:"totalEstimate"`
	TimelineYears int                `json:"timelineYears"`
}

type ProjectionSource struct {
	Label  string          `json:"label"`
	Amount decimal.Decimal `json:"amount"`
}

// PlanBuckets are the four monthly spending buckets as they appear in a
// composed plan, each with a whole-number percent of income.
type PlanBuckets struct {
	Fixed       PlanBucket `json:"fixed"`
	Savings     PlanBucket `json:"savings"`
	Investments PlanBucket `json:"investments"`
	GuiltFree   PlanBucket `json:"guiltFree"`
}

type PlanBucket struct {
	Percent int64           `json:"percent"`
	Amount  decimal.Decimal `json:"amount"`
}

// BucketAllocation is the standalone allocator output with exact 2dp
// amounts and percentage ratios.
type BucketAllocation struct {
	Fixed       decimal.Decimal `json:"fixed"`
	Investments decimal.Decimal `json:"investments"`
	Savings     decimal.Decimal `json:"savings"`
	GuiltFree   decimal.Decimal `json:"guiltFree"`
	Ratios      BucketRatios    `json:"ratios"`
}

// BucketRatios are percentages rounded to 2 decimal places.
type BucketRatios struct {
	Fixed       decimal.Decimal `json:"fixed"`
	Investments decimal.Decimal `json:"investments"`
	Savings     decimal.Decimal `json:"savings"`
	GuiltFree   decimal.Decimal `json:"guiltFree"`
}

// DebtProjection is the simulator result for one strategy.
type DebtProjection struct {
	Months        int             `json:"months"`
	TotalInterest decimal.Decimal `json:"totalInterest"`
	Strategy      string          `json:"strategy"`
	Order         []string        `json:"order"`
}

// StrategyComparison holds both simulator runs plus the savings the
// avalanche ordering yields over snowball.
type StrategyComparison struct {
	Avalanche     DebtProjection  `json:"avalanche"`
	Snowball      DebtProjection  `json:"snowball"`
	InterestSaved decimal.Decimal `json:"interestSaved"`
	MonthsSaved   int             `json:"monthsSaved"`
}

// LevelAssessment is a discrete financial maturity classification with a
// suggested next step.
type LevelAssessment struct {
	Level int    `json:"level"`
	Name  string `json:"name"`
	Next  string `json:"next"`
}

type BookRecommendation struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	Reason string `json:"reason"`
}

// PlanRecord is the persisted envelope a plan store works with. The store
// treats Plan as an opaque blob; only the ids and timestamp are meaningful
// to it.
type PlanRecord struct {
	ID        string    `json:"id"`
	ClientID  string    `json:"clientId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	Intake    RawIntake `json:"intakeData"`
	Plan      *Plan     `json:"planData"`
}
