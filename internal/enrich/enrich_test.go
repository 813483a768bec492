package enrich

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mapleplan/mapleplan/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func basePlan() *domain.Plan {
	return &domain.Plan{
		CoachOpening:    "deterministic opening",
		OpportunityCost: "deterministic opportunity text",
		Milestones: []domain.Milestone{
			{
				Title:          "Build starter emergency fund (1 month)",
				TargetAmount:   decimal.NewFromInt(3000),
				WhyThisOrder:   "deterministic why",
				ThisWeekAction: "deterministic action",
			},
		},
		BookRecommendation: domain.BookRecommendation{
			Title: "The Psychology of Money", Author: "Morgan Housel",
		},
		Assumptions: []string{"original assumption"},
	}
}

func TestApplyOverwritesNarrativeFields(t *testing.T) {
	plan := basePlan()
	Apply(plan, &PartialPlan{
		CoachOpening: "warmer opening",
		Milestones: []PartialMilestone{
			{WhyThisOrder: "friendlier why", ThisWeekAction: "friendlier action"},
		},
		Assumptions: []string{"new assumption", "another"},
	})

	assert.Equal(t, "warmer opening", plan.CoachOpening)
	assert.Equal(t, "friendlier why", plan.Milestones[0].WhyThisOrder)
	assert.Equal(t, "friendlier action", plan.Milestones[0].ThisWeekAction)
	assert.Equal(t, []string{"new assumption", "another"}, plan.Assumptions)
}

func TestApplySkipsEmptyAndMalformedFields(t *testing.T) {
	plan := basePlan()
	Apply(plan, &PartialPlan{
		CoachOpening:       "   ",
		BookRecommendation: &domain.BookRecommendation{Title: "No author"},
		Assumptions:        []string{"ok", "  "},
		Milestones: []PartialMilestone{
			{WhyThisOrder: ""},
		},
	})

	assert.Equal(t, "deterministic opening", plan.CoachOpening)
	assert.Equal(t, "Morgan Housel", plan.BookRecommendation.Author)
	assert.Equal(t, []string{"original assumption"}, plan.Assumptions)
	assert.Equal(t, "deterministic why", plan.Milestones[0].WhyThisOrder)
}

// Numbers are outside the writable surface entirely; extra milestone
// rewrites past the end of the plan are dropped.
func TestApplyPreservesNumbersAndBounds(t *testing.T) {
	plan := basePlan()
	Apply(plan, &PartialPlan{
		Milestones: []PartialMilestone{
			{WhyThisOrder: "first"},
			{WhyThisOrder: "no matching milestone"},
		},
	})

	require.Len(t, plan.Milestones, 1)
	assert.True(t, plan.Milestones[0].TargetAmount.Equal(decimal.NewFromInt(3000)))
	assert.Equal(t, "first", plan.Milestones[0].WhyThisOrder)
}

func TestApplyNilSafe(t *testing.T) {
	Apply(nil, &PartialPlan{CoachOpening: "x"})
	plan := basePlan()
	Apply(plan, nil)
	assert.Equal(t, "deterministic opening", plan.CoachOpening)
}

type stubEnricher struct {
	partial *PartialPlan
	err     error
	delay   time.Duration
}

func (s stubEnricher) EnrichPlan(ctx context.Context, _ domain.Profile, _ domain.Metrics, _ *domain.Plan) (*PartialPlan, error) {
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return s.partial, s.err
}

func TestEnrichApplies(t *testing.T) {
	plan := basePlan()
	ok := Enrich(context.Background(), stubEnricher{
		partial: &PartialPlan{CoachOpening: "enriched"},
	}, time.Second, domain.Profile{}, domain.Metrics{}, plan)

	assert.True(t, ok)
	assert.Equal(t, "enriched", plan.CoachOpening)
}

func TestEnrichTimeoutFallsBack(t *testing.T) {
	plan := basePlan()
	ok := Enrich(context.Background(), stubEnricher{
		partial: &PartialPlan{CoachOpening: "too late"},
		delay:   200 * time.Millisecond,
	}, 20*time.Millisecond, domain.Profile{}, domain.Metrics{}, plan)

	assert.False(t, ok)
	assert.Equal(t, "deterministic opening", plan.CoachOpening)
}

func TestEnrichErrorFallsBack(t *testing.T) {
	plan := basePlan()
	ok := Enrich(context.Background(), stubEnricher{
		err: errors.New("model unavailable"),
	}, time.Second, domain.Profile{}, domain.Metrics{}, plan)

	assert.False(t, ok)
	assert.Equal(t, "deterministic opening", plan.CoachOpening)
}

func TestEnrichNilEnricher(t *testing.T) {
	plan := basePlan()
	assert.False(t, Enrich(context.Background(), nil, time.Second, domain.Profile{}, domain.Metrics{}, plan))
}
