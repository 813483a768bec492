// Package enrich is the boundary to an optional language-model service
// that may reword the narrative parts of a composed plan. The
// deterministic plan is always valid on its own: enrichment can only
// overwrite a whitelist of narrative string fields, never a computed
// number, and any failure or timeout falls back to the plan untouched.
package enrich

import (
	"context"
	"strings"
	"time"

	"github.com/mapleplan/mapleplan/internal/domain"
)

// DefaultTimeout bounds how long a plan request waits on enrichment
// before shipping the deterministic plan verbatim.
const DefaultTimeout = 15 * time.Second

// Enricher produces a partial plan from read-only context. Implementations
// wrap an external model; returning an error or nil partial is normal and
// simply skips enrichment.
type Enricher interface {
	EnrichPlan(ctx context.Context, profile domain.Profile, metrics domain.Metrics, plan *domain.Plan) (*PartialPlan, error)
}

// PartialPlan is the whitelisted narrative surface an enricher may
// overwrite. Empty fields leave the deterministic text in place.
type PartialPlan struct {
	CoachOpening       string                     `json:"coachOpening,omitempty"`
	OpportunityCost    string                     `json:"opportunityCost,omitempty"`
	BookRecommendation *domain.BookRecommendation `json:"bookRecommendation,omitempty"`
	Assumptions        []string                   `json:"assumptions,omitempty"`
	Milestones         []PartialMilestone         `json:"milestones,omitempty"`
}

// PartialMilestone rewrites match milestones by position. Only the two
// narrative fields are writable.
type PartialMilestone struct {
	WhyThisOrder   string `json:"whyThisOrder,omitempty"`
	ThisWeekAction string `json:"thisWeekAction,omitempty"`
}

// Apply merges a partial plan onto a deterministic plan. Only well-typed
// values land: non-empty strings, a fully populated book recommendation,
// a non-empty assumption list with no blank entries. Numeric fields are
// untouchable by construction.
func Apply(plan *domain.Plan, partial *PartialPlan) {
	if plan == nil || partial == nil {
		return
	}
	if s := strings.TrimSpace(partial.CoachOpening); s != "" {
		plan.CoachOpening = s
	}
	if s := strings.TrimSpace(partial.OpportunityCost); s != "" {
		plan.OpportunityCost = s
	}
	if b := partial.BookRecommendation; b != nil &&
		strings.TrimSpace(b.Title) != "" && strings.TrimSpace(b.Author) != "" {
		plan.BookRecommendation = *b
	}
	if validAssumptions(partial.Assumptions) {
		plan.Assumptions = partial.Assumptions
	}
	for i, pm := range partial.Milestones {
		if i >= len(plan.Milestones) {
			break
		}
		if s := strings.TrimSpace(pm.WhyThisOrder); s != "" {
			plan.Milestones[i].WhyThisOrder = s
		}
		if s := strings.TrimSpace(pm.ThisWeekAction); s != "" {
			plan.Milestones[i].ThisWeekAction = s
		}
	}
}

// Enrich runs the enricher against a deadline and applies whatever comes
// back in time. The deterministic plan is returned either way; the bool
// reports whether enrichment landed.
func Enrich(ctx context.Context, enricher Enricher, timeout time.Duration, profile domain.Profile, metrics domain.Metrics, plan *domain.Plan) bool {
	if enricher == nil || plan == nil {
		return false
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type result struct {
		partial *PartialPlan
		err     error
	}
	done := make(chan result, 1)
	go func() {
		partial, err := enricher.EnrichPlan(ctx, profile, metrics, plan)
		done <- result{partial, err}
	}()

	select {
	case <-ctx.Done():
		return false
	case res := <-done:
		if res.err != nil || res.partial == nil {
			return false
		}
		Apply(plan, res.partial)
		return true
	}
}

func validAssumptions(assumptions []string) bool {
	if len(assumptions) == 0 {
		return false
	}
	for _, a := range assumptions {
		if strings.TrimSpace(a) == "" {
			return false
		}
	}
	return true
}
