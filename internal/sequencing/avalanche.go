package sequencing

import "sort"

// AvalancheStrategy: highest APR first. Minimizes total interest paid and
// is the default when no preference is stated.
type AvalancheStrategy struct{}

func NewAvalancheStrategy() *AvalancheStrategy { return &AvalancheStrategy{} }

func (s *AvalancheStrategy) Name() string { return "avalanche" }

func (s *AvalancheStrategy) SortCandidates(candidates []*DebtState) {
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].APR.GreaterThan(candidates[j].APR)
	})
}
