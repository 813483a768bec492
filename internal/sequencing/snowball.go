package sequencing

import "sort"

// SnowballStrategy: smallest balance first. Pays slightly more interest
// than avalanche but clears whole debts sooner, which keeps people going.
type SnowballStrategy struct{}

func NewSnowballStrategy() *SnowballStrategy { return &SnowballStrategy{} }

func (s *SnowballStrategy) Name() string { return "snowball" }

func (s *SnowballStrategy) SortCandidates(candidates []*DebtState) {
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Balance.LessThan(candidates[j].Balance)
	})
}
