// Package sequencing holds the ordering strategies the debt payoff
// simulator picks its monthly extra-payment target with, plus the
// registered-account priority ordering.
package sequencing

import "github.com/shopspring/decimal"

// DebtState is one debt's live balance inside a payoff simulation. The
// simulator works on its own copy; a DebtState never aliases the caller's
// debt list.
type DebtState struct {
	Name    string
	Balance decimal.Decimal
	APR     decimal.Decimal
	Minimum decimal.Decimal
}

// PayoffStrategy orders the remaining debts so the first entry receives
// the month's extra payment.
type PayoffStrategy interface {
	Name() string
	SortCandidates(candidates []*DebtState)
}

// AccountSnapshot carries the facts the account sequencer orders
// registered-account priorities from.
type AccountSnapshot struct {
	HasHighInterestDebt bool
	FirstTimeHomeBuyer  bool
	HighTaxBracket      bool
	FHSARoom            decimal.Decimal
}
