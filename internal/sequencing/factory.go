package sequencing

// CreateStrategy resolves a strategy name. Unknown or empty names fall
// back to avalanche.
func CreateStrategy(name string) PayoffStrategy {
	switch name {
	case "snowball":
		return NewSnowballStrategy()
	case "avalanche":
		return NewAvalancheStrategy()
	default:
		return NewAvalancheStrategy()
	}
}

// SequenceAccounts orders contribution priorities for a snapshot. The
// result is deduplicated and preserves first-seen order: high-interest
// debt (when present) always leads, FHSA slots in for first-time buyers
// with room, and the RRSP/TFSA order flips on tax bracket.
func SequenceAccounts(snapshot AccountSnapshot) []string {
	sequence := []string{}

	if snapshot.HasHighInterestDebt {
		sequence = append(sequence, "High-interest debt payoff")
	}
	if snapshot.FirstTimeHomeBuyer && snapshot.FHSARoom.IsPositive() {
		sequence = append(sequence, "FHSA")
	}
	if snapshot.HighTaxBracket {
		sequence = append(sequence, "RRSP", "TFSA")
	} else {
		sequence = append(sequence, "TFSA", "RRSP")
	}

	seen := make(map[string]bool, len(sequence))
	unique := sequence[:0]
	for _, item := range sequence {
		if seen[item] {
			continue
		}
		seen[item] = true
		unique = append(unique, item)
	}
	return unique
}
