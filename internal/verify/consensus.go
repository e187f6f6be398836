package verify

import "github.com/veridex/veridex/internal/model"

// ConsensusStrength derives a single 0-1 value for how lopsided the
// credibility-weighted opinion is: the majority bucket's share of all
// stance-bearing weight. It is independent of evidence volume - two sources
// at 0.9 weight split 1/1 yield 0.5 no matter how many neutral items sit
// alongside them. Defined as 0 when no stance-bearing evidence exists.
func ConsensusStrength(signal model.VerificationSignal) float64 {
	total := signal.SupportingWeight + signal.ContradictingWeight
	if total == 0 {
		return 0
	}
	majority := signal.SupportingWeight
	if signal.ContradictingWeight > majority {
		majority = signal.ContradictingWeight
	}
	return majority / total
}

// Consensus wraps the strength value with its claim id.
func Consensus(signal model.VerificationSignal) model.ConsensusResult {
	return model.ConsensusResult{
		ClaimID:           signal.ClaimID,
		ConsensusStrength: ConsensusStrength(signal),
	}
}
