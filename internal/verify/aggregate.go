package verify

import "github.com/veridex/veridex/internal/model"

// Aggregator combines per-evidence NLI stances into a claim-level,
// credibility-weighted support/contradiction signal. A weighted vote is the
// central correctness property here: three tabloid blogs must not outvote
// one wire-service contradiction.
type Aggregator struct {
	// MinCredibilityThreshold is the effective-credibility floor for an item
	// to count toward the high-credibility count.
	MinCredibilityThreshold float64

	// MinEntailment is the entailment floor for committing to a
	// supported/contradicted overall stance.
	MinEntailment float64
}

// NewAggregator creates an aggregator with the given thresholds.
func NewAggregator(minCredibility, minEntailment float64) *Aggregator {
	return &Aggregator{
		MinCredibilityThreshold: minCredibility,
		MinEntailment:           minEntailment,
	}
}

// Aggregate computes the verification signal for one claim's evidence set.
// Items with a supporting or contradicting stance add their effective
// credibility to the matching weight bucket; neutral and unlabeled items
// only count toward the neutral tally.
func (a *Aggregator) Aggregate(claimID string, items []model.EvidenceItem) model.VerificationSignal {
	signal := model.VerificationSignal{
		ClaimID:            claimID,
		TotalEvidenceCount: len(items),
	}

	for i := range items {
		item := &items[i]
		cred := item.CredibilityScore()

		if cred >= a.MinCredibilityThreshold {
			signal.HighCredibilityCount++
		}

		switch item.Stance {
		case model.StanceSupporting:
			signal.SupportingWeight += cred
			if ent := item.Entailment(); ent > signal.MaxEntailment {
				signal.MaxEntailment = ent
			}
		case model.StanceContradicting:
			signal.ContradictingWeight += cred
			if ent := item.Entailment(); ent > signal.MaxContradiction {
				signal.MaxContradiction = ent
			}
		default:
			// Missing stance is data quality, not an error: treat as neutral.
			signal.NeutralCount++
		}
	}

	signal.OverallStance = a.overallStance(signal)
	return signal
}

func (a *Aggregator) overallStance(s model.VerificationSignal) model.OverallStance {
	switch {
	case s.SupportingWeight > s.ContradictingWeight && s.MaxEntailment > a.MinEntailment:
		return model.StanceSupported
	case s.ContradictingWeight > s.SupportingWeight && s.MaxContradiction > a.MinEntailment:
		return model.StanceContradicted
	default:
		return model.StanceUncertain
	}
}
