package decide

import (
	"fmt"
	"math"

	"github.com/veridex/veridex/internal/model"
)

// Policy applies ordered, multi-criteria checks to decide whether the
// evidence justifies a definitive verdict or the engine should abstain.
// "We don't know" is a correct and expected answer here, not a failure, so
// every abstention carries a specific, human-readable reason.
type Policy struct {
	MinSourcesForVerdict      int
	MinHighCredibilitySources int
	MinCredibilityThreshold   float64
	MinConsensusStrength      float64
}

// NewPolicy creates a policy from threshold configuration.
func NewPolicy(t model.ThresholdConfig) *Policy {
	return &Policy{
		MinSourcesForVerdict:      t.MinSourcesForVerdict,
		MinHighCredibilitySources: t.MinHighCredibilitySources,
		MinCredibilityThreshold:   t.MinCredibilityThreshold,
		MinConsensusStrength:      t.MinConsensusStrength,
	}
}

// Decide runs the ordered checks, first match wins. Pure decision function:
// no side effects, no I/O, and the evidence set is treated as immutable from
// here on. outdated is the temporal-context collaborator's judgment that the
// claim's subject matter is stale.
func (p *Policy) Decide(items []model.EvidenceItem, signal model.VerificationSignal, consensus model.ConsensusResult, outdated bool) model.Verdict {
	verdict := model.Verdict{
		ClaimID:           signal.ClaimID,
		ConsensusStrength: consensus.ConsensusStrength,
		EvidenceIDsUsed:   evidenceIDs(items),
	}

	// 1. Too few sources to say anything at all.
	if len(items) < p.MinSourcesForVerdict {
		verdict.Outcome = model.OutcomeInsufficientEvidence
		verdict.AbstentionReason = fmt.Sprintf(
			"only %d source(s) available; at least %d required for a verdict",
			len(items), p.MinSourcesForVerdict)
		return verdict
	}

	// 2. Sources exist but none of them is credible enough to anchor a verdict.
	if signal.HighCredibilityCount < p.MinHighCredibilitySources {
		verdict.Outcome = model.OutcomeInsufficientEvidence
		verdict.AbstentionReason = fmt.Sprintf(
			"no source meets the credibility bar: best source scored %.2f, %.2f required (%d high-credibility source(s) needed)",
			highestCredibility(items), p.MinCredibilityThreshold, p.MinHighCredibilitySources)
		return verdict
	}

	// 3. Weighted opinion is too evenly split.
	if consensus.ConsensusStrength < p.MinConsensusStrength {
		verdict.Outcome = model.OutcomeConflictingExpertOpinion
		verdict.AbstentionReason = fmt.Sprintf(
			"sources disagree: consensus strength %.2f is below the %.2f threshold (supporting weight %.2f vs contradicting %.2f)",
			consensus.ConsensusStrength, p.MinConsensusStrength,
			signal.SupportingWeight, signal.ContradictingWeight)
		return verdict
	}

	// 4. High-credibility sources disagree among themselves. A numerically
	// strong majority among low-credibility sources must not override
	// expert disagreement, even when check 3 passed.
	if support, contradict := highCredibilityStances(items, p.MinCredibilityThreshold); support > 0 && contradict > 0 {
		verdict.Outcome = model.OutcomeConflictingExpertOpinion
		verdict.AbstentionReason = fmt.Sprintf(
			"high-credibility sources disagree: %d supporting and %d contradicting source(s) at credibility >= %.2f",
			support, contradict, p.MinCredibilityThreshold)
		return verdict
	}

	// 5. The claim's subject matter has been marked stale.
	if outdated {
		verdict.Outcome = model.OutcomeOutdatedClaim
		verdict.AbstentionReason = "the claim's subject matter has been marked outdated; current evidence may not reflect the situation it describes"
		return verdict
	}

	// 6. Render the aggregated stance.
	verdict.Outcome = renderOutcome(signal.OverallStance)
	verdict.Confidence = confidence(consensus.ConsensusStrength, items)
	return verdict
}

func renderOutcome(stance model.OverallStance) model.Outcome {
	switch stance {
	case model.StanceSupported:
		return model.OutcomeSupported
	case model.StanceContradicted:
		return model.OutcomeContradicted
	default:
		return model.OutcomeUncertain
	}
}

// confidence maps consensus strength and evidence quality to a 0-100 value.
// Monotonic in both inputs: base 50 + 50*consensus, scaled by the mean
// effective credibility of stance-bearing evidence.
func confidence(consensus float64, items []model.EvidenceItem) float64 {
	quality := 0.0
	count := 0
	for i := range items {
		if items[i].HasStance() {
			quality += items[i].CredibilityScore()
			count++
		}
	}
	if count == 0 {
		return 0
	}
	quality /= float64(count)

	c := math.Round((50 + 50*consensus) * quality)
	if c < 0 {
		return 0
	}
	if c > 100 {
		return 100
	}
	return c
}

func evidenceIDs(items []model.EvidenceItem) []string {
	ids := make([]string, 0, len(items))
	for i := range items {
		if items[i].ID != "" {
			ids = append(ids, items[i].ID)
		}
	}
	return ids
}

func highestCredibility(items []model.EvidenceItem) float64 {
	best := 0.0
	for i := range items {
		if score := items[i].CredibilityScore(); score > best {
			best = score
		}
	}
	return best
}

// highCredibilityStances counts supporting and contradicting items among
// high-credibility evidence only.
func highCredibilityStances(items []model.EvidenceItem, threshold float64) (support, contradict int) {
	for i := range items {
		if items[i].CredibilityScore() < threshold {
			continue
		}
		switch items[i].Stance {
		case model.StanceSupporting:
			support++
		case model.StanceContradicting:
			contradict++
		}
	}
	return support, contradict
}
