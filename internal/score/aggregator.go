package score

import (
	"math"

	"github.com/veridex/veridex/internal/model"
)

// verdictValues is the fixed mapping from outcome to score contribution.
var verdictValues = map[model.Outcome]float64{
	model.OutcomeSupported:                100,
	model.OutcomeUncertain:                40,
	model.OutcomeInsufficientEvidence:     30,
	model.OutcomeContradicted:             0,
	model.OutcomeConflictingExpertOpinion: 40,
	model.OutcomeOutdatedClaim:            30,
}

// NeutralScore is the check score when every claim abstained and no weight
// exists to average over.
const NeutralScore = 50

// Aggregator rolls per-claim verdicts into one check-level credibility
// score. Each verdict contributes value*weight where the weight combines
// confidence and evidence quality, so a single high-confidence, high-quality
// supported claim outweighs several low-confidence uncertain ones. A flat
// unweighted mean of verdict values is deliberately not used.
type Aggregator struct{}

// NewAggregator creates a check-score aggregator.
func NewAggregator() *Aggregator {
	return &Aggregator{}
}

// AggregateCheck computes the check-level credibility score from all claim
// results. The check score is created once all claim verdicts exist and is
// immutable thereafter; re-evaluation means a new check.
func (a *Aggregator) AggregateCheck(checkID string, results []model.ClaimResult) model.CheckScore {
	verdicts := make([]model.Verdict, 0, len(results))
	var weightedSum, totalWeight float64

	for _, result := range results {
		verdicts = append(verdicts, result.Verdict)

		weight := claimWeight(result)
		if weight <= 0 {
			continue
		}
		weightedSum += verdictValues[result.Verdict.Outcome] * weight
		totalWeight += weight
	}

	score := float64(NeutralScore)
	if totalWeight > 0 {
		score = math.Round(weightedSum / totalWeight)
	}

	return model.CheckScore{
		CheckID:          checkID,
		CredibilityScore: score,
		ClaimVerdicts:    verdicts,
	}
}

// claimWeight is (confidence/100) * mean effective credibility of the
// claim's evidence. Abstentions carry zero confidence and therefore zero
// weight.
func claimWeight(result model.ClaimResult) float64 {
	return (result.Verdict.Confidence / 100) * averageCredibility(result.Evidence)
}

func averageCredibility(items []model.EvidenceItem) float64 {
	if len(items) == 0 {
		return 0
	}
	var sum float64
	for i := range items {
		sum += items[i].CredibilityScore()
	}
	return sum / float64(len(items))
}
