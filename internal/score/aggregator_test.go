package score

import (
	"math"
	"testing"

	"github.com/veridex/veridex/internal/model"
)

func claimResult(outcome model.Outcome, confidence, credibility float64) model.ClaimResult {
	return model.ClaimResult{
		Verdict: model.Verdict{
			Outcome:    outcome,
			Confidence: confidence,
		},
		Evidence: []model.EvidenceItem{
			{ID: "ev", IndependencePenalty: 1.0, SourceProfile: model.SourceProfile{Credibility: credibility}},
		},
	}
}

func TestAggregateCheck_WeightedByConfidenceAndQuality(t *testing.T) {
	agg := NewAggregator()

	// One confident, well-sourced supported claim against one shaky
	// contradicted claim. The check score must sit closer to 100 than the
	// flat mean of (100+0)/2 = 50 would suggest.
	results := []model.ClaimResult{
		claimResult(model.OutcomeSupported, 90, 0.9),
		claimResult(model.OutcomeContradicted, 40, 0.4),
	}

	cs := agg.AggregateCheck("check-1", results)

	// weights: 0.9*0.9 = 0.81 and 0.4*0.4 = 0.16
	want := math.Round((100*0.81 + 0*0.16) / (0.81 + 0.16))
	if cs.CredibilityScore != want {
		t.Errorf("score = %g, want %g", cs.CredibilityScore, want)
	}
	if cs.CredibilityScore <= 50 {
		t.Errorf("score = %g, confident supported claim must pull above the flat mean", cs.CredibilityScore)
	}
}

func TestAggregateCheck_MixedVerdicts(t *testing.T) {
	agg := NewAggregator()

	results := []model.ClaimResult{
		claimResult(model.OutcomeSupported, 85, 0.85),
		claimResult(model.OutcomeSupported, 70, 0.8),
		claimResult(model.OutcomeUncertain, 40, 0.6),
		claimResult(model.OutcomeContradicted, 80, 0.8),
		claimResult(model.OutcomeInsufficientEvidence, 0, 0.5),
	}

	cs := agg.AggregateCheck("check-2", results)

	if cs.CredibilityScore < 0 || cs.CredibilityScore > 100 {
		t.Fatalf("score %g outside [0,100]", cs.CredibilityScore)
	}
	if cs.CredibilityScore != math.Round(cs.CredibilityScore) {
		t.Errorf("score %g not rounded to an integer", cs.CredibilityScore)
	}
	if len(cs.ClaimVerdicts) != 5 {
		t.Errorf("verdicts carried = %d, want all 5 including abstentions", len(cs.ClaimVerdicts))
	}

	// The abstained claim has zero weight; the flat mean of the mapped
	// values would be (100+100+40+0+30)/5 = 54, while the weighted score
	// reflects only the four weighted claims.
	flat := math.Round((100 + 100 + 40 + 0 + 30) / 5.0)
	if cs.CredibilityScore == flat {
		t.Errorf("score %g equals the unweighted mean; weighting had no effect", cs.CredibilityScore)
	}
}

func TestAggregateCheck_AllAbstainedIsNeutral(t *testing.T) {
	agg := NewAggregator()

	results := []model.ClaimResult{
		claimResult(model.OutcomeInsufficientEvidence, 0, 0.6),
		claimResult(model.OutcomeConflictingExpertOpinion, 0, 0.9),
		claimResult(model.OutcomeOutdatedClaim, 0, 0.8),
	}

	cs := agg.AggregateCheck("check-3", results)
	if cs.CredibilityScore != NeutralScore {
		t.Errorf("score = %g, want neutral %d when every claim abstained", cs.CredibilityScore, NeutralScore)
	}
}

func TestAggregateCheck_EmptyCheck(t *testing.T) {
	agg := NewAggregator()

	cs := agg.AggregateCheck("check-4", nil)
	if cs.CredibilityScore != NeutralScore {
		t.Errorf("score = %g, want neutral %d for an empty check", cs.CredibilityScore, NeutralScore)
	}
	if cs.CheckID != "check-4" {
		t.Errorf("check id = %q, want check-4", cs.CheckID)
	}
}

func TestVerdictValues_CoverEveryOutcome(t *testing.T) {
	outcomes := []model.Outcome{
		model.OutcomeSupported,
		model.OutcomeContradicted,
		model.OutcomeUncertain,
		model.OutcomeInsufficientEvidence,
		model.OutcomeConflictingExpertOpinion,
		model.OutcomeOutdatedClaim,
	}
	for _, outcome := range outcomes {
		value, ok := verdictValues[outcome]
		if !ok {
			t.Errorf("outcome %q has no score mapping", outcome)
		}
		if value < 0 || value > 100 {
			t.Errorf("outcome %q maps to %g, outside [0,100]", outcome, value)
		}
	}
	if verdictValues[model.OutcomeSupported] != 100 || verdictValues[model.OutcomeContradicted] != 0 {
		t.Error("supported and contradicted must anchor the scale at 100 and 0")
	}
}
