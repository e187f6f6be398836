package verify

import (
	"math"
	"testing"

	"github.com/veridex/veridex/internal/model"
)

func TestConsensusStrength_BoundsAndSplits(t *testing.T) {
	tests := []struct {
		supporting    float64
		contradicting float64
		expected      float64
		desc          string
	}{
		{0, 0, 0, "no stance-bearing evidence"},
		{1.0, 1.0, 0.5, "equal non-zero weights split exactly 0.5"},
		{0.9, 0.9, 0.5, "equal high weights split exactly 0.5"},
		{2.0, 0, 1.0, "unanimous support"},
		{0, 1.5, 1.0, "unanimous contradiction"},
		{1.7, 0.9, 1.7 / 2.6, "lopsided but contested"},
	}

	for _, tt := range tests {
		signal := model.VerificationSignal{
			SupportingWeight:    tt.supporting,
			ContradictingWeight: tt.contradicting,
		}
		got := ConsensusStrength(signal)
		if math.Abs(got-tt.expected) > 1e-9 {
			t.Errorf("%s: consensus = %g, want %g", tt.desc, got, tt.expected)
		}
		if got < 0 || got > 1 {
			t.Errorf("%s: consensus %g outside [0,1]", tt.desc, got)
		}
	}
}

func TestConsensusStrength_IndependentOfNeutralVolume(t *testing.T) {
	base := model.VerificationSignal{SupportingWeight: 0.9, ContradictingWeight: 0.9, NeutralCount: 0}
	crowded := model.VerificationSignal{SupportingWeight: 0.9, ContradictingWeight: 0.9, NeutralCount: 20, TotalEvidenceCount: 22}

	if ConsensusStrength(base) != ConsensusStrength(crowded) {
		t.Error("neutral items must not affect consensus strength")
	}
}

func TestConsensusStrength_MonotonicInAddedSupport(t *testing.T) {
	signal := model.VerificationSignal{SupportingWeight: 1.0, ContradictingWeight: 0.9}
	before := ConsensusStrength(signal)

	// One more supporting high-credibility item never decreases consensus.
	signal.SupportingWeight += 0.9
	after := ConsensusStrength(signal)

	if after < before {
		t.Errorf("consensus decreased from %g to %g after adding support", before, after)
	}
}

func TestConsensus_CarriesClaimID(t *testing.T) {
	result := Consensus(model.VerificationSignal{ClaimID: "claim-7", SupportingWeight: 1})
	if result.ClaimID != "claim-7" {
		t.Errorf("claim id = %q, want claim-7", result.ClaimID)
	}
	if result.ConsensusStrength != 1 {
		t.Errorf("consensus = %g, want 1", result.ConsensusStrength)
	}
}
