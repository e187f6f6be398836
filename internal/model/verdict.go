package model

// OverallStance is the claim-level direction of the aggregated evidence.
type OverallStance string

const (
	StanceSupported    OverallStance = "supported"
	StanceContradicted OverallStance = "contradicted"
	StanceUncertain    OverallStance = "uncertain"
)

// VerificationSignal is the credibility-weighted aggregate of all stance
// labels for one claim. Recomputed whenever the evidence set changes.
type VerificationSignal struct {
	ClaimID string `json:"claim_id"`

	SupportingWeight    float64 `json:"supporting_weight"`
	ContradictingWeight float64 `json:"contradicting_weight"`
	NeutralCount        int     `json:"neutral_count"`
	TotalEvidenceCount  int     `json:"total_evidence_count"`

	// HighCredibilityCount is the number of items at or above the
	// minimum credibility threshold; the abstention policy keys off it.
	HighCredibilityCount int `json:"high_credibility_count"`

	OverallStance    OverallStance `json:"overall_stance"`
	MaxEntailment    float64       `json:"max_entailment"`
	MaxContradiction float64       `json:"max_contradiction"`
}

// ConsensusResult carries the consensus strength for one claim: the fraction
// of credibility-weighted evidence backing the majority stance.
type ConsensusResult struct {
	ClaimID           string  `json:"claim_id"`
	ConsensusStrength float64 `json:"consensus_strength"`
}

// Outcome is the terminal decision rendered for a claim.
type Outcome string

const (
	OutcomeSupported                Outcome = "supported"
	OutcomeContradicted             Outcome = "contradicted"
	OutcomeUncertain                Outcome = "uncertain"
	OutcomeInsufficientEvidence     Outcome = "insufficient_evidence"
	OutcomeConflictingExpertOpinion Outcome = "conflicting_expert_opinion"
	OutcomeOutdatedClaim            Outcome = "outdated_claim"
)

// IsAbstention reports whether the outcome is a deliberate refusal to assert
// supported/contradicted/uncertain.
func (o Outcome) IsAbstention() bool {
	switch o {
	case OutcomeInsufficientEvidence, OutcomeConflictingExpertOpinion, OutcomeOutdatedClaim:
		return true
	}
	return false
}

// Verdict is the terminal decision for a claim. AbstentionReason is non-empty
// iff the outcome is an abstention, and confidence is 0 whenever abstaining.
type Verdict struct {
	ClaimID           string   `json:"claim_id"`
	Outcome           Outcome  `json:"outcome"`
	Confidence        float64  `json:"confidence"` // 0-100
	AbstentionReason  string   `json:"abstention_reason,omitempty"`
	ConsensusStrength float64  `json:"consensus_strength"`
	EvidenceIDsUsed   []string `json:"evidence_ids_used"`
}

// CheckScore is the single credibility score for one user-submitted check.
// Created once all claim verdicts exist; immutable thereafter.
type CheckScore struct {
	CheckID          string    `json:"check_id"`
	CredibilityScore float64   `json:"credibility_score"` // 0-100
	ClaimVerdicts    []Verdict `json:"claim_verdicts"`
}
