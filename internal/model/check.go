package model

import "time"

// Claim is one atomic factual assertion under evaluation. Claims arrive
// already segmented by the extraction collaborator.
type Claim struct {
	ID   string `json:"id"`
	Text string `json:"text"`

	// Outdated is the temporal-context collaborator's judgment that the
	// claim's subject matter is stale. Consumed only by the abstention policy.
	Outdated bool `json:"outdated,omitempty"`

	Evidence []EvidenceItem `json:"evidence"`
}

// Check is one user-submitted fact check: a batch of claims with their
// retrieved evidence.
type Check struct {
	CheckID string  `json:"check_id"`
	Claims  []Claim `json:"claims"`
}

// ClaimResult is the full, transparent evaluation trail for one claim.
type ClaimResult struct {
	ClaimID string `json:"claim_id"`
	Text    string `json:"text,omitempty"`

	Verdict   Verdict            `json:"verdict"`
	Signal    VerificationSignal `json:"signal"`
	Consensus ConsensusResult    `json:"consensus"`

	// Evidence is the enriched, deduplicated, independence-adjusted set the
	// verdict was decided on.
	Evidence []EvidenceItem `json:"evidence"`

	// DuplicatesRemoved counts items merged away by deduplication.
	DuplicatesRemoved int `json:"duplicates_removed"`
	// OwnerCapped counts items dropped by the independence enforcer.
	OwnerCapped int `json:"owner_capped"`
	// AutoExcluded counts items dropped because their source tier is
	// marked auto-exclude (e.g. satire).
	AutoExcluded int `json:"auto_excluded"`
}

// Report is the complete evaluation output for one check.
type Report struct {
	CheckID     string        `json:"check_id"`
	EvaluatedAt time.Time     `json:"evaluated_at"`
	Score       CheckScore    `json:"score"`
	Claims      []ClaimResult `json:"claims"`
}
