package model

import "time"

// Tier is a named bucket of source reputation with a base credibility score.
type Tier string

const (
	TierAcademic   Tier = "academic"
	TierGovernment Tier = "government"
	TierScientific Tier = "scientific"
	TierNewsTier1  Tier = "news_tier1"
	TierNewsTier2  Tier = "news_tier2"
	TierReference  Tier = "reference"
	TierFactcheck  Tier = "factcheck"
	TierStateMedia Tier = "state_media"
	TierBlacklist  Tier = "blacklist"
	TierSatire     Tier = "satire"
	TierGeneral    Tier = "general"
)

// SourceProfile is the reputation judgment for one source domain.
// Derived from the reputation table per request, never persisted.
type SourceProfile struct {
	Domain       string   `json:"domain" yaml:"domain"`
	Tier         Tier     `json:"tier" yaml:"tier"`
	Credibility  float64  `json:"credibility" yaml:"credibility"` // base score in [0,1]
	RiskFlags    []string `json:"risk_flags,omitempty" yaml:"risk_flags,omitempty"`
	AutoExclude  bool     `json:"auto_exclude" yaml:"auto_exclude"`
	OwnerGroupID string   `json:"owner_group_id,omitempty" yaml:"owner_group_id,omitempty"`
}

// Stance is the NLI-derived relationship of one evidence item to one claim.
type Stance string

const (
	StanceSupporting    Stance = "supporting"
	StanceContradicting Stance = "contradicting"
	StanceNeutral       Stance = "neutral"
	StanceUnset         Stance = ""
)

// EvidenceItem is one retrieved document or snippet bearing on a claim.
// Created by the retrieval collaborator, enriched in place by the engine
// stages, immutable once the abstention policy has consumed it.
type EvidenceItem struct {
	ID         string     `json:"id"`
	ClaimID    string     `json:"claim_id"`
	URL        string     `json:"url"`
	SourceName string     `json:"source_name"`
	Title      string     `json:"title,omitempty"`
	Text       string     `json:"text,omitempty"`
	PublishedAt *time.Time `json:"published_at,omitempty"`

	RawRelevance float64 `json:"raw_relevance"`

	SourceProfile      SourceProfile `json:"source_profile"`
	ContentFingerprint string        `json:"content_fingerprint,omitempty"`

	// IndependencePenalty discounts credibility when multiple items share a
	// media ownership group. 1.0 means fully independent.
	IndependencePenalty float64 `json:"independence_penalty"`

	Stance          Stance   `json:"stance,omitempty"`
	EntailmentScore *float64 `json:"entailment_score,omitempty"`

	// OriginalSourceURLs records URLs of duplicates merged into this item,
	// preserving provenance of discarded syndicated copies.
	OriginalSourceURLs []string `json:"original_source_urls,omitempty"`
}

// CredibilityScore is the effective credibility of this item: the source's
// base credibility discounted by the independence penalty. Always in [0,1].
func (e *EvidenceItem) CredibilityScore() float64 {
	penalty := e.IndependencePenalty
	if penalty <= 0 || penalty > 1 {
		penalty = 1.0
	}
	score := e.SourceProfile.Credibility * penalty
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}

// HasStance reports whether the item carries a stance that contributes
// weight to the support/contradiction buckets.
func (e *EvidenceItem) HasStance() bool {
	return e.Stance == StanceSupporting || e.Stance == StanceContradicting
}

// Entailment returns the entailment score, or 0 when the NLI collaborator
// never labeled this item.
func (e *EvidenceItem) Entailment() float64 {
	if e.EntailmentScore == nil {
		return 0
	}
	return *e.EntailmentScore
}
