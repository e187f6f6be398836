package model

import "testing"

func TestDefaultConfig_IsValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("defaults must validate: %v", err)
	}
}

func TestConfigValidate_RejectsCorruptThresholds(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero min sources", func(c *Config) { c.Thresholds.MinSourcesForVerdict = 0 }},
		{"negative high credibility count", func(c *Config) { c.Thresholds.MinHighCredibilitySources = -1 }},
		{"credibility threshold above 1", func(c *Config) { c.Thresholds.MinCredibilityThreshold = 1.2 }},
		{"negative consensus threshold", func(c *Config) { c.Thresholds.MinConsensusStrength = -0.1 }},
		{"entailment threshold above 1", func(c *Config) { c.Thresholds.MinEntailmentForStance = 2 }},
		{"zero owner cap", func(c *Config) { c.Independence.MaxPerOwner = 0 }},
		{"zero owner penalty", func(c *Config) { c.Independence.SameOwnerPenalty = 0 }},
		{"owner penalty above 1", func(c *Config) { c.Independence.SameOwnerPenalty = 1.01 }},
	}

	for _, tt := range tests {
		cfg := DefaultConfig()
		tt.mutate(cfg)
		if err := cfg.Validate(); err == nil {
			t.Errorf("%s: expected a validation error", tt.name)
		}
	}
}

func TestCredibilityScore_ClampsAndDefaults(t *testing.T) {
	item := EvidenceItem{SourceProfile: SourceProfile{Credibility: 0.8}}
	// Unset penalty behaves as fully independent.
	if got := item.CredibilityScore(); got != 0.8 {
		t.Errorf("score = %g, want 0.8 with defaulted penalty", got)
	}

	item.IndependencePenalty = 0.5
	if got := item.CredibilityScore(); got != 0.4 {
		t.Errorf("score = %g, want 0.4", got)
	}

	item.SourceProfile.Credibility = 1.5
	item.IndependencePenalty = 1.0
	if got := item.CredibilityScore(); got != 1.0 {
		t.Errorf("score = %g, want clamp to 1.0", got)
	}
}

func TestOutcome_IsAbstention(t *testing.T) {
	abstentions := []Outcome{OutcomeInsufficientEvidence, OutcomeConflictingExpertOpinion, OutcomeOutdatedClaim}
	verdicts := []Outcome{OutcomeSupported, OutcomeContradicted, OutcomeUncertain}

	for _, o := range abstentions {
		if !o.IsAbstention() {
			t.Errorf("%q should be an abstention", o)
		}
	}
	for _, o := range verdicts {
		if o.IsAbstention() {
			t.Errorf("%q should be a definitive verdict", o)
		}
	}
}
