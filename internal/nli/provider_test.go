package nli

import (
	"context"
	"strings"
	"testing"

	"github.com/veridex/veridex/internal/model"
)

func TestParseResult(t *testing.T) {
	tests := []struct {
		raw        string
		stance     model.Stance
		entailment float64
		wantErr    bool
	}{
		{"supporting 0.9", model.StanceSupporting, 0.9, false},
		{"contradicting 0.85", model.StanceContradicting, 0.85, false},
		{"neutral 0.3", model.StanceNeutral, 0.3, false},
		{"SUPPORTING 0.8", model.StanceSupporting, 0.8, false},
		{"  supporting   0.7  ", model.StanceSupporting, 0.7, false},
		{"supports 0.6", model.StanceSupporting, 0.6, false},
		{"entailment 0.9", model.StanceSupporting, 0.9, false},
		{"contradiction 0.9", model.StanceContradicting, 0.9, false},
		{"supporting: 0.9", model.StanceSupporting, 0.9, false},
		{"supporting 0.9.", model.StanceSupporting, 0.9, false},
		{"supporting", model.StanceSupporting, 0.5, false},      // missing score defaults
		{"supporting abc", model.StanceSupporting, 0.5, false},  // garbage score defaults
		{"supporting 1.7", model.StanceSupporting, 0.5, false},  // out-of-range score defaults
		{"", model.StanceUnset, 0, true},
		{"maybe 0.5", model.StanceUnset, 0, true},
	}

	for _, tt := range tests {
		result, err := ParseResult(tt.raw)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseResult(%q): expected error, got %+v", tt.raw, result)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseResult(%q): %v", tt.raw, err)
			continue
		}
		if result.Stance != tt.stance {
			t.Errorf("ParseResult(%q): stance = %q, want %q", tt.raw, result.Stance, tt.stance)
		}
		if result.Entailment != tt.entailment {
			t.Errorf("ParseResult(%q): entailment = %g, want %g", tt.raw, result.Entailment, tt.entailment)
		}
	}
}

func TestStaticProvider_PassesThroughStance(t *testing.T) {
	provider := NewStaticProvider()
	entailment := 0.8

	result, err := provider.Classify(context.Background(), "claim", model.EvidenceItem{
		Stance:          model.StanceContradicting,
		EntailmentScore: &entailment,
	})
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if result.Stance != model.StanceContradicting || result.Entailment != 0.8 {
		t.Errorf("got %+v, want contradicting 0.8", result)
	}
}

func TestStaticProvider_UnlabeledBecomesNeutral(t *testing.T) {
	provider := NewStaticProvider()

	result, err := provider.Classify(context.Background(), "claim", model.EvidenceItem{})
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if result.Stance != model.StanceNeutral {
		t.Errorf("stance = %q, want neutral for unlabeled evidence", result.Stance)
	}
}

func TestBuildPrompt_TruncatesLongEvidence(t *testing.T) {
	item := model.EvidenceItem{
		SourceName: "Example Wire",
		Text:       strings.Repeat("x", 10000),
	}

	prompt := BuildPrompt("the claim", item)
	if len(prompt) > 5000 {
		t.Errorf("prompt length %d, evidence text should be capped at 4000 chars", len(prompt))
	}
	if !strings.Contains(prompt, "the claim") || !strings.Contains(prompt, "Example Wire") {
		t.Error("prompt must include the claim text and source name")
	}
}

func TestNewProvider_Selection(t *testing.T) {
	provider, err := NewProvider(model.NLIConfig{})
	if err != nil || provider.Name() != "static" {
		t.Errorf("empty provider name should default to static, got %v %v", provider, err)
	}

	if _, err := NewProvider(model.NLIConfig{Provider: "openai"}); err == nil {
		t.Error("openai provider without an API key must be rejected")
	}

	if _, err := NewProvider(model.NLIConfig{Provider: "oracle"}); err == nil {
		t.Error("unknown provider name must be rejected")
	}
}
