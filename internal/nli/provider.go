package nli

import (
	"context"
	"fmt"

	"github.com/veridex/veridex/internal/model"
)

// Result is one stance classification for a (claim, evidence) pair.
type Result struct {
	// Stance is supporting, contradicting, or neutral.
	Stance model.Stance

	// Entailment is the classifier's confidence in the stance, in [0,1].
	Entailment float64
}

// Provider classifies the relationship of one evidence text to one claim.
// This is the seam to the NLI verification collaborator: the engine never
// depends on how the classification is produced, and a provider failure
// degrades the item to neutral/unknown rather than failing the claim.
type Provider interface {
	// Name returns the provider name.
	Name() string

	// Classify labels the stance of one evidence item toward the claim.
	Classify(ctx context.Context, claimText string, item model.EvidenceItem) (*Result, error)
}

// BuildPrompt constructs the classification prompt. The output contract is
// strict so the response parses deterministically.
func BuildPrompt(claimText string, item model.EvidenceItem) string {
	text := item.Text
	if len(text) > 4000 {
		text = text[:4000]
	}
	return fmt.Sprintf(`Classify the relationship between a factual claim and an evidence passage.

Claim:
%s

Evidence (from %s):
%s

Answer with exactly one line in the form:
<stance> <score>

where <stance> is one of: supporting, contradicting, neutral
and <score> is your confidence from 0.0 to 1.0.

Judge only whether the evidence entails or contradicts the claim. Do not judge whether the claim is true.`,
		claimText, item.SourceName, text)
}
