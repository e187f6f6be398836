package engine

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/veridex/veridex/internal/model"
)

// Renderer writes evaluation reports as JSON and Markdown and prints the
// stdout summary.
type Renderer struct {
	includeFooter bool
}

// NewRenderer creates a renderer.
func NewRenderer(includeFooter bool) *Renderer {
	return &Renderer{includeFooter: includeFooter}
}

// RenderJSON writes the full report to a file.
func (r *Renderer) RenderJSON(report *model.Report, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

// RenderMarkdown writes a human-readable report to a file.
func (r *Renderer) RenderMarkdown(report *model.Report, path string) error {
	var b strings.Builder

	fmt.Fprintf(&b, "# Check %s\n\n", report.CheckID)
	fmt.Fprintf(&b, "- Credibility score: **%.0f/100**\n", report.Score.CredibilityScore)
	fmt.Fprintf(&b, "- Claims evaluated: %d\n", len(report.Claims))
	fmt.Fprintf(&b, "- Evaluated at: %s\n\n", report.EvaluatedAt.Format("2006-01-02 15:04:05 UTC"))

	for _, claim := range report.Claims {
		fmt.Fprintf(&b, "## Claim %s\n\n", claim.ClaimID)
		if claim.Text != "" {
			fmt.Fprintf(&b, "> %s\n\n", claim.Text)
		}

		verdict := claim.Verdict
		fmt.Fprintf(&b, "- Outcome: **%s**\n", verdict.Outcome)
		if verdict.Outcome.IsAbstention() {
			fmt.Fprintf(&b, "- Reason: %s\n", verdict.AbstentionReason)
		} else {
			fmt.Fprintf(&b, "- Confidence: %.0f/100\n", verdict.Confidence)
		}
		fmt.Fprintf(&b, "- Consensus strength: %.2f\n", verdict.ConsensusStrength)
		fmt.Fprintf(&b, "- Evidence: %d item(s), %d high-credibility, supporting weight %.2f vs contradicting %.2f\n",
			claim.Signal.TotalEvidenceCount, claim.Signal.HighCredibilityCount,
			claim.Signal.SupportingWeight, claim.Signal.ContradictingWeight)
		if claim.DuplicatesRemoved > 0 || claim.OwnerCapped > 0 || claim.AutoExcluded > 0 {
			fmt.Fprintf(&b, "- Filtered: %d duplicate(s), %d over owner cap, %d auto-excluded\n",
				claim.DuplicatesRemoved, claim.OwnerCapped, claim.AutoExcluded)
		}
		b.WriteString("\n")

		for _, item := range claim.Evidence {
			stance := string(item.Stance)
			if stance == "" {
				stance = "unlabeled"
			}
			fmt.Fprintf(&b, "  - [%s] %s (%s, credibility %.2f, %s)\n",
				stance, item.SourceName, item.SourceProfile.Tier, item.CredibilityScore(), item.URL)
		}
		b.WriteString("\n")
	}

	if r.includeFooter {
		b.WriteString("---\n\nGenerated by Veridex. Veridex evaluates evidence support, not truth; abstentions are answers, not failures.\n")
	}

	return os.WriteFile(path, []byte(b.String()), 0o644)
}

// RenderSummary prints the check outcome to stdout.
func (r *Renderer) RenderSummary(report *model.Report) {
	fmt.Printf("Check:       %s\n", report.CheckID)
	fmt.Printf("Score:       %.0f/100\n", report.Score.CredibilityScore)
	fmt.Printf("Claims:      %d\n", len(report.Claims))

	counts := make(map[model.Outcome]int)
	for _, claim := range report.Claims {
		counts[claim.Verdict.Outcome]++
	}
	for _, outcome := range []model.Outcome{
		model.OutcomeSupported, model.OutcomeContradicted, model.OutcomeUncertain,
		model.OutcomeInsufficientEvidence, model.OutcomeConflictingExpertOpinion, model.OutcomeOutdatedClaim,
	} {
		if counts[outcome] > 0 {
			fmt.Printf("  %-28s %d\n", outcome, counts[outcome])
		}
	}

	for _, claim := range report.Claims {
		if claim.Verdict.Outcome.IsAbstention() {
			fmt.Printf("  ! %s: %s\n", claim.ClaimID, claim.Verdict.AbstentionReason)
		}
	}
}
