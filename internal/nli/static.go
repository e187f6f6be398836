package nli

import (
	"context"

	"github.com/veridex/veridex/internal/model"
)

// StaticProvider passes through stances already present on evidence records,
// for check files labeled upstream. Unlabeled items come back neutral. This
// is the default provider: the engine stays usable offline and in tests.
type StaticProvider struct{}

// NewStaticProvider creates a pass-through provider.
func NewStaticProvider() *StaticProvider {
	return &StaticProvider{}
}

// Name returns the provider name.
func (p *StaticProvider) Name() string {
	return "static"
}

// Classify returns the stance the item arrived with.
func (p *StaticProvider) Classify(_ context.Context, _ string, item model.EvidenceItem) (*Result, error) {
	if item.Stance == model.StanceUnset {
		return &Result{Stance: model.StanceNeutral}, nil
	}
	return &Result{Stance: item.Stance, Entailment: item.Entailment()}, nil
}
