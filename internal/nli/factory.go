package nli

import (
	"fmt"

	"github.com/veridex/veridex/internal/model"
)

// NewProvider creates a stance provider from configuration.
func NewProvider(cfg model.NLIConfig) (Provider, error) {
	switch cfg.Provider {
	case "", "static":
		return NewStaticProvider(), nil
	case "openai":
		return NewOpenAIProvider(cfg)
	default:
		return nil, fmt.Errorf("unknown NLI provider %q (supported: static, openai)", cfg.Provider)
	}
}
