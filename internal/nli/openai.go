package nli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	openai "github.com/sashabaranov/go-openai"
	"github.com/veridex/veridex/internal/model"
)

// OpenAIProvider classifies stances with an OpenAI chat model. It is the
// reference implementation of the NLI collaborator boundary.
type OpenAIProvider struct {
	client *openai.Client
	config model.NLIConfig
}

// NewOpenAIProvider creates an OpenAI-backed provider.
func NewOpenAIProvider(cfg model.NLIConfig) (*OpenAIProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	return &OpenAIProvider{
		client: openai.NewClientWithConfig(clientConfig),
		config: cfg,
	}, nil
}

// Name returns the provider name.
func (p *OpenAIProvider) Name() string {
	return "openai"
}

// Classify labels one (claim, evidence) pair via a chat completion.
func (p *OpenAIProvider) Classify(ctx context.Context, claimText string, item model.EvidenceItem) (*Result, error) {
	if strings.TrimSpace(item.Text) == "" {
		return &Result{Stance: model.StanceNeutral}, nil
	}

	if p.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.config.Timeout)
		defer cancel()
	}

	chatModel := p.config.Model
	if chatModel == "" {
		chatModel = openai.GPT4oMini
	}

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: chatModel,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "You are a natural language inference classifier. You answer with exactly one stance word and one score.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: BuildPrompt(claimText, item),
			},
		},
		MaxTokens:   16,
		Temperature: 0,
	})
	if err != nil {
		return nil, fmt.Errorf("OpenAI API error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from OpenAI")
	}

	return ParseResult(resp.Choices[0].Message.Content)
}

// ParseResult parses the strict "<stance> <score>" response format.
func ParseResult(raw string) (*Result, error) {
	fields := strings.Fields(strings.ToLower(strings.TrimSpace(raw)))
	if len(fields) == 0 {
		return nil, fmt.Errorf("empty classification response")
	}

	var stance model.Stance
	switch strings.Trim(fields[0], ".,:") {
	case "supporting", "supports", "entailment":
		stance = model.StanceSupporting
	case "contradicting", "contradicts", "contradiction":
		stance = model.StanceContradicting
	case "neutral":
		stance = model.StanceNeutral
	default:
		return nil, fmt.Errorf("unrecognized stance %q", fields[0])
	}

	entailment := 0.5
	if len(fields) > 1 {
		if parsed, err := strconv.ParseFloat(strings.Trim(fields[1], ".,"), 64); err == nil && parsed >= 0 && parsed <= 1 {
			entailment = parsed
		}
	}

	return &Result{Stance: stance, Entailment: entailment}, nil
}
