package model

import (
	"fmt"
	"time"
)

// Config is the complete Veridex configuration.
//
// Hierarchy (highest to lowest priority): CLI flags, VERIDEX_* environment
// variables, config file (~/.veridex/config.yaml), defaults.
type Config struct {
	Thresholds   ThresholdConfig   `yaml:"thresholds" mapstructure:"thresholds"`
	Independence IndependenceConfig `yaml:"independence" mapstructure:"independence"`
	Reputation   ReputationConfig  `yaml:"reputation" mapstructure:"reputation"`
	HTTP         HTTPConfig        `yaml:"http" mapstructure:"http"`
	Cache        CacheConfig       `yaml:"cache" mapstructure:"cache"`
	NLI          NLIConfig         `yaml:"nli" mapstructure:"nli"`
	Concurrency  ConcurrencyConfig `yaml:"concurrency" mapstructure:"concurrency"`
	Output       OutputConfig      `yaml:"output" mapstructure:"output"`
}

// ThresholdConfig holds the abstention-policy thresholds. These tune when the
// engine refuses to render a verdict; they never change behavior shape.
type ThresholdConfig struct {
	// MinSourcesForVerdict is the minimum evidence count below which the
	// engine abstains with insufficient_evidence.
	MinSourcesForVerdict int `yaml:"min_sources_for_verdict" mapstructure:"min_sources_for_verdict"`

	// MinHighCredibilitySources is the minimum number of items at or above
	// MinCredibilityThreshold required to render a verdict.
	MinHighCredibilitySources int `yaml:"min_high_credibility_sources" mapstructure:"min_high_credibility_sources"`

	// MinCredibilityThreshold is the effective-credibility floor for an item
	// to count as high credibility.
	MinCredibilityThreshold float64 `yaml:"min_credibility_threshold" mapstructure:"min_credibility_threshold"`

	// MinConsensusStrength is the consensus floor below which the engine
	// abstains with conflicting_expert_opinion.
	MinConsensusStrength float64 `yaml:"min_consensus_strength" mapstructure:"min_consensus_strength"`

	// MinEntailmentForStance is the entailment floor for the aggregated
	// signal to commit to a supported/contradicted overall stance.
	MinEntailmentForStance float64 `yaml:"min_entailment_for_stance" mapstructure:"min_entailment_for_stance"`
}

// IndependenceConfig parameterizes the independence enforcer.
type IndependenceConfig struct {
	// MaxPerOwner caps evidence items a single ownership group may
	// contribute to one claim's decision.
	MaxPerOwner int `yaml:"max_per_owner" mapstructure:"max_per_owner"`

	// SameOwnerPenalty multiplies the independence penalty of each surviving
	// item when more than one item from the same owner survives the cap.
	SameOwnerPenalty float64 `yaml:"same_owner_penalty" mapstructure:"same_owner_penalty"`

	// SyndicationWindow is how close two publish dates must be for
	// same-titled items to count as syndicated copies.
	SyndicationWindow time.Duration `yaml:"syndication_window" mapstructure:"syndication_window"`
}

// ReputationConfig locates the source-reputation table.
type ReputationConfig struct {
	// TablePath points at a YAML tier table. Empty means built-in defaults.
	TablePath string `yaml:"table_path" mapstructure:"table_path"`

	// CacheTTL bounds how long a resolved domain profile is memoized.
	CacheTTL time.Duration `yaml:"cache_ttl" mapstructure:"cache_ttl"`
}

// HTTPConfig configures the evidence document fetcher.
type HTTPConfig struct {
	Timeout      time.Duration `yaml:"timeout" mapstructure:"timeout"`
	UserAgent    string        `yaml:"user_agent" mapstructure:"user_agent"`
	MaxBodyBytes int64         `yaml:"max_body_bytes" mapstructure:"max_body_bytes"`
	RequestsPerSecond float64  `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	Burst        int           `yaml:"burst" mapstructure:"burst"`
	HTTPProxy    string        `yaml:"http_proxy" mapstructure:"http_proxy"`
	HTTPSProxy   string        `yaml:"https_proxy" mapstructure:"https_proxy"`
	NoProxy      string        `yaml:"no_proxy" mapstructure:"no_proxy"`
}

// CacheConfig configures the layered fetch/profile cache.
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled" mapstructure:"enabled"`
	Dir       string        `yaml:"dir" mapstructure:"dir"`
	MemoryTTL time.Duration `yaml:"memory_ttl" mapstructure:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl" mapstructure:"disk_ttl"`
}

// NLIConfig configures the stance-provider collaborator.
type NLIConfig struct {
	// Provider name: "static" (pre-labeled stances, default) or "openai".
	Provider string `yaml:"provider" mapstructure:"provider"`
	Model    string `yaml:"model" mapstructure:"model"`
	APIKey   string `yaml:"api_key" mapstructure:"api_key"`
	BaseURL  string `yaml:"base_url" mapstructure:"base_url"`
	Timeout  time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// ConcurrencyConfig bounds cross-claim and fetch parallelism.
type ConcurrencyConfig struct {
	ClaimWorkers int `yaml:"claim_workers" mapstructure:"claim_workers"`
	FetchWorkers int `yaml:"fetch_workers" mapstructure:"fetch_workers"`
}

// OutputConfig controls report rendering.
type OutputConfig struct {
	Verbose       bool `yaml:"verbose" mapstructure:"verbose"`
	IncludeFooter bool `yaml:"include_footer" mapstructure:"include_footer"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Thresholds: ThresholdConfig{
			MinSourcesForVerdict:      3,
			MinHighCredibilitySources: 1,
			MinCredibilityThreshold:   0.75,
			MinConsensusStrength:      0.65,
			MinEntailmentForStance:    0.7,
		},
		Independence: IndependenceConfig{
			MaxPerOwner:       2,
			SameOwnerPenalty:  0.7,
			SyndicationWindow: 72 * time.Hour,
		},
		Reputation: ReputationConfig{
			CacheTTL: 1 * time.Hour,
		},
		HTTP: HTTPConfig{
			Timeout:           15 * time.Second,
			UserAgent:         "Veridex/0.1 (+https://github.com/veridex/veridex)",
			MaxBodyBytes:      2_000_000,
			RequestsPerSecond: 2,
			Burst:             5,
		},
		Cache: CacheConfig{
			Enabled:   true,
			MemoryTTL: 15 * time.Minute,
			DiskTTL:   24 * time.Hour,
		},
		NLI: NLIConfig{
			Provider: "static",
			Timeout:  30 * time.Second,
		},
		Concurrency: ConcurrencyConfig{
			ClaimWorkers: 0, // 0 means NumCPU
			FetchWorkers: 10,
		},
		Output: OutputConfig{
			IncludeFooter: true,
		},
	}
}

// Validate checks the configuration for values that would systematically
// corrupt verdicts. Failures here are fatal at process startup.
func (c *Config) Validate() error {
	t := c.Thresholds
	if t.MinSourcesForVerdict < 1 {
		return fmt.Errorf("thresholds.min_sources_for_verdict must be >= 1, got %d", t.MinSourcesForVerdict)
	}
	if t.MinHighCredibilitySources < 0 {
		return fmt.Errorf("thresholds.min_high_credibility_sources must be >= 0, got %d", t.MinHighCredibilitySources)
	}
	if t.MinCredibilityThreshold < 0 || t.MinCredibilityThreshold > 1 {
		return fmt.Errorf("thresholds.min_credibility_threshold must be in [0,1], got %g", t.MinCredibilityThreshold)
	}
	if t.MinConsensusStrength < 0 || t.MinConsensusStrength > 1 {
		return fmt.Errorf("thresholds.min_consensus_strength must be in [0,1], got %g", t.MinConsensusStrength)
	}
	if t.MinEntailmentForStance < 0 || t.MinEntailmentForStance > 1 {
		return fmt.Errorf("thresholds.min_entailment_for_stance must be in [0,1], got %g", t.MinEntailmentForStance)
	}
	if c.Independence.MaxPerOwner < 1 {
		return fmt.Errorf("independence.max_per_owner must be >= 1, got %d", c.Independence.MaxPerOwner)
	}
	if p := c.Independence.SameOwnerPenalty; p <= 0 || p > 1 {
		return fmt.Errorf("independence.same_owner_penalty must be in (0,1], got %g", p)
	}
	return nil
}
