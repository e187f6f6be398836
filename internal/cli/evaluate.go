package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/veridex/veridex/internal/cache"
	"github.com/veridex/veridex/internal/engine"
	"github.com/veridex/veridex/internal/model"
	"github.com/veridex/veridex/internal/retrieve"
)

var (
	outJSON      string
	outMD        string
	sourcesPath  string
	fetchDocs    bool
	noCache      bool
	noFooter     bool
	nliProvider  string
	nliModel     string
	evalTimeout  time.Duration
	minSources   int
	minConsensus float64
	maxPerOwner  int
)

// evaluateCmd represents the evaluate command
var evaluateCmd = &cobra.Command{
	Use:   "evaluate <check.json>",
	Short: "Evaluate a check file and render verdicts",
	Long: `Evaluate reads a check file (claims with their retrieved evidence) and:
- Resolves each evidence URL to a source reputation profile
- Removes duplicated and syndicated evidence
- Caps the influence of commonly-owned sources
- Aggregates credibility-weighted support/contradiction signals
- Renders a verdict per claim, or abstains with a specific reason
- Rolls all verdicts into one check-level credibility score

Example:
  veridex evaluate check.json
  veridex evaluate check.json --json report.json --md report.md
  veridex evaluate check.json --fetch --nli openai`,
	Args: cobra.ExactArgs(1),
	RunE: runEvaluate,
}

func init() {
	rootCmd.AddCommand(evaluateCmd)

	evaluateCmd.Flags().StringVar(&outJSON, "json", "report.json", "output JSON path")
	evaluateCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path (optional)")
	evaluateCmd.Flags().StringVar(&sourcesPath, "sources", "", "reputation table YAML (default: built-in table)")
	evaluateCmd.Flags().BoolVar(&fetchDocs, "fetch", false, "fetch document text for evidence items without text")
	evaluateCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the fetch cache")
	evaluateCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")
	evaluateCmd.Flags().StringVar(&nliProvider, "nli", "static", "stance provider (static, openai)")
	evaluateCmd.Flags().StringVar(&nliModel, "nli-model", "", "stance model name (provider-specific)")
	evaluateCmd.Flags().DurationVar(&evalTimeout, "timeout", 2*time.Minute, "overall evaluation timeout")
	evaluateCmd.Flags().IntVar(&minSources, "min-sources", 0, "override minimum sources for a verdict")
	evaluateCmd.Flags().Float64Var(&minConsensus, "min-consensus", 0, "override minimum consensus strength")
	evaluateCmd.Flags().IntVar(&maxPerOwner, "max-per-owner", 0, "override per-owner evidence cap")
}

func runEvaluate(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), evalTimeout)
	defer cancel()

	check, err := LoadCheck(args[0])
	if err != nil {
		return err
	}

	cfg := buildConfig()
	eng, err := engine.NewEngine(cfg)
	if err != nil {
		return err
	}

	if fetchDocs {
		eng.SetFetcher(retrieve.NewFetcher(cfg.HTTP, fetchStore(cfg)))
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Evaluating: %s (%d claims)\n", check.CheckID, len(check.Claims))
	}

	report := eng.EvaluateCheck(ctx, *check)

	renderer := engine.NewRenderer(cfg.Output.IncludeFooter)
	if outJSON != "" {
		if err := renderer.RenderJSON(report, outJSON); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "Wrote JSON: %s\n", outJSON)
		}
	}
	if outMD != "" {
		if err := renderer.RenderMarkdown(report, outMD); err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "Wrote Markdown: %s\n", outMD)
		}
	}

	renderer.RenderSummary(report)
	return nil
}

// buildConfig assembles configuration from defaults plus flags.
func buildConfig() *model.Config {
	cfg := model.DefaultConfig()
	cfg.Output.Verbose = verbose
	cfg.Output.IncludeFooter = !noFooter
	cfg.Reputation.TablePath = sourcesPath
	cfg.Cache.Enabled = !noCache
	cfg.NLI.Provider = nliProvider
	cfg.NLI.Model = nliModel
	if nliProvider == "openai" {
		cfg.NLI.APIKey = os.Getenv("OPENAI_API_KEY")
	}
	if minSources > 0 {
		cfg.Thresholds.MinSourcesForVerdict = minSources
	}
	if minConsensus > 0 {
		cfg.Thresholds.MinConsensusStrength = minConsensus
	}
	if maxPerOwner > 0 {
		cfg.Independence.MaxPerOwner = maxPerOwner
	}
	return cfg
}

// fetchStore builds the document cache backing the fetcher.
func fetchStore(cfg *model.Config) cache.Cache {
	if !cfg.Cache.Enabled {
		return nil
	}
	dir := cfg.Cache.Dir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return cache.NewMemoryCache(cfg.Cache.MemoryTTL, 10*time.Minute)
		}
		dir = filepath.Join(home, ".veridex", "cache")
	}
	return cache.NewLayeredCache(cfg.Cache.MemoryTTL, dir, cfg.Cache.DiskTTL)
}

// LoadCheck reads and validates a check file. Missing ids get filled in so
// downstream reports always have something to reference.
func LoadCheck(path string) (*model.Check, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read check file: %w", err)
	}

	var check model.Check
	if err := json.Unmarshal(data, &check); err != nil {
		return nil, fmt.Errorf("parse check file %s: %w", path, err)
	}

	if check.CheckID == "" {
		check.CheckID = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	for i := range check.Claims {
		if check.Claims[i].ID == "" {
			check.Claims[i].ID = fmt.Sprintf("claim-%d", i+1)
		}
	}
	return &check, nil
}
