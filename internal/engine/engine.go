package engine

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/veridex/veridex/internal/decide"
	"github.com/veridex/veridex/internal/evidence"
	"github.com/veridex/veridex/internal/model"
	"github.com/veridex/veridex/internal/nli"
	"github.com/veridex/veridex/internal/reputation"
	"github.com/veridex/veridex/internal/retrieve"
	"github.com/veridex/veridex/internal/score"
	"github.com/veridex/veridex/internal/verify"
	"github.com/veridex/veridex/internal/worker"
)

// Engine wires the evaluation stages together: source reputation resolution,
// deduplication, independence enforcement, signal aggregation, consensus,
// abstention policy, and check-level scoring. Per claim everything is a pure
// in-memory transformation; only the optional fetcher and NLI provider do I/O.
type Engine struct {
	config     *model.Config
	resolver   *reputation.Resolver
	dedup      *evidence.Deduplicator
	enforcer   *evidence.Enforcer
	aggregator *verify.Aggregator
	policy     *decide.Policy
	scorer     *score.Aggregator
	stances    nli.Provider
	fetcher    *retrieve.Fetcher
	verbose    bool
}

// NewEngine builds an engine from validated configuration. Configuration and
// reputation-table problems are the only fatal errors: running with broken
// thresholds would systematically corrupt every verdict.
func NewEngine(cfg *model.Config) (*Engine, error) {
	if cfg == nil {
		cfg = model.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	table, err := reputation.LoadTable(cfg.Reputation.TablePath)
	if err != nil {
		return nil, err
	}

	provider, err := nli.NewProvider(cfg.NLI)
	if err != nil {
		return nil, err
	}

	return &Engine{
		config:     cfg,
		resolver:   reputation.NewResolver(table, cfg.Reputation.CacheTTL),
		dedup:      evidence.NewDeduplicator(cfg.Independence.SyndicationWindow),
		enforcer:   evidence.NewEnforcer(cfg.Independence.MaxPerOwner, cfg.Independence.SameOwnerPenalty),
		aggregator: verify.NewAggregator(cfg.Thresholds.MinCredibilityThreshold, cfg.Thresholds.MinEntailmentForStance),
		policy:     decide.NewPolicy(cfg.Thresholds),
		scorer:     score.NewAggregator(),
		stances:    provider,
		verbose:    cfg.Output.Verbose,
	}, nil
}

// SetFetcher enables document retrieval for evidence items that arrive with
// a URL but no text. Without a fetcher such items stay textless and are
// treated as neutral.
func (e *Engine) SetFetcher(f *retrieve.Fetcher) {
	e.fetcher = f
}

// Resolver exposes the reputation resolver for inspection commands.
func (e *Engine) Resolver() *reputation.Resolver {
	return e.resolver
}

// EvaluateClaim runs the full per-claim stage sequence and returns the
// verdict with its transparent evaluation trail. No error return: data
// quality problems degrade to safe defaults and at worst surface as an
// abstention, never as a failed claim.
func (e *Engine) EvaluateClaim(ctx context.Context, claim model.Claim) model.ClaimResult {
	result := model.ClaimResult{ClaimID: claim.ID, Text: claim.Text}

	items := e.enrich(ctx, claim)

	kept := make([]model.EvidenceItem, 0, len(items))
	for _, item := range items {
		if item.SourceProfile.AutoExclude {
			result.AutoExcluded++
			continue
		}
		kept = append(kept, item)
	}

	deduped := e.dedup.Deduplicate(kept)
	result.DuplicatesRemoved = len(kept) - len(deduped)

	independent := e.enforcer.Enforce(deduped)
	result.OwnerCapped = len(deduped) - len(independent)

	e.label(ctx, claim.Text, independent)

	result.Signal = e.aggregator.Aggregate(claim.ID, independent)
	result.Consensus = verify.Consensus(result.Signal)
	result.Verdict = e.policy.Decide(independent, result.Signal, result.Consensus, claim.Outdated)
	result.Evidence = independent
	return result
}

// enrich canonicalizes raw evidence records: ids, claim binding, reputation
// profiles, default penalties and relevance, and (when a fetcher is set)
// document text for textless items.
func (e *Engine) enrich(ctx context.Context, claim model.Claim) []model.EvidenceItem {
	items := make([]model.EvidenceItem, len(claim.Evidence))
	copy(items, claim.Evidence)

	for i := range items {
		item := &items[i]
		if item.ID == "" {
			item.ID = fmt.Sprintf("%s-ev%d", claim.ID, i+1)
		}
		item.ClaimID = claim.ID
		if item.IndependencePenalty <= 0 || item.IndependencePenalty > 1 {
			item.IndependencePenalty = 1.0
		}
		if item.RawRelevance <= 0 {
			item.RawRelevance = 0.5
		}
		if item.SourceProfile.Tier == "" {
			item.SourceProfile = e.resolver.Resolve(item.URL)
		}
	}

	e.fetchMissing(ctx, items)
	return items
}

// fetchMissing fills document text for textless items over a bounded number of
// concurrent fetches. Each goroutine owns a distinct item, so the only shared
// state is the fetcher's internal caches.
func (e *Engine) fetchMissing(ctx context.Context, items []model.EvidenceItem) {
	if e.fetcher == nil {
		return
	}

	workers := e.config.Concurrency.FetchWorkers
	if workers <= 0 {
		workers = 10
	}
	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup

	for i := range items {
		item := &items[i]
		if item.Text != "" || item.URL == "" {
			continue
		}

		wg.Add(1)
		sem <- struct{}{}
		go func() {
			defer wg.Done()
			defer func() { <-sem }()

			doc, err := e.fetcher.FetchDocument(ctx, item.URL)
			if err != nil {
				e.warnf("fetch %s: %v", item.URL, err)
				return
			}
			item.Text = doc.Text
			if item.Title == "" {
				item.Title = doc.Title
			}
			if item.PublishedAt == nil {
				item.PublishedAt = doc.PublishedAt
			}
		}()
	}
	wg.Wait()
}

// label fills in missing stances via the NLI provider. Provider failures
// leave the item neutral; a missing stance is data quality, not an error.
func (e *Engine) label(ctx context.Context, claimText string, items []model.EvidenceItem) {
	for i := range items {
		item := &items[i]
		if item.Stance != model.StanceUnset {
			continue
		}
		classified, err := e.stances.Classify(ctx, claimText, *item)
		if err != nil {
			e.warnf("stance classification for %s: %v", item.URL, err)
			item.Stance = model.StanceNeutral
			continue
		}
		item.Stance = classified.Stance
		if item.EntailmentScore == nil && classified.Entailment > 0 {
			entailment := classified.Entailment
			item.EntailmentScore = &entailment
		}
	}
}

// claimJob wraps one claim evaluation for the worker pool.
type claimJob struct {
	engine *Engine
	claim  model.Claim
	index  int
}

// claimResult carries the evaluated claim back with its input position.
type claimResult struct {
	result model.ClaimResult
	index  int
}

func (r *claimResult) GetError() error { return nil }

func (j *claimJob) Execute(ctx context.Context) worker.Result {
	return &claimResult{
		result: j.engine.EvaluateClaim(ctx, j.claim),
		index:  j.index,
	}
}

// EvaluateCheck evaluates every claim of a check in parallel and rolls the
// verdicts into one report. Claims share no mutable state, so the only
// coordination is the pool itself.
func (e *Engine) EvaluateCheck(ctx context.Context, check model.Check) *model.Report {
	workers := e.config.Concurrency.ClaimWorkers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(check.Claims) && len(check.Claims) > 0 {
		workers = len(check.Claims)
	}

	pool := worker.NewPool(workers)
	pool.Start()
	go func() {
		for i, claim := range check.Claims {
			pool.Submit(&claimJob{engine: e, claim: claim, index: i})
		}
		pool.Close()
	}()

	results := make([]model.ClaimResult, 0, len(check.Claims))
	collected := pool.Wait()
	ordered := make([]*claimResult, 0, len(collected))
	for _, r := range collected {
		ordered = append(ordered, r.(*claimResult))
	}
	sort.Slice(ordered, func(a, b int) bool { return ordered[a].index < ordered[b].index })
	for _, r := range ordered {
		results = append(results, r.result)
	}

	return &model.Report{
		CheckID:     check.CheckID,
		EvaluatedAt: time.Now().UTC(),
		Score:       e.scorer.AggregateCheck(check.CheckID, results),
		Claims:      results,
	}
}

func (e *Engine) warnf(format string, args ...interface{}) {
	if e.verbose {
		fmt.Fprintf(os.Stderr, "Warning: "+format+"\n", args...)
	}
}
