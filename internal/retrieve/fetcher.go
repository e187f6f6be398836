package retrieve

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/veridex/veridex/internal/cache"
	"github.com/veridex/veridex/internal/model"
	"github.com/veridex/veridex/internal/util"
)

// ErrRobotsDisallowed marks a URL whose robots.txt forbids fetching.
var ErrRobotsDisallowed = fmt.Errorf("robots.txt disallows fetching")

// Document is the retrievable content of one evidence URL.
type Document struct {
	Title       string     `json:"title,omitempty"`
	Text        string     `json:"text"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	FinalURL    string     `json:"final_url"`
}

// Fetcher retrieves evidence documents for items that arrive with a URL but
// no text. It honors robots.txt, rate-limits per domain, and caches fetched
// documents. The decision engine itself never fetches; this is the upstream
// retrieval collaborator's seam.
type Fetcher struct {
	httpClient *http.Client
	userAgent  string
	maxBytes   int64
	robots     *RobotsChecker
	limiter    *Limiter
	store      cache.Cache
}

// NewFetcher creates a fetcher from HTTP configuration. store may be nil to
// disable caching.
func NewFetcher(cfg model.HTTPConfig, store cache.Cache) *Fetcher {
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = 2_000_000
	}
	return &Fetcher{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
			Transport: &http.Transport{
				Proxy: util.NewProxyFunc(cfg.HTTPProxy, cfg.HTTPSProxy, cfg.NoProxy),
			},
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("stopped after 3 redirects")
				}
				return nil
			},
		},
		userAgent: cfg.UserAgent,
		maxBytes:  cfg.MaxBodyBytes,
		robots:    NewRobotsChecker(cfg.UserAgent, cfg.Timeout),
		limiter:   NewLimiter(cfg.RequestsPerSecond, cfg.Burst),
		store:     store,
	}
}

// FetchDocument retrieves and extracts the document behind a URL.
func (f *Fetcher) FetchDocument(ctx context.Context, rawURL string) (*Document, error) {
	if f.store != nil {
		if data, found := f.store.Get(cache.Key(rawURL)); found {
			var doc Document
			if err := json.Unmarshal(data, &doc); err == nil {
				return &doc, nil
			}
		}
	}

	allowed, crawlDelay, err := f.robots.CanFetch(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, fmt.Errorf("%w: %s", ErrRobotsDisallowed, rawURL)
	}
	if crawlDelay > 0 {
		// Honor the site's requested pacing for subsequent fetches.
		if d := crawlDelay.Seconds(); d > 0 {
			f.limiter.SetDomainRate(hostOf(rawURL), 1/d, 1)
		}
	}

	if err := f.limiter.Wait(ctx, rawURL); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status: %d %s", resp.StatusCode, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	doc := ExtractDocument(string(body))
	doc.FinalURL = resp.Request.URL.String()

	if f.store != nil {
		if data, err := json.Marshal(doc); err == nil {
			_ = f.store.Set(cache.Key(rawURL), data, 0)
		}
	}
	return doc, nil
}

func hostOf(rawURL string) string {
	req, err := http.NewRequest(http.MethodGet, rawURL, nil)
	if err != nil {
		return ""
	}
	return req.URL.Host
}
