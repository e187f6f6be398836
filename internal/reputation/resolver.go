package reputation

import (
	"net/url"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/veridex/veridex/internal/model"
)

// Resolver maps evidence URLs to source reputation profiles. Resolution is a
// pure function over the table plus an in-process cache keyed by domain, so
// repeated evidence from one outlet parses the table once.
type Resolver struct {
	table *Table
	cache *gocache.Cache
}

// NewResolver creates a resolver over a loaded, validated table.
func NewResolver(table *Table, cacheTTL time.Duration) *Resolver {
	if table == nil {
		table = DefaultTable()
	}
	if cacheTTL <= 0 {
		cacheTTL = time.Hour
	}
	return &Resolver{
		table: table,
		cache: gocache.New(cacheTTL, 10*time.Minute),
	}
}

// Resolve maps a URL to its source profile. A malformed URL falls back to the
// general tier rather than failing: a missing credibility judgment must never
// abort the pipeline.
func (r *Resolver) Resolve(rawURL string) model.SourceProfile {
	domain := normalizeDomain(rawURL)
	if domain == "" {
		return r.generalProfile("")
	}

	if cached, found := r.cache.Get(domain); found {
		return cached.(model.SourceProfile)
	}

	profile := r.resolveDomain(domain)
	r.cache.SetDefault(domain, profile)
	return profile
}

// resolveDomain checks tiers in priority order; first match wins. Within a
// tier, a pattern matches on literal equality, parent-domain suffix, or a
// *.suffix wildcard.
func (r *Resolver) resolveDomain(domain string) model.SourceProfile {
	for _, tier := range TierPriority {
		entry, ok := r.table.Tiers[tier]
		if !ok {
			continue
		}
		for _, pattern := range entry.Domains {
			if matchesPattern(domain, pattern) {
				return model.SourceProfile{
					Domain:       domain,
					Tier:         tier,
					Credibility:  entry.Credibility,
					RiskFlags:    entry.RiskFlags,
					AutoExclude:  entry.AutoExclude,
					OwnerGroupID: r.table.OwnerGroupFor(domain),
				}
			}
		}
	}
	return r.generalProfile(domain)
}

func (r *Resolver) generalProfile(domain string) model.SourceProfile {
	return model.SourceProfile{
		Domain:       domain,
		Tier:         model.TierGeneral,
		Credibility:  GeneralCredibility,
		OwnerGroupID: r.table.OwnerGroupFor(domain),
	}
}

// matchesPattern reports whether a domain matches a table pattern.
func matchesPattern(domain, pattern string) bool {
	if suffix, ok := strings.CutPrefix(pattern, "*."); ok {
		return domain == suffix || strings.HasSuffix(domain, "."+suffix)
	}
	// A path-qualified pattern (e.g. a fact-check hub under a news domain)
	// only matches its exact domain part.
	if idx := strings.Index(pattern, "/"); idx >= 0 {
		pattern = pattern[:idx]
	}
	return domain == pattern || hasParentDomain(domain, pattern)
}

// hasParentDomain reports whether domain is a subdomain of parent.
func hasParentDomain(domain, parent string) bool {
	return strings.HasSuffix(domain, "."+parent)
}

// normalizeDomain extracts a lowercased, port- and www-stripped host from a
// URL. Returns "" when no host can be recovered.
func normalizeDomain(rawURL string) string {
	parsed, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return ""
	}

	host := parsed.Hostname()
	if host == "" {
		// Tolerate bare "example.com/path" inputs.
		if parsed, err = url.Parse("https://" + strings.TrimSpace(rawURL)); err != nil {
			return ""
		}
		host = parsed.Hostname()
	}

	host = strings.ToLower(host)
	host = strings.TrimPrefix(host, "www.")
	return host
}
