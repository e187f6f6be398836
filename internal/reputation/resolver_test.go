package reputation

import (
	"testing"

	"github.com/veridex/veridex/internal/model"
)

func TestResolver_TierMatching(t *testing.T) {
	resolver := NewResolver(DefaultTable(), 0)

	tests := []struct {
		url      string
		expected model.Tier
		desc     string
	}{
		{
			url:      "https://www.cdc.gov/flu/index.html",
			expected: model.TierGovernment,
			desc:     "wildcard *.gov match",
		},
		{
			url:      "https://ora.ox.ac.uk/objects/uuid:123",
			expected: model.TierAcademic,
			desc:     "wildcard *.ac.uk match",
		},
		{
			url:      "https://doi.org/10.1000/xyz",
			expected: model.TierAcademic,
			desc:     "literal academic domain",
		},
		{
			url:      "https://www.reuters.com/world/article",
			expected: model.TierNewsTier1,
			desc:     "www-stripped literal match",
		},
		{
			url:      "https://en.wikipedia.org/wiki/Laksa",
			expected: model.TierReference,
			desc:     "subdomain of reference domain",
		},
		{
			url:      "https://www.theonion.com/some-story",
			expected: model.TierSatire,
			desc:     "satire literal match",
		},
		{
			url:      "https://blog.example.io/post",
			expected: model.TierGeneral,
			desc:     "unmatched domain falls back to general",
		},
	}

	for _, tt := range tests {
		profile := resolver.Resolve(tt.url)
		if profile.Tier != tt.expected {
			t.Errorf("%s: Resolve(%q) tier = %q, want %q", tt.desc, tt.url, profile.Tier, tt.expected)
		}
	}
}

func TestResolver_MalformedURLFallsBackToGeneral(t *testing.T) {
	resolver := NewResolver(DefaultTable(), 0)

	for _, raw := range []string{"", ":::not-a-url", "%%%"} {
		profile := resolver.Resolve(raw)
		if profile.Tier != model.TierGeneral {
			t.Errorf("Resolve(%q) tier = %q, want general", raw, profile.Tier)
		}
		if profile.Credibility != GeneralCredibility {
			t.Errorf("Resolve(%q) credibility = %g, want %g", raw, profile.Credibility, GeneralCredibility)
		}
	}
}

func TestResolver_BlacklistBeatsGovernment(t *testing.T) {
	// A hand-blacklisted domain that would also match a trust tier must be
	// flagged, not trusted.
	table := &Table{
		Tiers: map[model.Tier]TierEntry{
			model.TierGovernment: {Credibility: 0.95, Domains: []string{"*.gov"}},
			model.TierBlacklist:  {Credibility: 0.2, RiskFlags: []string{"unreliable"}, Domains: []string{"rogue.gov"}},
		},
	}
	resolver := NewResolver(table, 0)

	profile := resolver.Resolve("https://rogue.gov/press")
	if profile.Tier != model.TierBlacklist {
		t.Errorf("tier = %q, want blacklist to take precedence over government", profile.Tier)
	}
	if profile.Credibility != 0.2 {
		t.Errorf("credibility = %g, want 0.2", profile.Credibility)
	}

	if got := resolver.Resolve("https://www.usda.gov/topics").Tier; got != model.TierGovernment {
		t.Errorf("unblacklisted .gov tier = %q, want government", got)
	}
}

func TestResolver_OwnerGroup(t *testing.T) {
	resolver := NewResolver(DefaultTable(), 0)

	profile := resolver.Resolve("https://www.wsj.com/articles/x")
	if profile.OwnerGroupID != "newscorp" {
		t.Errorf("wsj.com owner group = %q, want newscorp", profile.OwnerGroupID)
	}

	profile = resolver.Resolve("https://www.reuters.com/article")
	if profile.OwnerGroupID != "" {
		t.Errorf("reuters.com owner group = %q, want none", profile.OwnerGroupID)
	}
}

func TestResolver_CachedResolutionIsStable(t *testing.T) {
	resolver := NewResolver(DefaultTable(), 0)

	first := resolver.Resolve("https://www.nature.com/articles/x")
	second := resolver.Resolve("http://nature.com/articles/y")

	if first.Tier != second.Tier || first.Credibility != second.Credibility {
		t.Errorf("cached resolution differs: %+v vs %+v", first, second)
	}
}
