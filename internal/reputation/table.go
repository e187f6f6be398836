package reputation

import (
	"fmt"
	"os"

	"github.com/veridex/veridex/internal/model"
	"gopkg.in/yaml.v3"
)

// TierPriority is the fixed order tiers are checked in when resolving a
// domain. Flagging tiers come before trust tiers so that a hand-blacklisted
// .gov domain is flagged rather than trusted. Correctness depends on this
// being an explicit ordered list, not map iteration.
var TierPriority = []model.Tier{
	model.TierSatire,
	model.TierBlacklist,
	model.TierStateMedia,
	model.TierFactcheck,
	model.TierAcademic,
	model.TierGovernment,
	model.TierScientific,
	model.TierNewsTier1,
	model.TierReference,
	model.TierNewsTier2,
}

// GeneralCredibility is the fallback score for unmatched domains.
const GeneralCredibility = 0.6

// TierEntry is one tier's reputation configuration.
type TierEntry struct {
	Credibility float64  `yaml:"credibility"`
	Domains     []string `yaml:"domains"`
	RiskFlags   []string `yaml:"risk_flags,omitempty"`
	AutoExclude bool     `yaml:"auto_exclude,omitempty"`
}

// OwnershipGroup maps domains to a common media owner.
type OwnershipGroup struct {
	ID      string   `yaml:"id"`
	Domains []string `yaml:"domains"`
}

// Table is the source-reputation table: tier name to credibility and domain
// patterns, plus ownership groups. Loaded once at startup and read-only for
// the lifetime of the process.
type Table struct {
	Tiers     map[model.Tier]TierEntry `yaml:"tiers"`
	Ownership struct {
		Groups []OwnershipGroup `yaml:"groups"`
	} `yaml:"ownership"`
}

// LoadTable reads a tier table from a YAML file. An empty path returns the
// built-in defaults. Parse and validation errors are fatal at boot: running
// with a broken table would systematically corrupt every verdict.
func LoadTable(path string) (*Table, error) {
	if path == "" {
		return DefaultTable(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read reputation table: %w", err)
	}

	var table Table
	if err := yaml.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("parse reputation table: %w", err)
	}

	if err := table.Validate(); err != nil {
		return nil, fmt.Errorf("invalid reputation table %s: %w", path, err)
	}

	return &table, nil
}

// Validate checks the table for entries that would corrupt credibility math.
func (t *Table) Validate() error {
	if len(t.Tiers) == 0 {
		return fmt.Errorf("no tiers defined")
	}
	for name, entry := range t.Tiers {
		if entry.Credibility < 0 || entry.Credibility > 1 {
			return fmt.Errorf("tier %q: credibility must be in [0,1], got %g", name, entry.Credibility)
		}
		if len(entry.Domains) == 0 {
			return fmt.Errorf("tier %q: no domain patterns", name)
		}
		for _, pattern := range entry.Domains {
			if pattern == "" || pattern == "*." {
				return fmt.Errorf("tier %q: empty domain pattern", name)
			}
		}
	}
	seen := make(map[string]string)
	for _, group := range t.Ownership.Groups {
		if group.ID == "" {
			return fmt.Errorf("ownership group with empty id")
		}
		for _, domain := range group.Domains {
			if prev, ok := seen[domain]; ok && prev != group.ID {
				return fmt.Errorf("domain %q in ownership groups %q and %q", domain, prev, group.ID)
			}
			seen[domain] = group.ID
		}
	}
	return nil
}

// OwnerGroupFor returns the ownership group id for a domain, or "" when the
// domain has no recorded owner.
func (t *Table) OwnerGroupFor(domain string) string {
	for _, group := range t.Ownership.Groups {
		for _, d := range group.Domains {
			if domain == d || hasParentDomain(domain, d) {
				return group.ID
			}
		}
	}
	return ""
}
