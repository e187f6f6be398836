package evidence

import (
	"sort"

	"github.com/veridex/veridex/internal/model"
)

// Enforcer caps the influence of commonly-owned sources. No single ownership
// group may contribute more than MaxPerOwner items to a claim's decision, and
// co-owned survivors are discounted so a media group cannot dominate a
// verdict by volume.
type Enforcer struct {
	MaxPerOwner      int
	SameOwnerPenalty float64
}

// NewEnforcer creates an enforcer with the given cap and penalty.
func NewEnforcer(maxPerOwner int, sameOwnerPenalty float64) *Enforcer {
	if maxPerOwner < 1 {
		maxPerOwner = 2
	}
	if sameOwnerPenalty <= 0 || sameOwnerPenalty > 1 {
		sameOwnerPenalty = 0.7
	}
	return &Enforcer{MaxPerOwner: maxPerOwner, SameOwnerPenalty: sameOwnerPenalty}
}

// Enforce groups evidence by owner (explicit ownership group, falling back to
// the source domain), keeps only the top MaxPerOwner of each group ranked by
// credibility*relevance, and applies the same-owner penalty to each survivor
// when more than one item from that owner made it through. Items with no
// resolvable owner or domain are independent and pass untouched.
func (e *Enforcer) Enforce(items []model.EvidenceItem) []model.EvidenceItem {
	groups := make(map[string][]int)
	var order []string
	for i, item := range items {
		key := ownerKey(item)
		if key == "" {
			continue
		}
		if _, seen := groups[key]; !seen {
			order = append(order, key)
		}
		groups[key] = append(groups[key], i)
	}

	drop := make(map[int]bool)
	penalize := make(map[int]bool)

	for _, key := range order {
		indices := groups[key]
		if len(indices) <= 1 {
			continue
		}

		ranked := append([]int(nil), indices...)
		sort.SliceStable(ranked, func(a, b int) bool {
			ia, ib := items[ranked[a]], items[ranked[b]]
			return ia.CredibilityScore()*ia.RawRelevance > ib.CredibilityScore()*ib.RawRelevance
		})

		kept := ranked
		if len(kept) > e.MaxPerOwner {
			for _, idx := range kept[e.MaxPerOwner:] {
				drop[idx] = true
			}
			kept = kept[:e.MaxPerOwner]
		}

		if len(kept) > 1 {
			for _, idx := range kept {
				penalize[idx] = true
			}
		}
	}

	survivors := make([]model.EvidenceItem, 0, len(items))
	for i, item := range items {
		if drop[i] {
			continue
		}
		if penalize[i] {
			if item.IndependencePenalty <= 0 || item.IndependencePenalty > 1 {
				item.IndependencePenalty = 1.0
			}
			item.IndependencePenalty *= e.SameOwnerPenalty
		}
		survivors = append(survivors, item)
	}
	return survivors
}

// ownerKey returns the grouping key for an item: the explicit ownership
// group when known, otherwise the source domain.
func ownerKey(item model.EvidenceItem) string {
	if item.SourceProfile.OwnerGroupID != "" {
		return "owner:" + item.SourceProfile.OwnerGroupID
	}
	if item.SourceProfile.Domain != "" {
		return "domain:" + item.SourceProfile.Domain
	}
	return ""
}
