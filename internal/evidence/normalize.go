package evidence

import (
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"strings"
	"time"

	"github.com/veridex/veridex/internal/model"
)

// Deduplicator canonicalizes evidence records and removes duplicates and
// syndicated copies before any weight is assigned to them.
type Deduplicator struct {
	// SyndicationWindow is how close two publish dates must be for
	// same-titled items to count as copies of one underlying story.
	SyndicationWindow time.Duration
}

// NewDeduplicator creates a deduplicator with the given syndication window.
func NewDeduplicator(window time.Duration) *Deduplicator {
	if window <= 0 {
		window = 72 * time.Hour
	}
	return &Deduplicator{SyndicationWindow: window}
}

// Deduplicate merges duplicate evidence items. Two items are duplicates when
// their content fingerprints match, their URL-equivalence keys match, or they
// look like syndicated copies (same normalized title, publish dates within
// the syndication window). The surviving item is the one with higher raw
// relevance, then the earlier-published one; the discarded item's URL is kept
// as provenance. Running Deduplicate on its own output is a no-op.
func (d *Deduplicator) Deduplicate(items []model.EvidenceItem) []model.EvidenceItem {
	if len(items) <= 1 {
		return items
	}

	survivors := make([]model.EvidenceItem, 0, len(items))
	byFingerprint := make(map[string]int)
	byURLKey := make(map[string]int)

	for _, item := range items {
		if item.ContentFingerprint == "" {
			item.ContentFingerprint = Fingerprint(item.Text)
		}
		key := urlKey(item.URL)

		idx := -1
		if item.ContentFingerprint != "" {
			if i, ok := byFingerprint[item.ContentFingerprint]; ok {
				idx = i
			}
		}
		if idx < 0 && key != "" {
			if i, ok := byURLKey[key]; ok {
				idx = i
			}
		}
		if idx < 0 {
			idx = d.findSyndicated(survivors, item)
		}

		if idx < 0 {
			survivors = append(survivors, item)
			idx = len(survivors) - 1
		} else {
			survivors[idx] = merge(survivors[idx], item)
		}

		if fp := survivors[idx].ContentFingerprint; fp != "" {
			byFingerprint[fp] = idx
		}
		if k := urlKey(survivors[idx].URL); k != "" {
			byURLKey[k] = idx
		}
	}

	return survivors
}

// findSyndicated scans survivors for a syndicated copy of item.
func (d *Deduplicator) findSyndicated(survivors []model.EvidenceItem, item model.EvidenceItem) int {
	title := normalizeText(item.Title)
	if title == "" || item.PublishedAt == nil {
		return -1
	}
	for i, s := range survivors {
		if s.PublishedAt == nil || normalizeText(s.Title) != title {
			continue
		}
		gap := item.PublishedAt.Sub(*s.PublishedAt)
		if gap < 0 {
			gap = -gap
		}
		if gap <= d.SyndicationWindow {
			return i
		}
	}
	return -1
}

// merge keeps the better of two duplicate items and records the loser's URL.
func merge(a, b model.EvidenceItem) model.EvidenceItem {
	winner, loser := a, b
	switch {
	case b.RawRelevance > a.RawRelevance:
		winner, loser = b, a
	case b.RawRelevance == a.RawRelevance && publishedBefore(b, a):
		winner, loser = b, a
	}

	winner.OriginalSourceURLs = append(winner.OriginalSourceURLs, loser.OriginalSourceURLs...)
	if loser.URL != "" && loser.URL != winner.URL {
		winner.OriginalSourceURLs = append(winner.OriginalSourceURLs, loser.URL)
	}
	return winner
}

func publishedBefore(a, b model.EvidenceItem) bool {
	if a.PublishedAt == nil || b.PublishedAt == nil {
		return false
	}
	return a.PublishedAt.Before(*b.PublishedAt)
}

// Fingerprint hashes normalized text content. Empty text yields an empty
// fingerprint so textless items never collide with each other.
func Fingerprint(text string) string {
	normalized := normalizeText(text)
	if normalized == "" {
		return ""
	}
	hash := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(hash[:])
}

// normalizeText lowercases and collapses all whitespace runs to single spaces.
func normalizeText(text string) string {
	return strings.Join(strings.Fields(strings.ToLower(text)), " ")
}

// urlKey reduces a URL to a scheme- and www-insensitive equivalence key.
func urlKey(rawURL string) string {
	parsed, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || parsed.Host == "" {
		return ""
	}
	host := strings.TrimPrefix(strings.ToLower(parsed.Hostname()), "www.")
	path := strings.TrimSuffix(parsed.EscapedPath(), "/")
	key := host + path
	if parsed.RawQuery != "" {
		key += "?" + parsed.RawQuery
	}
	return key
}
