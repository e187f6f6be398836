package reputation

import "github.com/veridex/veridex/internal/model"

// DefaultTable returns the built-in source-reputation table. A user-supplied
// table replaces it wholly rather than merging.
func DefaultTable() *Table {
	t := &Table{
		Tiers: map[model.Tier]TierEntry{
			model.TierAcademic: {
				Credibility: 0.95,
				Domains: []string{
					"*.edu", "*.ac.uk", "*.edu.au",
					"doi.org", "arxiv.org", "jstor.org",
					"scholar.google.com", "pubmed.ncbi.nlm.nih.gov",
				},
			},
			model.TierGovernment: {
				Credibility: 0.95,
				Domains: []string{
					"*.gov", "*.gov.uk", "*.gov.au", "*.gc.ca",
					"*.europa.eu", "who.int", "un.org",
				},
			},
			model.TierScientific: {
				Credibility: 0.9,
				Domains: []string{
					"nature.com", "science.org", "sciencedirect.com",
					"springer.com", "thelancet.com", "nejm.org",
					"plos.org", "cell.com",
				},
			},
			model.TierNewsTier1: {
				Credibility: 0.85,
				Domains: []string{
					"reuters.com", "apnews.com", "bbc.com", "bbc.co.uk",
					"ft.com", "economist.com", "nytimes.com",
					"washingtonpost.com", "wsj.com", "theguardian.com",
				},
			},
			model.TierFactcheck: {
				Credibility: 0.85,
				Domains: []string{
					"snopes.com", "factcheck.org", "politifact.com",
					"fullfact.org", "apnews.com/hub/ap-fact-check",
				},
			},
			model.TierReference: {
				Credibility: 0.75,
				Domains: []string{
					"wikipedia.org", "*.wikipedia.org", "britannica.com",
					"merriam-webster.com", "oed.com",
				},
			},
			model.TierNewsTier2: {
				Credibility: 0.65,
				Domains: []string{
					"cnn.com", "foxnews.com", "nbcnews.com", "cbsnews.com",
					"usatoday.com", "independent.co.uk", "telegraph.co.uk",
					"nypost.com", "dailymail.co.uk",
				},
			},
			model.TierStateMedia: {
				Credibility: 0.4,
				RiskFlags:   []string{"state_controlled"},
				Domains: []string{
					"rt.com", "sputniknews.com", "presstv.ir",
					"globaltimes.cn", "xinhuanet.com", "cgtn.com",
				},
			},
			model.TierBlacklist: {
				Credibility: 0.2,
				RiskFlags:   []string{"unreliable"},
				Domains: []string{
					"infowars.com", "naturalnews.com", "beforeitsnews.com",
					"worldtruth.tv", "yournewswire.com",
				},
			},
			model.TierSatire: {
				Credibility: 0.1,
				RiskFlags:   []string{"satire"},
				AutoExclude: true,
				Domains: []string{
					"theonion.com", "babylonbee.com", "thedailymash.co.uk",
					"newsthump.com", "clickhole.com",
				},
			},
		},
	}

	t.Ownership.Groups = []OwnershipGroup{
		{ID: "newscorp", Domains: []string{"wsj.com", "nypost.com", "thesun.co.uk", "thetimes.co.uk", "news.com.au"}},
		{ID: "gannett", Domains: []string{"usatoday.com", "azcentral.com", "freep.com"}},
		{ID: "dmgt", Domains: []string{"dailymail.co.uk", "metro.co.uk", "thisismoney.co.uk"}},
	}

	return t
}
