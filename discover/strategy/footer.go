package strategy

import (
	"bytes"
	"context"
	"net/http"
	"net/url"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/poliscout/poliscout/discover"
	"github.com/poliscout/poliscout/discover/fetch"
	"github.com/poliscout/poliscout/log"
)

const (
	footerBaseConfidence = 70
	footerPlacementBonus = 8
	footerExactBonus     = 7
	footerMaxCandidates  = 3
)

// legalHubPaths are fetched when the homepage itself yields no usable
// link
var legalHubPaths = []string{"/legal", "/policies", "/about/legal"}

// FooterScrape fetches the homepage, classifies every anchor against the
// per-type pattern table, and prefers links placed in footer or
// navigation landmarks. Known hub-only URLs are excluded as destinations;
// when the homepage yields nothing, the legal hub pages themselves are
// scraped.
type FooterScrape struct {
	Fetcher *fetch.Fetcher
}

func (s *FooterScrape) Name() string {
	return "footer_link"
}

func (s *FooterScrape) Execute(ctx context.Context, domain string, docType discover.DocumentType) []discover.Candidate {
	rules, ok := rulesByType[docType]
	if !ok {
		return nil
	}

	base := "https://" + domain

	cands := s.scrapePage(ctx, base, domain, rules, discover.SourceFooterLink)
	if len(cands) > 0 {
		return cands
	}

	for _, hub := range legalHubPaths {
		cands = s.scrapePage(ctx, base+hub, domain, rules, discover.SourceLegalPage)
		if len(cands) > 0 {
			return cands
		}
	}

	return nil
}

func (s *FooterScrape) scrapePage(ctx context.Context, pageURL, domain string, rules typeRules, source discover.Source) []discover.Candidate {
	res, err := s.Fetcher.Fetch(ctx, pageURL)
	if err != nil {
		log.Debug("footer scrape fetch failed", "url", pageURL, "error", err)
		return nil
	}
	if res.StatusCode != http.StatusOK {
		return nil
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(res.Body))
	if err != nil {
		log.Debug("footer scrape parse failed", "url", pageURL, "error", err)
		return nil
	}

	baseURL, err := url.Parse(res.FinalURL)
	if err != nil {
		return nil
	}

	type scored struct {
		url        string
		confidence int
		detail     string
	}

	var hits []scored
	seen := map[string]bool{}

	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		text := strings.ToLower(strings.TrimSpace(sel.Text()))

		ref, err := url.Parse(strings.TrimSpace(href))
		if err != nil {
			return
		}
		abs := baseURL.ResolveReference(ref)
		if abs.Scheme != "http" && abs.Scheme != "https" {
			return
		}
		if !sameDomain(abs.Host, domain) {
			return
		}
		if hubOnlyRe.MatchString(abs.Path) {
			return
		}
		if fetch.IsBlockedURL(abs.String()) {
			return
		}

		if !matchesLink(text, abs.Path, rules) {
			return
		}

		key := discover.CanonicalURL(abs.String())
		if seen[key] {
			return
		}
		seen[key] = true

		conf := footerBaseConfidence
		detail := "link text: " + text

		if sel.Closest("footer, nav, [role=contentinfo]").Length() > 0 {
			conf += footerPlacementBonus
			detail += ", in footer"
		}
		if isExactPhrase(text, rules) {
			conf += footerExactBonus
			detail += ", exact phrase"
		}

		hits = append(hits, scored{url: abs.String(), confidence: conf, detail: detail})
	})

	sort.SliceStable(hits, func(i, j int) bool { return hits[i].confidence > hits[j].confidence })
	if len(hits) > footerMaxCandidates {
		hits = hits[:footerMaxCandidates]
	}

	cands := make([]discover.Candidate, 0, len(hits))
	for _, h := range hits {
		cands = append(cands, discover.NewCandidate(h.url, source, h.confidence, h.detail))
	}
	return cands
}

func matchesLink(text, path string, rules typeRules) bool {
	for _, p := range rules.LinkPatterns {
		if p.MatchString(text) || p.MatchString(path) {
			return true
		}
	}
	return false
}

func isExactPhrase(text string, rules typeRules) bool {
	for _, phrase := range rules.ExactPhrases {
		if text == phrase {
			return true
		}
	}
	return false
}

func sameDomain(host, domain string) bool {
	host = strings.ToLower(strings.TrimPrefix(host, "www."))
	domain = strings.ToLower(strings.TrimPrefix(domain, "www."))
	return host == domain || strings.HasSuffix(host, "."+domain)
}
