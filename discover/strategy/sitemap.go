package strategy

import (
	"bytes"
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/poliscout/poliscout/discover"
	"github.com/poliscout/poliscout/discover/fetch"
	"github.com/poliscout/poliscout/log"
)

const (
	sitemapConfidence    = 50
	sitemapMaxCandidates = 3
	sitemapMaxChildren   = 5
)

// sitemapPaths are the well-known sitemap locations tried in order
var sitemapPaths = []string{"/sitemap.xml", "/sitemap_index.xml", "/sitemap-index.xml"}

// Sitemap matches sitemap-listed URLs against the per-type pattern
// table. No content is inspected, making this the lowest-confidence
// source. Sitemap indexes are followed one level down.
type Sitemap struct {
	Fetcher *fetch.Fetcher
}

func (s *Sitemap) Name() string {
	return "sitemap"
}

func (s *Sitemap) Execute(ctx context.Context, domain string, docType discover.DocumentType) []discover.Candidate {
	rules, ok := rulesByType[docType]
	if !ok {
		return nil
	}

	base := "https://" + domain

	for _, path := range sitemapPaths {
		urls := s.fetchLocs(ctx, base+path)
		if len(urls) == 0 {
			continue
		}

		// A sitemap index lists child sitemaps instead of pages
		if looksLikeIndex(urls) {
			var pages []string
			for i, child := range urls {
				if i >= sitemapMaxChildren {
					break
				}
				pages = append(pages, s.fetchLocs(ctx, child)...)
			}
			urls = pages
		}

		if cands := matchSitemapURLs(urls, domain, rules); len(cands) > 0 {
			return cands
		}
	}

	return nil
}

// fetchLocs downloads a sitemap and returns every <loc> value. The HTML
// parser handles the XML fine and keeps the lookup namespace-agnostic.
func (s *Sitemap) fetchLocs(ctx context.Context, sitemapURL string) []string {
	res, err := s.Fetcher.Fetch(ctx, sitemapURL)
	if err != nil {
		log.Debug("sitemap fetch failed", "url", sitemapURL, "error", err)
		return nil
	}
	if res.StatusCode != http.StatusOK {
		return nil
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(res.Body))
	if err != nil {
		log.Debug("sitemap parse failed", "url", sitemapURL, "error", err)
		return nil
	}

	var locs []string
	doc.Find("loc").Each(func(_ int, sel *goquery.Selection) {
		if loc := strings.TrimSpace(sel.Text()); loc != "" {
			locs = append(locs, loc)
		}
	})
	return locs
}

func looksLikeIndex(urls []string) bool {
	for _, u := range urls {
		if strings.Contains(strings.ToLower(u), "sitemap") && strings.HasSuffix(strings.ToLower(u), ".xml") {
			return true
		}
	}
	return false
}

func matchSitemapURLs(urls []string, domain string, rules typeRules) []discover.Candidate {
	var cands []discover.Candidate
	seen := map[string]bool{}

	for _, raw := range urls {
		u, err := url.Parse(strings.TrimSpace(raw))
		if err != nil || !sameDomain(u.Host, domain) {
			continue
		}
		if hubOnlyRe.MatchString(u.Path) {
			continue
		}

		if !matchesLink("", u.Path, rules) {
			continue
		}

		key := discover.CanonicalURL(raw)
		if seen[key] {
			continue
		}
		seen[key] = true

		cands = append(cands, discover.NewCandidate(raw, discover.SourceSitemap, sitemapConfidence, "sitemap entry"))
		if len(cands) >= sitemapMaxCandidates {
			break
		}
	}

	return cands
}
