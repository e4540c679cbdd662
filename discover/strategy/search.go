package strategy

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/poliscout/poliscout/discover"
	"github.com/poliscout/poliscout/discover/fetch"
	"github.com/poliscout/poliscout/discover/validate"
	"github.com/poliscout/poliscout/log"
)

const (
	searchEndpoint      = "https://html.duckduckgo.com/html/"
	searchMaxConfidence = 80
)

// SearchFallback is the last resort: a site-scoped query against the
// search engine's HTML results page. Every result is fetched and run
// through the content validator before it may become a candidate.
type SearchFallback struct {
	Fetcher    *fetch.Fetcher
	Validator  *validate.Validator
	MaxResults int
}

func (s *SearchFallback) Name() string {
	return "search_fallback"
}

func (s *SearchFallback) Execute(ctx context.Context, domain string, docType discover.DocumentType) []discover.Candidate {
	rules, ok := rulesByType[docType]
	if !ok {
		return nil
	}

	query := fmt.Sprintf("site:%s %s", domain, rules.SearchPhrase)
	searchURL := searchEndpoint + "?q=" + url.QueryEscape(query)

	res, err := s.Fetcher.Fetch(ctx, searchURL)
	if err != nil {
		log.Debug("search fallback failed", "query", query, "error", err)
		return nil
	}
	if res.StatusCode != http.StatusOK {
		return nil
	}

	limit := s.MaxResults
	if limit <= 0 {
		limit = 3
	}

	var cands []discover.Candidate
	for _, resultURL := range s.resultURLs(res.Body, domain, limit) {
		if c, ok := s.validateResult(ctx, resultURL, domain, docType); ok {
			cands = append(cands, c)
		}
	}
	return cands
}

// resultURLs extracts same-domain result links from the results page,
// unwrapping the engine's redirect links
func (s *SearchFallback) resultURLs(body []byte, domain string, limit int) []string {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil
	}

	var urls []string
	seen := map[string]bool{}

	doc.Find("a.result__a, a.result__url").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		href, _ := sel.Attr("href")

		target := unwrapRedirect(href)
		u, err := url.Parse(target)
		if err != nil || !sameDomain(u.Host, domain) {
			return true
		}
		if fetch.IsBlockedURL(target) {
			return true
		}

		key := discover.CanonicalURL(target)
		if seen[key] {
			return true
		}
		seen[key] = true

		urls = append(urls, target)
		return len(urls) < limit
	})

	return urls
}

// unwrapRedirect resolves the uddg redirect parameter the results page
// wraps around external links
func unwrapRedirect(href string) string {
	if strings.HasPrefix(href, "//") {
		href = "https:" + href
	}

	u, err := url.Parse(href)
	if err != nil {
		return href
	}
	if target := u.Query().Get("uddg"); target != "" {
		return target
	}
	return href
}

func (s *SearchFallback) validateResult(ctx context.Context, resultURL, domain string, docType discover.DocumentType) (discover.Candidate, bool) {
	res, err := s.Fetcher.Fetch(ctx, resultURL)
	if err != nil || res.StatusCode != http.StatusOK {
		return discover.Candidate{}, false
	}

	text := validate.ExtractText(domain, string(res.Body))
	if reason, rejected := s.Validator.QuickReject(text, docType.String()); rejected {
		log.Debug("search result rejected", "url", resultURL, "reason", reason)
		return discover.Candidate{}, false
	}

	vres := s.Validator.Validate(text, docType.String())
	if !vres.IsValid {
		return discover.Candidate{}, false
	}

	conf := vres.Confidence
	if conf > searchMaxConfidence {
		conf = searchMaxConfidence
	}

	return discover.NewCandidate(res.FinalURL, discover.SourceSearchFallback, conf, "search result, content validated"), true
}
