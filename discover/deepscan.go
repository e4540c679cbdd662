package discover

import (
	"bytes"
	"context"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/poliscout/poliscout/discover/fetch"
	"github.com/poliscout/poliscout/discover/validate"
	"github.com/poliscout/poliscout/log"
)

// RefineResult is a deep-scan improvement over a seed candidate
type RefineResult struct {
	URL        string
	Confidence int
	Reason     string
}

// Refiner finds a more specific nested page below a first-pass candidate
type Refiner interface {
	Refine(ctx context.Context, seedURL, domain string, maxDepth int) (RefineResult, bool)
}

// specificitySignals mark link text or hrefs that point at a concrete
// document rather than a hub landing page. German terms cover the common
// /datenschutz/ hub case; dated segments catch versioned documents.
var specificitySignals = []*regexp.Regexp{
	regexp.MustCompile(`(?i)policy|notice|statement`),
	regexp.MustCompile(`(?i)erkl(ä|ae?)rung|richtlinie`),
	regexp.MustCompile(`(?i)politique|politica|política`),
	regexp.MustCompile(`(?i)full|complete|detail`),
	regexp.MustCompile(`/\d{4}[-/]`),
}

// DeepLinkScanner follows in-page links from a hub-like seed page to the
// more specific document it links to, bounded by depth and per-page link
// count.
type DeepLinkScanner struct {
	Fetcher   *fetch.Fetcher
	Validator *validate.Validator
	LinkLimit int
}

// NewDeepLinkScanner creates a scanner with the default per-page link cap
func NewDeepLinkScanner(fetcher *fetch.Fetcher, validator *validate.Validator) *DeepLinkScanner {
	return &DeepLinkScanner{
		Fetcher:   fetcher,
		Validator: validator,
		LinkLimit: 5,
	}
}

// Refine validates the seed page, then walks increasingly specific nested
// links up to maxDepth hops. It reports a result only when a strictly
// more confident page was found; otherwise the seed stands.
func (s *DeepLinkScanner) Refine(ctx context.Context, seedURL, domain string, maxDepth int) (RefineResult, bool) {
	if maxDepth <= 0 {
		return RefineResult{}, false
	}

	body, finalURL, ok := s.fetchPage(ctx, seedURL)
	if !ok {
		return RefineResult{}, false
	}

	seedConf := s.Validator.Validate(validate.ExtractText(domain, string(body)), string(TypePrivacy)).Confidence

	visited := map[string]bool{CanonicalURL(finalURL): true, CanonicalURL(seedURL): true}

	best := RefineResult{Confidence: seedConf}
	s.scan(ctx, body, finalURL, domain, maxDepth, visited, &best)

	if best.URL == "" {
		return RefineResult{}, false
	}
	return best, true
}

// scan inspects one fetched page's links and recurses into any link that
// improved on the current best confidence
func (s *DeepLinkScanner) scan(ctx context.Context, body []byte, pageURL, domain string, depth int, visited map[string]bool, best *RefineResult) {
	if depth <= 0 {
		return
	}

	for _, link := range s.specificLinks(body, pageURL, domain) {
		key := CanonicalURL(link)
		if visited[key] {
			continue
		}
		visited[key] = true

		linkBody, linkFinal, ok := s.fetchPage(ctx, link)
		if !ok {
			continue
		}

		text := validate.ExtractText(domain, string(linkBody))
		if reason, rejected := s.Validator.QuickReject(text, string(TypePrivacy)); rejected {
			log.Debug("deep scan link rejected", "url", link, "reason", reason)
			continue
		}

		res := s.Validator.Validate(text, string(TypePrivacy))
		if res.IsValid && res.Confidence > best.Confidence {
			best.URL = linkFinal
			best.Confidence = res.Confidence
			best.Reason = "more specific nested page"

			s.scan(ctx, linkBody, linkFinal, domain, depth-1, visited, best)
		}
	}
}

// specificLinks extracts same-domain links whose text or href carry
// stronger specificity signals than a generic hub page
func (s *DeepLinkScanner) specificLinks(body []byte, pageURL, domain string) []string {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil
	}

	base, err := url.Parse(pageURL)
	if err != nil {
		return nil
	}

	limit := s.LinkLimit
	if limit <= 0 {
		limit = 5
	}

	var links []string
	seen := map[string]bool{}

	doc.Find("a[href]").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		href, _ := sel.Attr("href")
		text := strings.TrimSpace(sel.Text())

		ref, err := url.Parse(strings.TrimSpace(href))
		if err != nil {
			return true
		}
		abs := base.ResolveReference(ref)
		if abs.Scheme != "http" && abs.Scheme != "https" {
			return true
		}
		if !sameDomain(abs.Host, domain) {
			return true
		}
		if fetch.IsBlockedURL(abs.String()) {
			return true
		}

		if !matchesAnySignal(text) && !matchesAnySignal(abs.Path) {
			return true
		}

		key := CanonicalURL(abs.String())
		if seen[key] {
			return true
		}
		seen[key] = true

		links = append(links, abs.String())
		return len(links) < limit
	})

	return links
}

func (s *DeepLinkScanner) fetchPage(ctx context.Context, pageURL string) ([]byte, string, bool) {
	res, err := s.Fetcher.Fetch(ctx, pageURL)
	if err != nil || res.StatusCode != http.StatusOK {
		return nil, "", false
	}
	return res.Body, res.FinalURL, true
}

func matchesAnySignal(s string) bool {
	for _, re := range specificitySignals {
		if re.MatchString(s) {
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
