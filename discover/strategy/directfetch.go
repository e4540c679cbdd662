package strategy

import (
	"bytes"
	"context"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/poliscout/poliscout/discover"
	"github.com/poliscout/poliscout/discover/fetch"
	"github.com/poliscout/poliscout/log"
	"golang.org/x/sync/errgroup"
)

// DirectFetch tries a prioritized list of likely paths with full GET
// requests. GET rather than HEAD because many servers mishandle HEAD on
// rewritten routes. Paths run in bounded parallel batches; the first
// batch producing any valid result ends the strategy.
type DirectFetch struct {
	Fetcher   *fetch.Fetcher
	BatchSize int
}

func (s *DirectFetch) Name() string {
	return "direct_fetch"
}

func (s *DirectFetch) Execute(ctx context.Context, domain string, docType discover.DocumentType) []discover.Candidate {
	rules, ok := rulesByType[docType]
	if !ok {
		return nil
	}

	base := "https://" + domain
	batch := s.BatchSize
	if batch <= 0 {
		batch = 5
	}

	paths := rules.PriorityPaths
	for start := 0; start < len(paths); start += batch {
		end := start + batch
		if end > len(paths) {
			end = len(paths)
		}

		// Results indexed by path position: completion order inside a
		// batch must not affect candidate order.
		hits := make([]*discover.Candidate, end-start)

		g, gctx := errgroup.WithContext(ctx)
		for i, path := range paths[start:end] {
			i, path := i, path
			g.Go(func() error {
				if c, ok := s.tryPath(gctx, base, path, rules); ok {
					hits[i] = &c
				}
				return nil
			})
		}
		g.Wait()

		var cands []discover.Candidate
		for _, h := range hits {
			if h != nil {
				cands = append(cands, *h)
			}
		}
		if len(cands) > 0 {
			return cands
		}
	}

	return nil
}

// tryPath fetches one candidate path and scores it. Validity requires a
// 200, an auth-wall-free final URL, and enough indicator phrases in the
// body. Bot-fetched pages need only one indicator: a crawler identity
// rarely reaches a decoy page, an ordinary one often does.
func (s *DirectFetch) tryPath(ctx context.Context, base, path string, rules typeRules) (discover.Candidate, bool) {
	res, err := s.Fetcher.Fetch(ctx, base+path)
	if err != nil {
		log.Debug("direct fetch failed", "url", base+path, "error", err)
		return discover.Candidate{}, false
	}
	if res.StatusCode != http.StatusOK {
		return discover.Candidate{}, false
	}
	if fetch.IsBlockedURL(res.FinalURL) {
		return discover.Candidate{}, false
	}

	indicators := countIndicators(res.Body, rules.Indicators)
	need := 2
	if res.UsedBotAgent {
		need = 1
	}
	if indicators < need {
		return discover.Candidate{}, false
	}

	conf := 75
	if strings.Contains(strings.ToLower(res.FinalURL), rules.URLKeyword) {
		conf += 10
	}
	if indicators >= 4 {
		conf += 5
	}
	if titleMatches(res.Body, rules) {
		conf += 5
	}
	if res.UsedBotAgent {
		conf += 3
	}

	return discover.NewCandidate(res.FinalURL, discover.SourceDirectFetch, conf, "direct fetch "+path), true
}

// countIndicators reports how many distinct indicator phrases appear in
// a body
func countIndicators(body []byte, indicators []string) int {
	lower := strings.ToLower(string(body))
	count := 0
	for _, phrase := range indicators {
		if strings.Contains(lower, phrase) {
			count++
		}
	}
	return count
}

// titleMatches reports whether the page title names the document
func titleMatches(body []byte, rules typeRules) bool {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return false
	}

	title := strings.ToLower(strings.TrimSpace(doc.Find("title").First().Text()))
	if title == "" {
		return false
	}

	if strings.Contains(title, rules.URLKeyword) {
		return true
	}
	for _, phrase := range rules.ExactPhrases {
		if strings.Contains(title, phrase) {
			return true
		}
	}
	return false
}
