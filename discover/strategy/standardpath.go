package strategy

import (
	"context"
	"net/http"
	"strings"

	"github.com/poliscout/poliscout/discover"
	"github.com/poliscout/poliscout/discover/fetch"
	"github.com/poliscout/poliscout/log"
	"golang.org/x/sync/errgroup"
)

const standardPathConfidence = 60

// StandardPath probes a broader per-type path list with cheap HEAD
// requests. No body is inspected, so it ranks below Direct-Fetch.
type StandardPath struct {
	Fetcher   *fetch.Fetcher
	BatchSize int
}

func (s *StandardPath) Name() string {
	return "standard_path"
}

func (s *StandardPath) Execute(ctx context.Context, domain string, docType discover.DocumentType) []discover.Candidate {
	rules, ok := rulesByType[docType]
	if !ok {
		return nil
	}

	base := "https://" + domain
	batch := s.BatchSize
	if batch <= 0 {
		batch = 5
	}

	paths := rules.StandardPaths
	var cands []discover.Candidate

	for start := 0; start < len(paths) && len(cands) == 0; start += batch {
		end := start + batch
		if end > len(paths) {
			end = len(paths)
		}

		hits := make([]*discover.Candidate, end-start)

		g, gctx := errgroup.WithContext(ctx)
		for i, path := range paths[start:end] {
			i, path := i, path
			g.Go(func() error {
				if c, ok := s.probe(gctx, base, path, rules); ok {
					hits[i] = &c
				}
				return nil
			})
		}
		g.Wait()

		for _, h := range hits {
			if h != nil {
				cands = append(cands, *h)
			}
		}
	}

	return cands
}

func (s *StandardPath) probe(ctx context.Context, base, path string, rules typeRules) (discover.Candidate, bool) {
	res, err := s.Fetcher.Head(ctx, base+path)
	if err != nil {
		log.Debug("standard path probe failed", "url", base+path, "error", err)
		return discover.Candidate{}, false
	}

	if res.StatusCode != http.StatusOK {
		return discover.Candidate{}, false
	}
	if !strings.Contains(strings.ToLower(res.ContentType), "text/html") {
		return discover.Candidate{}, false
	}
	if fetch.IsBlockedURL(res.FinalURL) {
		return discover.Candidate{}, false
	}

	return discover.NewCandidate(res.FinalURL, discover.SourceStandardPath, standardPathConfidence, "standard path "+path), true
}
