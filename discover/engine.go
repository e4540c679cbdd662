package discover

import (
	"context"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/morikuni/failure/v2"
	"github.com/poliscout/poliscout/discover/fetch"
	"github.com/poliscout/poliscout/discover/validate"
	"github.com/poliscout/poliscout/log"
	"github.com/samber/lo"
)

// Strategy is one independent resolution algorithm. Execute never fails:
// per-URL and per-strategy errors are logged inside the strategy and
// surface only as an empty candidate slice.
type Strategy interface {
	Name() string
	Execute(ctx context.Context, domain string, docType DocumentType) []Candidate
}

// Engine orchestrates strategies in a fixed priority order, applies the
// early-stop confidence policy, and refines the winner through the deep
// link scanner. The engine is stateless across calls; the fetcher's rate
// limiter is the only process-wide shared state.
type Engine struct {
	Config     Config
	Strategies []Strategy
	Specials   SpecialTable

	// Refiner may be nil to skip the deep scan pass
	Refiner Refiner

	// VerifySpecial confirms a special-domain URL with a lightweight
	// request before it is returned; nil falls through to strategies
	// for every table entry
	VerifySpecial func(ctx context.Context, url string) bool
}

// NewEngine wires an engine with the default special-domain table, a
// HEAD-probe special verifier and a deep link scanner.
func NewEngine(cfg Config, fetcher *fetch.Fetcher, validator *validate.Validator, strategies ...Strategy) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	scanner := NewDeepLinkScanner(fetcher, validator)
	scanner.LinkLimit = cfg.DeepScanLinkLimit

	return &Engine{
		Config:     cfg,
		Strategies: strategies,
		Specials:   DefaultSpecialTable(),
		Refiner:    scanner,
		VerifySpecial: func(ctx context.Context, url string) bool {
			res, err := fetcher.Head(ctx, url)
			return err == nil && res.StatusCode == http.StatusOK
		},
	}, nil
}

// Discover locates the most likely privacy policy URL for a domain.
// ok=false means no strategy produced a candidate; that is an outcome,
// not an error.
func (e *Engine) Discover(ctx context.Context, domain string) (Candidate, bool, error) {
	return e.DiscoverType(ctx, domain, TypePrivacy)
}

// DiscoverType runs the full pipeline for one document type
func (e *Engine) DiscoverType(ctx context.Context, domain string, docType DocumentType) (Candidate, bool, error) {
	domain, err := NormalizeDomain(domain)
	if err != nil {
		return Candidate{}, false, err
	}

	logger := log.Logger.With("domain", domain, "type", docType.String())

	if c, ok := e.specialDomainCheck(ctx, domain, docType); ok {
		logger.Info("special domain hit", "url", c.URL)
		return c, true, nil
	}

	candidates := e.runStrategies(ctx, domain, docType)
	if len(candidates) == 0 {
		logger.Info("no candidates found")
		return Candidate{}, false, nil
	}

	// Stable sort keeps strategy priority order as the tie-breaker;
	// batch completion order inside a strategy never affects ranking.
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Confidence > candidates[j].Confidence
	})

	best := candidates[0]
	logger.Info("candidate selected", "url", best.URL, "source", best.Source.String(), "confidence", best.Confidence)

	if docType == TypePrivacy && e.Refiner != nil {
		if ref, ok := e.Refiner.Refine(ctx, best.URL, domain, e.Config.DeepScanDepth); ok && ref.Confidence > best.Confidence {
			logger.Info("deep scan improved candidate", "url", ref.URL, "confidence", ref.Confidence)
			best = Candidate{
				URL:          ref.URL,
				Source:       best.Source,
				Confidence:   ClampConfidence(ref.Confidence),
				FoundAt:      time.Now(),
				MethodDetail: "deep link scan: " + ref.Reason,
			}
		}
	}

	return best, true, nil
}

// DiscoverAll resolves every requested document type for a domain. The
// first validated match per type wins; types with no match are omitted.
func (e *Engine) DiscoverAll(ctx context.Context, domain string) ([]DiscoveredDocument, error) {
	normalized, err := NormalizeDomain(domain)
	if err != nil {
		return nil, err
	}

	var docs []DiscoveredDocument

	for _, docType := range AllDocumentTypes() {
		c, ok, err := e.DiscoverType(ctx, normalized, docType)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}

		docs = append(docs, DiscoveredDocument{
			Type:        docType,
			DisplayName: docType.DisplayName(),
			URL:         c.URL,
		})
	}

	return docs, nil
}

// specialDomainCheck returns a verified override candidate, bypassing
// every strategy for known-problematic domains
func (e *Engine) specialDomainCheck(ctx context.Context, domain string, docType DocumentType) (Candidate, bool) {
	u, ok := e.Specials.Lookup(domain, docType)
	if !ok {
		return Candidate{}, false
	}

	if e.VerifySpecial != nil && !e.VerifySpecial(ctx, u) {
		log.Debug("special domain entry failed verification", "domain", domain, "url", u)
		return Candidate{}, false
	}

	return NewCandidate(u, SourceSpecialDomain, e.Config.SpecialDomainConfidence, "special domain table"), true
}

// runStrategies executes the priority-ordered strategy list, accumulating
// de-duplicated candidates and stopping early once any candidate reaches
// the configured confidence.
func (e *Engine) runStrategies(ctx context.Context, domain string, docType DocumentType) []Candidate {
	var all []Candidate
	seen := map[string]bool{}

	for _, s := range e.Strategies {
		cands := s.Execute(ctx, domain, docType)
		log.Debug("strategy finished", "strategy", s.Name(), "domain", domain, "candidates", len(cands))

		for _, c := range cands {
			key := CanonicalURL(c.URL)
			if seen[key] {
				continue
			}
			seen[key] = true
			all = append(all, c)
		}

		if lo.SomeBy(all, func(c Candidate) bool { return c.Confidence >= e.Config.EarlyStopConfidence }) {
			log.Debug("early stop", "strategy", s.Name(), "accumulated", len(all))
			break
		}
	}

	return all
}

// NormalizeDomain reduces user input to a bare hostname: scheme, path,
// port and surrounding whitespace are dropped.
func NormalizeDomain(domain string) (string, error) {
	d := strings.ToLower(strings.TrimSpace(domain))
	d = strings.TrimPrefix(d, "https://")
	d = strings.TrimPrefix(d, "http://")

	if i := strings.IndexAny(d, "/?#"); i >= 0 {
		d = d[:i]
	}
	if i := strings.Index(d, ":"); i >= 0 {
		d = d[:i]
	}
	d = strings.TrimSuffix(d, ".")

	if d == "" || strings.ContainsAny(d, " \t") || !strings.Contains(d, ".") {
		return "", failure.New(ErrInvalidDomain,
			failure.Message("domain cannot be normalized"),
			failure.Context{"domain": domain},
		)
	}
	return d, nil
}
