package strategy

import (
	"github.com/poliscout/poliscout/discover"
	"github.com/poliscout/poliscout/discover/fetch"
	"github.com/poliscout/poliscout/discover/validate"
)

// Defaults returns the strategies in the engine's fixed priority order.
// The order is a design decision: cheap high-signal sources first, the
// search engine last.
func Defaults(fetcher *fetch.Fetcher, validator *validate.Validator) []discover.Strategy {
	return []discover.Strategy{
		&FooterScrape{Fetcher: fetcher},
		&DirectFetch{Fetcher: fetcher, BatchSize: 5},
		&StandardPath{Fetcher: fetcher, BatchSize: 5},
		&Sitemap{Fetcher: fetcher},
		&SearchFallback{Fetcher: fetcher, Validator: validator, MaxResults: 3},
	}
}
