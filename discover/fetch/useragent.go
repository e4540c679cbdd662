package fetch

import (
	"net"
	"strings"
)

// userAgent pairs an identity string with whether it impersonates a
// search-engine crawler. Bot-fetched bodies get a lower indicator
// threshold downstream, so callers need to know which identity won.
type userAgent struct {
	Value string
	IsBot bool
}

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

const searchBotUserAgent = "Mozilla/5.0 (compatible; Googlebot/2.1; +http://www.google.com/bot.html)"

// browserUserAgents is the rotation pool for domains with aggressive
// anti-bot filtering. Ordered from most to least common so the first
// success is the most realistic identity.
var browserUserAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.1 Safari/605.1.15",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:121.0) Gecko/20100101 Firefox/121.0",
	"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
}

// botRequiredDomains block ordinary clients but serve search-engine
// crawlers. The crawler identity is tried first, the default agent kept
// as a fallback.
var botRequiredDomains = map[string]bool{
	"linkedin.com":  true,
	"instagram.com": true,
	"facebook.com":  true,
	"twitter.com":   true,
	"x.com":         true,
	"tiktok.com":    true,
	"pinterest.com": true,
}

// aggressiveAntiBotDomains fingerprint clients and reject generic
// identities; these get the full browser rotation.
var aggressiveAntiBotDomains = map[string]bool{
	"glassdoor.com":   true,
	"indeed.com":      true,
	"zillow.com":      true,
	"ticketmaster.com": true,
}

// baseDomain strips the port and a leading www. so table lookups match
// every form of a host
func baseDomain(host string) string {
	host = strings.ToLower(host)
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	host = strings.TrimSuffix(host, ".")
	return strings.TrimPrefix(host, "www.")
}

// agentsFor returns the ordered user-agent ladder for a host. A 403
// advances to the next rung; exhausting the ladder is a Forbidden error.
func agentsFor(host string) []userAgent {
	domain := baseDomain(host)

	if botRequiredDomains[domain] {
		return []userAgent{
			{Value: searchBotUserAgent, IsBot: true},
			{Value: defaultUserAgent},
		}
	}

	if aggressiveAntiBotDomains[domain] {
		agents := make([]userAgent, 0, len(browserUserAgents))
		for _, ua := range browserUserAgents {
			agents = append(agents, userAgent{Value: ua})
		}
		return agents
	}

	return []userAgent{{Value: defaultUserAgent}}
}
