package strategy

import (
	"regexp"

	"github.com/poliscout/poliscout/discover"
)

// typeRules is the static per-document-type rule data the strategies
// share. It is configuration, not algorithm: tuning a path list or link
// pattern never touches strategy code.
type typeRules struct {
	// PriorityPaths are tried by Direct-Fetch with full GETs, in order
	PriorityPaths []string

	// StandardPaths is the broader list probed with HEAD requests
	StandardPaths []string

	// URLKeyword earns a confidence bonus when present in the final URL
	URLKeyword string

	// LinkPatterns classify anchor text and hrefs
	LinkPatterns []*regexp.Regexp

	// ExactPhrases are link texts that identify the document outright
	ExactPhrases []string

	// SearchPhrase is the query used by the search-engine fallback
	SearchPhrase string

	// Indicators are body phrases counted for Direct-Fetch validity
	Indicators []string
}

// hubOnlyRe matches paths that are legal hub landing pages, never the
// document itself
var hubOnlyRe = regexp.MustCompile(`(?i)^/(legal|policies|privacy-center|trust)/?$`)

var rulesByType = map[discover.DocumentType]typeRules{
	discover.TypePrivacy: {
		PriorityPaths: []string{
			"/privacy",
			"/privacy-policy",
			"/legal/privacy",
			"/privacy-notice",
			"/policies/privacy",
			"/privacy_policy",
			"/privacypolicy",
			"/legal/privacy-policy",
			"/about/privacy",
			"/datenschutz",
		},
		StandardPaths: []string{
			"/privacy", "/privacy-policy", "/legal/privacy", "/privacy-notice",
			"/policies/privacy", "/privacy_policy", "/privacypolicy",
			"/legal/privacy-policy", "/about/privacy", "/datenschutz",
			"/en/privacy", "/help/privacy", "/site/privacy", "/privacy.html",
			"/privacy.php", "/privacy-statement", "/legal/datenschutz",
			"/datenschutzerklaerung", "/politique-de-confidentialite",
		},
		URLKeyword: "privacy",
		LinkPatterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)privacy`),
			regexp.MustCompile(`(?i)datenschutz`),
			regexp.MustCompile(`(?i)confidentialit`),
			regexp.MustCompile(`(?i)privacidad`),
		},
		ExactPhrases: []string{
			"privacy policy", "privacy notice", "privacy statement",
			"datenschutzerklärung", "politique de confidentialité",
			"política de privacidad",
		},
		SearchPhrase: "privacy policy",
		Indicators: []string{
			"personal data", "personal information", "information we collect",
			"data we collect", "privacy policy", "data protection",
			"your privacy", "cookies", "third parties",
		},
	},
	discover.TypeTerms: {
		PriorityPaths: []string{
			"/terms", "/terms-of-service", "/tos", "/terms-of-use",
			"/legal/terms", "/terms-and-conditions", "/legal/terms-of-service",
		},
		StandardPaths: []string{
			"/terms", "/terms-of-service", "/tos", "/terms-of-use",
			"/legal/terms", "/terms-and-conditions", "/legal/terms-of-service",
			"/en/terms", "/terms.html", "/legal/tos", "/conditions",
			"/nutzungsbedingungen", "/agb",
		},
		URLKeyword: "terms",
		LinkPatterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)terms`),
			regexp.MustCompile(`(?i)conditions`),
			regexp.MustCompile(`(?i)\btos\b`),
			regexp.MustCompile(`(?i)user agreement`),
			regexp.MustCompile(`(?i)nutzungsbedingungen|agb`),
		},
		ExactPhrases: []string{
			"terms of service", "terms of use", "terms and conditions",
			"user agreement",
		},
		SearchPhrase: "terms of service",
		Indicators: []string{
			"terms of service", "terms of use", "you agree", "agreement",
			"liability", "termination", "governing law",
		},
	},
	discover.TypeCookies: {
		PriorityPaths: []string{
			"/cookies", "/cookie-policy", "/legal/cookies", "/cookie-notice",
			"/policies/cookies",
		},
		StandardPaths: []string{
			"/cookies", "/cookie-policy", "/legal/cookies", "/cookie-notice",
			"/policies/cookies", "/en/cookies", "/cookies.html",
			"/cookie-richtlinie",
		},
		URLKeyword: "cookie",
		LinkPatterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)cookie`),
		},
		ExactPhrases: []string{"cookie policy", "cookie notice", "cookies"},
		SearchPhrase: "cookie policy",
		Indicators: []string{
			"cookie", "tracking technologies", "browser settings",
			"third-party cookies", "analytics",
		},
	},
	discover.TypeSecurity: {
		PriorityPaths: []string{
			"/security", "/legal/security", "/trust/security",
			"/security-policy", "/policies/security",
		},
		StandardPaths: []string{
			"/security", "/legal/security", "/trust/security",
			"/security-policy", "/policies/security", "/trust",
			"/security.html", "/responsible-disclosure",
		},
		URLKeyword: "security",
		LinkPatterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)security`),
			regexp.MustCompile(`(?i)sicherheit`),
			regexp.MustCompile(`(?i)responsible disclosure`),
		},
		ExactPhrases: []string{"security policy", "security", "trust center"},
		SearchPhrase: "security policy",
		Indicators: []string{
			"security", "encryption", "vulnerability", "incident",
			"penetration test", "access control",
		},
	},
	discover.TypeGDPR: {
		PriorityPaths: []string{
			"/gdpr", "/legal/gdpr", "/privacy/gdpr", "/gdpr-compliance",
		},
		StandardPaths: []string{
			"/gdpr", "/legal/gdpr", "/privacy/gdpr", "/gdpr-compliance",
			"/legal/data-processing", "/dpa", "/legal/dpa",
		},
		URLKeyword: "gdpr",
		LinkPatterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)gdpr|dsgvo`),
			regexp.MustCompile(`(?i)data processing`),
		},
		ExactPhrases: []string{"gdpr", "gdpr compliance", "data processing agreement"},
		SearchPhrase: "gdpr",
		Indicators: []string{
			"gdpr", "general data protection regulation", "data subject",
			"processor", "controller", "supervisory authority",
		},
	},
	discover.TypeCCPA: {
		PriorityPaths: []string{
			"/ccpa", "/legal/ccpa", "/privacy/ccpa", "/privacy/california",
			"/california-privacy",
		},
		StandardPaths: []string{
			"/ccpa", "/legal/ccpa", "/privacy/ccpa", "/privacy/california",
			"/california-privacy", "/do-not-sell",
		},
		URLKeyword: "ccpa",
		LinkPatterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)ccpa`),
			regexp.MustCompile(`(?i)california privacy`),
			regexp.MustCompile(`(?i)do not sell`),
		},
		ExactPhrases: []string{"ccpa", "california privacy rights", "do not sell my personal information"},
		SearchPhrase: "ccpa california privacy",
		Indicators: []string{
			"ccpa", "california consumer privacy act", "do not sell",
			"california residents", "opt out",
		},
	},
	discover.TypeAI: {
		PriorityPaths: []string{
			"/ai-policy", "/legal/ai", "/ai", "/policies/ai",
		},
		StandardPaths: []string{
			"/ai-policy", "/legal/ai", "/ai", "/policies/ai",
			"/legal/ai-policy", "/responsible-ai",
		},
		URLKeyword: "ai",
		LinkPatterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\bai\b`),
			regexp.MustCompile(`(?i)artificial intelligence`),
			regexp.MustCompile(`(?i)responsible ai`),
		},
		ExactPhrases: []string{"ai policy", "responsible ai"},
		SearchPhrase: "ai policy",
		Indicators: []string{
			"artificial intelligence", "machine learning", "model",
			"training data", "automated",
		},
	},
	discover.TypeAcceptableUse: {
		PriorityPaths: []string{
			"/acceptable-use", "/aup", "/legal/acceptable-use",
			"/acceptable-use-policy", "/policies/acceptable-use",
		},
		StandardPaths: []string{
			"/acceptable-use", "/aup", "/legal/acceptable-use",
			"/acceptable-use-policy", "/policies/acceptable-use",
			"/legal/aup", "/fair-use",
		},
		URLKeyword: "acceptable",
		LinkPatterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)acceptable use`),
			regexp.MustCompile(`(?i)\baup\b`),
			regexp.MustCompile(`(?i)fair use`),
		},
		ExactPhrases: []string{"acceptable use policy", "acceptable use"},
		SearchPhrase: "acceptable use policy",
		Indicators: []string{
			"acceptable use", "prohibited", "abuse", "violation",
			"suspend", "misuse",
		},
	},
}
