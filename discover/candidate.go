package discover

import (
	"net/url"
	"strings"
	"time"
)

// Source represents how a candidate URL was discovered
type Source string

// String returns the string representation of the Source
func (s Source) String() string {
	return string(s)
}

const (
	SourceSpecialDomain   Source = "special_domain"
	SourceDirectFetch     Source = "direct_fetch"
	SourceStandardPath    Source = "standard_path"
	SourceFooterLink      Source = "footer_link"
	SourceLegalPage       Source = "legal_page"
	SourceSitemap         Source = "sitemap"
	SourceSearchFallback  Source = "search_fallback"
	SourceContentAnalysis Source = "content_analysis"
)

// Candidate is a proposed document URL with a confidence score and
// provenance. Candidates are immutable once produced by a strategy; the
// engine replaces its working best rather than mutating strategy output.
type Candidate struct {
	URL          string
	Source       Source
	Confidence   int
	FoundAt      time.Time
	MethodDetail string
}

// NewCandidate builds a candidate with the confidence clamped to [0,100]
// and the discovery timestamp set.
func NewCandidate(rawURL string, source Source, confidence int, detail string) Candidate {
	return Candidate{
		URL:          rawURL,
		Source:       source,
		Confidence:   ClampConfidence(confidence),
		FoundAt:      time.Now(),
		MethodDetail: detail,
	}
}

// ClampConfidence restricts a confidence value to the [0,100] range
func ClampConfidence(c int) int {
	if c < 0 {
		return 0
	}
	if c > 100 {
		return 100
	}
	return c
}

// CanonicalURL normalizes a URL for de-duplication: lowercased scheme and
// host, trailing slash removed, fragment dropped. The path case is kept
// because some servers treat paths case-sensitively.
func CanonicalURL(rawURL string) string {
	rawURL = strings.TrimSpace(rawURL)

	u, err := url.Parse(rawURL)
	if err != nil {
		return strings.TrimSuffix(strings.ToLower(rawURL), "/")
	}

	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)
	u.Fragment = ""
	u.Path = strings.TrimSuffix(u.Path, "/")

	return u.String()
}

// DocumentType identifies a class of legal document to discover
type DocumentType string

// String returns the string representation of the DocumentType
func (t DocumentType) String() string {
	return string(t)
}

const (
	TypePrivacy       DocumentType = "privacy"
	TypeTerms         DocumentType = "terms"
	TypeCookies       DocumentType = "cookies"
	TypeSecurity      DocumentType = "security"
	TypeGDPR          DocumentType = "gdpr"
	TypeCCPA          DocumentType = "ccpa"
	TypeAI            DocumentType = "ai"
	TypeAcceptableUse DocumentType = "acceptable_use"
)

// AllDocumentTypes returns the document types in the order DiscoverAll
// resolves them.
func AllDocumentTypes() []DocumentType {
	return []DocumentType{
		TypePrivacy,
		TypeTerms,
		TypeCookies,
		TypeSecurity,
		TypeGDPR,
		TypeCCPA,
		TypeAI,
		TypeAcceptableUse,
	}
}

var displayNames = map[DocumentType]string{
	TypePrivacy:       "Privacy Policy",
	TypeTerms:         "Terms of Service",
	TypeCookies:       "Cookie Policy",
	TypeSecurity:      "Security Policy",
	TypeGDPR:          "GDPR Notice",
	TypeCCPA:          "CCPA Notice",
	TypeAI:            "AI Policy",
	TypeAcceptableUse: "Acceptable Use Policy",
}

// DisplayName returns a human-readable name for the document type
func (t DocumentType) DisplayName() string {
	if name, ok := displayNames[t]; ok {
		return name
	}
	return string(t)
}

// DocumentTypeFromString creates a DocumentType from a string, reporting
// whether the string names a known type.
func DocumentTypeFromString(s string) (DocumentType, bool) {
	t := DocumentType(strings.ToLower(strings.TrimSpace(s)))
	_, ok := displayNames[t]
	return t, ok
}

// DiscoveredDocument is one resolved document in a multi-document run
type DiscoveredDocument struct {
	Type        DocumentType `json:"type"`
	DisplayName string       `json:"display_name"`
	URL         string       `json:"url"`
}
