package discover

import "strings"

// SpecialTable maps domains with unreliable generic paths (mostly social
// platforms) to maintained, manually verified document URLs. Entries
// bypass heuristic discovery entirely.
type SpecialTable map[string]map[DocumentType]string

// DefaultSpecialTable returns the maintained override table
func DefaultSpecialTable() SpecialTable {
	return SpecialTable{
		"facebook.com": {
			TypePrivacy: "https://www.facebook.com/privacy/policy/",
			TypeTerms:   "https://www.facebook.com/legal/terms",
			TypeCookies: "https://www.facebook.com/privacy/policies/cookies/",
		},
		"instagram.com": {
			TypePrivacy: "https://privacycenter.instagram.com/policy",
			TypeTerms:   "https://help.instagram.com/581066165581870",
		},
		"twitter.com": {
			TypePrivacy: "https://x.com/en/privacy",
			TypeTerms:   "https://x.com/en/tos",
		},
		"x.com": {
			TypePrivacy: "https://x.com/en/privacy",
			TypeTerms:   "https://x.com/en/tos",
		},
		"linkedin.com": {
			TypePrivacy: "https://www.linkedin.com/legal/privacy-policy",
			TypeTerms:   "https://www.linkedin.com/legal/user-agreement",
			TypeCookies: "https://www.linkedin.com/legal/cookie-policy",
		},
		"youtube.com": {
			TypePrivacy: "https://policies.google.com/privacy",
			TypeTerms:   "https://www.youtube.com/t/terms",
		},
		"google.com": {
			TypePrivacy: "https://policies.google.com/privacy",
			TypeTerms:   "https://policies.google.com/terms",
		},
		"tiktok.com": {
			TypePrivacy: "https://www.tiktok.com/legal/page/us/privacy-policy/en",
			TypeTerms:   "https://www.tiktok.com/legal/page/us/terms-of-service/en",
		},
		"reddit.com": {
			TypePrivacy: "https://www.reddit.com/policies/privacy-policy",
			TypeTerms:   "https://redditinc.com/policies/user-agreement",
		},
		"amazon.com": {
			TypePrivacy: "https://www.amazon.com/gp/help/customer/display.html?nodeId=GX7NJQ4ZB8MHFRNJ",
		},
	}
}

// Lookup resolves a domain (tolerating the www. prefix in either
// direction) and document type to an override URL
func (t SpecialTable) Lookup(domain string, docType DocumentType) (string, bool) {
	domain = strings.ToLower(strings.TrimSpace(domain))

	for _, key := range []string{domain, strings.TrimPrefix(domain, "www."), "www." + domain} {
		if urls, ok := t[key]; ok {
			if u, ok := urls[docType]; ok {
				return u, true
			}
		}
	}
	return "", false
}
