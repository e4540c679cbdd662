package fetch

import (
	"net/url"
	"regexp"
	"strings"
)

// localeSegmentRe matches a leading two-letter language path segment,
// optionally with a region suffix (/de/, /fr-ca/, /ja/...)
var localeSegmentRe = regexp.MustCompile(`(?i)^/([a-z]{2})(-[a-z]{2})?(/|$)`)

// englishSegments are leading segments that already denote an English or
// US edition and need no correction
var englishSegments = map[string]bool{
	"en": true,
	"us": true,
	"uk": true,
}

// IsLocaleMarked reports whether a URL's path starts with a non-English
// locale segment
func IsLocaleMarked(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}

	m := localeSegmentRe.FindStringSubmatch(u.Path)
	if m == nil {
		return false
	}
	return !englishSegments[strings.ToLower(m[1])]
}

// englishVariants rewrites the locale segment of a URL to the English
// editions tried in order. Returns nil when the URL carries no locale
// segment.
func englishVariants(rawURL string) []string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil
	}

	m := localeSegmentRe.FindStringSubmatch(u.Path)
	if m == nil {
		return nil
	}

	prefix := strings.TrimSuffix(m[0], "/")
	rest := strings.TrimPrefix(u.Path, prefix)

	variants := make([]string, 0, 3)
	for _, seg := range []string{"/us", "/en", "/en-us"} {
		v := *u
		v.Path = seg + rest
		variants = append(variants, v.String())
	}
	return variants
}
