package fetch

import (
	"regexp"
	"strings"
)

// blockedURLPatterns match URLs that are auth surfaces by construction.
// These are rejected before any request is issued.
var blockedURLPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)/log-?in\b`),
	regexp.MustCompile(`(?i)/sign-?in\b`),
	regexp.MustCompile(`(?i)/auth(entication|orize)?/`),
	regexp.MustCompile(`(?i)/sso\b`),
	regexp.MustCompile(`(?i)/oauth2?/`),
	regexp.MustCompile(`(?i)/checkpoint/`),
	regexp.MustCompile(`(?i)/challenge\b`),
	regexp.MustCompile(`(?i)/account/log`),
	regexp.MustCompile(`(?i)[?&]redirect_uri=`),
	regexp.MustCompile(`(?i)/uas/login`),
}

// IsBlockedURL reports whether a URL is recognized as an auth wall
// without fetching it
func IsBlockedURL(rawURL string) bool {
	for _, p := range blockedURLPatterns {
		if p.MatchString(rawURL) {
			return true
		}
	}
	return false
}

// loginWallMarkers are body fragments that identify a login page served
// with a 200 status
var loginWallMarkers = []string{
	`type="password"`,
	`type='password'`,
	"sign in to continue",
	"log in to continue",
	"login to continue",
	"please sign in",
	"please log in",
	"sign in to view",
	"create an account to continue",
	"join to view",
}

// loginWallScanBytes bounds how much of the body is inspected; login
// shells declare themselves early.
const loginWallScanBytes = 5 * 1024

// hasLoginWall reports whether the leading portion of a body looks like
// a login page
func hasLoginWall(body []byte) bool {
	scan := body
	if len(scan) > loginWallScanBytes {
		scan = scan[:loginWallScanBytes]
	}

	lower := strings.ToLower(string(scan))
	for _, marker := range loginWallMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}
