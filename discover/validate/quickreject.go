package validate

import "strings"

// quickRejectMarkers identify obvious false-positive page classes. Each
// set requires every fragment to be present.
var quickRejectMarkers = []struct {
	reason    string
	fragments []string
}{
	{reason: "linkedin profile", fragments: []string{"linkedin", "connections"}},
	{reason: "linkedin company page", fragments: []string{"linkedin", "followers"}},
	{reason: "facebook page", fragments: []string{"facebook", "likes"}},
	{reason: "news article", fragments: []string{"min read"}},
	{reason: "news article", fragments: []string{"related articles"}},
	{reason: "product page", fragments: []string{"add to cart"}},
	{reason: "directory listing", fragments: []string{"company size", "industry"}},
	{reason: "directory listing", fragments: []string{"number of employees"}},
}

// QuickReject short-circuits validation for obvious non-matches. It is a
// cost optimization only: every rejection here corresponds to a hard
// threshold the full Validate call would also fail, so the accept/reject
// outcome never diverges.
func (v *Validator) QuickReject(text, docType string) (string, bool) {
	if len(text) < v.Config.MinCharacters {
		return "too short", true
	}

	lower := strings.ToLower(text)
	keywords := v.countKeywords(lower, v.detectLanguage(strings.Fields(lower)), docType)

	if keywords == 0 {
		return "no keyword matches", true
	}

	// Marker classes only short-circuit when the keyword threshold fails
	// too; a policy page that merely mentions a marker phrase must still
	// reach the full scorer.
	if keywords < v.Config.MinKeywordHits {
		for _, m := range quickRejectMarkers {
			all := true
			for _, frag := range m.fragments {
				if !strings.Contains(lower, frag) {
					all = false
					break
				}
			}
			if all {
				return m.reason, true
			}
		}
		return "too few keyword occurrences", true
	}

	return "", false
}
