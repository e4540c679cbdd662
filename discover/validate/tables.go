package validate

import "regexp"

// BaseLanguage is the language the core term lists are written in and
// the fallback when detection is inconclusive
const BaseLanguage = "en"

// Indicator is one scored heuristic pattern. Weights allow tuning a
// single indicator without touching the scoring function.
type Indicator struct {
	Pattern *regexp.Regexp
	Weight  int
}

// Tables holds the linguistic rule data the validator scores against.
// All of it is swappable configuration; the scoring function itself is
// pure.
type Tables struct {
	// LanguageMarkers maps a language code to common function/domain
	// words used for dominant-language detection
	LanguageMarkers map[string][]string

	// Keywords maps a language code to policy-document keywords. The
	// base-language list doubles as the language-agnostic set.
	Keywords map[string][]string

	// TypePhrases maps a document type to phrases naming that document,
	// unioned into the keyword scan for the requested type
	TypePhrases map[string][]string

	// RequiredTopics maps a language code to topics a genuine document
	// is expected to touch
	RequiredTopics map[string][]string

	// Positive match phrasing characteristic of genuine legal documents
	Positive []Indicator

	// Negative match phrasing characteristic of false positives such as
	// profiles, storefronts and directory listings
	Negative []Indicator
}

// DefaultTables returns the built-in rule data
func DefaultTables() Tables {
	return Tables{
		LanguageMarkers: map[string][]string{
			"en": {"the", "and", "your", "with", "information", "data", "we"},
			"de": {"und", "der", "die", "das", "wir", "ihre", "daten", "nicht"},
			"fr": {"les", "des", "nous", "vous", "votre", "données", "pour"},
			"es": {"los", "las", "datos", "usted", "nosotros", "para", "con"},
		},
		Keywords: map[string][]string{
			"en": {
				"privacy", "personal data", "personal information",
				"data protection", "cookies", "data controller",
				"third parties", "third-party", "your rights", "consent",
				"processing", "retention", "gdpr", "ccpa", "opt out",
				"legitimate interest",
			},
			"de": {
				"datenschutz", "personenbezogene daten", "verarbeitung",
				"einwilligung", "betroffenenrechte", "dritte",
				"speicherung", "dsgvo", "verantwortlicher",
			},
			"fr": {
				"données personnelles", "vie privée", "traitement",
				"consentement", "vos droits", "tiers", "conservation",
				"rgpd", "responsable du traitement",
			},
			"es": {
				"datos personales", "privacidad", "tratamiento",
				"consentimiento", "sus derechos", "terceros",
				"conservación", "rgpd", "responsable del tratamiento",
			},
		},
		TypePhrases: map[string][]string{
			"privacy":        {"privacy policy", "privacy notice", "privacy statement"},
			"terms":          {"terms of service", "terms of use", "terms and conditions"},
			"cookies":        {"cookie policy", "cookie notice", "use of cookies"},
			"security":       {"security policy", "security practices", "responsible disclosure"},
			"gdpr":           {"gdpr", "general data protection regulation", "data processing agreement"},
			"ccpa":           {"ccpa", "california consumer privacy act", "do not sell"},
			"ai":             {"ai policy", "artificial intelligence", "machine learning"},
			"acceptable_use": {"acceptable use policy", "prohibited conduct", "fair use"},
		},
		RequiredTopics: map[string][]string{
			"en": {
				"collect", "use", "share", "cookies", "rights", "contact",
				"security", "retention", "third", "children", "transfer",
				"update", "delete",
			},
			"de": {
				"erheben", "verwendung", "weitergabe", "cookies", "rechte",
				"kontakt", "sicherheit", "speicher", "löschung",
			},
			"fr": {
				"collect", "utilisation", "partage", "cookies", "droits",
				"contact", "sécurité", "conservation", "suppression",
			},
			"es": {
				"recopila", "uso", "compartir", "cookies", "derechos",
				"contacto", "seguridad", "conservación", "eliminación",
			},
		},
		Positive: defaultPositiveIndicators(),
		Negative: defaultNegativeIndicators(),
	}
}

func defaultPositiveIndicators() []Indicator {
	return []Indicator{
		{Pattern: regexp.MustCompile(`(?i)last\s+(updated|modified|revised)`), Weight: 1},
		{Pattern: regexp.MustCompile(`(?i)effective\s+date`), Weight: 1},
		{Pattern: regexp.MustCompile(`(?i)\bgdpr\b|general data protection regulation`), Weight: 1},
		{Pattern: regexp.MustCompile(`(?i)\bccpa\b|california consumer privacy act`), Weight: 1},
		{Pattern: regexp.MustCompile(`(?i)data\s+controller`), Weight: 1},
		{Pattern: regexp.MustCompile(`(?i)data\s+protection\s+officer`), Weight: 1},
		{Pattern: regexp.MustCompile(`(?i)we\s+(collect|process|use|share)\b`), Weight: 1},
		{Pattern: regexp.MustCompile(`(?i)your\s+rights`), Weight: 1},
		{Pattern: regexp.MustCompile(`(?i)right\s+to\s+(access|erasure|rectification|object|deletion)`), Weight: 1},
		{Pattern: regexp.MustCompile(`(?i)lawful\s+bas[ie]s`), Weight: 1},
		{Pattern: regexp.MustCompile(`(?i)opt[\s-]?out`), Weight: 1},
		{Pattern: regexp.MustCompile(`(?im)^\s*\d+\.\s+(information|data|cookies|how|what|your)`), Weight: 1},
		{Pattern: regexp.MustCompile(`(?i)datenschutzerklärung|verantwortlicher im sinne`), Weight: 1},
		{Pattern: regexp.MustCompile(`(?i)politique de confidentialité`), Weight: 1},
		{Pattern: regexp.MustCompile(`(?i)política de privacidad`), Weight: 1},
	}
}

func defaultNegativeIndicators() []Indicator {
	return []Indicator{
		{Pattern: regexp.MustCompile(`(?i)\d[\d,.]*\s*(followers|likes|subscribers|connections)\b`), Weight: 1},
		{Pattern: regexp.MustCompile(`(?i)add\s+to\s+(cart|bag|basket)`), Weight: 1},
		{Pattern: regexp.MustCompile(`(?i)(sign|log)\s?in\s+to\s+(continue|view)`), Weight: 1},
		{Pattern: regexp.MustCompile(`(?i)create\s+(an?\s+)?account\s+to`), Weight: 1},
		{Pattern: regexp.MustCompile(`(?i)(company\s+size|number\s+of\s+employees|annual\s+revenue)`), Weight: 1},
		{Pattern: regexp.MustCompile(`(?i)founded\s+in\s+\d{4}`), Weight: 1},
		{Pattern: regexp.MustCompile(`(?i)\bmin(ute)?s?\s+read\b`), Weight: 1},
		{Pattern: regexp.MustCompile(`(?i)related\s+(articles|stories|posts)`), Weight: 1},
		{Pattern: regexp.MustCompile(`(?i)(free\s+shipping|in\s+stock|out\s+of\s+stock)`), Weight: 1},
		{Pattern: regexp.MustCompile(`(?i)leave\s+a\s+(comment|reply)`), Weight: 1},
	}
}
