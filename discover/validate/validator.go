package validate

import (
	"fmt"
	"strings"
)

// Config holds the validator's hard thresholds and pass mark. The
// defaults mirror long-standing tuning; treat them as calibration
// points, not derived truths.
type Config struct {
	// MinCharacters and MinWords reject stub pages
	MinCharacters int `validate:"gt=0"`
	MinWords      int `validate:"gt=0"`

	// MinKeywordHits is the least keyword occurrences a genuine
	// document shows
	MinKeywordHits int `validate:"gt=0"`

	// MinTopics is the least required topics a genuine document covers
	MinTopics int `validate:"gt=0"`

	// NegativeMargin is how far negative indicators may exceed positive
	// ones before rejection
	NegativeMargin int `validate:"gte=0"`

	// PassConfidence is the minimum confidence for IsValid
	PassConfidence int `validate:"gte=0,lte=100"`
}

// DefaultConfig returns the standard thresholds
func DefaultConfig() Config {
	return Config{
		MinCharacters:  500,
		MinWords:       100,
		MinKeywordHits: 3,
		MinTopics:      2,
		NegativeMargin: 2,
		PassConfidence: 40,
	}
}

// Validator decides whether fetched text is genuinely an instance of a
// requested document type. Validate is a pure function of the input text
// and the rule tables.
type Validator struct {
	Tables Tables
	Config Config
}

// New creates a validator with the built-in tables and thresholds
func New() *Validator {
	return &Validator{
		Tables: DefaultTables(),
		Config: DefaultConfig(),
	}
}

// Validate scores text against the rule tables for the given document
// type (e.g. "privacy", "terms").
func (v *Validator) Validate(text, docType string) Result {
	var res Result

	lower := strings.ToLower(text)
	words := strings.Fields(lower)

	res.Metrics.CharacterCount = len(text)
	res.Metrics.WordCount = len(words)

	lengthOK := res.Metrics.CharacterCount >= v.Config.MinCharacters && res.Metrics.WordCount >= v.Config.MinWords
	if !lengthOK {
		res.Issues = append(res.Issues, fmt.Sprintf(
			"content too short: %d chars, %d words", res.Metrics.CharacterCount, res.Metrics.WordCount))
	}

	res.Metrics.DetectedLanguage = v.detectLanguage(words)

	res.Metrics.KeywordCount = v.countKeywords(lower, res.Metrics.DetectedLanguage, docType)
	keywordsOK := res.Metrics.KeywordCount >= v.Config.MinKeywordHits
	if !keywordsOK {
		res.Issues = append(res.Issues, fmt.Sprintf(
			"too few keyword occurrences: %d", res.Metrics.KeywordCount))
	}

	res.Metrics.TopicsFound = v.findTopics(lower, res.Metrics.DetectedLanguage)
	topicsOK := len(res.Metrics.TopicsFound) >= v.Config.MinTopics
	if !topicsOK {
		res.Issues = append(res.Issues, fmt.Sprintf(
			"too few required topics: %d", len(res.Metrics.TopicsFound)))
	}

	res.Metrics.PositiveIndicatorCount = scoreIndicators(lower, v.Tables.Positive)
	res.Metrics.NegativeIndicatorCount = scoreIndicators(lower, v.Tables.Negative)
	indicatorsOK := res.Metrics.NegativeIndicatorCount <= res.Metrics.PositiveIndicatorCount+v.Config.NegativeMargin
	if !indicatorsOK {
		res.Issues = append(res.Issues, fmt.Sprintf(
			"negative indicators dominate: %d negative vs %d positive",
			res.Metrics.NegativeIndicatorCount, res.Metrics.PositiveIndicatorCount))
	}

	res.Confidence = v.confidence(res.Metrics)
	res.IsValid = lengthOK && keywordsOK && topicsOK && indicatorsOK && res.Confidence >= v.Config.PassConfidence

	return res
}

// confidence derives the 0-100 score from measured metrics
func (v *Validator) confidence(m Metrics) int {
	score := 50

	switch {
	case m.CharacterCount < v.Config.MinCharacters:
		score -= 30
	default:
		if m.CharacterCount >= 2000 {
			score += 10
		}
		if m.CharacterCount >= 5000 {
			score += 10
		}
	}

	if m.KeywordCount >= 10 {
		score += 15
	}
	if m.KeywordCount >= 20 {
		score += 10
	}

	if len(m.TopicsFound) >= 5 {
		score += 15
	}
	if len(m.TopicsFound) >= 10 {
		score += 10
	}

	score += 3 * m.PositiveIndicatorCount
	score -= 5 * m.NegativeIndicatorCount

	return clamp(score)
}

// detectLanguage picks the language whose marker terms occur most often,
// falling back to the base language
func (v *Validator) detectLanguage(words []string) string {
	seen := make(map[string]int, len(words))
	for _, w := range words {
		seen[strings.Trim(w, ".,;:!?()\"'")]++
	}

	best := BaseLanguage
	bestHits := 0
	for lang, markers := range v.Tables.LanguageMarkers {
		hits := 0
		for _, m := range markers {
			hits += seen[m]
		}
		if hits > bestHits {
			best, bestHits = lang, hits
		}
	}
	return best
}

// countKeywords counts occurrences of the language-agnostic keyword list,
// the detected-language list, and the phrases naming the requested type
func (v *Validator) countKeywords(lower, lang, docType string) int {
	count := 0
	counted := map[string]bool{}

	scan := func(terms []string) {
		for _, term := range terms {
			if counted[term] {
				continue
			}
			counted[term] = true
			count += strings.Count(lower, term)
		}
	}

	scan(v.Tables.Keywords[BaseLanguage])
	if lang != BaseLanguage {
		scan(v.Tables.Keywords[lang])
	}
	scan(v.Tables.TypePhrases[docType])

	return count
}

// findTopics returns which required topics appear, unioning the base
// language list when the detected language differs
func (v *Validator) findTopics(lower, lang string) []string {
	var found []string
	seen := map[string]bool{}

	collect := func(topics []string) {
		for _, topic := range topics {
			if seen[topic] {
				continue
			}
			if strings.Contains(lower, topic) {
				seen[topic] = true
				found = append(found, topic)
			}
		}
	}

	collect(v.Tables.RequiredTopics[lang])
	if lang != BaseLanguage {
		collect(v.Tables.RequiredTopics[BaseLanguage])
	}

	return found
}

func scoreIndicators(lower string, indicators []Indicator) int {
	total := 0
	for _, ind := range indicators {
		if ind.Pattern.MatchString(lower) {
			total += ind.Weight
		}
	}
	return total
}

func clamp(c int) int {
	if c < 0 {
		return 0
	}
	if c > 100 {
		return 100
	}
	return c
}
