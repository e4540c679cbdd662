package validate

// Metrics captures what the validator measured in a text
type Metrics struct {
	CharacterCount         int      `json:"character_count"`
	WordCount              int      `json:"word_count"`
	KeywordCount           int      `json:"keyword_count"`
	TopicsFound            []string `json:"topics_found"`
	PositiveIndicatorCount int      `json:"positive_indicator_count"`
	NegativeIndicatorCount int      `json:"negative_indicator_count"`
	DetectedLanguage       string   `json:"detected_language"`
}

// Result is the outcome of validating one text against one document
// type. Produced fresh per call and never persisted.
type Result struct {
	IsValid    bool     `json:"is_valid"`
	Confidence int      `json:"confidence"`
	Issues     []string `json:"issues"`
	Metrics    Metrics  `json:"metrics"`
}
