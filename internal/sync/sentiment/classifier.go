package sentiment

import (
	"strings"
)

// Sentiment labels.
const (
	Positive = "positive"
	Neutral  = "neutral"
	Negative = "negative"
)

// Result is a sentiment classification. Score is bounded to [-1, 1] and
// Confidence to [0, 1].
type Result struct {
	Sentiment  string  `json:"sentiment"`
	Score      float64 `json:"score"`
	Confidence float64 `json:"confidence"`
}

// Classifier maps article text to a sentiment label. Implementations must
// be deterministic, pure and total.
type Classifier interface {
	Classify(text string) Result
}

var (
	positiveWords = []string{"growth", "profit", "success", "gain", "increase", "strong", "up"}
	negativeWords = []string{"loss", "decline", "fall", "weak", "down", "crisis"}
)

// lexiconClassifier scores text against a fixed positive/negative lexicon.
// Placeholder for a heavier external model behind the same interface.
type lexiconClassifier struct{}

// NewLexiconClassifier creates the keyword-based classifier.
func NewLexiconClassifier() Classifier {
	return lexiconClassifier{}
}

// Classify accumulates 0.1 per matched lexicon word, clamps the score to
// [-1, 1] and derives the label from fixed thresholds: above 0.2 positive,
// below -0.2 negative, otherwise neutral.
func (lexiconClassifier) Classify(text string) Result {
	textLower := strings.ToLower(text)

	score := 0.0
	for _, word := range positiveWords {
		if strings.Contains(textLower, word) {
			score += 0.1
		}
	}
	for _, word := range negativeWords {
		if strings.Contains(textLower, word) {
			score -= 0.1
		}
	}

	if score > 1 {
		score = 1
	}
	if score < -1 {
		score = -1
	}

	label := Neutral
	if score > 0.2 {
		label = Positive
	}
	if score < -0.2 {
		label = Negative
	}

	return Result{
		Sentiment:  label,
		Score:      score,
		Confidence: 0.75,
	}
}
