package sentiment

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	classifier := NewLexiconClassifier()

	cases := []struct {
		name      string
		text      string
		sentiment string
		score     float64
	}{
		{
			name:      "positive above threshold",
			text:      "Strong growth and rising profit",
			sentiment: Positive,
			score:     0.3,
		},
		{
			name:      "negative below threshold",
			text:      "Heavy loss amid market decline and crisis",
			sentiment: Negative,
			score:     -0.3,
		},
		{
			name:      "empty text is neutral",
			text:      "",
			sentiment: Neutral,
			score:     0,
		},
		{
			name:      "single keyword stays neutral",
			text:      "Quarterly profit announced",
			sentiment: Neutral,
			score:     0.1,
		},
		{
			name:      "mixed signals cancel out",
			text:      "Profit growth offset by loss and decline",
			sentiment: Neutral,
			score:     0,
		},
		{
			name:      "case insensitive",
			text:      "STRONG GROWTH PROFIT",
			sentiment: Positive,
			score:     0.3,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result := classifier.Classify(tc.text)
			assert.Equal(t, tc.sentiment, result.Sentiment)
			assert.InDelta(t, tc.score, result.Score, 1e-9)
			assert.Equal(t, 0.75, result.Confidence)
		})
	}
}

func TestClassifyScoreIsClamped(t *testing.T) {
	classifier := NewLexiconClassifier()

	// More matches than the scale allows must not push the score past -1.
	text := strings.Repeat("loss decline fall weak down crisis ", 5)
	result := classifier.Classify(text)

	assert.GreaterOrEqual(t, result.Score, -1.0)
	assert.Equal(t, Negative, result.Sentiment)
}

func TestClassifyDeterministic(t *testing.T) {
	classifier := NewLexiconClassifier()
	text := "Strong profit growth despite weak demand"

	first := classifier.Classify(text)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, classifier.Classify(text))
	}
}
