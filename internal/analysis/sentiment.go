package analysis

import "strings"

// Sentiment labels
const (
	SentimentPositive = "positive"
	SentimentNegative = "negative"
	SentimentNeutral  = "neutral"
)

var positiveWords = map[string]struct{}{
	"love": {}, "like": {}, "great": {}, "good": {},
	"happy": {}, "excellent": {}, "wonderful": {}, "amazing": {},
}

var negativeWords = map[string]struct{}{
	"hate": {}, "bad": {}, "terrible": {}, "awful": {},
	"sad": {}, "angry": {}, "upset": {},
}

// AnalyzeSentiment classifies message by counting distinct positive and
// negative keywords among its whitespace-separated tokens. Ties are neutral.
func AnalyzeSentiment(message string) string {
	words := make(map[string]struct{})
	for _, w := range strings.Fields(strings.ToLower(message)) {
		words[w] = struct{}{}
	}

	var pos, neg int
	for w := range words {
		if _, ok := positiveWords[w]; ok {
			pos++
		}
		if _, ok := negativeWords[w]; ok {
			neg++
		}
	}

	switch {
	case pos > neg:
		return SentimentPositive
	case neg > pos:
		return SentimentNegative
	default:
		return SentimentNeutral
	}
}
