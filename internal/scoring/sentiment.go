package scoring

import "strings"

// Sentiment levels.
const (
	SentimentPositive float64 = 85
	SentimentNeutral  float64 = 60
	SentimentNegative float64 = 30
)

var (
	positiveMarkers = []string{"approved", "evaluate"}
	negativeMarkers = []string{"not interested", "no budget"}
)

// Sentiment classifies notes into one of three levels by case-insensitive
// substring match. Positive markers win over negative ones when both occur.
func Sentiment(notes string) float64 {
	lower := strings.ToLower(notes)
	switch {
	case containsAny(lower, positiveMarkers):
		return SentimentPositive
	case containsAny(lower, negativeMarkers):
		return SentimentNegative
	default:
		return SentimentNeutral
	}
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
