package scoring

const (
	activityWeight      = 0.3
	sentimentWeight     = 0.3
	stageDurationWeight = 0.3
	buyingSignalBonus   = 10
)

// Confidence combines the component scores into one weighted value rounded
// to two decimal places. The buying-signal bonus is flat and the sum is not
// clamped, so a saturated opportunity can score above 100.
func Confidence(activity, sentiment, stageDuration float64, buyingSignal bool) float64 {
	// Explicit conversions round each product before summing, preventing a
	// fused multiply-add from changing the last bit.
	score := float64(activityWeight*activity) + float64(sentimentWeight*sentiment) + float64(stageDurationWeight*stageDuration)
	if buyingSignal {
		score += buyingSignalBonus
	}
	return round2(score)
}
