// Package scoring computes the deterministic signals that make up an
// opportunity's confidence score. Every function is pure and safe for
// concurrent use.
package scoring

import (
	"strconv"

	"github.com/johnwards/oppscore/internal/domain"
)

// Score runs the four independent scorers over opp and aggregates them.
func Score(opp domain.Opportunity) domain.ScoreBundle {
	activity := Activity(opp.CallCount, opp.EmailCount, opp.MeetingCount)
	sentiment := Sentiment(opp.Notes)
	stage := StageDuration(opp.Stage, opp.DaysInStage)
	buying := BuyingSignal(opp.Notes)

	return domain.ScoreBundle{
		Activity:      activity,
		Sentiment:     sentiment,
		StageDuration: stage,
		BuyingSignal:  buying,
		Confidence:    Confidence(activity, sentiment, stage, buying),
	}
}

// round2 rounds v to two decimal places using the exact binary value of v,
// so 9.135 (stored as 9.13499...) becomes 9.13.
func round2(v float64) float64 {
	r, _ := strconv.ParseFloat(strconv.FormatFloat(v, 'f', 2, 64), 64)
	return r
}
