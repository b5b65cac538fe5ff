package recommend

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tmc/langchaingo/prompts"

	"github.com/johnwards/oppscore/internal/domain"
)

// MaxPromptNotes is the number of characters of notes embedded in a prompt.
// Longer notes are cut, not summarized.
const MaxPromptNotes = 250

const promptTemplate = "\n" + `You are a B2B sales assistant. Based on this opportunity, suggest the next best action.

Name: {{.name}}
Stage: {{.stage}}
Notes: {{.notes}}
Activity Score: {{.activity}}
Sentiment Score: {{.sentiment}}
Stage Duration Score: {{.stage_duration}}
Buying Signal: {{.buying}}
Confidence Score: {{.confidence}}

Suggestion:`

var recommendationPrompt = prompts.NewPromptTemplate(promptTemplate, []string{
	"name", "stage", "notes", "activity", "sentiment", "stage_duration", "buying", "confidence",
})

// BuildPrompt renders the recommendation prompt for opp and its scores.
func BuildPrompt(opp domain.Opportunity, scores domain.ScoreBundle) (string, error) {
	out, err := recommendationPrompt.Format(map[string]any{
		"name":           opp.Name,
		"stage":          opp.Stage,
		"notes":          truncate(opp.Notes, MaxPromptNotes),
		"activity":       formatCount(scores.Activity),
		"sentiment":      formatCount(scores.Sentiment),
		"stage_duration": formatStageDuration(scores.StageDuration),
		"buying":         yesNo(scores.BuyingSignal),
		"confidence":     formatDecimal(scores.Confidence),
	})
	if err != nil {
		return "", fmt.Errorf("format recommendation prompt: %w", err)
	}
	return out, nil
}

// truncate returns the first n characters of s.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

// formatCount prints a score that is always whole, e.g. 44.
func formatCount(v float64) string {
	return strconv.FormatFloat(v, 'f', 0, 64)
}

// formatDecimal prints a rounded score with as many digits as needed and at
// least one after the point, e.g. 78.7, 16.53, 9.0.
func formatDecimal(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// formatStageDuration prints an on-pace score as the whole number 100 and a
// decayed score as a decimal.
func formatStageDuration(v float64) string {
	if v == 100 {
		return formatCount(v)
	}
	return formatDecimal(v)
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
