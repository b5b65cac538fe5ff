// Package recommend turns an opportunity's scores into a next-best-action
// suggestion using an injected text generation capability.
package recommend

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/johnwards/oppscore/internal/domain"
	"github.com/johnwards/oppscore/internal/scoring"
)

// ErrGeneration wraps every failure returned by a Generator.
var ErrGeneration = errors.New("generation failed")

// Status tags the outcome of a recommendation.
type Status string

// Recommendation outcomes.
const (
	StatusOK               Status = "ok"
	StatusGenerationFailed Status = "generation_failed"
	StatusPromptFailed     Status = "prompt_failed"
)

// Result is the outcome of scoring one opportunity. Scores are always set.
// Suggestion is set when Status is StatusOK and FailureReason otherwise.
type Result struct {
	Status        Status
	Scores        domain.ScoreBundle
	Suggestion    string
	FailureReason string
}

// Failed reports whether no suggestion was produced.
func (r Result) Failed() bool {
	return r.Status != StatusOK
}

// Recommender scores opportunities and asks a Generator for a suggestion.
type Recommender struct {
	generator   Generator
	buildPrompt func(domain.Opportunity, domain.ScoreBundle) (string, error)
}

// New returns a Recommender that uses g for suggestions.
func New(g Generator) *Recommender {
	return &Recommender{generator: g, buildPrompt: BuildPrompt}
}

// Preview scores opp and builds its prompt without calling the generator.
func (r *Recommender) Preview(opp domain.Opportunity) (domain.ScoreBundle, string, error) {
	scores := scoring.Score(opp)
	prompt, err := r.buildPrompt(opp, scores)
	if err != nil {
		return scores, "", err
	}
	return scores, prompt, nil
}

// Recommend scores opp and generates a suggestion. The returned Result
// always carries the scores. When the generator fails the error wraps
// ErrGeneration and the Result is tagged StatusGenerationFailed; when the
// prompt cannot be built the generator is not called and the Result is
// tagged StatusPromptFailed.
func (r *Recommender) Recommend(ctx context.Context, opp domain.Opportunity) (Result, error) {
	scores, prompt, err := r.Preview(opp)
	if err != nil {
		return failed(StatusPromptFailed, scores, err), err
	}

	text, err := r.generator.Generate(ctx, prompt)
	if err != nil {
		err = fmt.Errorf("%w: %w", ErrGeneration, err)
		return failed(StatusGenerationFailed, scores, err), err
	}

	return Result{
		Status:     StatusOK,
		Scores:     scores,
		Suggestion: strings.TrimSpace(text),
	}, nil
}

func failed(status Status, scores domain.ScoreBundle, err error) Result {
	return Result{
		Status:        status,
		Scores:        scores,
		FailureReason: err.Error(),
	}
}
