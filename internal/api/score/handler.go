package score

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/hashicorp/go-multierror"

	"github.com/johnwards/oppscore/internal/api"
	"github.com/johnwards/oppscore/internal/domain"
	"github.com/johnwards/oppscore/internal/recommend"
)

// Handler handles opportunity scoring HTTP requests.
type Handler struct {
	recommender *recommend.Recommender
	timeout     time.Duration
}

// Response is the body of a successful score request.
type Response struct {
	Scores     domain.ScoreBundle `json:"scores"`
	Suggestion string             `json:"suggestion"`
}

// GenerationFailure is the body returned when scoring succeeded but the
// suggestion could not be generated.
type GenerationFailure struct {
	*api.Error
	Scores           domain.ScoreBundle `json:"scores"`
	GenerationFailed string             `json:"generationFailed"`
}

// PreviewResponse is the body of a preview request.
type PreviewResponse struct {
	Scores domain.ScoreBundle `json:"scores"`
	Prompt string             `json:"prompt"`
}

// Score scores an opportunity and returns a generated suggestion.
func (h *Handler) Score(w http.ResponseWriter, r *http.Request) {
	corrID := api.CorrelationID(r.Context())

	opp, ok := decodeOpportunity(w, r)
	if !ok {
		return
	}

	ctx := r.Context()
	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	res, err := h.recommender.Recommend(ctx, opp)
	if err != nil {
		slog.Warn("recommendation failed",
			"error", err,
			"stage", opp.Stage,
			"confidence", res.Scores.Confidence,
			"correlationId", corrID,
		)
		writeRecommendError(w, corrID, res, err)
		return
	}

	api.WriteJSON(w, http.StatusOK, Response{Scores: res.Scores, Suggestion: res.Suggestion})
}

// writeRecommendError sends 502 with the preserved scores when the generator
// failed and 500 for any other failure.
func writeRecommendError(w http.ResponseWriter, corrID string, res recommend.Result, err error) {
	if !errors.Is(err, recommend.ErrGeneration) {
		api.WriteError(w, http.StatusInternalServerError, api.NewInternalError(err.Error(), corrID))
		return
	}
	api.WriteJSON(w, http.StatusBadGateway, GenerationFailure{
		Error: &api.Error{
			Status:        "error",
			Message:       "Scores computed but suggestion generation failed",
			CorrelationID: corrID,
			Category:      api.CategoryGenerationFailed,
		},
		Scores:           res.Scores,
		GenerationFailed: res.FailureReason,
	})
}

// Preview scores an opportunity and returns the prompt that would be sent
// for generation, without calling the generator.
func (h *Handler) Preview(w http.ResponseWriter, r *http.Request) {
	opp, ok := decodeOpportunity(w, r)
	if !ok {
		return
	}

	scores, prompt, err := h.recommender.Preview(opp)
	if err != nil {
		api.WriteError(w, http.StatusInternalServerError,
			api.NewInternalError(err.Error(), api.CorrelationID(r.Context())))
		return
	}
	api.WriteJSON(w, http.StatusOK, PreviewResponse{Scores: scores, Prompt: prompt})
}

// decodeOpportunity reads and validates the request body. It writes a 400
// response and returns false when the input is rejected.
func decodeOpportunity(w http.ResponseWriter, r *http.Request) (domain.Opportunity, bool) {
	corrID := api.CorrelationID(r.Context())

	var in domain.OpportunityInput
	if err := api.DecodeJSON(r, &in); err != nil {
		api.WriteError(w, http.StatusBadRequest, api.NewValidationError(
			"Invalid input JSON: "+err.Error(), corrID, nil))
		return domain.Opportunity{}, false
	}

	if err := in.Validate(); err != nil {
		api.WriteError(w, http.StatusBadRequest, api.NewValidationError(
			"Invalid opportunity", corrID, validationDetails(err)))
		return domain.Opportunity{}, false
	}

	return in.Opportunity(), true
}

func validationDetails(err error) []api.ErrorDetail {
	var merr *multierror.Error
	if !errors.As(err, &merr) {
		return []api.ErrorDetail{{Message: err.Error()}}
	}

	details := make([]api.ErrorDetail, 0, len(merr.Errors))
	for _, e := range merr.Errors {
		d := api.ErrorDetail{Message: e.Error()}
		var fe *domain.FieldError
		if errors.As(e, &fe) {
			d.Code = fe.Code
			d.In = fe.Field
		}
		details = append(details, d)
	}
	return details
}
