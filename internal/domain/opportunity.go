package domain

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"
)

// Opportunity is a sales pipeline record being evaluated.
type Opportunity struct {
	Name         string
	Stage        string
	Notes        string
	EmailCount   int
	CallCount    int
	MeetingCount int
	DaysInStage  int
}

// ScoreBundle holds the outputs of the scoring pipeline for one opportunity.
type ScoreBundle struct {
	Activity      float64 `json:"activity"`
	Sentiment     float64 `json:"sentiment"`
	StageDuration float64 `json:"stage"`
	BuyingSignal  bool    `json:"buying"`
	Confidence    float64 `json:"confidence"`
}

// OpportunityInput is the wire form of an Opportunity. Counter fields are
// pointers so a missing field can be told apart from an explicit zero.
type OpportunityInput struct {
	Name        string `json:"Name"`
	Stage       string `json:"Stage"`
	Notes       string `json:"Notes"`
	Email       *int   `json:"Email"`
	Call        *int   `json:"Call"`
	Meeting     *int   `json:"Meeting"`
	DaysInStage *int   `json:"Days_In_Stage"`
}

// Field error codes.
const (
	CodeRequired = "REQUIRED"
	CodeNegative = "NEGATIVE_VALUE"
)

// FieldError describes a single invalid input field.
type FieldError struct {
	Field   string
	Code    string
	Message string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks every field and returns all problems found, aggregated in a
// *multierror.Error whose entries are *FieldError values. It returns nil for
// a valid input.
func (in OpportunityInput) Validate() error {
	var result *multierror.Error

	if strings.TrimSpace(in.Name) == "" {
		result = multierror.Append(result, &FieldError{Field: "Name", Code: CodeRequired, Message: "is required"})
	}
	if strings.TrimSpace(in.Stage) == "" {
		result = multierror.Append(result, &FieldError{Field: "Stage", Code: CodeRequired, Message: "is required"})
	}

	counters := []struct {
		field string
		value *int
	}{
		{"Email", in.Email},
		{"Call", in.Call},
		{"Meeting", in.Meeting},
		{"Days_In_Stage", in.DaysInStage},
	}
	for _, c := range counters {
		switch {
		case c.value == nil:
			result = multierror.Append(result, &FieldError{Field: c.field, Code: CodeRequired, Message: "is required"})
		case *c.value < 0:
			result = multierror.Append(result, &FieldError{Field: c.field, Code: CodeNegative, Message: "must be non-negative"})
		}
	}

	return result.ErrorOrNil()
}

// Opportunity converts a validated input into an Opportunity. Callers must
// run Validate first; missing counters are treated as zero.
func (in OpportunityInput) Opportunity() Opportunity {
	return Opportunity{
		Name:         in.Name,
		Stage:        in.Stage,
		Notes:        in.Notes,
		EmailCount:   deref(in.Email),
		CallCount:    deref(in.Call),
		MeetingCount: deref(in.Meeting),
		DaysInStage:  deref(in.DaysInStage),
	}
}

func deref(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}
