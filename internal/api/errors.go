package api

import (
	"errors"
	"net/http"
)

// Error categories.
const (
	CategoryValidationError  = "VALIDATION_ERROR"
	CategoryObjectNotFound   = "OBJECT_NOT_FOUND"
	CategoryGenerationFailed = "GENERATION_FAILED"
	CategoryInternalError    = "INTERNAL_ERROR"
)

var errTrailingData = errors.New("unexpected data after JSON body")

// Error represents an error response body.
type Error struct {
	Status        string        `json:"status"`
	Message       string        `json:"message"`
	CorrelationID string        `json:"correlationId"`
	Category      string        `json:"category"`
	SubCategory   string        `json:"subCategory,omitempty"`
	Errors        []ErrorDetail `json:"errors,omitempty"`
}

// ErrorDetail represents a single error within an Error.
type ErrorDetail struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
	In      string `json:"in,omitempty"`
}

// NewNotFoundError creates a 404 error with the OBJECT_NOT_FOUND category.
func NewNotFoundError(message, correlationID string) *Error {
	return &Error{
		Status:        "error",
		Message:       message,
		CorrelationID: correlationID,
		Category:      CategoryObjectNotFound,
	}
}

// NewValidationError creates a 400 error with the VALIDATION_ERROR category.
func NewValidationError(message, correlationID string, details []ErrorDetail) *Error {
	return &Error{
		Status:        "error",
		Message:       message,
		CorrelationID: correlationID,
		Category:      CategoryValidationError,
		Errors:        details,
	}
}

// NewInternalError creates a 500 error with the INTERNAL_ERROR category.
func NewInternalError(message, correlationID string) *Error {
	return &Error{
		Status:        "error",
		Message:       message,
		CorrelationID: correlationID,
		Category:      CategoryInternalError,
	}
}

// WriteError writes an Error as a JSON response with the given HTTP status code.
func WriteError(w http.ResponseWriter, statusCode int, apiErr *Error) {
	WriteJSON(w, statusCode, apiErr)
}
