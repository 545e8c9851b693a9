package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/career-navigator/internal/guidance"
	"github.com/jonathan/career-navigator/internal/ingestion"
	"github.com/jonathan/career-navigator/internal/session"
)

// ErrEmailAlreadyExists indicates email is already registered
type ErrEmailAlreadyExists struct {
	Email string
}

func (e *ErrEmailAlreadyExists) Error() string {
	return fmt.Sprintf("email already registered: %s", e.Email)
}

// ErrInvalidCredentials indicates invalid login credentials
type ErrInvalidCredentials struct{}

func (e *ErrInvalidCredentials) Error() string {
	return "invalid email or password"
}

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrNotGenerated indicates a wizard result the user has not produced yet.
type ErrNotGenerated struct {
	What string
}

func (e *ErrNotGenerated) Error() string {
	return fmt.Sprintf("no %s yet", e.What)
}

// HTTPStatus returns the status code for err. Failures of the model or of a
// profile import are upstream problems and map to 502.
func HTTPStatus(err error) int {
	var (
		emailErr      *ErrEmailAlreadyExists
		credsErr      *ErrInvalidCredentials
		validationErr *ErrValidation
		inputErr      *session.InputError
		notGenerated  *ErrNotGenerated
		apiErr        *guidance.APICallError
	)
	switch {
	case errors.As(err, &emailErr), errors.Is(err, session.ErrProfileRequired):
		return http.StatusConflict
	case errors.As(err, &credsErr):
		return http.StatusUnauthorized
	case errors.As(err, &validationErr), errors.As(err, &inputErr):
		return http.StatusBadRequest
	case errors.As(err, &notGenerated):
		return http.StatusNotFound
	case errors.As(err, &apiErr),
		errors.Is(err, ingestion.ErrHTTPRequestFailed),
		errors.Is(err, ingestion.ErrContentExtractionFailed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

var stepLabels = map[string]string{
	guidance.StepProfile:      "skills analysis",
	guidance.StepCareerPaths:  "career paths",
	guidance.StepLearningPath: "learning plan",
}

// userMessage is the text shown for err. Client errors carry their own
// message; upstream failures get a fixed explanation.
func userMessage(err error) string {
	var apiErr *guidance.APICallError
	switch {
	case errors.As(err, &apiErr):
		return fmt.Sprintf("The AI service could not produce your %s. Please try again.", stepLabels[apiErr.Step])
	case errors.Is(err, ingestion.ErrHTTPRequestFailed), errors.Is(err, ingestion.ErrContentExtractionFailed):
		return "We could not import the profile from that URL. Paste the text instead."
	}
	if HTTPStatus(err) >= http.StatusInternalServerError {
		return "Something went wrong saving your results. Please try again."
	}
	return err.Error()
}
